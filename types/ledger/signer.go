package ledger

import (
	"context"

	"github.com/pkg/errors"
)

// ErrSignCancelled is returned (possibly wrapped) by a Signer when the user
// declined to sign.
var ErrSignCancelled = errors.New("signing cancelled")

type SignOptions struct {
	Network           string
	NetworkPassphrase string
	AccountToSign     string
}

// Signer signs a prepared, unsigned envelope and returns the signed bytes.
// Implementations own their own concurrency semantics.
type Signer interface {
	Sign(ctx context.Context, unsigned []byte, opts SignOptions) ([]byte, error)
}

// SignerFunc adapts a function to the Signer interface.
type SignerFunc func(
	ctx context.Context,
	unsigned []byte,
	opts SignOptions,
) ([]byte, error)

func (f SignerFunc) Sign(
	ctx context.Context,
	unsigned []byte,
	opts SignOptions,
) ([]byte, error) {
	return f(ctx, unsigned, opts)
}
