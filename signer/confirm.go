package signer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/OFFER-HUB/protocol-offer-hub/txn"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
)

// feeDecimals is the number of decimal places of the native fee unit.
const feeDecimals = 7

// ConfirmingSigner shows the envelope about to be signed and asks before
// handing it to the wrapped signer. Anything but an explicit yes cancels.
//
// Input is read by a single goroutine that lives as long as the reader
// does. A prompt abandoned through its context leaves the next line for the
// following prompt.
type ConfirmingSigner struct {
	next  ledger.Signer
	in    *bufio.Reader
	out   io.Writer
	once  sync.Once
	lines chan string
}

var _ ledger.Signer = (*ConfirmingSigner)(nil)

func NewConfirmingSigner(
	next ledger.Signer,
	in io.Reader,
	out io.Writer,
) *ConfirmingSigner {
	return &ConfirmingSigner{
		next:  next,
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan string),
	}
}

func (s *ConfirmingSigner) readLines() {
	defer close(s.lines)
	for {
		line, err := s.in.ReadString('\n')
		if line != "" || err == nil {
			s.lines <- strings.ToLower(strings.TrimSpace(line))
		}
		if err != nil {
			return
		}
	}
}

// FormatFee renders a fee in stroops as a decimal amount of the native
// asset.
func FormatFee(stroops uint64) string {
	return decimal.New(int64(stroops), -feeDecimals).StringFixed(feeDecimals)
}

func (s *ConfirmingSigner) Sign(
	ctx context.Context,
	unsigned []byte,
	opts ledger.SignOptions,
) ([]byte, error) {
	env, err := txn.ParseEnvelope(unsigned)
	if err != nil {
		return nil, errors.Wrap(err, "confirm")
	}

	fmt.Fprintf(s.out, "Network:  %s\n", opts.Network)
	fmt.Fprintf(s.out, "Account:  %s\n", opts.AccountToSign)
	fmt.Fprintf(s.out, "Contract: %s\n", env.Invocation.Contract)
	fmt.Fprintf(s.out, "Method:   %s\n", env.Invocation.Method)
	fmt.Fprintf(s.out, "Fee:      %s\n", FormatFee(env.Fee))
	fmt.Fprint(s.out, "Sign this transaction? [y/N] ")

	s.once.Do(func() { go s.readLines() })

	select {
	case <-ctx.Done():
		fmt.Fprintln(s.out)
		return nil, ctx.Err()
	case a, ok := <-s.lines:
		if !ok || (a != "y" && a != "yes") {
			return nil, ledger.ErrSignCancelled
		}
	}

	return s.next.Sign(ctx, unsigned, opts)
}
