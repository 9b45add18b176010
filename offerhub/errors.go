package offerhub

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/OFFER-HUB/protocol-offer-hub/txn"
)

var (
	ErrSignerRequired    = errors.New("a signer is required for this operation")
	ErrInvalidIdentifier = errors.New("identifier must be at least 10 characters")
	ErrInvalidAddress    = errors.New("invalid address")
)

// ContractCode is an error code raised by the contract itself and reported
// inside simulation diagnostics.
type ContractCode uint32

const (
	CodeProfileAlreadyExists ContractCode = 1
	CodeProfileNotFound      ContractCode = 2
	CodeClaimNotFound        ContractCode = 3
	CodeInvalidIdentifier    ContractCode = 6
	CodeInvalidMetadataURI   ContractCode = 7
)

func (c ContractCode) String() string {
	switch c {
	case CodeProfileAlreadyExists:
		return "profile already exists"
	case CodeProfileNotFound:
		return "profile not found"
	case CodeClaimNotFound:
		return "claim not found"
	case CodeInvalidIdentifier:
		return "invalid identifier"
	case CodeInvalidMetadataURI:
		return "invalid metadata uri"
	}
	return "contract error #" + strconv.FormatUint(uint64(c), 10)
}

// ContractCodeOf extracts the contract error code from a simulation
// rejection.
func ContractCodeOf(err error) (ContractCode, bool) {
	var simErr *txn.SimulationError
	if !errors.As(err, &simErr) {
		return 0, false
	}
	code, ok := simErr.ContractCode()
	return ContractCode(code), ok
}
