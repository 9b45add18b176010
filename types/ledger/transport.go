package ledger

import (
	"context"

	"github.com/pkg/errors"
)

// ErrAccountNotFound is returned by transports when the requested account
// does not exist or has never been funded.
var ErrAccountNotFound = errors.New("account not found")

type AccountInfo struct {
	Address  string
	Sequence uint64
	// Balance in base units (seven decimal places).
	Balance uint64
}

// Resources is the footprint a simulation reports for an invocation.
type Resources struct {
	Instructions uint32
	ReadBytes    uint32
	WriteBytes   uint32
	ReadOnly     [][]byte
	ReadWrite    [][]byte
}

type SimulationResult struct {
	// Error carries the remote diagnostic when the dry run was rejected. The
	// remaining fields are meaningless when it is set.
	Error          string
	MinResourceFee uint64
	Resources      Resources
	// ReturnValue is the canonical wire encoding of the invocation's result,
	// empty for void methods.
	ReturnValue  []byte
	LatestLedger uint64
}

type SubmitStatus uint8

const (
	SubmitPending SubmitStatus = iota
	SubmitDuplicate
	SubmitTryAgainLater
	SubmitError
)

func (s SubmitStatus) String() string {
	switch s {
	case SubmitPending:
		return "PENDING"
	case SubmitDuplicate:
		return "DUPLICATE"
	case SubmitTryAgainLater:
		return "TRY_AGAIN_LATER"
	case SubmitError:
		return "ERROR"
	}
	return "UNKNOWN"
}

type SubmitResult struct {
	Hash         string
	Status       SubmitStatus
	ErrorResult  string
	LatestLedger uint64
}

type TxStatus uint8

const (
	TxNotFound TxStatus = iota
	TxPending
	TxSuccess
	TxFailed
)

func (s TxStatus) String() string {
	switch s {
	case TxNotFound:
		return "NOT_FOUND"
	case TxPending:
		return "PENDING"
	case TxSuccess:
		return "SUCCESS"
	case TxFailed:
		return "FAILED"
	}
	return "UNKNOWN"
}

// Terminal reports whether the status will never change again.
func (s TxStatus) Terminal() bool {
	return s == TxSuccess || s == TxFailed
}

type TransactionStatus struct {
	Status TxStatus
	Ledger uint64
	// ResultMeta is the canonical encoding of a ResultMeta, set on success
	// and, when available, on failure.
	ResultMeta []byte
	Diagnostic string
}

type OperationCode uint8

const (
	OperationSuccess OperationCode = iota
	OperationFailed
)

// OperationResult is the outcome of a single operation of a finalized
// transaction.
type OperationResult struct {
	Code OperationCode
	// ReturnValue is the canonical wire encoding of the invoked method's
	// return value. Empty for void methods.
	ReturnValue []byte
}

// ResultMeta is the metadata a finalized transaction carries.
type ResultMeta struct {
	FeeCharged uint64
	Results    []OperationResult
}

// Transport is the remote ledger surface the client drives.
type Transport interface {
	GetAccount(ctx context.Context, address string) (*AccountInfo, error)
	GetLatestLedger(ctx context.Context) (uint64, error)
	Simulate(ctx context.Context, envelope []byte) (*SimulationResult, error)
	Submit(ctx context.Context, envelope []byte) (*SubmitResult, error)
	GetTransaction(ctx context.Context, hash string) (*TransactionStatus, error)
}
