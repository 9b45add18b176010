package txn

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
)

// AccountError reports a source account the transport could not resolve.
// No envelope is built when it is returned.
type AccountError struct {
	Address string
	Err     error
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("account %s: %v", e.Address, e.Err)
}

func (e *AccountError) Unwrap() error { return e.Err }

// SimulationError carries the remote diagnostic of a rejected dry run
// verbatim.
type SimulationError struct {
	Method     string
	Diagnostic string
	Err        error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("simulate %s: %s", e.Method, e.Diagnostic)
}

func (e *SimulationError) Unwrap() error { return e.Err }

var contractErrorPattern = regexp.MustCompile(`Error\(Contract, #(\d+)\)`)

// ContractCode extracts the contract-defined error code embedded in the
// diagnostic, if any.
func (e *SimulationError) ContractCode() (uint32, bool) {
	m := contractErrorPattern.FindStringSubmatch(e.Diagnostic)
	if m == nil {
		return 0, false
	}
	code, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(code), true
}

// SigningError is returned when the signer did not produce a signed
// envelope. Cancelled distinguishes a user refusal from a provider failure.
type SigningError struct {
	Cancelled bool
	Err       error
}

func (e *SigningError) Error() string {
	if e.Cancelled {
		return fmt.Sprintf("signing cancelled: %v", e.Err)
	}
	return fmt.Sprintf("signing failed: %v", e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// SubmissionError reports a send failure or a submission the ledger refused
// outright.
type SubmissionError struct {
	Hash       string
	Status     ledger.SubmitStatus
	Diagnostic string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil && e.Diagnostic == "" {
		return fmt.Sprintf("submit %s: %v", e.Hash, e.Err)
	}
	return fmt.Sprintf("submit %s: %s: %s", e.Hash, e.Status, e.Diagnostic)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// FinalityTimeoutError is returned when the poll bound is exhausted before
// the ledger reported a terminal status. The transaction may still land.
type FinalityTimeoutError struct {
	Hash     string
	Attempts int
	Elapsed  time.Duration
}

func (e *FinalityTimeoutError) Error() string {
	return fmt.Sprintf(
		"transaction %s not final after %d status queries (%s)",
		e.Hash,
		e.Attempts,
		e.Elapsed.Round(time.Millisecond),
	)
}

// FinalizedFailureError reports a transaction that was included in a ledger
// but failed to execute.
type FinalizedFailureError struct {
	Hash       string
	Ledger     uint64
	Diagnostic string
}

func (e *FinalizedFailureError) Error() string {
	return fmt.Sprintf(
		"transaction %s failed in ledger %d: %s",
		e.Hash,
		e.Ledger,
		e.Diagnostic,
	)
}

// CancelledError is returned when the caller's context ends an invocation.
type CancelledError struct {
	Stage State
	Hash  string
	Err   error
}

func (e *CancelledError) Error() string {
	if e.Hash != "" {
		return fmt.Sprintf("cancelled at %s (%s): %v", e.Stage, e.Hash, e.Err)
	}
	return fmt.Sprintf("cancelled at %s: %v", e.Stage, e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }
