package txn

import (
	"fmt"

	"github.com/pkg/errors"
)

// State is a position in the lifecycle of one contract invocation.
type State uint8

const (
	StateBuilt State = iota + 1
	StateSimulated
	StatePrepared
	StateSigned
	StateSubmitted
	StatePending
	StateFinalizedSuccess
	StateFinalizedFailed
	StateResultExtracted
	StateRejected
)

var stateNames = map[State]string{
	StateBuilt:            "built",
	StateSimulated:        "simulated",
	StatePrepared:         "prepared",
	StateSigned:           "signed",
	StateSubmitted:        "submitted",
	StatePending:          "pending",
	StateFinalizedSuccess: "finalized_success",
	StateFinalizedFailed:  "finalized_failed",
	StateResultExtracted:  "result_extracted",
	StateRejected:         "rejected",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// ParseState is the inverse of State.String.
func ParseState(name string) (State, bool) {
	for s, n := range stateNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// transitions lists the only edges of the lifecycle. Reads leave through
// Simulated -> ResultExtracted; a submission the ledger refuses outright
// leaves through Submitted -> Rejected.
var transitions = map[State][]State{
	StateBuilt:            {StateSimulated},
	StateSimulated:        {StatePrepared, StateResultExtracted},
	StatePrepared:         {StateSigned},
	StateSigned:           {StateSubmitted},
	StateSubmitted:        {StatePending, StateRejected},
	StatePending:          {StatePending, StateFinalizedSuccess, StateFinalizedFailed},
	StateFinalizedSuccess: {StateResultExtracted},
	StateFinalizedFailed:  {StateRejected},
}

func (s State) CanTransition(to State) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition exists.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// Final reports whether the ledger outcome is known, which is the case from
// either finalized state onward.
func (s State) Final() bool {
	switch s {
	case StateFinalizedSuccess, StateFinalizedFailed,
		StateResultExtracted, StateRejected:
		return true
	}
	return false
}

var ErrInvalidTransition = errors.New("invalid lifecycle transition")

// Lifecycle enforces the strictly forward progression of an invocation.
type Lifecycle struct {
	state   State
	history []State
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: StateBuilt, history: []State{StateBuilt}}
}

// RestoreLifecycle resumes a lifecycle at a previously recorded state.
func RestoreLifecycle(s State) *Lifecycle {
	return &Lifecycle{state: s, history: []State{s}}
}

func (l *Lifecycle) State() State { return l.state }

// History returns every state entered, repeated Pending entries collapsed.
func (l *Lifecycle) History() []State {
	return append([]State(nil), l.history...)
}

func (l *Lifecycle) Advance(to State) error {
	if !l.state.CanTransition(to) {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", l.state, to)
	}
	if to != l.state {
		l.history = append(l.history, to)
	}
	l.state = to
	return nil
}
