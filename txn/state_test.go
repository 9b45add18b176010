package txn

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle_WriteProgression(t *testing.T) {
	l := NewLifecycle()
	for _, s := range []State{
		StateSimulated,
		StatePrepared,
		StateSigned,
		StateSubmitted,
		StatePending,
		StatePending,
		StatePending,
		StateFinalizedSuccess,
		StateResultExtracted,
	} {
		require.NoError(t, l.Advance(s), "advance to %s", s)
	}

	assert.Equal(t, StateResultExtracted, l.State())
	assert.True(t, l.State().Terminal())
	assert.Equal(t, []State{
		StateBuilt,
		StateSimulated,
		StatePrepared,
		StateSigned,
		StateSubmitted,
		StatePending,
		StateFinalizedSuccess,
		StateResultExtracted,
	}, l.History())
}

func TestLifecycle_RejectsBackEdges(t *testing.T) {
	tests := []struct {
		from State
		to   State
	}{
		{StateBuilt, StateSigned},
		{StateSimulated, StateBuilt},
		{StatePending, StateSubmitted},
		{StateFinalizedSuccess, StatePending},
		{StateFinalizedFailed, StateResultExtracted},
		{StateResultExtracted, StateBuilt},
		{StateRejected, StatePending},
		{StateSigned, StateSigned},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			l := RestoreLifecycle(tt.from)
			err := l.Advance(tt.to)
			assert.True(t, errors.Is(err, ErrInvalidTransition))
			assert.Equal(t, tt.from, l.State())
		})
	}
}

func TestLifecycle_ReadAndRejectPaths(t *testing.T) {
	read := NewLifecycle()
	require.NoError(t, read.Advance(StateSimulated))
	require.NoError(t, read.Advance(StateResultExtracted))

	refused := RestoreLifecycle(StateSubmitted)
	require.NoError(t, refused.Advance(StateRejected))
	assert.True(t, refused.State().Final())

	failed := RestoreLifecycle(StatePending)
	require.NoError(t, failed.Advance(StateFinalizedFailed))
	require.NoError(t, failed.Advance(StateRejected))
	assert.True(t, failed.State().Terminal())
}

func TestParseState(t *testing.T) {
	for s := range stateNames {
		parsed, ok := ParseState(s.String())
		require.True(t, ok)
		assert.Equal(t, s, parsed)
	}
	_, ok := ParseState("unknown")
	assert.False(t, ok)
}
