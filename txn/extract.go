package txn

import (
	"github.com/pkg/errors"

	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

// ExtractReturn locates the return value of the invocation inside the
// metadata of a successful transaction: the first operation result. A void
// method, or metadata without results, yields wire.Void.
func ExtractReturn(meta []byte) (wire.Value, error) {
	if len(meta) == 0 {
		return wire.Void{}, nil
	}

	rm := &ledger.ResultMeta{}
	if err := rm.FromCanonicalBytes(meta); err != nil {
		return nil, &wire.DecodingError{Reason: "result meta", Err: err}
	}
	if len(rm.Results) == 0 {
		return wire.Void{}, nil
	}

	op := rm.Results[0]
	if op.Code != ledger.OperationSuccess {
		return nil, &wire.DecodingError{Reason: "operation did not succeed"}
	}
	return returnValue(op.ReturnValue)
}

func returnValue(raw []byte) (wire.Value, error) {
	if len(raw) == 0 {
		return wire.Void{}, nil
	}
	return wire.Unmarshal(raw)
}

// DecodeReturn checks a returned value against shape and decodes it.
// Absent values decode to nil.
func DecodeReturn(v wire.Value, shape wire.Shape) (any, error) {
	if wire.IsAbsent(v) {
		return nil, nil
	}
	if !shape.Accepts(v) {
		return nil, &wire.DecodingError{
			Tag:    v.Tag(),
			Reason: "unexpected return value, want " + shape.Tag.String(),
		}
	}
	return wire.Decode(v)
}

// Extract pulls the return value out of a transaction that finalized
// successfully and moves it to its last state.
func Extract(tx *Tx) (wire.Value, error) {
	if tx.State() != StateFinalizedSuccess || tx.Status == nil {
		return nil, errors.Wrapf(
			ErrInvalidTransition,
			"extract from %s",
			tx.State(),
		)
	}
	v, err := ExtractReturn(tx.Status.ResultMeta)
	if err != nil {
		return nil, err
	}
	if err := tx.advance(StateResultExtracted); err != nil {
		return nil, errors.Wrap(err, "extract")
	}
	tx.Result = v
	return v, nil
}
