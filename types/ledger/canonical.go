package ledger

import (
	"github.com/pkg/errors"

	"github.com/OFFER-HUB/protocol-offer-hub/types/canonical"
)

func (a *AccountInfo) ToCanonicalBytes() ([]byte, error) {
	w := canonical.NewWriter(AccountInfoType)
	w.Text(a.Address)
	w.Uint64(a.Sequence)
	w.Uint64(a.Balance)
	return w.Finish("to canonical bytes")
}

func (a *AccountInfo) FromCanonicalBytes(data []byte) error {
	rd := canonical.NewReader(data, AccountInfoType)
	a.Address = rd.Text()
	a.Sequence = rd.Uint64()
	a.Balance = rd.Uint64()
	return rd.Finish("from canonical bytes")
}

func (s *SimulationResult) ToCanonicalBytes() ([]byte, error) {
	w := canonical.NewWriter(SimulationResultType)
	w.Text(s.Error)
	w.Uint64(s.MinResourceFee)
	WriteResources(w, s.Resources)
	w.Bytes(s.ReturnValue)
	w.Uint64(s.LatestLedger)
	return w.Finish("to canonical bytes")
}

func (s *SimulationResult) FromCanonicalBytes(data []byte) error {
	rd := canonical.NewReader(data, SimulationResultType)
	s.Error = rd.Text()
	s.MinResourceFee = rd.Uint64()
	s.Resources = ReadResources(rd)
	s.ReturnValue = rd.Bytes()
	s.LatestLedger = rd.Uint64()
	return rd.Finish("from canonical bytes")
}

// WriteResources appends a footprint to a canonical writer owned by another
// payload.
func WriteResources(w *canonical.Writer, r Resources) {
	w.Uint32(r.Instructions)
	w.Uint32(r.ReadBytes)
	w.Uint32(r.WriteBytes)
	w.BytesList(r.ReadOnly)
	w.BytesList(r.ReadWrite)
}

func ReadResources(rd *canonical.Reader) Resources {
	return Resources{
		Instructions: rd.Uint32(),
		ReadBytes:    rd.Uint32(),
		WriteBytes:   rd.Uint32(),
		ReadOnly:     rd.BytesList(),
		ReadWrite:    rd.BytesList(),
	}
}

func (s *SubmitResult) ToCanonicalBytes() ([]byte, error) {
	w := canonical.NewWriter(SubmitResultType)
	w.Text(s.Hash)
	w.Uint8(uint8(s.Status))
	w.Text(s.ErrorResult)
	w.Uint64(s.LatestLedger)
	return w.Finish("to canonical bytes")
}

func (s *SubmitResult) FromCanonicalBytes(data []byte) error {
	rd := canonical.NewReader(data, SubmitResultType)
	s.Hash = rd.Text()
	s.Status = SubmitStatus(rd.Uint8())
	s.ErrorResult = rd.Text()
	s.LatestLedger = rd.Uint64()
	if err := rd.Finish("from canonical bytes"); err != nil {
		return err
	}
	if s.Status > SubmitError {
		return errors.Wrap(
			errors.Errorf("unknown submit status %d", s.Status),
			"from canonical bytes",
		)
	}
	return nil
}

func (t *TransactionStatus) ToCanonicalBytes() ([]byte, error) {
	w := canonical.NewWriter(TransactionStatusType)
	w.Uint8(uint8(t.Status))
	w.Uint64(t.Ledger)
	w.Bytes(t.ResultMeta)
	w.Text(t.Diagnostic)
	return w.Finish("to canonical bytes")
}

func (t *TransactionStatus) FromCanonicalBytes(data []byte) error {
	rd := canonical.NewReader(data, TransactionStatusType)
	t.Status = TxStatus(rd.Uint8())
	t.Ledger = rd.Uint64()
	t.ResultMeta = rd.Bytes()
	t.Diagnostic = rd.Text()
	if err := rd.Finish("from canonical bytes"); err != nil {
		return err
	}
	if t.Status > TxFailed {
		return errors.Wrap(
			errors.Errorf("unknown transaction status %d", t.Status),
			"from canonical bytes",
		)
	}
	return nil
}

func (m *ResultMeta) ToCanonicalBytes() ([]byte, error) {
	w := canonical.NewWriter(ResultMetaType)
	w.Uint64(m.FeeCharged)
	w.Uint32(uint32(len(m.Results)))
	for _, r := range m.Results {
		w.Uint8(uint8(r.Code))
		w.Bytes(r.ReturnValue)
	}
	return w.Finish("to canonical bytes")
}

func (m *ResultMeta) FromCanonicalBytes(data []byte) error {
	rd := canonical.NewReader(data, ResultMetaType)
	m.FeeCharged = rd.Uint64()
	// code byte plus blob length
	count := rd.Count(5)
	m.Results = nil
	for i := uint32(0); i < count && rd.Err() == nil; i++ {
		m.Results = append(m.Results, OperationResult{
			Code:        OperationCode(rd.Uint8()),
			ReturnValue: rd.Bytes(),
		})
	}
	return rd.Finish("from canonical bytes")
}
