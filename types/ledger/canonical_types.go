package ledger

// Type prefixes for the canonical byte forms of transport payloads.
const (
	AccountInfoType       uint32 = 0x0A01
	SimulationResultType  uint32 = 0x0A02
	SubmitResultType      uint32 = 0x0A03
	TransactionStatusType uint32 = 0x0A04
	ResultMetaType        uint32 = 0x0A05
	EnvelopeType          uint32 = 0x0A10
	SignedEnvelopeType    uint32 = 0x0A11
	JournalEntryType      uint32 = 0x0A20
)
