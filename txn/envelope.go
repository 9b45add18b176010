package txn

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/OFFER-HUB/protocol-offer-hub/types/canonical"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

// Invocation is the single contract call an envelope carries.
type Invocation struct {
	Contract string
	Method   string
	Args     []wire.Value
}

type Signature struct {
	PublicKey []byte
	Signature []byte
}

// Envelope is a transaction carrying exactly one contract invocation.
type Envelope struct {
	Source   string
	Sequence uint64
	// Fee is the total fee in base units: the base inclusion fee plus, once
	// prepared, the simulated resource fee.
	Fee              uint64
	ExpirationLedger uint64
	Invocation       Invocation
	Resources        ledger.Resources
	ResourceFee      uint64
	Signatures       []Signature
}

func (e *Envelope) ToCanonicalBytes() ([]byte, error) {
	return e.canonical(true)
}

// UnsignedBytes is the canonical form with the signatures left out. It is
// what signers sign and what simulation receives.
func (e *Envelope) UnsignedBytes() ([]byte, error) {
	return e.canonical(false)
}

func (e *Envelope) canonical(withSignatures bool) ([]byte, error) {
	w := canonical.NewWriter(ledger.EnvelopeType)
	w.Text(e.Source)
	w.Uint64(e.Sequence)
	w.Uint64(e.Fee)
	w.Uint64(e.ExpirationLedger)
	w.Text(e.Invocation.Contract)
	w.Text(e.Invocation.Method)
	w.Uint32(uint32(len(e.Invocation.Args)))
	for i, arg := range e.Invocation.Args {
		data, err := wire.Marshal(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "to canonical bytes: arg %d", i)
		}
		w.Bytes(data)
	}
	ledger.WriteResources(w, e.Resources)
	w.Uint64(e.ResourceFee)

	if !withSignatures {
		w.Uint32(0)
		return w.Finish("to canonical bytes")
	}
	w.Uint32(uint32(len(e.Signatures)))
	for _, s := range e.Signatures {
		w.Bytes(s.PublicKey)
		w.Bytes(s.Signature)
	}
	return w.Finish("to canonical bytes")
}

func (e *Envelope) FromCanonicalBytes(data []byte) error {
	rd := canonical.NewReader(data, ledger.EnvelopeType)
	e.Source = rd.Text()
	e.Sequence = rd.Uint64()
	e.Fee = rd.Uint64()
	e.ExpirationLedger = rd.Uint64()
	e.Invocation.Contract = rd.Text()
	e.Invocation.Method = rd.Text()

	count := rd.Count(4)
	e.Invocation.Args = nil
	for i := uint32(0); i < count && rd.Err() == nil; i++ {
		raw := rd.Bytes()
		if rd.Err() != nil {
			break
		}
		v, err := wire.Unmarshal(raw)
		if err != nil {
			return errors.Wrapf(err, "from canonical bytes: arg %d", i)
		}
		e.Invocation.Args = append(e.Invocation.Args, v)
	}

	e.Resources = ledger.ReadResources(rd)
	e.ResourceFee = rd.Uint64()

	sigs := rd.Count(8)
	e.Signatures = nil
	for i := uint32(0); i < sigs && rd.Err() == nil; i++ {
		e.Signatures = append(e.Signatures, Signature{
			PublicKey: rd.Bytes(),
			Signature: rd.Bytes(),
		})
	}
	return rd.Finish("from canonical bytes")
}

// ParseEnvelope decodes a canonical envelope.
func ParseEnvelope(data []byte) (*Envelope, error) {
	e := &Envelope{}
	if err := e.FromCanonicalBytes(data); err != nil {
		return nil, err
	}
	return e, nil
}

// SigningPayload is the digest a signer commits to: the network id (hash
// of the passphrase) followed by the unsigned envelope, hashed again.
func (e *Envelope) SigningPayload(passphrase string) ([]byte, error) {
	unsigned, err := e.UnsignedBytes()
	if err != nil {
		return nil, errors.Wrap(err, "signing payload")
	}
	return SigningPayload(passphrase, unsigned), nil
}

// SigningPayload computes the digest for an unsigned canonical envelope.
func SigningPayload(passphrase string, unsigned []byte) []byte {
	networkID := sha3.Sum256([]byte(passphrase))
	h := sha3.New256()
	h.Write(networkID[:])
	h.Write(unsigned)
	return h.Sum(nil)
}

// Hash is the hex transaction hash the ledger reports for this envelope.
func (e *Envelope) Hash(passphrase string) (string, error) {
	payload, err := e.SigningPayload(passphrase)
	if err != nil {
		return "", errors.Wrap(err, "hash")
	}
	return hex.EncodeToString(payload), nil
}
