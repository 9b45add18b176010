package offerhub

import (
	"fmt"

	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

// fields reads the members of a struct-shaped map. The first failure
// sticks and names the field it happened on.
type fields struct {
	m    wire.Map
	kind string
	err  error
}

func structOf(v wire.Value, kind string) (*fields, error) {
	m, ok := v.(wire.Map)
	if !ok {
		return nil, &wire.DecodingError{
			Tag:    v.Tag(),
			Reason: kind + " is not a map",
		}
	}
	return &fields{m: m, kind: kind}, nil
}

func (f *fields) get(name string, optional bool) wire.Value {
	if f.err != nil {
		return nil
	}
	v, ok := f.m.Get(name)
	if !ok || v.Tag() == wire.TagVoid {
		if !optional {
			f.fail(name, &wire.DecodingError{Reason: "missing"})
		}
		return nil
	}
	return v
}

func (f *fields) fail(name string, err error) {
	if f.err == nil {
		f.err = &wire.DecodingError{
			Reason: fmt.Sprintf("%s.%s", f.kind, name),
			Err:    err,
		}
	}
}

func (f *fields) address(name string) string {
	v := f.get(name, false)
	if v == nil {
		return ""
	}
	a, err := wire.AsAddress(v)
	if err != nil {
		f.fail(name, err)
		return ""
	}
	return a.String()
}

func (f *fields) text(name string, optional bool) string {
	v := f.get(name, optional)
	if v == nil {
		return ""
	}
	s, err := wire.AsString(v)
	if err != nil {
		f.fail(name, err)
	}
	return s
}

func (f *fields) uint64(name string) uint64 {
	v := f.get(name, false)
	if v == nil {
		return 0
	}
	n, err := wire.AsUint64(v)
	if err != nil {
		f.fail(name, err)
	}
	return n
}

func (f *fields) hash(name string, optional bool) *ProofHash {
	v := f.get(name, optional)
	if v == nil {
		return nil
	}
	b, err := wire.AsBytes(v)
	if err != nil {
		f.fail(name, err)
		return nil
	}
	h, err := ProofHashFromBytes(b)
	if err != nil {
		f.fail(name, err)
		return nil
	}
	return &h
}

func (f *fields) vec(name string) wire.Vec {
	v := f.get(name, false)
	if v == nil {
		return nil
	}
	vec, ok := v.(wire.Vec)
	if !ok {
		f.fail(name, &wire.DecodingError{Tag: v.Tag(), Reason: "not a vec"})
	}
	return vec
}

func decodeProfile(v wire.Value) (*Profile, error) {
	if wire.IsAbsent(v) {
		return nil, nil
	}
	f, err := structOf(v, "profile")
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Owner:          f.address("owner"),
		MetadataURI:    f.text("metadata_uri", false),
		Identifier:     f.text("did", true),
		DisplayName:    f.text("display_name", false),
		CountryCode:    f.text("country_code", true),
		EmailHash:      f.hash("email_hash", true),
		JoinedAt:       f.uint64("joined_at"),
		LinkedAccounts: []LinkedAccount{},
	}
	for i, e := range f.vec("linked_accounts") {
		la, err := structOf(e, fmt.Sprintf("linked_accounts[%d]", i))
		if err != nil {
			return nil, err
		}
		account := LinkedAccount{
			Platform: la.text("platform", false),
			Handle:   la.text("handle", false),
		}
		if la.err != nil {
			return nil, la.err
		}
		p.LinkedAccounts = append(p.LinkedAccounts, account)
	}
	if f.err != nil {
		return nil, f.err
	}
	return p, nil
}

func decodeClaim(v wire.Value) (*Claim, error) {
	if wire.IsAbsent(v) {
		return nil, nil
	}
	f, err := structOf(v, "claim")
	if err != nil {
		return nil, err
	}

	c := &Claim{
		ID:        f.uint64("id"),
		Issuer:    f.address("issuer"),
		Receiver:  f.address("receiver"),
		ClaimType: f.text("claim_type", false),
	}
	if h := f.hash("proof_hash", false); h != nil {
		c.ProofHash = *h
	}
	c.Status = f.status("status")
	if f.err != nil {
		return nil, f.err
	}
	return c, nil
}

// status reads a unit enum variant, encoded as a vec holding its name.
func (f *fields) status(name string) ClaimStatus {
	v := f.get(name, false)
	if v == nil {
		return 0
	}
	variant := v
	if vec, ok := v.(wire.Vec); ok {
		if len(vec) != 1 {
			f.fail(name, &wire.DecodingError{
				Tag:    wire.TagVec,
				Reason: fmt.Sprintf("enum with %d elements", len(vec)),
			})
			return 0
		}
		variant = vec[0]
	}
	s, err := wire.AsString(variant)
	if err != nil {
		f.fail(name, err)
		return 0
	}
	status, ok := parseClaimStatus(s)
	if !ok {
		f.fail(name, &wire.DecodingError{
			Tag:    variant.Tag(),
			Reason: fmt.Sprintf("unknown claim status %q", s),
		})
	}
	return status
}

func decodeClaims(v wire.Value) ([]Claim, error) {
	if wire.IsAbsent(v) {
		return []Claim{}, nil
	}
	vec, ok := v.(wire.Vec)
	if !ok {
		return nil, &wire.DecodingError{Tag: v.Tag(), Reason: "claims are not a vec"}
	}
	out := make([]Claim, 0, len(vec))
	for _, e := range vec {
		c, err := decodeClaim(e)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out = append(out, *c)
		}
	}
	return out, nil
}
