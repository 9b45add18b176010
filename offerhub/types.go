package offerhub

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

// ProofHash is the 32 byte digest a claim commits to.
type ProofHash [32]byte

// ProofHashFromBytes rejects any length other than 32.
func ProofHashFromBytes(b []byte) (ProofHash, error) {
	var h ProofHash
	if len(b) != len(h) {
		return h, &wire.EncodingError{
			Path:   "proof_hash",
			Reason: fmt.Sprintf("length %d, want exactly 32", len(b)),
		}
	}
	copy(h[:], b)
	return h, nil
}

// ParseProofHash reads the hex form produced by Hex. The 0x prefix is
// optional.
func ParseProofHash(s string) (ProofHash, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return ProofHash{}, &wire.EncodingError{
			Path:   "proof_hash",
			Reason: "not hex",
			Err:    err,
		}
	}
	return ProofHashFromBytes(b)
}

func (h ProofHash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

func (h ProofHash) MarshalText() ([]byte, error) { return []byte(h.Hex()), nil }

type LinkedAccount struct {
	Platform string `json:"platform"`
	Handle   string `json:"handle"`
}

type Profile struct {
	Owner       string `json:"owner"`
	MetadataURI string `json:"metadata_uri"`
	// Identifier is the linked decentralized identifier, empty until one
	// was linked.
	Identifier     string          `json:"identifier,omitempty"`
	DisplayName    string          `json:"display_name"`
	CountryCode    string          `json:"country_code,omitempty"`
	EmailHash      *ProofHash      `json:"email_hash,omitempty"`
	LinkedAccounts []LinkedAccount `json:"linked_accounts"`
	JoinedAt       uint64          `json:"joined_at"`
}

// ProfileInput carries the mutable profile fields. Empty CountryCode and
// nil EmailHash are sent as absent.
type ProfileInput struct {
	Owner          string
	MetadataURI    string
	DisplayName    string
	CountryCode    string
	EmailHash      []byte
	LinkedAccounts []LinkedAccount
}

type ClaimStatus uint8

const (
	ClaimPending ClaimStatus = iota
	ClaimApproved
	ClaimRejected
)

var claimStatusNames = [...]string{"Pending", "Approved", "Rejected"}

func (s ClaimStatus) String() string {
	if int(s) < len(claimStatusNames) {
		return claimStatusNames[s]
	}
	return "Unknown"
}

func (s ClaimStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func parseClaimStatus(name string) (ClaimStatus, bool) {
	for i, n := range claimStatusNames {
		if n == name {
			return ClaimStatus(i), true
		}
	}
	return 0, false
}

type Claim struct {
	ID        uint64      `json:"id"`
	Issuer    string      `json:"issuer"`
	Receiver  string      `json:"receiver"`
	ClaimType string      `json:"claim_type"`
	ProofHash ProofHash   `json:"proof_hash"`
	Status    ClaimStatus `json:"status"`
}

// Receipt describes a finalized write.
type Receipt struct {
	CallID   string `json:"call_id"`
	Hash     string `json:"hash"`
	Ledger   uint64 `json:"ledger"`
	Fee      uint64 `json:"fee"`
	Attempts int    `json:"attempts"`
}

// ProfileSummary gathers what a profile page shows about one account.
type ProfileSummary struct {
	Profile    *Profile `json:"profile"`
	Reputation uint64   `json:"reputation"`
	Claims     []Claim  `json:"claims"`
	Identifier string   `json:"identifier,omitempty"`
}
