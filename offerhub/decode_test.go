package offerhub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

func profileValue() wire.Map {
	return wire.Map{
		{Key: wire.Symbol("country_code"), Val: wire.Symbol("ES")},
		{Key: wire.Symbol("did"), Val: wire.Void{}},
		{Key: wire.Symbol("display_name"), Val: wire.String("Ada")},
		{Key: wire.Symbol("email_hash"), Val: wire.Bytes(make([]byte, 32))},
		{Key: wire.Symbol("joined_at"), Val: wire.U64(1700000000)},
		{Key: wire.Symbol("linked_accounts"), Val: wire.Vec{wire.Map{
			{Key: wire.Symbol("handle"), Val: wire.String("ada")},
			{Key: wire.Symbol("platform"), Val: wire.Symbol("github")},
		}}},
		{Key: wire.Symbol("metadata_uri"), Val: wire.String("https://example.com/p.json")},
		{Key: wire.Symbol("owner"), Val: wire.MustParseAddress(accountA)},
	}
}

func TestDecodeProfile(t *testing.T) {
	p, err := decodeProfile(profileValue())
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, accountA, p.Owner)
	assert.Equal(t, "ES", p.CountryCode)
	assert.Empty(t, p.Identifier)
	assert.NotNil(t, p.EmailHash)
	assert.Equal(t, uint64(1700000000), p.JoinedAt)
	assert.Equal(t, []LinkedAccount{{Platform: "github", Handle: "ada"}}, p.LinkedAccounts)
}

func TestDecodeProfile_Errors(t *testing.T) {
	_, err := decodeProfile(wire.String("x"))
	assert.Error(t, err)

	_, err = decodeProfile(profileValue()[:4])
	var decErr *wire.DecodingError
	require.ErrorAs(t, err, &decErr)

	bad := profileValue()
	bad[3].Val = wire.Bytes{0x01}
	_, err = decodeProfile(bad)
	assert.ErrorContains(t, err, "profile.email_hash")
}

func TestDecodeClaimStatus(t *testing.T) {
	base := func(status wire.Value) wire.Map {
		return wire.Map{
			{Key: wire.Symbol("claim_type"), Val: wire.String("job_completed")},
			{Key: wire.Symbol("id"), Val: wire.U64(1)},
			{Key: wire.Symbol("issuer"), Val: wire.MustParseAddress(accountA)},
			{Key: wire.Symbol("proof_hash"), Val: wire.Bytes(make([]byte, 32))},
			{Key: wire.Symbol("receiver"), Val: wire.MustParseAddress(accountB)},
			{Key: wire.Symbol("status"), Val: status},
		}
	}

	for status, want := range map[string]ClaimStatus{
		"Pending":  ClaimPending,
		"Approved": ClaimApproved,
		"Rejected": ClaimRejected,
	} {
		c, err := decodeClaim(base(wire.Vec{wire.Symbol(status)}))
		require.NoError(t, err)
		assert.Equal(t, want, c.Status)
		assert.Equal(t, status, c.Status.String())
	}

	_, err := decodeClaim(base(wire.Vec{wire.Symbol("Revoked")}))
	assert.Error(t, err)
	_, err = decodeClaim(base(wire.Vec{}))
	assert.Error(t, err)
}
