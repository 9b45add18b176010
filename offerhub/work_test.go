package offerhub

import (
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

func TestWorkProofHash(t *testing.T) {
	w := WorkDelivery{
		Title:        "  Offer Hub website  ",
		Description:  "Landing page <v2> & docs",
		DeliveryURLs: []string{"https://example.com/a", "  ", ""},
		DeliveryDate: "2025-01-20",
	}

	want := sha256.Sum256([]byte(
		`{"delivery_date":"2025-01-20",` +
			`"delivery_urls":["https://example.com/a"],` +
			`"description":"Landing page <v2> & docs",` +
			`"title":"Offer Hub website"}`,
	))

	got, err := WorkProofHash(w)
	require.NoError(t, err)
	assert.Equal(t, ProofHash(want), got)

	w.FileHash = "ab12"
	withFile, err := WorkProofHash(w)
	require.NoError(t, err)
	assert.NotEqual(t, got, withFile)
}

func TestWorkProofHash_NoURLs(t *testing.T) {
	want := sha256.Sum256([]byte(
		`{"delivery_date":"2025-01-20","delivery_urls":[],"description":"","title":"x"}`,
	))
	got, err := WorkProofHash(WorkDelivery{Title: "x", DeliveryDate: "2025-01-20"})
	require.NoError(t, err)
	assert.Equal(t, ProofHash(want), got)
}

func TestHashFile(t *testing.T) {
	h, err := HashFile(strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(
		t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		h,
	)
}

func TestClaimTypeFor(t *testing.T) {
	tests := []struct {
		title string
		date  string
		want  string
	}{
		{"Offer Hub Website redesign", "2025-01-20", "job_offer_hub_website_2025_01_20"},
		{"A UI for it", "2024-12-31T10:00:00Z", "job_for_2024_12_31"},
		{"!!", "2025-03-04", "job_work_2025_03_04"},
		{
			strings.Repeat("abcdefghijklmnopqrstuvwxyz", 3),
			"2025-03-04",
			"job_" + strings.Repeat("abcdefghijklmnopqrstuvwxyz", 3)[:60],
		},
	}
	for _, tt := range tests {
		got, err := ClaimTypeFor(WorkDelivery{Title: tt.title, DeliveryDate: tt.date})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.LessOrEqual(t, len(got), 64)
	}

	_, err := ClaimTypeFor(WorkDelivery{Title: "x", DeliveryDate: "yesterday"})
	assert.Error(t, err)
}

func TestMetadataURIFromDocument(t *testing.T) {
	uri, err := MetadataURIFromDocument([]byte(`{"name":"Ada"}`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "ipfs://bafkrei"))
	assert.NoError(t, ValidateMetadataURI(uri))
	assert.NoError(t, ValidateMetadataURI(uri+"/profile.json"))
	assert.NoError(t, ValidateMetadataURI("https://example.com/p.json"))
	assert.Error(t, ValidateMetadataURI("ipfs://"))
}

func TestProofHashFromBytes(t *testing.T) {
	_, err := ProofHashFromBytes(make([]byte, 32))
	assert.NoError(t, err)
	for _, n := range []int{0, 31, 33} {
		_, err := ProofHashFromBytes(make([]byte, n))
		assert.Error(t, err)
	}
}

func TestParseProofHash(t *testing.T) {
	var h ProofHash
	h[0], h[31] = 0xab, 0x01

	got, err := ParseProofHash(h.Hex())
	require.NoError(t, err)
	assert.Equal(t, h, got)

	got, err = ParseProofHash(strings.TrimPrefix(h.Hex(), "0x"))
	require.NoError(t, err)
	assert.Equal(t, h, got)

	_, err = ParseProofHash("0xzz")
	var encErr *wire.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "proof_hash", encErr.Path)

	_, err = ParseProofHash("0xabcd")
	assert.Error(t, err)

	text, err := h.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, h.Hex(), string(text))
}

func TestEmailHash(t *testing.T) {
	want := sha256.Sum256([]byte("dev@offerhub.example"))
	assert.Equal(t, ProofHash(want), EmailHash("  Dev@OfferHub.example\n"))
}
