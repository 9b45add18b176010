package offerhub

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const maxClaimTypeLength = 64

// WorkDelivery describes delivered work that a claim attests to.
type WorkDelivery struct {
	Title        string
	Description  string
	DeliveryURLs []string
	// DeliveryDate is an RFC 3339 timestamp or a plain YYYY-MM-DD date.
	DeliveryDate string
	// FileHash is the hex SHA-256 of an attached file, if any.
	FileHash string
}

// WorkProofHash is the SHA-256 of the delivery serialised as JSON with
// sorted keys.
func WorkProofHash(w WorkDelivery) (ProofHash, error) {
	urls := make([]string, 0, len(w.DeliveryURLs))
	for _, u := range w.DeliveryURLs {
		if strings.TrimSpace(u) != "" {
			urls = append(urls, u)
		}
	}

	doc := map[string]any{
		"title":         strings.TrimSpace(w.Title),
		"description":   strings.TrimSpace(w.Description),
		"delivery_urls": urls,
		"delivery_date": w.DeliveryDate,
	}
	if w.FileHash != "" {
		doc["file_hash"] = w.FileHash
	}

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return ProofHash{}, errors.Wrap(err, "work proof hash")
	}

	return sha256.Sum256(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// HashFile returns the hex SHA-256 of a file's contents.
func HashFile(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", errors.Wrap(err, "hash file")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

var nonWord = regexp.MustCompile(`[^a-z0-9\s]`)

// ClaimTypeFor derives a readable claim type such as
// "job_offer_hub_website_2025_01_20" from a delivery.
func ClaimTypeFor(w WorkDelivery) (string, error) {
	date, err := parseDeliveryDate(w.DeliveryDate)
	if err != nil {
		return "", err
	}

	var words []string
	for _, word := range strings.Fields(
		nonWord.ReplaceAllString(strings.ToLower(w.Title), ""),
	) {
		if len(word) > 2 {
			words = append(words, word)
		}
		if len(words) == 3 {
			break
		}
	}
	title := strings.Join(words, "_")
	if title == "" {
		title = "work"
	}

	claimType := fmt.Sprintf("job_%s_%s", title, date.Format("2006_01_02"))
	if len(claimType) > maxClaimTypeLength {
		claimType = claimType[:maxClaimTypeLength]
	}
	return claimType, nil
}

func parseDeliveryDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognised delivery date %q", s)
}

// EmailHash is the digest stored in a profile in place of the address
// itself. Case and surrounding space do not change it.
func EmailHash(email string) ProofHash {
	return sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
}
