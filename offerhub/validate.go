package offerhub

import (
	"strings"
	"unicode/utf8"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"

	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

const ipfsScheme = "ipfs://"

// ValidateMetadataURI checks the bounds the contract enforces and, for
// ipfs:// URIs, that the path starts with a well formed CID.
func ValidateMetadataURI(uri string) error {
	n := len(uri)
	if n == 0 || n > maxMetadataURILength {
		return &wire.EncodingError{
			Path:   "metadata_uri",
			Reason: "must be 1 to 256 bytes",
		}
	}
	if !strings.HasPrefix(uri, ipfsScheme) {
		return nil
	}

	root, _, _ := strings.Cut(strings.TrimPrefix(uri, ipfsScheme), "/")
	if _, err := cid.Decode(root); err != nil {
		return &wire.EncodingError{
			Path:   "metadata_uri",
			Reason: "invalid ipfs cid",
			Err:    err,
		}
	}
	return nil
}

// MetadataURIFromDocument returns the ipfs:// URI under which the raw
// document is addressed.
func MetadataURIFromDocument(doc []byte) (string, error) {
	hash, err := multihash.Sum(doc, multihash.SHA2_256, -1)
	if err != nil {
		return "", errors.Wrap(err, "metadata uri from document")
	}
	return ipfsScheme + cid.NewCidV1(cid.Raw, hash).String(), nil
}

// ValidateIdentifier checks an identifier before it is linked.
func ValidateIdentifier(identifier string) error {
	if utf8.RuneCountInString(identifier) < minIdentifierLength {
		return &wire.EncodingError{
			Path:   "identifier",
			Reason: "too short",
			Err:    ErrInvalidIdentifier,
		}
	}
	return nil
}
