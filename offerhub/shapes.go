package offerhub

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

const (
	maxMetadataURILength = 256
	minIdentifierLength  = 10
)

var (
	addressShape     = wire.Of(wire.TagAddress)
	metadataURIShape = wire.Shape{
		Tag:      wire.TagString,
		MaxLen:   maxMetadataURILength,
		NonEmpty: true,
	}
	countryCodeShape = wire.OptionalOf(wire.Shape{
		Tag:      wire.TagString,
		FixedLen: 2,
	})
	proofHashShape     = wire.FixedBytes(32)
	emailHashShape     = wire.OptionalOf(proofHashShape)
	linkedAccountShape = wire.StructOf(
		wire.F("platform", wire.Of(wire.TagSymbol)),
		wire.F("handle", wire.Of(wire.TagString)),
	)
	linkedAccountsShape = wire.VecOf(linkedAccountShape)
	claimIDShape        = wire.Of(wire.TagU64)
)

// arg encodes one positional argument, naming it in any encoding error.
func arg(name string, native any, shape wire.Shape) (wire.Value, error) {
	v, err := wire.Encode(native, shape)
	var encErr *wire.EncodingError
	if errors.As(err, &encErr) {
		switch {
		case encErr.Path == "":
			encErr.Path = name
		case strings.HasPrefix(encErr.Path, "["):
			encErr.Path = name + encErr.Path
		default:
			encErr.Path = name + "." + encErr.Path
		}
	}
	return v, err
}

func profileArgs(in ProfileInput, update bool) ([]wire.Value, error) {
	owner, err := addressArg("owner", in.Owner)
	if err != nil {
		return nil, err
	}
	if err := ValidateMetadataURI(in.MetadataURI); err != nil {
		return nil, err
	}
	uri, err := arg("metadata_uri", in.MetadataURI, metadataURIShape)
	if err != nil {
		return nil, err
	}
	name, err := arg("display_name", in.DisplayName, wire.Of(wire.TagString))
	if err != nil {
		return nil, err
	}

	var country any
	if in.CountryCode != "" {
		country = in.CountryCode
	}
	countryCode, err := arg("country_code", country, countryCodeShape)
	if err != nil {
		return nil, err
	}

	var email any
	if in.EmailHash != nil {
		email = in.EmailHash
	}
	emailHash, err := arg("email_hash", email, emailHashShape)
	if err != nil {
		return nil, err
	}

	accounts := make([]map[string]any, 0, len(in.LinkedAccounts))
	for _, a := range in.LinkedAccounts {
		accounts = append(accounts, map[string]any{
			"platform": a.Platform,
			"handle":   a.Handle,
		})
	}
	linked, err := arg("linked_accounts", accounts, linkedAccountsShape)
	if err != nil {
		return nil, err
	}

	if update {
		return []wire.Value{owner, name, uri, countryCode, emailHash, linked}, nil
	}
	return []wire.Value{owner, uri, name, countryCode, emailHash, linked}, nil
}

func addressArg(name, address string) (wire.Value, error) {
	a, err := wire.ParseAddress(address)
	if err != nil {
		return nil, &wire.EncodingError{
			Path:   name,
			Reason: err.Error(),
			Err:    ErrInvalidAddress,
		}
	}
	return a, nil
}
