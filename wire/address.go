package wire

import (
	"encoding/base32"
	"strings"

	"github.com/pkg/errors"
)

// AddressKind distinguishes account addresses from contract addresses.
type AddressKind uint8

const (
	AccountAddress  AddressKind = 1
	ContractAddress AddressKind = 2
)

const (
	accountVersionByte  byte = 6 << 3 // 'G'
	contractVersionByte byte = 2 << 3 // 'C'

	// AddressLength is the length of the textual form of an address.
	AddressLength = 56
)

var ErrInvalidAddress = errors.New("invalid address")

// Address is an immutable account or contract identifier. Its textual form
// is a 56 character base32 string led by 'G' (account) or 'C' (contract) and
// terminated by a CRC16 checksum.
type Address struct {
	kind AddressKind
	key  [32]byte
}

// NewAddress builds an address of the given kind over a 32 byte payload.
func NewAddress(kind AddressKind, key [32]byte) Address {
	return Address{kind: kind, key: key}
}

// ParseAddress validates and decodes the textual form of an address.
func ParseAddress(s string) (Address, error) {
	if len(s) != AddressLength {
		return Address{}, errors.Wrapf(
			ErrInvalidAddress,
			"parse address: length %d, want %d",
			len(s),
			AddressLength,
		)
	}

	var kind AddressKind
	switch s[0] {
	case 'G':
		kind = AccountAddress
	case 'C':
		kind = ContractAddress
	default:
		return Address{}, errors.Wrapf(
			ErrInvalidAddress,
			"parse address: unknown discriminant %q",
			s[0],
		)
	}

	raw, err := base32.StdEncoding.DecodeString(s)
	if err != nil {
		return Address{}, errors.Wrap(ErrInvalidAddress, "parse address")
	}
	if len(raw) != 35 {
		return Address{}, errors.Wrap(ErrInvalidAddress, "parse address")
	}

	payload := raw[:33]
	want := uint16(raw[33]) | uint16(raw[34])<<8
	if crc16(payload) != want {
		return Address{}, errors.Wrap(
			ErrInvalidAddress,
			"parse address: checksum mismatch",
		)
	}

	expected := accountVersionByte
	if kind == ContractAddress {
		expected = contractVersionByte
	}
	if payload[0] != expected {
		return Address{}, errors.Wrap(
			ErrInvalidAddress,
			"parse address: version byte mismatch",
		)
	}

	a := Address{kind: kind}
	copy(a.key[:], payload[1:])
	return a, nil
}

// MustParseAddress is ParseAddress for constants known to be valid.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) Kind() AddressKind { return a.kind }

func (a Address) Key() [32]byte { return a.key }

func (a Address) IsZero() bool { return a.kind == 0 }

func (a Address) IsAccount() bool { return a.kind == AccountAddress }

func (a Address) IsContract() bool { return a.kind == ContractAddress }

// String returns the canonical textual form.
func (a Address) String() string {
	if a.kind == 0 {
		return ""
	}
	payload := make([]byte, 0, 35)
	if a.kind == ContractAddress {
		payload = append(payload, contractVersionByte)
	} else {
		payload = append(payload, accountVersionByte)
	}
	payload = append(payload, a.key[:]...)
	sum := crc16(payload)
	payload = append(payload, byte(sum), byte(sum>>8))
	return strings.TrimRight(base32.StdEncoding.EncodeToString(payload), "=")
}

// crc16 is CRC-16/XMODEM (poly 0x1021, init 0).
func crc16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
