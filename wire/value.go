package wire

import (
	"bytes"
	"fmt"
	"math/big"
)

// Tag identifies the variant of a wire value.
type Tag uint32

const (
	TagVoid    Tag = 0x0001
	TagBool    Tag = 0x0002
	TagU32     Tag = 0x0003
	TagI32     Tag = 0x0004
	TagU64     Tag = 0x0005
	TagI64     Tag = 0x0006
	TagU128    Tag = 0x0007
	TagI128    Tag = 0x0008
	TagBytes   Tag = 0x0009
	TagString  Tag = 0x000A
	TagSymbol  Tag = 0x000B
	TagAddress Tag = 0x000C
	TagVec     Tag = 0x000D
	TagMap     Tag = 0x000E
)

var tagNames = map[Tag]string{
	TagVoid:    "void",
	TagBool:    "bool",
	TagU32:     "u32",
	TagI32:     "i32",
	TagU64:     "u64",
	TagI64:     "i64",
	TagU128:    "u128",
	TagI128:    "i128",
	TagBytes:   "bytes",
	TagString:  "string",
	TagSymbol:  "symbol",
	TagAddress: "address",
	TagVec:     "vec",
	TagMap:     "map",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tag(0x%04x)", uint32(t))
}

// Value is the closed set of wire values. Only the types declared in this
// package implement it.
type Value interface {
	Tag() Tag
	sealed()
}

type Void struct{}

type Bool bool

type U32 uint32

type I32 int32

type U64 uint64

type I64 int64

// U128 is an unsigned 128-bit integer split into two words.
type U128 struct {
	Hi uint64
	Lo uint64
}

// I128 is a two's complement signed 128-bit integer split into two words.
type I128 struct {
	Hi int64
	Lo uint64
}

type Bytes []byte

type String string

type Symbol string

type Vec []Value

// MapEntry is a single key/value pair of a Map.
type MapEntry struct {
	Key Value
	Val Value
}

// Map is an ordered list of entries. Marshal always emits entries in
// ascending key order regardless of the order held here.
type Map []MapEntry

func (Void) Tag() Tag    { return TagVoid }
func (Bool) Tag() Tag    { return TagBool }
func (U32) Tag() Tag     { return TagU32 }
func (I32) Tag() Tag     { return TagI32 }
func (U64) Tag() Tag     { return TagU64 }
func (I64) Tag() Tag     { return TagI64 }
func (U128) Tag() Tag    { return TagU128 }
func (I128) Tag() Tag    { return TagI128 }
func (Bytes) Tag() Tag   { return TagBytes }
func (String) Tag() Tag  { return TagString }
func (Symbol) Tag() Tag  { return TagSymbol }
func (Address) Tag() Tag { return TagAddress }
func (Vec) Tag() Tag     { return TagVec }
func (Map) Tag() Tag     { return TagMap }

func (Void) sealed()    {}
func (Bool) sealed()    {}
func (U32) sealed()     {}
func (I32) sealed()     {}
func (U64) sealed()     {}
func (I64) sealed()     {}
func (U128) sealed()    {}
func (I128) sealed()    {}
func (Bytes) sealed()   {}
func (String) sealed()  {}
func (Symbol) sealed()  {}
func (Address) sealed() {}
func (Vec) sealed()     {}
func (Map) sealed()     {}

var (
	two64  = new(big.Int).Lsh(big.NewInt(1), 64)
	two127 = new(big.Int).Lsh(big.NewInt(1), 127)
	two128 = new(big.Int).Lsh(big.NewInt(1), 128)
)

// U128FromBig converts a non-negative integer below 2^128.
func U128FromBig(n *big.Int) (U128, error) {
	if n.Sign() < 0 || n.Cmp(two128) >= 0 {
		return U128{}, fmt.Errorf("%s out of u128 range", n)
	}
	lo := new(big.Int).And(n, new(big.Int).Sub(two64, big.NewInt(1)))
	hi := new(big.Int).Rsh(n, 64)
	return U128{Hi: hi.Uint64(), Lo: lo.Uint64()}, nil
}

// Big returns the full 128-bit value.
func (u U128) Big() *big.Int {
	n := new(big.Int).SetUint64(u.Hi)
	n.Lsh(n, 64)
	return n.Or(n, new(big.Int).SetUint64(u.Lo))
}

// I128FromBig converts an integer within [-2^127, 2^127).
func I128FromBig(n *big.Int) (I128, error) {
	if n.Cmp(new(big.Int).Neg(two127)) < 0 || n.Cmp(two127) >= 0 {
		return I128{}, fmt.Errorf("%s out of i128 range", n)
	}
	m := new(big.Int).Set(n)
	if m.Sign() < 0 {
		m.Add(m, two128)
	}
	lo := new(big.Int).And(m, new(big.Int).Sub(two64, big.NewInt(1)))
	hi := new(big.Int).Rsh(m, 64)
	return I128{Hi: int64(hi.Uint64()), Lo: lo.Uint64()}, nil
}

// Big returns the full 128-bit value.
func (i I128) Big() *big.Int {
	n := new(big.Int).SetUint64(uint64(i.Hi))
	n.Lsh(n, 64)
	n.Or(n, new(big.Int).SetUint64(i.Lo))
	if i.Hi < 0 {
		n.Sub(n, two128)
	}
	return n
}

// Get returns the value stored under a symbol or string key.
func (m Map) Get(key string) (Value, bool) {
	for _, e := range m {
		switch k := e.Key.(type) {
		case Symbol:
			if string(k) == key {
				return e.Val, true
			}
		case String:
			if string(k) == key {
				return e.Val, true
			}
		}
	}
	return nil, false
}

// Equal reports whether two values are structurally identical. Map entries
// are compared irrespective of their order.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Tag() != b.Tag() {
		return false
	}
	switch av := a.(type) {
	case Bytes:
		return bytes.Equal(av, b.(Bytes))
	case Vec:
		bv := b.(Vec)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Map:
		sa, err := sortedEntries(av)
		if err != nil {
			return false
		}
		sb, err := sortedEntries(b.(Map))
		if err != nil {
			return false
		}
		if len(sa) != len(sb) {
			return false
		}
		for i := range sa {
			if !Equal(sa[i].Key, sb[i].Key) || !Equal(sa[i].Val, sb[i].Val) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
