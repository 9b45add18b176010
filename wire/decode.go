package wire

import "math"

// Decode converts a wire value into its native Go form, dispatching on the
// tag actually present:
//
//	Void -> nil, Bool -> bool, U32 -> uint32, I32 -> int32, U64 -> uint64,
//	I64 -> int64, U128 -> uint64, I128 -> int64, Bytes -> []byte,
//	String/Symbol -> string, Address -> string, Vec -> []any,
//	Map -> map[string]any (string or symbol keys) or []Pair.
//
// The 128-bit tags keep only their low 64 bits. Callers that need the full
// range should type-switch on U128/I128 and use Big.
func Decode(v Value) (any, error) {
	if v == nil {
		return nil, decodingErrorf(0, "nil value")
	}

	switch val := v.(type) {
	case Void:
		return nil, nil
	case Bool:
		return bool(val), nil
	case U32:
		return uint32(val), nil
	case I32:
		return int32(val), nil
	case U64:
		return uint64(val), nil
	case I64:
		return int64(val), nil
	case U128:
		return val.Lo, nil
	case I128:
		return int64(val.Lo), nil
	case Bytes:
		return append([]byte(nil), val...), nil
	case String:
		return string(val), nil
	case Symbol:
		return string(val), nil
	case Address:
		if val.IsZero() {
			return nil, decodingErrorf(TagAddress, "zero address")
		}
		return val.String(), nil
	case Vec:
		out := make([]any, 0, len(val))
		for _, e := range val {
			n, err := Decode(e)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	case Map:
		return decodeMap(val)
	default:
		return nil, decodingErrorf(v.Tag(), "unsupported value %T", v)
	}
}

// Pair is a decoded map entry whose key is not a string.
type Pair struct {
	Key any
	Val any
}

func decodeMap(m Map) (any, error) {
	stringKeyed := true
	for _, e := range m {
		if e.Key.Tag() != TagString && e.Key.Tag() != TagSymbol {
			stringKeyed = false
			break
		}
	}

	if stringKeyed {
		out := make(map[string]any, len(m))
		for _, e := range m {
			k, _ := AsString(e.Key)
			if _, dup := out[k]; dup {
				return nil, decodingErrorf(TagMap, "duplicate key %q", k)
			}
			v, err := Decode(e.Val)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}

	out := make([]Pair, 0, len(m))
	for _, e := range m {
		k, err := Decode(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := Decode(e.Val)
		if err != nil {
			return nil, err
		}
		out = append(out, Pair{Key: k, Val: v})
	}
	return out, nil
}

// AsUint64 reads any unsigned or non-negative signed integer tag. 128-bit
// tags keep only their low 64 bits.
func AsUint64(v Value) (uint64, error) {
	switch val := v.(type) {
	case U32:
		return uint64(val), nil
	case U64:
		return uint64(val), nil
	case U128:
		return val.Lo, nil
	case I32:
		if val < 0 {
			return 0, decodingErrorf(TagI32, "negative value %d", val)
		}
		return uint64(val), nil
	case I64:
		if val < 0 {
			return 0, decodingErrorf(TagI64, "negative value %d", val)
		}
		return uint64(val), nil
	case I128:
		if val.Hi < 0 {
			return 0, decodingErrorf(TagI128, "negative value")
		}
		return val.Lo, nil
	case nil:
		return 0, decodingErrorf(0, "nil value")
	default:
		return 0, decodingErrorf(v.Tag(), "not an integer")
	}
}

// AsInt64 reads any integer tag that fits in an int64. 128-bit tags keep
// only their low 64 bits.
func AsInt64(v Value) (int64, error) {
	switch val := v.(type) {
	case U32:
		return int64(val), nil
	case I32:
		return int64(val), nil
	case I64:
		return int64(val), nil
	case U64:
		if uint64(val) > math.MaxInt64 {
			return 0, decodingErrorf(TagU64, "%d overflows int64", uint64(val))
		}
		return int64(val), nil
	case U128:
		return int64(val.Lo), nil
	case I128:
		return int64(val.Lo), nil
	case nil:
		return 0, decodingErrorf(0, "nil value")
	default:
		return 0, decodingErrorf(v.Tag(), "not an integer")
	}
}

// AsString reads a String or Symbol.
func AsString(v Value) (string, error) {
	switch val := v.(type) {
	case String:
		return string(val), nil
	case Symbol:
		return string(val), nil
	case nil:
		return "", decodingErrorf(0, "nil value")
	default:
		return "", decodingErrorf(v.Tag(), "not a string")
	}
}

// AsAddress reads an Address, accepting its textual form from a String.
func AsAddress(v Value) (Address, error) {
	switch val := v.(type) {
	case Address:
		if val.IsZero() {
			return Address{}, decodingErrorf(TagAddress, "zero address")
		}
		return val, nil
	case String:
		a, err := ParseAddress(string(val))
		if err != nil {
			return Address{}, &DecodingError{
				Tag:    TagString,
				Reason: "not an address",
				Err:    err,
			}
		}
		return a, nil
	case nil:
		return Address{}, decodingErrorf(0, "nil value")
	default:
		return Address{}, decodingErrorf(v.Tag(), "not an address")
	}
}

// AsBytes reads a Bytes value.
func AsBytes(v Value) ([]byte, error) {
	switch val := v.(type) {
	case Bytes:
		return append([]byte(nil), val...), nil
	case nil:
		return nil, decodingErrorf(0, "nil value")
	default:
		return nil, decodingErrorf(v.Tag(), "not bytes")
	}
}

// IsAbsent reports whether v denotes "nothing": nil, Void, or an empty Map.
func IsAbsent(v Value) bool {
	if v == nil {
		return true
	}
	switch val := v.(type) {
	case Void:
		return true
	case Map:
		return len(val) == 0
	}
	return false
}
