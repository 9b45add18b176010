package wire

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"unicode/utf8"
)

// Encode converts a native Go value into the wire value described by shape.
//
// Accepted natives per tag: integer kinds (and *big.Int for the 128-bit
// tags) for numbers, bool, string kinds for String/Symbol, []byte or byte
// arrays for Bytes, Address or its textual form for Address, slices and
// arrays for Vec, and maps for Map. A struct-shaped Map takes a map keyed by
// field name. Values that already implement Value are checked against the
// shape and passed through.
func Encode(native any, shape Shape) (Value, error) {
	return encode(native, shape, "")
}

func encode(native any, s Shape, path string) (Value, error) {
	if isNil(native) {
		if s.Optional || s.Tag == TagVoid {
			return Void{}, nil
		}
		return nil, encodingErrorf(path, "missing value for %s", s.Tag)
	}

	rv := reflect.ValueOf(native)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
		native = rv.Interface()
	}

	if v, ok := native.(Value); ok {
		return passThrough(v, s, path)
	}

	switch s.Tag {
	case TagVoid:
		return nil, encodingErrorf(path, "void takes no value, got %T", native)
	case TagBool:
		if rv.Kind() != reflect.Bool {
			return nil, mismatch(path, s.Tag, native)
		}
		return Bool(rv.Bool()), nil
	case TagU32, TagI32, TagU64, TagI64, TagU128, TagI128:
		n, ok := asInteger(native, rv)
		if !ok {
			return nil, mismatch(path, s.Tag, native)
		}
		return encodeInteger(n, s.Tag, path)
	case TagBytes:
		data, ok := asBytes(rv)
		if !ok {
			return nil, mismatch(path, s.Tag, native)
		}
		if err := checkLength(len(data), s, path); err != nil {
			return nil, err
		}
		return Bytes(data), nil
	case TagString, TagSymbol:
		if rv.Kind() != reflect.String {
			return nil, mismatch(path, s.Tag, native)
		}
		str := rv.String()
		if !utf8.ValidString(str) {
			return nil, encodingErrorf(path, "invalid utf-8")
		}
		if err := checkLength(len(str), s, path); err != nil {
			return nil, err
		}
		if s.Tag == TagSymbol {
			return Symbol(str), nil
		}
		return String(str), nil
	case TagAddress:
		if rv.Kind() != reflect.String {
			return nil, mismatch(path, s.Tag, native)
		}
		a, err := ParseAddress(rv.String())
		if err != nil {
			return nil, &EncodingError{
				Path:   path,
				Reason: "invalid address",
				Err:    err,
			}
		}
		return a, nil
	case TagVec:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, mismatch(path, s.Tag, native)
		}
		elem := Shape{}
		if s.Elem != nil {
			elem = *s.Elem
		}
		out := make(Vec, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			var e Value
			var err error
			itemPath := joinPath(path, fmt.Sprintf("[%d]", i))
			if s.Elem == nil {
				e, err = passThroughAny(rv.Index(i).Interface(), itemPath)
			} else {
				e, err = encode(rv.Index(i).Interface(), elem, itemPath)
			}
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	case TagMap:
		if rv.Kind() != reflect.Map {
			return nil, mismatch(path, s.Tag, native)
		}
		if len(s.Fields) > 0 {
			return encodeStruct(rv, s, path)
		}
		return encodeMap(rv, s, path)
	default:
		return nil, encodingErrorf(path, "unsupported shape %s", s.Tag)
	}
}

// encodeStruct emits the fields of a struct-shaped map sorted by key. The
// remote side reads struct fields positionally in key order, so an
// unsorted map would be accepted but misinterpreted.
func encodeStruct(rv reflect.Value, s Shape, path string) (Value, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, encodingErrorf(path, "struct map keys must be strings")
	}

	known := make(map[string]struct{}, len(s.Fields))
	out := make(Map, 0, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = struct{}{}
		fieldPath := joinPath(path, f.Name)

		var native any
		fv := rv.MapIndex(reflect.ValueOf(f.Name).Convert(rv.Type().Key()))
		if fv.IsValid() {
			native = fv.Interface()
		}

		v, err := encode(native, f.Shape, fieldPath)
		if err != nil {
			return nil, err
		}
		out = append(out, MapEntry{Key: Symbol(f.Name), Val: v})
	}

	iter := rv.MapRange()
	for iter.Next() {
		if _, ok := known[iter.Key().String()]; !ok {
			return nil, encodingErrorf(
				path,
				"unknown field %q",
				iter.Key().String(),
			)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return compareValues(out[i].Key, out[j].Key) < 0
	})
	return out, nil
}

func encodeMap(rv reflect.Value, s Shape, path string) (Value, error) {
	out := make(Map, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		keyPath := joinPath(path, fmt.Sprintf("[%v]", iter.Key().Interface()))

		var k, v Value
		var err error
		if s.Key != nil {
			k, err = encode(iter.Key().Interface(), *s.Key, keyPath)
		} else {
			k, err = passThroughAny(iter.Key().Interface(), keyPath)
		}
		if err != nil {
			return nil, err
		}
		if s.Val != nil {
			v, err = encode(iter.Value().Interface(), *s.Val, keyPath)
		} else {
			v, err = passThroughAny(iter.Value().Interface(), keyPath)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, MapEntry{Key: k, Val: v})
	}

	sorted, err := sortedEntries(out)
	if err != nil {
		return nil, &EncodingError{Path: path, Reason: "invalid map", Err: err}
	}
	return Map(sorted), nil
}

func passThrough(v Value, s Shape, path string) (Value, error) {
	if v.Tag() == TagVoid && (s.Optional || s.Tag == TagVoid) {
		return v, nil
	}
	if v.Tag() != s.Tag {
		return nil, encodingErrorf(path, "expected %s, got %s", s.Tag, v.Tag())
	}
	switch val := v.(type) {
	case Bytes:
		if err := checkLength(len(val), s, path); err != nil {
			return nil, err
		}
	case String:
		if err := checkLength(len(val), s, path); err != nil {
			return nil, err
		}
	case Symbol:
		if err := checkLength(len(val), s, path); err != nil {
			return nil, err
		}
	case Vec:
		if s.Elem == nil {
			return v, nil
		}
		out := make(Vec, 0, len(val))
		for i, e := range val {
			checked, err := passThroughElem(
				e,
				*s.Elem,
				joinPath(path, fmt.Sprintf("[%d]", i)),
			)
			if err != nil {
				return nil, err
			}
			out = append(out, checked)
		}
		return out, nil
	case Map:
		if len(s.Fields) > 0 {
			return passThroughStruct(val, s, path)
		}
		out := make(Map, 0, len(val))
		for _, e := range val {
			keyPath := joinPath(path, fmt.Sprintf("[%v]", e.Key))
			key, item := e.Key, e.Val
			var err error
			if s.Key != nil {
				if key, err = passThroughElem(key, *s.Key, keyPath); err != nil {
					return nil, err
				}
			}
			if s.Val != nil {
				if item, err = passThroughElem(item, *s.Val, keyPath); err != nil {
					return nil, err
				}
			}
			out = append(out, MapEntry{Key: key, Val: item})
		}
		sorted, err := sortedEntries(out)
		if err != nil {
			return nil, &EncodingError{Path: path, Reason: "invalid map", Err: err}
		}
		return Map(sorted), nil
	}
	return v, nil
}

func passThroughElem(v Value, s Shape, path string) (Value, error) {
	if v == nil {
		return nil, encodingErrorf(path, "missing value for %s", s.Tag)
	}
	return passThrough(v, s, path)
}

// passThroughStruct checks a prebuilt struct map field by field. Missing
// optional fields are filled with Void so the output matches encodeStruct.
func passThroughStruct(m Map, s Shape, path string) (Value, error) {
	known := make(map[string]struct{}, len(s.Fields))
	out := make(Map, 0, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = struct{}{}
		fieldPath := joinPath(path, f.Name)

		fv, ok := m.Get(f.Name)
		if !ok {
			if !f.Shape.Optional {
				return nil, encodingErrorf(
					fieldPath,
					"missing value for %s",
					f.Shape.Tag,
				)
			}
			fv = Void{}
		}
		checked, err := passThroughElem(fv, f.Shape, fieldPath)
		if err != nil {
			return nil, err
		}
		out = append(out, MapEntry{Key: Symbol(f.Name), Val: checked})
	}

	for _, e := range m {
		name, err := AsString(e.Key)
		if err != nil {
			return nil, encodingErrorf(path, "struct map keys must be strings")
		}
		if _, ok := known[name]; !ok {
			return nil, encodingErrorf(path, "unknown field %q", name)
		}
	}
	if len(m) > len(s.Fields) {
		return nil, encodingErrorf(path, "duplicate struct field")
	}

	sort.SliceStable(out, func(i, j int) bool {
		return compareValues(out[i].Key, out[j].Key) < 0
	})
	return out, nil
}

func passThroughAny(native any, path string) (Value, error) {
	if v, ok := native.(Value); ok {
		return v, nil
	}
	return nil, encodingErrorf(path, "no shape for native %T", native)
}

func checkLength(n int, s Shape, path string) error {
	if s.FixedLen > 0 && n != s.FixedLen {
		return encodingErrorf(path, "length %d, want exactly %d", n, s.FixedLen)
	}
	if s.MaxLen > 0 && n > s.MaxLen {
		return encodingErrorf(path, "length %d exceeds maximum %d", n, s.MaxLen)
	}
	if s.NonEmpty && n == 0 {
		return encodingErrorf(path, "must not be empty")
	}
	return nil
}

func encodeInteger(n *big.Int, tag Tag, path string) (Value, error) {
	outOfRange := func() error {
		return encodingErrorf(path, "%s does not fit %s", n, tag)
	}

	switch tag {
	case TagU32:
		if n.Sign() < 0 || !n.IsUint64() || n.Uint64() > math.MaxUint32 {
			return nil, outOfRange()
		}
		return U32(n.Uint64()), nil
	case TagI32:
		if !n.IsInt64() || n.Int64() < math.MinInt32 || n.Int64() > math.MaxInt32 {
			return nil, outOfRange()
		}
		return I32(n.Int64()), nil
	case TagU64:
		if n.Sign() < 0 || !n.IsUint64() {
			return nil, outOfRange()
		}
		return U64(n.Uint64()), nil
	case TagI64:
		if !n.IsInt64() {
			return nil, outOfRange()
		}
		return I64(n.Int64()), nil
	case TagU128:
		v, err := U128FromBig(n)
		if err != nil {
			return nil, outOfRange()
		}
		return v, nil
	case TagI128:
		v, err := I128FromBig(n)
		if err != nil {
			return nil, outOfRange()
		}
		return v, nil
	}
	return nil, outOfRange()
}

func asInteger(native any, rv reflect.Value) (*big.Int, bool) {
	switch n := native.(type) {
	case big.Int:
		return new(big.Int).Set(&n), true
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), true
	}
	return nil, false
}

func asBytes(rv reflect.Value) ([]byte, bool) {
	switch rv.Kind() {
	case reflect.Slice:
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			return nil, false
		}
		return append([]byte(nil), rv.Bytes()...), true
	case reflect.Array:
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			return nil, false
		}
		out := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(out), rv)
		return out, true
	}
	return nil, false
}

func isNil(native any) bool {
	if native == nil {
		return true
	}
	rv := reflect.ValueOf(native)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func mismatch(path string, tag Tag, native any) *EncodingError {
	return encodingErrorf(path, "%T cannot be encoded as %s", native, tag)
}
