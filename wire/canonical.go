package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const maxDepth = 64

// Marshal serializes a value to its canonical byte form. Map entries are
// written in ascending key order.
func Marshal(v Value) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := writeValue(buf, v, 0); err != nil {
		return nil, errors.Wrap(err, "marshal")
	}
	return buf.Bytes(), nil
}

// Unmarshal parses the canonical byte form of a single value.
func Unmarshal(data []byte) (Value, error) {
	r := bytes.NewReader(data)
	v, err := readValue(r, 0)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, decodingErrorf(v.Tag(), "%d trailing bytes", r.Len())
	}
	return v, nil
}

func writeValue(buf *bytes.Buffer, v Value, depth int) error {
	if v == nil {
		return errors.New("nil value")
	}
	if depth > maxDepth {
		return errors.New("value nested too deeply")
	}
	if err := binary.Write(buf, binary.BigEndian, uint32(v.Tag())); err != nil {
		return err
	}

	switch val := v.(type) {
	case Void:
		return nil
	case Bool:
		if val {
			return buf.WriteByte(1)
		}
		return buf.WriteByte(0)
	case U32:
		return binary.Write(buf, binary.BigEndian, uint32(val))
	case I32:
		return binary.Write(buf, binary.BigEndian, int32(val))
	case U64:
		return binary.Write(buf, binary.BigEndian, uint64(val))
	case I64:
		return binary.Write(buf, binary.BigEndian, int64(val))
	case U128:
		if err := binary.Write(buf, binary.BigEndian, val.Hi); err != nil {
			return err
		}
		return binary.Write(buf, binary.BigEndian, val.Lo)
	case I128:
		if err := binary.Write(buf, binary.BigEndian, val.Hi); err != nil {
			return err
		}
		return binary.Write(buf, binary.BigEndian, val.Lo)
	case Bytes:
		return writeBlob(buf, val)
	case String:
		return writeBlob(buf, []byte(val))
	case Symbol:
		return writeBlob(buf, []byte(val))
	case Address:
		if val.IsZero() {
			return errors.New("zero address")
		}
		if err := buf.WriteByte(byte(val.kind)); err != nil {
			return err
		}
		_, err := buf.Write(val.key[:])
		return err
	case Vec:
		if err := binary.Write(
			buf,
			binary.BigEndian,
			uint32(len(val)),
		); err != nil {
			return err
		}
		for _, e := range val {
			if err := writeValue(buf, e, depth+1); err != nil {
				return err
			}
		}
		return nil
	case Map:
		entries, err := sortedEntries(val)
		if err != nil {
			return err
		}
		if err := binary.Write(
			buf,
			binary.BigEndian,
			uint32(len(entries)),
		); err != nil {
			return err
		}
		for _, e := range entries {
			if err := writeValue(buf, e.Key, depth+1); err != nil {
				return err
			}
			if err := writeValue(buf, e.Val, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Errorf("unsupported value %T", v)
	}
}

func writeBlob(buf *bytes.Buffer, data []byte) error {
	if err := binary.Write(
		buf,
		binary.BigEndian,
		uint32(len(data)),
	); err != nil {
		return err
	}
	_, err := buf.Write(data)
	return err
}

func readValue(r *bytes.Reader, depth int) (Value, error) {
	if depth > maxDepth {
		return nil, decodingErrorf(0, "value nested too deeply")
	}

	var raw uint32
	if err := binary.Read(r, binary.BigEndian, &raw); err != nil {
		return nil, &DecodingError{Reason: "read tag", Err: err}
	}
	tag := Tag(raw)

	switch tag {
	case TagVoid:
		return Void{}, nil
	case TagBool:
		b, err := r.ReadByte()
		if err != nil {
			return nil, &DecodingError{Tag: tag, Reason: "read", Err: err}
		}
		if b > 1 {
			return nil, decodingErrorf(tag, "invalid boolean byte 0x%02x", b)
		}
		return Bool(b == 1), nil
	case TagU32:
		var n uint32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, &DecodingError{Tag: tag, Reason: "read", Err: err}
		}
		return U32(n), nil
	case TagI32:
		var n int32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, &DecodingError{Tag: tag, Reason: "read", Err: err}
		}
		return I32(n), nil
	case TagU64:
		var n uint64
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, &DecodingError{Tag: tag, Reason: "read", Err: err}
		}
		return U64(n), nil
	case TagI64:
		var n int64
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, &DecodingError{Tag: tag, Reason: "read", Err: err}
		}
		return I64(n), nil
	case TagU128:
		var v U128
		if err := binary.Read(r, binary.BigEndian, &v.Hi); err != nil {
			return nil, &DecodingError{Tag: tag, Reason: "read", Err: err}
		}
		if err := binary.Read(r, binary.BigEndian, &v.Lo); err != nil {
			return nil, &DecodingError{Tag: tag, Reason: "read", Err: err}
		}
		return v, nil
	case TagI128:
		var v I128
		if err := binary.Read(r, binary.BigEndian, &v.Hi); err != nil {
			return nil, &DecodingError{Tag: tag, Reason: "read", Err: err}
		}
		if err := binary.Read(r, binary.BigEndian, &v.Lo); err != nil {
			return nil, &DecodingError{Tag: tag, Reason: "read", Err: err}
		}
		return v, nil
	case TagBytes, TagString, TagSymbol:
		data, err := readBlob(r)
		if err != nil {
			return nil, &DecodingError{Tag: tag, Reason: "read", Err: err}
		}
		switch tag {
		case TagString:
			return String(data), nil
		case TagSymbol:
			return Symbol(data), nil
		}
		return Bytes(data), nil
	case TagAddress:
		kind, err := r.ReadByte()
		if err != nil {
			return nil, &DecodingError{Tag: tag, Reason: "read", Err: err}
		}
		if AddressKind(kind) != AccountAddress &&
			AddressKind(kind) != ContractAddress {
			return nil, decodingErrorf(tag, "unknown address kind %d", kind)
		}
		a := Address{kind: AddressKind(kind)}
		if _, err := io.ReadFull(r, a.key[:]); err != nil {
			return nil, &DecodingError{Tag: tag, Reason: "read", Err: err}
		}
		return a, nil
	case TagVec:
		count, err := readCount(r, tag)
		if err != nil {
			return nil, err
		}
		out := make(Vec, 0, count)
		for i := uint32(0); i < count; i++ {
			e, err := readValue(r, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	case TagMap:
		count, err := readCount(r, tag)
		if err != nil {
			return nil, err
		}
		out := make(Map, 0, count)
		for i := uint32(0); i < count; i++ {
			k, err := readValue(r, depth+1)
			if err != nil {
				return nil, err
			}
			v, err := readValue(r, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, MapEntry{Key: k, Val: v})
		}
		return out, nil
	default:
		return nil, decodingErrorf(tag, "unrecognized tag")
	}
}

func readBlob(r *bytes.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	if int64(n) > int64(r.Len()) {
		return nil, errors.Errorf("length %d exceeds remaining %d", n, r.Len())
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

func readCount(r *bytes.Reader, tag Tag) (uint32, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return 0, &DecodingError{Tag: tag, Reason: "read count", Err: err}
	}
	// every element needs at least its four byte tag
	if int64(n)*4 > int64(r.Len()) {
		return 0, decodingErrorf(tag, "count %d exceeds remaining data", n)
	}
	return n, nil
}

// sortedEntries returns a copy of the map entries in ascending key order and
// rejects duplicate keys.
func sortedEntries(m Map) ([]MapEntry, error) {
	out := make([]MapEntry, len(m))
	copy(out, m)
	sort.SliceStable(out, func(i, j int) bool {
		return compareValues(out[i].Key, out[j].Key) < 0
	})
	for i := 1; i < len(out); i++ {
		if compareValues(out[i-1].Key, out[i].Key) == 0 {
			return nil, errors.Errorf("duplicate map key %v", out[i].Key)
		}
	}
	return out, nil
}

// compareValues orders values first by tag and then by their natural order
// within the tag.
func compareValues(a, b Value) int {
	if a.Tag() != b.Tag() {
		if a.Tag() < b.Tag() {
			return -1
		}
		return 1
	}

	switch av := a.(type) {
	case Void:
		return 0
	case Bool:
		bv := b.(Bool)
		switch {
		case av == bv:
			return 0
		case !bool(av):
			return -1
		}
		return 1
	case U32:
		return cmpOrdered(av, b.(U32))
	case I32:
		return cmpOrdered(av, b.(I32))
	case U64:
		return cmpOrdered(av, b.(U64))
	case I64:
		return cmpOrdered(av, b.(I64))
	case U128:
		return av.Big().Cmp(b.(U128).Big())
	case I128:
		return av.Big().Cmp(b.(I128).Big())
	case Bytes:
		return bytes.Compare(av, b.(Bytes))
	case String:
		return strings.Compare(string(av), string(b.(String)))
	case Symbol:
		return strings.Compare(string(av), string(b.(Symbol)))
	case Address:
		bv := b.(Address)
		if av.kind != bv.kind {
			return cmpOrdered(av.kind, bv.kind)
		}
		return bytes.Compare(av.key[:], bv.key[:])
	case Vec:
		bv := b.(Vec)
		for i := 0; i < len(av) && i < len(bv); i++ {
			if c := compareValues(av[i], bv[i]); c != 0 {
				return c
			}
		}
		return cmpOrdered(len(av), len(bv))
	default:
		ab, _ := Marshal(a)
		bb, _ := Marshal(b)
		return bytes.Compare(ab, bb)
	}
}

type ordered interface {
	~uint8 | ~uint32 | ~int32 | ~uint64 | ~int64 | ~int
}

func cmpOrdered[T ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
