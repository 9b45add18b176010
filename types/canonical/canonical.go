// Package canonical holds the reader and writer used by every canonical byte
// form in the module: a big-endian uint32 type prefix followed by fixed-width
// integers and uint32 length-prefixed byte strings.
package canonical

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

var ErrInvalidTypePrefix = errors.New("invalid type prefix")

// Writer accumulates a canonical byte form. The first error sticks and
// every later call is a no-op.
type Writer struct {
	buf *bytes.Buffer
	err error
}

func NewWriter(typePrefix uint32) *Writer {
	w := &Writer{buf: new(bytes.Buffer)}
	w.Uint32(typePrefix)
	return w
}

func (w *Writer) write(v any) {
	if w.err != nil {
		return
	}
	w.err = binary.Write(w.buf, binary.BigEndian, v)
}

func (w *Writer) Uint8(v uint8)   { w.write(v) }
func (w *Writer) Uint32(v uint32) { w.write(v) }
func (w *Writer) Uint64(v uint64) { w.write(v) }

func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
		return
	}
	w.Uint8(0)
}

func (w *Writer) Bytes(v []byte) {
	w.Uint32(uint32(len(v)))
	if w.err != nil {
		return
	}
	_, w.err = w.buf.Write(v)
}

func (w *Writer) Text(v string) { w.Bytes([]byte(v)) }

// BytesList writes a count followed by each element.
func (w *Writer) BytesList(v [][]byte) {
	w.Uint32(uint32(len(v)))
	for _, b := range v {
		w.Bytes(b)
	}
}

// Finish returns the accumulated bytes, wrapping any error with op.
func (w *Writer) Finish(op string) ([]byte, error) {
	if w.err != nil {
		return nil, errors.Wrap(w.err, op)
	}
	return w.buf.Bytes(), nil
}

// Reader consumes a canonical byte form. Like Writer, its first error
// sticks.
type Reader struct {
	r   *bytes.Reader
	err error
}

// NewReader verifies the type prefix and positions the reader after it.
func NewReader(data []byte, typePrefix uint32) *Reader {
	rd := &Reader{r: bytes.NewReader(data)}
	if got := rd.Uint32(); rd.err == nil && got != typePrefix {
		rd.err = ErrInvalidTypePrefix
	}
	return rd
}

func (rd *Reader) read(v any) {
	if rd.err != nil {
		return
	}
	rd.err = binary.Read(rd.r, binary.BigEndian, v)
}

func (rd *Reader) Uint8() uint8 {
	var v uint8
	rd.read(&v)
	return v
}

func (rd *Reader) Uint32() uint32 {
	var v uint32
	rd.read(&v)
	return v
}

func (rd *Reader) Uint64() uint64 {
	var v uint64
	rd.read(&v)
	return v
}

func (rd *Reader) Bool() bool {
	b := rd.Uint8()
	if rd.err == nil && b > 1 {
		rd.err = errors.Errorf("invalid boolean byte 0x%02x", b)
	}
	return b == 1
}

func (rd *Reader) Bytes() []byte {
	n := rd.Uint32()
	if rd.err != nil {
		return nil
	}
	if int64(n) > int64(rd.r.Len()) {
		rd.err = errors.Errorf("length %d exceeds remaining %d", n, rd.r.Len())
		return nil
	}
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	_, rd.err = io.ReadFull(rd.r, out)
	return out
}

func (rd *Reader) Text() string { return string(rd.Bytes()) }

func (rd *Reader) BytesList() [][]byte {
	n := rd.Uint32()
	if rd.err != nil {
		return nil
	}
	if int64(n)*4 > int64(rd.r.Len()) {
		rd.err = errors.Errorf("count %d exceeds remaining data", n)
		return nil
	}
	var out [][]byte
	for i := uint32(0); i < n && rd.err == nil; i++ {
		out = append(out, rd.Bytes())
	}
	return out
}

// Count reads an element count, bounding it by the remaining input assuming
// each element takes at least minSize bytes.
func (rd *Reader) Count(minSize int) uint32 {
	n := rd.Uint32()
	if rd.err == nil && int64(n)*int64(minSize) > int64(rd.r.Len()) {
		rd.err = errors.Errorf("count %d exceeds remaining data", n)
	}
	return n
}

func (rd *Reader) Err() error { return rd.err }

// Finish reports the first error, or trailing bytes, wrapped with op.
func (rd *Reader) Finish(op string) error {
	if rd.err != nil {
		return errors.Wrap(rd.err, op)
	}
	if rd.r.Len() != 0 {
		return errors.Wrap(
			errors.Errorf("%d trailing bytes", rd.r.Len()),
			op,
		)
	}
	return nil
}
