// stand for bytes helper
package bx

import (
	"encoding/binary"
	"errors"
	"math"
)

var LE = binary.LittleEndian

// ErrShort is returned by Reader when fewer bytes remain than requested.
var ErrShort = errors.New("bx: short buffer")

// --- LE: read ---
func U16(b []byte) uint16 { return LE.Uint16(b) }
func U32(b []byte) uint32 { return LE.Uint32(b) }
func I16(b []byte) int16  { return int16(U16(b)) }
func I32(b []byte) int32  { return int32(U32(b)) }
func F32(b []byte) float32 {
	return math.Float32frombits(U32(b))
}

// --- LE: write ---
func PutU16(b []byte, v uint16)  { LE.PutUint16(b, v) }
func PutU32(b []byte, v uint32)  { LE.PutUint32(b, v) }
func PutI16(b []byte, v int16)   { PutU16(b, uint16(v)) }
func PutI32(b []byte, v int32)   { PutU32(b, uint32(v)) }
func PutF32(b []byte, v float32) { PutU32(b, math.Float32bits(v)) }

// --- LE: At (offset) ---
func I32At(b []byte, off int) int32   { return I32(b[off:]) }
func F32At(b []byte, off int) float32 { return F32(b[off:]) }

// Reader walks a byte slice front to back. Every read is bounds-checked and
// returns ErrShort instead of panicking when the slice runs out.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(b []byte) *Reader { return &Reader{buf: b} }

// Pos is the number of bytes consumed so far.
func (r *Reader) Pos() int { return r.pos }

// Remaining is the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Next returns the next n bytes without copying them.
func (r *Reader) Next(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, ErrShort
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) Byte() (byte, error) {
	b, err := r.Next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) I16() (int16, error) {
	b, err := r.Next(2)
	if err != nil {
		return 0, err
	}
	return I16(b), nil
}

func (r *Reader) I32() (int32, error) {
	b, err := r.Next(4)
	if err != nil {
		return 0, err
	}
	return I32(b), nil
}

// Writer appends little-endian values to a growing buffer.
type Writer struct {
	buf []byte
}

func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Len is the current write cursor.
func (w *Writer) Len() int      { return len(w.buf) }
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) Byte(v byte)   { w.buf = append(w.buf, v) }
func (w *Writer) Raw(b []byte)  { w.buf = append(w.buf, b...) }
func (w *Writer) I16(v int16)   { w.buf = LE.AppendUint16(w.buf, uint16(v)) }
func (w *Writer) I32(v int32)   { w.buf = LE.AppendUint32(w.buf, uint32(v)) }
func (w *Writer) F32(v float32) { w.buf = LE.AppendUint32(w.buf, math.Float32bits(v)) }
