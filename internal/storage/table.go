package storage

import (
	"log/slog"

	"github.com/tuannm99/icarusbin/internal/alias/bx"
	"github.com/tuannm99/icarusbin/internal/record"
	"github.com/tuannm99/icarusbin/internal/textenc"
)

// Table is an in-memory table file: the schema, a row-major offset index and
// the payload buffer the offsets point into. A Table is not safe for
// concurrent use.
type Table struct {
	schema      record.Schema
	recordCount int16
	// offsets[row*fieldCount+col] is the payload position of a cell.
	offsets []int32
	payload []byte
	enc     textenc.Encoding
}

// New returns an empty table with the given schema. Use SetData to fill it.
func New(schema record.Schema, enc textenc.Encoding) *Table {
	return &Table{
		schema:  schema.Clone(),
		payload: []byte{},
		enc:     enc,
	}
}

func (t *Table) RowCount() int16 { return t.recordCount }
func (t *Table) ColCount() int16 { return t.schema.FieldCount() }

// Schema returns a copy of the table's schema.
func (t *Table) Schema() record.Schema { return t.schema.Clone() }

func (t *Table) FieldType(col int) record.FieldType { return t.schema.FieldType(col) }

// FieldName decodes the column name with the table's current encoding.
func (t *Table) FieldName(col int) string { return t.schema.FieldName(col, t.enc) }

func (t *Table) Encoding() textenc.Encoding { return t.enc }

// SetEncoding rebinds the encoding used for names and string cells from now
// on. Stored bytes are not touched, so reads after a rebind may return
// different text than before. On error the previous encoding stays active.
func (t *Table) SetEncoding(name string) error {
	enc, err := textenc.Lookup(name)
	if err != nil {
		return err
	}
	slog.Debug("table encoding changed", "from", t.enc.Name(), "to", enc.Name())
	t.enc = enc
	return nil
}

// PayloadSize is the length of the payload buffer in bytes.
func (t *Table) PayloadSize() int { return len(t.payload) }

func (t *Table) cellIndex(row, col int) (int, bool) {
	if row < 0 || row >= int(t.recordCount) {
		return 0, false
	}
	if col < 0 || col >= t.schema.NumCols() {
		return 0, false
	}
	return row*t.schema.NumCols() + col, true
}

// Offset returns the stored payload offset of a cell.
func (t *Table) Offset(row, col int) (int32, bool) {
	i, ok := t.cellIndex(row, col)
	if !ok {
		return 0, false
	}
	return t.offsets[i], true
}

// Float reads a float cell. Rows or columns outside the table and columns
// that are not float return 0 with no error, so a zero result alone does not
// tell a stored zero from a bad address. An offset that leaves no room for
// four bytes in the payload returns ErrBounds.
func (t *Table) Float(row, col int) (float32, error) {
	i, ok := t.cellIndex(row, col)
	if !ok || t.schema.Fields[col].Type != record.FieldFloat {
		return 0, nil
	}
	off := int64(t.offsets[i])
	if off < 0 || off+floatSize > int64(len(t.payload)) {
		return 0, cellError(row, col, off)
	}
	return bx.F32At(t.payload, int(off)), nil
}

// String reads a zero-terminated string cell and decodes it with the table's
// current encoding. Out-of-range addresses and non-string columns return ""
// with no error. The scan for the terminator stops at the end of the payload;
// a cell with no terminator returns ErrBounds.
func (t *Table) String(row, col int) (string, error) {
	i, ok := t.cellIndex(row, col)
	if !ok || t.schema.Fields[col].Type != record.FieldString {
		return "", nil
	}
	raw, err := t.cString(int64(t.offsets[i]))
	if err != nil {
		return "", cellError(row, col, int64(t.offsets[i]))
	}
	return t.enc.Decode(raw), nil
}

func (t *Table) cString(off int64) ([]byte, error) {
	if off < 0 || off >= int64(len(t.payload)) {
		return nil, ErrBounds
	}
	for end := int(off); end < len(t.payload); end++ {
		if t.payload[end] == 0 {
			return t.payload[off:end], nil
		}
	}
	return nil, ErrBounds
}
