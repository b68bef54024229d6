package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tuannm99/icarusbin/internal/alias/bx"
	"github.com/tuannm99/icarusbin/internal/record"
	"github.com/tuannm99/icarusbin/internal/textenc"
)

// Layout, all integers little-endian:
//
//	int16  fieldCount
//	fieldCount x { byte type, byte nameLen, nameLen bytes name }
//	int16  recordCount
//	recordCount*fieldCount x int32 offset (row-major)
//	int32  dataSize
//	dataSize bytes payload
//
// Nothing after the payload is read.

// Decode parses a table file image. The payload is copied but not inspected;
// cell offsets are taken as stored. Any section that is shorter than its
// declared length fails with ErrFormat and no table is returned.
func Decode(data []byte, enc textenc.Encoding) (*Table, error) {
	r := bx.NewReader(data)

	fieldCount, err := r.I16()
	if err != nil {
		return nil, formatError("field count", r, err)
	}
	if fieldCount < 0 {
		return nil, fmt.Errorf("%w: negative field count %d", ErrFormat, fieldCount)
	}

	fields := make([]record.Field, fieldCount)
	for i := range fields {
		tag, err := r.Byte()
		if err != nil {
			return nil, formatError(fmt.Sprintf("field %d type", i), r, err)
		}
		n, err := r.Byte()
		if err != nil {
			return nil, formatError(fmt.Sprintf("field %d name length", i), r, err)
		}
		name, err := r.Next(int(n))
		if err != nil {
			return nil, formatError(fmt.Sprintf("field %d name", i), r, err)
		}
		fields[i] = record.Field{
			Type: record.FieldType(tag),
			Name: append([]byte(nil), name...),
		}
	}

	recordCount, err := r.I16()
	if err != nil {
		return nil, formatError("record count", r, err)
	}
	if recordCount < 0 {
		return nil, fmt.Errorf("%w: negative record count %d", ErrFormat, recordCount)
	}

	cells := int(recordCount) * int(fieldCount)
	if cells*offsetSize > r.Remaining() {
		return nil, fmt.Errorf("%w: offset table needs %d bytes, %d left",
			ErrFormat, cells*offsetSize, r.Remaining())
	}
	offsets := make([]int32, cells)
	for i := range offsets {
		if offsets[i], err = r.I32(); err != nil {
			return nil, formatError("offset table", r, err)
		}
	}

	dataSize, err := r.I32()
	if err != nil {
		return nil, formatError("data size", r, err)
	}
	if dataSize < 0 {
		return nil, fmt.Errorf("%w: negative data size %d", ErrFormat, dataSize)
	}
	payload, err := r.Next(int(dataSize))
	if err != nil {
		return nil, fmt.Errorf("%w: payload declares %d bytes, %d left",
			ErrFormat, dataSize, r.Remaining())
	}

	slog.Debug("table decoded",
		"fields", fieldCount,
		"records", recordCount,
		"payload_bytes", dataSize,
		"trailing_bytes", r.Remaining(),
	)

	return &Table{
		schema:      record.Schema{Fields: fields},
		recordCount: recordCount,
		offsets:     offsets,
		payload:     append([]byte{}, payload...),
		enc:         enc,
	}, nil
}

func formatError(section string, r *bx.Reader, err error) error {
	if errors.Is(err, bx.ErrShort) {
		return fmt.Errorf("%w: truncated %s at byte %d", ErrFormat, section, r.Pos())
	}
	return fmt.Errorf("%w: %s: %w", ErrFormat, section, err)
}

// persistedName cuts a name to what the one-byte length prefix can describe.
func persistedName(f record.Field) []byte {
	if len(f.Name) > record.MaxNameLen {
		return f.Name[:record.MaxNameLen]
	}
	return f.Name
}

func (t *Table) encodedSize() int {
	n := countSize
	for _, f := range t.schema.Fields {
		n += 2 + len(persistedName(f))
	}
	n += countSize + len(t.offsets)*offsetSize
	n += offsetSize + len(t.payload)
	return n
}

// Encode serializes the table in the same layout Decode reads, so
// Encode(Decode(b)) reproduces b for any well-formed b.
func (t *Table) Encode() []byte {
	w := bx.NewWriter(t.encodedSize())

	w.I16(t.schema.FieldCount())
	for _, f := range t.schema.Fields {
		w.Byte(byte(f.Type))
		name := persistedName(f)
		w.Byte(byte(len(name)))
		w.Raw(name)
	}

	w.I16(t.recordCount)
	for _, off := range t.offsets {
		w.I32(off)
	}

	w.I32(int32(len(t.payload)))
	w.Raw(t.payload)

	return w.Bytes()
}

// WriteTo writes the encoded table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t.Encode())
	return int64(n), err
}
