package record

import (
	"math"

	"github.com/tuannm99/icarusbin/internal/textenc"
)

// FieldType is the on-disk type tag of a column.
type FieldType uint8

const (
	FieldFloat  FieldType = 0
	FieldString FieldType = 1
	// FieldNone is reported for columns outside the schema.
	FieldNone FieldType = 0xFF
)

// MaxNameLen is the longest field name the one-byte length prefix can carry.
const MaxNameLen = math.MaxUint8

// Known reports whether t is a tag the codec can read cells for. Tags a file
// declares but this package does not define are kept as-is.
func (t FieldType) Known() bool {
	return t == FieldFloat || t == FieldString
}

func (t FieldType) String() string {
	switch t {
	case FieldFloat:
		return "float"
	case FieldString:
		return "string"
	case FieldNone:
		return "none"
	default:
		return "unknown"
	}
}

// Field is one column definition. Name holds raw bytes in the document's
// text encoding.
type Field struct {
	Type FieldType
	Name []byte
}

// NewField encodes name with enc. Names longer than MaxNameLen bytes are cut
// to fit the length prefix.
func NewField(t FieldType, name string, enc textenc.Encoding) Field {
	raw := enc.Encode(name)
	if len(raw) > MaxNameLen {
		raw = raw[:MaxNameLen]
	}
	return Field{Type: t, Name: raw}
}

type Schema struct {
	Fields []Field
}

func (s Schema) NumCols() int { return len(s.Fields) }

func (s Schema) FieldCount() int16 { return int16(len(s.Fields)) }

func (s Schema) inRange(col int) bool { return col >= 0 && col < len(s.Fields) }

// FieldType returns FieldNone for col outside the schema.
func (s Schema) FieldType(col int) FieldType {
	if !s.inRange(col) {
		return FieldNone
	}
	return s.Fields[col].Type
}

// FieldName decodes the stored name with enc; "" for col outside the schema.
func (s Schema) FieldName(col int, enc textenc.Encoding) string {
	if !s.inRange(col) {
		return ""
	}
	return enc.Decode(s.Fields[col].Name)
}

// Clone returns a deep copy that shares no name bytes with s.
func (s Schema) Clone() Schema {
	if s.Fields == nil {
		return Schema{}
	}
	out := make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = Field{Type: f.Type, Name: append([]byte(nil), f.Name...)}
	}
	return Schema{Fields: out}
}
