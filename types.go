// Package icarusbin reads and writes table files: a schema of typed fields,
// a row-major offset index and a payload of packed cell values.
package icarusbin

import (
	"github.com/tuannm99/icarusbin/internal/record"
	"github.com/tuannm99/icarusbin/internal/storage"
	"github.com/tuannm99/icarusbin/internal/textenc"
)

type (
	Table     = storage.Table
	Schema    = record.Schema
	Field     = record.Field
	FieldType = record.FieldType
	Encoding  = textenc.Encoding
)

const (
	FieldFloat  = record.FieldFloat
	FieldString = record.FieldString
	FieldNone   = record.FieldNone
)

var (
	ErrFormat          = storage.ErrFormat
	ErrIO              = storage.ErrIO
	ErrBounds          = storage.ErrBounds
	ErrSchemaMismatch  = storage.ErrSchemaMismatch
	ErrPayloadTooLarge = storage.ErrPayloadTooLarge
	ErrUnknownEncoding = textenc.ErrUnknownEncoding

	UTF8 = textenc.UTF8
)

func Open(path string, enc Encoding) (*Table, error) { return storage.Open(path, enc) }

func Decode(data []byte, enc Encoding) (*Table, error) { return storage.Decode(data, enc) }

func New(schema Schema, enc Encoding) *Table { return storage.New(schema, enc) }

func NewField(t FieldType, name string, enc Encoding) Field {
	return record.NewField(t, name, enc)
}

func LookupEncoding(name string) (Encoding, error) { return textenc.Lookup(name) }
