package storage

import (
	"errors"
	"math"
)

const (
	FileMode0644 = 0o644 // rw-r--r--

	// Fixed widths of the on-disk integers.
	countSize  = 2 // int16 fieldCount / recordCount
	offsetSize = 4 // int32 offset / dataSize
	floatSize  = 4 // float32 cell

	MaxRecords    = math.MaxInt16
	MaxFields     = math.MaxInt16
	MaxPayloadLen = math.MaxInt32
)

var (
	// ErrFormat marks a file whose structure is truncated or malformed.
	ErrFormat = errors.New("storage: malformed table file")
	// ErrIO marks a failure to open, read or write the backing file.
	ErrIO = errors.New("storage: I/O error")
	// ErrBounds marks a cell whose stored offset points outside the payload,
	// or a string cell with no terminator before the end of the payload.
	ErrBounds = errors.New("storage: cell out of payload bounds")
	// ErrSchemaMismatch is returned by SetData when the data does not fit
	// the current schema.
	ErrSchemaMismatch  = errors.New("storage: data does not match schema")
	ErrPayloadTooLarge = errors.New("storage: payload exceeds int32 size")
)
