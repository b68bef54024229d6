package storage

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tuannm99/icarusbin/internal/alias/bx"
	"github.com/tuannm99/icarusbin/internal/record"
)

// SetData rebuilds the offset index and payload from a row-major grid of
// cells. Each cell is turned into text and then stored according to its
// column's type: string columns get the encoded text plus a zero byte, float
// columns get the text parsed as a float32 (0 when it does not parse).
// Columns with a tag this package does not define get an offset and no bytes.
//
// Field types and names are not changed. colCount may not exceed the schema's
// field count; a smaller colCount drops the trailing fields. On error the
// table is left as it was.
func (t *Table) SetData(rowCount, colCount int, cells []any) error {
	if rowCount < 0 || rowCount > MaxRecords {
		return fmt.Errorf("%w: row count %d out of range", ErrSchemaMismatch, rowCount)
	}
	if colCount < 0 || colCount > MaxFields {
		return fmt.Errorf("%w: column count %d out of range", ErrSchemaMismatch, colCount)
	}
	if colCount > t.schema.NumCols() {
		return fmt.Errorf("%w: %d columns but schema has %d fields",
			ErrSchemaMismatch, colCount, t.schema.NumCols())
	}
	if len(cells) != rowCount*colCount {
		return fmt.Errorf("%w: %d cells for %dx%d table",
			ErrSchemaMismatch, len(cells), rowCount, colCount)
	}

	offsets := make([]int32, rowCount*colCount)
	w := bx.NewWriter(0)
	parseFailures := 0

	for row := 0; row < rowCount; row++ {
		for col := 0; col < colCount; col++ {
			i := row*colCount + col
			if w.Len() > MaxPayloadLen {
				return fmt.Errorf("%w: at row %d col %d", ErrPayloadTooLarge, row, col)
			}
			offsets[i] = int32(w.Len())

			text := CellText(cells[i])
			switch t.schema.Fields[col].Type {
			case record.FieldString:
				w.Raw(t.enc.Encode(text))
				w.Byte(0)
			case record.FieldFloat:
				f, ok := parseFloat(text)
				if !ok {
					parseFailures++
				}
				w.F32(f)
			}
		}
	}
	if w.Len() > MaxPayloadLen {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, w.Len())
	}

	t.schema.Fields = t.schema.Fields[:colCount]
	t.recordCount = int16(rowCount)
	t.offsets = offsets
	t.payload = w.Bytes()

	slog.Debug("table data rebuilt",
		"records", rowCount,
		"fields", colCount,
		"payload_bytes", len(t.payload),
		"float_parse_failures", parseFailures,
	)
	return nil
}

// parseFloat reads s as a float32. Anything unparsable, out of range
// included, yields 0.
func parseFloat(s string) (float32, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

// CellText converts a grid value to the text SetData stores or parses.
func CellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func cellError(row, col int, off int64) error {
	return fmt.Errorf("%w: row %d col %d offset %d", ErrBounds, row, col, off)
}
