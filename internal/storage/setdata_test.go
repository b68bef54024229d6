package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/icarusbin/internal/record"
	"github.com/tuannm99/icarusbin/internal/textenc"
)

func TestSetDataScenario(t *testing.T) {
	tbl := newScenarioTable(t)

	assert.Equal(t, int16(2), tbl.RowCount())
	assert.Equal(t, int16(2), tbl.ColCount())
	assert.Equal(t, 13, tbl.PayloadSize())

	// dense row-major packing
	for i, want := range []int32{0, 4, 6, 10} {
		off, ok := tbl.Offset(i/2, i%2)
		require.True(t, ok)
		assert.Equal(t, want, off)
	}

	requireScenarioCells(t, tbl)

	decoded, err := Decode(tbl.Encode(), textenc.UTF8)
	require.NoError(t, err)
	requireScenarioCells(t, decoded)
}

func TestSetDataFloatParsing(t *testing.T) {
	tbl := New(record.Schema{Fields: []record.Field{
		record.NewField(record.FieldFloat, "v", textenc.UTF8),
	}}, textenc.UTF8)

	cells := []any{"3.14", "not a number", " 2e3 ", nil, float32(0.1), 7, "1e999"}
	require.NoError(t, tbl.SetData(len(cells), 1, cells))

	read := func(row int) float32 {
		f, err := tbl.Float(row, 0)
		require.NoError(t, err)
		return f
	}

	assert.InDelta(t, 3.14, read(0), 1e-6)
	assert.Zero(t, read(1))
	assert.Equal(t, float32(2000), read(2))
	assert.Zero(t, read(3))
	assert.Equal(t, float32(0.1), read(4))
	assert.Equal(t, float32(7), read(5))
	// out of float32 range does not parse
	assert.Zero(t, read(6))
}

func TestSetDataStringEncoding(t *testing.T) {
	schema := record.Schema{Fields: []record.Field{
		record.NewField(record.FieldString, "s", textenc.UTF8),
	}}

	t.Run("utf-8", func(t *testing.T) {
		tbl := New(schema, textenc.UTF8)
		require.NoError(t, tbl.SetData(1, 1, []any{"héllo"}))
		// 6 bytes of text plus the terminator
		assert.Equal(t, 7, tbl.PayloadSize())

		s, err := tbl.String(0, 0)
		require.NoError(t, err)
		assert.Equal(t, "héllo", s)
	})

	t.Run("single byte code page", func(t *testing.T) {
		tbl := New(schema, textenc.MustLookup("windows-1252"))
		require.NoError(t, tbl.SetData(1, 1, []any{"héllo"}))
		assert.Equal(t, 6, tbl.PayloadSize())

		s, err := tbl.String(0, 0)
		require.NoError(t, err)
		assert.Equal(t, "héllo", s)

		require.NoError(t, tbl.SetEncoding("utf-8"))
		s, err = tbl.String(0, 0)
		require.NoError(t, err)
		assert.Equal(t, "h�llo", s)
	})
}

func TestSetDataSchemaMismatch(t *testing.T) {
	t.Run("more columns than fields", func(t *testing.T) {
		tbl := newScenarioTable(t)
		before := tbl.Encode()

		err := tbl.SetData(1, 3, []any{1, "a", "extra"})
		require.ErrorIs(t, err, ErrSchemaMismatch)
		assert.Equal(t, before, tbl.Encode())
	})

	t.Run("cell count", func(t *testing.T) {
		tbl := newScenarioTable(t)
		err := tbl.SetData(2, 2, []any{1, "a", 2})
		require.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("negative or oversized counts", func(t *testing.T) {
		tbl := newScenarioTable(t)
		require.ErrorIs(t, tbl.SetData(-1, 2, nil), ErrSchemaMismatch)
		require.ErrorIs(t, tbl.SetData(1, -2, nil), ErrSchemaMismatch)
		require.ErrorIs(t, tbl.SetData(math.MaxInt16+1, 0, nil), ErrSchemaMismatch)
	})
}

func TestSetDataFewerColumnsDropsTrailingFields(t *testing.T) {
	tbl := newScenarioTable(t)

	require.NoError(t, tbl.SetData(1, 1, []any{"8.5"}))
	assert.Equal(t, int16(1), tbl.ColCount())
	assert.Equal(t, record.FieldNone, tbl.FieldType(1))

	decoded, err := Decode(tbl.Encode(), textenc.UTF8)
	require.NoError(t, err)
	assert.Equal(t, int16(1), decoded.ColCount())
	f, err := decoded.Float(0, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(8.5), f)
}

func TestSetDataKeepsFieldDefinitions(t *testing.T) {
	tbl := newScenarioTable(t)
	schema := tbl.Schema()

	require.NoError(t, tbl.SetData(3, 2, []any{"1", "x", "2", "y", "3", "z"}))
	assert.Equal(t, schema, tbl.Schema())
	assert.Equal(t, int16(3), tbl.RowCount())

	require.NoError(t, tbl.SetData(0, 2, nil))
	assert.Equal(t, int16(0), tbl.RowCount())
	assert.Equal(t, 0, tbl.PayloadSize())
	assert.Equal(t, schema, tbl.Schema())
}

func TestSetDataUnknownTypeWritesNothing(t *testing.T) {
	tbl := New(record.Schema{Fields: []record.Field{
		{Type: record.FieldType(5), Name: []byte("odd")},
		record.NewField(record.FieldString, "s", textenc.UTF8),
	}}, textenc.UTF8)

	require.NoError(t, tbl.SetData(1, 2, []any{"ignored", "kept"}))

	off0, _ := tbl.Offset(0, 0)
	off1, _ := tbl.Offset(0, 1)
	assert.Equal(t, int32(0), off0)
	assert.Equal(t, int32(0), off1)

	s, err := tbl.String(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "kept", s)
}

type stringer struct{}

func (stringer) String() string { return "from stringer" }

func TestCellText(t *testing.T) {
	assert.Equal(t, "", CellText(nil))
	assert.Equal(t, "abc", CellText("abc"))
	assert.Equal(t, "raw", CellText([]byte("raw")))
	assert.Equal(t, "1.5", CellText(float32(1.5)))
	assert.Equal(t, "0.1", CellText(float32(0.1)))
	assert.Equal(t, "2.25", CellText(2.25))
	assert.Equal(t, "42", CellText(42))
	assert.Equal(t, "true", CellText(true))
	assert.Equal(t, "from stringer", CellText(stringer{}))
}
