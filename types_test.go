package icarusbin_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/icarusbin"
)

func TestFacadeRoundTrip(t *testing.T) {
	schema := icarusbin.Schema{Fields: []icarusbin.Field{
		icarusbin.NewField(icarusbin.FieldFloat, "x", icarusbin.UTF8),
		icarusbin.NewField(icarusbin.FieldString, "name", icarusbin.UTF8),
	}}
	tbl := icarusbin.New(schema, icarusbin.UTF8)
	require.NoError(t, tbl.SetData(2, 2, []any{1.5, "a", 2.5, "bb"}))

	path := filepath.Join(t.TempDir(), "f.bin")
	require.NoError(t, tbl.Save(path))

	got, err := icarusbin.Open(path, icarusbin.UTF8)
	require.NoError(t, err)
	assert.Equal(t, tbl.Encode(), got.Encode())

	again, err := icarusbin.Decode(got.Encode(), icarusbin.UTF8)
	require.NoError(t, err)
	s, err := again.String(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "bb", s)

	_, err = icarusbin.LookupEncoding("nope")
	require.ErrorIs(t, err, icarusbin.ErrUnknownEncoding)

	_, err = icarusbin.Decode([]byte{1}, icarusbin.UTF8)
	require.ErrorIs(t, err, icarusbin.ErrFormat)
}
