package textenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Run("whatwg labels", func(t *testing.T) {
		e, err := Lookup("UTF-8")
		require.NoError(t, err)
		assert.Equal(t, "utf-8", e.Name())

		e, err = Lookup(" latin1 ")
		require.NoError(t, err)
		assert.Equal(t, "windows-1252", e.Name())

		e, err = Lookup("shift_jis")
		require.NoError(t, err)
		assert.Equal(t, "shift_jis", e.Name())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Lookup("no-such-charset")
		require.ErrorIs(t, err, ErrUnknownEncoding)

		_, err = Lookup("   ")
		require.ErrorIs(t, err, ErrUnknownEncoding)
	})
}

func TestZeroValueIsUTF8(t *testing.T) {
	var e Encoding
	assert.Equal(t, "utf-8", e.Name())
	assert.Equal(t, "héllo", e.Decode([]byte("héllo")))
	assert.Equal(t, []byte("héllo"), e.Encode("héllo"))
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"utf-8", "windows-1252", "iso-8859-2", "koi8-r"} {
		t.Run(name, func(t *testing.T) {
			e := MustLookup(name)
			assert.Equal(t, "abc", e.Decode(e.Encode("abc")))
		})
	}

	cp := MustLookup("windows-1252")
	raw := cp.Encode("héllo")
	// single byte per rune in a code page
	assert.Equal(t, []byte{'h', 0xe9, 'l', 'l', 'o'}, raw)
	assert.Equal(t, "héllo", cp.Decode(raw))
}

func TestMismatchedEncodingDoesNotFail(t *testing.T) {
	raw := UTF8.Encode("héllo")

	ascii := MustLookup("ascii")
	got := ascii.Decode(raw)
	assert.NotEqual(t, "héllo", got)
	assert.Equal(t, "hÃ©llo", got)

	// invalid UTF-8 comes back as the replacement rune
	assert.Equal(t, "h�llo", UTF8.Decode([]byte{'h', 0xe9, 'l', 'l', 'o'}))
}

func TestEncodeUnsupportedRune(t *testing.T) {
	cp := MustLookup("windows-1252")
	raw := cp.Encode("a中b")
	require.Len(t, raw, 3)
	assert.Equal(t, byte('a'), raw[0])
	assert.Equal(t, byte('b'), raw[2])
}
