// Package textenc resolves named text encodings and converts between Go
// strings and the raw bytes stored in table files.
package textenc

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var ErrUnknownEncoding = errors.New("textenc: unknown encoding")

// Encoding is a named text encoding. The zero value behaves as UTF-8.
type Encoding struct {
	name string
	enc  encoding.Encoding
}

// UTF8 is the default document encoding.
var UTF8 = Encoding{name: "utf-8", enc: unicode.UTF8}

// Lookup resolves name as a WHATWG label first and as an IANA name second.
// Lookups are case-insensitive and ignore surrounding whitespace.
func Lookup(name string) (Encoding, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	if label == "" {
		return Encoding{}, fmt.Errorf("%w: empty name", ErrUnknownEncoding)
	}

	if e, err := htmlindex.Get(label); err == nil && e != nil {
		return Encoding{name: canonicalName(e, label), enc: e}, nil
	}

	// ianaindex returns a nil encoding without error for names it knows
	// but has no implementation for.
	e, err := ianaindex.IANA.Encoding(label)
	if err != nil || e == nil {
		return Encoding{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return Encoding{name: canonicalName(e, label), enc: e}, nil
}

// MustLookup is Lookup for encoding names known at compile time.
func MustLookup(name string) Encoding {
	e, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return e
}

func canonicalName(e encoding.Encoding, fallback string) string {
	if n, err := htmlindex.Name(e); err == nil {
		return n
	}
	if n, err := ianaindex.IANA.Name(e); err == nil {
		return strings.ToLower(n)
	}
	return fallback
}

func (e Encoding) Name() string {
	if e.enc == nil {
		return UTF8.name
	}
	return e.name
}

func (e Encoding) String() string { return e.Name() }

func (e Encoding) get() encoding.Encoding {
	if e.enc == nil {
		return UTF8.enc
	}
	return e.enc
}

// Decode converts raw bytes to a string. Byte sequences that are invalid in
// the encoding come out as U+FFFD; decoding never fails.
func (e Encoding) Decode(b []byte) string {
	out, err := e.get().NewDecoder().Bytes(b)
	if err != nil {
		// x/text decoders substitute instead of failing; keep the bytes
		// verbatim if one ever does.
		return string(b)
	}
	return string(out)
}

// Encode converts s to raw bytes. Runes the encoding cannot represent are
// replaced by the encoding's substitution character.
func (e Encoding) Encode(s string) []byte {
	out, err := encoding.ReplaceUnsupported(e.get().NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}
