package encoder

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func testRegistry() *Registry {
	return NewRegistry(map[string]encoding.Encoding{
		"UTF-8":      unicode.UTF8,
		"ISO-8859-1": charmap.ISO8859_1,
		"KOI8-R":     charmap.KOI8R,
	})
}

func TestPlaintextContentSaltFirst(t *testing.T) {
	assert.Equal(t, "abcpassword", NewPlaintext("password", "abc").Content())
	assert.Equal(t, "password", NewPlaintext("password", "").Content())
}

func TestEncodeSingle(t *testing.T) {
	enc := New(testRegistry())

	b, err := enc.Encode(NewPlaintext("pass", "s"), "utf-8")
	require.NoError(t, err)
	assert.Equal(t, []byte("spass"), b)

	b, err = enc.Encode(NewPlaintext("café", ""), "iso_8859_1")
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9}, b)
}

func TestEncodeUnsupportedEncoding(t *testing.T) {
	_, err := New(testRegistry()).Encode(NewPlaintext("pass", ""), "ebcdic")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedEncoding))
}

func TestEncodeStrictFailure(t *testing.T) {
	_, err := New(testRegistry()).Encode(NewPlaintext("пароль", ""), "iso_8859_1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEncodingFailure))
}

func TestEncodeAllSkipsFailuresOnly(t *testing.T) {
	out := New(testRegistry()).EncodeAll(NewPlaintext("пароль", ""))

	assert.Contains(t, out, "utf_8")
	assert.Contains(t, out, "koi8_r")
	assert.NotContains(t, out, "iso_8859_1")
	assert.Equal(t, []byte("пароль"), out["utf_8"])
}

func TestEncodeAllASCII(t *testing.T) {
	out := New(testRegistry()).EncodeAll(NewPlaintext("word", "salt"))
	require.Len(t, out, 3)
	for name, b := range out {
		assert.Equal(t, []byte("saltword"), b, name)
	}
}

func TestCanonicalName(t *testing.T) {
	cases := map[string]string{
		"UTF-8":              "utf_8",
		"  ISO 8859-1 ":      "iso_8859_1",
		"UTF-16BE (Use BOM)": "utf_16be_use_bom",
		"windows_1252":       "windows_1252",
		"--":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CanonicalName(in), in)
	}
}

func TestRegistrySubset(t *testing.T) {
	r := testRegistry()

	sub, err := r.Subset("utf-8")
	require.NoError(t, err)
	assert.Equal(t, []string{"utf_8"}, sub.Names())

	_, err = r.Subset("utf-8", "big5")
	assert.True(t, errors.Is(err, ErrUnsupportedEncoding))
}

func TestRegistryDropsPseudoEncodings(t *testing.T) {
	r := NewRegistry(map[string]encoding.Encoding{
		"utf-8":       unicode.UTF8,
		"nop":         encoding.Nop,
		"replacement": encoding.Replacement,
	})
	assert.Equal(t, []string{"utf_8"}, r.Names())
}

func TestDefaultRegistryIsShared(t *testing.T) {
	a := DefaultRegistry()
	b := DefaultRegistry()
	assert.Same(t, a, b)
	assert.Greater(t, a.Len(), 20)

	_, err := a.Lookup("utf-8")
	assert.NoError(t, err)
	assert.NotContains(t, a.Names(), "replacement")
}

func TestNamesIsACopy(t *testing.T) {
	r := testRegistry()
	names := r.Names()
	names[0] = "mutated"
	assert.NotEqual(t, "mutated", r.Names()[0])
}

func TestInvalidUTF8NeverEncodes(t *testing.T) {
	e := New(testRegistry())
	a := NewPlaintext("pa\xffss", "")
	b := NewPlaintext("pa\xfess", "")

	_, err := e.Encode(a, "utf-8")
	assert.True(t, errors.Is(err, ErrEncodingFailure))
	_, err = e.Encode(b, "iso-8859-1")
	assert.True(t, errors.Is(err, ErrEncodingFailure))

	assert.Empty(t, e.EncodeAll(a))
	assert.Empty(t, e.EncodeAll(b))
}

func TestInvalidUTF8AcrossSaltBoundary(t *testing.T) {
	// "é" split between salt and text is still well-formed content.
	out, err := New(testRegistry()).Encode(NewPlaintext("\xa9", "\xc3"), "iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xe9}, out)
}

func TestLookupResolvesAliases(t *testing.T) {
	r := DefaultRegistry()
	cases := map[string]encoding.Encoding{
		"utf-16le":            unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
		"UTF_16_LE":           unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
		"latin1":              charmap.ISO8859_1,
		"cp1252":              charmap.Windows1252,
		"utf_16le_ignore_bom": unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	}
	for alias, want := range cases {
		got, err := r.Lookup(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, got, alias)
	}

	_, err := r.Lookup("ebcdic-klingon")
	assert.True(t, errors.Is(err, ErrUnsupportedEncoding))
}

func TestSubsetUsesRegistryNames(t *testing.T) {
	sub, err := DefaultRegistry().Subset("utf-16le", "latin1")
	require.NoError(t, err)
	assert.Equal(t, []string{"iso_8859_1", "utf_16le_ignore_bom"}, sub.Names())

	// an alias of an encoding outside the registry stays unsupported
	_, err = testRegistry().Subset("cp1252")
	assert.True(t, errors.Is(err, ErrUnsupportedEncoding))
}

func TestASCIIAndUTF8Sig(t *testing.T) {
	e := New(DefaultRegistry())

	out, err := e.Encode(NewPlaintext("word", ""), "ascii")
	require.NoError(t, err)
	assert.Equal(t, []byte("word"), out)

	_, err = e.Encode(NewPlaintext("café", ""), "ascii")
	assert.True(t, errors.Is(err, ErrEncodingFailure))

	out, err = e.Encode(NewPlaintext("word", ""), "utf_8_sig")
	require.NoError(t, err)
	assert.Equal(t, append([]byte{0xef, 0xbb, 0xbf}, "word"...), out)
}
