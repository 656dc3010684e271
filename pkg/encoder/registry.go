package encoder

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// Registry is an immutable set of named text encodings.
type Registry struct {
	byName map[string]encoding.Encoding
	names  []string
	// canonical name of each encoding value, for alias resolution
	nameOf map[encoding.Encoding]string
}

// DefaultRegistry returns every encoding known to x/text. It is built on first
// use and shared for the lifetime of the process.
var DefaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(available())
})

// NewRegistry builds a registry from the given encodings, keyed by their
// canonical names. Pseudo-encodings are dropped.
func NewRegistry(encodings map[string]encoding.Encoding) *Registry {
	r := &Registry{byName: make(map[string]encoding.Encoding, len(encodings))}
	for name, enc := range encodings {
		name = CanonicalName(name)
		if name == "" || enc == nil || isPseudo(enc) {
			continue
		}
		if _, dup := r.byName[name]; dup {
			continue
		}
		r.byName[name] = enc
		r.names = append(r.names, name)
	}
	slices.Sort(r.names)
	r.nameOf = make(map[encoding.Encoding]string, len(r.names))
	for _, name := range r.names {
		if _, dup := r.nameOf[r.byName[name]]; !dup {
			r.nameOf[r.byName[name]] = name
		}
	}
	return r
}

// Names returns the canonical encoding names in ascending order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

func (r *Registry) Len() int {
	return len(r.names)
}

// Lookup finds an encoding by its registry name or by any IANA or WHATWG
// alias of it, so "utf-16le", "latin1" and "cp1252" all resolve.
func (r *Registry) Lookup(name string) (encoding.Encoding, error) {
	_, enc, err := r.resolve(name)
	return enc, err
}

func (r *Registry) resolve(name string) (string, encoding.Encoding, error) {
	canonical := CanonicalName(name)
	if enc, ok := r.byName[canonical]; ok {
		return canonical, enc, nil
	}
	for _, alias := range aliasCandidates(name) {
		enc := indexLookup(alias)
		if enc == nil {
			continue
		}
		if resolved, ok := r.nameOf[enc]; ok {
			return resolved, enc, nil
		}
	}
	return "", nil, errors.Wrapf(ErrUnsupportedEncoding, "%q", name)
}

// aliasCandidates spells name the way the label indexes expect it:
// "utf_16_le" is tried as "utf-16-le" and "utf-16le".
func aliasCandidates(name string) []string {
	out := []string{strings.TrimSpace(name)}
	hyphenated := strings.ReplaceAll(CanonicalName(name), "_", "-")
	out = append(out, hyphenated)
	if i := strings.LastIndexByte(hyphenated, '-'); i > 0 {
		out = append(out, hyphenated[:i]+hyphenated[i+1:])
	}
	return out
}

func indexLookup(alias string) encoding.Encoding {
	if enc, err := ianaindex.IANA.Encoding(alias); err == nil && enc != nil {
		return enc
	}
	if enc, err := htmlindex.Get(alias); err == nil && enc != nil {
		return enc
	}
	return nil
}

// Subset narrows the registry to the named encodings. Every name must be
// supported.
func (r *Registry) Subset(names ...string) (*Registry, error) {
	picked := make(map[string]encoding.Encoding, len(names))
	for _, name := range names {
		resolved, enc, err := r.resolve(name)
		if err != nil {
			return nil, err
		}
		picked[resolved] = enc
	}
	return NewRegistry(picked), nil
}

// CanonicalName lower-cases name and collapses every run of characters other
// than letters and digits into a single underscore: "UTF-8" becomes "utf_8".
func CanonicalName(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

func isPseudo(enc encoding.Encoding) bool {
	return enc == encoding.Nop || enc == encoding.Replacement
}

func available() map[string]encoding.Encoding {
	tables := [][]encoding.Encoding{
		charmap.All,
		japanese.All,
		korean.All,
		simplifiedchinese.All,
		traditionalchinese.All,
		unicode.All,
		utf32.All,
	}
	out := make(map[string]encoding.Encoding)
	for _, table := range tables {
		for _, enc := range table {
			name := encodingName(enc)
			if name == "" {
				continue
			}
			if _, dup := out[name]; !dup {
				out[name] = enc
			}
		}
	}
	out["utf_8_sig"] = unicode.UTF8BOM
	out["ascii"] = ASCII
	return out
}

func encodingName(enc encoding.Encoding) string {
	if s, ok := enc.(fmt.Stringer); ok {
		return CanonicalName(s.String())
	}
	name, err := ianaindex.IANA.Name(enc)
	if err != nil {
		return ""
	}
	return CanonicalName(name)
}
