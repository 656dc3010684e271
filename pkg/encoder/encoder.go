// Package encoder turns salted plaintexts into byte sequences under every
// supported text encoding.
package encoder

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

var ErrEncodingFailure = errors.New("plaintext not representable in encoding")

// Plaintext is a candidate password paired with the salt it is hashed with.
type Plaintext struct {
	Text string
	Salt string
}

func NewPlaintext(text, salt string) Plaintext {
	return Plaintext{Text: text, Salt: salt}
}

// Content is the string that gets encoded: the salt followed by the text.
func (p Plaintext) Content() string {
	return p.Salt + p.Text
}

// Valid reports whether the content is well-formed UTF-8.
func (p Plaintext) Valid() bool {
	return utf8.ValidString(p.Content())
}

type Encoder struct {
	registry *Registry
}

func New(registry *Registry) *Encoder {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Encoder{registry: registry}
}

func (e *Encoder) Registry() *Registry {
	return e.registry
}

// Encode encodes p under the named encoding with strict error handling. An
// unknown name yields ErrUnsupportedEncoding, an unrepresentable character
// ErrEncodingFailure. Content that is not valid UTF-8 fails under every
// encoding.
func (e *Encoder) Encode(p Plaintext, name string) ([]byte, error) {
	enc, err := e.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !p.Valid() {
		return nil, errors.Wrapf(ErrEncodingFailure, "%s: invalid utf-8", CanonicalName(name))
	}
	out, err := enc.NewEncoder().Bytes([]byte(p.Content()))
	if err != nil {
		return nil, errors.Wrapf(ErrEncodingFailure, "%s: %v", CanonicalName(name), err)
	}
	return out, nil
}

// EncodeAll encodes p under every encoding of the registry. Encodings that
// cannot represent p are absent from the result.
func (e *Encoder) EncodeAll(p Plaintext) map[string][]byte {
	out := make(map[string][]byte, e.registry.Len())
	e.Each(p, func(name string, b []byte) {
		out[name] = b
	})
	return out
}

// Each calls fn for every encoding that can represent p, in name order.
func (e *Encoder) Each(p Plaintext, fn func(name string, b []byte)) {
	if !p.Valid() {
		return
	}
	content := []byte(p.Content())
	for _, name := range e.registry.names {
		b, err := e.registry.byName[name].NewEncoder().Bytes(content)
		if err != nil {
			continue
		}
		fn(name, b)
	}
}
