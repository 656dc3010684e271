package generator

import (
	"github.com/ykhdr/rainbow-hash/pkg/digest"
	"github.com/ykhdr/rainbow-hash/pkg/encoder"
	"github.com/ykhdr/rainbow-hash/pkg/record"
	"github.com/ykhdr/rainbow-hash/pkg/set"
)

// Builder computes the digest set of a single password.
type Builder struct {
	encoder  *encoder.Encoder
	digester *digest.Digester
}

func NewBuilder(enc *encoder.Encoder, digester *digest.Digester) *Builder {
	return &Builder{encoder: enc, digester: digester}
}

// NewBuilderFor resolves algorithm once, so an unsupported name fails here
// rather than on the first password.
func NewBuilderFor(algorithm string, registry *encoder.Registry) (*Builder, error) {
	digester, err := digest.New(algorithm)
	if err != nil {
		return nil, err
	}
	return NewBuilder(encoder.New(registry), digester), nil
}

func (b *Builder) Algorithm() string {
	return b.digester.Algorithm()
}

// DigestsFor hashes password under every salt in salts plus the empty salt,
// across every encoding able to represent the salted text.
func (b *Builder) DigestsFor(password string, salts set.Set[string]) record.DigestSet {
	out := set.New[string]()
	b.digestsWithSalt(out, password, "")
	for salt := range salts {
		if salt == "" {
			continue
		}
		b.digestsWithSalt(out, password, salt)
	}
	return out
}

func (b *Builder) digestsWithSalt(out record.DigestSet, password, salt string) {
	b.encoder.Each(encoder.NewPlaintext(password, salt), func(_ string, encoded []byte) {
		out.Add(b.digester.Digest(encoded))
	})
}
