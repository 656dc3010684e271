// Package digest computes hexadecimal digests with unkeyed hash functions
// selected by name.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"maps"
	"slices"
	"strings"

	sha256simd "github.com/minio/sha256-simd"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

const DefaultAlgorithm = "sha1"

var ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")

var algorithms = map[string]func() hash.Hash{
	"md4":         md4.New,
	"md5":         md5.New,
	"sha1":        sha1.New,
	"sha224":      sha256.New224,
	"sha256":      sha256simd.New,
	"sha384":      sha512.New384,
	"sha512":      sha512.New,
	"sha512_224":  sha512.New512_224,
	"sha512_256":  sha512.New512_256,
	"sha3_224":    sha3.New224,
	"sha3_256":    sha3.New256,
	"sha3_384":    sha3.New384,
	"sha3_512":    sha3.New512,
	"blake2b":     unkeyed(blake2b.New512),
	"blake2b_256": unkeyed(blake2b.New256),
	"blake2s":     unkeyed(blake2s.New256),
	"ripemd160":   ripemd160.New,
	"blake3":      func() hash.Hash { return blake3.New() },
	"xxh3":        func() hash.Hash { return xxh3.New() },
}

// unkeyed adapts the keyed BLAKE2 constructors; a nil key never fails.
func unkeyed(newKeyed func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := newKeyed(nil)
		if err != nil {
			panic(err)
		}
		return h
	}
}

// Supported returns the algorithm names in ascending order.
func Supported() []string {
	return slices.Sorted(maps.Keys(algorithms))
}

func IsSupported(name string) bool {
	_, ok := algorithms[normalize(name)]
	return ok
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

// Digester applies one algorithm. It is stateless and safe for concurrent use.
type Digester struct {
	name    string
	newHash func() hash.Hash
}

// New resolves the algorithm up front so an unsupported name fails before any
// hashing work is done.
func New(name string) (*Digester, error) {
	key := normalize(name)
	newHash, ok := algorithms[key]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedAlgorithm, "%q", name)
	}
	return &Digester{name: key, newHash: newHash}, nil
}

func (d *Digester) Algorithm() string {
	return d.name
}

// Digest returns the lowercase hexadecimal digest of b.
func (d *Digester) Digest(b []byte) string {
	h := d.newHash()
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))
}

func (d *Digester) Size() int {
	return d.newHash().Size()
}
