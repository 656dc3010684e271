package digest

import (
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownDigests(t *testing.T) {
	cases := []struct {
		algorithm string
		input     string
		want      string
	}{
		{"sha1", "password", "5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8"},
		{"md5", "password", "5f4dcc3b5aa765d61d8327deb882cf99"},
		{"sha256", "password", "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"},
		{"sha1", "", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"md4", "", "31d6cfe0d16ae931b73c59d7e0c089c0"},
		{"sha3_256", "", "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{"ripemd160", "", "9c1185a5c5e9fc54612808977ee8f548b2258d31"},
		{"blake3", "", "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
	}
	for _, tc := range cases {
		d, err := New(tc.algorithm)
		require.NoError(t, err, tc.algorithm)
		assert.Equal(t, tc.want, d.Digest([]byte(tc.input)), tc.algorithm)
	}
}

func TestEveryAlgorithmProducesLowercaseHex(t *testing.T) {
	for _, name := range Supported() {
		d, err := New(name)
		require.NoError(t, err, name)

		got := d.Digest([]byte("abcpassword"))
		assert.Len(t, got, d.Size()*2, name)
		assert.Equal(t, strings.ToLower(got), got, name)
		assert.Equal(t, got, d.Digest([]byte("abcpassword")), name)
	}
}

func TestNewUnsupported(t *testing.T) {
	_, err := New("bcrypt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedAlgorithm))
	assert.False(t, IsSupported("bcrypt"))
}

func TestNameNormalization(t *testing.T) {
	d, err := New(" SHA3-512 ")
	require.NoError(t, err)
	assert.Equal(t, "sha3_512", d.Algorithm())
	assert.True(t, IsSupported("SHA1"))
}

func TestDefaultAlgorithmSupported(t *testing.T) {
	assert.Contains(t, Supported(), DefaultAlgorithm)
}

func TestDigesterConcurrentUse(t *testing.T) {
	d, err := New("sha1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8", d.Digest([]byte("password")))
		}()
	}
	wg.Wait()
}
