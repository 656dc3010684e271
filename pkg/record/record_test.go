package record

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykhdr/rainbow-hash/common/resource"
	"github.com/ykhdr/rainbow-hash/pkg/set"
)

func sampleRecord() *Record {
	return New(
		Mapping{
			"password": set.New("5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8"),
			"qwerty":   set.New("b1b3773a05c0ed0176787a4f1574ff0075f7521e"),
		},
		Mapping{
			"password": set.New(
				"5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8",
				"403e4a4698de0d54c867b5cfaf4227eecb48d5da",
			),
			"qwerty": set.New("b1b3773a05c0ed0176787a4f1574ff0075f7521e"),
		},
	)
}

func TestSaltingMode(t *testing.T) {
	for _, mode := range Modes {
		parsed, err := ParseSaltingMode(strings.ToUpper(mode.String()))
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
	_, err := ParseSaltingMode("peppered")
	assert.True(t, errors.Is(err, ErrUnknownSaltingMode))

	assert.Equal(t, Salted, ModeFor(true))
	assert.Equal(t, Unsalted, ModeFor(false))
}

func TestWriteShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleRecord()))

	var raw map[string]map[string][]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Len(t, raw, 2)
	require.Contains(t, raw, "salted")
	require.Contains(t, raw, "unsalted")
	assert.Equal(t, []string{
		"403e4a4698de0d54c867b5cfaf4227eecb48d5da",
		"5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8",
	}, raw["salted"]["password"])
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	original := sampleRecord()
	require.NoError(t, Write(&buf, original))
	data := buf.Bytes()

	first, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	second, err := Read(bytes.NewReader(data))
	require.NoError(t, err)

	assert.True(t, original.Equal(first))
	assert.True(t, first.Equal(second))
}

func TestRoundTripEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, New(nil, nil)))
	assert.JSONEq(t, `{"unsalted":{},"salted":{}}`, buf.String())

	r, err := Read(&buf)
	require.NoError(t, err)
	assert.Zero(t, r.Passwords(Unsalted))
	assert.Zero(t, r.Passwords(Salted))
}

func TestReadCorrupt(t *testing.T) {
	cases := map[string]string{
		"missing salted":   `{"unsalted": {}}`,
		"missing unsalted": `{"salted": {}}`,
		"null mode":        `{"salted": {}, "unsalted": null}`,
		"wrong type":       `{"salted": [], "unsalted": {}}`,
		"not json":         `salted=1`,
		"not an object":    `[]`,
		"empty":            ``,
	}
	for name, doc := range cases {
		_, err := Read(strings.NewReader(doc))
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrCorruptRecord), name)
	}
}

func TestReadAcceptsUnsortedArrays(t *testing.T) {
	doc := `{"unsalted": {"a": ["2", "1", "1"]}, "salted": {"a": ["1", "2", "3"]}}`
	r, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	assert.True(t, set.New("1", "2").Equal(r.Unsalted["a"]))
	assert.Equal(t, 3, r.Salted["a"].Len())
}

func TestMappingEqual(t *testing.T) {
	a := Mapping{"p": set.New("x", "y")}
	assert.True(t, a.Equal(Mapping{"p": set.New("y", "x")}))
	assert.False(t, a.Equal(Mapping{"p": set.New("x")}))
	assert.False(t, a.Equal(Mapping{"q": set.New("x", "y")}))
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hashes.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(ctx, sampleRecord()))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, sampleRecord().Equal(loaded))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestFileStoreMissing(t *testing.T) {
	_, err := NewFileStore(filepath.Join(t.TempDir(), "none.json")).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, resource.ErrUnavailable))
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hashes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"salted": {}}`), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.True(t, errors.Is(err, ErrCorruptRecord))
}

var _ Store = (*FileStore)(nil)
