// Package wordlist reads newline-delimited candidate lists into sets.
package wordlist

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/ykhdr/rainbow-hash/common/resource"
	"github.com/ykhdr/rainbow-hash/pkg/set"
)

const maxLineSize = 1 << 20

// Read collects every non-empty line of r. A trailing "\r" is stripped; other
// whitespace is part of the entry.
func Read(r io.Reader) (set.Set[string], error) {
	words := set.New[string]()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		word := strings.TrimSuffix(scanner.Text(), "\r")
		if word == "" {
			continue
		}
		words.Add(word)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan wordlist")
	}
	return words, nil
}

// Load reads the wordlist at path in full.
func Load(path string) (set.Set[string], error) {
	f, err := resource.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	words, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return words, nil
}

// LoadOptional behaves like Load but treats an empty path as an empty list.
func LoadOptional(path string) (set.Set[string], error) {
	if path == "" {
		return set.New[string](), nil
	}
	return Load(path)
}
