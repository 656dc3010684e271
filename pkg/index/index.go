// Package index answers reverse lookups: which passwords produce a digest.
package index

import (
	"github.com/ykhdr/rainbow-hash/pkg/record"
	"github.com/ykhdr/rainbow-hash/pkg/set"
)

type ReverseIndex interface {
	Lookup(mode record.SaltingMode, digest string) set.Set[string]
	Contains(mode record.SaltingMode, digest string) bool
}

// Lookup scans every password of the selected mapping. An absent digest
// yields an empty set.
func Lookup(r *record.Record, mode record.SaltingMode, digest string) set.Set[string] {
	found := set.New[string]()
	for password, digests := range r.Mapping(mode) {
		if digests.Has(digest) {
			found.Add(password)
		}
	}
	return found
}

func Contains(r *record.Record, mode record.SaltingMode, digest string) bool {
	return Lookup(r, mode, digest).Len() > 0
}

// Scan is the ReverseIndex backed by a linear scan of the record.
type Scan struct {
	record *record.Record
}

func NewScan(r *record.Record) *Scan {
	return &Scan{record: r}
}

func (s *Scan) Lookup(mode record.SaltingMode, digest string) set.Set[string] {
	return Lookup(s.record, mode, digest)
}

func (s *Scan) Contains(mode record.SaltingMode, digest string) bool {
	return Contains(s.record, mode, digest)
}

// Inverted maps each digest straight to its passwords, built once per mode.
type Inverted struct {
	byMode map[record.SaltingMode]map[string]set.Set[string]
}

func NewInverted(r *record.Record) *Inverted {
	inv := &Inverted{byMode: make(map[record.SaltingMode]map[string]set.Set[string], len(record.Modes))}
	for _, mode := range record.Modes {
		byDigest := make(map[string]set.Set[string])
		for password, digests := range r.Mapping(mode) {
			for d := range digests {
				passwords, ok := byDigest[d]
				if !ok {
					passwords = set.New[string]()
					byDigest[d] = passwords
				}
				passwords.Add(password)
			}
		}
		inv.byMode[mode] = byDigest
	}
	return inv
}

// Lookup returns a copy so callers cannot alter the index.
func (i *Inverted) Lookup(mode record.SaltingMode, digest string) set.Set[string] {
	return i.byMode[mode][digest].Clone()
}

func (i *Inverted) Contains(mode record.SaltingMode, digest string) bool {
	return i.byMode[mode][digest].Len() > 0
}

// Digests returns how many distinct digests the mode holds.
func (i *Inverted) Digests(mode record.SaltingMode) int {
	return len(i.byMode[mode])
}

var (
	_ ReverseIndex = (*Scan)(nil)
	_ ReverseIndex = (*Inverted)(nil)
)
