// Package record holds the persisted artifact of a generation run: for each
// salting mode, the digests every password produces.
package record

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/ykhdr/rainbow-hash/pkg/set"
)

type SaltingMode int

const (
	Unsalted SaltingMode = iota
	Salted
)

var ErrUnknownSaltingMode = errors.New("unknown salting mode")

var Modes = []SaltingMode{Unsalted, Salted}

func (m SaltingMode) String() string {
	switch m {
	case Unsalted:
		return "unsalted"
	case Salted:
		return "salted"
	default:
		return "unknown"
	}
}

func ParseSaltingMode(s string) (SaltingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unsalted":
		return Unsalted, nil
	case "salted":
		return Salted, nil
	default:
		return 0, errors.Wrapf(ErrUnknownSaltingMode, "%q", s)
	}
}

// ModeFor maps the cracker's useSalts switch to a salting mode.
func ModeFor(useSalts bool) SaltingMode {
	if useSalts {
		return Salted
	}
	return Unsalted
}

type DigestSet = set.Set[string]

// Mapping maps a password to the digests it produces.
type Mapping map[string]DigestSet

func (m Mapping) Equal(other Mapping) bool {
	if len(m) != len(other) {
		return false
	}
	for password, digests := range m {
		theirs, ok := other[password]
		if !ok || !digests.Equal(theirs) {
			return false
		}
	}
	return true
}

// Record is immutable once built; regenerate it to change it.
type Record struct {
	Unsalted Mapping
	Salted   Mapping
}

func New(unsalted, salted Mapping) *Record {
	if unsalted == nil {
		unsalted = Mapping{}
	}
	if salted == nil {
		salted = Mapping{}
	}
	return &Record{Unsalted: unsalted, Salted: salted}
}

func (r *Record) Mapping(mode SaltingMode) Mapping {
	if mode == Salted {
		return r.Salted
	}
	return r.Unsalted
}

func (r *Record) Equal(other *Record) bool {
	return r.Unsalted.Equal(other.Unsalted) && r.Salted.Equal(other.Salted)
}

// Passwords returns the number of passwords in each mode.
func (r *Record) Passwords(mode SaltingMode) int {
	return len(r.Mapping(mode))
}
