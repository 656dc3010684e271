package record

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/ykhdr/rainbow-hash/pkg/set"
)

var ErrCorruptRecord = errors.New("corrupt record")

type wireRecord struct {
	Unsalted map[string][]string `json:"unsalted"`
	Salted   map[string][]string `json:"salted"`
}

// Write serialises r as a JSON object with exactly the "unsalted" and
// "salted" keys. Digest arrays are sorted so output is reproducible.
func Write(w io.Writer, r *Record) error {
	wire := wireRecord{
		Unsalted: toWire(r.Unsalted),
		Salted:   toWire(r.Salted),
	}
	if err := json.NewEncoder(w).Encode(&wire); err != nil {
		return errors.Wrap(err, "encode record")
	}
	return nil
}

// Read parses a record written by Write. Malformed JSON or a missing
// top-level key is ErrCorruptRecord.
func Read(rd io.Reader) (*Record, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(rd).Decode(&raw); err != nil {
		return nil, errors.Wrapf(ErrCorruptRecord, "decode: %v", err)
	}
	mappings := make(map[SaltingMode]Mapping, len(Modes))
	for _, mode := range Modes {
		data, ok := raw[mode.String()]
		if !ok || isNull(data) {
			return nil, errors.Wrapf(ErrCorruptRecord, "missing %q", mode.String())
		}
		var wire map[string][]string
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, errors.Wrapf(ErrCorruptRecord, "%s: %v", mode.String(), err)
		}
		mappings[mode] = fromWire(wire)
	}
	return New(mappings[Unsalted], mappings[Salted]), nil
}

func isNull(data json.RawMessage) bool {
	return string(data) == "null"
}

func toWire(m Mapping) map[string][]string {
	out := make(map[string][]string, len(m))
	for password, digests := range m {
		out[password] = set.Sorted(digests)
	}
	return out
}

func fromWire(wire map[string][]string) Mapping {
	out := make(Mapping, len(wire))
	for password, digests := range wire {
		out[password] = set.New(digests...)
	}
	return out
}
