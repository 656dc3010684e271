package kdl

import (
	"github.com/sblinch/kdl-go"
)

// Decode overlays the KDL document in data on top of defaultCfg.
func Decode[T any](data []byte, defaultCfg T) (T, error) {
	var nilT T
	if err := kdl.Unmarshal(data, &defaultCfg); err != nil {
		return nilT, err
	}
	return defaultCfg, nil
}
