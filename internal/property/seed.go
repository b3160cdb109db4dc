package property

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed seed.json
var seedJSON []byte

// Seed returns the built-in listings used when neither the remote API nor
// a local snapshot is available. Each call returns a fresh slice.
func Seed() ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(seedJSON, &records); err != nil {
		return nil, fmt.Errorf("decoding seed listings: %w", err)
	}
	return records, nil
}
