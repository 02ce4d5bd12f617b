// Package polls loads and validates the party poll dataset that seeds the
// scenario simulation.
package polls

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDataset is returned when a dataset parses but lists no parties.
var ErrEmptyDataset = errors.New("poll dataset contains no parties")

//go:embed default.json
var defaultDataset []byte

// PartyPoll is the polled average and 95% confidence interval of one party.
type PartyPoll struct {
	Key     string  `json:"key"`
	Avg     float64 `json:"avg"`
	CILower float64 `json:"ci_lower"`
	CIUpper float64 `json:"ci_upper"`
}

// Record is one entry of the on-disk dataset.
type Record struct {
	Party   string  `json:"party" yaml:"party" jsonschema:"party key, e.g. cxu"`
	Avg     float64 `json:"avg" yaml:"avg" jsonschema:"polled average in percent"`
	CILower float64 `json:"ci_lower" yaml:"ci_lower" jsonschema:"lower bound of the 95% interval"`
	CIUpper float64 `json:"ci_upper" yaml:"ci_upper" jsonschema:"upper bound of the 95% interval"`
}

// Dataset is the document layout of a poll file.
type Dataset struct {
	Updated string   `json:"updated,omitempty" yaml:"updated,omitempty"`
	Data    []Record `json:"data" yaml:"data"`
}

// Format identifies the encoding of a dataset.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor infers the dataset format from a file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Default returns the dataset embedded in the binary.
func Default() ([]PartyPoll, error) {
	return Parse(defaultDataset, FormatJSON)
}

// Load reads a dataset from disk. An empty path yields the embedded default.
func Load(path string) ([]PartyPoll, error) {
	if path == "" {
		log.Debug().Msg("No poll data path configured, using embedded dataset")
		return Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read poll data: %w", err)
	}

	parties, err := Parse(raw, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Info().Str("path", path).Int("parties", len(parties)).Msg("Loaded poll dataset")
	return parties, nil
}

// Parse decodes and validates a dataset.
func Parse(raw []byte, format Format) ([]PartyPoll, error) {
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML document: %w", err)
		}
		raw = converted
	}

	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("invalid poll dataset: %w", err)
	}
	return ds.Parties()
}

// Parties converts the records into validated PartyPolls, preserving order.
func (ds Dataset) Parties() ([]PartyPoll, error) {
	if len(ds.Data) == 0 {
		return nil, ErrEmptyDataset
	}

	seen := make(map[string]bool, len(ds.Data))
	out := make([]PartyPoll, 0, len(ds.Data))
	for i, r := range ds.Data {
		key := strings.TrimSpace(r.Party)
		switch {
		case key == "":
			return nil, fmt.Errorf("record %d: party key is empty", i)
		case seen[key]:
			return nil, fmt.Errorf("record %d: duplicate party %q", i, key)
		case r.Avg < 0:
			return nil, fmt.Errorf("record %d (%s): average must not be negative", i, key)
		case r.CILower > r.CIUpper:
			return nil, fmt.Errorf("record %d (%s): ci_lower %.2f exceeds ci_upper %.2f", i, key, r.CILower, r.CIUpper)
		}
		seen[key] = true
		out = append(out, PartyPoll{Key: key, Avg: r.Avg, CILower: r.CILower, CIUpper: r.CIUpper})
	}
	return out, nil
}

// FromParties builds a dataset document from in-memory polls.
func FromParties(updated string, parties []PartyPoll) Dataset {
	ds := Dataset{Updated: updated, Data: make([]Record, 0, len(parties))}
	for _, p := range parties {
		ds.Data = append(ds.Data, Record{Party: p.Key, Avg: p.Avg, CILower: p.CILower, CIUpper: p.CIUpper})
	}
	return ds
}

// Save writes a dataset as indented JSON or YAML depending on the extension.
func Save(path string, ds Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var (
		out []byte
		err error
	)
	if FormatFor(path) == FormatYAML {
		out, err = yaml.Marshal(ds)
	} else {
		out, err = json.MarshalIndent(ds, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	return os.WriteFile(path, out, 0644)
}
