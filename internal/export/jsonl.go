// Package export writes generated populations to disk for offline analysis.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pollscape/internal/simulation"

	"github.com/rs/zerolog/log"
)

// ScenarioRecord is one exported line.
type ScenarioRecord struct {
	*simulation.Scenario
	Seats []simulation.SeatAllocation `json:"seats"`
}

// WriteJSONL writes one record per scenario to path, replacing any existing
// file atomically. Absolute seats are computed for totalSeats.
func WriteJSONL(path string, pop *simulation.Population, totalSeats int) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp export file: %w", err)
	}

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)

	for _, s := range pop.Scenarios {
		rec := ScenarioRecord{Scenario: s, Seats: simulation.ToAbsoluteSeats(s, totalSeats)}
		if err := encoder.Encode(rec); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to encode scenario %d: %w", s.ID, err)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename export file: %w", err)
	}

	log.Info().Str("path", path).Int("scenarios", pop.Count()).Msg("Population exported")
	return nil
}

// FileName returns the export file name for a population drawn with seed.
func FileName(count int, seed int64) string {
	if seed == 0 {
		return fmt.Sprintf("scenarios-%d.jsonl", count)
	}
	return fmt.Sprintf("scenarios-%d-seed%d.jsonl", count, seed)
}
