package export

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"pollscape/internal/polls"
	"pollscape/internal/simulation"
)

func TestWriteJSONL(t *testing.T) {
	parties, err := polls.Default()
	if err != nil {
		t.Fatal(err)
	}
	e := simulation.NewEngine()
	e.SetSeed(99)
	pop := e.Run(100, parties)

	path := filepath.Join(t.TempDir(), "nested", FileName(100, 99))
	if err := WriteJSONL(path, pop, 630); err != nil {
		t.Fatalf("WriteJSONL() failed: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	lines := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var rec struct {
			ID         int    `json:"id"`
			FirstParty string `json:"first_party"`
			Signature  string `json:"signature"`
			Seats      []struct {
				Party string `json:"party"`
				Seats int    `json:"seats"`
			} `json:"seats"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("line %d: %v", lines+1, err)
		}
		lines++
		if rec.ID != lines {
			t.Errorf("line %d carries scenario %d", lines, rec.ID)
		}
		if rec.FirstParty == "" || rec.Signature == "" {
			t.Errorf("scenario %d: missing derived fields", rec.ID)
		}
		sum := 0
		for _, s := range rec.Seats {
			sum += s.Seats
		}
		if sum != 630 {
			t.Errorf("scenario %d: %d seats exported", rec.ID, sum)
		}
	}
	if lines != 100 {
		t.Errorf("expected 100 lines, got %d", lines)
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(1000, 0); got != "scenarios-1000.jsonl" {
		t.Errorf("FileName() = %q", got)
	}
	if got := FileName(100, 7); got != "scenarios-100-seed7.jsonl" {
		t.Errorf("FileName() = %q", got)
	}
}
