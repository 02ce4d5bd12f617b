package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetup_WritesBothSinks(t *testing.T) {
	saved := log.Logger
	savedLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = saved
		zerolog.SetGlobalLevel(savedLevel)
	})

	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer
	if err := Setup(Options{Verbose: true, Dir: dir, Console: &console}); err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	log.Debug().Int("scenarios", 100).Msg("population ready")

	if !strings.Contains(console.String(), "population ready") {
		t.Errorf("console output missing message: %q", console.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"scenarios":100`) {
		t.Errorf("log file missing structured field: %s", data)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Error("verbose must enable debug level")
	}
}

func TestResolveDir_Env(t *testing.T) {
	t.Setenv("LOGS_FOLDER", "/tmp/pollscape-logs")
	if got := ResolveDir(); got != "/tmp/pollscape-logs" {
		t.Errorf("ResolveDir() = %q", got)
	}
}
