package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the name of the rotating log file.
const FileName = "pollscape.log"

// Options configure the global logger.
type Options struct {
	Verbose bool
	// Dir receives the rotating log file.
	Dir string
	// Console receives human-readable output. Defaults to os.Stderr; stdout
	// is reserved for the MCP stdio transport.
	Console io.Writer
}

// Init initializes the global logger with dual sinks: os.Stderr and a
// rotating file. Failing to prepare the log directory is fatal.
func Init(verbose bool) {
	// Init runs before config.Load, so LOGS_FOLDER may still sit in the
	// binary's .env.
	exePath, err := os.Executable()
	if err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}

	if err := Setup(Options{Verbose: verbose, Dir: ResolveDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ResolveDir returns LOGS_FOLDER, or a logs directory next to the binary.
func ResolveDir() string {
	if dir := os.Getenv("LOGS_FOLDER"); dir != "" {
		return dir
	}
	exePath, err := os.Executable()
	if err != nil {
		return "logs"
	}
	return filepath.Join(filepath.Dir(exePath), "logs")
}

// Setup replaces the global logger.
func Setup(opts Options) error {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	console := opts.Console
	noColor := true
	if console == nil {
		console = os.Stderr
		noColor = !(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
	}
	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", opts.Dir, err)
	}
	// MkdirAll succeeds on existing read-only directories.
	testFile := filepath.Join(opts.Dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return fmt.Errorf("log directory %q is not writable: %w", opts.Dir, err)
	}
	_ = os.Remove(testFile)

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, FileName),
		MaxSize:    16, // megabytes
		MaxBackups: 8,
		MaxAge:     90, // days
		Compress:   true,
	}

	multi := zerolog.MultiLevelWriter(io.Writer(consoleWriter), fileWriter)
	log.Logger = zerolog.New(multi).
		With().
		Timestamp().
		Logger()
	return nil
}
