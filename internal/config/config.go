package config

import (
	"os"
	"path/filepath"
	"strconv"

	"pollscape/internal/election"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// PollDataPath points to a JSON or YAML poll dataset. Empty selects the
	// embedded dataset.
	PollDataPath        string
	ScenarioCount       int
	Seed                int64
	TotalSeats          int
	HTTPAddr            string
	DataPath            string
	ExportDir           string
	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	return FromEnv(exeDir), nil
}

// FromEnv builds the configuration from the process environment. baseDir is
// the fallback for DATA_PATH.
func FromEnv(baseDir string) *AppConfig {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if baseDir != "" {
			dataPath = baseDir
		} else {
			dataPath = "."
		}
	}

	exportDir := filepath.Join(dataPath, "exports")

	scenarioCount := getEnvInt("SCENARIO_COUNT", election.ScenarioCounts()[0])
	if !election.ValidScenarioCount(scenarioCount) {
		log.Warn().Int("value", scenarioCount).Msg("Unsupported SCENARIO_COUNT, using default")
		scenarioCount = election.ScenarioCounts()[0]
	}

	return &AppConfig{
		PollDataPath:        getEnv("POLL_DATA_PATH", ""),
		ScenarioCount:       scenarioCount,
		Seed:                getEnvInt64("SIMULATION_SEED", 0),
		TotalSeats:          getEnvInt("TOTAL_SEATS", election.TotalSeats),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		DataPath:            dataPath,
		ExportDir:           exportDir,
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
