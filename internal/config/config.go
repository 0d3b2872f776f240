package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all engine configuration. Values come from environment
// variables with sensible defaults; call LoadDotEnv first if a .env file
// should participate.
type Config struct {
	// Directories
	InputDir   string // statements to ingest
	ExtractDir string // per-document extract CSVs
	DataDir    string // balance file, registry, enrichment cache

	// Output
	LedgerFile string

	// Enrichment
	GeminiModel       string
	RateLimitInterval time.Duration
	RulesFile         string // optional YAML category taxonomy

	// Surfaces
	Port     int
	LogLevel string
}

// Load reads configuration from the environment.
func Load() Config {
	return Config{
		InputDir:          getEnv("LEDGER_INPUT_DIR", "transactions"),
		ExtractDir:        getEnv("LEDGER_EXTRACT_DIR", "extracted_transactions"),
		DataDir:           getEnv("LEDGER_DATA_DIR", "."),
		LedgerFile:        getEnv("LEDGER_OUTPUT_FILE", "categorized_transactions.csv"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		RateLimitInterval: getDuration("CLASSIFIER_MIN_INTERVAL", 4*time.Second),
		RulesFile:         getEnv("LEDGER_RULES_FILE", ""),
		Port:              getInt("PORT", 8080),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
