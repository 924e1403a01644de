package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"produce-mcp/internal/roles"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// DataPath is the directory holding items.json and deals.json. Empty
	// means the embedded sample catalog is served.
	DataPath            string
	LogDir              string
	OutputDir           string
	Role                roles.Role
	EnableMermaidCharts bool
	OpenBrowser         bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exeDir := ""
	if exePath, err := os.Executable(); err == nil {
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

	return FromEnv(exeDir)
}

// FromEnv builds the configuration from the process environment alone.
func FromEnv(exeDir string) (*AppConfig, error) {
	role, err := roles.Parse(getEnv("PRODUCE_ROLE", string(roles.Customer)))
	if err != nil {
		return nil, fmt.Errorf("PRODUCE_ROLE: %w", err)
	}

	base := exeDir
	if base == "" {
		base = "."
	}

	dataPath := getEnv("DATA_PATH", "")
	dataBase := dataPath
	if dataBase == "" {
		dataBase = base
	}

	cfg := &AppConfig{
		DataPath:            dataPath,
		LogDir:              getEnv("LOGS_FOLDER", filepath.Join(base, "logs")),
		OutputDir:           getEnv("CALENDAR_OUTPUT_DIR", filepath.Join(dataBase, "out")),
		Role:                role,
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", true),
		OpenBrowser:         getEnvBool("OPEN_BROWSER", false),
	}

	if cfg.DataPath != "" {
		if info, err := os.Stat(cfg.DataPath); err != nil || !info.IsDir() {
			return nil, fmt.Errorf("DATA_PATH %q is not a directory", cfg.DataPath)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring malformed boolean")
	}
	return fallback
}
