package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Debug("No .env file found, reading from environment variables")
	}

	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	debug, err := strconv.ParseBool(getEnv("TAROT_DEBUG", "false"))
	if err != nil {
		log.Warn("Ignoring invalid TAROT_DEBUG", "value", os.Getenv("TAROT_DEBUG"))
	}

	cfg := Config{
		DataDir:     getEnv("TAROT_DATA_DIR", "./data"),
		Backend:     Backend(getEnv("TAROT_BACKEND", string(BackendFile))),
		DBName:      getEnv("TAROT_DB_NAME", "tarot.db"),
		Constantes:  getEnv("TAROT_CONSTANTES", ""),
		MetricsFile: getEnv("TAROT_METRICS_FILE", ""),
		Port:        getEnv("TAROT_PORT", "8080"),
		Debug:       debug,
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
	}
	return cfg
}

// Validate checks the backend choice and its required settings.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
		return nil
	case BackendTurso:
		if c.Turso.PrimaryURL == "" {
			return fmt.Errorf("backend %s requires TURSO_PRIMARY_URL", c.Backend)
		}
		return nil
	default:
		return fmt.Errorf("unknown backend %q (want file, sqlite or turso)", c.Backend)
	}
}

// DBPath is the local sqlite file inside the data directory.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBName)
}
