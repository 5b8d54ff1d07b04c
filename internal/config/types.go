package config

// Backend selects where documents are stored.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendTurso  Backend = "turso"
)

// Config holds all configuration for the application.
type Config struct {
	DataDir     string
	Backend     Backend
	DBName      string
	Constantes  string
	MetricsFile string
	Port        string
	Debug       bool
	Turso       TursoConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
