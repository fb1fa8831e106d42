// path: config/config.go
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application-level settings. Mongo connection settings
// stay in the database package, which resolves their precedence on its own.
type Config struct {
	Port           string
	StorageBackend string // "local" or "mongo"
	SQLitePath     string
	AllowOrigins   string
}

// Load reads configuration from the environment, with a best-effort .env
// file on top. Missing .env is not an error; production sets variables
// directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "3005"),
		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		SQLitePath:     getEnv("SQLITE_PATH", "ocorrencias.db"),
		AllowOrigins:   getEnv("ALLOW_ORIGINS", "http://localhost:3000, http://localhost:3001"),
	}, nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
