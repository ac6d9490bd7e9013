package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/gustavosampaioo/statusrotas/internal/core"
)

// Config carries every deployment knob. All values come from the
// environment (optionally via .env) with workable defaults.
type Config struct {
	HTTPAddr string

	// Mode picks the route schema shape for this deployment.
	Mode core.SchemaMode

	// Database settings. Driver is "postgres" or "sqlite"; SQLitePath
	// is only read for the sqlite driver.
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string
	SQLitePath string

	// Bootstrap admin account seeded on first run. This account can
	// never be deactivated.
	BootstrapAdminUser     string
	BootstrapAdminPassword string
}

// Load reads the environment (and .env if present) into a Config.
func Load() Config {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	mode, err := core.ParseSchemaMode(getEnv("SCHEMA_MODE", string(core.ModeDual)))
	if err != nil {
		log.Fatalf("bad SCHEMA_MODE: %v", err)
	}

	return Config{
		HTTPAddr: getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		Mode:     mode,

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "statusrotas"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimezone: getEnv("DB_TIMEZONE", "UTC"),
		SQLitePath: getEnv("SQLITE_PATH", "./statusrotas.db"),

		BootstrapAdminUser:     getEnv("BOOTSTRAP_ADMIN_USER", "admin"),
		BootstrapAdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", "admin123"),
	}
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
