// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"betledger/pkg/db" // Import db package for its Config struct
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	Env           string // APP_ENV: "development" or "production"
	ServerPort    string
	MetricsPort   string
	DB            db.Config
	MigrationsDir string
	JWTSecret     string
	RedisAddr     string // empty disables the odds cache
	KafkaBrokers  string // empty disables event publishing
}

// LoadConfig loads configuration from the environment, after applying a .env
// file if one is present. It returns an AppConfig instance or an error if any
// required variable is missing or invalid.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}
	metricsPort := os.Getenv("METRICS_PORT")
	if metricsPort == "" {
		metricsPort = "9090" // Default metrics port
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost" // Default to localhost for local development
	}
	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		dbPortStr = "5432" // Default PostgreSQL port
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "user" // Default user for local development
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		dbPassword = "password" // Default password for local development
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "betledgerdb" // Default database name for local development
	}
	dbSSLMode := os.Getenv("DB_SSLMODE")
	if dbSSLMode == "" {
		dbSSLMode = "disable" // Default to disable for local development
	}

	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		// A guessable signing key outside local development means anyone can
		// mint admin tokens, so refuse to start rather than fall back.
		if env != "development" {
			return nil, fmt.Errorf("JWT_SECRET must be set when APP_ENV is %q", env)
		}
		jwtSecret = "dev-secret"
	}

	return &AppConfig{
		Env:         env,
		ServerPort:  serverPort,
		MetricsPort: metricsPort,
		DB: db.Config{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			SSLMode:  dbSSLMode,
		},
		MigrationsDir: migrationsDir,
		JWTSecret:     jwtSecret,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		KafkaBrokers:  os.Getenv("KAFKA_BROKERS"),
	}, nil
}
