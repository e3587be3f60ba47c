package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

type PostgresConfig struct {
	Host     string
	Port     string
	DB       string
	Username string
	Password string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RepositoriesConfig struct {
	Postgres PostgresConfig
}

// JWTConfig holds the token signing parameters. TTL comes from
// JWT_TTL_MILLIS; zero or negative means tokens never expire.
type JWTConfig struct {
	SecretKey string
	Issuer    string
	TTL       time.Duration
}

// Argon2Config holds the password hashing cost parameters.
type Argon2Config struct {
	Iterations  uint32
	MemoryKB    uint32
	Parallelism uint8
}

type Config struct {
	Repositories RepositoriesConfig
	JWT          JWTConfig
	Argon2       Argon2Config
	ServerPort   string
}

func Load() (*Config, error) {
	argonIterations := getEnvInt64("ARGON2_ITERATIONS", 4)
	argonMemoryKB := getEnvInt64("ARGON2_MEMORY_KB", 65536)
	argonParallelism := getEnvInt64("ARGON2_PARALLELISM", 1)
	if argonIterations < 1 || argonIterations > math.MaxUint32 {
		return nil, fmt.Errorf("ARGON2_ITERATIONS out of range: %d", argonIterations)
	}
	if argonMemoryKB < 1 || argonMemoryKB > math.MaxUint32 {
		return nil, fmt.Errorf("ARGON2_MEMORY_KB out of range: %d", argonMemoryKB)
	}
	if argonParallelism < 1 || argonParallelism > math.MaxUint8 {
		return nil, fmt.Errorf("ARGON2_PARALLELISM out of range: %d", argonParallelism)
	}

	cfg := &Config{
		Repositories: RepositoriesConfig{
			Postgres: PostgresConfig{
				Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
				DB:       getEnvOrDefault("POSTGRES_DB", "api_rest"),
				Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
				Password: getEnvOrDefault("POSTGRES_PASSWORD", ""),
				SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
				MaxConns: 30,
				MinConns: 5,
			},
		},
		JWT: JWTConfig{
			SecretKey: os.Getenv("JWT_SECRET"),
			Issuer:    getEnvOrDefault("JWT_ISSUER", "api-rest"),
			TTL:       time.Duration(getEnvInt64("JWT_TTL_MILLIS", 3600000)) * time.Millisecond,
		},
		Argon2: Argon2Config{
			Iterations:  uint32(argonIterations),
			MemoryKB:    uint32(argonMemoryKB),
			Parallelism: uint8(argonParallelism),
		},
		ServerPort: getEnvOrDefault("SERVER_PORT", "8080"),
	}

	if cfg.Repositories.Postgres.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD environment variable is required")
	}
	if cfg.JWT.SecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
