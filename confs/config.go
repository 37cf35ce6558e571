package confs

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    int
	Env     string
	DB      DBConfig
	JWT     JWTConfig
	Redis   RedisConfig
	NatsURL string

	AuthRateLimit float64
	AuthRateBurst int
	CORSOrigins   []string
}

type DBConfig struct {
	Driver   string // postgres, mysql or sqlite
	URL      string
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

// LoadConfig loads environment variables from a .env file if present
// and builds the server configuration from the environment.
func LoadConfig() (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	cfg := &Config{
		Port: GetEnvAsInt("APP_PORT", 3536),
		Env:  GetEnvAsString("APP_ENV", "production"),
		DB: DBConfig{
			Driver:   strings.ToLower(GetEnvAsString("DB_DRIVER", "postgres")),
			URL:      os.Getenv("DB_URL"),
			DSN:      os.Getenv("DB_DSN"),
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			TTL:    GetEnvAsDuration("JWT_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			CacheTTL: GetEnvAsDuration("CACHE_TTL", 10*time.Minute),
		},
		NatsURL:       os.Getenv("NATS_URL"),
		AuthRateLimit: GetEnvAsFloat("AUTH_RATE_LIMIT", 5),
		AuthRateBurst: GetEnvAsInt("AUTH_RATE_BURST", 10),
		CORSOrigins:   GetEnvAsList("CORS_ORIGINS"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return errors.New("DB_DRIVER must be one of postgres, mysql, sqlite")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// GetEnvAsInt gets environment variable as int with default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// GetEnvAsDuration gets environment variable as duration with default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetEnvAsString gets environment variable as string with default value
func GetEnvAsString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsList splits a comma separated variable, dropping blanks.
func GetEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
