package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SessionTTL is the lifetime of the auth-token cookie and the token in it.
const SessionTTL = 7 * 24 * time.Hour

const devJWTSecret = "foodmanager-dev-secret"

type Config struct {
	Env  string
	Port string

	// Database
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string

	// Auth
	AdminEmail      string
	AdminPassword   string
	AdminName       string
	JWTSecret       string
	APIAuthRequired bool

	LogLevel string

	// Image uploads; disabled when S3Bucket is empty
	S3Bucket       string
	S3Region       string
	PublicAssetURL string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "foodmanager"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),

		AdminEmail:      getEnv("ADMIN_EMAIL", "admin@foodmanager.com"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "admin123"),
		AdminName:       getEnv("ADMIN_NAME", "Admin User"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		APIAuthRequired: getBool("API_AUTH_REQUIRED", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       getEnv("S3_REGION", os.Getenv("AWS_REGION")),
		PublicAssetURL: strings.TrimRight(os.Getenv("PUBLIC_ASSET_URL"), "/"),
	}

	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = devJWTSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks settings that would otherwise fail at first use.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if c.AdminEmail == "" || c.AdminPassword == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must not be empty")
	}
	return nil
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from
// the DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	dsn := fmt.Sprintf("host=%s user=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBName, c.DBPort, c.DBSSLMode)
	if c.DBPassword != "" {
		dsn += " password=" + c.DBPassword
	}
	return dsn
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
