package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	RawDataDir       string
	ProcessedDataDir string
	RawAppsFile      string
	RawReviewsFile   string

	MaxReviews       int
	LogLevel         string
	SentimentLexicon string

	DBDriver   string
	SQLitePath string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxRetries int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		RawDataDir:       getEnv("RAW_DATA_DIR", "data/raw"),
		ProcessedDataDir: getEnv("PROCESSED_DATA_DIR", "data/processed"),
		RawAppsFile:      getEnv("RAW_APPS_FILE", "apps_metadata_raw.json"),
		RawReviewsFile:   getEnv("RAW_REVIEWS_FILE", "user_reviews_raw.jsonl"),

		MaxReviews:       getEnvInt("MAX_REVIEWS", 0),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SentimentLexicon: getEnv("SENTIMENT_LEXICON", ""),

		DBDriver:   getEnv("DB_DRIVER", ""),
		SQLitePath: getEnv("SQLITE_PATH", "data/mart.db"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "analytics"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "analytics123"),
		PostgresDB:       getEnv("POSTGRES_DB", "reviews_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxRetries: getEnvInt("MAX_RETRIES", 3),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// ResolveRaw turns a raw-source file name into a full path. Names carrying
// a directory component (or absolute paths) are used as-is; bare names are
// looked up inside RawDataDir.
func (c *Config) ResolveRaw(name string) string {
	if filepath.IsAbs(name) || strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	return filepath.Join(c.RawDataDir, name)
}

// Processed returns the path of a file inside ProcessedDataDir.
func (c *Config) Processed(name string) string {
	return filepath.Join(c.ProcessedDataDir, name)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
