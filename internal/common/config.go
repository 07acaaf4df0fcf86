package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Extract  ExtractConfig
	LLM      LLMConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN              string
	SQLitePath       string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr        string
	UploadDir       string
	TemplatePath    string
	MaxUploadBytes  int64
	MaxConcurrent   int64
	RatePerSecond   float64
	RateBurst       int
	ShutdownTimeout time.Duration
}

// ExtractConfig holds document-tooling configuration
type ExtractConfig struct {
	Pdftotext string
	Pdftoppm  string
	Mutool    string
	DPI       int
}

// LLMConfig holds model-provider configuration
type LLMConfig struct {
	MistralAPIKey  string
	MistralBaseURL string
	MistralModel   string
	MistralTimeout time.Duration
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	OpenAITimeout  time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", ""),
			SQLitePath:       getEnv("SQLITE_PATH", "./contracts.db"),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
			TemplatePath:    getEnv("TEMPLATE_PATH", "./modelo_contrato.docx"),
			MaxUploadBytes:  getEnvAsInt64("MAX_UPLOAD_BYTES", 32<<20),
			MaxConcurrent:   getEnvAsInt64("MAX_CONCURRENT_EXTRACTIONS", 2),
			RatePerSecond:   getEnvAsFloat64("RATE_PER_SECOND", 5),
			RateBurst:       getEnvAsInt("RATE_BURST", 10),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Extract: ExtractConfig{
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:  getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Mutool:    getEnv("MUTOOL_BIN", "mutool"),
			DPI:       getEnvAsInt("RASTER_DPI", 100),
		},
		LLM: LLMConfig{
			MistralAPIKey:  getEnv("MISTRAL_API_KEY", ""),
			MistralBaseURL: getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),
			MistralModel:   getEnv("MISTRAL_MODEL", "mistral-small-latest"),
			MistralTimeout: getEnvAsDuration("MISTRAL_TIMEOUT", 60*time.Second),
			OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o"),
			OpenAITimeout:  getEnvAsDuration("OPENAI_TIMEOUT", 90*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the fields a running server cannot do without. Missing API
// keys are not fatal: extraction degrades to empty results and the operator
// is warned at runtime.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Server.UploadDir == "" {
		return NewAppError("CONFIG_ERROR", "UPLOAD_DIR is required", ErrInvalidInput)
	}
	return nil
}
