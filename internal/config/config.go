// Package config loads server and CLI settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/socratai/socratai/internal/blob"
	"github.com/socratai/socratai/internal/llm"
	"github.com/socratai/socratai/internal/store"
)

// ProviderRules selects the offline template question generator instead
// of an LLM.
const ProviderRules = "rules"

const devJWTSecret = "socratai-dev-secret"

type Config struct {
	Env  string
	Addr string

	// DBPath is the SQLite file; DatabaseURL, when set, selects Postgres.
	DBPath      string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string

	UploadDir string
	S3        blob.S3Config

	OCR string

	AMQPURL      string
	AMQPExchange string

	QuestionsPerQuiz int

	LLM llm.Config
}

func DefaultConfig() Config {
	return Config{
		Env:              "dev",
		Addr:             ":8000",
		JWTSecret:        devJWTSecret,
		JWTTTL:           24 * time.Hour,
		CORSOrigins:      []string{"http://localhost:3000", "http://localhost:5173"},
		UploadDir:        "uploads",
		OCR:              "vision",
		AMQPExchange:     "socratai.events",
		QuestionsPerQuiz: 18,
		LLM:              llm.DefaultConfig(),
	}
}

// Load reads a .env file from the working directory when present and then
// the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from SOCRATAI_* variables over the defaults.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.LLM = llm.ConfigFromEnv()

	setString(&cfg.Env, "SOCRATAI_ENV")
	setString(&cfg.Addr, "SOCRATAI_ADDR")
	setString(&cfg.DBPath, "SOCRATAI_DB")
	setString(&cfg.DatabaseURL, "SOCRATAI_DATABASE_URL")
	setString(&cfg.JWTSecret, "SOCRATAI_JWT_SECRET")
	setString(&cfg.UploadDir, "SOCRATAI_UPLOAD_DIR")
	setString(&cfg.S3.Bucket, "SOCRATAI_S3_BUCKET")
	setString(&cfg.S3.Endpoint, "SOCRATAI_S3_ENDPOINT")
	setString(&cfg.S3.Region, "SOCRATAI_S3_REGION")
	setString(&cfg.S3.AccessKeyID, "SOCRATAI_S3_ACCESS_KEY_ID")
	setString(&cfg.S3.SecretAccessKey, "SOCRATAI_S3_SECRET_ACCESS_KEY")
	setString(&cfg.OCR, "SOCRATAI_OCR")
	setString(&cfg.AMQPURL, "SOCRATAI_AMQP_URL")
	setString(&cfg.AMQPExchange, "SOCRATAI_AMQP_EXCHANGE")

	if v := os.Getenv("SOCRATAI_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("SOCRATAI_JWT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("SOCRATAI_JWT_TTL: %w", err)
		}
		cfg.JWTTTL = d
	}
	if v := os.Getenv("SOCRATAI_QUESTIONS_PER_QUIZ"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("SOCRATAI_QUESTIONS_PER_QUIZ: %w", err)
		}
		cfg.QuestionsPerQuiz = n
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if c.IsProd() && (c.JWTSecret == "" || c.JWTSecret == devJWTSecret) {
		return errors.New("SOCRATAI_JWT_SECRET must be set in prod")
	}
	if c.JWTSecret == "" {
		return errors.New("SOCRATAI_JWT_SECRET is empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("SOCRATAI_JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.QuestionsPerQuiz <= 0 {
		return fmt.Errorf("SOCRATAI_QUESTIONS_PER_QUIZ must be positive, got %d", c.QuestionsPerQuiz)
	}
	switch c.OCR {
	case "vision", "text":
	default:
		return fmt.Errorf("SOCRATAI_OCR must be vision or text, got %q", c.OCR)
	}
	if c.UsesRules() {
		return nil
	}
	return c.LLM.Validate()
}

func (c Config) IsProd() bool {
	return c.Env == "prod" || c.Env == "production"
}

// UsesRules reports whether questions come from the template generator.
func (c Config) UsesRules() bool {
	return c.LLM.Provider == ProviderRules
}

// DSN returns the database to open: DatabaseURL when set, otherwise the
// SQLite path, falling back to the per-user data directory.
func (c Config) DSN() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	if c.DBPath != "" {
		return c.DBPath, store.EnsureDir(c.DBPath)
	}
	return store.DefaultDBPath()
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
