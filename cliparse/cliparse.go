// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Blob backends
const (
	BlobLocal = "local"
	BlobGCS   = "gcs"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	AnswersFile       string
	AllowBlankAnswers bool
	HashAnswers       bool // print the digests-only answers file and exit
	UnlockSecret      string
	UploadKeyDigest   string
	UnlockRate        int // attempts per minute per client, 0 = unlimited

	BlobBackend    string
	BlobDir        string
	PublicBaseURL  string
	GCSBucket      string
	GCSCredentials string

	ValkeyURL string

	SlidesFile string

	LogLevel string
	LogDir   string

	AutoAdvance time.Duration
	ResumeDelay time.Duration
}

// ParseFlags reads flags, falling back to environment variables (and a .env
// file when present). Flags win over the environment.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	if err := loadDotenv(".env"); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("keepsake", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	fs.StringVar(&cfg.AnswersFile, "answers", "", "Answers YAML file")
	fs.BoolVar(&cfg.AllowBlankAnswers, "allow-blank", false, "Accept blank answers for questions without a reference")
	fs.BoolVar(&cfg.HashAnswers, "hash-answers", false, "Print the answers file with digests only and exit")
	fs.StringVar(&cfg.UnlockSecret, "unlock-secret", "", "Unlock token secret (prefer env)")
	fs.StringVar(&cfg.UploadKeyDigest, "upload-key-digest", "", "SHA-256 hex of the upload key (prefer env)")
	fs.IntVar(&cfg.UnlockRate, "unlock-rate", -1, "Unlock attempts per minute per client (0 = unlimited)")

	fs.StringVar(&cfg.BlobBackend, "blob", "", "Blob backend (local or gcs)")
	fs.StringVar(&cfg.BlobDir, "blob-dir", "", "Local blob directory")
	fs.StringVar(&cfg.PublicBaseURL, "public-url", "", "Public base URL for local blobs")
	fs.StringVar(&cfg.GCSBucket, "gcs-bucket", "", "Cloud Storage bucket")
	fs.StringVar(&cfg.GCSCredentials, "gcs-credentials", "", "Service account JSON file (empty = default credentials)")

	fs.StringVar(&cfg.ValkeyURL, "valkey", "", "Valkey URL (empty = in-memory)")
	fs.StringVar(&cfg.SlidesFile, "slides", "", "Static slides YAML file")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&cfg.LogDir, "log-dir", "", "Log directory (empty = stdout only)")

	fs.DurationVar(&cfg.AutoAdvance, "auto", 0, "Carousel auto-advance interval")
	fs.DurationVar(&cfg.ResumeDelay, "resume", 0, "Carousel resume delay after manual navigation")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Hashing only needs the answers file
	if cfg.HashAnswers {
		cfg.AnswersFile = fallback(cfg.AnswersFile, "ANSWERS_FILE", "")
		if cfg.AnswersFile == "" {
			return Config{}, errors.New("ANSWERS_FILE required")
		}
		if !cfg.AllowBlankAnswers {
			cfg.AllowBlankAnswers = envBool("ALLOW_BLANK_ANSWERS")
		}
		return cfg, nil
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318
		}
	}

	cfg.DatabaseURL = fallback(cfg.DatabaseURL, "DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	cfg.DatabaseType = fallback(cfg.DatabaseType, "DATABASE_TYPE", "sqlite")
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	cfg.AnswersFile = fallback(cfg.AnswersFile, "ANSWERS_FILE", "")
	if cfg.AnswersFile == "" {
		return Config{}, errors.New("ANSWERS_FILE required")
	}
	if !cfg.AllowBlankAnswers {
		cfg.AllowBlankAnswers = envBool("ALLOW_BLANK_ANSWERS")
	}

	// Secrets - MUST be provided
	cfg.UnlockSecret = fallback(cfg.UnlockSecret, "UNLOCK_SECRET", "")
	if cfg.UnlockSecret == "" {
		return Config{}, errors.New("UNLOCK_SECRET required")
	}
	cfg.UploadKeyDigest = strings.ToLower(fallback(cfg.UploadKeyDigest, "UPLOAD_KEY_DIGEST", ""))
	if cfg.UploadKeyDigest == "" {
		return Config{}, errors.New("UPLOAD_KEY_DIGEST required")
	}

	if cfg.UnlockRate < 0 {
		rate, err := envInt("UNLOCK_RATE", 0)
		if err != nil {
			return Config{}, err
		}
		cfg.UnlockRate = rate
	}

	cfg.BlobBackend = fallback(cfg.BlobBackend, "BLOB_BACKEND", BlobLocal)
	cfg.BlobDir = fallback(cfg.BlobDir, "BLOB_DIR", "./uploads")
	cfg.PublicBaseURL = fallback(cfg.PublicBaseURL, "PUBLIC_BASE_URL",
		fmt.Sprintf("http://localhost:%d/uploads", cfg.Port))
	cfg.GCSBucket = fallback(cfg.GCSBucket, "GCS_BUCKET", "")
	cfg.GCSCredentials = fallback(cfg.GCSCredentials, "GCS_CREDENTIALS_FILE", "")
	switch cfg.BlobBackend {
	case BlobLocal:
	case BlobGCS:
		if cfg.GCSBucket == "" {
			return Config{}, errors.New("GCS_BUCKET required for gcs blob backend")
		}
	default:
		return Config{}, fmt.Errorf("unsupported blob backend %q", cfg.BlobBackend)
	}

	cfg.ValkeyURL = fallback(cfg.ValkeyURL, "VALKEY_URL", "")
	cfg.SlidesFile = fallback(cfg.SlidesFile, "SLIDES_FILE", "")
	cfg.LogLevel = fallback(cfg.LogLevel, "LOG_LEVEL", "info")
	cfg.LogDir = fallback(cfg.LogDir, "LOG_DIR", "")

	var err error
	if cfg.AutoAdvance, err = durationFallback(cfg.AutoAdvance, "CAROUSEL_INTERVAL", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ResumeDelay, err = durationFallback(cfg.ResumeDelay, "CAROUSEL_RESUME", 6*time.Second); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadDotenv loads path into the environment if it exists. Variables already
// set are left alone.
func loadDotenv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat dotenv file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load dotenv file %s: %w", path, err)
	}
	return nil
}

func fallback(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

func envBool(env string) bool {
	v, err := strconv.ParseBool(os.Getenv(env))
	return err == nil && v
}

func envInt(env string, def int) (int, error) {
	s := os.Getenv(env)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s env variable", env)
	}
	return n, nil
}

func durationFallback(value time.Duration, env string, def time.Duration) (time.Duration, error) {
	if value > 0 {
		return value, nil
	}
	s := os.Getenv(env)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", env)
	}
	return d, nil
}
