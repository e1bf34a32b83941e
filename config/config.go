package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is shared by the dev API server and the CLI.
type Config struct {
	Port           string
	AllowedOrigins []string

	// Client side
	APIBaseURL       string
	APITimeout       time.Duration
	TelegramInitData string
	SuccessDelay     time.Duration

	// Telegram
	TelegramBotToken string
	InitDataMaxAge   time.Duration

	// Storage
	UserStore      string // memory | dynamodb
	AWSRegion      string
	UsersTable     string
	PhotoStore     string // memory | s3
	S3Bucket       string
	PublicMediaURL string

	MaxAttachmentBytes int64
	RateLimitRPS       float64
	RateLimitBurst     int
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	port := getEnv("PORT", "8080")
	return &Config{
		Port:           port,
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"*"}),

		APIBaseURL:       getEnv("API_BASE_URL", "http://localhost:"+port),
		APITimeout:       getEnvAsDuration("API_TIMEOUT", 10*time.Second),
		TelegramInitData: getEnv("TELEGRAM_INIT_DATA", ""),
		SuccessDelay:     getEnvAsDuration("SUCCESS_DELAY", 1500*time.Millisecond),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		InitDataMaxAge:   getEnvAsDuration("INIT_DATA_MAX_AGE", 24*time.Hour),

		UserStore:      getEnv("USER_STORE", "memory"),
		AWSRegion:      getEnv("AWS_REGION", ""),
		UsersTable:     getEnv("USERS_TABLE", "SpillUsers"),
		PhotoStore:     getEnv("PHOTO_STORE", "memory"),
		S3Bucket:       getEnv("S3_BUCKET_NAME", ""),
		PublicMediaURL: getEnv("PUBLIC_MEDIA_URL", ""),

		MaxAttachmentBytes: int64(getEnvAsInt("MAX_ATTACHMENT_MB", 5)) * 1024 * 1024,
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
