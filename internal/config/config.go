package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	Clova       ClovaConfig
	Telegram    TelegramConfig
}

// ClovaConfig holds everything needed to call the CLOVA OCR general endpoint.
type ClovaConfig struct {
	APIURL          string
	SecretKey       string
	Version         string
	ImageFormat     string
	ImageName       string
	RequestIDPrefix string
	Timeout         time.Duration // zero keeps the transport default
}

type TelegramConfig struct {
	BotToken string
}

func Load() (*Config, error) {
	timeoutSeconds, err := getEnvInt("CLOVA_OCR_TIMEOUT_SECONDS", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid CLOVA_OCR_TIMEOUT_SECONDS: %w", err)
	}
	if timeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid CLOVA_OCR_TIMEOUT_SECONDS: must not be negative")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Clova: ClovaConfig{
			APIURL:          getEnv("CLOVA_OCR_API_URL", ""),
			SecretKey:       getEnv("CLOVA_OCR_SECRET_KEY", ""),
			Version:         getEnv("CLOVA_OCR_VERSION", "V2"),
			ImageFormat:     getEnv("CLOVA_OCR_IMAGE_FORMAT", "jpg"),
			ImageName:       getEnv("CLOVA_OCR_IMAGE_NAME", "chart-test"),
			RequestIDPrefix: getEnv("CLOVA_OCR_REQUEST_ID_PREFIX", "dbdr"),
			Timeout:         time.Duration(timeoutSeconds) * time.Second,
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		},
	}, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Clova.APIURL == "" {
		missing = append(missing, "CLOVA_OCR_API_URL")
	}
	if c.Clova.SecretKey == "" {
		missing = append(missing, "CLOVA_OCR_SECRET_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
