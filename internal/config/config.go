package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string
	LogLevel string

	EmbedderURL string
	EmbedModel  string

	SegmenterURL string

	StoragePath   string
	MaxUploadSize int64
	UploadMaxAge  time.Duration

	SimilarityThreshold float64
	ContextWindow       int
	MaxSentenceLength   int

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from the environment, then applies the
// optional YAML overlay named by CONFIG_FILE on top. Values from the
// file win over environment defaults.
func Load() (Config, error) {
	cfg := Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		EmbedderURL: mustEnv("EMBEDDER_URL", "http://localhost:11434"),
		EmbedModel:  mustEnv("EMBED_MODEL", "nomic-embed-text"),

		SegmenterURL: mustEnv("SEGMENTER_URL", "http://localhost:8001"),

		StoragePath:   mustEnv("STORAGE_PATH", "./data/uploads"),
		MaxUploadSize: int64(mustEnvInt("MAX_UPLOAD_SIZE", 10*1024*1024)),
		UploadMaxAge:  time.Duration(mustEnvInt("UPLOAD_MAX_AGE_HOURS", 1)) * time.Hour,

		SimilarityThreshold: mustEnvFloat("SIMILARITY_THRESHOLD", 0.85),
		ContextWindow:       mustEnvInt("CONTEXT_WINDOW", 2),
		MaxSentenceLength:   mustEnvInt("MAX_SENTENCE_LENGTH", 500),

		RateLimitRPS:   mustEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: mustEnvInt("RATE_LIMIT_BURST", 20),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// fileConfig uses pointers so that absent keys leave the environment
// value untouched.
type fileConfig struct {
	APIPort             *string  `yaml:"api_port"`
	LogLevel            *string  `yaml:"log_level"`
	EmbedderURL         *string  `yaml:"embedder_url"`
	EmbedModel          *string  `yaml:"embed_model"`
	SegmenterURL        *string  `yaml:"segmenter_url"`
	StoragePath         *string  `yaml:"storage_path"`
	MaxUploadSize       *int64   `yaml:"max_upload_size"`
	UploadMaxAgeHours   *int     `yaml:"upload_max_age_hours"`
	SimilarityThreshold *float64 `yaml:"similarity_threshold"`
	ContextWindow       *int     `yaml:"context_window"`
	MaxSentenceLength   *int     `yaml:"max_sentence_length"`
	RateLimitRPS        *float64 `yaml:"rate_limit_rps"`
	RateLimitBurst      *int     `yaml:"rate_limit_burst"`
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if file.APIPort != nil {
		c.APIPort = *file.APIPort
	}
	if file.LogLevel != nil {
		c.LogLevel = *file.LogLevel
	}
	if file.EmbedderURL != nil {
		c.EmbedderURL = *file.EmbedderURL
	}
	if file.EmbedModel != nil {
		c.EmbedModel = *file.EmbedModel
	}
	if file.SegmenterURL != nil {
		c.SegmenterURL = *file.SegmenterURL
	}
	if file.StoragePath != nil {
		c.StoragePath = *file.StoragePath
	}
	if file.MaxUploadSize != nil {
		c.MaxUploadSize = *file.MaxUploadSize
	}
	if file.UploadMaxAgeHours != nil {
		c.UploadMaxAge = time.Duration(*file.UploadMaxAgeHours) * time.Hour
	}
	if file.SimilarityThreshold != nil {
		c.SimilarityThreshold = *file.SimilarityThreshold
	}
	if file.ContextWindow != nil {
		c.ContextWindow = *file.ContextWindow
	}
	if file.MaxSentenceLength != nil {
		c.MaxSentenceLength = *file.MaxSentenceLength
	}
	if file.RateLimitRPS != nil {
		c.RateLimitRPS = *file.RateLimitRPS
	}
	if file.RateLimitBurst != nil {
		c.RateLimitBurst = *file.RateLimitBurst
	}
	return nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
