package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// TrustProxyHeaders makes X-Forwarded-For / X-Real-IP decide the client
	// address. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool
	MaxBodyBytes      int64
}

// LLMConfig carries the credentials and model choice for each provider.
// Keys may be empty here; a provider without a key fails when it is called.
type LLMConfig struct {
	DefaultProvider string
	Groq            ProviderConfig
	OpenAI          ProviderConfig
}

type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
}

type LogConfig struct {
	Level  string
	Format string
}

const (
	DefaultGroqModel     = "llama-3.3-70b-versatile"
	DefaultGroqBaseURL   = "https://api.groq.com/openai/v1/"
	DefaultOpenAIModel   = "gpt-3.5-turbo"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1/"

	DefaultMaxBodyBytes = 4 << 20
)

// Load reads an optional .env file and then builds the configuration from
// the process environment. Variables already set in the environment take
// precedence over the .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8080"),
			ReadTimeout:       getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      getEnvAsDuration("WRITE_TIMEOUT", 120*time.Second),
			IdleTimeout:       getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout:   getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
			TrustProxyHeaders: getEnvAsBool("TRUST_PROXY_HEADERS", false),
			MaxBodyBytes:      int64(getEnvAsInt("MAX_BODY_BYTES", DefaultMaxBodyBytes)),
		},
		LLM: LLMConfig{
			DefaultProvider: strings.ToLower(getEnv("LLM_DEFAULT_PROVIDER", "groq")),
			Groq: ProviderConfig{
				APIKey:  getEnv("GROQ_API_KEY", ""),
				Model:   getEnv("GROQ_MODEL", DefaultGroqModel),
				BaseURL: getEnv("GROQ_BASE_URL", DefaultGroqBaseURL),
			},
			OpenAI: ProviderConfig{
				APIKey:  getEnv("OPENAI_API_KEY", ""),
				Model:   getEnv("OPENAI_MODEL", DefaultOpenAIModel),
				BaseURL: getEnv("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
			},
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_RPM", 60),
			BurstSize:         getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	switch cfg.LLM.DefaultProvider {
	case "groq", "openai":
	default:
		return nil, fmt.Errorf("LLM_DEFAULT_PROVIDER must be groq or openai, got %q", cfg.LLM.DefaultProvider)
	}

	if cfg.Server.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	if cfg.RateLimit.RequestsPerMinute <= 0 || cfg.RateLimit.BurstSize <= 0 {
		return nil, fmt.Errorf("rate limit settings must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
