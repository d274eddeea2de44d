// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`

	// APIToken authenticates the conversation front-end. Empty disables
	// auth (local development only).
	APIToken string `env:"API_TOKEN"`

	Advice AdviceConfig
	Notify NotifyConfig

	// WeeklyGoal is the workouts-per-week target shown in weekly reports.
	WeeklyGoal int `env:"WEEKLY_GOAL" envDefault:"4"`
}

// AdviceConfig holds the chat-completions advice generator settings.
type AdviceConfig struct {
	APIKey  string        `env:"GROQ_API_KEY"`
	BaseURL string        `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	Model   string        `env:"GROQ_MODEL" envDefault:"llama-3.1-8b-instant"`
	Timeout time.Duration `env:"ADVICE_TIMEOUT" envDefault:"10s"`
}

// NotifyConfig holds the reminder delivery settings. With no webhook URL the
// worker logs reminders instead of delivering them.
type NotifyConfig struct {
	WebhookURL string `env:"NOTIFY_WEBHOOK_URL"`
	Token      string `env:"NOTIFY_TOKEN"`
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate ensures settings the servers cannot run without are present.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// HasAdvice reports whether the advice generator is configured.
func (c Config) HasAdvice() bool {
	return c.Advice.APIKey != ""
}
