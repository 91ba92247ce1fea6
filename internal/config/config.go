package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment  string     `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelName string     `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel     slog.Level `env:"-"`
	LogFile      string     `env:"LOG_FILE" envDefault:"tour-guide.log"`

	// Chat completion
	LLMAPIKey      string        `env:"LLM_API_KEY"`
	LLMBaseURL     string        `env:"LLM_BASE_URL" envDefault:"https://api.deepseek.com/v1"`
	LLMModel       string        `env:"LLM_MODEL" envDefault:"deepseek-chat"`
	LLMMaxTokens   int           `env:"LLM_MAX_TOKENS" envDefault:"150"`
	LLMTemperature float32       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	LLMTimeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`

	// Tour
	TourFile           string  `env:"TOUR_FILE"`
	TransitionDistance float64 `env:"TRANSITION_DISTANCE" envDefault:"8"`
	MaxQuestionWords   int     `env:"MAX_QUESTION_WORDS" envDefault:"90"`
	MaxOptionWords     int     `env:"MAX_OPTION_WORDS" envDefault:"10"`

	// Presentation
	TypingSpeed           time.Duration `env:"TYPING_SPEED" envDefault:"50ms"`
	TransitionDelay       time.Duration `env:"TRANSITION_DELAY" envDefault:"2s"`
	ScriptDelay           time.Duration `env:"SCRIPT_DELAY" envDefault:"2s"`
	FeedbackDuration      time.Duration `env:"FEEDBACK_DURATION" envDefault:"2s"`
	UseFixedFirstResponse bool          `env:"USE_FIXED_FIRST_RESPONSE" envDefault:"true"`
	NPCName               string        `env:"NPC_NAME"`

	// Transcript archive; empty RedisURL disables it
	RedisURL      string        `env:"REDIS_URL"`
	TranscriptTTL time.Duration `env:"TRANSCRIPT_TTL" envDefault:"168h"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that env tags cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.TransitionDistance <= 0 {
		errs = append(errs, errors.New("TRANSITION_DISTANCE must be positive"))
	}
	if c.MaxQuestionWords < 0 || c.MaxOptionWords < 0 {
		errs = append(errs, errors.New("word limits must not be negative"))
	}
	if c.LLMMaxTokens <= 0 {
		errs = append(errs, errors.New("LLM_MAX_TOKENS must be positive"))
	}
	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		errs = append(errs, errors.New("LLM_TEMPERATURE must be between 0 and 2"))
	}
	if c.LLMTimeout <= 0 {
		errs = append(errs, errors.New("LLM_TIMEOUT must be positive"))
	}
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"TYPING_SPEED", c.TypingSpeed},
		{"TRANSITION_DELAY", c.TransitionDelay},
		{"SCRIPT_DELAY", c.ScriptDelay},
		{"FEEDBACK_DURATION", c.FeedbackDuration},
		{"TRANSCRIPT_TTL", c.TranscriptTTL},
	}
	for _, d := range durations {
		if d.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", d.name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// IsProduction reports whether logs should be machine readable.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Offline reports whether no model API key is set; the console then uses
// canned replies.
func (c *Config) Offline() bool {
	return strings.TrimSpace(c.LLMAPIKey) == ""
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
