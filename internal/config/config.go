package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	WebhookSecret string `env:"WEBHOOK_SECRET,required" validate:"required"`
	GithubToken   string `env:"GITHUB_TOKEN,required" validate:"required"`
	GithubAPIURL  string `env:"GITHUB_API_URL" validate:"omitempty,url"`
	ListenAddr    string `env:"LISTEN_ADDR" envDefault:":3000"`

	VerdictThreshold int `env:"VERDICT_THRESHOLD" envDefault:"30" validate:"gte=0,lte=100"`
	// RepositoryRules extends the scanner with .github/phiguard-rules.json
	// from each pull request's base branch.
	RepositoryRules bool `env:"REPOSITORY_RULES" envDefault:"true"`

	ReviewerURL     string        `env:"REVIEWER_URL" validate:"omitempty,url"`
	ReviewerAPIKey  string        `env:"REVIEWER_API_KEY"`
	ReviewerModel   string        `env:"REVIEWER_MODEL" envDefault:"gpt-4o"`
	ReviewerTimeout time.Duration `env:"REVIEWER_TIMEOUT" envDefault:"20s" validate:"gt=0"`

	StaticAnalysisPath   string `env:"STATIC_ANALYSIS_PATH"`
	StaticAnalysisConfig string `env:"STATIC_ANALYSIS_CONFIG" envDefault:"semgrep/phi_rules.yml"`

	Storage

	RunTimeout          time.Duration `env:"RUN_TIMEOUT" envDefault:"2m" validate:"gt=0"`
	DrainTimeout        time.Duration `env:"DRAIN_TIMEOUT" envDefault:"30s" validate:"gte=0"`
	MaxConcurrentAudits int64         `env:"MAX_CONCURRENT_AUDITS" envDefault:"8" validate:"gte=1"`

	RateLimit float64 `env:"RATE_LIMIT" envDefault:"0" validate:"gte=0"`
	RateBurst int     `env:"RATE_BURST" envDefault:"10" validate:"gte=1"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFile  string `env:"LOG_FILE"`

	SQSQueueURL string `env:"SQS_QUEUE_URL"`
}

// Storage is the subset needed by offline commands that only read the
// ledger and the record store.
type Storage struct {
	DatabaseURL      string `env:"DATABASE_URL"`
	LedgerPath       string `env:"LEDGER_PATH"`
	LedgerMaxRetries int    `env:"LEDGER_MAX_RETRIES" envDefault:"3" validate:"gte=1,lte=20"`
}

const prefix = "PHIGUARD_"

// Load reads the configuration from PHIGUARD_-prefixed environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: prefix})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadStorage() (*Storage, error) {
	st, err := env.ParseAsWithOptions[Storage](env.Options{Prefix: prefix})
	if err != nil {
		return nil, err
	}
	if err := validator.New().Struct(st); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &st, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ReviewerEnabled reports whether a contextual reviewer is configured. A
// URL alone is enough for keyless OpenAI-compatible endpoints.
func (c *Config) ReviewerEnabled() bool {
	return c.ReviewerAPIKey != "" || c.ReviewerURL != ""
}

func (c *Config) StaticAnalysisEnabled() bool {
	return c.StaticAnalysisPath != ""
}
