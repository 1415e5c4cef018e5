package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is centralized process configuration.
// Values come from an optional YAML file (PRESSROOM_CONFIG) and env vars override it.
type Config struct {
	ServiceName  string   `yaml:"service_name"`
	HTTPPort     string   `yaml:"http_port"`
	DBDriver     string   `yaml:"db_driver"`
	DatabaseDSN  string   `yaml:"database_dsn"`
	AutoMigrate  bool     `yaml:"auto_migrate"`
	KafkaBrokers []string `yaml:"kafka_brokers"`

	Moderation Moderation `yaml:"moderation"`
	Monitoring Monitoring `yaml:"monitoring"`
	Alerts     Alerts     `yaml:"alerts"`
	Workers    Workers    `yaml:"workers"`

	HistoryRetentionDays int `yaml:"history_retention_days"`
}

type Moderation struct {
	RiskThresholdHigh float64       `yaml:"risk_threshold_high"`
	RiskThresholdLow  float64       `yaml:"risk_threshold_low"`
	SimilarityMax     float64       `yaml:"similarity_max"`
	EngagementMin     float64       `yaml:"engagement_min"`
	PriorityKeywords  []string      `yaml:"priority_keywords"`
	AnalyzerURL       string        `yaml:"analyzer_url"`
	AnalyzerAPIKey    string        `yaml:"analyzer_api_key"`
	AnalyzerTimeout   time.Duration `yaml:"analyzer_timeout"`
}

type Monitoring struct {
	RetryAttempts       int           `yaml:"retry_attempts"`
	RetryInitialBackoff time.Duration `yaml:"retry_initial_backoff"`
	RetryMaxBackoff     time.Duration `yaml:"retry_max_backoff"`
	CheckerTimeout      time.Duration `yaml:"checker_timeout"`
	PauseAfterFailures  int           `yaml:"pause_after_failures"`
	DefaultFrequency    string        `yaml:"default_frequency"`
	CheckerSearchPath   string        `yaml:"checker_search_path"`
}

type Alerts struct {
	QueueBacklogThreshold int    `yaml:"queue_backlog_threshold"`
	WebhookURL            string `yaml:"webhook_url"`
}

type Workers struct {
	Concurrency        int           `yaml:"concurrency"`
	PollInterval       time.Duration `yaml:"poll_interval"`
	EnableCheckCycles  bool          `yaml:"enable_check_cycles"`
	EnableScheduledPub bool          `yaml:"enable_scheduled_publish"`
	EnableRetention    bool          `yaml:"enable_retention"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		ServiceName:  "pressroom",
		HTTPPort:     "8080",
		DBDriver:     "postgres",
		KafkaBrokers: []string{"localhost:9092"},
		Moderation: Moderation{
			RiskThresholdHigh: 70,
			RiskThresholdLow:  30,
			SimilarityMax:     50,
			EngagementMin:     40,
			PriorityKeywords:  []string{"urgente", "importante", "lançamento", "exclusivo"},
			AnalyzerTimeout:   5 * time.Second,
		},
		Monitoring: Monitoring{
			RetryAttempts:       3,
			RetryInitialBackoff: 500 * time.Millisecond,
			RetryMaxBackoff:     10 * time.Second,
			CheckerTimeout:      20 * time.Second,
			DefaultFrequency:    "daily",
			CheckerSearchPath:   "/?s=",
		},
		Alerts: Alerts{
			QueueBacklogThreshold: 20,
		},
		Workers: Workers{
			Concurrency:        4,
			PollInterval:       time.Minute,
			EnableCheckCycles:  true,
			EnableScheduledPub: true,
			EnableRetention:    true,
		},
		HistoryRetentionDays: 365,
	}
}

func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("PRESSROOM_CONFIG")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse yaml: %w", err)
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.ServiceName = envString("SERVICE_NAME", cfg.ServiceName)
	cfg.HTTPPort = envString("HTTP_PORT", cfg.HTTPPort)
	cfg.DBDriver = envString("DB_DRIVER", cfg.DBDriver)
	cfg.DatabaseDSN = envString("DATABASE_DSN", envString("POSTGRES_DSN", cfg.DatabaseDSN))
	cfg.AutoMigrate = envBool("DB_AUTO_MIGRATE", cfg.AutoMigrate)

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) > 0 {
		cfg.KafkaBrokers = brokers
	}

	cfg.Moderation.RiskThresholdHigh = envFloat("RISK_THRESHOLD_HIGH", cfg.Moderation.RiskThresholdHigh)
	cfg.Moderation.RiskThresholdLow = envFloat("RISK_THRESHOLD_LOW", cfg.Moderation.RiskThresholdLow)
	cfg.Moderation.SimilarityMax = envFloat("SIMILARITY_MAX", cfg.Moderation.SimilarityMax)
	cfg.Moderation.EngagementMin = envFloat("ENGAGEMENT_MIN", cfg.Moderation.EngagementMin)
	cfg.Moderation.AnalyzerURL = envString("ANALYZER_URL", cfg.Moderation.AnalyzerURL)
	cfg.Moderation.AnalyzerAPIKey = envString("ANALYZER_API_KEY", cfg.Moderation.AnalyzerAPIKey)
	cfg.Moderation.AnalyzerTimeout = envDuration("ANALYZER_TIMEOUT", cfg.Moderation.AnalyzerTimeout)
	if raw := strings.TrimSpace(os.Getenv("PRIORITY_KEYWORDS")); raw != "" {
		var keywords []string
		for _, value := range strings.Split(raw, ",") {
			if value = strings.TrimSpace(value); value != "" {
				keywords = append(keywords, value)
			}
		}
		cfg.Moderation.PriorityKeywords = keywords
	}

	cfg.Monitoring.RetryAttempts = envInt("RETRY_ATTEMPTS", cfg.Monitoring.RetryAttempts)
	cfg.Monitoring.RetryInitialBackoff = envDuration("RETRY_INITIAL_BACKOFF", cfg.Monitoring.RetryInitialBackoff)
	cfg.Monitoring.RetryMaxBackoff = envDuration("RETRY_MAX_BACKOFF", cfg.Monitoring.RetryMaxBackoff)
	cfg.Monitoring.CheckerTimeout = envDuration("CHECKER_TIMEOUT", cfg.Monitoring.CheckerTimeout)
	cfg.Monitoring.PauseAfterFailures = envInt("PAUSE_AFTER_FAILURES", cfg.Monitoring.PauseAfterFailures)
	cfg.Monitoring.DefaultFrequency = envString("DEFAULT_FREQUENCY", cfg.Monitoring.DefaultFrequency)
	cfg.Monitoring.CheckerSearchPath = envString("CHECKER_SEARCH_PATH", cfg.Monitoring.CheckerSearchPath)

	cfg.Alerts.QueueBacklogThreshold = envInt("QUEUE_BACKLOG_THRESHOLD", cfg.Alerts.QueueBacklogThreshold)
	cfg.Alerts.WebhookURL = envString("ALERT_WEBHOOK_URL", cfg.Alerts.WebhookURL)

	cfg.Workers.Concurrency = envInt("WORKER_CONCURRENCY", cfg.Workers.Concurrency)
	cfg.Workers.PollInterval = envDuration("WORKER_POLL_INTERVAL", cfg.Workers.PollInterval)
	cfg.Workers.EnableCheckCycles = envBool("ENABLE_CHECK_CYCLES", cfg.Workers.EnableCheckCycles)
	cfg.Workers.EnableScheduledPub = envBool("ENABLE_SCHEDULED_PUBLISH", cfg.Workers.EnableScheduledPub)
	cfg.Workers.EnableRetention = envBool("ENABLE_RETENTION", cfg.Workers.EnableRetention)

	cfg.HistoryRetentionDays = envInt("HISTORY_RETENTION_DAYS", cfg.HistoryRetentionDays)
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.Moderation.RiskThresholdLow > c.Moderation.RiskThresholdHigh {
		return fmt.Errorf("risk_threshold_low (%v) must not exceed risk_threshold_high (%v)",
			c.Moderation.RiskThresholdLow, c.Moderation.RiskThresholdHigh)
	}
	if c.Monitoring.RetryAttempts < 0 {
		return fmt.Errorf("retry_attempts must be >= 0, got %d", c.Monitoring.RetryAttempts)
	}
	switch c.Monitoring.DefaultFrequency {
	case "daily", "weekly":
	default:
		return fmt.Errorf("default_frequency must be daily or weekly, got %q", c.Monitoring.DefaultFrequency)
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("db_driver must be postgres or sqlite, got %q", c.DBDriver)
	}
	return nil
}

// PauseThreshold is the number of consecutive failed cycles that pauses a monitoring.
func (m Monitoring) PauseThreshold() int {
	if m.PauseAfterFailures > 0 {
		return m.PauseAfterFailures
	}
	return m.RetryAttempts + 1
}

func (c Config) HistoryRetention() time.Duration {
	return time.Duration(c.HistoryRetentionDays) * 24 * time.Hour
}

func envString(name string, fallback string) string {
	if raw := strings.TrimSpace(os.Getenv(name)); raw != "" {
		return raw
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envFloat(name string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
