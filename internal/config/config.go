package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is loaded once in main and passed into constructors by value.
// Nothing below internal/config reads the environment.
type Config struct {
	// SMTP / notification
	SMTPServer      string `env:"SMTP_SERVER"`
	SMTPPort        int    `env:"SMTP_PORT, default=587"`
	EmailAddress    string `env:"EMAIL_ADDRESS"`
	EmailPassword   string `env:"EMAIL_PASSWORD"`
	ReportRecipient string `env:"REPORT_RECIPIENT_EMAIL"`
	ErrorRecipient  string `env:"ERROR_RECIPIENT_EMAIL"`
	SlackWebhook    string `env:"SLACK_WEBHOOK"`

	// paths
	TargetsFile string `env:"TARGETS_FILE, default=targets.yaml"`
	ReportDir   string `env:"REPORT_DIR, default=reports"`
	LogDir      string `env:"LOG_DIR, default=logs"`

	// probing
	Interval    time.Duration `env:"PING_INTERVAL, default=3h"`
	Attempts    int           `env:"PING_ATTEMPTS, default=5"`
	Timeout     time.Duration `env:"PING_TIMEOUT, default=4s"`
	Concurrency int           `env:"PING_CONCURRENCY, default=4"`
	Privileged  bool          `env:"PING_PRIVILEGED, default=false"`

	// status API
	Addr string `env:"API_ADDR, default=127.0.0.1:8080"`
}

func FromEnv(ctx context.Context) (Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Attempts < 1 {
		return fmt.Errorf("PING_ATTEMPTS must be at least 1, got %d", c.Attempts)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("PING_INTERVAL must be positive, got %v", c.Interval)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("PING_TIMEOUT must be positive, got %v", c.Timeout)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("PING_CONCURRENCY must be at least 1, got %d", c.Concurrency)
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("SMTP_PORT must be a valid port, got %d", c.SMTPPort)
	}
	return nil
}

// EmailEnabled reports whether enough SMTP settings are present to send.
// An empty SMTP_SERVER runs the service in report-only mode.
func (c Config) EmailEnabled() bool {
	return c.SMTPServer != "" && c.EmailAddress != "" &&
		c.ReportRecipient != "" && c.ErrorRecipient != ""
}
