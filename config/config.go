// Configuration for the scraper, loaded once at process start from the
// environment (plus an optional .env file) and passed by reference into
// each component. There are no ambient globals.
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
	Sheet  SheetConfig
	Email  EmailConfig
	HTTP   HTTPConfig
	Retry  RetryConfig
	Output OutputConfig
}

type SheetConfig struct {
	CredentialsFile string // service-account JSON key
	SpreadsheetID   string
	WorksheetName   string
}

type EmailConfig struct {
	Sender   string
	Password string
	Receiver string
	CCList   []string
	Subject  string
	Body     string
	SMTPHost string
	SMTPPort int
}

type HTTPConfig struct {
	// Timeout of 0 leaves the client on transport defaults.
	Timeout time.Duration
}

type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
}

type OutputConfig struct {
	Dir      string
	LogLevel string
}

// Load reads configuration from the environment. If envFile is non-empty
// and exists, it is loaded first without overriding variables already set.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}

	cfg := &Config{}
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func loadFromEnv(cfg *Config) error {
	cfg.Sheet.CredentialsFile = os.Getenv("OAUTH_FILE_PATH")
	cfg.Sheet.SpreadsheetID = os.Getenv("SPREADSHEET_ID")

	if name := os.Getenv("WORKSHEET_NAME"); name != "" {
		cfg.Sheet.WorksheetName = name
	} else {
		cfg.Sheet.WorksheetName = "Sheet1"
	}

	cfg.Email.Sender = os.Getenv("SENDER_EMAIL")
	cfg.Email.Password = os.Getenv("SENDER_PASSWORD")
	cfg.Email.Receiver = os.Getenv("RECEIVER_EMAIL")
	cfg.Email.Subject = os.Getenv("EMAIL_SUBJECT")
	cfg.Email.Body = os.Getenv("EMAIL_BODY")

	if cc := os.Getenv("CC_LIST"); cc != "" {
		parts := strings.Split(cc, ",")
		for _, p := range parts {
			if addr := strings.TrimSpace(p); addr != "" {
				cfg.Email.CCList = append(cfg.Email.CCList, addr)
			}
		}
	}

	if host := os.Getenv("SMTP_HOST"); host != "" {
		cfg.Email.SMTPHost = host
	} else {
		cfg.Email.SMTPHost = "smtp.gmail.com"
	}

	if port := os.Getenv("SMTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SMTP_PORT: %s", port)
		}
		cfg.Email.SMTPPort = p
	} else {
		cfg.Email.SMTPPort = 587
	}

	if timeout := os.Getenv("HTTP_TIMEOUT"); timeout != "" {
		t, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT: %s", timeout)
		}
		cfg.HTTP.Timeout = t
	}

	if attempts := os.Getenv("RETRY_MAX_ATTEMPTS"); attempts != "" {
		a, err := strconv.Atoi(attempts)
		if err != nil {
			return fmt.Errorf("invalid RETRY_MAX_ATTEMPTS: %s", attempts)
		}
		cfg.Retry.MaxAttempts = a
	} else {
		cfg.Retry.MaxAttempts = 5
	}

	if delay := os.Getenv("RETRY_DELAY"); delay != "" {
		d, err := time.ParseDuration(delay)
		if err != nil {
			return fmt.Errorf("invalid RETRY_DELAY: %s", delay)
		}
		cfg.Retry.Delay = d
	} else {
		cfg.Retry.Delay = 120 * time.Second
	}

	if dir := os.Getenv("OUTPUT_DIR"); dir != "" {
		cfg.Output.Dir = dir
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve working directory: %w", err)
		}
		cfg.Output.Dir = wd
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Output.LogLevel = level
	} else {
		cfg.Output.LogLevel = "info"
	}

	return nil
}

func validate(cfg *Config) error {
	if cfg.Sheet.CredentialsFile == "" {
		return fmt.Errorf("OAUTH_FILE_PATH is required")
	}

	if cfg.Sheet.SpreadsheetID == "" {
		return fmt.Errorf("SPREADSHEET_ID is required")
	}

	if cfg.Email.Sender == "" {
		return fmt.Errorf("SENDER_EMAIL is required")
	}

	if cfg.Email.Receiver == "" {
		return fmt.Errorf("RECEIVER_EMAIL is required")
	}

	if cfg.Email.SMTPPort <= 0 || cfg.Email.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", cfg.Email.SMTPPort)
	}

	if cfg.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry max attempts must be positive: %d", cfg.Retry.MaxAttempts)
	}

	if cfg.Retry.Delay < 0 {
		return fmt.Errorf("retry delay must be non-negative: %v", cfg.Retry.Delay)
	}

	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("HTTP timeout must be non-negative: %v", cfg.HTTP.Timeout)
	}

	return nil
}
