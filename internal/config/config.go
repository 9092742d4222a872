package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	Port     string `toml:"port"`
	DBDriver string `toml:"db_driver"`
	DBConn   string `toml:"db_conn"`
	LogLevel string `toml:"log_level"`

	JWTSecret    string        `toml:"jwt_secret"`
	PasswordHash string        `toml:"password_hash"` // bcrypt hash of the shared password
	Password     string        `toml:"password"`      // plaintext fallback, hashed at startup
	SessionTTL   time.Duration `toml:"-"`

	EncryptionKey string `toml:"encryption_key"` // hex AES key for stored account passwords

	StartingBalance decimal.Decimal `toml:"-"`
	MetricsEnabled  bool            `toml:"metrics_enabled"`

	DigestCron   string   `toml:"digest_cron"`
	DigestTo     []string `toml:"digest_to"`
	SMTPHost     string   `toml:"smtp_host"`
	SMTPPort     string   `toml:"smtp_port"`
	SMTPUsername string   `toml:"smtp_username"`
	SMTPPassword string   `toml:"smtp_password"`
	SenderEmail  string   `toml:"sender_email"`
}

// fileConfig carries the values TOML cannot decode straight into Config
type fileConfig struct {
	Config
	SessionTTL      string `toml:"session_ttl"`
	StartingBalance string `toml:"starting_balance"`
}

// NewConfig loads configuration from a .env file, an optional TOML file named
// by CONFIG_FILE and finally environment variables, later sources winning.
func NewConfig() (*Config, error) {
	// A missing .env is fine
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Port:            "8080",
		DBDriver:        "postgres",
		DBConn:          "host=localhost port=5432 user=test password=test dbname=accounts sslmode=disable",
		LogLevel:        "INFO",
		JWTSecret:       "secret",
		Password:        "1234",
		SessionTTL:      7 * 24 * time.Hour,
		EncryptionKey:   "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6",
		StartingBalance: decimal.NewFromInt(10000),
		MetricsEnabled:  true,
		DigestCron:      "0 7 1 * *",
		SMTPPort:        "587",
	}
}

func (c *Config) loadFile(path string) error {
	fc := fileConfig{Config: *c}
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	*c = fc.Config
	if fc.SessionTTL != "" {
		ttl, err := time.ParseDuration(fc.SessionTTL)
		if err != nil {
			return fmt.Errorf("invalid session_ttl: %w", err)
		}
		c.SessionTTL = ttl
	}
	if fc.StartingBalance != "" {
		balance, err := decimal.NewFromString(fc.StartingBalance)
		if err != nil {
			return fmt.Errorf("invalid starting_balance: %w", err)
		}
		c.StartingBalance = balance
	}
	return nil
}

func (c *Config) loadEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBConn = getEnv("DB_CONN", c.DBConn)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.PasswordHash = getEnv("DASHBOARD_PASSWORD_HASH", c.PasswordHash)
	c.Password = getEnv("DASHBOARD_PASSWORD", c.Password)
	c.EncryptionKey = getEnv("ENCRYPTION_KEY", c.EncryptionKey)
	c.DigestCron = getEnv("DIGEST_CRON", c.DigestCron)
	c.SMTPHost = getEnv("SMTP_HOST", c.SMTPHost)
	c.SMTPPort = getEnv("SMTP_PORT", c.SMTPPort)
	c.SMTPUsername = getEnv("SMTP_USERNAME", c.SMTPUsername)
	c.SMTPPassword = getEnv("SMTP_PASSWORD", c.SMTPPassword)
	c.SenderEmail = getEnv("SENDER_EMAIL", c.SenderEmail)

	if v, ok := os.LookupEnv("DIGEST_TO"); ok {
		c.DigestTo = splitList(v)
	}
	if v, ok := os.LookupEnv("SESSION_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		c.SessionTTL = ttl
	}
	if v, ok := os.LookupEnv("STARTING_BALANCE"); ok {
		balance, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("invalid STARTING_BALANCE: %w", err)
		}
		c.StartingBalance = balance
	}
	if v, ok := os.LookupEnv("METRICS_ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid METRICS_ENABLED: %w", err)
		}
		c.MetricsEnabled = enabled
	}
	return nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.DBConn == "" {
		return fmt.Errorf("DB_CONN is required")
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.PasswordHash == "" && c.Password == "" {
		return fmt.Errorf("DASHBOARD_PASSWORD_HASH or DASHBOARD_PASSWORD is required")
	}
	if c.EncryptionKey == "" {
		return fmt.Errorf("ENCRYPTION_KEY is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// DigestEnabled reports whether the statement digest has somewhere to go
func (c *Config) DigestEnabled() bool {
	return c.DigestCron != "" && c.SMTPHost != "" && len(c.DigestTo) > 0
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
