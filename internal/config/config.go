package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Tokens    TokenConfig     `yaml:"tokens"`
	Mail      MailQueueConfig `yaml:"mail_queue"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// PublicURL is the externally reachable base URL used in redemption links.
	PublicURL string `yaml:"public_url"`
	// SelfHosted marks an installation that cannot sponsor other organizations.
	SelfHosted bool `yaml:"self_hosted"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SendGridConfig contains mail delivery settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// TokenConfig contains signing settings for all token types
type TokenConfig struct {
	Secret               string `yaml:"secret"`
	RedemptionTTLDays    int    `yaml:"redemption_ttl_days"`
	AccessExpiryMinutes  int    `yaml:"access_token_expiry_minutes"`
	RefreshExpiryMinutes int    `yaml:"refresh_token_expiry_minutes"`
}

// MailQueueConfig sizes the async notification queue
type MailQueueConfig struct {
	Workers    int `yaml:"workers"`
	Buffer     int `yaml:"buffer"`
	MaxRetries int `yaml:"max_retries"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	PurgeSponsorships string `yaml:"purge_sponsorships"`
	PurgeGraceDays    int    `yaml:"purge_grace_days"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}

	// Tokens
	if val := os.Getenv("TOKEN_SECRET"); val != "" {
		c.Tokens.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("SERVER_PUBLIC_URL"); val != "" {
		c.Server.PublicURL = val
	}
	if val := os.Getenv("SELF_HOSTED"); val != "" {
		c.Server.SelfHosted = val == "true" || val == "1"
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.PublicURL == "" {
		c.Server.PublicURL = fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.SendGrid.APIKey == "" {
		return fmt.Errorf("sendgrid api key is required")
	}
	if c.SendGrid.FromEmail == "" {
		return fmt.Errorf("sendgrid from address is required")
	}

	if c.Tokens.Secret == "" {
		return fmt.Errorf("token secret is required")
	}
	if len(c.Tokens.Secret) < 32 {
		return fmt.Errorf("token secret must be at least 32 characters")
	}
	if c.Tokens.RedemptionTTLDays == 0 {
		c.Tokens.RedemptionTTLDays = 4
	}
	if c.Tokens.AccessExpiryMinutes == 0 {
		c.Tokens.AccessExpiryMinutes = 60
	}
	if c.Tokens.RefreshExpiryMinutes == 0 {
		c.Tokens.RefreshExpiryMinutes = 60 * 24 * 7
	}

	// Mail queue defaults
	if c.Mail.Workers == 0 {
		c.Mail.Workers = 3
	}
	if c.Mail.Buffer == 0 {
		c.Mail.Buffer = 100
	}
	if c.Mail.MaxRetries == 0 {
		c.Mail.MaxRetries = 3
	}

	// Scheduler defaults
	if c.Scheduler.PurgeSponsorships == "" {
		c.Scheduler.PurgeSponsorships = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.PurgeGraceDays == 0 {
		c.Scheduler.PurgeGraceDays = 30
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
