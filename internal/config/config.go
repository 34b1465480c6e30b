package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	RabbitMQ   RabbitMQConfig   `yaml:"rabbitmq"`
	Site       SiteConfig       `yaml:"site"`
	Sync       SyncConfig       `yaml:"sync"`
	Encryption EncryptionConfig `yaml:"encryption"`
	LogLevel   string           `yaml:"log_level"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

// SiteConfig carries everything tied to the external magazine site: the
// base origin, the browser identity the fetcher presents, and the issue
// number anchor. The anchor is a real-world constant (issue 479 appeared
// in January 2026); keeping it here instead of in code lets operators
// recalibrate without a rebuild.
type SiteConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	UserAgent      string        `yaml:"user_agent"`
	AcceptLanguage string        `yaml:"accept_language"`
	ReferenceIssue int           `yaml:"reference_issue"`
	ReferenceYear  int           `yaml:"reference_year"`
	ReferenceMonth int           `yaml:"reference_month"`
}

type SyncConfig struct {
	Interval    time.Duration `yaml:"interval"`
	ForceScrape bool          `yaml:"force_scrape"`
}

type EncryptionConfig struct {
	Key string `yaml:"key"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "webdergi"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "articles"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "archive_articles"
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = "https://www.altinoluk.com.tr"
	}
	if c.Site.Timeout == 0 {
		c.Site.Timeout = 15 * time.Second
	}
	if c.Site.UserAgent == "" {
		c.Site.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	if c.Site.AcceptLanguage == "" {
		c.Site.AcceptLanguage = "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7"
	}
	if c.Site.ReferenceIssue == 0 {
		c.Site.ReferenceIssue = 479
		c.Site.ReferenceYear = 2026
		c.Site.ReferenceMonth = 1
	}
	if c.Sync.Interval == 0 {
		c.Sync.Interval = 24 * time.Hour
	}
	if c.Encryption.Key == "" {
		c.Encryption.Key = os.Getenv("ENCRYPTION_KEY")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
