package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Development fallbacks. Validate rejects them in production.
const (
	devJWTSecret  = "travelwise_dev_secret_change_in_production"
	devDBPassword = "travelwise"
)

type Config struct {
	Env      string         `yaml:"env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	Cache    CacheConfig    `yaml:"cache"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type HTTPConfig struct {
	Address   string `yaml:"address"`
	StaticDir string `yaml:"static_dir"`
}

type DatabaseConfig struct {
	// URL, when set, wins over the discrete fields.
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

type CacheConfig struct {
	BookingsTTLSeconds int `yaml:"bookings_ttl_seconds"`
}

func (c CacheConfig) BookingsTTL() time.Duration {
	return time.Duration(c.BookingsTTLSeconds) * time.Second
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.Env = getEnv("APP_ENV", c.Env)
	c.HTTP.Address = getEnv("HTTP_ADDRESS", c.HTTP.Address)
	if port := os.Getenv("PORT"); port != "" {
		c.HTTP.Address = ":" + port
	}
	c.Database.URL = getEnv("DATABASE_URL", c.Database.URL)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.Kafka.Brokers = strings.Split(brokers, ",")
	}
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
}

func (c *Config) applyDefaults() {
	if c.Env == "" {
		c.Env = "development"
	}
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":3000"
	}
	if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = devJWTSecret
	}
	if c.Auth.TokenTTLHours == 0 {
		c.Auth.TokenTTLHours = 24
	}
	if c.Cache.BookingsTTLSeconds == 0 {
		c.Cache.BookingsTTLSeconds = 60
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate fails fast when a production deployment still carries the
// insecure development fallbacks.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	if c.Auth.JWTSecret == devJWTSecret {
		return fmt.Errorf("insecure default jwt secret in production")
	}
	if c.Database.URL == "" && c.Database.Password == devDBPassword {
		return fmt.Errorf("insecure default database password in production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
