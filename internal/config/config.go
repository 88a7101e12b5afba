package config

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server ServerConfig
	DB     PostgresConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
	Auth   AuthConfig
	Store  StoreConfig
}

type ServerConfig struct {
	Port            string `split_words:"true" default:"8080"`
	Env             string `split_words:"true" default:"development"`
	ShutdownTimeout int    `split_words:"true" default:"5"`
}

type PostgresConfig struct {
	DSN      string `split_words:"true"`
	Host     string `split_words:"true" default:"localhost"`
	Port     string `split_words:"true" default:"5432"`
	User     string `split_words:"true" default:"postgres"`
	Password string `split_words:"true" default:"postgres"`
	Name     string `split_words:"true" default:"storefront"`
	SSLMode  string `split_words:"true" default:"disable"`
}

type RedisConfig struct {
	Addr        string `split_words:"true" default:"localhost:6379"`
	Password    string `split_words:"true"`
	DB          int    `split_words:"true" default:"0"`
	CacheTTLSec int    `split_words:"true" default:"60"`
	Disabled    bool   `split_words:"true" default:"false"`
}

type KafkaConfig struct {
	Brokers []string `split_words:"true" default:"localhost:9092"`
	GroupID string   `split_words:"true" default:"storefront-notifier"`
}

type AuthConfig struct {
	Secret             string `split_words:"true" default:"dev-secret"`
	TokenTTLHours      int    `split_words:"true" default:"72"`
	AdminUser          string `split_words:"true" default:"admin"`
	AdminPass          string `split_words:"true" default:"admin123"`
	GoogleClientID     string `split_words:"true"`
	GoogleClientSecret string `split_words:"true"`
	BaseURL            string `split_words:"true" default:"http://localhost:8080"`
}

type StoreConfig struct {
	SellerID string `split_words:"true"`
}

// Load reads configuration from the environment. Each section uses its own
// prefix (SERVER_, DB_, REDIS_, KAFKA_, AUTH_, STORE_).
func Load() (*Config, error) {
	cfg := &Config{}
	sections := map[string]any{
		"server": &cfg.Server,
		"db":     &cfg.DB,
		"redis":  &cfg.Redis,
		"kafka":  &cfg.Kafka,
		"auth":   &cfg.Auth,
		"store":  &cfg.Store,
	}
	for prefix, section := range sections {
		if err := envconfig.Process(prefix, section); err != nil {
			return nil, fmt.Errorf("config %s: %w", prefix, err)
		}
	}
	return cfg, nil
}

// PostgresDSN assembles the connection string unless one was given whole.
func (c *Config) PostgresDSN() string {
	if c.DB.DSN != "" {
		return c.DB.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DB.Host, c.DB.User, c.DB.Password, c.DB.Name, c.DB.Port, c.DB.SSLMode)
}

// SellerID parses the configured seller identity; zero UUID when unset.
func (c *Config) SellerID() uuid.UUID {
	id, err := uuid.Parse(c.Store.SellerID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}
