// Package config provides configuration management for the task board.
// It supports loading configuration from environment variables, config files, and defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config holds all configuration sections.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	NATS    NATSConfig    `mapstructure:"nats"`
	Logging LoggingConfig `mapstructure:"logging"`
	Board   BoardConfig   `mapstructure:"board"`
	Client  ClientConfig  `mapstructure:"client"`
	TUI     TUIConfig     `mapstructure:"tui"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"readTimeout"`  // in seconds
	WriteTimeout int    `mapstructure:"writeTimeout"` // in seconds
}

// StorageConfig selects and configures the record store backend.
type StorageConfig struct {
	Driver     string         `mapstructure:"driver"`
	Dir        string         `mapstructure:"dir"`        // json driver
	SQLitePath string         `mapstructure:"sqlitePath"` // sqlite driver
	Postgres   DatabaseConfig `mapstructure:"postgres"`
	Redis      RedisConfig    `mapstructure:"redis"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbName"`
	SSLMode  string `mapstructure:"sslMode"`
	MaxConns int    `mapstructure:"maxConns"`
	MinConns int    `mapstructure:"minConns"`
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	URL       string `mapstructure:"url"` // takes precedence over addr
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"keyPrefix"`
}

// NATSConfig holds NATS messaging configuration. An empty URL selects the in-memory bus.
type NATSConfig struct {
	URL           string `mapstructure:"url"`
	ClientID      string `mapstructure:"clientId"`
	MaxReconnects int    `mapstructure:"maxReconnects"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"outputPath"`
}

// BoardConfig holds server-side board defaults.
type BoardConfig struct {
	DefaultAuthor string `mapstructure:"defaultAuthor"`
}

// ClientConfig configures the HTTP client used by the terminal board.
type ClientConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
	Timeout int    `mapstructure:"timeout"` // in seconds
}

// TUIConfig configures the terminal board.
type TUIConfig struct {
	LogPath string `mapstructure:"logPath"`
	Author  string `mapstructure:"author"`
}

// ReadTimeoutDuration returns the read timeout as a time.Duration.
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns the write timeout as a time.Duration.
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// TimeoutDuration returns the client request timeout.
func (c *ClientConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func detectDefaultLogFormat() string {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return "json"
	}
	if env := os.Getenv("TASKBOARD_ENV"); env == "production" || env == "prod" {
		return "json"
	}
	return "text"
}

// setDefaults configures default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)

	v.SetDefault("storage.driver", DriverJSON)
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("storage.sqlitePath", "./data/taskboard.db")
	v.SetDefault("storage.postgres.host", "localhost")
	v.SetDefault("storage.postgres.port", 5432)
	v.SetDefault("storage.postgres.user", "taskboard")
	v.SetDefault("storage.postgres.password", "")
	v.SetDefault("storage.postgres.dbName", "taskboard")
	v.SetDefault("storage.postgres.sslMode", "disable")
	v.SetDefault("storage.postgres.maxConns", 10)
	v.SetDefault("storage.postgres.minConns", 2)
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.url", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.keyPrefix", "taskboard:")

	// Empty URL means use in-memory event bus
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.clientId", "taskboard")
	v.SetDefault("nats.maxReconnects", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", detectDefaultLogFormat())
	v.SetDefault("logging.outputPath", "stdout")

	v.SetDefault("board.defaultAuthor", "Current User")

	v.SetDefault("client.baseUrl", "http://localhost:3000")
	v.SetDefault("client.timeout", 10)

	v.SetDefault("tui.logPath", "taskboard-tui.log")
	v.SetDefault("tui.author", "Current User")
}

// Load reads configuration from environment variables, config file, and defaults.
// Environment variables use the prefix TASKBOARD_ (e.g. TASKBOARD_STORAGE_DRIVER).
func Load() (*Config, error) {
	return LoadWithPath("")
}

// LoadWithPath reads configuration from the specified path or default locations.
func LoadWithPath(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TASKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv does not split camelCase keys, bind the ones people set most.
	_ = v.BindEnv("storage.sqlitePath", "TASKBOARD_SQLITE_PATH", "TASKBOARD_STORAGE_SQLITE_PATH")
	_ = v.BindEnv("storage.redis.url", "TASKBOARD_REDIS_URL", "REDIS_CONNECTION_STRING")
	_ = v.BindEnv("client.baseUrl", "TASKBOARD_CLIENT_BASE_URL")
	_ = v.BindEnv("board.defaultAuthor", "TASKBOARD_BOARD_DEFAULT_AUTHOR")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/taskboard/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	var errs []string

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch cfg.Storage.Driver {
	case DriverJSON:
		if cfg.Storage.Dir == "" {
			errs = append(errs, "storage.dir is required for the json driver")
		}
	case DriverSQLite:
		if cfg.Storage.SQLitePath == "" {
			errs = append(errs, "storage.sqlitePath is required for the sqlite driver")
		}
	case DriverPostgres:
		pg := cfg.Storage.Postgres
		if pg.Host == "" || pg.User == "" || pg.DBName == "" {
			errs = append(errs, "storage.postgres host, user and dbName are required for the postgres driver")
		}
		if pg.Port <= 0 || pg.Port > 65535 {
			errs = append(errs, "storage.postgres.port must be between 1 and 65535")
		}
	case DriverRedis:
		if cfg.Storage.Redis.Addr == "" && cfg.Storage.Redis.URL == "" {
			errs = append(errs, "storage.redis.addr or storage.redis.url is required for the redis driver")
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Sprintf("storage.driver %q is not one of: json, sqlite, postgres, redis, memory", cfg.Storage.Driver))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Logging.Level)] {
		errs = append(errs, "logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(cfg.Logging.Format)] {
		errs = append(errs, "logging.format must be one of: json, text")
	}

	if cfg.Client.Timeout <= 0 {
		errs = append(errs, "client.timeout must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
