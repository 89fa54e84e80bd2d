package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	AccessSecret string
}

type PlatesConfig struct {
	// Retention is how long a saved collection stays valid.
	Retention    time.Duration
	SourceURL    string
	FetchTimeout time.Duration
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Plates      PlatesConfig
}

func Load() (*Config, error) {
	cfg := read()
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if cfg.Auth.AccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return cfg, nil
}

// LoadLocal is Load without the HTTP auth settings, for the terminal search.
func LoadLocal() (*Config, error) {
	cfg := read()
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read() *Config {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			Driver:          v.GetString("DB_DRIVER"),
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Plates: PlatesConfig{
			Retention:    v.GetDuration("PLATES_RETENTION"),
			SourceURL:    v.GetString("PLATES_SOURCE_URL"),
			FetchTimeout: v.GetDuration("PLATES_FETCH_TIMEOUT"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = DriverSQLite
	}
	if cfg.DB.DSN == "" && cfg.DB.Driver == DriverSQLite {
		cfg.DB.DSN = "plates.db"
	}
	if cfg.Plates.Retention == 0 {
		cfg.Plates.Retention = 12 * time.Hour
	}
	if cfg.Plates.FetchTimeout == 0 {
		cfg.Plates.FetchTimeout = 30 * time.Second
	}

	return cfg
}

func validate(cfg *Config) error {
	switch cfg.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER %q is not supported", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Plates.Retention < 0 {
		return fmt.Errorf("PLATES_RETENTION must be positive")
	}
	return nil
}
