package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type StorageConfig struct {
	Driver string       `mapstructure:"driver"` // "sqlite" or "mongo"
	SQLite SQLiteConfig `mapstructure:"sqlite"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// NewDefault returns the configuration used when no file or environment
// overrides are present.
func NewDefault() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{Path: "smartparse.db"},
			Mongo: MongoConfig{
				URI:      "mongodb://localhost:27017",
				Database: "smartparse",
			},
		},
	}
}

// Load reads configuration from cfgFile if given, otherwise from
// smartparse.yaml in the working directory or $HOME/.config/smartparse.
// Environment variables prefixed SMARTPARSE_ override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("smartparse")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/smartparse")
	}

	v.SetEnvPrefix("SMARTPARSE")
	v.AutomaticEnv()

	cfg := NewDefault()
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("storage.driver", cfg.Storage.Driver)
	v.SetDefault("storage.sqlite.path", cfg.Storage.SQLite.Path)
	v.SetDefault("storage.mongo.uri", cfg.Storage.Mongo.URI)
	v.SetDefault("storage.mongo.database", cfg.Storage.Mongo.Database)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No config file is fine; defaults and env vars apply.
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Storage.Driver != "sqlite" && cfg.Storage.Driver != "mongo" {
		return nil, fmt.Errorf("unknown storage driver %q; use sqlite or mongo", cfg.Storage.Driver)
	}
	return cfg, nil
}
