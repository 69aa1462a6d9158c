// Package config reads the bot's process configuration from a gcfg ini file.
package config

import (
	"errors"
	"fmt"

	"gopkg.in/gcfg.v1"
)

type Config struct {
	Line struct {
		Secret string
		Token  string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	HTTP struct {
		Listen string
	}
}

const (
	defaultRedisAddr = "localhost:6379"
	defaultListen    = ":8080"
)

// Read loads and validates the configuration file. Missing LINE credentials
// are a startup error; everything else has a default.
func Read(filename string) (Config, error) {
	var cfg Config
	if err := gcfg.ReadFileInto(&cfg, filename); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", filename, err)
	}

	if cfg.Line.Secret == "" || cfg.Line.Token == "" {
		return cfg, errors.New("config: line secret and token are required")
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = defaultRedisAddr
	}
	if cfg.HTTP.Listen == "" {
		cfg.HTTP.Listen = defaultListen
	}
	return cfg, nil
}
