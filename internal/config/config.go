// Package config loads runtime configuration from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Catalog CatalogConfig `yaml:"catalog"`
	Ranking RankingConfig `yaml:"ranking"`
	Log     LogConfig     `yaml:"log"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type CatalogConfig struct {
	// Path is a CSV or JSON catalog snapshot. DBPath, when set, points at a
	// SQLite database; the file at Path is used to seed it when empty.
	Path        string `yaml:"path"`
	DBPath      string `yaml:"dbPath"`
	WeightsPath string `yaml:"weightsPath"`
}

type RankingConfig struct {
	TopFood   int `yaml:"topFood"`
	TopTreats int `yaml:"topTreats"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads configuration from CONFIG_PATH (or configs/config.yaml when
// present), then applies environment overrides and validates.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("CATALOG_DB_PATH"); v != "" {
		cfg.Catalog.DBPath = v
	}
	if v := os.Getenv("WEIGHTS_PATH"); v != "" {
		cfg.Catalog.WeightsPath = v
	}
	if v := os.Getenv("TOP_FOOD"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Ranking.TopFood = parsed
		}
	}
	if v := os.Getenv("TOP_TREATS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Ranking.TopTreats = parsed
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP:    HTTPConfig{Address: ":8080"},
		Catalog: CatalogConfig{Path: "data/catalog.csv"},
		Ranking: RankingConfig{TopFood: 3, TopTreats: 3},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Catalog.Path == "" && c.Catalog.DBPath == "" {
		return errors.New("catalog.path or catalog.dbPath must be set")
	}
	if c.Ranking.TopFood <= 0 {
		return errors.New("ranking.topFood must be positive")
	}
	if c.Ranking.TopTreats <= 0 {
		return errors.New("ranking.topTreats must be positive")
	}
	return nil
}
