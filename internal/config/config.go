package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Gamify   GamifyConfig   `yaml:"gamify"`
	Covers   CoversConfig   `yaml:"covers"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type GamifyConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type CoversConfig struct {
	URL string `yaml:"url"`
}

type ScoringConfig struct {
	// Scale selects the rating value domain: "stars" (0..5) or
	// "thumbs" (-1/0/+1).
	Scale string `yaml:"scale"`
	// MinRatingsForCompatibility is the floor below which compatibility
	// reports insufficient data instead of a judgment.
	MinRatingsForCompatibility int `yaml:"min_ratings_for_compatibility"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Gamify: GamifyConfig{
			URL: "http://localhost:9100",
		},
		Covers: CoversConfig{
			URL: "http://localhost:9200",
		},
		Scoring: ScoringConfig{
			Scale:                      "stars",
			MinRatingsForCompatibility: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FOLIO_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("FOLIO_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("FOLIO_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("FOLIO_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("FOLIO_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("FOLIO_GAMIFY_URL"); v != "" {
		cfg.Gamify.URL = v
	}
	if v := os.Getenv("FOLIO_GAMIFY_TOKEN"); v != "" {
		cfg.Gamify.Token = v
	}
	if v := os.Getenv("FOLIO_COVERS_URL"); v != "" {
		cfg.Covers.URL = v
	}
	if v := os.Getenv("FOLIO_SCORING_SCALE"); v != "" {
		cfg.Scoring.Scale = v
	}
	if v := os.Getenv("FOLIO_MIN_RATINGS_FOR_COMPATIBILITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.MinRatingsForCompatibility = n
		}
	}
	if v := os.Getenv("FOLIO_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
