package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Question source names accepted in questions.source.
const (
	SourceOpenTDB  = "opentdb"
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceDemo     = "demo"
)

// LevelQuiet silences the logger.
const LevelQuiet = "quiet"

type Config struct {
	Match struct {
		Rounds int   `yaml:"rounds" env:"TRIVIA_ROUNDS"`
		Skips  int   `yaml:"skips" env:"TRIVIA_SKIPS"`
		Seed   int64 `yaml:"seed" env:"TRIVIA_SEED"`
	} `yaml:"match"`
	Questions struct {
		Source     string `yaml:"source" env:"TRIVIA_QUESTIONS_SOURCE"`
		File       string `yaml:"file" env:"TRIVIA_QUESTIONS_FILE"`
		APIURL     string `yaml:"api_url" env:"TRIVIA_QUESTIONS_API_URL"`
		Category   string `yaml:"category" env:"TRIVIA_QUESTIONS_CATEGORY"`
		Difficulty string `yaml:"difficulty" env:"TRIVIA_QUESTIONS_DIFFICULTY"`
		Timeout    string `yaml:"timeout" env:"TRIVIA_QUESTIONS_TIMEOUT"`
		CacheTTL   string `yaml:"cache_ttl" env:"TRIVIA_QUESTIONS_CACHE_TTL"`
	} `yaml:"questions"`
	Redis struct {
		Addr     string `yaml:"addr" env:"TRIVIA_REDIS_ADDR"`
		Password string `yaml:"password" env:"TRIVIA_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"TRIVIA_REDIS_DB"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url" env:"TRIVIA_POSTGRES_URL"`
	} `yaml:"postgres"`
	Log struct {
		Level string `yaml:"level" env:"TRIVIA_LOG_LEVEL"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Match.Rounds = 10
	cfg.Match.Skips = 2
	cfg.Questions.Source = SourceOpenTDB
	cfg.Questions.Timeout = "10s"
	cfg.Questions.CacheTTL = "10m"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads YAML config from path on top of the defaults, then applies
// TRIVIA_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
