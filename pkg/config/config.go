package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/authbridge/pkg/identitytoolkit"
	"github.com/dmitrymomot/authbridge/pkg/logger"
	"github.com/dmitrymomot/authbridge/pkg/oauth"
)

// Config aggregates every component's settings.
type Config struct {
	App      oauth.AppConfig        `yaml:"app"`
	Google   oauth.GoogleConfig     `yaml:"google"`
	Facebook oauth.FacebookConfig   `yaml:"facebook"`
	Apple    oauth.AppleConfig      `yaml:"apple"`
	Firebase identitytoolkit.Config `yaml:"firebase"`
	Sentry   logger.SentryConfig    `yaml:"sentry"`

	// RedisURL selects the Redis session store. Empty keeps sessions in memory.
	RedisURL     string     `env:"REDIS_URL" yaml:"redis_url"`
	Locale       string     `env:"AUTHBRIDGE_LOCALE" envDefault:"en" yaml:"locale"`
	LoopbackAddr string     `env:"AUTHBRIDGE_LOOPBACK_ADDR" envDefault:"127.0.0.1:0" yaml:"loopback_addr"`
	LogLevel     slog.Level `env:"AUTHBRIDGE_LOG_LEVEL" envDefault:"INFO" yaml:"log_level"`
}

type options struct {
	file    string
	dotenv  []string
	environ map[string]string
}

// Option configures Load.
type Option func(*options)

// WithFile reads a YAML config file. A missing file is an error.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

// WithDotEnv reads .env files. Missing files are skipped.
func WithDotEnv(paths ...string) Option {
	return func(o *options) {
		o.dotenv = append(o.dotenv, paths...)
	}
}

// WithEnvironment replaces the process environment as the variable source.
func WithEnvironment(environ map[string]string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// Load builds a Config from the configured sources.
func Load(opts ...Option) (Config, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	environ := maps.Clone(o.environ)
	if environ == nil {
		environ = processEnv()
	}

	for _, path := range o.dotenv {
		vars, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, errors.Join(ErrLoadDotEnv, fmt.Errorf("%s: %w", path, err))
		}
		for k, v := range vars {
			if _, set := environ[k]; !set {
				environ[k] = v
			}
		}
	}

	var cfg Config
	if o.file != "" {
		data, err := os.ReadFile(o.file)
		if err != nil {
			return Config{}, errors.Join(ErrReadFile, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Join(ErrParseYAML, fmt.Errorf("%s: %w", o.file, err))
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Environment:                  environ,
		SetDefaultsForZeroValuesOnly: true,
	}); err != nil {
		return Config{}, errors.Join(ErrParseEnv, err)
	}

	return cfg, nil
}

// Validate reports configuration that cannot produce a working sign-in.
func (c Config) Validate() error {
	if strings.TrimSpace(c.App.Scheme) == "" {
		return ErrMissingApp
	}
	if c.Google.ClientID == "" && c.Facebook.AppID == "" && c.Apple.ServiceID == "" {
		return ErrNoProviders
	}
	return nil
}

func processEnv() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}
