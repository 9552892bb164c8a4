package config

import "errors"

var (
	ErrReadFile    = errors.New("config: failed to read config file")
	ErrParseYAML   = errors.New("config: failed to parse yaml")
	ErrParseEnv    = errors.New("config: failed to parse environment")
	ErrLoadDotEnv  = errors.New("config: failed to load .env file")
	ErrMissingApp  = errors.New("config: app scheme is required")
	ErrNoProviders = errors.New("config: no sign-in provider configured")
)
