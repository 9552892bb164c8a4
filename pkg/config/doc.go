// Package config loads authbridge configuration.
//
// Sources, lowest precedence first:
//
//  1. envDefault tags
//  2. an optional YAML file (WithFile)
//  3. .env files (WithDotEnv), which never override real environment variables
//  4. process environment variables
//
// The result is a plain value; nothing reloads it after Load returns.
package config
