package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authbridge/pkg/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	require.Equal(t, "tryjesus", cfg.App.Scheme)
	require.Equal(t, "oauthredirect", cfg.App.RedirectPath)
	require.Equal(t, "tryjesus://oauthredirect", cfg.App.RedirectURI())
	require.Equal(t, "http://localhost", cfg.Firebase.RequestURI)
	require.Equal(t, "en", cfg.Locale)
	require.Equal(t, "127.0.0.1:0", cfg.LoopbackAddr)
	require.Equal(t, slog.LevelWarn, cfg.Sentry.MinLevel)
	require.Empty(t, cfg.RedisURL)
}

func TestLoad_Environment(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(config.WithEnvironment(map[string]string{
		"AUTHBRIDGE_APP_SCHEME":  "myapp",
		"GOOGLE_OAUTH_CLIENT_ID": "g-client",
		"GOOGLE_OAUTH_SCOPES":    "openid,email",
		"FACEBOOK_APP_ID":        "fb-app",
		"FIREBASE_API_KEY":       "key",
		"REDIS_URL":              "redis://localhost:6379/0",
		"AUTHBRIDGE_LOG_LEVEL":   "DEBUG",
	}))
	require.NoError(t, err)
	require.Equal(t, "myapp", cfg.App.Scheme)
	require.Equal(t, "g-client", cfg.Google.ClientID)
	require.Equal(t, []string{"openid", "email"}, cfg.Google.Scopes)
	require.Equal(t, "fb-app", cfg.Facebook.AppID)
	require.Equal(t, "key", cfg.Firebase.APIKey)
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	file := writeFile(t, "authbridge.yaml", `
app:
  scheme: fromyaml
google:
  client_id: yaml-client
  scopes: [profile]
locale: fr
`)
	dotenv := writeFile(t, ".env", "GOOGLE_OAUTH_CLIENT_ID=dotenv-client\nAUTHBRIDGE_LOCALE=es\n")

	cfg, err := config.Load(
		config.WithFile(file),
		config.WithDotEnv(dotenv, filepath.Join(t.TempDir(), "missing.env")),
		config.WithEnvironment(map[string]string{"AUTHBRIDGE_LOCALE": "en"}),
	)
	require.NoError(t, err)
	require.Equal(t, "fromyaml", cfg.App.Scheme, "yaml beats defaults")
	require.Equal(t, "oauthredirect", cfg.App.RedirectPath, "defaults fill gaps")
	require.Equal(t, "dotenv-client", cfg.Google.ClientID, ".env beats yaml")
	require.Equal(t, []string{"profile"}, cfg.Google.Scopes)
	require.Equal(t, "en", cfg.Locale, "environment beats .env")
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(config.WithFile(filepath.Join(t.TempDir(), "nope.yaml")))
	require.ErrorIs(t, err, config.ErrReadFile)

	_, err = config.Load(config.WithFile(writeFile(t, "bad.yaml", "app: [")))
	require.ErrorIs(t, err, config.ErrParseYAML)

	_, err = config.Load(config.WithEnvironment(map[string]string{"AUTHBRIDGE_LOG_LEVEL": "LOUD"}))
	require.ErrorIs(t, err, config.ErrParseEnv)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	require.ErrorIs(t, cfg.Validate(), config.ErrNoProviders)

	cfg.Apple.ServiceID = "com.example.web"
	require.NoError(t, cfg.Validate())

	cfg.App.Scheme = " "
	require.ErrorIs(t, cfg.Validate(), config.ErrMissingApp)
}
