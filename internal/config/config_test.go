package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shifttrack/pkg/clients/webhookclient"
)

func validConfig() *Config {
	cfg := &Config{
		WebhookBaseURL: "https://hooks.example.com/webhook/",
	}
	ApplyDefaults(cfg)
	return cfg
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shifttrack_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestValidate_MinimalConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidate_FullConfig(t *testing.T) {
	lat, lng := 40.7128, -74.006
	cfg := validConfig()
	cfg.Endpoints = map[string]string{"login": "auth/login"}
	cfg.Language = "es-MX"
	cfg.Geolocation = GeolocationConfig{Mode: GeoStatic, Latitude: &lat, Longitude: &lng}
	cfg.Session = SessionConfig{Backend: BackendRedis, RedisAddr: "localhost:6379"}
	cfg.WebhookAuth = &WebhookAuthConfig{TokenURL: "https://auth.example.com/token", ClientID: "cli"}
	cfg.ShiftSchedule = "FREQ=WEEKLY;BYDAY=MO,WE,FR;BYHOUR=9"

	assert.NoError(t, Validate(cfg))
}

func TestValidate_MissingWebhookBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.WebhookBaseURL = ""

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown endpoint", func(c *Config) { c.Endpoints = map[string]string{"payroll": "x"} }, `unknown endpoint "payroll"`},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "invalid timezone"},
		{"bad language", func(c *Config) { c.Language = "not a tag!" }, "invalid language"},
		{"bad backend", func(c *Config) { c.Session.Backend = "etcd" }, "validation failed"},
		{"postgres without dsn", func(c *Config) { c.Session.Backend = BackendPostgres }, "needs dsn"},
		{"redis without addr", func(c *Config) { c.Session.Backend = BackendRedis }, "needs redisAddr"},
		{"static without coords", func(c *Config) { c.Geolocation.Mode = GeoStatic }, "needs latitude and longitude"},
		{"bad geolocation mode", func(c *Config) { c.Geolocation.Mode = "gps" }, "validation failed"},
		{"bad rrule", func(c *Config) { c.ShiftSchedule = "FREQ=SOMETIMES" }, "invalid shiftSchedule"},
		{"auth without client", func(c *Config) {
			c.WebhookAuth = &WebhookAuthConfig{TokenURL: "https://auth.example.com/token"}
		}, "validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, GeoNone, cfg.Geolocation.Mode)
	assert.Equal(t, DefaultGeoTimeout, cfg.Geolocation.Timeout)
	assert.Equal(t, BackendFile, cfg.Session.Backend)
	assert.Equal(t, DefaultLogsDir, cfg.LogsDir)
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
webhookBaseURL: https://hooks.example.com/webhook/
subaccountID: sub-1
language: es
requestTimeout: 10s
endpoints:
  history: custom-history
session:
  backend: sqlite
  dir: /tmp/shifttrack
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "sub-1", cfg.SubaccountID)
	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, BackendSQLite, cfg.Session.Backend)
	assert.Equal(t, map[webhookclient.Endpoint]string{webhookclient.History: "custom-history"}, cfg.EndpointPaths())

	dir, err := cfg.SessionDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/shifttrack", dir)
}

func TestLoadFromPath_SecretsFromEnvironment(t *testing.T) {
	t.Setenv(EnvClientSecret, "s3cret")
	t.Setenv(EnvSessionDSN, "postgres://localhost/shifttrack")

	path := writeConfig(t, `
webhookBaseURL: https://hooks.example.com/
session:
  backend: postgres
webhookAuth:
  tokenURL: https://auth.example.com/token
  clientID: cli
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.WebhookAuth.ClientSecret)
	assert.Equal(t, "postgres://localhost/shifttrack", cfg.Session.DSN)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "webhookBaseURL: [unclosed")

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestScheduleRule(t *testing.T) {
	cfg := validConfig()

	rule, err := cfg.ScheduleRule(time.Now())
	require.NoError(t, err)
	assert.Nil(t, rule)

	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) // a Monday
	cfg.ShiftSchedule = "FREQ=DAILY;COUNT=3;BYHOUR=9;BYMINUTE=0;BYSECOND=0"

	rule, err = cfg.ScheduleRule(from)
	require.NoError(t, err)
	require.NotNil(t, rule)

	occurrences := rule.All()
	require.Len(t, occurrences, 3)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), occurrences[0])
	assert.Equal(t, time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC), occurrences[2])
}
