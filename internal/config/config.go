package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shifttrack/pkg/clients/webhookclient"
)

const (
	configFileBase = "shifttrack_config"
	envFileName    = ".env"

	DefaultTimezone       = "America/New_York"
	DefaultLanguage       = "en"
	DefaultRequestTimeout = 30 * time.Second
	DefaultGeoTimeout     = 5 * time.Second
	DefaultLogsDir        = "logs"

	// Secrets that may be kept out of the YAML file
	EnvClientSecret   = "SHIFTTRACK_CLIENT_SECRET"
	EnvSessionDSN     = "SHIFTTRACK_SESSION_DSN"
	EnvRedisPassword  = "SHIFTTRACK_REDIS_PASSWORD"
	EnvWebhookBaseURL = "SHIFTTRACK_WEBHOOK_BASE_URL"
)

// Session backends
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Geolocation modes
const (
	GeoNone   = "none"
	GeoStatic = "static"
	GeoIP     = "ip"
)

// GeolocationConfig selects how check-in and check-out positions are found
type GeolocationConfig struct {
	Mode      string        `yaml:"mode" validate:"omitempty,oneof=none static ip"`
	Latitude  *float64      `yaml:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64      `yaml:"longitude,omitempty" validate:"omitempty,longitude"`
	LookupURL string        `yaml:"lookupURL,omitempty" validate:"omitempty,url"`
	Timeout   time.Duration `yaml:"timeout,omitempty" validate:"gte=0"`
}

// SessionConfig selects where the signed-in user and open shift are kept
type SessionConfig struct {
	Backend       string `yaml:"backend" validate:"omitempty,oneof=file memory sqlite postgres redis"`
	Dir           string `yaml:"dir,omitempty"`
	DSN           string `yaml:"dsn,omitempty"`
	RedisAddr     string `yaml:"redisAddr,omitempty"`
	RedisPassword string `yaml:"redisPassword,omitempty"`
	RedisDB       int    `yaml:"redisDB,omitempty" validate:"gte=0"`
}

// WebhookAuthConfig enables an OAuth2 client-credentials grant on webhook calls
type WebhookAuthConfig struct {
	TokenURL     string   `yaml:"tokenURL" validate:"required,url"`
	ClientID     string   `yaml:"clientID" validate:"required"`
	ClientSecret string   `yaml:"clientSecret,omitempty"`
	Scopes       []string `yaml:"scopes,omitempty"`
}

// Config represents the application configuration
type Config struct {
	WebhookBaseURL  string             `yaml:"webhookBaseURL" validate:"required,url"`
	Endpoints       map[string]string  `yaml:"endpoints,omitempty"`
	SubaccountID    string             `yaml:"subaccountID,omitempty"`
	Timezone        string             `yaml:"timezone,omitempty"`
	Language        string             `yaml:"language,omitempty"`
	RequestTimeout  time.Duration      `yaml:"requestTimeout,omitempty" validate:"gte=0"`
	Geolocation     GeolocationConfig  `yaml:"geolocation,omitempty"`
	Session         SessionConfig      `yaml:"session,omitempty"`
	WebhookAuth     *WebhookAuthConfig `yaml:"webhookAuth,omitempty"`
	ShiftSchedule   string             `yaml:"shiftSchedule,omitempty"`
	ReportSheetID   string             `yaml:"reportSheetID,omitempty"`
	MetricsTextfile string             `yaml:"metricsTextfile,omitempty"`
	LogsDir         string             `yaml:"logsDir,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads shifttrack_config.yaml from the current or home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for an environment. env="test" looks
// for shifttrack_config.test.yaml. A .env file in the current directory is
// read first so secrets can come from the environment.
func LoadWithEnv(env string) (*Config, error) {
	if err := loadEnvFile(envFileName); err != nil {
		return nil, err
	}

	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)
	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadEnvFile reads KEY=value pairs into the process environment without
// overriding variables that are already set. A missing file is fine.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvWebhookBaseURL); v != "" && cfg.WebhookBaseURL == "" {
		cfg.WebhookBaseURL = v
	}
	if v := os.Getenv(EnvSessionDSN); v != "" && cfg.Session.DSN == "" {
		cfg.Session.DSN = v
	}
	if v := os.Getenv(EnvRedisPassword); v != "" && cfg.Session.RedisPassword == "" {
		cfg.Session.RedisPassword = v
	}
	if cfg.WebhookAuth != nil && cfg.WebhookAuth.ClientSecret == "" {
		cfg.WebhookAuth.ClientSecret = os.Getenv(EnvClientSecret)
	}
}

// ApplyDefaults fills in every optional field that was left empty
func ApplyDefaults(cfg *Config) {
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Geolocation.Mode == "" {
		cfg.Geolocation.Mode = GeoNone
	}
	if cfg.Geolocation.Timeout == 0 {
		cfg.Geolocation.Timeout = DefaultGeoTimeout
	}
	if cfg.Session.Backend == "" {
		cfg.Session.Backend = BackendFile
	}
	if cfg.LogsDir == "" {
		cfg.LogsDir = DefaultLogsDir
	}
}

// Validate validates the configuration struct and the fields whose syntax
// struct tags cannot express
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for name := range cfg.Endpoints {
		if !webhookclient.Endpoint(name).IsValid() {
			return fmt.Errorf("config validation failed: unknown endpoint %q in endpoints", name)
		}
	}

	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
	}

	if cfg.Language != "" {
		if _, err := language.Parse(cfg.Language); err != nil {
			return fmt.Errorf("invalid language %q: %w", cfg.Language, err)
		}
	}

	if cfg.Geolocation.Mode == GeoStatic && (cfg.Geolocation.Latitude == nil || cfg.Geolocation.Longitude == nil) {
		return fmt.Errorf("config validation failed: geolocation mode static needs latitude and longitude")
	}

	switch cfg.Session.Backend {
	case BackendPostgres:
		if cfg.Session.DSN == "" {
			return fmt.Errorf("config validation failed: session backend postgres needs dsn or %s", EnvSessionDSN)
		}
	case BackendRedis:
		if cfg.Session.RedisAddr == "" {
			return fmt.Errorf("config validation failed: session backend redis needs redisAddr")
		}
	}

	if cfg.ShiftSchedule != "" {
		if _, err := rrule.StrToRRule(cfg.ShiftSchedule); err != nil {
			return fmt.Errorf("invalid shiftSchedule: %w", err)
		}
	}

	return nil
}

// EndpointPaths converts the endpoint overrides to the webhook client's form
func (c *Config) EndpointPaths() map[webhookclient.Endpoint]string {
	paths := make(map[webhookclient.Endpoint]string, len(c.Endpoints))
	for name, path := range c.Endpoints {
		paths[webhookclient.Endpoint(name)] = path
	}
	return paths
}

// SessionDir returns the directory for file and sqlite session state,
// defaulting to ~/.shifttrack
func (c *Config) SessionDir() (string, error) {
	if c.Session.Dir != "" {
		return c.Session.Dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".shifttrack"), nil
}

// ScheduleRule parses ShiftSchedule. Rules without a DTSTART are anchored
// at from. Returns nil when no schedule is configured.
func (c *Config) ScheduleRule(from time.Time) (*rrule.RRule, error) {
	if c.ShiftSchedule == "" {
		return nil, nil
	}
	opt, err := rrule.StrToROption(c.ShiftSchedule)
	if err != nil {
		return nil, fmt.Errorf("invalid shiftSchedule: %w", err)
	}
	if opt.Dtstart.IsZero() {
		opt.Dtstart = from
	}
	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("invalid shiftSchedule: %w", err)
	}
	return rule, nil
}

// findConfigFile searches the current directory, then the home directory
func findConfigFile(env string) (string, error) {
	configFileName := configFileBase + ".yaml"
	if env != "" {
		configFileName = configFileBase + "." + env + ".yaml"
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}
