package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"-"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// Timezone is the calendar used for "today" and day buckets (IANA name, empty = system local)
	Timezone string `toml:"timezone"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	ApplySchema    bool   `toml:"apply_schema"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// http
	AllowedOrigins []string `toml:"allowed_origins"`

	// rate limits, requests per client IP per 15 minute window
	APIRateLimit          int `toml:"api_rate_limit"`
	TelegramAuthRateLimit int `toml:"telegram_auth_rate_limit"`
	AdminLoginRateLimit   int `toml:"admin_login_rate_limit"`
	TrainerApplyRateLimit int `toml:"trainer_apply_rate_limit"`

	// auth
	UserTokenTTLHours  int `toml:"user_token_ttl_hours"`
	AdminTokenTTLHours int `toml:"admin_token_ttl_hours"`
	InitDataMaxAgeSec  int `toml:"init_data_max_age_sec"`

	// fatsecret
	FatSecretAPIURL   string `toml:"fatsecret_api_url"`
	FatSecretTokenURL string `toml:"fatsecret_token_url"`

	// telegram
	MiniAppURL string `toml:"mini_app_url"`

	// FrontendURL receives redirects for non-API paths
	FrontendURL string `toml:"frontend_url"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
		env = "development"
	case "prod", "production":
		cfg = t.Production
		env = "production"
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.Environment = env
	return cfg, nil
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.APIRateLimit == 0 {
		c.APIRateLimit = 600
	}
	if c.TelegramAuthRateLimit == 0 {
		c.TelegramAuthRateLimit = 100
	}
	if c.AdminLoginRateLimit == 0 {
		c.AdminLoginRateLimit = 10
	}
	if c.TrainerApplyRateLimit == 0 {
		c.TrainerApplyRateLimit = 20
	}
	if c.UserTokenTTLHours == 0 {
		c.UserTokenTTLHours = 30 * 24
	}
	if c.AdminTokenTTLHours == 0 {
		c.AdminTokenTTLHours = 8
	}
	if c.InitDataMaxAgeSec == 0 {
		c.InitDataMaxAgeSec = 3600
	}
	if c.FatSecretAPIURL == "" {
		c.FatSecretAPIURL = "https://platform.fatsecret.com/rest/server.api"
	}
	if c.FatSecretTokenURL == "" {
		c.FatSecretTokenURL = "https://oauth.fatsecret.com/connect/token"
	}
}

// Location resolves the configured calendar timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) UserTokenTTL() time.Duration {
	return time.Duration(c.UserTokenTTLHours) * time.Hour
}

func (c *Config) AdminTokenTTL() time.Duration {
	return time.Duration(c.AdminTokenTTLHours) * time.Hour
}

func (c *Config) InitDataMaxAge() time.Duration {
	return time.Duration(c.InitDataMaxAgeSec) * time.Second
}
