package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"o365-calendar/pkg/outlook"
)

type Config struct {
	Environment EnvironmentConfig

	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	Outlook OutlookConfig
	Sync    SyncConfig

	RateLimit RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// OutlookConfig selects and configures the service connection.
type OutlookConfig struct {
	AuthMode outlook.AuthMode

	// Basic credential. In oauth mode it is the fallback used when the
	// token is not usable.
	Username string
	Password string

	TenantID     string
	ClientID     string
	ClientSecret string
	TokenPath    string // token.json written by scripts/o365-auth

	VerifyTLS          bool
	Timeout            time.Duration
	RequestsPerSecond  float64
	Burst              int
	DirectoryCacheSize int
	DirectoryCacheTTL  time.Duration
}

// SyncConfig drives the periodic refresh. An empty Interval disables it.
type SyncConfig struct {
	Interval         string // cron spec, e.g. "@every 5m"
	Timezone         string // zone for date expressions
	EventWindowStart string // date expression, e.g. "today"
	EventWindowEnd   string // date expression, e.g. "in 30 days"
	EventCount       int
}

type RateLimitConfig struct {
	PerMin int
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/o365cal/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.ShutdownTimeout = viper.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	mode, err := outlook.ParseAuthMode(viper.GetString("outlook.auth_mode"))
	if err != nil {
		return nil, fmt.Errorf("outlook.auth_mode: %w", err)
	}
	cfg.Outlook.AuthMode = mode
	cfg.Outlook.Username = viper.GetString("outlook.username")
	cfg.Outlook.Password = expandEnvVar(viper.GetString("outlook.password"))
	cfg.Outlook.TenantID = viper.GetString("outlook.tenant_id")
	cfg.Outlook.ClientID = viper.GetString("outlook.client_id")
	cfg.Outlook.ClientSecret = expandEnvVar(viper.GetString("outlook.client_secret"))
	cfg.Outlook.TokenPath = viper.GetString("outlook.token_path")
	cfg.Outlook.VerifyTLS = viper.GetBool("outlook.verify_tls")
	cfg.Outlook.Timeout = viper.GetDuration("outlook.timeout")
	cfg.Outlook.RequestsPerSecond = viper.GetFloat64("outlook.requests_per_second")
	cfg.Outlook.Burst = viper.GetInt("outlook.burst")
	cfg.Outlook.DirectoryCacheSize = viper.GetInt("outlook.directory_cache_size")
	cfg.Outlook.DirectoryCacheTTL = viper.GetDuration("outlook.directory_cache_ttl")
	if password := viper.GetString("o365_password"); password != "" {
		cfg.Outlook.Password = password
	}
	if secret := viper.GetString("o365_client_secret"); secret != "" {
		cfg.Outlook.ClientSecret = secret
	}

	cfg.Sync.Interval = viper.GetString("sync.interval")
	cfg.Sync.Timezone = viper.GetString("sync.timezone")
	cfg.Sync.EventWindowStart = viper.GetString("sync.event_window_start")
	cfg.Sync.EventWindowEnd = viper.GetString("sync.event_window_end")
	cfg.Sync.EventCount = viper.GetInt("sync.event_count")

	cfg.RateLimit.PerMin = viper.GetInt("rate_limit.per_min")

	if err := cfg.Outlook.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c OutlookConfig) validate() error {
	switch c.AuthMode {
	case outlook.ModeLegacyBasic:
		if c.Username == "" || c.Password == "" {
			return fmt.Errorf("outlook: basic mode needs outlook.username and outlook.password")
		}
	case outlook.ModeOAuthToken:
		if c.ClientID == "" || c.TokenPath == "" {
			return fmt.Errorf("outlook: oauth mode needs outlook.client_id and outlook.token_path")
		}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.shutdown_timeout", "10s")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("outlook.auth_mode", "oauth")
	viper.SetDefault("outlook.tenant_id", "common")
	viper.SetDefault("outlook.token_path", "token.json")
	viper.SetDefault("outlook.verify_tls", true)
	viper.SetDefault("outlook.timeout", "30s")
	viper.SetDefault("outlook.requests_per_second", 4)
	viper.SetDefault("outlook.burst", 4)
	viper.SetDefault("outlook.directory_cache_size", 256)
	viper.SetDefault("outlook.directory_cache_ttl", "15m")

	viper.SetDefault("sync.interval", "@every 5m")
	viper.SetDefault("sync.timezone", "UTC")
	viper.SetDefault("sync.event_count", outlook.DefaultEventCount)

	viper.SetDefault("rate_limit.per_min", 120)
}

// expandEnvVar resolves "${NAME}" placeholders for secrets kept out of the file.
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}
