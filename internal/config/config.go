package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "FetchOnce/1.0 (+https://github.com/Belphemur/FetchOnce)"

// DefaultClientTimeout bounds every HTTP request when client_timeout is unset or invalid.
const DefaultClientTimeout = 5 * time.Second

type Config struct {
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "5s", "1m", etc.
	UserAgent             string `mapstructure:"user_agent"`
	MaxBodySize           int64  `mapstructure:"max_body_size"` // 0 means unlimited
	LogLevel              string `mapstructure:"log_level"`
	Metrics               struct {
		Enabled        bool   `mapstructure:"enabled"`
		Address        string `mapstructure:"address"`
		Port           int    `mapstructure:"port"`
		PushGatewayURL string `mapstructure:"push_gateway_url"`
		Job            string `mapstructure:"job"`
	} `mapstructure:"metrics"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
	Watch struct {
		Interval string `mapstructure:"interval"` // Go duration string
	} `mapstructure:"watch"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Msg("Logging configured")
	globalConfig = config
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetDefault("client_timeout", DefaultClientTimeout.String())
	viper.SetDefault("user_agent", DefaultUserAgent)
	viper.SetDefault("proxy_connection_string", "")
	viper.SetDefault("max_body_size", 0)
	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.address", "localhost")
	viper.SetDefault("metrics.port", 9090)
	viper.SetDefault("metrics.push_gateway_url", "")
	viper.SetDefault("metrics.job", "fetchonce")
	viper.SetDefault("sentry.dsn", "")
	viper.SetDefault("sentry.environment", "")
	viper.SetDefault("watch.interval", "1h")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

// Timeout returns the parsed client timeout, falling back to DefaultClientTimeout.
func (c *Config) Timeout() time.Duration {
	return parseDuration(c.ClientTimeout, DefaultClientTimeout, "client_timeout")
}

// WatchInterval returns the parsed watch interval, falling back to one hour.
func (c *Config) WatchInterval() time.Duration {
	return parseDuration(c.Watch.Interval, time.Hour, "watch.interval")
}

func parseDuration(value string, fallback time.Duration, key string) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		logger.Warn().Err(err).Str(key, value).Dur("fallback", fallback).Msg("Invalid duration, using default")
		return fallback
	}
	return d
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
