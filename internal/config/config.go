package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Discord  DiscordConfig
	Cache    CacheConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level    string
	Encoding string
}

// AuthConfig defines token verification parameters.
type AuthConfig struct {
	JWTSecret       string
	TokenTTLMinutes int
}

// CacheConfig controls list caching.
type CacheConfig struct {
	TTLSeconds int
}

// DiscordMode selects how embeds reach the chat platform.
type DiscordMode string

const (
	DiscordModeBot      DiscordMode = "bot"
	DiscordModeWebhook  DiscordMode = "webhook"
	DiscordModeDryRun   DiscordMode = "dryrun"
	DiscordModeDisabled DiscordMode = "disabled"
)

// DiscordConfig holds chat platform credentials and channel routing.
type DiscordConfig struct {
	Mode           DiscordMode
	BotToken       string
	ChannelsFile   string
	Channels       map[string]string
	ProxyKeyHash   string
	RequestTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	mode := DiscordMode(strings.ToLower(getEnv("DISCORD_MODE", string(DiscordModeDryRun))))
	switch mode {
	case DiscordModeBot, DiscordModeWebhook, DiscordModeDryRun, DiscordModeDisabled:
	default:
		return nil, fmt.Errorf("invalid DISCORD_MODE %q", mode)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "forca-tatica-portal"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("AUTH_JWT_SECRET", "dev-secret"),
			TokenTTLMinutes: getEnvAsInt("AUTH_TOKEN_TTL_MINUTES", 60*24),
		},
		Cache: CacheConfig{
			TTLSeconds: getEnvAsInt("CACHE_TTL_SECONDS", 60),
		},
		Discord: DiscordConfig{
			Mode:           mode,
			BotToken:       os.Getenv("DISCORD_BOT_TOKEN"),
			ChannelsFile:   os.Getenv("DISCORD_CHANNELS_FILE"),
			ProxyKeyHash:   os.Getenv("DISCORD_PROXY_KEY_HASH"),
			RequestTimeout: time.Duration(getEnvAsInt("DISCORD_REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,
		},
	}

	channels, err := LoadChannels(cfg.Discord.ChannelsFile)
	if err != nil {
		return nil, err
	}
	for _, kind := range channelKinds {
		if val := os.Getenv("DISCORD_CHANNEL_" + strings.ToUpper(kind)); val != "" {
			channels[kind] = val
		}
	}
	cfg.Discord.Channels = channels

	if mode == DiscordModeBot && cfg.Discord.BotToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN required when DISCORD_MODE=bot")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
