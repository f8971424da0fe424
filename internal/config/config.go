package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone names must resolve on minimal images
)

type Config struct {
	Server  ServerConfig
	Feed    FeedConfig
	Worker  WorkerConfig
	DB      DatabaseConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host      string
	Port      int
	RateLimit int // requests per second, global
}

type FeedConfig struct {
	Enabled      bool
	URL          string
	ProxyPrefix  string // prepended to the url-escaped feed URL when set
	PollInterval time.Duration
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Timezone     string
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type DatabaseConfig struct {
	Driver string // sqlite or postgres
	DSN    string
}

type RedisConfig struct {
	URL         string // empty disables the redis sink
	SnapshotKey string
	Channel     string
	TTL         time.Duration
}

type KafkaConfig struct {
	Brokers []string // empty disables the kafka sink
	Topic   string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:      getEnv("SERVER_HOST", "localhost"),
			Port:      getEnvInt("SERVER_PORT", 8080),
			RateLimit: getEnvInt("RATE_LIMIT_RPS", 5),
		},
		Feed: FeedConfig{
			Enabled:      getEnvBool("FEED_ENABLED", true),
			URL:          getEnv("FEED_URL", "https://sachet.ndma.gov.in/cap_public_website/rss/rss_india.xml"),
			ProxyPrefix:  getEnv("FEED_PROXY_PREFIX", ""),
			PollInterval: getEnvDuration("FEED_POLL_INTERVAL", 10*time.Minute),
			Timeout:      getEnvDuration("FEED_TIMEOUT", 15*time.Second),
			RetryMax:     getEnvInt("FEED_RETRY_MAX", 3),
			RetryWaitMin: getEnvDuration("FEED_RETRY_WAIT_MIN", time.Second),
			RetryWaitMax: getEnvDuration("FEED_RETRY_WAIT_MAX", 10*time.Second),
			Timezone:     getEnv("FEED_TIMEZONE", "Asia/Kolkata"),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		DB: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "sqlite"),
			DSN:    getEnv("DB_DSN", "./data/sachet-alerts.db"),
		},
		Redis: RedisConfig{
			URL:         getEnv("REDIS_URL", ""),
			SnapshotKey: getEnv("REDIS_SNAPSHOT_KEY", "sachet:disasters:latest"),
			Channel:     getEnv("REDIS_CHANNEL", "sachet:disasters:updates"),
			TTL:         getEnvDuration("REDIS_TTL", time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS"),
			Topic:   getEnv("KAFKA_TOPIC", "sachet.disasters"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimit < 1 {
		return fmt.Errorf("rate limit must be at least 1 request per second")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Feed.URL == "" {
		return fmt.Errorf("feed URL is required")
	}
	if c.Feed.PollInterval < time.Minute {
		return fmt.Errorf("feed poll interval must be at least 1 minute")
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("feed timeout must be positive")
	}
	if c.Feed.RetryMax < 0 {
		return fmt.Errorf("invalid feed retry max: %d", c.Feed.RetryMax)
	}
	if _, err := time.LoadLocation(c.Feed.Timezone); err != nil {
		return fmt.Errorf("invalid feed timezone %q: %w", c.Feed.Timezone, err)
	}

	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}

	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.DB.Driver)
	}

	return nil
}

// Location is the timezone that defines "today" for the live filter.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Feed.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FetchURL is the URL actually requested, routed through the proxy prefix
// when one is configured.
func (c *FeedConfig) FetchURL() string {
	if c.ProxyPrefix == "" {
		return c.URL
	}
	return c.ProxyPrefix + url.QueryEscape(c.URL)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(val, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
