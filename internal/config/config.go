package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMySQL  = "mysql"
)

type MySQL struct {
	User     string
	Password string
	Host     string
	Port     string
	Database string
}

type Config struct {
	Port string

	StorageBackend string
	RedisAddr      string
	RedisDB        int
	RedisPrefix    string
	MySQL          MySQL

	RabbitMQURL      string
	RabbitMQExchange string

	GenAIKey        string
	GenAIModel      string
	GenAIBaseURL    string
	GenAITimeout    time.Duration
	GenAIRatePerSec float64
	GenAIBurst      int

	CheckoutDelay time.Duration

	AdminUser     string
	AdminPassword string

	LogLevel    string
	LogFormat   string
	SeedCatalog bool
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			logrus.WithError(err).Warn("error loading .env file")
		} else {
			logrus.Info(".env file loaded")
		}
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getInt("REDIS_DB", 0),
		RedisPrefix:    getEnv("REDIS_PREFIX", "storefront:"),
		MySQL: MySQL{
			User:     getEnv("MYSQL_USER", "root"),
			Password: getEnv("MYSQL_PASSWORD", ""),
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "storefront"),
		},

		RabbitMQURL:      getEnv("RABBITMQ_URL", ""),
		RabbitMQExchange: getEnv("RABBITMQ_EXCHANGE", "storefront.exchange"),

		GenAIKey:        getEnv("API_KEY", ""),
		GenAIModel:      getEnv("GENAI_MODEL", "gemini-2.5-flash"),
		GenAIBaseURL:    getEnv("GENAI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GenAITimeout:    getDuration("GENAI_TIMEOUT", 15*time.Second),
		GenAIRatePerSec: getFloat("GENAI_RATE_PER_SEC", 1),
		GenAIBurst:      getInt("GENAI_BURST", 2),

		CheckoutDelay: getDuration("CHECKOUT_DELAY", 2500*time.Millisecond),

		AdminUser:     getEnv("ADMIN_USER", "xrrahul"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "xr123"),

		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		SeedCatalog: getBool("SEED_CATALOG", true),
	}
}

// NewLogger builds the process logger from the log settings.
func (c *Config) NewLogger() *logrus.Logger {
	l := logrus.New()
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		l.SetLevel(lvl)
	} else {
		l.WithField("level", c.LogLevel).Warn("unknown log level, using info")
	}
	if strings.EqualFold(c.LogFormat, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.WithField("key", key).Warn("invalid integer, using default")
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logrus.WithField("key", key).Warn("invalid number, using default")
		return fallback
	}
	return f
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getDuration accepts Go duration strings ("2s") or plain milliseconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	logrus.WithField("key", key).Warn("invalid duration, using default")
	return fallback
}
