package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	BackendURL     string
	BackendTimeout time.Duration

	// JWTSecret is optional. Without it tokens are only checked for expiry,
	// the backend stays the one that verifies signatures.
	JWTSecret string

	RedisURL   string
	SessionTTL time.Duration
	WizardTTL  time.Duration
	CacheTTL   time.Duration

	LogLevel  string
	LogFormat string

	AuditDBUrl string
	Timezone   string

	PublicRateRPS   float64
	PublicRateBurst int

	DefaultBusinessID int64
	CookieSecure      bool
}

func Load() *Config {
	// .env is optional; real environment wins.
	_ = godotenv.Load()

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		BackendURL:        strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:5000"), "/"),
		BackendTimeout:    getDuration("BACKEND_TIMEOUT", 10*time.Second),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		SessionTTL:        getDuration("SESSION_TTL", 24*time.Hour),
		WizardTTL:         getDuration("WIZARD_TTL", 2*time.Hour),
		CacheTTL:          getDuration("CACHE_TTL", 0),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		AuditDBUrl:        getEnv("AUDIT_DATABASE_URL", ""),
		Timezone:          getEnv("APP_TIMEZONE", "Europe/Kyiv"),
		PublicRateRPS:     getFloat("PUBLIC_RATE_RPS", 5),
		PublicRateBurst:   getInt("PUBLIC_RATE_BURST", 10),
		DefaultBusinessID: int64(getInt("DEFAULT_BUSINESS_ID", 1)),
		CookieSecure:      getBool("COOKIE_SECURE", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
