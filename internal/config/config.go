package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr = ":8080"

	defaultResetTokenTTL = 2 * time.Hour

	defaultLoginThrottleMaxFailures = 10
	defaultLoginThrottleWindow      = 15 * time.Minute

	defaultRequestExpiryAfter    = 30 * 24 * time.Hour
	defaultRequestExpiryInterval = time.Hour
)

type Config struct {
	DatabaseURL string
	HTTPAddr    string
	MetricsAddr string
	// BaseURL prefixes links that leave the site, such as password reset
	// URLs. Empty means relative links.
	BaseURL          string
	AuthCookieSecure bool
	DevSeedAdmin     bool

	ResetTokenSecret string
	ResetTokenTTL    time.Duration

	LoginThrottleRedisAddr   string
	LoginThrottleMaxFailures int
	LoginThrottleWindow      time.Duration

	RequestExpiryAfter    time.Duration
	RequestExpiryInterval time.Duration
}

type LoadOptions struct {
	RequireDatabaseURL bool
}

func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireDatabaseURL: true})
}

func LoadOptionalDB() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireDatabaseURL: false})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		HTTPAddr:                 getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		MetricsAddr:              strings.TrimSpace(os.Getenv("METRICS_ADDR")),
		BaseURL:                  strings.TrimRight(strings.TrimSpace(os.Getenv("BASE_URL")), "/"),
		AuthCookieSecure:         getenvBoolDefault("AUTH_COOKIE_SECURE", false),
		DevSeedAdmin:             getenvBoolDefault("DEV_SEED_ADMIN", false),
		ResetTokenSecret:         os.Getenv("RESET_TOKEN_SECRET"),
		ResetTokenTTL:            getenvDurationDefault("RESET_TOKEN_TTL", defaultResetTokenTTL),
		LoginThrottleRedisAddr:   strings.TrimSpace(os.Getenv("LOGIN_THROTTLE_REDIS_ADDR")),
		LoginThrottleMaxFailures: getenvIntDefault("LOGIN_THROTTLE_MAX_FAILURES", defaultLoginThrottleMaxFailures),
		LoginThrottleWindow:      getenvDurationDefault("LOGIN_THROTTLE_WINDOW", defaultLoginThrottleWindow),
		RequestExpiryAfter:       getenvDurationDefault("REQUEST_EXPIRY_AFTER", defaultRequestExpiryAfter),
		RequestExpiryInterval:    getenvDurationDefault("REQUEST_EXPIRY_INTERVAL", defaultRequestExpiryInterval),
	}

	if opts.RequireDatabaseURL && cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func getenvBoolDefault(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getenvDurationDefault falls back to def for unset, unparsable and
// non-positive values; a broken override must not stop the process.
func getenvDurationDefault(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
