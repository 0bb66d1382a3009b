package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	LogLevel    string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	CookiesSecure    bool

	DefaultLocale string

	RateLimit RateLimitConfig
}

type RateLimitConfig struct {
	RedisURL       string
	LoginLimit     int
	LoginWindow    time.Duration
	RegisterLimit  int
	RegisterWindow time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	accessExpiry, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRY", "1h"))
	if err != nil {
		accessExpiry = time.Hour
	}

	refreshExpiry, err := time.ParseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"))
	if err != nil {
		refreshExpiry = 168 * time.Hour
	}

	loginWindow, err := time.ParseDuration(getEnv("LOGIN_RATE_WINDOW", "1m"))
	if err != nil {
		loginWindow = time.Minute
	}

	registerWindow, err := time.ParseDuration(getEnv("REGISTER_RATE_WINDOW", "1h"))
	if err != nil {
		registerWindow = time.Hour
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		JWTSecret:        getEnvOrPanic("JWT_SECRET"),
		JWTAccessExpiry:  accessExpiry,
		JWTRefreshExpiry: refreshExpiry,
		CookiesSecure:    getEnv("COOKIES_SECURE", "no") == "yes",

		DefaultLocale: getEnv("DEFAULT_LOCALE", "lv"),

		RateLimit: RateLimitConfig{
			RedisURL:       getEnv("REDIS_URL", ""),
			LoginLimit:     getEnvInt("LOGIN_RATE_LIMIT", 10),
			LoginWindow:    loginWindow,
			RegisterLimit:  getEnvInt("REGISTER_RATE_LIMIT", 5),
			RegisterWindow: registerWindow,
		},
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
