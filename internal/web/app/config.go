package app

import (
	"os"
	"strconv"
	"time"
)

// Session backend selection.
const (
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"
)

type Config struct {
	DatabaseFile   string // Optional: path to SQLite database file (default: ./lyrictype.db)
	PepperFile     string // Optional: path to file containing pepper for password hashing (default: ./pepper)
	RememberSecret string // Required in prod: HMAC secret for the remember-me cookie
	CookieSecure   bool   // Optional: mark cookies Secure (default: true outside dev)
	StaticDir      string // Optional: on-disk directory for avatars, covers and audio

	SessionBackend string // Optional: session store backend (sqlite, redis) (default: sqlite)
	RedisAddr      string // Optional: redis address (default: localhost:6379)
	RedisPassword  string // Optional: redis password
	RedisDB        int    // Optional: redis database number (default: 0)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-session cleanup interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		DatabaseFile:         getEnvOrDefault("LT_DATABASE_FILE", "lyrictype.db"),
		PepperFile:           getEnvOrDefault("LT_PEPPER_FILE", "pepper"),
		RememberSecret:       os.Getenv("LT_REMEMBER_SECRET"),
		StaticDir:            os.Getenv("LT_STATIC_DIR"),
		SessionBackend:       getEnvOrDefault("LT_SESSION_BACKEND", SessionBackendSQLite),
		RedisAddr:            getEnvOrDefault("LT_REDIS_ADDR", "localhost:6379"),
		RedisPassword:        os.Getenv("LT_REDIS_PASSWORD"),
		RedisDB:              getEnvIntOrDefault("LT_REDIS_DB", 0),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	// Dev runs over plain HTTP; everywhere else the cookies are Secure.
	cfg.CookieSecure = getEnvBoolOrDefault("LT_COOKIE_SECURE", cfg.Env != "dev")

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
