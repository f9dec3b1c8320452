package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Environment string

const (
	EnvDevelopment   Environment = "development"
	EnvProduction    Environment = "production"
	EnvPreproduction Environment = "preproduction"
	EnvStaging       Environment = "staging"
	EnvTest          Environment = "test"
)

type LogLevel string

const (
	LogLevelDebug    LogLevel = "DEBUG"
	LogLevelInfo     LogLevel = "INFO"
	LogLevelWarning  LogLevel = "WARNING"
	LogLevelError    LogLevel = "ERROR"
	LogLevelCritical LogLevel = "CRITICAL"
)

type Settings struct {
	Environment Environment
	LogLevel    LogLevel
	Debug       bool

	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Server
	Port        string
	CORSOrigins string
}

var (
	loadOnce sync.Once
	settings *Settings
)

// Load returns the process-wide settings. The environment is read once;
// every subsequent call returns the same instance.
func Load() *Settings {
	loadOnce.Do(func() {
		settings = loadFromEnv()
	})
	return settings
}

func loadFromEnv() *Settings {
	// Optional dotfile; real deployments set variables directly.
	_ = godotenv.Load()

	return &Settings{
		Environment: Environment(getEnv("ENVIRONMENT", string(EnvDevelopment))),
		LogLevel:    LogLevel(getEnv("LOG_LEVEL", string(LogLevelInfo))),
		Debug:       getEnvBool("DEBUG", false),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "syncit"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

// Validate checks that the connection parameters can compose a valid URI.
// A malformed configuration is fatal at startup, not recoverable per-request.
func (s *Settings) Validate() error {
	switch s.Environment {
	case EnvDevelopment, EnvProduction, EnvPreproduction, EnvStaging, EnvTest:
	default:
		return fmt.Errorf("unknown environment %q", s.Environment)
	}
	switch s.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError, LogLevelCritical:
	default:
		return fmt.Errorf("unknown log level %q", s.LogLevel)
	}
	if s.DBHost == "" {
		return fmt.Errorf("DB_HOST must not be empty")
	}
	if s.DBPort < 1 || s.DBPort > 65535 {
		return fmt.Errorf("DB_PORT %d out of range", s.DBPort)
	}
	if s.DBUser == "" {
		return fmt.Errorf("DB_USER must not be empty")
	}
	if s.DBName == "" {
		return fmt.Errorf("DB_NAME must not be empty")
	}
	return nil
}

// DSN composes the Postgres connection string from the DB settings.
func (s *Settings) DSN() string {
	return "host=" + s.DBHost +
		" user=" + s.DBUser +
		" password=" + s.DBPassword +
		" dbname=" + s.DBName +
		" port=" + strconv.Itoa(s.DBPort) +
		" sslmode=" + s.DBSSLMode +
		" TimeZone=UTC"
}

// URI composes the postgresql:// form of the connection parameters.
func (s *Settings) URI() string {
	return "postgresql://" + s.DBUser + ":" + s.DBPassword + "@" +
		net.JoinHostPort(s.DBHost, strconv.Itoa(s.DBPort)) + "/" + s.DBName +
		"?sslmode=" + s.DBSSLMode
}

// SlogLevel maps the configured level to slog. The debug flag wins.
func (s *Settings) SlogLevel() slog.Level {
	if s.Debug {
		return slog.LevelDebug
	}
	switch s.LogLevel {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError, LogLevelCritical:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}
