package config

import (
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends understood by the server.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	StorageBackend string
	SQLitePath     string
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	FrontendBaseURL   string

	// Rate limits in ulule/limiter format, e.g. "100-M".
	APIRateLimit   string
	LoginRateLimit string

	// Messaging. An empty AMQPURL disables event publishing.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	SummaryCacheSize int
	SummaryCacheTTL  time.Duration

	// Benefit projection parameters used for statements.
	Projection ProjectionConfig
}

// ProjectionConfig holds the assumptions behind projected benefits.
type ProjectionConfig struct {
	AnnualReturnRate     float64
	InflationRate        float64
	RetirementAge        int
	PensionDurationYears int
	DefaultMemberAge     int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("STORAGE_BACKEND", StoragePostgres)
	viper.SetDefault("SQLITE_PATH", "data/pension.db")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "pension-management-app")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("API_RATE_LIMIT", "300-M")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "pension.events")
	viper.SetDefault("AMQP_QUEUE", "pension.contributions")
	viper.SetDefault("SUMMARY_CACHE_SIZE", 1024)
	viper.SetDefault("SUMMARY_CACHE_TTL", "30s")
	viper.SetDefault("PROJECTION_RETURN_RATE", 0.08)
	viper.SetDefault("PROJECTION_INFLATION_RATE", 0.03)
	viper.SetDefault("RETIREMENT_AGE", 60)
	viper.SetDefault("PENSION_DURATION_YEARS", 20)
	viper.SetDefault("DEFAULT_MEMBER_AGE", 30)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.StorageBackend = strings.ToLower(viper.GetString("STORAGE_BACKEND"))
	if cfg.StorageBackend != StoragePostgres && cfg.StorageBackend != StorageSQLite {
		log.Printf("Warning: Invalid value for STORAGE_BACKEND ('%s'). Defaulting to %s.\n", cfg.StorageBackend, StoragePostgres)
		cfg.StorageBackend = StoragePostgres
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" && cfg.StorageBackend == StoragePostgres {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.SQLitePath = viper.GetString("SQLITE_PATH")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	cfg.JWTExpiryDuration = parseDurationOrDefault("JWT_EXPIRY_DURATION", jwtExpiryStr, time.Hour)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "pension-management-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.SummaryCacheTTL = parseDurationOrDefault("SUMMARY_CACHE_TTL", viper.GetString("SUMMARY_CACHE_TTL"), 30*time.Second)
	cfg.SummaryCacheSize = viper.GetInt("SUMMARY_CACHE_SIZE")
	if cfg.SummaryCacheSize <= 0 {
		log.Printf("Warning: Invalid value for SUMMARY_CACHE_SIZE (%d). Defaulting to 1024.\n", cfg.SummaryCacheSize)
		cfg.SummaryCacheSize = 1024
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.APIRateLimit = viper.GetString("API_RATE_LIMIT")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.AMQPURL = viper.GetString("AMQP_URL")
	cfg.AMQPExchange = viper.GetString("AMQP_EXCHANGE")
	cfg.AMQPQueue = viper.GetString("AMQP_QUEUE")

	cfg.Projection = ProjectionConfig{
		AnnualReturnRate:     viper.GetFloat64("PROJECTION_RETURN_RATE"),
		InflationRate:        viper.GetFloat64("PROJECTION_INFLATION_RATE"),
		RetirementAge:        viper.GetInt("RETIREMENT_AGE"),
		PensionDurationYears: viper.GetInt("PENSION_DURATION_YEARS"),
		DefaultMemberAge:     viper.GetInt("DEFAULT_MEMBER_AGE"),
	}
	if cfg.Projection.PensionDurationYears <= 0 {
		log.Println("Warning: PENSION_DURATION_YEARS must be positive. Defaulting to 20.")
		cfg.Projection.PensionDurationYears = 20
	}
	if cfg.Projection.InflationRate <= -1 {
		log.Println("Warning: PROJECTION_INFLATION_RATE must be greater than -1. Defaulting to 0.03.")
		cfg.Projection.InflationRate = 0.03
	}

	return cfg, nil
}

func parseDurationOrDefault(key, value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		if value != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, value, fallback.String())
		}
		return fallback
	}
	return d
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
