package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Name        string
	Version     string
	Environment string
	Server      ServerConfig
	Redis       RedisConfig
	JWT         JWTConfig
	CORS        CORSConfig
	SKU         SKUConfig
	Tracing     TracingConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	PoolSize int
}

type JWTConfig struct {
	SecretKey string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// SKUConfig holds generation defaults and host behaviour. The defaults are
// used for any option missing from the settings store.
type SKUConfig struct {
	DefaultSimpleMode      string
	DefaultVariantMode     string
	DefaultSpaceHandling   string
	DefaultSeparator       string
	DefaultForceSort       bool
	Uppercase              bool
	LockTTL                time.Duration
	BulkConcurrency        int
	SettingsKey            string
	RunMigrationsOnStartup bool
}

type TracingConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	JaegerEndpoint string
	SampleRate     float64
}

type LogConfig struct {
	Environment string
	Level       string
	File        string
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int
	Compress    bool
}

// Load loads configuration from environment variables
func Load() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")

	return &Config{
		Name:        getEnv("NAME", "sku-service"),
		Version:     getEnv("VERSION", "1.0.0"),
		Environment: environment,
		Server: ServerConfig{
			Port:         getEnv("PORT", "1012"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			PoolSize: getIntEnv("REDIS_POOL_SIZE", 10),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", "your-256-bit-secret"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		SKU: SKUConfig{
			DefaultSimpleMode:      getEnv("SKU_SIMPLE_MODE", "slug"),
			DefaultVariantMode:     getEnv("SKU_VARIANT_MODE", "attributes"),
			DefaultSpaceHandling:   getEnv("SKU_ATTRIBUTE_SPACES", "keep"),
			DefaultSeparator:       getEnv("SKU_SEPARATOR", "-"),
			DefaultForceSort:       getBoolEnv("SKU_FORCE_ATTRIBUTE_SORT", false),
			Uppercase:              getBoolEnv("SKU_UPPERCASE", false),
			LockTTL:                getDurationEnv("SKU_LOCK_TTL", 30*time.Second),
			BulkConcurrency:        getIntEnv("SKU_BULK_CONCURRENCY", 8),
			SettingsKey:            getEnv("SKU_SETTINGS_KEY", "sku_generator:options"),
			RunMigrationsOnStartup: getBoolEnv("SKU_MIGRATE_ON_STARTUP", true),
		},
		Tracing: TracingConfig{
			Enabled:        getBoolEnv("TRACING_ENABLED", true),
			ServiceName:    getEnv("TRACING_SERVICE_NAME", "sku-service"),
			ServiceVersion: getEnv("TRACING_SERVICE_VERSION", "1.0.0"),
			JaegerEndpoint: getEnv("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
			SampleRate:     getFloatEnv("TRACING_SAMPLE_RATE", 1.0),
		},
		Log: LogConfig{
			Environment: environment,
			Level:       getEnv("LOG_LEVEL", ""),
			File:        getEnv("LOG_FILE", ""),
			MaxSizeMB:   getIntEnv("LOG_MAX_SIZE_MB", 100),
			MaxBackups:  getIntEnv("LOG_MAX_BACKUPS", 7),
			MaxAgeDays:  getIntEnv("LOG_MAX_AGE_DAYS", 30),
			Compress:    getBoolEnv("LOG_COMPRESS", true),
		},
	}
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
