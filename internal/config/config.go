package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config holds all configuration values from environment.
type Config struct {
	AppPort        string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioSSL       bool

	// Public addresses
	PublicBaseURL  string // origin of the /f and /qr routes, embedded in QR codes
	ViewerBaseURL  string // AR viewer origin; empty keeps redirects relative
	MediaPublicURL string // CDN or bucket base for model file URLs

	// QR image cache; the Redis tier is off when RedisHost is empty
	RedisHost       string
	RedisPort       string
	QRCacheTTL      time.Duration
	QRCacheMaxBytes int64

	ResolveTimeout time.Duration
	ViewRateLimit  int // view events per IP per minute

	LogLevel  string
	LogPretty bool
}

// LoadEnvFile loads path, or ".env" when path is empty, without
// overriding variables already set. A missing file is not an error.
func LoadEnvFile(path string) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", path).Msg("could not load env file")
		}
		return
	}
	log.Debug().Str("file", path).Msg("loaded env file")
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var err error
	cfg := &Config{
		AppPort:         getEnv("STORAGE_PORT", "8080"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		MinioEndpoint:   os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:  os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:  os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:     os.Getenv("MINIO_BUCKET"),
		PublicBaseURL:   strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		ViewerBaseURL:   strings.TrimRight(os.Getenv("VIEWER_BASE_URL"), "/"),
		MediaPublicURL:  strings.TrimRight(os.Getenv("MEDIA_PUBLIC_URL"), "/"),
		RedisHost:       os.Getenv("REDIS_HOST"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		QRCacheMaxBytes: 64 << 20,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
	if cfg.MinioSSL, err = boolEnv("MINIO_SSL", false); err != nil {
		return nil, err
	}
	if cfg.LogPretty, err = boolEnv("LOG_PRETTY", false); err != nil {
		return nil, err
	}
	if cfg.ResolveTimeout, err = durationEnv("RESOLVE_TIMEOUT", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.QRCacheTTL, err = durationEnv("QR_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ViewRateLimit, err = intEnv("VIEW_RATE_LIMIT", 60); err != nil {
		return nil, err
	}

	// Basic validation for required fields
	if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("database configuration is incomplete")
	}
	return cfg, nil
}

// RequireMinio reports whether media storage is configured.
func (c *Config) RequireMinio() error {
	if c.MinioEndpoint == "" || c.MinioAccessKey == "" || c.MinioSecretKey == "" || c.MinioBucket == "" {
		return fmt.Errorf("minio configuration is incomplete")
	}
	return nil
}

// RedisEnabled reports whether the shared QR cache tier is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// ConnectDatabase initializes a GORM database connection to PostgreSQL.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %v", key, err)
	}
	return b, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s value %q", key, v)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s value %q", key, v)
	}
	return n, nil
}
