// Package config reads process settings from the environment, optionally seeded from .env.dev.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort  string `mapstructure:"app_port"`
	LogLevel string `mapstructure:"log_level"`

	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBName     string `mapstructure:"db_name"`

	JWTSecret            string        `mapstructure:"jwt_secret"`
	AccessTokenTTL       time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL      time.Duration `mapstructure:"refresh_token_ttl"`
	InternalSharedSecret string        `mapstructure:"internal_shared_secret"`

	NatsURL string `mapstructure:"nats_url"`

	StorageDriver  string `mapstructure:"storage_driver"`
	S3Endpoint     string `mapstructure:"s3_endpoint"`
	S3Bucket       string `mapstructure:"s3_bucket_name"`
	S3UsePathStyle bool   `mapstructure:"s3_use_path_style"`
	AWSRegion      string `mapstructure:"aws_region"`
	AWSAccessKey   string `mapstructure:"aws_access_key_id"`
	AWSSecretKey   string `mapstructure:"aws_secret_access_key"`
	MediaRoot      string `mapstructure:"media_root"`
	MediaBaseURL   string `mapstructure:"media_base_url"`

	PopplerPath    string        `mapstructure:"poppler_path"`
	PreviewTimeout time.Duration `mapstructure:"preview_timeout"`

	RateLimitMax        int           `mapstructure:"rate_limit_max"`
	RateLimitExpiration time.Duration `mapstructure:"rate_limit_expiration"`

	AppEnv          string  `mapstructure:"app_env"`
	OtelEndpoint    string  `mapstructure:"otel_exporter_otlp_endpoint"`
	OtelSampleRatio float64 `mapstructure:"otel_sample_ratio"`

	APNSAuthKeyPath string `mapstructure:"apns_auth_key_path"`
	APNSKeyID       string `mapstructure:"apns_key_id"`
	APNSTeamID      string `mapstructure:"apns_team_id"`
	APNSTopic       string `mapstructure:"apns_topic"`
	APNSMode        string `mapstructure:"apns_mode"`
}

var defaults = map[string]any{
	"app_port":                    "8001",
	"log_level":                   "info",
	"db_port":                     "5432",
	"access_token_ttl":            15 * time.Minute,
	"refresh_token_ttl":           30 * 24 * time.Hour,
	"nats_url":                    "nats://localhost:4222",
	"storage_driver":              "local",
	"aws_region":                  "us-east-1",
	"media_root":                  "media",
	"media_base_url":              "/media",
	"poppler_path":                "pdftoppm",
	"preview_timeout":             15 * time.Second,
	"rate_limit_max":              60,
	"rate_limit_expiration":       time.Minute,
	"app_env":                     "development",
	"otel_exporter_otlp_endpoint": "jaeger:4317",
	"otel_sample_ratio":           1.0,
	"apns_mode":                   "development",
}

// Load reads .env.dev when present and then the environment. Keys are the
// upper-cased mapstructure tags, e.g. DB_HOST or PREVIEW_TIMEOUT.
func Load() (*Config, error) {
	if err := godotenv.Load(".env.dev"); err != nil {
		log.Println("No .env.dev file found, reading from environment variables")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	// AutomaticEnv only feeds Unmarshal for keys viper already knows about.
	for _, key := range envOnlyKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unable to decode: %w", err)
	}

	return &cfg, nil
}

var envOnlyKeys = []string{
	"db_user", "db_password", "db_host", "db_name",
	"jwt_secret", "internal_shared_secret",
	"s3_endpoint", "s3_bucket_name", "s3_use_path_style",
	"aws_access_key_id", "aws_secret_access_key",
	"apns_auth_key_path", "apns_key_id", "apns_team_id", "apns_topic",
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.InternalSharedSecret == "" {
		missing = append(missing, "INTERNAL_SHARED_SECRET")
	}
	if c.StorageDriver == "s3" && c.S3Bucket == "" {
		missing = append(missing, "S3_BUCKET_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing %s", strings.Join(missing, ", "))
	}
	return nil
}
