// AngelaMos | 2026
// config.go

package config

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const defaultSecret = "change-me-in-production"

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
	Sentry    SentryConfig    `koanf:"sentry"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Upload    UploadConfig    `koanf:"upload"`
	Model     ModelConfig     `koanf:"model"`
	Catalog   CatalogConfig   `koanf:"catalog"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	Debug       bool   `koanf:"debug"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	DrainDelay      time.Duration `koanf:"drain_delay"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

// RedisConfig is optional. An empty URL keeps revocations and rate limits
// in process.
type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	Secret            string        `koanf:"secret"`
	Algorithm         string        `koanf:"algorithm"`
	AccessTokenExpire time.Duration `koanf:"access_token_expire"`
	Issuer            string        `koanf:"issuer"`
	Audience          string        `koanf:"audience"`
}

type RateLimitConfig struct {
	Requests        int           `koanf:"requests"`
	Window          time.Duration `koanf:"window"`
	Burst           int           `koanf:"burst"`
	AnalyzeRequests int           `koanf:"analyze_requests"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

type SentryConfig struct {
	DSN        string  `koanf:"dsn"`
	SampleRate float64 `koanf:"sample_rate"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

type UploadConfig struct {
	Dir               string   `koanf:"dir"`
	MaxBytes          int64    `koanf:"max_bytes"`
	MaxPixels         int64    `koanf:"max_pixels"`
	AllowedExtensions []string `koanf:"allowed_extensions"`
	PublicPath        string   `koanf:"public_path"`
}

type ModelConfig struct {
	Path          string `koanf:"path"`
	FallbackPath  string `koanf:"fallback_path"`
	LabelsPath    string `koanf:"labels_path"`
	MetadataPath  string `koanf:"metadata_path"`
	Threads       int    `koanf:"threads"`
	TopK          int    `koanf:"top_k"`
	InputWidth    int    `koanf:"input_width"`
	InputHeight   int    `koanf:"input_height"`
	Preprocessing string `koanf:"preprocessing"`
	ChannelOrder  string `koanf:"channel_order"`
}

type CatalogConfig struct {
	SeedOnStart bool `koanf:"seed_on_start"`
}

var (
	cfg  *Config
	once sync.Once
)

// Load parses the configuration once per process. Later calls return the
// cached result regardless of configPath.
func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		cfg, loadErr = Parse(configPath)
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

// Parse layers defaults, the optional YAML file and the environment, then
// validates the result.
func Parse(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	out := &Config{}
	if err := k.Unmarshal("", out); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if out.App.Debug {
		out.Log.Level = "debug"
	}

	if err := validate(out); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return out, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "GlowGuard API",
		"app.version":     "1.0.0",
		"app.environment": "development",
		"app.debug":       false,

		"server.host":             "0.0.0.0",
		"server.port":             8000,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "60s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",
		"server.drain_delay":      "5s",

		"database.url":                "sqlite://glowguard.db",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 2,

		"jwt.secret":              defaultSecret,
		"jwt.algorithm":           "HS256",
		"jwt.access_token_expire": "30m",
		"jwt.issuer":              "glowguard",
		"jwt.audience":            "glowguard-app",

		"rate_limit.requests":         100,
		"rate_limit.window":           "1m",
		"rate_limit.burst":            20,
		"rate_limit.analyze_requests": 10,

		"cors.allowed_origins": []string{
			"http://localhost:3000",
			"http://localhost:8081",
		},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "glowguard-api",

		"sentry.sample_rate": 1.0,

		"metrics.enabled": true,
		"metrics.path":    "/metrics",

		"upload.dir":        "uploads",
		"upload.max_bytes":  5 * 1024 * 1024,
		"upload.max_pixels": 16_000_000,
		"upload.allowed_extensions": []string{
			"jpg", "jpeg", "png", "gif", "webp",
		},
		"upload.public_path": "/uploads",

		"model.path":          "models/skin_disease_model.tflite",
		"model.fallback_path": "models/skin_disease_model_baseline.tflite",
		"model.labels_path":   "models/class_labels.json",
		"model.metadata_path": "models/metadata.json",
		"model.threads":       2,
		"model.top_k":         3,
		"model.input_width":   224,
		"model.input_height":  224,
		"model.preprocessing": "baseline",
		"model.channel_order": "RGB",

		"catalog.seed_on_start": true,
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"APP_NAME":                    "app.name",
	"ENVIRONMENT":                 "app.environment",
	"DEBUG":                       "app.debug",
	"HOST":                        "server.host",
	"PORT":                        "server.port",
	"API_PORT":                    "server.port",
	"DATABASE_URL":                "database.url",
	"REDIS_URL":                   "redis.url",
	"SECRET_KEY":                  "jwt.secret",
	"ALGORITHM":                   "jwt.algorithm",
	"ACCESS_TOKEN_EXPIRE_MINUTES": "jwt.access_token_expire",
	"JWT_ISSUER":                  "jwt.issuer",
	"JWT_AUDIENCE":                "jwt.audience",
	"RATE_LIMIT_REQUESTS":         "rate_limit.requests",
	"RATE_LIMIT_WINDOW":           "rate_limit.window",
	"RATE_LIMIT_BURST":            "rate_limit.burst",
	"CORS_ORIGINS":                "cors.allowed_origins",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",
	"SENTRY_DSN":                  "sentry.dsn",
	"SENTRY_SAMPLE_RATE":          "sentry.sample_rate",
	"METRICS_ENABLED":             "metrics.enabled",
	"UPLOAD_DIR":                  "upload.dir",
	"MAX_UPLOAD_BYTES":            "upload.max_bytes",
	"MAX_UPLOAD_PIXELS":           "upload.max_pixels",
	"MODEL_PATH":                  "model.path",
	"MODEL_FALLBACK_PATH":         "model.fallback_path",
	"LABELS_PATH":                 "model.labels_path",
	"MODEL_METADATA_PATH":         "model.metadata_path",
	"MODEL_THREADS":               "model.threads",
	"MODEL_PREPROCESSING":         "model.preprocessing",
	"SEED_CATALOG":                "catalog.seed_on_start",
}

// envValue maps a known environment variable onto its koanf key. Unknown
// variables return an empty key and are skipped.
func envValue(key, value string) (string, any) {
	mapped, ok := envKeyMap[key]
	if !ok {
		return "", nil
	}

	switch key {
	case "CORS_ORIGINS":
		return mapped, splitList(value)
	case "ACCESS_TOKEN_EXPIRE_MINUTES":
		if minutes, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return mapped, (time.Duration(minutes) * time.Minute).String()
		}
	}

	return mapped, value
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}

	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported jwt algorithm %q", c.JWT.Algorithm)
	}

	if c.JWT.AccessTokenExpire <= 0 {
		return fmt.Errorf("jwt.access_token_expire must be positive")
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultSecret || len(c.JWT.Secret) < 32 {
			return fmt.Errorf(
				"SECRET_KEY must be set to at least 32 characters in production",
			)
		}
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive")
	}

	if c.Upload.MaxPixels <= 0 {
		return fmt.Errorf("upload.max_pixels must be positive")
	}

	if c.Model.InputWidth <= 0 || c.Model.InputHeight <= 0 {
		return fmt.Errorf("model input size must be positive")
	}

	switch c.Model.Preprocessing {
	case "baseline", "medical":
	default:
		return fmt.Errorf(
			"model.preprocessing must be baseline or medical, got %q",
			c.Model.Preprocessing,
		)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
