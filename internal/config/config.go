// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes settings such as
// server timeouts, logging, the database backend, rate limiting and
// observability.
//
// Values are read through a koanf env provider (a .env file is loaded by the
// binary via godotenv before Load runs). Parsing is tolerant: a value that
// does not parse falls back to its default. Constraints are declared as
// validator tags and checked once after parsing.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/tbourn/go-news-backend/internal/repo"
	"github.com/tbourn/go-news-backend/internal/utils"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool          `env:"ENABLE_HSTS"`
	HSTSMaxAge time.Duration `env:"HSTS_MAX_AGE" validate:"gte=0"`
}

// DBConfig selects and tunes the backing store.
type DBConfig struct {
	Driver       string `env:"DB_DRIVER" validate:"oneof=sqlite postgres"`
	Path         string `env:"DB_PATH" validate:"required_if=Driver sqlite"`
	URL          string `env:"DATABASE_URL" validate:"required_if=Driver postgres"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" validate:"gte=0"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" validate:"gte=0"`
	LogLevel     string `env:"DB_LOG_LEVEL" validate:"oneof=silent error warn info"`
	SeedOnStart  bool   `env:"SEED_ON_START"`
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    `env:"OTEL_ENABLED"`
	Endpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"` // e.g. "otel:4317"
	Insecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE"` // true if no TLS
	ServiceName string  `env:"OTEL_SERVICE_NAME" validate:"required"`
	SampleRatio float64 `env:"OTEL_TRACES_SAMPLER_ARG" validate:"gte=0,lte=1"`
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        `env:"PORT" validate:"required"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" validate:"gt=0"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" validate:"gt=0"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
	MaxHeaderBytes    int           `env:"MAX_HEADER_BYTES" validate:"gt=0"`
	GinMode           string        `env:"GIN_MODE"` // debug|release|test

	// Logging / Docs
	LogLevel       string `env:"LOG_LEVEL" validate:"oneof=debug info warn error fatal panic"`
	LogPretty      bool   `env:"LOG_PRETTY"`
	SwaggerEnabled bool   `env:"SWAGGER_ENABLED"`
	APIBasePath    string `env:"API_BASE_PATH"`

	// Storage
	DB DBConfig

	// Rate limiting
	RateRPS   float64 `env:"RATE_RPS" validate:"gte=0"`
	RateBurst int     `env:"RATE_BURST" validate:"gte=1"`

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// DBOptions maps the storage settings onto repo.Options.
func (c Config) DBOptions() repo.Options {
	return repo.Options{
		Driver:       c.DB.Driver,
		SQLitePath:   c.DB.Path,
		PostgresURL:  c.DB.URL,
		MaxOpenConns: c.DB.MaxOpenConns,
		MaxIdleConns: c.DB.MaxIdleConns,
		LogLevel:     c.DB.LogLevel,
		Tracing:      c.OTEL.Enabled,
	}
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return Config{}, fmt.Errorf("config: load env: %w", err)
	}
	s := source{k: k}

	cfg := Config{
		// Server
		Port:              strings.TrimSpace(s.getenv("PORT", "9090")),
		ReadTimeout:       s.getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: s.getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      s.getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       s.getdur("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   s.getdur("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxHeaderBytes:    s.getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(s.getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(s.getenv("LOG_LEVEL", "info")),
		LogPretty:      s.getbool("LOG_PRETTY", false),
		SwaggerEnabled: s.getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(s.getenv("API_BASE_PATH", "/api")),

		// Storage
		DB: DBConfig{
			Driver:       strings.ToLower(s.getenv("DB_DRIVER", repo.DriverSQLite)),
			Path:         strings.TrimSpace(s.getenv("DB_PATH", "news.db")),
			URL:          strings.TrimSpace(s.getenv("DATABASE_URL", "")),
			MaxOpenConns: s.getint("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: s.getint("DB_MAX_IDLE_CONNS", 10),
			LogLevel:     strings.ToLower(s.getenv("DB_LOG_LEVEL", "warn")),
			SeedOnStart:  s.getbool("SEED_ON_START", false),
		},

		// Rate limiting
		RateRPS:   s.getfloat("RATE_RPS", 5.0),
		RateBurst: s.getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(s.getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: s.getbool("ENABLE_HSTS", false),
			HSTSMaxAge: s.getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     s.getbool("OTEL_ENABLED", false),
			Endpoint:    s.getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    s.getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: s.getenv("OTEL_SERVICE_NAME", "go-news-backend"),
			SampleRatio: s.getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	return cfg, validate(cfg)
}

var validate = func() func(Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their environment key.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return func(cfg Config) error {
		err := v.Struct(cfg)
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return errors.New("config: " + strings.Join(msgs, "; "))
	}
}()

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fe.Field() + " must not be empty"
	case "oneof":
		return fe.Field() + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gt":
		return fe.Field() + " must be > " + fe.Param()
	case "gte":
		return fe.Field() + " must be >= " + fe.Param()
	case "lte":
		return fe.Field() + " must be <= " + fe.Param()
	default:
		return fe.Field() + " is invalid (" + fe.Tag() + ")"
	}
}

// ---- tolerant readers over the koanf env snapshot ----

type source struct{ k *koanf.Koanf }

func (s source) getenv(key, def string) string {
	if v := s.k.String(strings.ToLower(key)); v != "" {
		return v
	}
	return def
}

func (s source) getint(key string, def int) int {
	return utils.AtoiDefault(strings.TrimSpace(s.getenv(key, "")), def)
}

func (s source) getfloat(key string, def float64) float64 {
	if v := s.getenv(key, ""); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

func (s source) getbool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s.getenv(key, ""))) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	return def
}

func (s source) getdur(key string, def time.Duration) time.Duration {
	if v := s.getenv(key, ""); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
