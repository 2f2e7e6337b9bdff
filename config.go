package restdoc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the file configuration of a documented service.
type Config struct {
	Addr              string   `yaml:"addr"               validate:"required,hostname_port"`
	Title             string   `yaml:"title"`
	BaseURL           string   `yaml:"base_url"           validate:"required,startswith=/"`
	DocsPath          string   `yaml:"docs_path"          validate:"required,startswith=/"`
	APIVersion        string   `yaml:"api_version"`
	APIKey            string   `yaml:"api_key"`
	EnabledMethods    []string `yaml:"enabled_methods"    validate:"dive,oneof=get post put patch delete head options"`
	ExcludeNamespaces []string `yaml:"exclude_namespaces" validate:"dive,required"`
	CORSOrigins       []string `yaml:"cors_origins"       validate:"dive,required"`
	TrustProxy        bool     `yaml:"trust_proxy"`
	LogLevel          string   `yaml:"log_level"          validate:"oneof=debug info warn error"`
	LogFormat         string   `yaml:"log_format"         validate:"oneof=text json"`

	RateLimit *RateLimitSettings `yaml:"rate_limit"`
}

// RateLimitSettings configures the rate limit of the document endpoints.
type RateLimitSettings struct {
	Rate  float64 `yaml:"rate"  validate:"gt=0"`
	Burst int     `yaml:"burst" validate:"gte=1"`
}

// DefaultConfig returns the configuration used for keys a file leaves out.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		BaseURL:        "/",
		DocsPath:       "/",
		EnabledMethods: append([]string(nil), DefaultEnabledMethods...),
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration. Every invalid field is reported.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msgs = append(msgs, ve.Namespace()+": "+formatValidationError(ve))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// RouterOptions turns the configuration into Router options.
func (c *Config) RouterOptions(logger *slog.Logger) []RouterOption {
	opts := []RouterOption{
		WithAPIVersion(c.APIVersion),
		WithBasePath(c.BaseURL),
		WithEnabledMethods(c.EnabledMethods...),
		WithExcludeNamespaces(c.ExcludeNamespaces...),
	}
	if c.Title != "" {
		opts = append(opts, WithTitle(c.Title))
	}
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}
	return opts
}

// ServeOptions turns the configuration into ServeSwagger options.
func (c *Config) ServeOptions() []ServeOption {
	var opts []ServeOption
	if c.APIKey != "" {
		opts = append(opts, WithAPIKey(c.APIKey))
	}
	if len(c.CORSOrigins) > 0 {
		opts = append(opts, WithCORS(c.CORSOrigins...))
	}
	if c.TrustProxy {
		opts = append(opts, WithForwardedProto())
	}
	if c.RateLimit != nil {
		opts = append(opts, WithRateLimit(RateLimitConfig{Rate: c.RateLimit.Rate, Burst: c.RateLimit.Burst}))
	}
	return opts
}

// NewLogger builds the logger the configuration asks for, writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "hostname_port":
		return "must be host:port"
	case "startswith":
		return fmt.Sprintf("must start with %q", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
