// Package config loads the service configuration from a YAML file, a .env
// file and QRPOSTER_* environment overrides, in that order of precedence
// from lowest to highest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cristianadrielbraun/qrposter/internal/hexcolor"
	"github.com/cristianadrielbraun/qrposter/internal/qrmatrix"
)

const envPrefix = "QRPOSTER_"

// RateLimit is a token bucket per client: Requests per Window.
type RateLimit struct {
	Requests int      `yaml:"requests"`
	Window   Duration `yaml:"window"`
}

// Defaults fill form fields the client leaves empty.
type Defaults struct {
	PrimaryColor string `yaml:"primary_color"`
	TextColor    string `yaml:"text_color"`
}

// QR configures the encoder and the module styling.
type QR struct {
	Encoder         string `yaml:"encoder"`
	ErrorCorrection string `yaml:"error_correction"`
	ModuleSize      int    `yaml:"module_size"`
	Upscale         int    `yaml:"upscale"`
	Verify          bool   `yaml:"verify"`
}

// Config holds all application configuration values.
type Config struct {
	Port         int       `yaml:"port"`
	LogLevel     string    `yaml:"log_level"`
	WorkspaceDir string    `yaml:"workspace_dir"`
	UploadDir    string    `yaml:"upload_dir"`
	CleanupGrace Duration  `yaml:"cleanup_grace"`
	WorkspaceTTL Duration  `yaml:"workspace_ttl"`
	RateLimit    RateLimit `yaml:"rate_limit"`
	MaxLogoBytes int64     `yaml:"max_logo_bytes"`
	Defaults     Defaults  `yaml:"defaults"`
	QR           QR        `yaml:"qr"`
}

// Duration is a wrapper around time.Duration that supports YAML unmarshalling
// from human-readable strings like "20s", "5m", "1h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns the configuration used when no file or env is present.
func Default() *Config {
	return &Config{
		Port:         8000,
		LogLevel:     "info",
		CleanupGrace: Duration{20 * time.Second},
		WorkspaceTTL: Duration{time.Hour},
		RateLimit:    RateLimit{Requests: 20, Window: Duration{time.Minute}},
		MaxLogoBytes: 5 << 20,
		Defaults: Defaults{
			PrimaryColor: "#646cff",
			TextColor:    "#000000",
		},
		QR: QR{
			Encoder:         qrmatrix.DefaultSource,
			ErrorCorrection: "H",
			ModuleSize:      20,
			Upscale:         4,
			Verify:          true,
		},
	}
}

// Load reads the YAML file at path (a missing file means defaults), then
// applies .env and environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	// PORT is what most hosting platforms set.
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = p
	}

	var err error
	intVar := func(key string, dst *int) {
		if v := os.Getenv(envPrefix + key); v != "" && err == nil {
			n, perr := strconv.Atoi(v)
			if perr != nil {
				err = fmt.Errorf("invalid %s%s %q: %w", envPrefix, key, v, perr)
				return
			}
			*dst = n
		}
	}
	durVar := func(key string, dst *Duration) {
		if v := os.Getenv(envPrefix + key); v != "" && err == nil {
			d, perr := time.ParseDuration(v)
			if perr != nil {
				err = fmt.Errorf("invalid %s%s %q: %w", envPrefix, key, v, perr)
				return
			}
			dst.Duration = d
		}
	}
	strVar := func(key string, dst *string) {
		if v := os.Getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}

	intVar("PORT", &cfg.Port)
	strVar("LOG_LEVEL", &cfg.LogLevel)
	strVar("WORKSPACE_DIR", &cfg.WorkspaceDir)
	strVar("UPLOAD_DIR", &cfg.UploadDir)
	durVar("CLEANUP_GRACE", &cfg.CleanupGrace)
	durVar("WORKSPACE_TTL", &cfg.WorkspaceTTL)
	intVar("RATE_LIMIT_REQUESTS", &cfg.RateLimit.Requests)
	durVar("RATE_LIMIT_WINDOW", &cfg.RateLimit.Window)
	strVar("PRIMARY_COLOR", &cfg.Defaults.PrimaryColor)
	strVar("TEXT_COLOR", &cfg.Defaults.TextColor)
	strVar("QR_ENCODER", &cfg.QR.Encoder)
	strVar("QR_ERROR_CORRECTION", &cfg.QR.ErrorCorrection)
	intVar("QR_MODULE_SIZE", &cfg.QR.ModuleSize)
	intVar("QR_UPSCALE", &cfg.QR.Upscale)

	if v := os.Getenv(envPrefix + "MAX_LOGO_BYTES"); v != "" && err == nil {
		n, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			return fmt.Errorf("invalid %sMAX_LOGO_BYTES %q: %w", envPrefix, v, perr)
		}
		cfg.MaxLogoBytes = n
	}
	if v := os.Getenv(envPrefix + "QR_VERIFY"); v != "" && err == nil {
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			cfg.QR.Verify = true
		case "false", "0", "no":
			cfg.QR.Verify = false
		default:
			return fmt.Errorf("invalid %sQR_VERIFY %q: want true or false", envPrefix, v)
		}
	}
	return err
}

// Validate checks values that would otherwise fail deep inside a request.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if _, err := hexcolor.Parse(c.Defaults.PrimaryColor); err != nil {
		return fmt.Errorf("defaults.primary_color: %w", err)
	}
	if _, err := hexcolor.Parse(c.Defaults.TextColor); err != nil {
		return fmt.Errorf("defaults.text_color: %w", err)
	}
	if _, err := qrmatrix.NewSource(c.QR.Encoder); err != nil {
		return fmt.Errorf("qr.encoder: %w", err)
	}
	if _, err := qrmatrix.ParseLevel(c.QR.ErrorCorrection); err != nil {
		return fmt.Errorf("qr.error_correction: %w", err)
	}
	if c.QR.ModuleSize < 1 || c.QR.Upscale < 1 {
		return fmt.Errorf("qr.module_size and qr.upscale must be positive")
	}
	if c.RateLimit.Requests < 1 || c.RateLimit.Window.Duration <= 0 {
		return fmt.Errorf("rate_limit needs positive requests and window")
	}
	if c.MaxLogoBytes <= 0 {
		return fmt.Errorf("max_logo_bytes must be positive")
	}
	if c.CleanupGrace.Duration < 0 {
		return fmt.Errorf("cleanup_grace must not be negative")
	}
	if c.WorkspaceTTL.Duration <= 0 {
		return fmt.Errorf("workspace_ttl must be positive")
	}
	return nil
}

// Level is the parsed error-correction level. Call after Validate.
func (c *Config) Level() qrmatrix.Level {
	l, err := qrmatrix.ParseLevel(c.QR.ErrorCorrection)
	if err != nil {
		return qrmatrix.LevelH
	}
	return l
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
