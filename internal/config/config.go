package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DevAPIBaseURL is used when no base URL is configured outside production.
	DevAPIBaseURL = "http://localhost:8000"

	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultAddr      = ":8080"
	defaultNoticeTTL = 5 * time.Second
)

// Config holds everything the console binary needs at startup.
type Config struct {
	Env string `yaml:"env"`
	// APIBaseURL is nil when unset so that an explicit empty value (same origin)
	// can be told apart from "not configured".
	APIBaseURL *string       `yaml:"api_base_url"`
	Addr       string        `yaml:"addr"`
	NoticeTTL  time.Duration `yaml:"notice_ttl"`
	LogMode    string        `yaml:"log_mode"`
	// PublicOrigin is the origin relative API endpoints resolve against when the
	// API shares the console's origin (empty base URL).
	PublicOrigin string `yaml:"public_origin"`
}

// Default returns the development defaults.
func Default() *Config {
	return &Config{
		Env:       EnvDevelopment,
		Addr:      defaultAddr,
		NoticeTTL: defaultNoticeTTL,
		LogMode:   "dev",
	}
}

// Load builds a Config from defaults, an optional YAML file, an optional .env file
// and finally the process environment. Missing files are not errors.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnvOverrides() error {
	if v, ok := os.LookupEnv("COPYDESK_API_BASE_URL"); ok {
		v = strings.TrimSpace(v)
		c.APIBaseURL = &v
	}
	if v := os.Getenv("COPYDESK_ENV"); v != "" {
		c.Env = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("COPYDESK_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("COPYDESK_LOG_MODE"); v != "" {
		c.LogMode = v
	}
	if v := os.Getenv("COPYDESK_PUBLIC_ORIGIN"); v != "" {
		c.PublicOrigin = strings.TrimSpace(v)
	}
	if v := os.Getenv("COPYDESK_NOTICE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid COPYDESK_NOTICE_TTL %q: %w", v, err)
		}
		c.NoticeTTL = d
	}
	return nil
}

// Validate reports configuration that cannot be served.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unknown env %q (want %s or %s)", c.Env, EnvDevelopment, EnvProduction)
	}
	if c.NoticeTTL <= 0 {
		return fmt.Errorf("notice_ttl must be positive, got %s", c.NoticeTTL)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("addr is required")
	}
	if _, err := c.Origin(); err != nil {
		return err
	}
	return nil
}

// Origin parses PublicOrigin. It is nil when unset.
func (c *Config) Origin() (*url.URL, error) {
	if c.PublicOrigin == "" {
		return nil, nil
	}
	u, err := url.Parse(c.PublicOrigin)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("public_origin must be an absolute URL, got %q", c.PublicOrigin)
	}
	return u, nil
}

// BaseURL resolves the remote API base. An unset value falls back to the local
// development API outside production and to the serving origin in production.
func (c *Config) BaseURL() string {
	if c.APIBaseURL != nil {
		return *c.APIBaseURL
	}
	if c.Env == EnvProduction {
		return ""
	}
	return DevAPIBaseURL
}
