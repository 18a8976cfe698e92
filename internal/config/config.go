// Package config loads server settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smsactivate/mcp-sms-activate/internal/smsactivate"
)

// ErrMissingAPIKey is returned by Validate when no API key is configured.
var ErrMissingAPIKey = errors.New("SMS_ACTIVATE_API_KEY environment variable is required")

// Defaults applied before the file and the environment are read.
const (
	DefaultLogLevel       = "info"
	DefaultHTTPAddr       = "127.0.0.1:8080"
	DefaultMaxConcurrency = 4
)

// Config holds every runtime setting. Fields tagged env are overridden by the
// named variable when it is set and non-empty.
type Config struct {
	APIKey         string `yaml:"api_key" env:"SMS_ACTIVATE_API_KEY"`
	BaseURL        string `yaml:"base_url" env:"SMS_ACTIVATE_BASE_URL"`
	ServicesFile   string `yaml:"services_file" env:"SMS_ACTIVATE_SERVICES_FILE"`
	LogLevel       string `yaml:"log_level" env:"SMS_ACTIVATE_LOG_LEVEL"`
	LogFile        string `yaml:"log_file" env:"SMS_ACTIVATE_LOG_FILE"`
	HTTPAddr       string `yaml:"http_addr" env:"MCP_HTTP_ADDR"`
	HTTPToken      string `yaml:"http_token" env:"MCP_HTTP_TOKEN"`
	HTTPAllowlist  string `yaml:"http_allowlist" env:"MCP_HTTP_ALLOWLIST"`
	MaxConcurrency int    `yaml:"max_concurrency" env:"MCP_MAX_CONCURRENCY"`
}

// Default returns a Config populated with defaults only.
func Default() Config {
	return Config{
		BaseURL:        smsactivate.DefaultBaseURL,
		LogLevel:       DefaultLogLevel,
		HTTPAddr:       DefaultHTTPAddr,
		MaxConcurrency: DefaultMaxConcurrency,
	}
}

// Load builds a Config from defaults, then the YAML file at path (skipped when
// path is empty), then the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max concurrency must be at least 1, got %d", c.MaxConcurrency)
	}
	if err := validateBaseURL(c.BaseURL); err != nil {
		return err
	}
	for _, entry := range strings.Split(c.HTTPAllowlist, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if _, _, err := net.ParseCIDR(entry); err != nil {
			return fmt.Errorf("MCP_HTTP_ALLOWLIST: invalid CIDR %q", entry)
		}
	}
	return nil
}

// validateBaseURL accepts an empty value (the client default) or an absolute
// http(s) URL with a host.
func validateBaseURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("SMS_ACTIVATE_BASE_URL: invalid URL %q", raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("SMS_ACTIVATE_BASE_URL: want an http(s) URL with a host, got %q", raw)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	val := reflect.ValueOf(cfg).Elem()
	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := os.LookupEnv(name)
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			continue
		}

		field := val.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("%s: not an integer: %q", name, raw)
			}
			field.SetInt(int64(n))
		}
	}
	return nil
}
