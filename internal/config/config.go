package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the gallex API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cache     CacheConfig     `yaml:"cache"`
	Search    SearchConfig    `yaml:"search"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// UpstreamConfig holds the remote service endpoints.
type UpstreamConfig struct {
	SRUBaseURL        string `yaml:"sru_base_url"`
	ContentSearchURL  string `yaml:"content_search_url"`
	TextBaseURL       string `yaml:"text_base_url"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
}

// RateLimitConfig bounds outbound traffic to the upstream service.
type RateLimitConfig struct {
	MinIntervalMS  int `yaml:"min_interval_ms"`
	MaxConcurrency int `yaml:"max_concurrency"`
}

// CacheConfig holds text-cache settings.
type CacheConfig struct {
	Driver    string   `yaml:"driver"` // fs, redis (default: fs)
	Dir       string   `yaml:"dir"`    // fs driver root
	Addrs     []string `yaml:"addrs"`  // redis driver addresses
	Password  string   `yaml:"password"`
	KeyPrefix string   `yaml:"key_prefix"`
}

// SearchConfig holds result-shaping settings.
type SearchConfig struct {
	PageSize       int  `yaml:"page_size"`
	EnrichSnippets bool `yaml:"enrich_snippets"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// Searches queue behind the 1 req/s upstream gate; writes need headroom.
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Upstream.SRUBaseURL == "" {
		c.Upstream.SRUBaseURL = "https://gallica.bnf.fr/SRU"
	}
	if c.Upstream.ContentSearchURL == "" {
		c.Upstream.ContentSearchURL = "https://gallica.bnf.fr/services/ContentSearch"
	}
	if c.Upstream.TextBaseURL == "" {
		c.Upstream.TextBaseURL = "https://gallica.bnf.fr"
	}
	if c.Upstream.RequestTimeoutSec <= 0 {
		c.Upstream.RequestTimeoutSec = 30
	}
	if c.RateLimit.MinIntervalMS <= 0 {
		c.RateLimit.MinIntervalMS = 1000
	}
	if c.RateLimit.MaxConcurrency <= 0 {
		c.RateLimit.MaxConcurrency = 1
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "fs"
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = "cache/gallica"
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "gallex:text:"
	}
	if c.Search.PageSize <= 0 {
		c.Search.PageSize = 50
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Cache.Driver {
	case "fs", "redis":
		// ok
	default:
		return fmt.Errorf("cache.driver must be \"fs\" or \"redis\", got %q", c.Cache.Driver)
	}
	if c.Cache.Driver == "redis" && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required for the redis driver")
	}
	if c.Search.PageSize > 50 {
		return fmt.Errorf("search.page_size must not exceed 50, got %d", c.Search.PageSize)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
