package config

import "testing"

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port

		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_InvalidCacheDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Driver = "memcached"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown cache driver")
	}

	expected := `cache.driver must be "fs" or "redis", got "memcached"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_RedisDriverRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Driver = "redis"
	cfg.Cache.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis driver without addrs")
	}

	cfg.Cache.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with addrs set: %v", err)
	}
}

func TestValidate_PageSizeCap(t *testing.T) {
	cfg := validConfig()
	cfg.Search.PageSize = 51

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for page_size above the upstream cap")
	}

	cfg.Search.PageSize = 50
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for page_size 50: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 120 {
		t.Errorf("expected WriteTimeoutSec=120, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Upstream.SRUBaseURL != "https://gallica.bnf.fr/SRU" {
		t.Errorf("expected Gallica SRU URL, got %q", cfg.Upstream.SRUBaseURL)
	}
	if cfg.Upstream.ContentSearchURL != "https://gallica.bnf.fr/services/ContentSearch" {
		t.Errorf("expected ContentSearch URL, got %q", cfg.Upstream.ContentSearchURL)
	}
	if cfg.Upstream.RequestTimeoutSec != 30 {
		t.Errorf("expected RequestTimeoutSec=30, got %d", cfg.Upstream.RequestTimeoutSec)
	}
	if cfg.RateLimit.MinIntervalMS != 1000 {
		t.Errorf("expected MinIntervalMS=1000, got %d", cfg.RateLimit.MinIntervalMS)
	}
	if cfg.RateLimit.MaxConcurrency != 1 {
		t.Errorf("expected MaxConcurrency=1, got %d", cfg.RateLimit.MaxConcurrency)
	}
	if cfg.Cache.Driver != "fs" {
		t.Errorf("expected Driver='fs', got %q", cfg.Cache.Driver)
	}
	if cfg.Cache.KeyPrefix != "gallex:text:" {
		t.Errorf("expected KeyPrefix='gallex:text:', got %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Search.PageSize != 50 {
		t.Errorf("expected PageSize=50, got %d", cfg.Search.PageSize)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Upstream:  UpstreamConfig{SRUBaseURL: "http://localhost:9999/SRU", RequestTimeoutSec: 5},
		RateLimit: RateLimitConfig{MinIntervalMS: 250, MaxConcurrency: 4},
		Cache:     CacheConfig{Driver: "redis", KeyPrefix: "custom:"},
		Search:    SearchConfig{PageSize: 10},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Upstream.SRUBaseURL != "http://localhost:9999/SRU" {
		t.Errorf("expected custom SRU URL, got %q", cfg.Upstream.SRUBaseURL)
	}
	if cfg.RateLimit.MinIntervalMS != 250 {
		t.Errorf("expected MinIntervalMS=250, got %d", cfg.RateLimit.MinIntervalMS)
	}
	if cfg.Cache.Driver != "redis" {
		t.Errorf("expected Driver='redis', got %q", cfg.Cache.Driver)
	}
	if cfg.Search.PageSize != 10 {
		t.Errorf("expected PageSize=10, got %d", cfg.Search.PageSize)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("GALLEX_TEST_PORT", "9090")

	tests := []struct {
		input    string
		expected string
	}{
		{"port: ${GALLEX_TEST_PORT}", "port: 9090"},
		{"port: ${GALLEX_TEST_UNSET:-8080}", "port: 8080"},
		{"port: ${GALLEX_TEST_UNSET}", "port: "},
		{"plain: value", "plain: value"},
	}

	for _, tc := range tests {
		if got := string(expandEnvVars([]byte(tc.input))); got != tc.expected {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
