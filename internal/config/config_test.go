package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Endpoint != DefaultEndpoint {
		t.Errorf("default endpoint = %q, want %q", cfg.API.Endpoint, DefaultEndpoint)
	}
	if cfg.API.Key != "" {
		t.Errorf("default key = %q, want empty", cfg.API.Key)
	}
	if cfg.API.Timeout != 0 {
		t.Errorf("default timeout = %v, want 0 (transport default)", cfg.API.Timeout)
	}
	if cfg.Search.Debounce != 700*time.Millisecond {
		t.Errorf("default debounce = %v, want %v", cfg.Search.Debounce, 700*time.Millisecond)
	}
	if cfg.Search.ErrorReset != 3*time.Second {
		t.Errorf("default error reset = %v, want %v", cfg.Search.ErrorReset, 3*time.Second)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("default log level = %q, want %q", cfg.Logging.Level, "INFO")
	}
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(`
api:
  endpoint: http://localhost:9000/v1/cocktail
  key: secret
  timeout: 10s
search:
  debounce: 250ms
  error_reset: 5s
logging:
  level: debug
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Endpoint != "http://localhost:9000/v1/cocktail" {
		t.Errorf("endpoint = %q, want %q", cfg.API.Endpoint, "http://localhost:9000/v1/cocktail")
	}
	if cfg.API.Key != "secret" {
		t.Errorf("key = %q, want %q", cfg.API.Key, "secret")
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want %v", cfg.API.Timeout, 10*time.Second)
	}
	if cfg.Search.Debounce != 250*time.Millisecond {
		t.Errorf("debounce = %v, want %v", cfg.Search.Debounce, 250*time.Millisecond)
	}
	if cfg.Search.ErrorReset != 5*time.Second {
		t.Errorf("error reset = %v, want %v", cfg.Search.ErrorReset, 5*time.Second)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
}

func TestLoad_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(`
api:
  key: only-the-key
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Key != "only-the-key" {
		t.Errorf("key = %q, want %q", cfg.API.Key, "only-the-key")
	}
	// Unset fields should retain defaults.
	if cfg.API.Endpoint != DefaultEndpoint {
		t.Errorf("endpoint = %q, want default %q", cfg.API.Endpoint, DefaultEndpoint)
	}
	if cfg.Search.Debounce != 700*time.Millisecond {
		t.Errorf("debounce = %v, want default %v", cfg.Search.Debounce, 700*time.Millisecond)
	}
}

func TestLoad_LayeredPriority(t *testing.T) {
	// Setup: user config sets the key, project config overrides debounce.
	userDir := t.TempDir()
	projectDir := t.TempDir()

	userCfg := filepath.Join(userDir, "config.yaml")
	if err := os.WriteFile(userCfg, []byte(`
api:
  key: user-key
search:
  debounce: 1s
`), 0o644); err != nil {
		t.Fatal(err)
	}

	projectCfg := filepath.Join(projectDir, "config.yaml")
	if err := os.WriteFile(projectCfg, []byte(`
search:
  debounce: 300ms
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLayered(userCfg, projectCfg)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	// Key from user config (project doesn't set it).
	if cfg.API.Key != "user-key" {
		t.Errorf("key = %q, want %q", cfg.API.Key, "user-key")
	}
	// Debounce from project config (overrides user).
	if cfg.Search.Debounce != 300*time.Millisecond {
		t.Errorf("debounce = %v, want %v", cfg.Search.Debounce, 300*time.Millisecond)
	}
	// ErrorReset retains default when neither layer sets it.
	if cfg.Search.ErrorReset != 3*time.Second {
		t.Errorf("error reset = %v, want default %v", cfg.Search.ErrorReset, 3*time.Second)
	}
}

func TestLoadLayered_SkipsEmptyPath(t *testing.T) {
	cfg, err := LoadLayered("", "")
	if err != nil {
		t.Fatalf("LoadLayered(empty paths) error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("got %+v, want defaults %+v", *cfg, want)
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name: "COCKTAILS_API_KEY overrides key",
			envs: map[string]string{"COCKTAILS_API_KEY": "env-key"},
			check: func(t *testing.T, c Config) {
				if c.API.Key != "env-key" {
					t.Errorf("key = %q, want %q", c.API.Key, "env-key")
				}
			},
		},
		{
			name: "COCKTAILS_ENDPOINT overrides endpoint",
			envs: map[string]string{"COCKTAILS_ENDPOINT": "http://127.0.0.1:8080/c"},
			check: func(t *testing.T, c Config) {
				if c.API.Endpoint != "http://127.0.0.1:8080/c" {
					t.Errorf("endpoint = %q, want %q", c.API.Endpoint, "http://127.0.0.1:8080/c")
				}
			},
		},
		{
			name: "COCKTAILS_TIMEOUT overrides timeout",
			envs: map[string]string{"COCKTAILS_TIMEOUT": "30s"},
			check: func(t *testing.T, c Config) {
				if c.API.Timeout != 30*time.Second {
					t.Errorf("timeout = %v, want %v", c.API.Timeout, 30*time.Second)
				}
			},
		},
		{
			name: "COCKTAILS_LOG_LEVEL and COCKTAILS_LOG_FILE override logging",
			envs: map[string]string{"COCKTAILS_LOG_LEVEL": "DEBUG", "COCKTAILS_LOG_FILE": "/tmp/c.log"},
			check: func(t *testing.T, c Config) {
				if c.Logging.Level != "DEBUG" {
					t.Errorf("level = %q, want %q", c.Logging.Level, "DEBUG")
				}
				if c.Logging.File != "/tmp/c.log" {
					t.Errorf("file = %q, want %q", c.Logging.File, "/tmp/c.log")
				}
			},
		},
		{
			name:    "invalid COCKTAILS_TIMEOUT returns error",
			envs:    map[string]string{"COCKTAILS_TIMEOUT": "notaduration"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			err := cfg.ApplyEnv()

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnv() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	// Given: COCKTAILS_API_KEY is unset and a .env file provides it
	t.Setenv("COCKTAILS_API_KEY", "")
	os.Unsetenv("COCKTAILS_API_KEY")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("COCKTAILS_API_KEY=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// When: the .env file is loaded and env overrides are applied
	if err := LoadDotEnv(envPath); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	// Then: the key comes from the .env file
	if cfg.API.Key != "from-dotenv" {
		t.Errorf("key = %q, want %q", cfg.API.Key, "from-dotenv")
	}
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	t.Setenv("COCKTAILS_API_KEY", "from-shell")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("COCKTAILS_API_KEY=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(envPath); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("COCKTAILS_API_KEY"); got != "from-shell" {
		t.Errorf("COCKTAILS_API_KEY = %q, want %q", got, "from-shell")
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("LoadDotEnv(missing) error = %v, want nil", err)
	}
}

func TestLoad_UnknownField(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(`
api:
  endpont: http://example.com
`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("Load() should return error for unknown field 'endpont'")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults with key are valid",
			modify: func(*Config) {},
		},
		{
			name:    "empty key",
			modify:  func(c *Config) { c.API.Key = "" },
			wantErr: "api.key",
		},
		{
			name:    "empty endpoint",
			modify:  func(c *Config) { c.API.Endpoint = "" },
			wantErr: "api.endpoint",
		},
		{
			name:    "relative endpoint",
			modify:  func(c *Config) { c.API.Endpoint = "/v1/cocktail" },
			wantErr: "absolute http(s) URL",
		},
		{
			name:    "non-http endpoint",
			modify:  func(c *Config) { c.API.Endpoint = "ftp://example.com/cocktail" },
			wantErr: "absolute http(s) URL",
		},
		{
			name:    "negative timeout",
			modify:  func(c *Config) { c.API.Timeout = -1 * time.Second },
			wantErr: "api.timeout",
		},
		{
			name:   "zero timeout keeps transport default",
			modify: func(c *Config) { c.API.Timeout = 0 },
		},
		{
			name:    "zero debounce",
			modify:  func(c *Config) { c.Search.Debounce = 0 },
			wantErr: "search.debounce",
		},
		{
			name:    "zero error reset",
			modify:  func(c *Config) { c.Search.ErrorReset = 0 },
			wantErr: "search.error_reset",
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Logging.Level = "chatty" },
			wantErr: "logging.level",
		},
		{
			name:   "lowercase log level",
			modify: func(c *Config) { c.Logging.Level = "warn" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.API.Key = "test-key"
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_CommentOnlyFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("# just a comment\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load(comment-only) error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(comment-only) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_AllMissing(t *testing.T) {
	cfg, err := LoadLayered("/no/user.yaml", "/no/project.yaml")
	if err != nil {
		t.Fatalf("LoadLayered(all missing) error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("got %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load(empty) error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(empty) = %+v, want defaults %+v", *cfg, want)
	}
}
