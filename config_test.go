package restdoc_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/restdoc"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cfg, err := restdoc.ParseConfig([]byte(`
addr: 127.0.0.1:9000
title: Accounts
base_url: /v1
docs_path: /docs
api_version: "2.1"
api_key: special-key
enabled_methods: [get, put]
exclude_namespaces: [internal]
cors_origins: ["https://ui.example.com"]
log_level: debug
log_format: json
rate_limit:
  rate: 5
  burst: 10
`))
	require.NoError(t, err)

	assert.Equal(t, &restdoc.Config{
		Addr:              "127.0.0.1:9000",
		Title:             "Accounts",
		BaseURL:           "/v1",
		DocsPath:          "/docs",
		APIVersion:        "2.1",
		APIKey:            "special-key",
		EnabledMethods:    []string{"get", "put"},
		ExcludeNamespaces: []string{"internal"},
		CORSOrigins:       []string{"https://ui.example.com"},
		LogLevel:          "debug",
		LogFormat:         "json",
		RateLimit:         &restdoc.RateLimitSettings{Rate: 5, Burst: 10},
	}, cfg)
}

func TestParseConfig_defaults(t *testing.T) {
	t.Parallel()

	cfg, err := restdoc.ParseConfig([]byte("title: Accounts\n"))
	require.NoError(t, err)

	want := restdoc.DefaultConfig()
	want.Title = "Accounts"
	assert.Equal(t, &want, cfg)
	assert.Equal(t, restdoc.DefaultEnabledMethods, cfg.EnabledMethods)
}

func TestParseConfig_invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		yaml    string
		wantErr string
	}{
		"bad yaml": {
			yaml:    "addr: [",
			wantErr: "parse config",
		},
		"bad addr": {
			yaml:    "addr: localhost",
			wantErr: "Config.Addr: must be host:port",
		},
		"relative base url": {
			yaml:    "base_url: v1",
			wantErr: `Config.BaseURL: must start with "/"`,
		},
		"empty docs path": {
			yaml:    `docs_path: ""`,
			wantErr: "Config.DocsPath: required",
		},
		"unknown method": {
			yaml:    "enabled_methods: [get, fetch]",
			wantErr: "Config.EnabledMethods[1]: must be one of",
		},
		"empty namespace": {
			yaml:    `exclude_namespaces: [""]`,
			wantErr: "Config.ExcludeNamespaces[0]: required",
		},
		"bad level": {
			yaml:    "log_level: loud",
			wantErr: "Config.LogLevel: must be one of: debug info warn error",
		},
		"bad rate": {
			yaml:    "rate_limit: {rate: 0, burst: 1}",
			wantErr: "Config.RateLimit.Rate: must be greater than 0",
		},
		"bad burst": {
			yaml:    "rate_limit: {rate: 1, burst: 0}",
			wantErr: "Config.RateLimit.Burst: must be at least 1",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := restdoc.ParseConfig([]byte(tc.yaml))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestConfig_Validate_reports_every_field(t *testing.T) {
	t.Parallel()

	cfg := restdoc.DefaultConfig()
	cfg.Addr = ""
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config: ")
	assert.Contains(t, err.Error(), "Config.Addr: required")
	assert.Contains(t, err.Error(), "Config.LogFormat: must be one of: text json")
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "restdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9090\"\n"), 0o600))

	cfg, err := restdoc.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)

	_, err = restdoc.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_RouterOptions(t *testing.T) {
	t.Parallel()

	cfg := restdoc.DefaultConfig()
	cfg.Title = "Accounts"
	cfg.APIVersion = "3"
	cfg.BaseURL = "/v3"
	cfg.EnabledMethods = []string{"get"}
	cfg.ExcludeNamespaces = []string{"internal"}

	r := restdoc.New(cfg.RouterOptions(nil)...)
	r.Handle("/users/%s", updateResource(t))
	r.Handle("/internal/stats", listResource(t, "Stats."))

	listing := r.Listing(nil)
	assert.Equal(t, "3", listing.APIVersion)
	assert.Equal(t, []restdoc.APIRef{{Path: "users", Description: "User accounts."}}, listing.APIs)

	decl, err := r.Declaration(mustURL(t, "http://h/swagger-api-spec/users"), "users")
	require.NoError(t, err)
	assert.Equal(t, "http://h/v3", decl.BasePath)
	require.Len(t, decl.APIs[0].Operations, 1)
	assert.Equal(t, "GET", decl.APIs[0].Operations[0].HTTPMethod)

	assert.Equal(t, "Accounts", r.OpenAPI3().Info.Title)
}

func TestConfig_ServeOptions(t *testing.T) {
	t.Parallel()

	cfg := restdoc.DefaultConfig()
	assert.Empty(t, cfg.ServeOptions())

	cfg.APIKey = "k"
	cfg.CORSOrigins = []string{"https://ui.example.com"}
	cfg.RateLimit = &restdoc.RateLimitSettings{Rate: 1, Burst: 1}
	cfg.TrustProxy = true

	r := restdoc.New()
	r.ServeSwagger("/", cfg.ServeOptions()...)

	req := httptest.NewRequest(http.MethodGet, "/swagger-api-docs", nil)
	req.Header.Set("Origin", "https://ui.example.com")
	req.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://ui.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Body.String(), `"basePath":"https://example.com/swagger-api-docs"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestConfig_NewLogger(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		level  string
		format string
		check  func(t *testing.T, out []byte)
	}{
		"json": {
			level:  "info",
			format: "json",
			check: func(t *testing.T, out []byte) {
				t.Helper()
				var rec map[string]any
				require.NoError(t, json.Unmarshal(bytes.TrimSpace(out), &rec))
				assert.Equal(t, "hello", rec["msg"])
			},
		},
		"text": {
			level:  "info",
			format: "text",
			check: func(t *testing.T, out []byte) {
				t.Helper()
				assert.Contains(t, string(out), "msg=hello")
			},
		},
		"level filters": {
			level:  "error",
			format: "text",
			check: func(t *testing.T, out []byte) {
				t.Helper()
				assert.Empty(t, out)
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := restdoc.DefaultConfig()
			cfg.LogLevel = tc.level
			cfg.LogFormat = tc.format

			var buf bytes.Buffer
			cfg.NewLogger(&buf).Info("hello")
			tc.check(t, buf.Bytes())
		})
	}
}
