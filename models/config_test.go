package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sumz.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SUMZ_PROVIDER", "")
	t.Setenv("SUMZ_RAPIDAPI_KEY", "")
	t.Setenv("SUMZ_DB", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Provider != ProviderRapidAPI {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderRapidAPI)
	}
	if cfg.RapidAPI.Host != DefaultRapidAPIHost {
		t.Errorf("RapidAPI.Host = %q, want %q", cfg.RapidAPI.Host, DefaultRapidAPIHost)
	}
	if cfg.RapidAPI.BaseURL != "https://"+DefaultRapidAPIHost {
		t.Errorf("RapidAPI.BaseURL = %q", cfg.RapidAPI.BaseURL)
	}
	if cfg.RapidAPI.Length != 3 {
		t.Errorf("RapidAPI.Length = %d, want 3", cfg.RapidAPI.Length)
	}
	if cfg.Store.Driver != StoreSQLite {
		t.Errorf("Store.Driver = %q, want %q", cfg.Store.Driver, StoreSQLite)
	}
	if cfg.RequestTimeout != 0 {
		t.Errorf("RequestTimeout = %s, want 0", cfg.RequestTimeout)
	}
	if cfg.Extractive.Strategy != StrategyLead {
		t.Errorf("Extractive.Strategy = %q, want %q", cfg.Extractive.Strategy, StrategyLead)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Setenv("SUMZ_PROVIDER", "")
	t.Setenv("SUMZ_DB", "")

	path := writeConfig(t, `
provider: extractive
request_timeout: 15s
extractive:
  sentences: 5
  strategy: Frequency
store:
  driver: file
  path: /tmp/sumz-store
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Provider != ProviderExtractive {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderExtractive)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %s, want 15s", cfg.RequestTimeout)
	}
	if cfg.Extractive.Sentences != 5 {
		t.Errorf("Extractive.Sentences = %d, want 5", cfg.Extractive.Sentences)
	}
	if cfg.Extractive.Strategy != StrategyFrequency {
		t.Errorf("Extractive.Strategy = %q, want %q", cfg.Extractive.Strategy, StrategyFrequency)
	}
	if cfg.Store.Driver != StoreFile || cfg.Store.Path != "/tmp/sumz-store" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "provider: extractive\n")
	t.Setenv("SUMZ_PROVIDER", "rapidapi")
	t.Setenv("SUMZ_RAPIDAPI_KEY", "secret-key")
	t.Setenv("SUMZ_DB", "/var/lib/sumz.db")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Provider != ProviderRapidAPI {
		t.Errorf("Provider = %q, want env override %q", cfg.Provider, ProviderRapidAPI)
	}
	if cfg.RapidAPI.Key != "secret-key" {
		t.Errorf("RapidAPI.Key = %q, want secret-key", cfg.RapidAPI.Key)
	}
	if cfg.Store.Path != "/var/lib/sumz.db" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("SUMZ_PROVIDER", "")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "unknown provider", content: "provider: carrier-pigeon\n", wantErr: "unknown provider"},
		{name: "unknown driver", content: "store:\n  driver: redis\n", wantErr: "unknown store driver"},
		{name: "negative timeout", content: "request_timeout: -1s\n", wantErr: "request_timeout"},
		{name: "negative length", content: "rapidapi:\n  length: -2\n", wantErr: "rapidapi.length"},
		{name: "unknown strategy", content: "extractive:\n  strategy: random\n", wantErr: "unknown extractive strategy"},
		{name: "malformed yaml", content: "provider: [unterminated\n", wantErr: "parse config yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadConfig() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
