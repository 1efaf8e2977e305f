package blogdesk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eringen/blogdesk/generate"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blogdesk.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, `
name: Shop Notes
url: https://shop.example.com
addr: ":8080"
archive_path: data/blogdesk.db
seed: true
login_password: secret
session_secret: change-me
scoring: content
recent_limit: 3
log_level: debug
generator:
  provider: ollama
  model: llama3.2
  timeout: 30s
  temperature: 0
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "Shop Notes" || cfg.URL != "https://shop.example.com" || cfg.Addr != ":8080" {
		t.Errorf("site fields = %q %q %q", cfg.Name, cfg.URL, cfg.Addr)
	}
	if !cfg.Seed || cfg.ArchivePath != "data/blogdesk.db" {
		t.Errorf("Seed/ArchivePath = %v/%q", cfg.Seed, cfg.ArchivePath)
	}
	if cfg.Scoring != "content" || cfg.RecentLimit != 3 || cfg.LogLevel != "debug" {
		t.Errorf("Scoring/RecentLimit/LogLevel = %q/%d/%q", cfg.Scoring, cfg.RecentLimit, cfg.LogLevel)
	}
	if cfg.Generator.Provider != generate.ProviderOllama || cfg.Generator.Model != "llama3.2" {
		t.Errorf("Generator = %+v", cfg.Generator)
	}
	if cfg.Generator.Timeout != 30*time.Second {
		t.Errorf("Generator.Timeout = %v, want 30s", cfg.Generator.Timeout)
	}
	if cfg.Generator.Temperature == nil || *cfg.Generator.Temperature != 0 {
		t.Errorf("Generator.Temperature = %v, want explicit 0", cfg.Generator.Temperature)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "Blogdesk" || cfg.Addr != ":3000" || cfg.Scoring != "random" || cfg.RecentLimit != 5 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Generator.Provider != generate.ProviderNone {
		t.Errorf("Generator.Provider = %q, want none", cfg.Generator.Provider)
	}
	if cfg.Generator.Temperature != nil {
		t.Errorf("Generator.Temperature = %v, want unset", *cfg.Generator.Temperature)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "name: From File\nlogin_password: file-pass\n")
	t.Setenv("BLOGDESK_NAME", "From Env")
	t.Setenv("BLOGDESK_SESSION_SECRET", "env-secret")
	t.Setenv("BLOGDESK_SEED", "true")
	t.Setenv("BLOGDESK_RECENT_LIMIT", "8")
	t.Setenv("BLOGDESK_GENERATOR_PROVIDER", "openai")
	t.Setenv("BLOGDESK_GENERATOR_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("BLOGDESK_GENERATOR_TIMEOUT", "5s")
	t.Setenv("BLOGDESK_GENERATOR_TEMPERATURE", "0.2")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "From Env" {
		t.Errorf("Name = %q, want env override", cfg.Name)
	}
	if cfg.LoginPassword != "file-pass" || cfg.SessionSecret != "env-secret" {
		t.Errorf("LoginPassword/SessionSecret = %q/%q", cfg.LoginPassword, cfg.SessionSecret)
	}
	if !cfg.Seed || cfg.RecentLimit != 8 {
		t.Errorf("Seed/RecentLimit = %v/%d", cfg.Seed, cfg.RecentLimit)
	}
	if cfg.Generator.Provider != generate.ProviderOpenAI || cfg.Generator.APIKey != "sk-test" {
		t.Errorf("Generator = %+v", cfg.Generator)
	}
	if cfg.Generator.Timeout != 5*time.Second {
		t.Errorf("Generator.Timeout = %v, want 5s", cfg.Generator.Timeout)
	}
	if cfg.Generator.Temperature == nil || *cfg.Generator.Temperature != 0.2 {
		t.Errorf("Generator.Temperature = %v, want 0.2", cfg.Generator.Temperature)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{"unknown key", "nmae: typo\n", nil, "field nmae not found"},
		{"bad bool env", "", map[string]string{"BLOGDESK_SEED": "maybe"}, "BLOGDESK_SEED"},
		{"bad int env", "", map[string]string{"BLOGDESK_RECENT_LIMIT": "five"}, "BLOGDESK_RECENT_LIMIT"},
		{"bad duration env", "", map[string]string{"BLOGDESK_GENERATOR_TIMEOUT": "soon"}, "BLOGDESK_GENERATOR_TIMEOUT"},
		{"bad float env", "", map[string]string{"BLOGDESK_GENERATOR_TEMPERATURE": "warm"}, "BLOGDESK_GENERATOR_TEMPERATURE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: expected error")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := SiteConfig{LoginPassword: "p", SessionSecret: "s"}
	valid.setDefaults()

	tests := []struct {
		name   string
		mutate func(*SiteConfig)
		want   string
	}{
		{"valid", func(*SiteConfig) {}, ""},
		{"no password", func(c *SiteConfig) { c.LoginPassword = "" }, "LoginPassword"},
		{"no secret", func(c *SiteConfig) { c.SessionSecret = "" }, "SessionSecret"},
		{"bad scoring", func(c *SiteConfig) { c.Scoring = "magic" }, "scoring"},
		{"bad log level", func(c *SiteConfig) { c.LogLevel = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.validate()
			if tt.want == "" {
				if err != nil {
					t.Errorf("validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
