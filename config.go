package blogdesk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"gopkg.in/yaml.v3"

	"github.com/eringen/blogdesk/generate"
)

// SiteConfig holds all configuration for a blogdesk server.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Blogdesk")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Feed description

	Addr        string `yaml:"addr"`         // Listen address (default ":3000")
	ArchivePath string `yaml:"archive_path"` // SQLite snapshot path; empty disables the archive
	Seed        bool   `yaml:"seed"`         // Load the demo blogs into an empty store

	LoginPassword string `yaml:"login_password"` // Required: shared login password
	SessionSecret string `yaml:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `yaml:"cookie_secure"`  // Set true for HTTPS

	Scoring     string `yaml:"scoring"`      // random (default), content or none
	RecentLimit int    `yaml:"recent_limit"` // Dashboard recent list size (default 5)
	LogLevel    string `yaml:"log_level"`    // debug, info (default), warn, error, off

	Generator generate.Config `yaml:"generator"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blogdesk"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.Scoring == "" {
		c.Scoring = "random"
	}
	if c.RecentLimit <= 0 {
		c.RecentLimit = 5
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Generator.Provider == "" {
		c.Generator.Provider = generate.ProviderNone
	}
}

func (c SiteConfig) validate() error {
	if c.LoginPassword == "" {
		return errors.New("blogdesk: LoginPassword is required")
	}
	if c.SessionSecret == "" {
		return errors.New("blogdesk: SessionSecret is required")
	}
	if _, ok := scorerByName(c.Scoring); !ok {
		return fmt.Errorf("blogdesk: unknown scoring %q (supported: random, content, none)", c.Scoring)
	}
	if _, ok := parseLogLevel(c.LogLevel); !ok {
		return fmt.Errorf("blogdesk: unknown log level %q", c.LogLevel)
	}
	return nil
}

func parseLogLevel(s string) (log.Lvl, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG, true
	case "info", "":
		return log.INFO, true
	case "warn", "warning":
		return log.WARN, true
	case "error":
		return log.ERROR, true
	case "off":
		return log.OFF, true
	}
	return 0, false
}

// LoadConfig reads a YAML config file and then applies BLOGDESK_* environment
// overrides. An empty path skips the file. Unknown YAML keys are rejected.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("blogdesk: read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("blogdesk: parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.setDefaults()
	return cfg, nil
}

func applyEnv(cfg *SiteConfig) error {
	str := map[string]*string{
		"BLOGDESK_NAME":               &cfg.Name,
		"BLOGDESK_URL":                &cfg.URL,
		"BLOGDESK_ADDR":               &cfg.Addr,
		"BLOGDESK_ARCHIVE":            &cfg.ArchivePath,
		"BLOGDESK_LOGIN_PASSWORD":     &cfg.LoginPassword,
		"BLOGDESK_SESSION_SECRET":     &cfg.SessionSecret,
		"BLOGDESK_SCORING":            &cfg.Scoring,
		"BLOGDESK_LOG_LEVEL":          &cfg.LogLevel,
		"BLOGDESK_GENERATOR_PROVIDER": &cfg.Generator.Provider,
		"BLOGDESK_GENERATOR_URL":      &cfg.Generator.BaseURL,
		"BLOGDESK_GENERATOR_MODEL":    &cfg.Generator.Model,
		"BLOGDESK_GENERATOR_API_KEY":  &cfg.Generator.APIKey,
	}
	for key, dst := range str {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	if cfg.Generator.APIKey == "" {
		cfg.Generator.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	for key, dst := range map[string]*bool{
		"BLOGDESK_COOKIE_SECURE": &cfg.CookieSecure,
		"BLOGDESK_SEED":          &cfg.Seed,
	} {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("blogdesk: %s: %w", key, err)
			}
			*dst = b
		}
	}
	if v := os.Getenv("BLOGDESK_RECENT_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("blogdesk: BLOGDESK_RECENT_LIMIT: %w", err)
		}
		cfg.RecentLimit = n
	}
	if v := os.Getenv("BLOGDESK_GENERATOR_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("blogdesk: BLOGDESK_GENERATOR_TIMEOUT: %w", err)
		}
		cfg.Generator.Timeout = d
	}
	if v := os.Getenv("BLOGDESK_GENERATOR_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("blogdesk: BLOGDESK_GENERATOR_TEMPERATURE: %w", err)
		}
		cfg.Generator.Temperature = &f
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets and cover uploads (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithGenerator replaces the generator built from SiteConfig.Generator.
func WithGenerator(g generate.Generator) Option {
	return func(a *App) {
		a.Generator = g
	}
}

// WithScorer replaces the scorer selected by SiteConfig.Scoring.
func WithScorer(s Scorer) Option {
	return func(a *App) {
		a.scorer = s
	}
}

// WithClock sets the time source used by the store and analytics.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithSeedData replaces the demo users and blogs. Blogs are loaded into the
// store at init unless an archive with rows overrides them.
func WithSeedData(blogs []Blog, users []User) Option {
	return func(a *App) {
		a.seedBlogs = blogs
		a.seedUsers = users
	}
}
