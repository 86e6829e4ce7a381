// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alexanderramin/firstdynamics/internal/keyring"
	"github.com/alexanderramin/firstdynamics/internal/notion"
)

var validate = validator.New()

// Default workspace database ids.
const (
	DefaultSystemsDB      = "2b208611-cdd1-81bc-b978-dbc8a6ad2e52"
	DefaultAchievementsDB = "2bb08611-cdd1-8139-b3f0-e33cd7023160"
	DefaultTrackerDB      = "2b108611-cdd1-8137-a362-f3fd3a8898be"
)

type NotionConfig struct {
	BaseURL string        `validate:"required,url"`
	Token   string        `validate:"-"`
	Version string        `validate:"required"`
	Timeout time.Duration `validate:"gt=0"`
}

type DatabaseConfig struct {
	Systems      string `validate:"required"`
	Achievements string `validate:"required"`
	Tracker      string `validate:"required"`
}

// Config holds everything the commands need. It is built once in main and
// passed down explicitly.
type Config struct {
	Notion          NotionConfig
	Databases       DatabaseConfig
	TrackerWindow   int           `validate:"gte=1,lte=100"`
	RefreshInterval time.Duration `validate:"gte=1s"`
	DemoOnError     bool
	Addr            string   `validate:"required"`
	RelayAddr       string   `validate:"required"`
	AllowedOrigins  []string `validate:"dive,required"`
	LogLevel        string   `validate:"oneof=debug info warn warning error"`
	LogFile         string
}

// Default returns a Config with the reference workspace and local ports.
func Default() Config {
	return Config{
		Notion: NotionConfig{
			BaseURL: notion.DefaultBaseURL,
			Version: notion.DefaultVersion,
			Timeout: notion.DefaultTimeout,
		},
		Databases: DatabaseConfig{
			Systems:      DefaultSystemsDB,
			Achievements: DefaultAchievementsDB,
			Tracker:      DefaultTrackerDB,
		},
		TrackerWindow:   30,
		RefreshInterval: 60 * time.Second,
		DemoOnError:     true,
		Addr:            ":8080",
		RelayAddr:       ":8787",
		AllowedOrigins:  []string{"http://localhost:5173", "http://localhost:3000"},
		LogLevel:        "info",
	}
}

// Load reads configuration from FD_* environment variables, falling back to
// defaults for unset values, and validates the result. Malformed numbers and
// booleans are ignored like unset ones.
func Load() (Config, error) {
	cfg := Default()

	if v := os.Getenv("FD_NOTION_TOKEN"); v != "" {
		cfg.Notion.Token = v
	}
	if v := os.Getenv("FD_NOTION_BASE_URL"); v != "" {
		cfg.Notion.BaseURL = v
	}
	if v := os.Getenv("FD_NOTION_VERSION"); v != "" {
		cfg.Notion.Version = v
	}
	if v := os.Getenv("FD_SYSTEMS_DB_ID"); v != "" {
		cfg.Databases.Systems = v
	}
	if v := os.Getenv("FD_ACHIEVEMENTS_DB_ID"); v != "" {
		cfg.Databases.Achievements = v
	}
	if v := os.Getenv("FD_TRACKER_DB_ID"); v != "" {
		cfg.Databases.Tracker = v
	}
	if v := os.Getenv("FD_TRACKER_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TrackerWindow = n
		}
	}
	if v := os.Getenv("FD_HTTP_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Notion.Timeout = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("FD_REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RefreshInterval = d
		}
	}
	if v := os.Getenv("FD_DEMO_ON_ERROR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DemoOnError = b
		}
	}
	if v := os.Getenv("FD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("FD_RELAY_ADDR"); v != "" {
		cfg.RelayAddr = v
	}
	if v := os.Getenv("FD_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("FD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("FD_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports every violation at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// NotionClientConfig converts the Notion section for the client.
func (c Config) NotionClientConfig() notion.Config {
	return notion.Config{
		BaseURL: c.Notion.BaseURL,
		Token:   c.Notion.Token,
		Version: c.Notion.Version,
		Timeout: c.Notion.Timeout,
	}
}

// Token sources reported by ResolveToken.
const (
	TokenFromFlag    = "flag"
	TokenFromEnv     = "env"
	TokenFromKeyring = "keyring"
	TokenNone        = "none"
)

// ResolveToken picks the Notion token: an explicit flag wins, then the
// environment, then the OS keyring. It returns where the token came from.
// A missing token is not an error because a relay may attach it.
func (c *Config) ResolveToken(flagValue string, lookup func() (string, error)) (string, error) {
	if flagValue != "" {
		c.Notion.Token = flagValue
		return TokenFromFlag, nil
	}
	if c.Notion.Token != "" {
		return TokenFromEnv, nil
	}
	if lookup == nil {
		lookup = keyring.GetToken
	}
	token, err := lookup()
	switch {
	case err == nil && token != "":
		c.Notion.Token = token
		return TokenFromKeyring, nil
	case err == nil, errors.Is(err, keyring.ErrNotFound), errors.Is(err, keyring.ErrKeyringUnavailable):
		return TokenNone, nil
	default:
		return TokenNone, err
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
