package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/michaelpawlus/990-beacon/internal/auth"
	"github.com/michaelpawlus/990-beacon/internal/common"
	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultPageSize  = 20
	DefaultDebounce  = 200 * time.Millisecond
	DefaultLogFormat = "console"
	DefaultLogLevel  = "info"
	DefaultLogFile   = "~/.local/state/beacon/beacon.log"
	maxPageSize      = 100
)

// Config is the typed view of everything read through viper.
type Config struct {
	Auth    auth.Config
	API     APIConfig
	Search  SearchConfig
	Logging LoggingConfig
}

// APIConfig locates the backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SearchConfig tunes the search screen and command.
type SearchConfig struct {
	PageSize int
	Debounce time.Duration
	Mouse    bool
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("search.page_size", DefaultPageSize)
	v.SetDefault("search.debounce", DefaultDebounce)
	v.SetDefault("search.mouse", true)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
	v.SetDefault("logging.file", DefaultLogFile)
}

// Load reads a Config from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(v.GetString("api.base_url"), "/"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Auth: auth.Config{
			Token:        v.GetString("auth.token"),
			ClientID:     v.GetString("auth.client_id"),
			ClientSecret: v.GetString("auth.client_secret"),
			TokenURL:     v.GetString("auth.token_url"),
			Scopes:       v.GetStringSlice("auth.scopes"),
		},
		Search: SearchConfig{
			PageSize: v.GetInt("search.page_size"),
			Debounce: v.GetDuration("search.debounce"),
			Mouse:    v.GetBool("search.mouse"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later and less clearly.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url is required", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q must be an http(s) URL", common.ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", common.ErrInvalidConfig)
	}
	if c.Search.PageSize < 1 || c.Search.PageSize > maxPageSize {
		return fmt.Errorf("%w: search.page_size must be between 1 and %d", common.ErrInvalidConfig, maxPageSize)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("%w: search.debounce must not be negative", common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return nil
}
