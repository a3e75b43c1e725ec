// Package config provides reading and writing of glossd configuration.
// Supports both global (~/.glossd/config.yaml) and local (.glossd/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jpl-au/glossd/internal/query"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.glossd/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .glossd/config.yaml
	ScopeLocal
)

// Author identifies who imports and adds entries in the audit log.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Database selects the storage backend.
type Database struct {
	Driver string `yaml:"driver,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`
}

// Search holds search behaviour options.
type Search struct {
	PerPage    *int   `yaml:"per_page,omitempty"`
	WholeWord  string `yaml:"whole_word,omitempty"`
	Aliases    *bool  `yaml:"aliases,omitempty"`
	Collection *int64 `yaml:"collection,omitempty"`
}

// Web holds options for the HTTP widget.
type Web struct {
	Addr        string `yaml:"addr,omitempty"`
	CORSOrigins string `yaml:"cors_origins,omitempty"`
	Title       string `yaml:"title,omitempty"`
}

// Log holds request log options for the HTTP widget.
type Log struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Display holds the widget colours.
type Display struct {
	PrimaryColor   string `yaml:"primary_color,omitempty"`
	SecondaryColor string `yaml:"secondary_color,omitempty"`
	HighlightColor string `yaml:"highlight_color,omitempty"`
	HighlightBg    string `yaml:"highlight_bg,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultDriver         = "sqlite"
	DefaultPerPage        = 10
	DefaultAddr           = "127.0.0.1:8080"
	DefaultTitle          = "Glossary search"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultPrimaryColor   = "#0073e6"
	DefaultSecondaryColor = "#005bb5"
	DefaultHighlightColor = "#222"
	DefaultHighlightBg    = "#ffe082"
)

// Validation bounds for configuration values.
const (
	MinPerPage = 1
	MaxPerPage = 500
)

var colourRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Config contains configuration for glossd.
type Config struct {
	Author   Author   `yaml:"author,omitempty"`
	Database Database `yaml:"database,omitempty"`
	Search   Search   `yaml:"search,omitempty"`
	Web      Web      `yaml:"web,omitempty"`
	Log      Log      `yaml:"log,omitempty"`
	Display  Display  `yaml:"display,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Search.PerPage != nil {
		v := *c.Search.PerPage
		if v < MinPerPage || v > MaxPerPage {
			return fmt.Errorf("%w: search.per_page must be between %d and %d, got %d",
				ErrInvalidValue, MinPerPage, MaxPerPage, v)
		}
	}
	if c.Search.WholeWord != "" {
		if _, err := query.ParseStrategy(c.Search.WholeWord); err != nil {
			return fmt.Errorf("%w: search.whole_word: %w", ErrInvalidValue, err)
		}
	}
	if c.Search.Collection != nil && *c.Search.Collection < 0 {
		return fmt.Errorf("%w: search.collection must not be negative", ErrInvalidValue)
	}
	for key, v := range map[string]string{
		"display.primary_color":   c.Display.PrimaryColor,
		"display.secondary_color": c.Display.SecondaryColor,
		"display.highlight_color": c.Display.HighlightColor,
		"display.highlight_bg":    c.Display.HighlightBg,
	} {
		if v != "" && !colourRe.MatchString(v) {
			return fmt.Errorf("%w: %s must be a hex colour like #0073e6, got %q", ErrInvalidValue, key, v)
		}
	}
	return nil
}

// Driver returns the database driver (defaults to sqlite).
func (c *Config) Driver() string {
	if c.Database.Driver == "" {
		return DefaultDriver
	}
	return c.Database.Driver
}

// PerPage returns the search page size (defaults to 10).
func (c *Config) PerPage() int {
	if c.Search.PerPage == nil {
		return DefaultPerPage
	}
	return *c.Search.PerPage
}

// Strategy returns the whole-word strategy override (defaults to auto).
func (c *Config) Strategy() query.Strategy {
	s, err := query.ParseStrategy(c.Search.WholeWord)
	if err != nil {
		return query.StrategyAuto
	}
	return s
}

// Aliases returns whether alias matching is enabled (defaults to true).
func (c *Config) Aliases() bool {
	if c.Search.Aliases == nil {
		return true
	}
	return *c.Search.Aliases
}

// PinnedCollection returns the preconfigured collection id (0 means none).
func (c *Config) PinnedCollection() int64 {
	if c.Search.Collection == nil {
		return 0
	}
	return *c.Search.Collection
}

// Addr returns the web listen address.
func (c *Config) Addr() string {
	return orDefault(c.Web.Addr, DefaultAddr)
}

// Title returns the widget heading.
func (c *Config) Title() string {
	return orDefault(c.Web.Title, DefaultTitle)
}

// CORSOrigins returns the allowed origins for the widget. Empty disables CORS.
func (c *Config) CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.Web.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LogLevel returns the request log level.
func (c *Config) LogLevel() string {
	return orDefault(c.Log.Level, DefaultLogLevel)
}

// LogFormat returns the request log format (text or json).
func (c *Config) LogFormat() string {
	return orDefault(c.Log.Format, DefaultLogFormat)
}

// Colours returns the display colours with defaults applied.
func (c *Config) Colours() Display {
	return Display{
		PrimaryColor:   orDefault(c.Display.PrimaryColor, DefaultPrimaryColor),
		SecondaryColor: orDefault(c.Display.SecondaryColor, DefaultSecondaryColor),
		HighlightColor: orDefault(c.Display.HighlightColor, DefaultHighlightColor),
		HighlightBg:    orDefault(c.Display.HighlightBg, DefaultHighlightBg),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(".glossd", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.glossd/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".glossd", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
