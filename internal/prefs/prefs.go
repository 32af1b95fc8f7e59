// Package prefs implements the persisted preference store.
//
// Preferences live in a single YAML file (by default
// ~/.config/thermwatch/config.yaml) and are read synchronously at startup
// and on demand. Reads go through viper so partial files merge cleanly over
// defaults; writes serialize the full preference set with yaml.v3.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thermwatch/thermwatch/internal/errors"
)

// Defaults applied when a key is missing from the preference file.
const (
	DefaultServerURL         = "http://127.0.0.1:8000"
	DefaultRefreshIntervalMs = 30000
	DefaultHistorySize       = 120
	DefaultTheme             = ThemeAuto
)

// Theme preference values.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Prefs holds every persisted preference.
// RefreshIntervalMs of 0 means manual refresh only (no periodic trigger).
type Prefs struct {
	ServerURL          string `yaml:"server_url" mapstructure:"server_url"`
	RefreshIntervalMs  int    `yaml:"refresh_interval_ms" mapstructure:"refresh_interval_ms"`
	Theme              string `yaml:"theme" mapstructure:"theme"`
	HistorySize        int    `yaml:"history_size" mapstructure:"history_size"`
	OnboardingComplete bool   `yaml:"onboarding_complete" mapstructure:"onboarding_complete"`
}

// Store provides synchronous get/set access to preferences on disk. The
// effective preference set may carry session-only overrides (command-line
// flags); writes serialize the durable set, so an override never reaches
// the file unless it is changed through Set or Update.
type Store struct {
	path  string
	cur   Prefs // effective preferences, may include session overrides
	saved Prefs // what write persists
}

// Default returns the preference set used when no file exists.
func Default() Prefs {
	return Prefs{
		ServerURL:         DefaultServerURL,
		RefreshIntervalMs: DefaultRefreshIntervalMs,
		Theme:             DefaultTheme,
		HistorySize:       DefaultHistorySize,
	}
}

// DefaultPath returns the preference file location: $THERMWATCH_CONFIG if
// set, otherwise ~/.config/thermwatch/config.yaml (honoring XDG_CONFIG_HOME).
func DefaultPath() (string, error) {
	if p := os.Getenv("THERMWATCH_CONFIG"); p != "" {
		return p, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot determine home directory",
				"Set THERMWATCH_CONFIG to an explicit config file path")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "thermwatch", "config.yaml"), nil
}

// Load reads preferences from path. A missing file is not an error; the
// store starts from defaults and materializes the file on first Save.
func Load(path string) (*Store, error) {
	s := &Store{path: path, cur: Default(), saved: Default()}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot access preference file: "+path,
			"Check file permissions")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read preference file",
			"Check the YAML syntax in "+path)
	}

	cur := Default()
	if err := v.Unmarshal(&cur); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid preference format",
			"Check the YAML syntax in "+path)
	}
	if err := validate(cur); err != nil {
		return nil, err
	}

	s.cur = cur
	s.saved = cur
	return s, nil
}

// NewSession creates a store backed by path whose in-memory state starts
// from p without writing anything. The whole of p counts as durable; use
// WithSession when only some fields are session overrides.
func NewSession(path string, p Prefs) (*Store, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	return &Store{path: path, cur: p, saved: p}, nil
}

// WithSession returns a store on the same file whose effective preferences
// are p, while the durable set stays what this store loaded. Overrides in p
// never reach disk; keys changed through Set afterwards persist normally.
func (s *Store) WithSession(p Prefs) (*Store, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	return &Store{path: s.path, cur: p, saved: s.saved}, nil
}

// LoadDefault loads preferences from the default path.
func LoadDefault() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Current returns a copy of the current preference set.
func (s *Store) Current() Prefs {
	return s.cur
}

// Update replaces the whole preference set, durable fields included, and
// persists it.
func (s *Store) Update(p Prefs) error {
	if err := validate(p); err != nil {
		return err
	}
	s.cur = p
	s.saved = p
	return s.write()
}

// Set parses and persists a single preference by key name.
// Keys use the YAML field names (e.g. "refresh_interval_ms"). Only the
// named key is written; session overrides on other fields stay in memory.
func (s *Store) Set(key, value string) error {
	mut, err := mutation(key, value)
	if err != nil {
		return err
	}

	cur, saved := s.cur, s.saved
	mut(&cur)
	mut(&saved)
	if err := validate(cur); err != nil {
		return err
	}
	if err := validate(saved); err != nil {
		return err
	}

	s.cur = cur
	s.saved = saved
	return s.write()
}

// mutation parses value for key into a single-field assignment.
func mutation(key, value string) (func(*Prefs), error) {
	switch key {
	case "server_url":
		v := strings.TrimRight(value, "/")
		return func(p *Prefs) { p.ServerURL = v }, nil
	case "refresh_interval_ms":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Invalid refresh interval: %q", value),
				"Use a whole number of milliseconds, or 0 for manual refresh")
		}
		return func(p *Prefs) { p.RefreshIntervalMs = n }, nil
	case "theme":
		return func(p *Prefs) { p.Theme = value }, nil
	case "history_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Invalid history size: %q", value),
				"Use a whole number of samples")
		}
		return func(p *Prefs) { p.HistorySize = n }, nil
	case "onboarding_complete":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Invalid boolean: %q", value),
				"Use true or false")
		}
		return func(p *Prefs) { p.OnboardingComplete = b }, nil
	}
	return nil, errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown preference key: %q", key),
		"Known keys: server_url, refresh_interval_ms, theme, history_size, onboarding_complete")
}

// Get returns a single preference formatted as a string.
func (s *Store) Get(key string) (string, error) {
	switch key {
	case "server_url":
		return s.cur.ServerURL, nil
	case "refresh_interval_ms":
		return strconv.Itoa(s.cur.RefreshIntervalMs), nil
	case "theme":
		return s.cur.Theme, nil
	case "history_size":
		return strconv.Itoa(s.cur.HistorySize), nil
	case "onboarding_complete":
		return strconv.FormatBool(s.cur.OnboardingComplete), nil
	}
	return "", errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown preference key: %q", key),
		"Known keys: server_url, refresh_interval_ms, theme, history_size, onboarding_complete")
}

// write persists the durable preference set, creating the directory as needed.
func (s *Store) write() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create config directory",
			"Check permissions on "+filepath.Dir(s.path))
	}
	data, err := yaml.Marshal(s.saved)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot serialize preferences", "")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot write preference file: "+s.path,
			"Check directory permissions")
	}
	return nil
}

// validate rejects preference values the dashboard cannot run with.
func validate(p Prefs) error {
	if p.RefreshIntervalMs < 0 {
		return errors.New(errors.ErrConfig,
			"Refresh interval cannot be negative",
			"Use 0 for manual refresh, or a positive number of milliseconds")
	}
	switch p.Theme {
	case ThemeAuto, ThemeLight, ThemeDark:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown theme: %q", p.Theme),
			"Valid themes: auto, light, dark")
	}
	if p.HistorySize < 0 {
		return errors.New(errors.ErrConfig,
			"History size cannot be negative",
			"Use a positive number of samples")
	}
	if strings.TrimSpace(p.ServerURL) == "" {
		return errors.New(errors.ErrConfig,
			"Server URL cannot be empty",
			"Set server_url to the dashboard API base, e.g. http://sensors.local:8000")
	}
	return nil
}
