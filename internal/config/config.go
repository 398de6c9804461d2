package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Favorites storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

const (
	defaultConfigPath     = "~/.config/stash/config.toml"
	defaultCatalogURL     = "http://127.0.0.1:7488"
	defaultRequestTimeout = 10 * time.Second
	defaultFavoritesFile  = "~/.local/share/stash/favorites.toml"
	defaultFavoritesDB    = "~/.local/share/stash/favorites.db"
	defaultSponsoredEvery = 6
	defaultLoadingDwell   = 250 * time.Millisecond
	defaultLogFile        = "~/.local/state/stash/stash.log"
	defaultLogLevel       = "info"
)

// Config is the resolved runtime configuration.
type Config struct {
	CatalogURL       string
	RequestTimeout   time.Duration
	FavoritesBackend string
	FavoritesPath    string // derived from the backend when empty
	WatchFavorites   bool
	Sponsored        bool
	SponsoredEvery   int
	LoadingDwell     time.Duration
	LogFile          string
	LogLevel         string
	MetricsAddr      string // empty disables the metrics listener
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CatalogURL:       defaultCatalogURL,
		RequestTimeout:   defaultRequestTimeout,
		FavoritesBackend: BackendFile,
		WatchFavorites:   true,
		Sponsored:        true,
		SponsoredEvery:   defaultSponsoredEvery,
		LoadingDwell:     defaultLoadingDwell,
		LogFile:          defaultLogFile,
		LogLevel:         defaultLogLevel,
	}
}

// Load returns the defaults overlaid with the TOML file at path (or the
// default location when path is empty) and STASH_* environment variables.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := ApplyFile(&cfg, path, nil); err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg, nil); err != nil {
		return Config{}, err
	}
	if err := cfg.Finalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Finalize trims values, fills derived defaults, expands paths and validates.
func (c *Config) Finalize() error {
	c.CatalogURL = strings.TrimSpace(c.CatalogURL)
	if c.CatalogURL == "" {
		c.CatalogURL = defaultCatalogURL
	}
	c.FavoritesBackend = strings.ToLower(strings.TrimSpace(c.FavoritesBackend))
	if c.FavoritesBackend == "" {
		c.FavoritesBackend = BackendFile
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.MetricsAddr = strings.TrimSpace(c.MetricsAddr)

	if strings.TrimSpace(c.FavoritesPath) == "" {
		c.FavoritesPath = defaultFavoritesFile
		if c.FavoritesBackend == BackendSQLite {
			c.FavoritesPath = defaultFavoritesDB
		}
	}
	c.FavoritesPath = mustExpand(c.FavoritesPath)
	if strings.TrimSpace(c.LogFile) != "" {
		c.LogFile = mustExpand(c.LogFile)
	}

	return c.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.Contains(c.CatalogURL, "://") {
		u, err := url.Parse(c.CatalogURL)
		if err != nil {
			return fmt.Errorf("catalog_url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("catalog_url: unsupported scheme %q", u.Scheme)
		}
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	switch c.FavoritesBackend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("favorites_backend: unknown backend %q (want %q or %q)", c.FavoritesBackend, BackendFile, BackendSQLite)
	}
	if c.SponsoredEvery < 0 {
		return errors.New("sponsored_every must not be negative")
	}
	if c.LoadingDwell < 0 {
		return errors.New("loading_dwell must not be negative")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// DefaultPath returns the expanded default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
