package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors Config with TOML-friendly types. Durations are strings
// and booleans are pointers so an absent key leaves the current value alone.
type fileConfig struct {
	CatalogURL       string `toml:"catalog_url"`
	RequestTimeout   string `toml:"request_timeout"`
	FavoritesBackend string `toml:"favorites_backend"`
	FavoritesPath    string `toml:"favorites_path"`
	WatchFavorites   *bool  `toml:"watch_favorites"`
	Sponsored        *bool  `toml:"sponsored"`
	SponsoredEvery   int    `toml:"sponsored_every"`
	LoadingDwell     string `toml:"loading_dwell"`
	LogFile          string `toml:"log_file"`
	LogLevel         string `toml:"log_level"`
	MetricsAddr      string `toml:"metrics_addr"`
}

// ApplyFile overlays the TOML file at path onto cfg, skipping settings whose
// flag name is in changed. An empty path means the default location; a
// missing file leaves cfg untouched.
func ApplyFile(cfg *Config, path string, changed map[string]bool) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(bytes, &fc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	s := newSetter(changed)
	s.setString(FlagCatalogURL, fc.CatalogURL, &cfg.CatalogURL)
	s.setString(FlagFavoritesBackend, fc.FavoritesBackend, &cfg.FavoritesBackend)
	s.setString(FlagFavoritesPath, fc.FavoritesPath, &cfg.FavoritesPath)
	s.setString(FlagLogFile, fc.LogFile, &cfg.LogFile)
	s.setString(FlagLogLevel, fc.LogLevel, &cfg.LogLevel)
	s.setString(FlagMetricsAddr, fc.MetricsAddr, &cfg.MetricsAddr)
	s.setInt(FlagSponsoredEvery, fc.SponsoredEvery, &cfg.SponsoredEvery)
	s.setBool(FlagWatchFavorites, fc.WatchFavorites, &cfg.WatchFavorites)
	s.setBool(FlagSponsored, fc.Sponsored, &cfg.Sponsored)

	if err := s.setDuration(FlagTimeout, fc.RequestTimeout, &cfg.RequestTimeout); err != nil {
		return err
	}
	if err := s.setDuration(FlagLoadingDwell, fc.LoadingDwell, &cfg.LoadingDwell); err != nil {
		return err
	}
	return nil
}
