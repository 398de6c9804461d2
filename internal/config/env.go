package config

import "os"

// ApplyEnv overlays STASH_* environment variables onto cfg, skipping settings
// whose flag name is in changed. It fails on values that do not parse.
func ApplyEnv(cfg *Config, changed map[string]bool) error {
	s := newSetter(changed)

	s.setString(FlagCatalogURL, os.Getenv("STASH_CATALOG_URL"), &cfg.CatalogURL)
	s.setString(FlagFavoritesBackend, os.Getenv("STASH_FAVORITES_BACKEND"), &cfg.FavoritesBackend)
	s.setString(FlagFavoritesPath, os.Getenv("STASH_FAVORITES_PATH"), &cfg.FavoritesPath)
	s.setString(FlagLogFile, os.Getenv("STASH_LOG_FILE"), &cfg.LogFile)
	s.setString(FlagLogLevel, os.Getenv("STASH_LOG_LEVEL"), &cfg.LogLevel)
	s.setString(FlagMetricsAddr, os.Getenv("STASH_METRICS_ADDR"), &cfg.MetricsAddr)

	if err := s.setDuration(FlagTimeout, os.Getenv("STASH_REQUEST_TIMEOUT"), &cfg.RequestTimeout); err != nil {
		return err
	}
	if err := s.setDuration(FlagLoadingDwell, os.Getenv("STASH_LOADING_DWELL"), &cfg.LoadingDwell); err != nil {
		return err
	}
	if err := s.setIntFromString(FlagSponsoredEvery, os.Getenv("STASH_SPONSORED_EVERY"), &cfg.SponsoredEvery); err != nil {
		return err
	}
	if err := s.setBoolFromString(FlagWatchFavorites, os.Getenv("STASH_WATCH_FAVORITES"), &cfg.WatchFavorites); err != nil {
		return err
	}
	if err := s.setBoolFromString(FlagSponsored, os.Getenv("STASH_SPONSORED"), &cfg.Sponsored); err != nil {
		return err
	}
	return nil
}
