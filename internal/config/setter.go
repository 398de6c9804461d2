package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Command-line flag names. File and environment values for a setting are
// ignored when its flag was set explicitly.
const (
	FlagCatalogURL       = "catalog-url"
	FlagTimeout          = "timeout"
	FlagFavoritesBackend = "favorites-backend"
	FlagFavoritesPath    = "favorites-path"
	FlagWatchFavorites   = "watch-favorites"
	FlagSponsored        = "sponsored"
	FlagSponsoredEvery   = "sponsored-every"
	FlagLoadingDwell     = "loading-dwell"
	FlagLogFile          = "log-file"
	FlagLogLevel         = "log-level"
	FlagMetricsAddr      = "metrics-addr"
)

// setter applies values while respecting flag precedence.
type setter struct {
	changed map[string]bool
}

func newSetter(changed map[string]bool) *setter {
	return &setter{changed: changed}
}

func (s *setter) setString(flag, value string, dst *string) {
	value = strings.TrimSpace(value)
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *setter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *setter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *setter) setDuration(flag, value string, dst *time.Duration) error {
	value = strings.TrimSpace(value)
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *setter) setIntFromString(flag, value string, dst *int) error {
	value = strings.TrimSpace(value)
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

func (s *setter) setBoolFromString(flag, value string, dst *bool) error {
	value = strings.TrimSpace(value)
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}
