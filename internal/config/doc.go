// Package config resolves stash's runtime configuration.
//
// # Precedence
//
// Settings are layered, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. TOML file, ~/.config/stash/config.toml unless --config is given
//  3. STASH_* environment variables
//  4. Command-line flags that were set explicitly
//
// File and environment layers take a changed map of flag names; a setting
// whose flag is in the map is left alone. A missing config file is not an
// error, so stash runs without any configuration.
//
// # TOML Format
//
//	catalog_url = "http://127.0.0.1:7488"
//	request_timeout = "10s"
//	favorites_backend = "file"   # or "sqlite"
//	favorites_path = "~/.local/share/stash/favorites.toml"
//	watch_favorites = true
//	sponsored = true
//	sponsored_every = 6
//	loading_dwell = "250ms"
//	log_file = "~/.local/state/stash/stash.log"
//	log_level = "info"
//	metrics_addr = ""            # e.g. "127.0.0.1:9108"
//
// Every key is optional. Empty strings and non-positive numbers keep the
// value from the previous layer. Tilde paths are expanded by Finalize.
//
// # Derived Values
//
// When favorites_path is empty it follows the backend: favorites.toml for
// the file backend, favorites.db for sqlite.
package config
