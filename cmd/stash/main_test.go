package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestFavoritesCommands_ToggleAndList(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "favorites.toml")
	common := []string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "--favorites-path", path}

	out := execute(t, append([]string{"favorites", "toggle", "org.alpha"}, common...)...)
	assert.Equal(t, "org.alpha added to favorites\n", out)

	execute(t, append([]string{"favorites", "toggle", "org.bravo"}, common...)...)
	out = execute(t, append([]string{"favorites", "list"}, common...)...)
	assert.Equal(t, "org.alpha\norg.bravo\n", out)
}

func TestResolve_FlagBeatsEnvBeatsFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STASH_SPONSORED_EVERY", "9")
	t.Setenv("STASH_LOG_LEVEL", "debug")

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("sponsored_every = 2\nlog_level = \"warn\"\nrequest_timeout = \"4s\"\n"), 0o600))

	root, state := newRoot()
	require.NoError(t, root.ParseFlags([]string{"--config", cfgPath, "--sponsored-every", "3"}))

	cfg, err := state.resolve(root)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.SponsoredEvery)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
}
