package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/five82/stash/internal/app"
	"github.com/five82/stash/internal/config"
	"github.com/five82/stash/internal/logging"
)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stash: %v\n", err)
		os.Exit(1)
	}
}

// cliState is shared by every subcommand: the flag-backed config and the
// config file path.
type cliState struct {
	cfg       config.Config
	cfgPath   string
	prefsPath string
}

// resolve layers the config file and STASH_* variables under the flags that
// were set explicitly on cmd.
func (s *cliState) resolve(cmd *cobra.Command) (config.Config, error) {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfg := s.cfg
	if err := config.ApplyFile(&cfg, s.cfgPath, changed); err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := config.ApplyEnv(&cfg, changed); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Finalize(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *cliState) {
	state := &cliState{cfg: config.Default()}

	root := &cobra.Command{
		Use:           "stash",
		Short:         "Browse your favorite catalog items in the terminal",
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := state.resolve(cmd)
			if err != nil {
				return err
			}
			log, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closer.Close()

			return app.Run(cmd.Context(), app.Options{
				Config:    cfg,
				PrefsPath: state.prefsPath,
				Logger:    log,
			})
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&state.cfgPath, "config", "", "config file (default ~/.config/stash/config.toml)")
	flags.StringVar(&state.prefsPath, "prefs", "", "preferences file (default ~/.config/stash/prefs.toml)")
	flags.StringVar(&state.cfg.CatalogURL, config.FlagCatalogURL, state.cfg.CatalogURL, "catalog service base URL")
	flags.DurationVar(&state.cfg.RequestTimeout, config.FlagTimeout, state.cfg.RequestTimeout, "catalog request timeout")
	flags.StringVar(&state.cfg.FavoritesBackend, config.FlagFavoritesBackend, state.cfg.FavoritesBackend, "favorites storage: file or sqlite")
	flags.StringVar(&state.cfg.FavoritesPath, config.FlagFavoritesPath, "", "favorites file or database path")
	flags.BoolVar(&state.cfg.Sponsored, config.FlagSponsored, state.cfg.Sponsored, "interleave sponsored rows")
	flags.IntVar(&state.cfg.SponsoredEvery, config.FlagSponsoredEvery, state.cfg.SponsoredEvery, "insert a sponsored row after every N favorites")
	flags.StringVar(&state.cfg.LogFile, config.FlagLogFile, state.cfg.LogFile, "log file for the TUI (empty disables)")
	flags.StringVar(&state.cfg.LogLevel, config.FlagLogLevel, state.cfg.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&state.cfg.MetricsAddr, config.FlagMetricsAddr, "", "serve Prometheus metrics on this address")

	root.AddCommand(newListCmd(state), newFavoritesCmd(state))
	return root, state
}

// withServices resolves config, builds the object graph for a one-shot
// command and logs to stderr.
func withServices(state *cliState, cmd *cobra.Command, fn func(*app.Services) error) error {
	cfg, err := state.resolve(cmd)
	if err != nil {
		return err
	}
	log := logging.Stderr(cfg.LogLevel)
	svc, err := app.Build(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Warn().Err(err).Msg("close services")
		}
	}()
	return fn(svc)
}

func newListCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the favorites view once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(state, cmd, func(svc *app.Services) error {
				return app.List(cmd.Context(), svc, cmd.OutOrStdout())
			})
		},
	}
}

func newFavoritesCmd(state *cliState) *cobra.Command {
	favs := &cobra.Command{
		Use:   "favorites",
		Short: "Inspect or edit stored favorites without the catalog",
	}

	favs.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print stored favorite ids",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withServices(state, cmd, func(svc *app.Services) error {
					return app.ListFavoriteIDs(svc, cmd.OutOrStdout())
				})
			},
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Add or remove one favorite id",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withServices(state, cmd, func(svc *app.Services) error {
					return app.ToggleFavorite(cmd.Context(), svc, args[0], cmd.OutOrStdout())
				})
			},
		},
	)
	return favs
}
