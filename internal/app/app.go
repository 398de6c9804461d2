package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/five82/stash/internal/catalog"
	"github.com/five82/stash/internal/config"
	"github.com/five82/stash/internal/coordinator"
	"github.com/five82/stash/internal/favorites"
	"github.com/five82/stash/internal/metrics"
	"github.com/five82/stash/internal/prefs"
	"github.com/five82/stash/internal/ui"
)

// Options configure the stash application.
type Options struct {
	Config    config.Config
	PrefsPath string // empty uses ~/.config/stash/prefs.toml
	Logger    zerolog.Logger
}

// Services is the wired object graph shared by the TUI and one-shot commands.
type Services struct {
	Config      config.Config
	Store       *favorites.Store
	Coordinator *coordinator.Coordinator
	Registry    *prometheus.Registry
	Metrics     *metrics.Metrics

	repoCloser io.Closer
}

// Build opens the favorites repository and store, and wires the catalog
// client and coordinator. Close the result when done.
func Build(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Services, error) {
	repo, closer, err := OpenRepository(cfg)
	if err != nil {
		return nil, err
	}

	store, err := favorites.Open(ctx, repo, logger)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("open favorites: %w", err)
	}

	client, err := catalog.NewClient(cfg.CatalogURL, cfg.RequestTimeout)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init catalog client: %w", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.MustNew(reg)

	coord, err := coordinator.New(coordinator.Dependencies{
		Catalog:   catalog.NewSource(client, logger),
		Favorites: store,
		Logger:    logger,
		Metrics:   m,
	})
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	return &Services{
		Config:      cfg,
		Store:       store,
		Coordinator: coord,
		Registry:    reg,
		Metrics:     m,
		repoCloser:  closer,
	}, nil
}

// Close stops the coordinator and releases the repository.
func (s *Services) Close() error {
	s.Coordinator.Close()
	return s.repoCloser.Close()
}

// OpenRepository returns the favorites repository selected by cfg.
func OpenRepository(cfg config.Config) (favorites.Repository, io.Closer, error) {
	switch cfg.FavoritesBackend {
	case config.BackendSQLite:
		repo, err := favorites.OpenSQLiteRepository(cfg.FavoritesPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open favorites database: %w", err)
		}
		return repo, repo, nil
	case config.BackendFile, "":
		return favorites.NewFileRepository(cfg.FavoritesPath), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown favorites backend %q", cfg.FavoritesBackend)
	}
}

// Run boots the stash TUI until the user quits or ctx is cancelled. The
// favorites watcher and the metrics listener run alongside it and stop with it.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	log := opts.Logger

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	svc, err := Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Warn().Err(err).Msg("close services")
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	runCtx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		defer stop()
		return ui.Run(ui.Options{
			Context:        runCtx,
			Controller:     svc.Coordinator,
			Prefs:          userPrefs,
			PrefsPath:      opts.PrefsPath,
			Sponsored:      cfg.Sponsored,
			SponsoredEvery: cfg.SponsoredEvery,
			LoadingDwell:   cfg.LoadingDwell,
			LogFile:        cfg.LogFile,
			Logger:         log,
		})
	})

	if cfg.WatchFavorites && cfg.FavoritesBackend == config.BackendFile {
		g.Go(func() error {
			return favorites.Watch(runCtx, svc.Store, cfg.FavoritesPath, log)
		})
	}

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return metrics.Serve(runCtx, cfg.MetricsAddr, svc.Registry, log)
		})
	}

	log.Info().
		Str("catalog", cfg.CatalogURL).
		Str("backend", cfg.FavoritesBackend).
		Str("favorites", cfg.FavoritesPath).
		Msg("stash started")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
