// Package app is the composition root for stash.
//
// # Overview
//
// Build wires the object graph shared by every entry point:
//
//	config.Config
//	  ├─> OpenRepository()        favorites.FileRepository or SQLiteRepository
//	  ├─> favorites.Open()        store, loads the persisted set once
//	  ├─> catalog.NewClient()     HTTP client with request timeout
//	  ├─> metrics.MustNew()       private Prometheus registry
//	  └─> coordinator.New()       owns the favorites Screen
//
// Run starts the TUI on top of that graph. The favorites file watcher and the
// optional metrics listener run in the same errgroup; when the TUI exits the
// group context is cancelled and everything stops together.
//
// List, ListFavoriteIDs and ToggleFavorite back the one-shot CLI commands.
// List loads once, waits for the first settled Screen and prints it with
// render.Text.
//
// # Error Handling
//
// Startup failures (unreadable favorites, bad catalog URL) are returned from
// Build. Catalog failures at runtime are Screen states, not errors, except in
// List where there is no screen to show them on.
package app
