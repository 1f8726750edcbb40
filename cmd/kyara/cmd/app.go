package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/f3rmion/kyara/internal/catalog"
	"github.com/f3rmion/kyara/internal/config"
	"github.com/f3rmion/kyara/internal/explore"
	"github.com/f3rmion/kyara/internal/favorites"
	"github.com/f3rmion/kyara/internal/filter"
	"github.com/f3rmion/kyara/internal/jikan"
	"github.com/f3rmion/kyara/internal/logging"
)

// app bundles everything a command needs, built from the config.
type app struct {
	cfg      *config.Config
	locale   language.Tag
	client   *jikan.Client
	store    *favorites.Store
	explorer *explore.Aggregator
	ctrl     *catalog.Controller

	closers []io.Closer
}

// openApp loads the config, sets up logging and opens the favorites
// store. With toFile set, logs go to the configured log file instead of
// stderr so they do not corrupt the TUI.
func openApp(toFile bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, locale: filter.ParseLocale(cfg.UI.Locale)}
	if err := a.setupLogging(toFile); err != nil {
		return nil, err
	}

	a.client = jikan.NewClient(cfg.API.BaseURL,
		jikan.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		jikan.WithPerPage(cfg.API.PerPage),
		jikan.WithRateLimit(cfg.API.RateLimit),
		jikan.WithLogger(logging.WithComponent("jikan")),
	)

	var backend favorites.Backend
	if cfg.Storage.Ephemeral {
		backend = favorites.NewMemoryBackend()
	} else {
		db, err := favorites.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("opening favorites: %w", err)
		}
		backend = db
	}
	a.store = favorites.NewStore(backend,
		favorites.WithKey(cfg.Storage.Key),
		favorites.WithStoreLogger(logging.WithComponent("favorites")),
	)
	a.closers = append(a.closers, a.store)

	a.explorer = explore.New(a.client,
		explore.WithMaxCharacters(cfg.Explorer.MaxCharacters),
		explore.WithMaxAnime(cfg.Explorer.MaxAnime),
		explore.WithDelay(cfg.Explorer.Delay),
		explore.WithConcurrency(cfg.Explorer.Concurrency),
		explore.WithLogger(logging.WithComponent("explore")),
	)

	sortMode, _ := filter.ParseSortMode(cfg.UI.Sort)
	filterMode, _ := filter.ParseFilterMode(cfg.UI.Filter)
	a.ctrl = catalog.New(a.client, a.store, a.explorer,
		catalog.WithLocale(a.locale),
		catalog.WithLogger(logging.WithComponent("catalog")),
		catalog.WithInitialView(sortMode, filterMode, catalog.ParseDisplayMode(cfg.UI.ViewMode)),
	)

	logging.Debug().
		Str("base_url", cfg.API.BaseURL).
		Str("storage", cfg.Storage.Path).
		Bool("ephemeral", cfg.Storage.Ephemeral).
		Int("favorites", a.store.Count(a.store.Load())).
		Msg("kyara ready")
	return a, nil
}

func (a *app) setupLogging(toFile bool) error {
	level := a.cfg.Log.Level
	if viper.GetBool("verbose") {
		level = "debug"
	}

	var out io.Writer = os.Stderr
	switch {
	case toFile && a.cfg.Log.File != "":
		f, err := logging.OpenFile(a.cfg.Log.File)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, f)
		out = f
	case toFile:
		out = io.Discard
	}

	logging.Init(logging.Config{Level: level, Format: a.cfg.Log.Format, Output: out})
	return nil
}

// Close releases the store and the log file, newest first.
func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
