// Package catalog owns the application state and coordinates the API
// client, the favorites store, the filter engine and the explorer.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/f3rmion/kyara/internal/favorites"
	"github.com/f3rmion/kyara/internal/filter"
	"github.com/f3rmion/kyara/internal/jikan"
	"github.com/f3rmion/kyara/internal/logging"
	"github.com/f3rmion/kyara/internal/paging"
)

// ErrStale is returned when a response arrived after a newer request had
// started. The response is dropped and state is left untouched.
var ErrStale = errors.New("catalog: response superseded by a newer request")

// Client fetches characters from the remote API.
type Client interface {
	FetchCharacterPage(ctx context.Context, page int) (*jikan.Page, error)
	SearchCharacters(ctx context.Context, query string, page int) (*jikan.Page, error)
	FetchCharacterDetail(ctx context.Context, id int) (*jikan.Character, error)
}

// Recommender builds explorer recommendations from favorites.
type Recommender interface {
	Aggregate(ctx context.Context, records []favorites.Record) []jikan.Anime
}

// Store persists favorites. *favorites.Store implements it.
type Store interface {
	Load() *favorites.Map
	IsFavorite(id int, m *favorites.Map) bool
	Add(c jikan.Character, m *favorites.Map) *favorites.Map
	Remove(id int, m *favorites.Map) *favorites.Map
	List(m *favorites.Map) []favorites.Record
	Count(m *favorites.Map) int
	Err() error
}

type retryKind int

const (
	retryNone retryKind = iota
	retryLoad
	retrySearch
	retryDetail
)

type retryOp struct {
	kind  retryKind
	page  int
	query string
	id    int
}

// Controller is the single owner of State. All methods are safe for
// concurrent use; blocking methods release the lock while waiting on the
// network.
type Controller struct {
	client   Client
	store    Store
	explorer Recommender
	locale   language.Tag
	log      zerolog.Logger

	mu    sync.Mutex
	state State
	favs  *favorites.Map
	gen   uint64
	retry retryOp
}

// Option configures a Controller.
type Option func(*Controller)

// WithLocale sets the collation used by name sorts.
func WithLocale(tag language.Tag) Option {
	return func(c *Controller) { c.locale = tag }
}

// WithLogger sets the controller's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithInitialView seeds sort, filter and display mode.
func WithInitialView(s filter.SortMode, f filter.FilterMode, d DisplayMode) Option {
	return func(c *Controller) {
		c.state.Sort = s
		c.state.Filter = f
		c.state.Display = d
	}
}

// New returns a controller on the home section, page 1. Favorites are read
// from store once here and mirrored in memory afterwards.
func New(client Client, store Store, explorer Recommender, opts ...Option) *Controller {
	c := &Controller{
		client:   client,
		store:    store,
		explorer: explorer,
		locale:   language.Und,
		log:      zerolog.Nop(),
		state: State{
			Section: Home,
			View:    ListView,
			Page:    1,
			Sort:    filter.Default,
			Filter:  filter.All,
			Display: Grid,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.favs = store.Load()
	c.state.FavoritesCount = store.Count(c.favs)
	c.state.StorageErr = store.Err()
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Favorites returns the favorites in store order.
func (c *Controller) Favorites() []favorites.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.List(c.favs)
}

// IsFavorite reports whether id is a favorite.
func (c *Controller) IsFavorite(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.IsFavorite(id, c.favs)
}

// LoadPage loads a page of the plain character listing.
func (c *Controller) LoadPage(ctx context.Context, page int) error {
	return c.runLoad(ctx, page)
}

// GoToPage moves to page in whichever mode is active.
func (c *Controller) GoToPage(ctx context.Context, page int) error {
	c.mu.Lock()
	search, query := c.state.SearchMode, c.state.Query
	c.mu.Unlock()

	if search && query != "" {
		return c.runSearch(ctx, query, page)
	}
	return c.runLoad(ctx, page)
}

// Retry re-runs the request behind the current error message.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	op := c.retry
	c.mu.Unlock()

	switch op.kind {
	case retryLoad:
		return c.runLoad(ctx, op.page)
	case retrySearch:
		return c.runSearch(ctx, op.query, op.page)
	case retryDetail:
		return c.ShowDetail(ctx, op.id)
	default:
		return nil
	}
}

// begin starts a new request generation. Callers hold c.mu.
func (c *Controller) begin(op retryOp) uint64 {
	c.gen++
	c.retry = op
	c.state.Loading = true
	return c.gen
}

// supersede invalidates in-flight requests without starting a new one.
// Callers hold c.mu.
func (c *Controller) supersede() {
	c.gen++
	c.state.Loading = false
}

func (c *Controller) stale(token uint64, log *zerolog.Logger, what string) bool {
	if token == c.gen {
		return false
	}
	log.Debug().Uint64("token", token).Uint64("current", c.gen).Str("request", what).Msg("dropping stale response")
	return true
}

func (c *Controller) runLoad(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	ctx = withCorrelation(ctx)
	log := logging.Ctx(ctx, c.log)

	c.mu.Lock()
	token := c.begin(retryOp{kind: retryLoad, page: page})
	c.state.Section, c.state.View = Home, ListView
	c.state.Page = page
	c.mu.Unlock()

	log.Debug().Int("page", page).Msg("loading characters")
	p, err := c.client.FetchCharacterPage(ctx, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(token, log, "load") {
		return ErrStale
	}
	c.state.Loading = false
	if err != nil {
		log.Error().Err(err).Int("page", page).Msg("loading characters failed")
		c.showError("Error al cargar personajes", err.Error())
		return fmt.Errorf("loading page %d: %w", page, err)
	}
	c.applyPage(p, page)
	if len(p.Characters) == 0 {
		c.state.Message = Message{Kind: NoCharacters, Title: "No se encontraron personajes"}
		c.state.ShowPagination = false
	}
	return nil
}

func (c *Controller) runSearch(ctx context.Context, query string, page int) error {
	if page < 1 {
		page = 1
	}
	ctx = withCorrelation(ctx)
	log := logging.Ctx(ctx, c.log)

	c.mu.Lock()
	token := c.begin(retryOp{kind: retrySearch, query: query, page: page})
	c.state.Section, c.state.View = Home, ListView
	c.state.Page = page
	c.mu.Unlock()

	log.Debug().Str("query", query).Int("page", page).Msg("searching characters")
	p, err := c.client.SearchCharacters(ctx, query, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(token, log, "search") {
		return ErrStale
	}
	c.state.Loading = false
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("search failed")
		c.showError("Error al buscar personajes", "Error al buscar personajes. Inténtalo de nuevo.")
		return fmt.Errorf("searching %q: %w", query, err)
	}
	c.applyPage(p, page)
	if len(p.Characters) == 0 {
		c.state.Message = Message{
			Kind:  NoResults,
			Title: "No se encontraron personajes",
			Text:  fmt.Sprintf("No se encontraron resultados para: %q", query),
			Query: query,
		}
		c.state.ShowPagination = false
	}
	return nil
}

// applyPage stores a successful response. Callers hold c.mu.
func (c *Controller) applyPage(p *jikan.Page, page int) {
	c.state.Characters = p.Characters
	c.state.Pagination = p.Pagination
	c.state.Message = Message{}
	c.state.Detail = nil
	c.refresh()

	if p.Pagination == nil {
		c.state.ShowPagination = false
		return
	}
	current := p.Pagination.CurrentPage
	if current < 1 {
		current = page
	}
	c.state.Window = paging.NewWindow(current, p.Pagination.LastVisiblePage, p.Pagination.HasNextPage)
	c.state.ShowPagination = c.state.View == ListView
}

// refresh recomputes Displayed from Characters. Callers hold c.mu.
func (c *Controller) refresh() {
	st := &c.state
	if filter.IsDefault(st.Filter, st.Sort) {
		st.Displayed = st.Characters
	} else {
		st.Displayed = filter.Apply(st.Characters, st.Filter, st.Sort, c.favs, filter.WithLocale(c.locale))
	}

	if st.Message.Kind == NoMatches {
		st.Message = Message{}
	}
	if len(st.Characters) > 0 && len(st.Displayed) == 0 && st.Message.IsZero() {
		st.Message = Message{
			Kind:  NoMatches,
			Title: "Ningún personaje coincide con los filtros",
			Text:  fmt.Sprintf("Filtro: %s · Orden: %s", st.Filter.Label(), st.Sort.Label()),
		}
	}
}

// showError replaces the content with a retryable error. Callers hold c.mu.
func (c *Controller) showError(title, text string) {
	c.state.Message = Message{Kind: ErrorMessage, Title: title, Text: text, Retry: true}
	c.state.ShowPagination = false
}

func withCorrelation(ctx context.Context) context.Context {
	if logging.CorrelationIDFromContext(ctx) != "" {
		return ctx
	}
	return logging.ContextWithNewCorrelationID(ctx)
}
