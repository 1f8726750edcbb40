package catalog

import (
	"context"
	"fmt"

	"github.com/f3rmion/kyara/internal/logging"
)

// ShowSection switches the top-level section.
//
// Home reloads the current page (re-running the search when one is
// active). Favorites lists every favorite, unfiltered and unpaginated.
// Explorer runs the recommender and blocks until it finishes.
func (c *Controller) ShowSection(ctx context.Context, s Section) error {
	switch s {
	case Home:
		c.mu.Lock()
		c.state.Section = Home
		c.state.View = ListView
		c.state.Detail = nil
		page, search, query := c.state.Page, c.state.SearchMode, c.state.Query
		c.mu.Unlock()

		if search && query != "" {
			return c.runSearch(ctx, query, page)
		}
		return c.runLoad(ctx, page)

	case Favorites:
		c.mu.Lock()
		defer c.mu.Unlock()
		c.supersede()
		c.state.Section = Favorites
		c.state.View = ListView
		c.state.Detail = nil
		c.renderFavorites()
		return nil

	case Explorer:
		return c.explore(ctx)

	default:
		return fmt.Errorf("unknown section %v", s)
	}
}

func (c *Controller) explore(ctx context.Context) error {
	ctx = withCorrelation(ctx)
	log := logging.Ctx(ctx, c.log)

	c.mu.Lock()
	c.supersede()
	token := c.gen
	c.state.Section = Explorer
	c.state.View = ListView
	c.state.Detail = nil
	c.state.ShowPagination = false
	c.state.ExplorerLoading = true
	c.state.Recommendations = nil
	c.state.Message = Message{}
	records := c.store.List(c.favs)
	c.mu.Unlock()

	log.Debug().Int("favorites", len(records)).Msg("building recommendations")
	recs := c.explorer.Aggregate(ctx, records)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(token, log, "explore") {
		return ErrStale
	}
	c.state.ExplorerLoading = false
	c.state.Recommendations = recs
	if len(recs) == 0 {
		c.state.Message = Message{
			Kind:  NoRecommendations,
			Title: "No hay recomendaciones disponibles",
			Text:  "Agrega algunos personajes a tus favoritos para descubrir anime increíbles.",
		}
	}
	return nil
}

// renderFavorites fills Displayed with the favorites. Callers hold c.mu.
func (c *Controller) renderFavorites() {
	recs := c.store.List(c.favs)
	c.state.Displayed = recordsToCharacters(recs)
	c.state.ShowPagination = false
	c.state.Message = Message{}
	if len(recs) == 0 {
		c.state.Message = Message{
			Kind:  NoFavorites,
			Title: "No tienes personajes favoritos",
			Text:  "Marca algunos personajes como favoritos desde la sección Home para verlos aquí.",
		}
	}
}

// ShowDetail fetches and shows one character. Pagination is hidden while
// the detail is open.
func (c *Controller) ShowDetail(ctx context.Context, id int) error {
	ctx = withCorrelation(ctx)
	log := logging.Ctx(ctx, c.log)

	c.mu.Lock()
	token := c.begin(retryOp{kind: retryDetail, id: id})
	c.state.View = DetailView
	c.state.Detail = nil
	c.state.ShowPagination = false
	c.mu.Unlock()

	ch, err := c.client.FetchCharacterDetail(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(token, log, "detail") {
		return ErrStale
	}
	c.state.Loading = false
	if err != nil {
		log.Error().Err(err).Int("character_id", id).Msg("loading character detail failed")
		c.showError("No se pudo cargar el personaje", "Error al cargar detalles: "+err.Error())
		return fmt.Errorf("loading character %d: %w", id, err)
	}
	c.state.Message = Message{}
	c.state.Detail = ch
	return nil
}

// BackToList closes the detail view. On the home section the current page
// is fetched again rather than restored from memory.
func (c *Controller) BackToList(ctx context.Context) error {
	c.mu.Lock()
	c.state.View = ListView
	c.state.Detail = nil
	section := c.state.Section
	page, search, query := c.state.Page, c.state.SearchMode, c.state.Query
	if section == Favorites {
		c.supersede()
		c.renderFavorites()
	}
	c.mu.Unlock()

	switch section {
	case Home:
		if search && query != "" {
			return c.runSearch(ctx, query, page)
		}
		return c.runLoad(ctx, page)
	}
	return nil
}
