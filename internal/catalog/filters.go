package catalog

import (
	"github.com/f3rmion/kyara/internal/filter"
	"github.com/f3rmion/kyara/internal/jikan"
)

// ToggleFavorite adds or removes ch and writes the favorites through to the
// store. refilter is true when the home list is filtered or sorted, in
// which case the caller should call ApplyFilters shortly afterwards so the
// change shows up without reloading the page.
func (c *Controller) ToggleFavorite(ch jikan.Character) (nowFavorite, refilter bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store.IsFavorite(ch.MalID, c.favs) {
		c.favs = c.store.Remove(ch.MalID, c.favs)
	} else {
		c.favs = c.store.Add(ch, c.favs)
		nowFavorite = true
	}
	c.state.FavoritesCount = c.store.Count(c.favs)
	c.state.StorageErr = c.store.Err()

	if c.state.Section == Favorites && c.state.View == ListView {
		c.renderFavorites()
	}
	refilter = c.state.Section == Home && !filter.IsDefault(c.state.Filter, c.state.Sort)
	c.log.Debug().Int("character_id", ch.MalID).Bool("favorite", nowFavorite).Msg("favorite toggled")
	return nowFavorite, refilter
}

// ApplyFilters recomputes the displayed list from the loaded page.
func (c *Controller) ApplyFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Section == Home {
		c.refresh()
	}
}

// SetSort changes the sort mode and recomputes the list.
func (c *Controller) SetSort(s filter.SortMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Sort = s
	if c.state.Section == Home {
		c.refresh()
	}
}

// SetFilter changes the favorites filter and recomputes the list.
func (c *Controller) SetFilter(f filter.FilterMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Filter = f
	if c.state.Section == Home {
		c.refresh()
	}
}

// ResetFilters restores the default sort and filter.
func (c *Controller) ResetFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Sort = filter.Default
	c.state.Filter = filter.All
	if c.state.Section == Home {
		c.refresh()
	}
}

// SetDisplayMode switches between grid and list cards.
func (c *Controller) SetDisplayMode(m DisplayMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Display = m
}
