package catalog

import (
	"context"
	"strings"
)

// Search runs a name search from page 1 and switches to the home section.
// A blank query does nothing.
func (c *Controller) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	c.mu.Lock()
	c.state.SearchMode = true
	c.state.Query = query
	c.state.Page = 1
	c.mu.Unlock()

	return c.runSearch(ctx, query, 1)
}

// SearchPage fetches another page of the active search. Outside search
// mode it loads the listing page instead.
func (c *Controller) SearchPage(ctx context.Context, page int) error {
	c.mu.Lock()
	search, query := c.state.SearchMode, c.state.Query
	c.mu.Unlock()

	if !search || query == "" {
		return c.runLoad(ctx, page)
	}
	return c.runSearch(ctx, query, page)
}

// ClearSearch leaves search mode and, when on the home section, reloads
// page 1 of the listing.
func (c *Controller) ClearSearch(ctx context.Context) error {
	c.mu.Lock()
	c.state.SearchMode = false
	c.state.Query = ""
	c.state.Page = 1
	onHome := c.state.Section == Home
	c.mu.Unlock()

	if onHome {
		return c.runLoad(ctx, 1)
	}
	return nil
}
