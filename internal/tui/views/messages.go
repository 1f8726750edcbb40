// Package views provides the individual views for the TUI. Views never
// touch application state directly: they render a catalog.State and emit
// request messages that the app turns into controller calls.
package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/f3rmion/kyara/internal/catalog"
	"github.com/f3rmion/kyara/internal/filter"
	"github.com/f3rmion/kyara/internal/jikan"
)

// SearchMsg asks for a name search.
type SearchMsg struct{ Query string }

// ClearSearchMsg leaves search mode.
type ClearSearchMsg struct{}

// GoToPageMsg asks for another page of the current listing or search.
type GoToPageMsg struct{ Page int }

// ToggleFavoriteMsg flips a character's favorite status.
type ToggleFavoriteMsg struct{ Character jikan.Character }

// ShowDetailMsg opens a character's detail view.
type ShowDetailMsg struct{ ID int }

// BackMsg closes the detail view.
type BackMsg struct{}

// SetSortMsg changes the sort mode.
type SetSortMsg struct{ Sort filter.SortMode }

// SetFilterMsg changes the favorites filter.
type SetFilterMsg struct{ Filter filter.FilterMode }

// ResetFiltersMsg restores default sort and filter.
type ResetFiltersMsg struct{}

// SetDisplayMsg switches between grid and list cards.
type SetDisplayMsg struct{ Mode catalog.DisplayMode }

// RetryMsg re-runs the failed request.
type RetryMsg struct{}

// RefreshExplorerMsg rebuilds the recommendations.
type RefreshExplorerMsg struct{}

// GoHomeMsg switches to the home section.
type GoHomeMsg struct{}

// CopyMsg copies text to the clipboard.
type CopyMsg struct{ Text string }

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
