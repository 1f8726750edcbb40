package catalog

import (
	"fmt"

	"github.com/f3rmion/kyara/internal/favorites"
	"github.com/f3rmion/kyara/internal/filter"
	"github.com/f3rmion/kyara/internal/jikan"
	"github.com/f3rmion/kyara/internal/paging"
)

// Section is one of the top-level views.
type Section int

const (
	Home Section = iota
	Favorites
	Explorer
)

func (s Section) String() string {
	switch s {
	case Home:
		return "home"
	case Favorites:
		return "favorites"
	case Explorer:
		return "explorer"
	default:
		return fmt.Sprintf("section(%d)", int(s))
	}
}

// View distinguishes the list from a single character's detail.
type View int

const (
	ListView View = iota
	DetailView
)

// DisplayMode is how cards are laid out.
type DisplayMode string

const (
	Grid DisplayMode = "grid"
	List DisplayMode = "list"
)

// ParseDisplayMode accepts "grid" or "list". Anything else is Grid.
func ParseDisplayMode(s string) DisplayMode {
	if DisplayMode(s) == List {
		return List
	}
	return Grid
}

// MessageKind classifies what the content area shows instead of cards.
type MessageKind int

const (
	NoMessage MessageKind = iota
	NoResults
	NoCharacters
	NoMatches
	NoFavorites
	NoRecommendations
	ErrorMessage
)

// Message is a placeholder shown in place of cards.
type Message struct {
	Kind  MessageKind
	Title string
	Text  string
	// Query is set for NoResults.
	Query string
	// Retry is true when Retry would re-run the failed request.
	Retry bool
}

// IsZero reports whether there is nothing to show.
func (m Message) IsZero() bool { return m.Kind == NoMessage }

// State is a point-in-time copy of everything the UI renders.
type State struct {
	Section Section
	View    View

	Page       int
	SearchMode bool
	Query      string

	Sort    filter.SortMode
	Filter  filter.FilterMode
	Display DisplayMode

	// Characters is the unfiltered page as the API returned it, either a
	// listing page or a search page, never a mix.
	Characters []jikan.Character
	// Displayed is derived from Characters, or holds the favorites list in
	// the favorites section.
	Displayed []jikan.Character

	Pagination     *jikan.Pagination
	Window         paging.Window
	ShowPagination bool

	Loading bool
	Message Message

	Detail *jikan.Character

	Recommendations []jikan.Anime
	ExplorerLoading bool

	FavoritesCount int
	StorageErr     error
}

func (s State) clone() State {
	out := s
	out.Characters = cloneSlice(s.Characters)
	out.Displayed = cloneSlice(s.Displayed)
	out.Recommendations = cloneSlice(s.Recommendations)
	if s.Pagination != nil {
		p := *s.Pagination
		out.Pagination = &p
	}
	if s.Detail != nil {
		d := *s.Detail
		out.Detail = &d
	}
	out.Window.Pages = cloneSlice(s.Window.Pages)
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

func recordsToCharacters(recs []favorites.Record) []jikan.Character {
	out := make([]jikan.Character, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Character())
	}
	return out
}
