// Package filter derives the displayed character list from a loaded page.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/f3rmion/kyara/internal/jikan"
)

// FilterMode selects which characters survive the filter step.
type FilterMode string

const (
	All           FilterMode = "all"
	FavoritesOnly FilterMode = "favorites-only"
	NonFavorites  FilterMode = "non-favorites"
)

// SortMode selects the ordering applied after filtering.
type SortMode string

const (
	Default        SortMode = "default"
	NameAsc        SortMode = "name-asc"
	NameDesc       SortMode = "name-desc"
	FavoritesFirst SortMode = "favorites"
)

// FilterModes lists the filter modes in cycling order.
var FilterModes = []FilterMode{All, FavoritesOnly, NonFavorites}

// SortModes lists the sort modes in cycling order.
var SortModes = []SortMode{Default, NameAsc, NameDesc, FavoritesFirst}

// Favorites answers membership questions for the filter.
type Favorites interface {
	Has(id int) bool
}

// ParseFilterMode accepts the string form of a FilterMode. Empty means All.
func ParseFilterMode(s string) (FilterMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return All, nil
	}
	for _, m := range FilterModes {
		if string(m) == s {
			return m, nil
		}
	}
	return All, fmt.Errorf("unknown filter %q (want one of all, favorites-only, non-favorites)", s)
}

// ParseSortMode accepts the string form of a SortMode. Empty means Default.
func ParseSortMode(s string) (SortMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default, nil
	}
	for _, m := range SortModes {
		if string(m) == s {
			return m, nil
		}
	}
	return Default, fmt.Errorf("unknown sort %q (want one of default, name-asc, name-desc, favorites)", s)
}

// IsDefault reports whether f and s leave the page untouched.
func IsDefault(f FilterMode, s SortMode) bool {
	return (f == All || f == "") && (s == Default || s == "")
}

// Next returns the mode after m in FilterModes, wrapping around.
func (m FilterMode) Next() FilterMode {
	i := slices.Index(FilterModes, m)
	return FilterModes[(i+1)%len(FilterModes)]
}

// Next returns the mode after m in SortModes, wrapping around.
func (m SortMode) Next() SortMode {
	i := slices.Index(SortModes, m)
	return SortModes[(i+1)%len(SortModes)]
}

// Label is the short human name shown in the UI.
func (m FilterMode) Label() string {
	switch m {
	case FavoritesOnly:
		return "Solo favoritos"
	case NonFavorites:
		return "Sin favoritos"
	default:
		return "Todos"
	}
}

// Label is the short human name shown in the UI.
func (m SortMode) Label() string {
	switch m {
	case NameAsc:
		return "Nombre A-Z"
	case NameDesc:
		return "Nombre Z-A"
	case FavoritesFirst:
		return "Favoritos primero"
	default:
		return "Por defecto"
	}
}

type options struct {
	locale language.Tag
}

// Option configures Apply.
type Option func(*options)

// WithLocale sets the collation language for name sorts.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// Apply filters and sorts chars. The input slice is never modified; the
// result is always a fresh slice. All sorts are stable, so characters that
// compare equal keep their page order.
func Apply(chars []jikan.Character, f FilterMode, s SortMode, favs Favorites, opts ...Option) []jikan.Character {
	o := options{locale: language.Und}
	for _, opt := range opts {
		opt(&o)
	}

	out := make([]jikan.Character, 0, len(chars))
	for _, c := range chars {
		if keep(c, f, favs) {
			out = append(out, c)
		}
	}

	switch s {
	case NameAsc, NameDesc:
		// Collators are not safe for concurrent use.
		col := collate.New(o.locale)
		slices.SortStableFunc(out, func(a, b jikan.Character) int {
			cmp := col.CompareString(a.Name, b.Name)
			if s == NameDesc {
				return -cmp
			}
			return cmp
		})
	case FavoritesFirst:
		slices.SortStableFunc(out, func(a, b jikan.Character) int {
			return rank(a, favs) - rank(b, favs)
		})
	}
	return out
}

func keep(c jikan.Character, f FilterMode, favs Favorites) bool {
	switch f {
	case FavoritesOnly:
		return isFav(c.MalID, favs)
	case NonFavorites:
		return !isFav(c.MalID, favs)
	default:
		return true
	}
}

func rank(c jikan.Character, favs Favorites) int {
	if isFav(c.MalID, favs) {
		return 0
	}
	return 1
}

func isFav(id int, favs Favorites) bool {
	return favs != nil && favs.Has(id)
}

// ParseLocale parses a BCP 47 tag, falling back to language.Und.
func ParseLocale(s string) language.Tag {
	if s == "" {
		return language.Und
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und
	}
	return tag
}
