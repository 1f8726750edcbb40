// Package components provides shared rendering helpers for the TUI views.
package components

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/f3rmion/kyara/internal/jikan"
)

// Placeholder is shown for missing values.
const Placeholder = "N/A"

// Truncate shortens s to at most width display cells, ending in "…".
// Wide (CJK) runes count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// TruncateRunes cuts s after n runes and appends "..." when it was longer.
func TruncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimRight(string(r[:n]), " ") + "..."
}

// Wrap word-wraps s to width columns.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

// FormatCount renders n with the digit grouping of tag, or Placeholder for 0.
func FormatCount(n int, tag language.Tag) string {
	if n == 0 {
		return Placeholder
	}
	return message.NewPrinter(tag).Sprintf("%d", n)
}

// FormatScore renders an anime score with one decimal, or Placeholder.
func FormatScore(score *float64) string {
	if score == nil {
		return Placeholder
	}
	return fmt.Sprintf("%.1f", *score)
}

// OrPlaceholder returns s, or Placeholder when s is blank.
func OrPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// Voices formats up to n voice credits as "name (language)".
func Voices(vs []jikan.Voice, n int) []string {
	out := make([]string, 0, min(n, len(vs)))
	for i, v := range vs {
		if i >= n {
			break
		}
		out = append(out, fmt.Sprintf("%s (%s)", v.Person.Name, v.Language))
	}
	return out
}

// AnimeTitles returns the first n anime titles of a character.
func AnimeTitles(as []jikan.AnimeAppearance, n int) []string {
	out := make([]string, 0, min(n, len(as)))
	for i, a := range as {
		if i >= n {
			break
		}
		out = append(out, a.Anime.Title)
	}
	return out
}

// MangaTitles returns the first n manga titles of a character.
func MangaTitles(ms []jikan.MangaAppearance, n int) []string {
	out := make([]string, 0, min(n, len(ms)))
	for i, m := range ms {
		if i >= n {
			break
		}
		out = append(out, m.Manga.Title)
	}
	return out
}

// GenreNames returns the first n genre names.
func GenreNames(gs []jikan.Genre, n int) []string {
	out := make([]string, 0, min(n, len(gs)))
	for i, g := range gs {
		if i >= n {
			break
		}
		out = append(out, g.Name)
	}
	return out
}

// First returns at most n leading elements of ss.
func First(ss []string, n int) []string {
	if len(ss) <= n {
		return ss
	}
	return ss[:n]
}
