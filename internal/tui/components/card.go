package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"github.com/f3rmion/kyara/internal/jikan"
)

const (
	// CardWidth is the outer width of a grid card.
	CardWidth = 28
	// CardHeight is the outer height of a grid card.
	CardHeight = 6

	FavoriteOn  = "★"
	FavoriteOff = "☆"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(0, 1).
			Width(CardWidth - 2)

	cardSelectedStyle = cardStyle.
				BorderForeground(lipgloss.Color("#ffe66d"))

	cardNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f1faee"))

	cardKanjiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	cardMutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	favOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	favOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	rowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	rowSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(lipgloss.Color("#2d3436"))

	animeTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffe66d"))

	animeScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf"))
)

// FavoriteMark returns the star glyph for fav.
func FavoriteMark(fav bool) string {
	if fav {
		return favOnStyle.Render(FavoriteOn)
	}
	return favOffStyle.Render(FavoriteOff)
}

// CharacterCard renders a fixed-size grid card.
func CharacterCard(c jikan.Character, fav, selected bool, tag language.Tag) string {
	inner := CardWidth - 4
	name := Truncate(c.Name, inner-2)
	lines := []string{
		FavoriteMark(fav) + " " + cardNameStyle.Render(name),
		cardKanjiStyle.Render(Truncate(OrPlaceholder(c.NameKanji), inner)),
		cardMutedStyle.Render("♥ " + FormatCount(c.Favorites, tag)),
	}
	if len(c.Nicknames) > 0 {
		lines = append(lines, cardMutedStyle.Render(Truncate(strings.Join(c.Nicknames, ", "), inner)))
	} else {
		lines = append(lines, "")
	}

	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// CharacterRow renders a single-line list entry of the given width.
func CharacterRow(c jikan.Character, fav, selected bool, width int, tag language.Tag) string {
	count := "♥ " + FormatCount(c.Favorites, tag)
	kanji := ""
	if c.NameKanji != "" {
		kanji = " " + c.NameKanji
	}
	avail := width - lipgloss.Width(count) - 6
	label := Truncate(c.Name+kanji, avail)
	pad := max(1, avail-lipgloss.Width(label)+1)

	line := FavoriteMark(fav) + " " + cardNameStyle.Render(label) + strings.Repeat(" ", pad) + cardMutedStyle.Render(count)
	if selected {
		return rowSelectedStyle.Render(line)
	}
	return rowStyle.Render(line)
}

// AnimeCard renders a recommendation: title, score, genres, synopsis and
// link. The synopsis is cut at 200 runes.
func AnimeCard(a jikan.Anime, width int, selected bool) string {
	inner := max(10, width-4)
	var b strings.Builder
	b.WriteString(animeTitleStyle.Render(Truncate(a.Title, inner)))
	b.WriteString("\n")
	b.WriteString(animeScoreStyle.Render("⭐ " + FormatScore(a.Score)))
	if genres := GenreNames(a.Genres, 3); len(genres) > 0 {
		b.WriteString(cardMutedStyle.Render("  " + strings.Join(genres, " · ")))
	}
	b.WriteString("\n")
	synopsis := a.Synopsis
	if synopsis == "" {
		synopsis = "Sin sinopsis disponible."
	}
	b.WriteString(Wrap(TruncateRunes(synopsis, 200), inner))
	if a.URL != "" {
		b.WriteString("\n")
		b.WriteString(cardMutedStyle.Render(Truncate(a.URL, inner)))
	}

	style := cardStyle.Width(width - 2)
	if selected {
		style = cardSelectedStyle.Width(width - 2)
	}
	return style.Render(b.String())
}

// Grid lays cards out in as many columns as fit in width.
func Grid(cards []string, width int) string {
	cols := Columns(width)
	var rows []string
	for i := 0; i < len(cards); i += cols {
		end := min(i+cols, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Columns is how many grid cards fit in width.
func Columns(width int) int {
	return max(1, width/CardWidth)
}
