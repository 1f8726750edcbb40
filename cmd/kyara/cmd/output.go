package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"

	"github.com/f3rmion/kyara/internal/catalog"
	"github.com/f3rmion/kyara/internal/jikan"
	"github.com/f3rmion/kyara/internal/tui/components"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// printCharacters writes chars as a table, marking favorites with a star.
func printCharacters(w io.Writer, chars []jikan.Character, isFav func(int) bool, tag language.Tag) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "ID", "Nombre", "Kanji", "Favoritos").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, c := range chars {
		mark := components.FavoriteOff
		if isFav != nil && isFav(c.MalID) {
			mark = components.FavoriteOn
		}
		t.Row(
			mark,
			strconv.Itoa(c.MalID),
			components.Truncate(c.Name, 40),
			components.Truncate(components.OrPlaceholder(c.NameKanji), 20),
			components.FormatCount(c.Favorites, tag),
		)
	}
	fmt.Fprintln(w, t.Render())
}

// printPageFooter writes the pagination caption for a listing.
func printPageFooter(w io.Writer, st catalog.State) {
	if !st.ShowPagination {
		return
	}
	fmt.Fprintln(w, st.Window.Info())
	if st.Window.HasNext {
		fmt.Fprintf(w, "Siguiente página: --page %d\n", st.Window.Current+1)
	}
}

// printMessage writes a placeholder message in plain text.
func printMessage(w io.Writer, msg catalog.Message) {
	fmt.Fprintln(w, msg.Title)
	if msg.Text != "" {
		fmt.Fprintln(w, msg.Text)
	}
}

// printDetail writes everything known about a character.
func printDetail(w io.Writer, c *jikan.Character, fav bool, tag language.Tag) {
	fmt.Fprintf(w, "%s %s\n", components.FavoriteMark(fav), c.Name)
	fmt.Fprintf(w, "  Kanji:      %s\n", components.OrPlaceholder(c.NameKanji))
	fmt.Fprintf(w, "  Favoritos:  %s\n", components.FormatCount(c.Favorites, tag))
	if nicks := components.First(c.Nicknames, 3); len(nicks) > 0 {
		fmt.Fprintf(w, "  Apodos:     %s\n", strings.Join(nicks, ", "))
	}
	if c.URL != "" {
		fmt.Fprintf(w, "  URL:        %s\n", c.URL)
	}

	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(w, "\n%s:\n", title)
		for _, it := range items {
			fmt.Fprintf(w, "  - %s\n", it)
		}
	}
	list("Anime", components.AnimeTitles(c.Anime, 3))
	list("Manga", components.MangaTitles(c.Manga, 2))
	list("Actores de voz", components.Voices(c.Voices, 2))

	if about := strings.TrimSpace(c.About); about != "" {
		fmt.Fprintf(w, "\nAcerca del personaje:\n%s\n", components.Wrap(components.TruncateRunes(about, 800), 80))
	}
}

// printAnime writes one recommendation.
func printAnime(w io.Writer, i int, a jikan.Anime) {
	fmt.Fprintf(w, "%2d. %s  ⭐ %s\n", i+1, a.Title, components.FormatScore(a.Score))
	if genres := components.GenreNames(a.Genres, 3); len(genres) > 0 {
		fmt.Fprintf(w, "    %s\n", strings.Join(genres, " · "))
	}
	synopsis := a.Synopsis
	if synopsis == "" {
		synopsis = "Sin sinopsis disponible."
	}
	for _, line := range strings.Split(components.Wrap(components.TruncateRunes(synopsis, 200), 76), "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
	if a.URL != "" {
		fmt.Fprintf(w, "    %s\n", a.URL)
	}
}
