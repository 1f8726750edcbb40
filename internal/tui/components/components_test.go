package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/f3rmion/kyara/internal/jikan"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Spike", Truncate("Spike", 10))
	assert.Equal(t, "Spike Sp…", Truncate("Spike Spiegel", 9))
	// Kanji are two cells wide.
	assert.Equal(t, "エル…", Truncate("エルヴィン", 5))
	assert.Empty(t, Truncate("x", 0))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "short", TruncateRunes("short", 200))
	long := strings.Repeat("á", 250)
	got := TruncateRunes(long, 200)
	assert.Equal(t, 203, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "45,000", FormatCount(45000, language.English))
	assert.Equal(t, Placeholder, FormatCount(0, language.English))
}

func TestFormatScore(t *testing.T) {
	s := 8.75
	assert.Equal(t, "8.8", FormatScore(&s))
	assert.Equal(t, Placeholder, FormatScore(nil))
}

func TestHeadHelpers(t *testing.T) {
	voices := []jikan.Voice{
		{Language: "Japanese", Person: jikan.Person{Name: "Yamadera, Kouichi"}},
		{Language: "English", Person: jikan.Person{Name: "Blum, Steven"}},
		{Language: "Spanish", Person: jikan.Person{Name: "Perez"}},
	}
	assert.Equal(t, []string{"Yamadera, Kouichi (Japanese)", "Blum, Steven (English)"}, Voices(voices, 2))

	anime := []jikan.AnimeAppearance{{Anime: jikan.MediaRef{Title: "A"}}, {Anime: jikan.MediaRef{Title: "B"}}}
	assert.Equal(t, []string{"A", "B"}, AnimeTitles(anime, 3))

	manga := []jikan.MangaAppearance{{Manga: jikan.MediaRef{Title: "M1"}}, {Manga: jikan.MediaRef{Title: "M2"}}, {Manga: jikan.MediaRef{Title: "M3"}}}
	assert.Equal(t, []string{"M1", "M2"}, MangaTitles(manga, 2))

	assert.Equal(t, []string{"a", "b", "c"}, First([]string{"a", "b", "c", "d"}, 3))
	assert.Equal(t, []string{"a"}, First([]string{"a"}, 3))
}

func TestCharacterCardSize(t *testing.T) {
	c := jikan.Character{MalID: 1, Name: "A very long character name that overflows", NameKanji: "長い名前", Favorites: 12, Nicknames: []string{"x"}}
	card := CharacterCard(c, true, false, language.English)
	assert.Equal(t, CardWidth, lipgloss.Width(card))
	assert.Equal(t, CardHeight, lipgloss.Height(card))
	assert.Contains(t, card, FavoriteOn)
}

func TestCharacterRowWidth(t *testing.T) {
	c := jikan.Character{MalID: 1, Name: "Levi", NameKanji: "リヴァイ", Favorites: 1000}
	row := CharacterRow(c, false, true, 60, language.English)
	assert.LessOrEqual(t, lipgloss.Width(row), 60)
	assert.Contains(t, row, "1,000")
	assert.Contains(t, row, FavoriteOff)
}

func TestAnimeCard(t *testing.T) {
	score := 9.1
	a := jikan.Anime{
		Title:    "Fullmetal Alchemist: Brotherhood",
		Score:    &score,
		URL:      "https://myanimelist.net/anime/5114",
		Synopsis: strings.Repeat("word ", 100),
		Genres:   []jikan.Genre{{Name: "Action"}, {Name: "Adventure"}, {Name: "Drama"}, {Name: "Fantasy"}},
	}
	card := AnimeCard(a, 50, false)
	assert.Contains(t, card, "9.1")
	assert.Contains(t, card, "Drama")
	assert.NotContains(t, card, "Fantasy")
	assert.LessOrEqual(t, lipgloss.Width(card), 50)
}

func TestGridColumns(t *testing.T) {
	assert.Equal(t, 1, Columns(10))
	assert.Equal(t, 3, Columns(CardWidth*3+5))

	cards := []string{"a", "b", "c"}
	assert.Equal(t, 2, lipgloss.Height(Grid(cards, CardWidth*2)))
}
