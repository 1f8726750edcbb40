package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/f3rmion/kyara/internal/jikan"
)

type favSet map[int]bool

func (f favSet) Has(id int) bool { return f[id] }

func page() []jikan.Character {
	return []jikan.Character{
		{MalID: 1, Name: "Naruto Uzumaki"},
		{MalID: 2, Name: "Émilie"},
		{MalID: 3, Name: "akane"},
		{MalID: 4, Name: "Zoro"},
		{MalID: 5, Name: "Eren"},
		{MalID: 6, Name: "Naruto Uzumaki"},
	}
}

func ids(cs []jikan.Character) []int {
	out := make([]int, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.MalID)
	}
	return out
}

func TestApply(t *testing.T) {
	favs := favSet{2: true, 4: true, 6: true}

	tests := []struct {
		name   string
		filter FilterMode
		sort   SortMode
		want   []int
	}{
		{"default keeps page order", All, Default, []int{1, 2, 3, 4, 5, 6}},
		{"favorites only", FavoritesOnly, Default, []int{2, 4, 6}},
		{"non favorites", NonFavorites, Default, []int{1, 3, 5}},
		{"name ascending is locale aware and stable", All, NameAsc, []int{3, 2, 5, 1, 6, 4}},
		{"name descending keeps equal names in page order", All, NameDesc, []int{4, 1, 6, 5, 2, 3}},
		{"favorites first is a stable partition", All, FavoritesFirst, []int{2, 4, 6, 1, 3, 5}},
		{"filter then sort", NonFavorites, NameDesc, []int{1, 5, 3}},
		{"favorites only sorted by name", FavoritesOnly, NameAsc, []int{2, 6, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(page(), tt.filter, tt.sort, favs)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := page()
	before := append([]jikan.Character(nil), in...)

	for _, s := range SortModes {
		for _, f := range FilterModes {
			out := Apply(in, f, s, favSet{5: true})
			assert.Equal(t, before, in)
			if len(out) > 0 && len(in) > 0 {
				out[0].Name = "changed"
				assert.Equal(t, before, in, "result must not alias input")
			}
		}
	}
}

func TestFavoritesOnlyIsOrderedSubset(t *testing.T) {
	in := page()
	favs := favSet{6: true, 1: true, 3: true, 99: true}

	got := Apply(in, FavoritesOnly, Default, favs)
	require.Len(t, got, 3)
	pos := -1
	for _, c := range got {
		assert.True(t, favs.Has(c.MalID))
		i := indexOf(in, c.MalID)
		assert.Greater(t, i, pos)
		pos = i
	}
}

func indexOf(cs []jikan.Character, id int) int {
	for i, c := range cs {
		if c.MalID == id {
			return i
		}
	}
	return -1
}

func TestApplyNilFavorites(t *testing.T) {
	assert.Empty(t, Apply(page(), FavoritesOnly, Default, nil))
	assert.Len(t, Apply(page(), NonFavorites, FavoritesFirst, nil), 6)
	assert.NotNil(t, Apply(nil, All, Default, nil))
}

func TestApplyWithLocale(t *testing.T) {
	in := []jikan.Character{{MalID: 1, Name: "ch"}, {MalID: 2, Name: "d"}, {MalID: 3, Name: "c"}}
	assert.Equal(t, []int{3, 1, 2}, ids(Apply(in, All, NameAsc, nil, WithLocale(language.English))))
}

func TestParseModes(t *testing.T) {
	f, err := ParseFilterMode(" Favorites-Only ")
	require.NoError(t, err)
	assert.Equal(t, FavoritesOnly, f)

	f, err = ParseFilterMode("")
	require.NoError(t, err)
	assert.Equal(t, All, f)

	_, err = ParseFilterMode("mine")
	assert.Error(t, err)

	s, err := ParseSortMode("name-desc")
	require.NoError(t, err)
	assert.Equal(t, NameDesc, s)

	_, err = ParseSortMode("random")
	assert.Error(t, err)
}

func TestIsDefault(t *testing.T) {
	assert.True(t, IsDefault(All, Default))
	assert.True(t, IsDefault("", ""))
	assert.False(t, IsDefault(FavoritesOnly, Default))
	assert.False(t, IsDefault(All, NameAsc))
}

func TestNextCycles(t *testing.T) {
	assert.Equal(t, FavoritesOnly, All.Next())
	assert.Equal(t, All, NonFavorites.Next())
	assert.Equal(t, NameAsc, Default.Next())
	assert.Equal(t, Default, FavoritesFirst.Next())
	assert.Equal(t, Default, SortMode("bogus").Next())
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, language.Und, ParseLocale(""))
	assert.Equal(t, language.Und, ParseLocale("!!"))
	assert.Equal(t, language.Spanish, ParseLocale("es"))
}
