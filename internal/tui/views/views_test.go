package views

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/f3rmion/kyara/internal/catalog"
	"github.com/f3rmion/kyara/internal/config"
	"github.com/f3rmion/kyara/internal/filter"
	"github.com/f3rmion/kyara/internal/jikan"
	"github.com/f3rmion/kyara/internal/paging"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// result runs cmd and returns the message it produces, or nil.
func result(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func sampleState() catalog.State {
	chars := []jikan.Character{
		{MalID: 1, Name: "Spike Spiegel", URL: "https://myanimelist.net/character/1"},
		{MalID: 2, Name: "Faye Valentine"},
		{MalID: 3, Name: "Jet Black"},
	}
	return catalog.State{
		Section:        catalog.Home,
		Page:           1,
		Sort:           filter.Default,
		Filter:         filter.All,
		Display:        catalog.List,
		Characters:     chars,
		Displayed:      chars,
		Window:         paging.NewWindow(1, 5, true),
		ShowPagination: true,
	}
}

func newHome(st catalog.State) HomeModel {
	m := NewHomeModel(func(id int) bool { return id == 2 }, language.English)
	m.SetSize(100, 40)
	m.SetState(st)
	return m
}

func TestHomeSearchInput(t *testing.T) {
	m := newHome(sampleState())

	m, _ = m.Update(key("/"))
	require.True(t, m.Capturing())

	m, _ = m.Update(key("naruto"))
	m, cmd := m.Update(key("enter"))
	assert.False(t, m.Capturing())
	assert.Equal(t, SearchMsg{Query: "naruto"}, result(cmd))
}

func TestHomeBlankSearchIsDropped(t *testing.T) {
	m := newHome(sampleState())

	m, _ = m.Update(key("/"))
	m, _ = m.Update(key("   "))
	m, cmd := m.Update(key("enter"))
	assert.False(t, m.Capturing())
	assert.Nil(t, result(cmd))
}

func TestHomeEscCancelsSearch(t *testing.T) {
	m := newHome(sampleState())

	m, _ = m.Update(key("/"))
	m, cmd := m.Update(key("esc"))
	assert.False(t, m.Capturing())
	assert.Nil(t, result(cmd))
}

func TestHomeKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want tea.Msg
	}{
		{"next page", []string{"right"}, GoToPageMsg{Page: 2}},
		{"next page n", []string{"n"}, GoToPageMsg{Page: 2}},
		{"last page", []string{"G"}, GoToPageMsg{Page: 5}},
		{"no previous on first page", []string{"left"}, nil},
		{"first page already", []string{"g"}, nil},
		{"open detail", []string{"j", "enter"}, ShowDetailMsg{ID: 2}},
		{"toggle favorite", []string{"f"}, ToggleFavoriteMsg{Character: jikan.Character{MalID: 1, Name: "Spike Spiegel", URL: "https://myanimelist.net/character/1"}}},
		{"toggle with space", []string{"j", "j", " "}, ToggleFavoriteMsg{Character: jikan.Character{MalID: 3, Name: "Jet Black"}}},
		{"cycle sort", []string{"s"}, SetSortMsg{Sort: filter.NameAsc}},
		{"cycle filter", []string{"F"}, SetFilterMsg{Filter: filter.FavoritesOnly}},
		{"reset with defaults is a no-op", []string{"x"}, nil},
		{"display toggle", []string{"v"}, SetDisplayMsg{Mode: catalog.Grid}},
		{"copy url", []string{"y"}, CopyMsg{Text: "https://myanimelist.net/character/1"}},
		{"copy without url", []string{"j", "y"}, nil},
		{"clear outside search mode", []string{"c"}, nil},
		{"retry without error", []string{"r"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newHome(sampleState())
			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = m.Update(key(k))
			}
			assert.Equal(t, tt.want, result(cmd))
		})
	}
}

func TestHomeSearchModeKeys(t *testing.T) {
	st := sampleState()
	st.SearchMode = true
	st.Query = "spike"
	st.Sort = filter.NameDesc
	m := newHome(st)

	_, cmd := m.Update(key("c"))
	assert.Equal(t, ClearSearchMsg{}, result(cmd))

	_, cmd = m.Update(key("x"))
	assert.Equal(t, ResetFiltersMsg{}, result(cmd))

	assert.Contains(t, m.View(), `Resultados para "spike"`)
}

func TestHomeRetryOnError(t *testing.T) {
	st := sampleState()
	st.Displayed = nil
	st.Message = catalog.Message{Kind: catalog.ErrorMessage, Title: "Error al cargar personajes", Text: "HTTP error: 500", Retry: true}
	m := newHome(st)

	_, cmd := m.Update(key("r"))
	assert.Equal(t, RetryMsg{}, result(cmd))

	view := m.View()
	assert.Contains(t, view, "Error al cargar personajes")
	assert.Contains(t, view, "r reintentar")
	assert.NotContains(t, view, "Página 1 de 5")
}

func TestHomeCursorResetsOnNewPage(t *testing.T) {
	m := newHome(sampleState())
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	assert.Equal(t, 2, m.list.cursor)

	st := sampleState()
	st.Page = 2
	st.Window = paging.NewWindow(2, 5, true)
	m.SetState(st)
	assert.Equal(t, 0, m.list.cursor)
}

func TestHomeCursorClampsWhenListShrinks(t *testing.T) {
	m := newHome(sampleState())
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))

	st := sampleState()
	st.Displayed = st.Displayed[:1]
	m.SetState(st)
	assert.Equal(t, 0, m.list.cursor)
}

func TestHomeViewShowsPagination(t *testing.T) {
	view := newHome(sampleState()).View()
	assert.Contains(t, view, "Spike Spiegel")
	assert.Contains(t, view, "Página 1 de 5")
	assert.Contains(t, view, paging.NextLabel)
	assert.NotContains(t, view, paging.PrevLabel)
}

func TestRenderPagination(t *testing.T) {
	out := renderPagination(paging.NewWindow(10, 50, true))
	for _, want := range []string{paging.PrevLabel, paging.NextLabel, "1", "8", "12", "50", paging.Ellipsis, "Página 10 de 50"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderMessageHints(t *testing.T) {
	tests := []struct {
		msg  catalog.Message
		hint string
	}{
		{catalog.Message{Kind: catalog.NoResults, Title: "Sin resultados"}, "c limpiar búsqueda"},
		{catalog.Message{Kind: catalog.NoMatches, Title: "Nada"}, "x restablecer filtros"},
		{catalog.Message{Kind: catalog.NoFavorites, Title: "Vacío"}, "1 ir a Home"},
		{catalog.Message{Kind: catalog.ErrorMessage, Title: "Error", Retry: true}, "r reintentar"},
	}
	for _, tt := range tests {
		out := renderMessage(tt.msg, 80)
		assert.Contains(t, out, tt.msg.Title)
		assert.Contains(t, out, tt.hint)
	}
}

func TestDetailKeys(t *testing.T) {
	c := &jikan.Character{MalID: 7, Name: "Vicious", URL: "https://myanimelist.net/character/7"}
	m := NewDetailModel(language.English, false)
	m.SetSize(100, 40)
	m.SetState(catalog.State{View: catalog.DetailView, Detail: c}, true)

	_, cmd := m.Update(key("esc"))
	assert.Equal(t, BackMsg{}, result(cmd))
	_, cmd = m.Update(key("backspace"))
	assert.Equal(t, BackMsg{}, result(cmd))
	_, cmd = m.Update(key("f"))
	assert.Equal(t, ToggleFavoriteMsg{Character: *c}, result(cmd))
	_, cmd = m.Update(key("y"))
	assert.Equal(t, CopyMsg{Text: c.URL}, result(cmd))
}

func TestDetailView(t *testing.T) {
	c := &jikan.Character{
		MalID:     7,
		Name:      "Vicious",
		Favorites: 12345,
		Nicknames: []string{"a", "b", "c", "d"},
		Anime: []jikan.AnimeAppearance{
			{Anime: jikan.MediaRef{Title: "Cowboy Bebop"}},
		},
		Voices: []jikan.Voice{{Language: "Japanese", Person: jikan.Person{Name: "Wakamoto Norio"}}},
	}
	m := NewDetailModel(language.English, false)
	m.SetSize(120, 60)
	m.SetState(catalog.State{View: catalog.DetailView, Detail: c}, false)

	view := m.View()
	assert.Contains(t, view, "Vicious")
	assert.Contains(t, view, "12,345")
	assert.Contains(t, view, "a, b, c")
	assert.NotContains(t, view, "a, b, c, d")
	assert.Contains(t, view, "Cowboy Bebop")
	assert.Contains(t, view, "Wakamoto Norio (Japanese)")
	assert.Contains(t, view, "No hay información disponible.")
}

func TestDetailLoadingAndError(t *testing.T) {
	m := NewDetailModel(language.English, false)
	m.SetSize(100, 40)

	m.SetState(catalog.State{View: catalog.DetailView}, false)
	assert.Contains(t, m.View(), "Cargando detalles")

	m.SetState(catalog.State{
		View:    catalog.DetailView,
		Message: catalog.Message{Kind: catalog.ErrorMessage, Title: "No se pudo cargar el personaje", Retry: true},
	}, false)
	assert.Contains(t, m.View(), "No se pudo cargar el personaje")
	_, cmd := m.Update(key("r"))
	assert.Equal(t, RetryMsg{}, result(cmd))
}

func TestDetailPortraitLifecycle(t *testing.T) {
	c := &jikan.Character{MalID: 7, Name: "Vicious", Images: jikan.Images{JPG: jikan.ImageURLs{ImageURL: "https://cdn/7.jpg"}}}
	m := NewDetailModel(language.English, true)
	m.SetSize(100, 40)
	m.SetState(catalog.State{View: catalog.DetailView, Detail: c}, false)

	id, url, ok := m.WantsPortrait()
	require.True(t, ok)
	assert.Equal(t, 7, id)
	assert.Equal(t, "https://cdn/7.jpg", url)
	assert.Contains(t, m.View(), "Cargando imagen")

	m.SetPortrait(99, "ignored")
	_, _, ok = m.WantsPortrait()
	assert.True(t, ok)

	m.SetPortrait(7, "")
	_, _, ok = m.WantsPortrait()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "Sin imagen")

	// A different character starts over.
	other := &jikan.Character{MalID: 8, Name: "Julia", Images: jikan.Images{JPG: jikan.ImageURLs{ImageURL: "https://cdn/8.jpg"}}}
	m.SetState(catalog.State{View: catalog.DetailView, Detail: other}, false)
	id, _, ok = m.WantsPortrait()
	assert.True(t, ok)
	assert.Equal(t, 8, id)
}

func TestDetailWithoutPortraits(t *testing.T) {
	c := &jikan.Character{MalID: 7, Name: "Vicious", Images: jikan.Images{JPG: jikan.ImageURLs{ImageURL: "https://cdn/7.jpg"}}}
	m := NewDetailModel(language.English, false)
	m.SetSize(100, 40)
	m.SetState(catalog.State{View: catalog.DetailView, Detail: c}, false)

	_, _, ok := m.WantsPortrait()
	assert.False(t, ok)
	assert.NotContains(t, m.View(), "Cargando imagen")
}

func TestFavoritesView(t *testing.T) {
	m := NewFavoritesModel(func(int) bool { return true }, language.English)
	m.SetSize(100, 40)

	m.SetState(catalog.State{
		Section: catalog.Favorites,
		Message: catalog.Message{Kind: catalog.NoFavorites, Title: "No tienes personajes favoritos"},
	})
	assert.Contains(t, m.View(), "No tienes personajes favoritos")
	_, cmd := m.Update(key("g"))
	assert.Equal(t, GoHomeMsg{}, result(cmd))

	chars := []jikan.Character{{MalID: 5, Name: "Ein"}, {MalID: 6, Name: "Ed"}}
	m.SetState(catalog.State{Section: catalog.Favorites, Displayed: chars, FavoritesCount: 2, Display: catalog.List})
	view := m.View()
	assert.Contains(t, view, "Favoritos (2)")
	assert.Contains(t, view, "Ein")
	assert.NotContains(t, view, "Página")

	m, _ = m.Update(key("j"))
	_, cmd = m.Update(key("f"))
	assert.Equal(t, ToggleFavoriteMsg{Character: chars[1]}, result(cmd))
	_, cmd = m.Update(key("g"))
	assert.Nil(t, result(cmd))
}

func TestExplorerView(t *testing.T) {
	m := NewExplorerModel()
	m.SetSize(100, 40)

	m.SetState(catalog.State{Section: catalog.Explorer, ExplorerLoading: true})
	assert.Contains(t, m.View(), "Buscando recomendaciones")
	_, cmd := m.Update(key("r"))
	assert.Nil(t, result(cmd))

	score := 8.75
	recs := []jikan.Anime{
		{MalID: 1, Title: "Cowboy Bebop", Score: &score, URL: "https://myanimelist.net/anime/1"},
		{MalID: 5, Title: "Cowboy Bebop: Tengoku no Tobira"},
	}
	m.SetState(catalog.State{Section: catalog.Explorer, Recommendations: recs, FavoritesCount: 1})
	view := m.View()
	assert.Contains(t, view, "Cowboy Bebop")
	assert.Contains(t, view, "8.8")

	_, cmd = m.Update(key("y"))
	assert.Equal(t, CopyMsg{Text: "https://myanimelist.net/anime/1"}, result(cmd))
	_, cmd = m.Update(key("r"))
	assert.Equal(t, RefreshExplorerMsg{}, result(cmd))
}

func TestExplorerNoRecommendations(t *testing.T) {
	m := NewExplorerModel()
	m.SetSize(100, 40)
	m.SetState(catalog.State{
		Section: catalog.Explorer,
		Message: catalog.Message{Kind: catalog.NoRecommendations, Title: "No hay recomendaciones disponibles"},
	})
	assert.Contains(t, m.View(), "No hay recomendaciones disponibles")
	_, cmd := m.Update(key("g"))
	assert.Equal(t, GoHomeMsg{}, result(cmd))
}

func TestSettingsTabs(t *testing.T) {
	cfg := config.Default("/tmp/cfg", "/tmp/data")
	m := NewSettingsModel(cfg, "/tmp/cfg")
	m.SetSize(100, 40)

	assert.Contains(t, m.View(), "https://api.jikan.moe/v4")

	m, _ = m.Update(key("l"))
	assert.Contains(t, m.View(), "max_anime")

	m, _ = m.Update(key("l"))
	m.SetStorageStatus(3, errors.New("disk full"))
	view := m.View()
	assert.Contains(t, view, "/tmp/data/kyara.db")
	assert.Contains(t, view, "disk full")

	m, _ = m.Update(key("h"))
	m, _ = m.Update(key("h"))
	m, _ = m.Update(key("h"))
	assert.Contains(t, m.View(), "file")
	assert.Contains(t, m.View(), "level")
}

func TestSettingsWithoutConfig(t *testing.T) {
	m := NewSettingsModel(nil, "/tmp/cfg")
	assert.Contains(t, m.View(), "kyara init")
}
