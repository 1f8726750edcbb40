package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/f3rmion/kyara/internal/catalog"
)

// FavoritesModel lists every saved character in the order they were added.
type FavoritesModel struct {
	state catalog.State
	list  characterList

	width  int
	height int
}

// NewFavoritesModel creates the favorites view.
func NewFavoritesModel(isFav func(id int) bool, locale language.Tag) FavoritesModel {
	return FavoritesModel{list: characterList{isFav: isFav, locale: locale}}
}

// SetSize updates the view dimensions.
func (m *FavoritesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetState replaces the rendered state.
func (m *FavoritesModel) SetState(st catalog.State) {
	m.state = st
	m.list.clampTo(len(st.Displayed))
}

// Update handles messages.
func (m FavoritesModel) Update(msg tea.Msg) (FavoritesModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	chars := m.state.Displayed
	switch keyMsg.String() {
	case "j", "down":
		m.list.move(step(m.state.Display, m.width), len(chars))
	case "k", "up":
		m.list.move(-step(m.state.Display, m.width), len(chars))
	case "l", "right":
		m.list.move(1, len(chars))
	case "h", "left":
		m.list.move(-1, len(chars))
	case "enter":
		if c, ok := m.list.selected(chars); ok {
			return m, emit(ShowDetailMsg{ID: c.MalID})
		}
	case "f", " ":
		if c, ok := m.list.selected(chars); ok {
			return m, emit(ToggleFavoriteMsg{Character: c})
		}
	case "y":
		if c, ok := m.list.selected(chars); ok && c.URL != "" {
			return m, emit(CopyMsg{Text: c.URL})
		}
	case "v":
		mode := catalog.List
		if m.state.Display == catalog.List {
			mode = catalog.Grid
		}
		return m, emit(SetDisplayMsg{Mode: mode})
	case "g":
		if len(chars) == 0 {
			return m, emit(GoHomeMsg{})
		}
	}
	return m, nil
}

// View renders the favorites view.
func (m FavoritesModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Favoritos (%d)", m.state.FavoritesCount)))
	b.WriteString("\n\n")

	if !m.state.Message.IsZero() {
		b.WriteString(renderMessage(m.state.Message, m.width))
		return b.String()
	}

	b.WriteString(helpStyle.Render("enter detalle • f quitar favorito • y copiar enlace • v vista"))
	b.WriteString("\n\n")
	b.WriteString(m.list.render(m.state.Displayed, m.state.Display, m.width, max(1, m.height-6)))
	return b.String()
}
