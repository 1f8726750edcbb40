package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"github.com/f3rmion/kyara/internal/catalog"
	"github.com/f3rmion/kyara/internal/filter"
)

// Home view styles
var (
	homeBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc"))

	homeBarActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffe66d")).
				Bold(true)

	homeSearchStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ecdc4")).
			Padding(0, 1)
)

// HomeModel shows a page of characters, either the top listing or search
// results, with sort/filter controls and pagination.
type HomeModel struct {
	state catalog.State
	list  characterList

	input     textinput.Model
	searching bool

	width  int
	height int
}

// NewHomeModel creates the home view. isFav reports favorite membership.
func NewHomeModel(isFav func(id int) bool, locale language.Tag) HomeModel {
	ti := textinput.New()
	ti.Placeholder = "Buscar personajes..."
	ti.CharLimit = 100
	ti.Width = 40

	return HomeModel{
		list:  characterList{isFav: isFav, locale: locale},
		input: ti,
	}
}

// SetSize updates the view dimensions.
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = min(60, max(10, width-8))
}

// SetState replaces the rendered state. The cursor goes back to the top
// whenever a different page or query arrives.
func (m *HomeModel) SetState(st catalog.State) {
	if st.Page != m.state.Page || st.Query != m.state.Query || st.SearchMode != m.state.SearchMode {
		m.list.cursor = 0
	}
	m.state = st
	m.list.clampTo(len(st.Displayed))
}

// Capturing reports whether keystrokes belong to the search box.
func (m HomeModel) Capturing() bool {
	return m.searching
}

// Update handles messages.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.searching {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.searching {
		switch keyMsg.String() {
		case "enter":
			m.searching = false
			m.input.Blur()
			query := strings.TrimSpace(m.input.Value())
			if query == "" {
				return m, nil
			}
			return m, emit(SearchMsg{Query: query})
		case "esc":
			m.searching = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	chars := m.state.Displayed
	w := m.state.Window

	switch keyMsg.String() {
	case "/":
		m.searching = true
		m.input.SetValue(m.state.Query)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case "c":
		if m.state.SearchMode {
			m.input.SetValue("")
			return m, emit(ClearSearchMsg{})
		}
	case "j", "down":
		m.list.move(step(m.state.Display, m.width), len(chars))
	case "k", "up":
		m.list.move(-step(m.state.Display, m.width), len(chars))
	case "left", "h", "p":
		if m.state.ShowPagination && w.HasPrev {
			return m, emit(GoToPageMsg{Page: w.Current - 1})
		}
	case "right", "l", "n":
		if m.state.ShowPagination && w.HasNext {
			return m, emit(GoToPageMsg{Page: w.Current + 1})
		}
	case "g":
		if m.state.ShowPagination && w.Current != 1 {
			return m, emit(GoToPageMsg{Page: 1})
		}
	case "G":
		if m.state.ShowPagination && w.Current != w.Last {
			return m, emit(GoToPageMsg{Page: w.Last})
		}
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
	case "s":
		return m, emit(SetSortMsg{Sort: m.state.Sort.Next()})
	case "F":
		return m, emit(SetFilterMsg{Filter: m.state.Filter.Next()})
	case "x":
		if !filter.IsDefault(m.state.Filter, m.state.Sort) {
			return m, emit(ResetFiltersMsg{})
		}
	case "v":
		mode := catalog.List
		if m.state.Display == catalog.List {
			mode = catalog.Grid
		}
		return m, emit(SetDisplayMsg{Mode: mode})
	case "r":
		if m.state.Message.Retry {
			return m, emit(RetryMsg{})
		}
	}
	return m, nil
}

// View renders the home view.
func (m HomeModel) View() string {
	var b strings.Builder

	if m.state.SearchMode {
		b.WriteString(titleStyle.Render(fmt.Sprintf("Resultados para %q", m.state.Query)))
	} else {
		b.WriteString(titleStyle.Render("Personajes"))
	}
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(homeSearchStyle.Render(m.input.View()))
		b.WriteString("\n")
	}
	b.WriteString(m.renderBar())
	b.WriteString("\n\n")

	used := lipgloss.Height(b.String())
	footer := ""
	if m.state.ShowPagination && m.state.Message.IsZero() {
		footer = renderPagination(m.state.Window)
	}
	avail := max(1, m.height-used-lipgloss.Height(footer)-2)

	switch {
	case m.state.Loading && len(m.state.Displayed) == 0:
		b.WriteString(loadingStyle.Render("Cargando personajes..."))
	case !m.state.Message.IsZero():
		b.WriteString(renderMessage(m.state.Message, m.width))
	default:
		b.WriteString(m.list.render(m.state.Displayed, m.state.Display, m.width, avail))
	}

	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(footer)
	}
	return b.String()
}

func (m HomeModel) renderBar() string {
	field := func(label, value string, active bool) string {
		style := homeBarStyle
		if active {
			style = homeBarActiveStyle
		}
		return homeBarStyle.Render(label+": ") + style.Render(value)
	}
	parts := []string{
		field("Orden", m.state.Sort.Label(), m.state.Sort != filter.Default),
		field("Filtro", m.state.Filter.Label(), m.state.Filter != filter.All),
		field("Vista", string(m.state.Display), false),
	}
	bar := strings.Join(parts, helpStyle.Render("  •  "))
	return bar + "\n" + helpStyle.Render("/ buscar • s orden • F filtro • x restablecer • v vista • f favorito • ←/→ página")
}
