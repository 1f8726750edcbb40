package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/kyara/internal/catalog"
	"github.com/f3rmion/kyara/internal/jikan"
	"github.com/f3rmion/kyara/internal/tui/components"
)

// Height of one anime card in lines, used to decide how many fit.
const animeCardLines = 9

// ExplorerModel shows anime recommended from the user's favorites.
type ExplorerModel struct {
	state   catalog.State
	spinner spinner.Model

	cursor int
	top    int

	width  int
	height int
}

// NewExplorerModel creates the explorer view.
func NewExplorerModel() ExplorerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))
	return ExplorerModel{spinner: s}
}

// Init starts the spinner.
func (m ExplorerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetSize updates the view dimensions.
func (m *ExplorerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetState replaces the rendered state.
func (m *ExplorerModel) SetState(st catalog.State) {
	if st.ExplorerLoading {
		m.cursor, m.top = 0, 0
	}
	m.state = st
	m.cursor = clamp(m.cursor, 0, len(st.Recommendations)-1)
	m.scroll()
}

func (m ExplorerModel) visible() int {
	return max(1, (m.height-4)/animeCardLines)
}

func (m *ExplorerModel) scroll() {
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if n := m.visible(); m.cursor >= m.top+n {
		m.top = m.cursor - n + 1
	}
}

func (m ExplorerModel) selected() (jikan.Anime, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Recommendations) {
		return jikan.Anime{}, false
	}
	return m.state.Recommendations[m.cursor], true
}

// Update handles messages.
func (m ExplorerModel) Update(msg tea.Msg) (ExplorerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		n := len(m.state.Recommendations)
		switch msg.String() {
		case "j", "down":
			m.cursor = clamp(m.cursor+1, 0, n-1)
			m.scroll()
		case "k", "up":
			m.cursor = clamp(m.cursor-1, 0, n-1)
			m.scroll()
		case "r":
			if !m.state.ExplorerLoading {
				return m, emit(RefreshExplorerMsg{})
			}
		case "y":
			if a, ok := m.selected(); ok && a.URL != "" {
				return m, emit(CopyMsg{Text: a.URL})
			}
		case "g":
			if m.state.FavoritesCount == 0 {
				return m, emit(GoHomeMsg{})
			}
		}
	}
	return m, nil
}

// View renders the explorer view.
func (m ExplorerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Explorar"))
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Anime recomendado a partir de tus favoritos"))
	b.WriteString("\n\n")

	if m.state.ExplorerLoading {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(loadingStyle.Render("Buscando recomendaciones..."))
		return b.String()
	}
	if !m.state.Message.IsZero() {
		b.WriteString(renderMessage(m.state.Message, m.width))
		return b.String()
	}

	recs := m.state.Recommendations
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d recomendaciones • j/k mover • y copiar enlace • r actualizar", len(recs))))
	b.WriteString("\n\n")

	end := min(len(recs), m.top+m.visible())
	cards := make([]string, 0, end-m.top)
	for i := m.top; i < end; i++ {
		cards = append(cards, components.AnimeCard(recs[i], min(m.width, 90), i == m.cursor))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	return b.String()
}
