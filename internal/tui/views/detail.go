package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"github.com/f3rmion/kyara/internal/catalog"
	"github.com/f3rmion/kyara/internal/jikan"
	"github.com/f3rmion/kyara/internal/tui/components"
)

const (
	// PortraitCols and PortraitRows size the detail portrait in cells.
	PortraitCols = 24
	PortraitRows = 12

	aboutLimit = 800
)

// Detail view styles
var (
	detailNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffe66d"))

	detailKanjiStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4ecdc4"))

	detailSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B")).
				MarginTop(1)

	detailBulletStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1faee")).
				PaddingLeft(2)

	detailPortraitStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#3d5a80")).
				Width(PortraitCols).
				Height(PortraitRows).
				Align(lipgloss.Center, lipgloss.Center).
				MarginRight(2)
)

// DetailModel shows one character's full record in a scrollable viewport.
type DetailModel struct {
	viewport viewport.Model

	character *jikan.Character
	message   catalog.Message
	favorite  bool
	locale    language.Tag

	portraits      bool
	portrait       string
	portraitFailed bool

	width  int
	height int
}

// NewDetailModel creates the detail view. With portraits off the image
// column is left out.
func NewDetailModel(locale language.Tag, portraits bool) DetailModel {
	return DetailModel{
		viewport:  viewport.New(0, 0),
		locale:    locale,
		portraits: portraits,
	}
}

// SetSize updates the view dimensions.
func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-3)
	m.refresh()
}

// SetState shows st.Detail, or the loading/error placeholder while there is
// none. A different character resets scroll and portrait.
func (m *DetailModel) SetState(st catalog.State, favorite bool) {
	c := st.Detail
	if c == nil || m.character == nil || c.MalID != m.character.MalID {
		m.portrait = ""
		m.portraitFailed = false
		m.viewport.GotoTop()
	}
	m.character = c
	m.message = st.Message
	m.favorite = favorite
	m.refresh()
}

// SetPortrait installs a rendered portrait for character id. An empty
// rendering marks the image as unavailable.
func (m *DetailModel) SetPortrait(id int, rendered string) {
	if m.character == nil || m.character.MalID != id {
		return
	}
	m.portrait = rendered
	m.portraitFailed = rendered == ""
	m.refresh()
}

// WantsPortrait reports whether the current character still needs its
// image fetched, and from where.
func (m DetailModel) WantsPortrait() (id int, url string, ok bool) {
	if !m.portraits || m.character == nil || m.portrait != "" || m.portraitFailed {
		return 0, "", false
	}
	url = m.character.Images.Best()
	return m.character.MalID, url, url != ""
}

// Character returns the character being shown, if any.
func (m DetailModel) Character() *jikan.Character {
	return m.character
}

// Update handles messages.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "backspace":
			return m, emit(BackMsg{})
		case "r":
			if m.character == nil && m.message.Retry {
				return m, emit(RetryMsg{})
			}
			return m, nil
		case "f", " ":
			if m.character != nil {
				return m, emit(ToggleFavoriteMsg{Character: *m.character})
			}
			return m, nil
		case "y":
			if m.character != nil && m.character.URL != "" {
				return m, emit(CopyMsg{Text: m.character.URL})
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m DetailModel) View() string {
	var b strings.Builder
	if m.character == nil {
		b.WriteString(helpStyle.Render("← Volver a la lista (esc)"))
		b.WriteString("\n\n")
		if m.message.IsZero() {
			b.WriteString(loadingStyle.Render("Cargando detalles..."))
		} else {
			b.WriteString(renderMessage(m.message, m.width))
		}
		return b.String()
	}
	b.WriteString(helpStyle.Render("← Volver a la lista (esc) • f favorito • y copiar enlace • j/k desplazar"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	return b.String()
}

func (m *DetailModel) refresh() {
	if m.character == nil {
		m.viewport.SetContent("")
		return
	}
	if !m.portraits {
		m.viewport.SetContent(m.renderInfo(max(20, m.width-2)))
		return
	}

	portrait := m.portrait
	if portrait == "" {
		portrait = helpStyle.Render("Sin imagen")
		if m.character.Images.Best() != "" && !m.portraitFailed {
			portrait = loadingStyle.Render("Cargando imagen...")
		}
	}
	left := detailPortraitStyle.Render(portrait)
	infoWidth := max(20, m.width-lipgloss.Width(left)-2)
	info := m.renderInfo(infoWidth)

	if m.width < PortraitCols*2+20 {
		m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, left, info))
		return
	}
	m.viewport.SetContent(lipgloss.JoinHorizontal(lipgloss.Top, left, info))
}

func (m DetailModel) renderInfo(width int) string {
	c := m.character
	var b strings.Builder

	b.WriteString(components.FavoriteMark(m.favorite) + " " + detailNameStyle.Render(c.Name))
	b.WriteString("\n")
	b.WriteString(detailKanjiStyle.Render(components.OrPlaceholder(c.NameKanji)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("♥ Favoritos: ") + valueStyle.Render(components.FormatCount(c.Favorites, m.locale)))
	b.WriteString("\n")

	if nicks := components.First(c.Nicknames, 3); len(nicks) > 0 {
		b.WriteString(labelStyle.Render("Apodos: ") + valueStyle.Render(strings.Join(nicks, ", ")))
		b.WriteString("\n")
	}

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString(detailSectionStyle.Render(title))
		b.WriteString("\n")
		for _, it := range items {
			b.WriteString(detailBulletStyle.Render("• " + components.Truncate(it, width-4)))
			b.WriteString("\n")
		}
	}
	section("Anime", components.AnimeTitles(c.Anime, 3))
	section("Manga", components.MangaTitles(c.Manga, 2))
	section("Actores de voz", components.Voices(c.Voices, 2))

	b.WriteString(detailSectionStyle.Render("Acerca del personaje"))
	b.WriteString("\n")
	about := strings.TrimSpace(c.About)
	if about == "" {
		b.WriteString(helpStyle.Render("No hay información disponible."))
	} else {
		about = components.TruncateRunes(about, aboutLimit)
		b.WriteString(valueStyle.Render(components.Wrap(about, width)))
	}

	if c.URL != "" {
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("MyAnimeList: %s", c.URL)))
	}
	return b.String()
}
