package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/kyara/internal/catalog"
	"github.com/f3rmion/kyara/internal/paging"
)

// Shared view styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true).
			Italic(true)

	messageBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(1, 3).
			Align(lipgloss.Center)

	pageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Padding(0, 1)

	pageCurrentStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1a1a2e")).
				Background(lipgloss.Color("#ffe66d")).
				Padding(0, 1)

	pageNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4")).
			Bold(true).
			Padding(0, 1)
)

var messageIcons = map[catalog.MessageKind]string{
	catalog.NoResults:         "🔍",
	catalog.NoCharacters:      "🔍",
	catalog.NoMatches:         "🧹",
	catalog.NoFavorites:       "💔",
	catalog.NoRecommendations: "🎭",
	catalog.ErrorMessage:      "❌",
}

// renderMessage draws a placeholder box with the keys that act on it.
func renderMessage(msg catalog.Message, width int) string {
	var b strings.Builder
	if icon := messageIcons[msg.Kind]; icon != "" {
		b.WriteString(icon + "\n\n")
	}
	title := msg.Title
	if msg.Kind == catalog.ErrorMessage {
		b.WriteString(errorStyle.Render(title))
	} else {
		b.WriteString(labelStyle.Render(title))
	}
	if msg.Text != "" {
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(msg.Text))
	}

	var hints []string
	switch msg.Kind {
	case catalog.NoResults:
		hints = append(hints, "c limpiar búsqueda")
	case catalog.NoMatches:
		hints = append(hints, "x restablecer filtros")
	case catalog.NoFavorites, catalog.NoRecommendations:
		hints = append(hints, "1 ir a Home")
	}
	if msg.Retry {
		hints = append(hints, "r reintentar")
	}
	if len(hints) > 0 {
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(strings.Join(hints, " • ")))
	}

	box := messageBoxStyle.Render(b.String())
	return lipgloss.PlaceHorizontal(max(width, lipgloss.Width(box)), lipgloss.Center, box)
}

// renderPagination draws the page buttons and the "Página X de Y" caption.
func renderPagination(w paging.Window) string {
	var parts []string
	for _, item := range w.Items() {
		switch item {
		case paging.PrevLabel, paging.NextLabel:
			parts = append(parts, pageNavStyle.Render(item))
		case fmt.Sprint(w.Current):
			parts = append(parts, pageCurrentStyle.Render(item))
		case paging.Ellipsis:
			parts = append(parts, helpStyle.Render(item))
		default:
			parts = append(parts, pageStyle.Render(item))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...) + "\n" + helpStyle.Render(w.Info())
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
