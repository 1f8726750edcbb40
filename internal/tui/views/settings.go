package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/kyara/internal/config"
)

// Settings view styles
var (
	settingsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B")).
				MarginBottom(1)

	settingsPathStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true).
				MarginBottom(1)

	settingsTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	settingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 2)

	settingsKeyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8dadc")).
				Width(18)

	settingsRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1faee"))

	settingsMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	settingsHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				MarginTop(1)
)

var settingsTabs = []string{"API", "Explorar", "Almacenamiento", "Interfaz", "Registro"}

// SettingsModel shows the effective configuration, read-only.
type SettingsModel struct {
	config    *config.Config
	configDir string

	favorites  int
	storageErr error

	tab int

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(cfg *config.Config, configDir string) SettingsModel {
	return SettingsModel{
		config:    cfg,
		configDir: configDir,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStorageStatus records the favorites count and the last storage error.
func (m *SettingsModel) SetStorageStatus(count int, err error) {
	m.favorites = count
	m.storageErr = err
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "right", "l":
			m.tab = (m.tab + 1) % len(settingsTabs)
		case "left", "h":
			m.tab--
			if m.tab < 0 {
				m.tab = len(settingsTabs) - 1
			}
		}
	}
	return m, nil
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(settingsTitleStyle.Render("Configuración"))
	b.WriteString("\n")
	b.WriteString(settingsPathStyle.Render("Config: " + m.configDir))
	b.WriteString("\n\n")

	tabViews := make([]string, 0, len(settingsTabs))
	for i, t := range settingsTabs {
		style := settingsTabStyle
		if i == m.tab {
			style = settingsTabActiveStyle
		}
		tabViews = append(tabViews, style.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabViews...))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80")).Render(strings.Repeat("─", max(0, min(m.width-4, 60)))))
	b.WriteString("\n\n")

	if m.config == nil {
		b.WriteString(settingsMutedStyle.Render("Sin configuración cargada"))
		b.WriteString("\n")
		b.WriteString(settingsMutedStyle.Render("Ejecuta 'kyara init' para crear el archivo de configuración"))
	} else {
		for _, row := range m.rows() {
			b.WriteString(settingsKeyStyle.Render(row[0]))
			b.WriteString(settingsRowStyle.Render(row[1]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(settingsHelpStyle.Render("h/l ←/→: cambiar pestaña • edita " + config.FileName + " y reinicia para aplicar cambios"))
	return b.String()
}

func (m SettingsModel) rows() [][2]string {
	c := m.config
	switch m.tab {
	case 0:
		return [][2]string{
			{"base_url", c.API.BaseURL},
			{"per_page", fmt.Sprint(c.API.PerPage)},
			{"timeout", c.API.Timeout.String()},
			{"rate_limit", c.API.RateLimit.String()},
		}
	case 1:
		return [][2]string{
			{"max_characters", fmt.Sprint(c.Explorer.MaxCharacters)},
			{"max_anime", fmt.Sprint(c.Explorer.MaxAnime)},
			{"delay", c.Explorer.Delay.String()},
			{"concurrency", fmt.Sprint(c.Explorer.Concurrency)},
		}
	case 2:
		path := c.Storage.Path
		if c.Storage.Ephemeral {
			path = "(en memoria)"
		}
		status := "ok"
		if m.storageErr != nil {
			status = m.storageErr.Error()
		}
		return [][2]string{
			{"path", path},
			{"key", c.Storage.Key},
			{"favoritos", fmt.Sprint(m.favorites)},
			{"estado", status},
		}
	case 3:
		return [][2]string{
			{"view_mode", c.UI.ViewMode},
			{"sort", c.UI.Sort},
			{"filter", c.UI.Filter},
			{"locale", c.UI.Locale},
			{"portraits", fmt.Sprint(c.UI.Portraits)},
		}
	default:
		return [][2]string{
			{"level", c.Log.Level},
			{"format", c.Log.Format},
			{"file", c.Log.File},
		}
	}
}
