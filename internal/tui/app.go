package tui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/f3rmion/kyara/internal/catalog"
	"github.com/f3rmion/kyara/internal/config"
	"github.com/f3rmion/kyara/internal/tui/portrait"
	"github.com/f3rmion/kyara/internal/tui/views"
)

// RefilterDelay is how long after a favorite toggle the active filter and
// sort are re-applied.
const RefilterDelay = 250 * time.Millisecond

// ViewType represents the current active view
type ViewType int

const (
	ViewHome ViewType = iota
	ViewFavorites
	ViewExplorer
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ImageFetcher downloads character portraits.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) (image.Image, error)
}

// opDoneMsg reports that a controller call running in a command returned.
type opDoneMsg struct {
	op  string
	err error
}

type portraitMsg struct {
	id       int
	rendered string
}

type refilterMsg struct{ seq int }

type copiedMsg struct{ err error }

type clearStatusMsg struct{ seq int }

// Options configures NewApp.
type Options struct {
	Config    *config.Config
	ConfigDir string
	Images    ImageFetcher
	// Copy writes to the system clipboard.
	Copy   func(string) error
	Locale language.Tag
	Logger zerolog.Logger
}

// AppModel is the main TUI model. It owns no catalog state of its own:
// every change goes through the controller and is read back with Snapshot.
type AppModel struct {
	ctx    context.Context
	ctrl   *catalog.Controller
	images ImageFetcher
	cache  *portrait.Cache
	copy   func(string) error
	log    zerolog.Logger

	state      catalog.State
	pending    int
	exploring  bool
	portraitID int

	refilterSeq int
	status      string
	statusErr   bool
	statusSeq   int

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	homeView      views.HomeModel
	detailView    views.DetailModel
	favoritesView views.FavoritesModel
	explorerView  views.ExplorerModel
	settingsView  views.SettingsModel

	spinner  spinner.Model
	help     help.Model
	showHelp bool
}

// NewApp creates the TUI around ctrl. The first page load starts in Init.
func NewApp(ctx context.Context, ctrl *catalog.Controller, opts Options) AppModel {
	portraits := opts.Images != nil && (opts.Config == nil || opts.Config.UI.Portraits)

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = LoadingStyle

	h := help.New()
	h.ShowAll = true

	app := AppModel{
		ctx:          ctx,
		ctrl:         ctrl,
		images:       opts.Images,
		cache:        portrait.NewCache(),
		copy:         opts.Copy,
		log:          opts.Logger,
		sidebarWidth: 20,
		currentView:  ViewHome,
		menuItems: []MenuItem{
			{Label: "Home", View: ViewHome, Shortcut: "1"},
			{Label: "Favoritos", View: ViewFavorites, Shortcut: "2"},
			{Label: "Explorar", View: ViewExplorer, Shortcut: "3"},
			{Label: "Ajustes", View: ViewSettings, Shortcut: "4"},
		},

		homeView:      views.NewHomeModel(ctrl.IsFavorite, opts.Locale),
		detailView:    views.NewDetailModel(opts.Locale, portraits),
		favoritesView: views.NewFavoritesModel(ctrl.IsFavorite, opts.Locale),
		explorerView:  views.NewExplorerModel(),
		settingsView:  views.NewSettingsModel(opts.Config, opts.ConfigDir),

		spinner: s,
		help:    h,
		// Init's page load is counted up front since Init cannot modify m.
		pending: 1,
	}
	app.syncState()
	return app
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.explorerView.Init(),
		m.do("load", func(ctx context.Context) error { return m.ctrl.LoadPage(ctx, 1) }),
	)
}

// do runs fn in a command and reports back with an opDoneMsg. Callers
// increment m.pending.
func (m AppModel) do(op string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m *AppModel) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	m.pending++
	return m.do(op, fn)
}

// syncState pulls a fresh snapshot into every view.
func (m *AppModel) syncState() {
	st := m.ctrl.Snapshot()
	if m.exploring {
		st.ExplorerLoading = true
		st.Message = catalog.Message{}
	}
	m.state = st

	m.homeView.SetState(st)
	m.favoritesView.SetState(st)
	m.explorerView.SetState(st)
	fav := st.Detail != nil && m.ctrl.IsFavorite(st.Detail.MalID)
	m.detailView.SetState(st, fav)
	m.settingsView.SetStorageStatus(st.FavoritesCount, st.StorageErr)
}

func (m *AppModel) flash(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *AppModel) switchView(v ViewType) tea.Cmd {
	m.currentView = v
	m.sidebarActive = false
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}

	switch v {
	case ViewHome:
		return m.run("home", func(ctx context.Context) error {
			return m.ctrl.ShowSection(ctx, catalog.Home)
		})
	case ViewFavorites:
		if err := m.ctrl.ShowSection(m.ctx, catalog.Favorites); err != nil {
			m.log.Error().Err(err).Msg("switching to favorites failed")
		}
		m.syncState()
	case ViewExplorer:
		return m.startExplore()
	}
	return nil
}

func (m *AppModel) startExplore() tea.Cmd {
	m.exploring = true
	m.syncState()
	return m.run("explore", func(ctx context.Context) error {
		return m.ctrl.ShowSection(ctx, catalog.Explorer)
	})
}

// inDetail reports whether the detail view replaces the list.
func (m AppModel) inDetail() bool {
	return m.state.View == catalog.DetailView &&
		(m.currentView == ViewHome || m.currentView == ViewFavorites)
}

// capturing reports whether the focused view wants raw keystrokes.
func (m AppModel) capturing() bool {
	return m.currentView == ViewHome && !m.inDetail() && m.homeView.Capturing()
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if !m.capturing() {
			if cmd, handled := m.handleGlobalKey(msg); handled {
				return m, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 8
		contentHeight := m.height - 5

		m.homeView.SetSize(contentWidth, contentHeight)
		m.detailView.SetSize(contentWidth, contentHeight)
		m.favoritesView.SetSize(contentWidth, contentHeight)
		m.explorerView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		m.help.Width = min(m.width-8, 100)
		m.syncState()
		return m, nil

	case spinner.TickMsg:
		var cmd, ecmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.explorerView, ecmd = m.explorerView.Update(msg)
		return m, tea.Batch(cmd, ecmd)

	case opDoneMsg:
		m.pending = max(0, m.pending-1)
		if msg.op == "explore" {
			m.exploring = false
		}
		if msg.err != nil && !errors.Is(msg.err, catalog.ErrStale) {
			m.log.Debug().Err(msg.err).Str("op", msg.op).Msg("operation finished with error")
		}
		m.syncState()
		return m, m.fetchPortrait()

	case portraitMsg:
		if msg.id == m.portraitID {
			m.portraitID = 0
		}
		m.detailView.SetPortrait(msg.id, msg.rendered)
		return m, nil

	case refilterMsg:
		if msg.seq == m.refilterSeq {
			m.ctrl.ApplyFilters()
			m.syncState()
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("copy to clipboard failed")
			return m, m.flash("No se pudo copiar al portapapeles", true)
		}
		return m, m.flash("✓ Enlace copiado", false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case views.SearchMsg:
		m.currentView = ViewHome
		return m, m.run("search", func(ctx context.Context) error { return m.ctrl.Search(ctx, msg.Query) })

	case views.ClearSearchMsg:
		return m, m.run("clear", m.ctrl.ClearSearch)

	case views.GoToPageMsg:
		return m, m.run("page", func(ctx context.Context) error { return m.ctrl.GoToPage(ctx, msg.Page) })

	case views.ShowDetailMsg:
		return m, m.run("detail", func(ctx context.Context) error { return m.ctrl.ShowDetail(ctx, msg.ID) })

	case views.BackMsg:
		return m, m.run("back", m.ctrl.BackToList)

	case views.RetryMsg:
		return m, m.run("retry", m.ctrl.Retry)

	case views.RefreshExplorerMsg:
		return m, m.startExplore()

	case views.GoHomeMsg:
		return m, m.switchView(ViewHome)

	case views.ToggleFavoriteMsg:
		nowFav, refilter := m.ctrl.ToggleFavorite(msg.Character)
		m.syncState()
		text := "Eliminado de favoritos"
		if nowFav {
			text = "Añadido a favoritos"
		}
		cmds = append(cmds, m.flash(text, false))
		if refilter {
			m.refilterSeq++
			seq := m.refilterSeq
			cmds = append(cmds, tea.Tick(RefilterDelay, func(time.Time) tea.Msg {
				return refilterMsg{seq: seq}
			}))
		}
		return m, tea.Batch(cmds...)

	case views.SetSortMsg:
		m.ctrl.SetSort(msg.Sort)
		m.syncState()
		return m, nil

	case views.SetFilterMsg:
		m.ctrl.SetFilter(msg.Filter)
		m.syncState()
		return m, nil

	case views.ResetFiltersMsg:
		m.ctrl.ResetFilters()
		m.syncState()
		return m, nil

	case views.SetDisplayMsg:
		m.ctrl.SetDisplayMode(msg.Mode)
		m.syncState()
		return m, nil

	case views.CopyMsg:
		if m.copy == nil {
			return m, nil
		}
		copyFn, text := m.copy, msg.Text
		return m, func() tea.Msg { return copiedMsg{err: copyFn(text)} }
	}

	// Delegate to active view if not in sidebar mode
	if !m.sidebarActive {
		var cmd tea.Cmd
		switch {
		case m.inDetail():
			m.detailView, cmd = m.detailView.Update(msg)
		case m.currentView == ViewHome:
			m.homeView, cmd = m.homeView.Update(msg)
		case m.currentView == ViewFavorites:
			m.favoritesView, cmd = m.favoritesView.Update(msg)
		case m.currentView == ViewExplorer:
			m.explorerView, cmd = m.explorerView.Update(msg)
		case m.currentView == ViewSettings:
			m.settingsView, cmd = m.settingsView.Update(msg)
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleGlobalKey processes app-level bindings. handled is false when the
// key should reach the active view.
func (m *AppModel) handleGlobalKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, keys.Help):
		m.showHelp = true
		return nil, true
	case key.Matches(msg, keys.Home):
		return m.switchView(ViewHome), true
	case key.Matches(msg, keys.Favorites):
		return m.switchView(ViewFavorites), true
	case key.Matches(msg, keys.Explorer):
		return m.switchView(ViewExplorer), true
	case key.Matches(msg, keys.Settings):
		return m.switchView(ViewSettings), true
	case key.Matches(msg, keys.Sidebar):
		m.sidebarActive = !m.sidebarActive
		return nil, true
	}

	if msg.String() == "esc" && !m.inDetail() {
		m.sidebarActive = !m.sidebarActive
		return nil, true
	}

	// Sidebar navigation when active
	if m.sidebarActive {
		switch msg.String() {
		case "j", "down":
			if m.selectedMenu < len(m.menuItems)-1 {
				m.selectedMenu++
			}
		case "k", "up":
			if m.selectedMenu > 0 {
				m.selectedMenu--
			}
		case "enter", "l", "right":
			return m.switchView(m.menuItems[m.selectedMenu].View), true
		}
		return nil, true
	}
	return nil, false
}

// fetchPortrait starts downloading the detail image when one is wanted and
// not already in flight.
func (m *AppModel) fetchPortrait() tea.Cmd {
	id, url, ok := m.detailView.WantsPortrait()
	if !ok || m.images == nil || id == m.portraitID {
		return nil
	}
	if rendered, hit := m.cache.Get(url, views.PortraitCols, views.PortraitRows); hit {
		m.detailView.SetPortrait(id, rendered)
		return nil
	}
	m.portraitID = id

	ctx, images, cache, log := m.ctx, m.images, m.cache, m.log
	return func() tea.Msg {
		img, err := images.FetchImage(ctx, url)
		if err != nil {
			log.Warn().Err(err).Int("character_id", id).Str("url", url).Msg("fetching portrait failed")
			return portraitMsg{id: id}
		}
		return portraitMsg{id: id, rendered: cache.Render(url, img, views.PortraitCols, views.PortraitRows)}
	}
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Cargando..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch {
	case m.inDetail():
		content = m.detailView.View()
	case m.currentView == ViewHome:
		content = m.homeView.View()
	case m.currentView == ViewFavorites:
		content = m.favoritesView.View()
	case m.currentView == ViewExplorer:
		content = m.explorerView.View()
	case m.currentView == ViewSettings:
		content = m.settingsView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	body := lipgloss.NewStyle().Height(m.height - 5).MaxHeight(m.height - 5).Render(content)
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(body + "\n" + m.renderStatus())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

func (m AppModel) renderStatus() string {
	switch {
	case m.status != "" && m.statusErr:
		return ErrorStyle.Render(m.status)
	case m.status != "":
		return CopiedStyle.Render(m.status)
	case m.pending > 0 && !m.exploring:
		return m.spinner.View() + " " + LoadingStyle.Render("Cargando...")
	case m.state.StorageErr != nil:
		return ErrorStyle.Render("No se pudieron guardar los favoritos: " + m.state.StorageErr.Error())
	}
	return ""
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render("  キャラ kyara  "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label
		if item.View == ViewFavorites {
			label = fmt.Sprintf("%s (%d)", label, m.state.FavoritesCount)
		}

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Indicate current view but not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	usedHeight := len(items) + 4
	if m.height > usedHeight {
		for i := 0; i < m.height-usedHeight-2; i++ {
			items = append(items, "")
		}
	}

	items = append(items, SidebarHelpStyle.Render("? Ayuda  q Salir"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	text := HelpTitleStyle.Render("kyara - personajes de anime") + "\n" +
		m.help.View(keys) + "\n\n" +
		HelpFooterStyle.Render("Pulsa cualquier tecla para cerrar")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(text))
}
