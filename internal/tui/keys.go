package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding shown in the help overlay. Views match on the
// same key strings themselves; this table only drives the help text and
// the app-level bindings.
type keyMap struct {
	Home      key.Binding
	Favorites key.Binding
	Explorer  key.Binding
	Settings  key.Binding
	Sidebar   key.Binding
	Help      key.Binding
	Quit      key.Binding

	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Search   key.Binding
	Clear    key.Binding
	Favorite key.Binding
	Open     key.Binding
	Back     key.Binding
	Sort     key.Binding
	Filter   key.Binding
	Reset    key.Binding
	Display  key.Binding
	Retry    key.Binding
	Copy     key.Binding
}

var keys = keyMap{
	Home:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
	Favorites: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "favoritos")),
	Explorer:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "explorar")),
	Settings:  key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "ajustes")),
	Sidebar:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "menú lateral")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),

	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "arriba")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "abajo")),
	PrevPage: key.NewBinding(key.WithKeys("h", "left", "p"), key.WithHelp("h/←/p", "página anterior")),
	NextPage: key.NewBinding(key.WithKeys("l", "right", "n"), key.WithHelp("l/→/n", "página siguiente")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "buscar")),
	Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "limpiar búsqueda")),
	Favorite: key.NewBinding(key.WithKeys("f", " "), key.WithHelp("f/espacio", "favorito")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ver detalle")),
	Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "volver")),
	Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cambiar orden")),
	Filter:   key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "cambiar filtro")),
	Reset:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "restablecer filtros")),
	Display:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "cuadrícula/lista")),
	Retry:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reintentar / actualizar")),
	Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copiar enlace")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Favorites, k.Explorer, k.Settings, k.Sidebar, k.Help, k.Quit},
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Search, k.Clear, k.Open, k.Back},
		{k.Favorite, k.Sort, k.Filter, k.Reset, k.Display, k.Retry, k.Copy},
	}
}
