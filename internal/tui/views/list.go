package views

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/f3rmion/kyara/internal/catalog"
	"github.com/f3rmion/kyara/internal/jikan"
	"github.com/f3rmion/kyara/internal/tui/components"
)

// characterList is the cursor and scroll state shared by the home and
// favorites views.
type characterList struct {
	cursor int
	isFav  func(id int) bool
	locale language.Tag
}

func (l *characterList) favorite(id int) bool {
	return l.isFav != nil && l.isFav(id)
}

func (l *characterList) clampTo(n int) {
	l.cursor = clamp(l.cursor, 0, n-1)
}

// move shifts the cursor by delta items.
func (l *characterList) move(delta, n int) {
	l.cursor = clamp(l.cursor+delta, 0, n-1)
}

// step is how far up/down moves in the given layout.
func step(display catalog.DisplayMode, width int) int {
	if display == catalog.Grid {
		return components.Columns(width)
	}
	return 1
}

func (l *characterList) selected(chars []jikan.Character) (jikan.Character, bool) {
	if l.cursor < 0 || l.cursor >= len(chars) {
		return jikan.Character{}, false
	}
	return chars[l.cursor], true
}

// render draws the visible slice of chars so that the cursor stays on
// screen.
func (l *characterList) render(chars []jikan.Character, display catalog.DisplayMode, width, height int) string {
	if len(chars) == 0 {
		return ""
	}
	if display == catalog.List {
		visible := max(1, height)
		start := max(0, l.cursor-visible+1)
		end := min(len(chars), start+visible)
		rows := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			c := chars[i]
			rows = append(rows, components.CharacterRow(c, l.favorite(c.MalID), i == l.cursor, width, l.locale))
		}
		return strings.Join(rows, "\n")
	}

	cols := components.Columns(width)
	visibleRows := max(1, height/components.CardHeight)
	cursorRow := l.cursor / cols
	startRow := max(0, cursorRow-visibleRows+1)
	start := startRow * cols
	end := min(len(chars), start+visibleRows*cols)

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		c := chars[i]
		cards = append(cards, components.CharacterCard(c, l.favorite(c.MalID), i == l.cursor, l.locale))
	}
	return components.Grid(cards, width)
}
