// Package paging computes the page-number window shown under a listing.
package paging

import "fmt"

// MaxButtons is the most page-number buttons a window holds.
const MaxButtons = 5

const (
	PrevLabel = "← Anterior"
	NextLabel = "Siguiente →"
	Ellipsis  = "..."
)

// Window describes which pagination controls to draw.
type Window struct {
	Current int
	Last    int

	// Pages is the run of numbered buttons centered on Current.
	Pages []int

	ShowFirst     bool
	FirstEllipsis bool
	ShowLast      bool
	LastEllipsis  bool

	HasPrev bool
	HasNext bool
}

// NewWindow returns the window for current out of last pages. hasNext comes
// straight from the API and is not derived from last.
func NewWindow(current, last int, hasNext bool) Window {
	if last < 1 {
		last = 1
	}
	if current < 1 {
		current = 1
	}

	start := max(1, current-2)
	end := min(last, start+MaxButtons-1)
	if end-start < MaxButtons-1 {
		start = max(1, end-(MaxButtons-1))
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return Window{
		Current:       current,
		Last:          last,
		Pages:         pages,
		ShowFirst:     start > 1,
		FirstEllipsis: start > 2,
		ShowLast:      end < last,
		LastEllipsis:  end < last-1,
		HasPrev:       current > 1,
		HasNext:       hasNext,
	}
}

// Info is the "Página X de Y" caption.
func (w Window) Info() string {
	return fmt.Sprintf("Página %d de %d", w.Current, w.Last)
}

// Items flattens the window into button labels in display order.
func (w Window) Items() []string {
	var items []string
	if w.HasPrev {
		items = append(items, PrevLabel)
	}
	if w.ShowFirst {
		items = append(items, "1")
		if w.FirstEllipsis {
			items = append(items, Ellipsis)
		}
	}
	for _, p := range w.Pages {
		items = append(items, fmt.Sprint(p))
	}
	if w.ShowLast {
		if w.LastEllipsis {
			items = append(items, Ellipsis)
		}
		items = append(items, fmt.Sprint(w.Last))
	}
	if w.HasNext {
		items = append(items, NextLabel)
	}
	return items
}
