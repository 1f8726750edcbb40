// Package portrait renders character images as colored half-block art.
package portrait

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

// Render draws img into at most cols×rows terminal cells. Each cell holds
// two vertically stacked pixels: the upper half block takes the top pixel
// as foreground and the bottom pixel as background. Aspect ratio is kept,
// so the result may be narrower or shorter than requested.
func Render(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	fitted := imaging.Fit(img, cols, rows*2, imaging.Lanczos)
	w, h := fitted.Bounds().Dx(), fitted.Bounds().Dy()

	var b strings.Builder
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := fitted.NRGBAAt(x, y)
			if y+1 < h {
				b.WriteString(cell(top, fitted.NRGBAAt(x, y+1)))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(hex(top)).Render("▀"))
			}
		}
		if y+2 < h {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func cell(top, bottom color.NRGBA) string {
	return lipgloss.NewStyle().
		Foreground(hex(top)).
		Background(hex(bottom)).
		Render("▀")
}

func hex(c color.NRGBA) lipgloss.Color {
	// Transparent pixels blend toward the dark background.
	if c.A < 255 {
		a := uint32(c.A)
		c.R = uint8(uint32(c.R) * a / 255)
		c.G = uint8(uint32(c.G) * a / 255)
		c.B = uint8(uint32(c.B) * a / 255)
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// Cache keeps rendered portraits keyed by image URL and size.
type Cache struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

func cacheKey(url string, cols, rows int) string {
	return fmt.Sprintf("%s@%dx%d", url, cols, rows)
}

// Get returns a cached rendering.
func (c *Cache) Get(url string, cols, rows int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[cacheKey(url, cols, rows)]
	return s, ok
}

// Render renders img and stores the result under url.
func (c *Cache) Render(url string, img image.Image, cols, rows int) string {
	s := Render(img, cols, rows)
	c.mu.Lock()
	c.entries[cacheKey(url, cols, rows)] = s
	c.mu.Unlock()
	return s
}
