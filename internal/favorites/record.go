// Package favorites persists the user's favorite characters as a single
// JSON object in a key-value backend.
package favorites

import (
	"strconv"

	"github.com/f3rmion/kyara/internal/jikan"
)

// Record is the reduced projection of a character that gets persisted.
// Appearance lists and the biography are left out to keep the blob small.
type Record struct {
	MalID     int          `json:"mal_id"`
	Name      string       `json:"name"`
	NameKanji string       `json:"name_kanji,omitempty"`
	Images    jikan.Images `json:"images"`
	Favorites int          `json:"favorites,omitempty"`
	Nicknames []string     `json:"nicknames,omitempty"`
}

// FromCharacter projects c into a Record.
func FromCharacter(c jikan.Character) Record {
	var nicks []string
	if len(c.Nicknames) > 0 {
		nicks = append([]string(nil), c.Nicknames...)
	}
	return Record{
		MalID:     c.MalID,
		Name:      c.Name,
		NameKanji: c.NameKanji,
		Images:    c.Images,
		Favorites: c.Favorites,
		Nicknames: nicks,
	}
}

// Character expands the record back into a (partial) character so it can
// be rendered by the same code as fetched ones.
func (r Record) Character() jikan.Character {
	return jikan.Character{
		MalID:     r.MalID,
		Name:      r.Name,
		NameKanji: r.NameKanji,
		Images:    r.Images,
		Favorites: r.Favorites,
		Nicknames: r.Nicknames,
	}
}

// Key returns the map key used for id.
func Key(id int) string {
	return strconv.Itoa(id)
}
