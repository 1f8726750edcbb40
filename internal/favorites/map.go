package favorites

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Map is an insertion-ordered mapping from character id to Record. The zero
// value is an empty map ready to use. A Map is not safe for concurrent use.
type Map struct {
	keys    []string
	records map[string]Record
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{records: make(map[string]Record)}
}

// Has reports whether id is a favorite.
func (m *Map) Has(id int) bool {
	if m == nil {
		return false
	}
	_, ok := m.records[Key(id)]
	return ok
}

// Get returns the record for id.
func (m *Map) Get(id int) (Record, bool) {
	if m == nil {
		return Record{}, false
	}
	r, ok := m.records[Key(id)]
	return r, ok
}

// Len returns the number of favorites.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Records returns the records in insertion order.
func (m *Map) Records() []Record {
	if m == nil {
		return nil
	}
	out := make([]Record, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.records[k])
	}
	return out
}

// Clone returns an independent copy of m.
func (m *Map) Clone() *Map {
	c := NewMap()
	if m == nil {
		return c
	}
	for _, k := range m.keys {
		c.set(k, m.records[k])
	}
	return c
}

// set inserts or replaces. A replaced key keeps its original position.
func (m *Map) set(key string, r Record) {
	if m.records == nil {
		m.records = make(map[string]Record)
	}
	if _, ok := m.records[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.records[key] = r
}

func (m *Map) delete(key string) {
	if _, ok := m.records[key]; !ok {
		return
	}
	delete(m.records, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// MarshalJSON writes the map as a JSON object with keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if m != nil {
		for i, k := range m.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, fmt.Errorf("marshaling key %q: %w", k, err)
			}
			vb, err := json.Marshal(m.records[k])
			if err != nil {
				return nil, fmt.Errorf("marshaling record %q: %w", k, err)
			}
			buf.Write(kb)
			buf.WriteByte(':')
			buf.Write(vb)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping the order keys appear in.
func (m *Map) UnmarshalJSON(data []byte) error {
	fresh := NewMap()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = *fresh
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading favorites object: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("favorites: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading favorites key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("favorites: expected string key, got %v", tok)
		}
		var r Record
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("decoding favorite %q: %w", key, err)
		}
		fresh.set(key, r)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("closing favorites object: %w", err)
	}

	*m = *fresh
	return nil
}
