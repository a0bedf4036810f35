// Package styling collects the CSS rule blocks of view components into a
// single stylesheet.
package styling

import (
	"sort"
	"strings"
	"sync"
)

// Sheet is a set of named CSS blocks. Registering a name twice replaces
// the earlier block.
type Sheet struct {
	mu     sync.RWMutex
	blocks map[string]string
}

// NewSheet creates an empty sheet
func NewSheet() *Sheet {
	return &Sheet{blocks: make(map[string]string)}
}

// Add registers css under name and returns name so it can be used as a
// class
func (s *Sheet) Add(name, css string) string {
	css = strings.TrimSpace(css)
	if css == "" {
		return name
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[name] = css
	return name
}

// Has reports whether name was registered
func (s *Sheet) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blocks[name]
	return ok
}

// CSS returns all blocks ordered by name
func (s *Sheet) CSS() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.blocks))
	for name := range s.blocks {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(s.blocks[name])
		b.WriteString("\n")
	}
	return b.String()
}

// Classes joins the non-empty class names with spaces
func Classes(names ...string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

// Modifier returns base-mod, or "" when mod is empty
func Modifier(base, mod string) string {
	if mod == "" {
		return ""
	}
	return base + "-" + mod
}
