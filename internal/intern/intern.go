// Package intern canonicalizes the small, highly repeated strings a parser
// touches on every token: option names sliced out of "--name=value" tokens
// and the synthetic "-x" names produced while walking short-option clusters.
package intern

import "sync"

// Table is a thread-safe string interning table.
type Table struct {
	mu      sync.RWMutex
	strings map[string]string
}

// NewTable creates an interning table with the given initial capacity.
func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = 64
	}
	return &Table{strings: make(map[string]string, capacity)}
}

// Intern returns the canonical copy of s, storing it on first use.
func (t *Table) Intern(s string) string {
	t.mu.RLock()
	if canon, ok := t.strings[s]; ok {
		t.mu.RUnlock()
		return canon
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if canon, ok := t.strings[s]; ok {
		return canon
	}
	t.strings[s] = s
	return s
}

// Len reports the number of interned strings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.strings)
}

var defaultTable = NewTable(128)

// Intern canonicalizes s in the package-wide table.
func Intern(s string) string {
	return defaultTable.Intern(s)
}

// shortNames holds the precomputed "-x" option name for every ASCII byte, so
// cluster expansion ("-abc" into -a, -b, -c) never allocates.
var shortNames = func() [128]string {
	var names [128]string
	for b := 0; b < 128; b++ {
		names[b] = "-" + string(rune(b))
	}
	return names
}()

// ShortName returns the option name "-c" for a single option character.
func ShortName(c byte) string {
	if c < 128 {
		return shortNames[c]
	}
	return defaultTable.Intern("-" + string(rune(c)))
}
