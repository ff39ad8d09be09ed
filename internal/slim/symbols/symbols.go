// Package symbols implements the session-scoped symbol table and the `$name`
// substitution applied to instruction arguments and class names.
package symbols

import "strings"

// maxPasses bounds the substitution re-scan. Resolved text is scanned again
// after every substitution, so a symbol whose value names another symbol is
// resolved recursively; self-referential chains stop here instead of looping.
const maxPasses = 100

// Table is a mutable, session-lifetime map of symbol names to their
// last-assigned values. Names are stored sigil-free.
type Table struct {
	values map[string]string
}

func NewTable() *Table {
	return &Table{values: make(map[string]string)}
}

// Assign stores value under name, stripping one leading '$' if present.
// Assignments overwrite; the table never shrinks within a session.
func (t *Table) Assign(name, value string) {
	t.values[strings.TrimPrefix(name, "$")] = value
}

// Lookup returns the value bound to a sigil-free name.
func (t *Table) Lookup(name string) (string, bool) {
	v, ok := t.values[name]
	return v, ok
}

// Resolve substitutes every `$name` occurrence in s. The name extends to the
// first space after the '$', or to the end of the string, so "$a$b" parses as
// one name. Unknown symbols resolve to the empty string, never an error.
func (t *Table) Resolve(s string) string {
	for pass := 0; pass < maxPasses; pass++ {
		i := strings.IndexByte(s, '$')
		if i < 0 {
			return s
		}
		before, after := s[:i], s[i+1:]
		if sp := strings.IndexByte(after, ' '); sp >= 0 {
			s = before + t.values[after[:sp]] + after[sp:]
		} else {
			s = before + t.values[after]
		}
	}
	return s
}

// ResolveAll substitutes symbols in every argument of a call.
func (t *Table) ResolveAll(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = t.Resolve(arg)
	}
	return out
}
