package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Table is the raw contents of one or more settings files. Loading a
// second file overlays onto the existing contents: scalar settings are
// replaced by key, target attributes by (target, attribute) pair.
//
// A Table is mutable only while files load. The harness builds one at
// startup, derives Settings and a TargetTable from it, and never
// touches it again.
type Table struct {
	// Strict rejects keys outside the recognized namespaces with an
	// UnknownSettingError. Off by default.
	Strict bool

	values     map[string]string
	categories map[string]map[string]string
	order      map[string][]string
}

// NewTable creates an empty settings table.
func NewTable() *Table {
	return &Table{
		values:     make(map[string]string),
		categories: make(map[string]map[string]string),
		order:      make(map[string][]string),
	}
}

// Load reads the file at path, overlaying its contents onto the table.
func (t *Table) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to load configuration at %q: %w", path, err)
	}
	return t.LoadBytes(path, data)
}

// LoadBytes parses data, overlaying its contents onto the table. The
// source label is used in error messages.
func (t *Table) LoadBytes(source string, data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("unable to read configuration %q: %w", source, err)
	}

	for i := 0; i < len(lines); i++ {
		lineno := i + 1
		line := stripComment(lines[i])

		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "|") {
			return &ParseError{
				Source: source,
				Line:   lineno,
				Text:   line,
				Reason: "continuation line without a preceding key",
			}
		}

		key, value, hasValue := strings.Cut(line, " ")
		value = strings.TrimSpace(value)

		if !hasValue || value == "" {
			// A bare key may open a multi-line block of |-prefixed lines.
			var block []string
			for i+1 < len(lines) {
				next := strings.TrimLeft(lines[i+1], " \t")
				if !strings.HasPrefix(next, "|") {
					break
				}
				block = append(block, strings.TrimSuffix(next[1:], "\n"))
				i++
			}
			if len(block) > 0 {
				value = strings.Join(block, "\n")
			}
		}

		if err := t.set(source, lineno, key, value); err != nil {
			return err
		}
	}

	return nil
}

// set assigns one parsed entry, dispatching category lines to their
// per-target attribute map.
func (t *Table) set(source string, lineno int, key, value string) error {
	if t.Strict && !knownKey(key) {
		return &UnknownSettingError{Source: source, Line: lineno, Key: key}
	}

	if name, rhs, isCategory := strings.Cut(value, "=>"); isCategory {
		name = strings.TrimSpace(name)
		rhs = strings.TrimSpace(rhs)

		prefix, _, dotted := cutLast(key, ".")
		if !dotted {
			return &ParseError{
				Source: source,
				Line:   lineno,
				Text:   key + " " + value,
				Reason: "category entry requires a dotted key",
			}
		}
		if name == "" {
			return &ParseError{
				Source: source,
				Line:   lineno,
				Text:   key + " " + value,
				Reason: "category entry without a name",
			}
		}

		entries, ok := t.categories[key]
		if !ok {
			entries = make(map[string]string)
			t.categories[key] = entries
		}
		if _, seen := entries[name]; !seen {
			t.order[prefix] = appendUnique(t.order[prefix], name)
		}
		entries[name] = rhs
		return nil
	}

	t.values[key] = value
	return nil
}

// Get returns the scalar setting for key, or the empty string if unset.
func (t *Table) Get(key string) string {
	return t.values[key]
}

// Has reports whether a scalar setting for key was loaded.
func (t *Table) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// GetBool parses the setting for key as a literal true/false, falling
// back to def when unset or unparseable.
func (t *Table) GetBool(key string, def bool) bool {
	switch t.values[key] {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// Keys returns all loaded scalar setting keys, sorted.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.values))
	for key := range t.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Category returns a copy of the attribute entries loaded under key
// (e.g. "target.torrc"), mapping target name to raw value.
func (t *Table) Category(key string) map[string]string {
	entries := make(map[string]string, len(t.categories[key]))
	for name, value := range t.categories[key] {
		entries[name] = value
	}
	return entries
}

// categoryOrder returns names under the given namespace prefix in
// first-declaration order.
func (t *Table) categoryOrder(prefix string) []string {
	return t.order[prefix]
}

// stripComment removes an inline # comment and surrounding whitespace,
// preserving a leading | so continuation lines stay recognizable.
func stripComment(line string) string {
	if idx := strings.Index(line, "#"); idx != -1 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

// cutLast splits s around the last occurrence of sep.
func cutLast(s, sep string) (before, after string, found bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}

func appendUnique(names []string, name string) []string {
	for _, existing := range names {
		if existing == name {
			return names
		}
	}
	return append(names, name)
}

// splitList splits a comma-separated category value into its entries,
// dropping empties so a bare "=>" yields a nil list.
func splitList(value string) []string {
	var entries []string
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}
