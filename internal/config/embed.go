package config

import (
	_ "embed"
)

//go:embed settings.cfg
var defaultSettings []byte

// DefaultSource labels the embedded catalog in error messages.
const DefaultSource = "settings.cfg (embedded)"

// LoadDefault returns a table populated from the embedded default
// catalog. User files overlay onto it via Table.Load.
func LoadDefault() (*Table, error) {
	t := NewTable()
	if err := t.LoadBytes(DefaultSource, defaultSettings); err != nil {
		return nil, err
	}
	return t, nil
}
