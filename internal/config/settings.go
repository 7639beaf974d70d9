package config

import (
	"sort"
	"strings"
)

// Setting keys consumed from the scalar portion of the table.
const (
	KeyUnit          = "argument.unit"
	KeyInteg         = "argument.integ"
	KeyTest          = "argument.test"
	KeyLog           = "argument.log"
	KeyTor           = "argument.tor"
	KeyNoColor       = "argument.no_color"
	KeyTestDirectory = "integ.test_directory"
	KeyIntegLog      = "integ.log"
	KeyHelp          = "msg.help"

	// TargetFlagPrefix namespaces the per-target boolean toggles that
	// target "config" attributes point at.
	TargetFlagPrefix = "integ.target."
)

// Settings is the typed view of the harness configuration after all
// sources merged. It is a plain value: copy it, don't share it.
type Settings struct {
	// Unit and Integ select which suites run.
	Unit  bool
	Integ bool

	// TestFilter limits the run to tests matching this name.
	TestFilter string

	// LogLevel is the harness runlevel (TRACE..ERROR), empty for none.
	LogLevel string

	// TorPath is the tor binary integration tests run against.
	TorPath string

	// NoColor suppresses terminal colors in output.
	NoColor bool

	// TestDirectory is where integration runs keep their data.
	TestDirectory string

	// IntegLogPath is where the integration run log is written.
	IntegLogPath string

	// HelpText is the usage message rendered before the target listing.
	HelpText string

	targetFlags map[string]bool
}

// settingKind is the declared type of a schema entry.
type settingKind int

const (
	kindBool settingKind = iota
	kindString
)

// settingDef declares one recognized scalar setting: its key, type,
// documented default, and how it lands on Settings.
type settingDef struct {
	key    string
	kind   settingKind
	def    string
	assign func(*Settings, string)
}

var schema = []settingDef{
	{KeyUnit, kindBool, "false", func(s *Settings, v string) { s.Unit = v == "true" }},
	{KeyInteg, kindBool, "false", func(s *Settings, v string) { s.Integ = v == "true" }},
	{KeyTest, kindString, "", func(s *Settings, v string) { s.TestFilter = v }},
	{KeyLog, kindString, "", func(s *Settings, v string) { s.LogLevel = strings.ToUpper(v) }},
	{KeyTor, kindString, "tor", func(s *Settings, v string) { s.TorPath = v }},
	{KeyNoColor, kindBool, "false", func(s *Settings, v string) { s.NoColor = v == "true" }},
	{KeyTestDirectory, kindString, "./test/data", func(s *Settings, v string) { s.TestDirectory = v }},
	{KeyIntegLog, kindString, "", func(s *Settings, v string) { s.IntegLogPath = v }},
	{KeyHelp, kindString, "", func(s *Settings, v string) { s.HelpText = v }},
}

// knownKey reports whether key is in the schema or one of the dynamic
// namespaces (per-target flags and target attribute categories).
func knownKey(key string) bool {
	for _, def := range schema {
		if def.key == key {
			return true
		}
	}
	return strings.HasPrefix(key, TargetFlagPrefix) ||
		strings.HasPrefix(key, "target.") ||
		strings.HasPrefix(key, "msg.")
}

// FromTable builds Settings from the loaded table: schema defaults
// first, then whatever the files set.
func FromTable(t *Table) *Settings {
	s := &Settings{targetFlags: make(map[string]bool)}

	for _, def := range schema {
		def.assign(s, def.def)
		if t.Has(def.key) {
			value := t.Get(def.key)
			if def.kind == kindBool && value != "true" && value != "false" {
				// Not a boolean literal, keep the default.
				continue
			}
			def.assign(s, value)
		}
	}

	for _, key := range t.Keys() {
		if strings.HasPrefix(key, TargetFlagPrefix) {
			s.targetFlags[key] = t.Get(key) == "true"
		}
	}

	return s
}

// Overrides holds CLI-supplied values. Nil fields fall back to the
// file-configured value (or the schema default when the files are
// silent too).
type Overrides struct {
	Unit       *bool
	Integ      *bool
	TestFilter *string
	LogLevel   *string
	TorPath    *string
	NoColor    *bool

	// TargetFlags are the per-target settings toggled by resolved
	// targets (a selected target with a "config" attribute marks that
	// setting true, same as configuring it in a file).
	TargetFlags map[string]bool
}

// Merge returns a copy of s with the CLI overrides applied. CLI values
// always win over file values.
func (s *Settings) Merge(o Overrides) *Settings {
	merged := *s
	merged.targetFlags = make(map[string]bool, len(s.targetFlags)+len(o.TargetFlags))
	for key, value := range s.targetFlags {
		merged.targetFlags[key] = value
	}

	if o.Unit != nil {
		merged.Unit = *o.Unit
	}
	if o.Integ != nil {
		merged.Integ = *o.Integ
	}
	if o.TestFilter != nil {
		merged.TestFilter = *o.TestFilter
	}
	if o.LogLevel != nil {
		merged.LogLevel = strings.ToUpper(*o.LogLevel)
	}
	if o.TorPath != nil {
		merged.TorPath = *o.TorPath
	}
	if o.NoColor != nil {
		merged.NoColor = *o.NoColor
	}
	for key, value := range o.TargetFlags {
		merged.targetFlags[key] = value
	}

	return &merged
}

// TargetFlag reports whether the per-target setting named key (e.g.
// "integ.target.online") is enabled.
func (s *Settings) TargetFlag(key string) bool {
	return s.targetFlags[key]
}

// TargetFlagKeys returns the per-target setting keys present, sorted.
func (s *Settings) TargetFlagKeys() []string {
	keys := make([]string, 0, len(s.targetFlags))
	for key := range s.targetFlags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
