package config

import (
	"strings"
)

// Target attribute categories recognized in settings files.
const (
	CategoryConfig      = "target.config"
	CategoryDescription = "target.description"
	CategoryPrereq      = "target.prereq"
	CategoryTorrc       = "target.torrc"
)

// Suffix conventions for the aggregate pseudo-targets. Selecting a
// *_ALL target expands to every declared sibling with the same prefix
// except itself and the *_NONE entry.
const (
	allSuffix  = "_ALL"
	noneSuffix = "_NONE"
)

// Target is one named integration-test configuration profile.
type Target struct {
	// Name identifies the target (upper-case by convention).
	Name string

	// ConfigKey is the setting toggled when this target is selected,
	// empty if the target has no dedicated flag.
	ConfigKey string

	// Description is the human-readable text shown in help output.
	Description string

	// Prereq names a version requirement the running tor binary must
	// satisfy, empty if none.
	Prereq string

	// Torrc is the ordered list of control directive names this target
	// requires in the tor configuration. May be empty.
	Torrc []string
}

// ResolvedTarget is one concrete configuration a test run executes
// against, produced by TargetTable.Resolve.
type ResolvedTarget struct {
	Name      string   `json:"name" yaml:"name"`
	ConfigKey string   `json:"config_key,omitempty" yaml:"config_key,omitempty"`
	Torrc     []string `json:"torrc,omitempty" yaml:"torrc,omitempty"`
	Prereq    string   `json:"prereq,omitempty" yaml:"prereq,omitempty"`
}

// TargetDescription pairs a target name with its help text.
type TargetDescription struct {
	Name        string
	Description string
}

// TargetTable is the immutable catalog of declared targets, in
// declaration order.
type TargetTable struct {
	targets map[string]*Target
	order   []string
}

// Targets derives the target catalog from the table's "target.*"
// category entries. Declaration order is first appearance under any
// target attribute.
func (t *Table) Targets() *TargetTable {
	configs := t.Category(CategoryConfig)
	descriptions := t.Category(CategoryDescription)
	prereqs := t.Category(CategoryPrereq)
	torrcs := t.Category(CategoryTorrc)

	table := &TargetTable{targets: make(map[string]*Target)}
	for _, name := range t.categoryOrder("target") {
		table.targets[strings.ToUpper(name)] = &Target{
			Name:        name,
			ConfigKey:   configs[name],
			Description: descriptions[name],
			Prereq:      prereqs[name],
			Torrc:       splitList(torrcs[name]),
		}
		table.order = append(table.order, name)
	}
	return table
}

// Lookup finds a target by name, case-insensitively.
func (tt *TargetTable) Lookup(name string) (*Target, bool) {
	target, ok := tt.targets[strings.ToUpper(name)]
	return target, ok
}

// Names returns the declared target names in declaration order.
func (tt *TargetTable) Names() []string {
	return append([]string(nil), tt.order...)
}

// Describe returns (name, description) pairs for help rendering, in
// declaration order.
func (tt *TargetTable) Describe() []TargetDescription {
	described := make([]TargetDescription, 0, len(tt.order))
	for _, name := range tt.order {
		target := tt.targets[strings.ToUpper(name)]
		described = append(described, TargetDescription{
			Name:        target.Name,
			Description: target.Description,
		})
	}
	return described
}

// Resolve maps the selected names onto concrete targets. Aggregate
// *_ALL targets expand to the union of their declared siblings, each
// resolved independently so the harness gets one run per
// configuration. Duplicates collapse to their first occurrence.
//
// Any name absent from the table fails with UnknownTargetError and
// resolves nothing.
func (tt *TargetTable) Resolve(selected []string) ([]ResolvedTarget, error) {
	var resolved []ResolvedTarget
	seen := make(map[string]bool)

	add := func(target *Target) {
		key := strings.ToUpper(target.Name)
		if seen[key] {
			return
		}
		seen[key] = true
		resolved = append(resolved, ResolvedTarget{
			Name:      target.Name,
			ConfigKey: target.ConfigKey,
			Torrc:     append([]string(nil), target.Torrc...),
			Prereq:    target.Prereq,
		})
	}

	for _, name := range selected {
		target, ok := tt.Lookup(name)
		if !ok {
			return nil, &UnknownTargetError{Name: name, Known: tt.Names()}
		}

		if strings.HasSuffix(strings.ToUpper(target.Name), allSuffix) {
			for _, sibling := range tt.expandAll(target.Name) {
				add(sibling)
			}
			continue
		}
		add(target)
	}

	return resolved, nil
}

// expandAll returns the declared siblings of an aggregate target: all
// targets sharing its prefix, excluding the aggregate itself and the
// *_NONE entry.
func (tt *TargetTable) expandAll(aggregate string) []*Target {
	upper := strings.ToUpper(aggregate)
	prefix := strings.TrimSuffix(upper, allSuffix) + "_"

	var siblings []*Target
	for _, name := range tt.order {
		candidate := strings.ToUpper(name)
		if candidate == upper || !strings.HasPrefix(candidate, prefix) {
			continue
		}
		if strings.HasSuffix(candidate, noneSuffix) {
			continue
		}
		siblings = append(siblings, tt.targets[candidate])
	}
	return siblings
}

// ConfigFlags returns the settings toggled by the resolved targets,
// suitable for Overrides.TargetFlags. This is how selecting a target
// on the command line is equivalent to enabling its setting in a file.
func ConfigFlags(resolved []ResolvedTarget) map[string]bool {
	flags := make(map[string]bool)
	for _, target := range resolved {
		if target.ConfigKey != "" {
			flags[target.ConfigKey] = true
		}
	}
	return flags
}
