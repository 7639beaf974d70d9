package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestSettingsDefaults(t *testing.T) {
	s := FromTable(NewTable())

	assert.False(t, s.Unit)
	assert.False(t, s.Integ)
	assert.Equal(t, "", s.TestFilter)
	assert.Equal(t, "", s.LogLevel)
	assert.Equal(t, "tor", s.TorPath)
	assert.False(t, s.NoColor)
	assert.Equal(t, "./test/data", s.TestDirectory)
}

func TestSettingsFromTable(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.LoadBytes("testrc", []byte(`
argument.integ true
argument.log notice
argument.tor /opt/tor
integ.test_directory /tmp/harness
integ.target.online true
integ.target.relative false
`)))

	s := FromTable(table)
	assert.True(t, s.Integ)
	assert.False(t, s.Unit)
	assert.Equal(t, "NOTICE", s.LogLevel)
	assert.Equal(t, "/opt/tor", s.TorPath)
	assert.Equal(t, "/tmp/harness", s.TestDirectory)
	assert.True(t, s.TargetFlag("integ.target.online"))
	assert.False(t, s.TargetFlag("integ.target.relative"))
	assert.False(t, s.TargetFlag("integ.target.never.set"))
}

func TestSettingsBadBoolKeepsDefault(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.LoadBytes("testrc", []byte("argument.unit yes\n")))

	s := FromTable(table)
	assert.False(t, s.Unit)
}

func TestMergeCLIWins(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.LoadBytes("testrc", []byte("argument.tor tor\nargument.integ true\n")))

	s := FromTable(table)

	// CLI-supplied value wins over the file value.
	merged := s.Merge(Overrides{TorPath: strPtr("/usr/bin/tor")})
	assert.Equal(t, "/usr/bin/tor", merged.TorPath)

	// Unset CLI flags fall back to the file value.
	assert.True(t, merged.Integ)

	// Absent both, the schema default holds.
	assert.False(t, merged.Unit)

	// The original is untouched.
	assert.Equal(t, "tor", s.TorPath)
}

func TestMergeTargetFlags(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.LoadBytes("testrc", []byte("integ.target.online true\n")))

	merged := FromTable(table).Merge(Overrides{
		Integ:       boolPtr(true),
		TargetFlags: map[string]bool{"integ.target.run.cookie": true},
	})

	assert.True(t, merged.TargetFlag("integ.target.online"), "file flag retained")
	assert.True(t, merged.TargetFlag("integ.target.run.cookie"), "resolved target toggles its setting")
	assert.Equal(t, []string{"integ.target.online", "integ.target.run.cookie"},
		merged.TargetFlagKeys())
}
