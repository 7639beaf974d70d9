package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/torharness/torharness/internal/config"
)

// planResponse mirrors the structured plan envelope for assertions.
type planResponse struct {
	Status string `json:"status" yaml:"status"`
	Data   struct {
		RunID         string   `json:"run_id" yaml:"run_id"`
		Suites        []string `json:"suites" yaml:"suites"`
		Tor           string   `json:"tor" yaml:"tor"`
		TestDirectory string   `json:"test_directory" yaml:"test_directory"`
		Targets       []struct {
			Name       string `json:"name" yaml:"name"`
			ConfigKey  string `json:"config_key" yaml:"config_key"`
			Prereq     string `json:"prereq" yaml:"prereq"`
			MinVersion string `json:"min_version" yaml:"min_version"`
			Torrc      string `json:"torrc" yaml:"torrc"`
		} `json:"targets" yaml:"targets"`
	} `json:"data" yaml:"data"`
	TraceID string `json:"trace_id" yaml:"trace_id"`
}

func TestPlanCookieGolden(t *testing.T) {
	out, err := execute(t, "plan", "--integ", "--target", "RUN_COOKIE")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "plan_cookie", []byte(out))
}

func TestPlanPtraceGolden(t *testing.T) {
	out, err := execute(t, "plan", "--integ", "--target", "RUN_PTRACE")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "plan_ptrace", []byte(out))
}

func TestPlanRunAllJSON(t *testing.T) {
	out, err := execute(t, "plan", "-i", "-t", "RUN_ALL", "--format", "json")
	require.NoError(t, err)

	var resp planResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []string{"integ"}, resp.Data.Suites)

	names := make([]string, 0, len(resp.Data.Targets))
	for _, target := range resp.Data.Targets {
		names = append(names, target.Name)
	}
	assert.Equal(t, []string{
		"RUN_OPEN", "RUN_PASSWORD", "RUN_COOKIE", "RUN_MULTIPLE",
		"RUN_SOCKET", "RUN_SCOOKIE", "RUN_PTRACE",
	}, names)

	// The run ID doubles as the trace correlation ID and is a valid UUID.
	assert.Equal(t, resp.Data.RunID, resp.TraceID)
	_, err = uuid.Parse(resp.Data.RunID)
	assert.NoError(t, err)
}

func TestPlanYAML(t *testing.T) {
	out, err := execute(t, "plan", "-u", "--format", "yaml")
	require.NoError(t, err)

	var resp planResponse
	require.NoError(t, yaml.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []string{"unit"}, resp.Data.Suites)
	assert.Empty(t, resp.Data.Targets)
}

func TestPlanTorPrecedence(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "testrc")
	require.NoError(t, os.WriteFile(configPath, []byte("argument.tor /opt/tor\n"), 0644))

	// Absent the flag, the file value is used.
	out, err := execute(t, "plan", "-u", "-c", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "tor binary: /opt/tor")

	// The CLI flag wins over the file value.
	out, err = execute(t, "plan", "-u", "-c", configPath, "--tor", "/usr/bin/tor")
	require.NoError(t, err)
	assert.Contains(t, out, "tor binary: /usr/bin/tor")

	// Absent both, the catalog default applies.
	out, err = execute(t, "plan", "-u")
	require.NoError(t, err)
	assert.Contains(t, out, "tor binary: tor")
}

func TestPlanDefaultTarget(t *testing.T) {
	out, err := execute(t, "plan", "--integ")
	require.NoError(t, err)
	assert.Contains(t, out, "target RUN_OPEN (integ.target.run.open)")
}

func TestPlanFileTargetFlags(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "testrc")
	require.NoError(t, os.WriteFile(configPath,
		[]byte("argument.integ true\ninteg.target.run.cookie true\n"), 0644))

	// A file-enabled target flag selects its target, displacing the
	// default open-port run.
	out, err := execute(t, "plan", "-c", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "target RUN_COOKIE (integ.target.run.cookie)")
	assert.NotContains(t, out, "RUN_OPEN")

	// CLI targets and file flags accumulate.
	out, err = execute(t, "plan", "-c", configPath, "-t", "RUN_PTRACE")
	require.NoError(t, err)
	assert.Contains(t, out, "target RUN_PTRACE")
	assert.Contains(t, out, "target RUN_COOKIE")
}

func TestPlanPipedLogsUncolored(t *testing.T) {
	cmd := NewRootCommand()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"plan", "-u", "-l", "DEBUG"})
	require.NoError(t, cmd.Execute())

	// Under the test binary stdout is piped, so color suppression kicks
	// in without an explicit --no-color and reaches the log writer.
	require.NotEmpty(t, errOut.String())
	assert.NotContains(t, errOut.String(), "\x1b[")
}

func TestPlanUnknownTarget(t *testing.T) {
	_, err := execute(t, "plan", "-i", "-t", "RUN_BOGUS")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, config.IsUnknownTarget(err))
	assert.Contains(t, err.Error(), "RUN_BOGUS")
}

func TestPlanNothingToRun(t *testing.T) {
	out, err := execute(t, "plan")
	require.NoError(t, err)
	assert.Equal(t, "Nothing to run (for usage provide --help)\n", out)
}

func TestPlanBadRunlevel(t *testing.T) {
	_, err := execute(t, "plan", "-u", "-l", "VERBOSE")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "runlevel")
}

func TestPlanMissingConfigFile(t *testing.T) {
	_, err := execute(t, "plan", "-u", "-c", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestPlanMalformedConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "testrc")
	require.NoError(t, os.WriteFile(configPath, []byte("|orphan continuation\n"), 0644))

	_, err := execute(t, "plan", "-u", "-c", configPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, config.IsParseError(err))
}
