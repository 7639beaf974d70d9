package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigText(t *testing.T) {
	out, err := execute(t, "config")
	require.NoError(t, err)

	assert.Contains(t, out, "argument.unit false\n")
	assert.Contains(t, out, "argument.tor tor\n")
	assert.Contains(t, out, "integ.test_directory ./test/data\n")
}

func TestConfigOverlay(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "testrc")
	require.NoError(t, os.WriteFile(configPath, []byte(`
argument.integ true
integ.target.online true
`), 0644))

	out, err := execute(t, "config", "-c", configPath)
	require.NoError(t, err)

	assert.Contains(t, out, "argument.integ true\n")
	assert.Contains(t, out, "integ.target.online true\n")
	assert.Contains(t, out, "argument.unit false\n", "untouched keys keep their values")
}

func TestConfigJSON(t *testing.T) {
	out, err := execute(t, "config", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Unit          bool   `json:"unit"`
			Tor           string `json:"tor"`
			TestDirectory string `json:"test_directory"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Data.Unit)
	assert.Equal(t, "tor", resp.Data.Tor)
	assert.Equal(t, "./test/data", resp.Data.TestDirectory)
}

func TestConfigYAML(t *testing.T) {
	out, err := execute(t, "config", "--format", "yaml")
	require.NoError(t, err)

	var resp struct {
		Status string `yaml:"status"`
		Data   struct {
			Tor string `yaml:"tor"`
		} `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &resp))

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "tor", resp.Data.Tor)
}
