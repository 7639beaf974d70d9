package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/torharness/torharness/internal/config"
)

// loadTable loads the embedded catalog, overlaying the user-supplied
// configuration file when one was given.
func loadTable(configPath string) (*config.Table, error) {
	table, err := config.LoadDefault()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid embedded settings", err)
	}

	if configPath == "" {
		return table, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("test configuration not found: %s", configPath))
	}
	if err := table.Load(configPath); err != nil {
		return nil, WrapExitError(ExitCommandError, "unable to load testing configuration", err)
	}
	return table, nil
}

// splitTargets breaks a -t/--target argument into its target names.
func splitTargets(arg string) []string {
	var names []string
	for _, name := range strings.Split(arg, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
