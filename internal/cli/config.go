package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/torharness/torharness/internal/config"
)

// ConfigOptions holds flags for the config command.
type ConfigOptions struct {
	*RootOptions
	ConfigPath string
}

// SettingsView is the printable form of the effective settings.
type SettingsView struct {
	Unit          bool     `json:"unit" yaml:"unit"`
	Integ         bool     `json:"integ" yaml:"integ"`
	TestFilter    string   `json:"test_filter,omitempty" yaml:"test_filter,omitempty"`
	LogLevel      string   `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	Tor           string   `json:"tor" yaml:"tor"`
	NoColor       bool     `json:"no_color" yaml:"no_color"`
	TestDirectory string   `json:"test_directory" yaml:"test_directory"`
	IntegLog      string   `json:"integ_log,omitempty" yaml:"integ_log,omitempty"`
	TargetFlags   []string `json:"target_flags,omitempty" yaml:"target_flags,omitempty"`
}

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConfigOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings",
		Long: `Print the settings the harness would run with: schema defaults,
overlaid with the embedded catalog and any --config file.

Examples:
  torharness config
  torharness config --config ./testrc --format yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a custom test configuration")

	return cmd
}

func runConfig(opts *ConfigOptions, cmd *cobra.Command) error {
	table, err := loadTable(opts.ConfigPath)
	if err != nil {
		return err
	}
	settings := config.FromTable(table)

	var enabled []string
	for _, key := range settings.TargetFlagKeys() {
		if settings.TargetFlag(key) {
			enabled = append(enabled, key)
		}
	}

	view := SettingsView{
		Unit:          settings.Unit,
		Integ:         settings.Integ,
		TestFilter:    settings.TestFilter,
		LogLevel:      settings.LogLevel,
		Tor:           settings.TorPath,
		NoColor:       settings.NoColor,
		TestDirectory: settings.TestDirectory,
		IntegLog:      settings.IntegLogPath,
		TargetFlags:   enabled,
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.Structured() {
		return formatter.Success(view, "")
	}

	renderConfigText(cmd.OutOrStdout(), view)
	return nil
}

func renderConfigText(w io.Writer, view SettingsView) {
	fmt.Fprintf(w, "%s %t\n", config.KeyUnit, view.Unit)
	fmt.Fprintf(w, "%s %t\n", config.KeyInteg, view.Integ)
	fmt.Fprintf(w, "%s %s\n", config.KeyTest, view.TestFilter)
	fmt.Fprintf(w, "%s %s\n", config.KeyLog, view.LogLevel)
	fmt.Fprintf(w, "%s %s\n", config.KeyTor, view.Tor)
	fmt.Fprintf(w, "%s %t\n", config.KeyNoColor, view.NoColor)
	fmt.Fprintf(w, "%s %s\n", config.KeyTestDirectory, view.TestDirectory)
	fmt.Fprintf(w, "%s %s\n", config.KeyIntegLog, view.IntegLog)
	for _, key := range view.TargetFlags {
		fmt.Fprintf(w, "%s true\n", key)
	}
}
