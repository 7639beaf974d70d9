package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/torharness/torharness/internal/config"
)

// TargetsOptions holds flags for the targets command.
type TargetsOptions struct {
	*RootOptions
	ConfigPath string
}

// TargetListing is one entry of the targets command output.
type TargetListing struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewTargetsCommand creates the targets command.
func NewTargetsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TargetsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the declared integration targets",
		Long: `List the integration targets the loaded catalog declares, in
declaration order, with the usage text configured for the harness.

Examples:
  torharness targets
  torharness targets --config ./testrc --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTargets(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a custom test configuration")

	return cmd
}

func runTargets(opts *TargetsOptions, cmd *cobra.Command) error {
	table, err := loadTable(opts.ConfigPath)
	if err != nil {
		return err
	}

	settings := config.FromTable(table)
	described := table.Targets().Describe()

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.Structured() {
		listings := make([]TargetListing, 0, len(described))
		for _, d := range described {
			listings = append(listings, TargetListing{Name: d.Name, Description: d.Description})
		}
		return formatter.Success(listings, "")
	}

	renderTargetsText(cmd.OutOrStdout(), settings.HelpText, described)
	return nil
}

// renderTargetsText prints the usage text followed by the target
// descriptions, aligned in columns sized to the longest target name.
func renderTargetsText(w io.Writer, helpText string, described []config.TargetDescription) {
	if helpText != "" {
		fmt.Fprintln(w, helpText)
	}

	width := 0
	for _, d := range described {
		if len(d.Name) > width {
			width = len(d.Name)
		}
	}
	for _, d := range described {
		fmt.Fprintf(w, "    %-*s - %s\n", width, d.Name, d.Description)
	}
}
