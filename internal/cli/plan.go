package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/torharness/torharness/internal/config"
	"github.com/torharness/torharness/internal/logging"
	"github.com/torharness/torharness/internal/torrc"
	"github.com/torharness/torharness/internal/version"
)

// DefaultRunTarget is selected when integration tests run without an
// explicit --target.
const DefaultRunTarget = "RUN_OPEN"

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	*RootOptions
	Unit       bool
	Integ      bool
	Targets    string
	TestFilter string
	Log        string
	Tor        string
	ConfigPath string
}

// TargetPlan is the resolved runtime requirements of one target.
type TargetPlan struct {
	Name       string `json:"name" yaml:"name"`
	ConfigKey  string `json:"config_key,omitempty" yaml:"config_key,omitempty"`
	Prereq     string `json:"prereq,omitempty" yaml:"prereq,omitempty"`
	MinVersion string `json:"min_version,omitempty" yaml:"min_version,omitempty"`
	Torrc      string `json:"torrc" yaml:"torrc"`
}

// Plan is the full effective run configuration handed to the harness.
type Plan struct {
	RunID         string       `json:"run_id" yaml:"run_id"`
	Suites        []string     `json:"suites" yaml:"suites"`
	TestFilter    string       `json:"test_filter,omitempty" yaml:"test_filter,omitempty"`
	Tor           string       `json:"tor" yaml:"tor"`
	TestDirectory string       `json:"test_directory" yaml:"test_directory"`
	Targets       []TargetPlan `json:"targets,omitempty" yaml:"targets,omitempty"`
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Resolve the effective test configuration",
		Long: `Resolve which test suites and integration targets a run executes
against. The settings catalog loads first, a --config file overlays it,
and command line arguments win over both. Selected targets expand into
the torrc directives and version prerequisites the harness needs before
launching tor.

Exit codes:
  0 - Configuration resolved
  2 - Resolution failure (unknown target, malformed configuration, etc.)

Examples:
  torharness plan --integ
  torharness plan --integ --target RUN_COOKIE,RUN_PTRACE
  torharness plan --integ --target RUN_ALL --format json
  torharness plan --unit --config ./testrc`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Unit, "unit", "u", false, "run unit tests")
	cmd.Flags().BoolVarP(&opts.Integ, "integ", "i", false, "run integration tests")
	cmd.Flags().StringVarP(&opts.Targets, "target", "t", "", "comma separated list of integration targets")
	cmd.Flags().StringVar(&opts.TestFilter, "test", "", "only run tests with this name")
	cmd.Flags().StringVarP(&opts.Log, "log", "l", "", "runlevel for harness logging (TRACE..ERROR)")
	cmd.Flags().StringVar(&opts.Tor, "tor", "", "custom tor binary to run integration tests against")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a custom test configuration")

	return cmd
}

func runPlan(opts *PlanOptions, cmd *cobra.Command) error {
	table, err := loadTable(opts.ConfigPath)
	if err != nil {
		return err
	}
	targetTable := table.Targets()
	fileSettings := config.FromTable(table)

	// Targets come from --target plus every target whose config flag
	// the files enable. Integration runs selecting neither fall back to
	// the open-port configuration, when the catalog declares it.
	selected := splitTargets(opts.Targets)
	for _, name := range targetTable.Names() {
		target, _ := targetTable.Lookup(name)
		if target.ConfigKey != "" && fileSettings.TargetFlag(target.ConfigKey) {
			selected = append(selected, name)
		}
	}
	integSelected := opts.Integ || fileSettings.Integ
	if len(selected) == 0 && integSelected {
		if _, ok := targetTable.Lookup(DefaultRunTarget); ok {
			selected = []string{DefaultRunTarget}
		}
	}

	resolved, err := targetTable.Resolve(selected)
	if err != nil {
		return WrapExitError(ExitCommandError, "target resolution failed", err)
	}

	// CLI arguments win over file values; resolved targets toggle the
	// settings their config attributes name.
	overrides := config.Overrides{TargetFlags: config.ConfigFlags(resolved)}
	flags := cmd.Flags()
	if flags.Changed("unit") {
		overrides.Unit = &opts.Unit
	}
	if flags.Changed("integ") {
		overrides.Integ = &opts.Integ
	}
	if flags.Changed("test") {
		overrides.TestFilter = &opts.TestFilter
	}
	if flags.Changed("log") {
		overrides.LogLevel = &opts.Log
	}
	if flags.Changed("tor") {
		overrides.TorPath = &opts.Tor
	}
	// NoColor may also be forced by the root command when stdout is
	// piped, so forward it whenever set, not only on an explicit flag.
	if flags.Changed("no-color") || opts.NoColor {
		overrides.NoColor = &opts.NoColor
	}
	settings := fileSettings.Merge(overrides)

	level, err := logging.ParseRunlevel(settings.LogLevel)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid logging runlevel", err)
	}

	runID := uuid.Must(uuid.NewV7()).String()
	logger := logging.New(cmd.ErrOrStderr(), level, settings.NoColor)
	logger.Debug().
		Str("run_id", runID).
		Int("targets", len(resolved)).
		Str("tor", settings.TorPath).
		Msg("configuration resolved")

	plan := Plan{
		RunID:         runID,
		TestFilter:    settings.TestFilter,
		Tor:           settings.TorPath,
		TestDirectory: settings.TestDirectory,
	}
	if settings.Unit {
		plan.Suites = append(plan.Suites, "unit")
	}
	if settings.Integ {
		plan.Suites = append(plan.Suites, "integ")
	}

	dataDir := filepath.Join(settings.TestDirectory, "tor")
	for _, target := range resolved {
		tp := TargetPlan{
			Name:      target.Name,
			ConfigKey: target.ConfigKey,
			Prereq:    target.Prereq,
		}

		if target.Prereq != "" {
			minimum, err := version.Requirement(target.Prereq)
			if err != nil {
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("target %s has an unsatisfiable prereq", target.Name), err)
			}
			tp.MinVersion = minimum.String()
		}

		directives, err := torrc.ParseDirectives(target.Torrc)
		if err != nil {
			return WrapExitError(ExitCommandError,
				fmt.Sprintf("target %s has an invalid torrc set", target.Name), err)
		}
		tp.Torrc = torrc.Build(dataDir, directives)

		plan.Targets = append(plan.Targets, tp)
		logger.Trace().Str("target", target.Name).Strs("torrc", target.Torrc).Msg("target expanded")
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if formatter.Structured() {
		return formatter.Success(plan, runID)
	}

	if len(plan.Suites) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to run (for usage provide --help)")
		return nil
	}
	renderPlanText(cmd.OutOrStdout(), plan)
	return nil
}

func renderPlanText(w io.Writer, plan Plan) {
	fmt.Fprintf(w, "suites: %s\n", strings.Join(plan.Suites, ", "))
	if plan.TestFilter != "" {
		fmt.Fprintf(w, "test filter: %s\n", plan.TestFilter)
	}
	fmt.Fprintf(w, "tor binary: %s\n", plan.Tor)
	fmt.Fprintf(w, "test directory: %s\n", plan.TestDirectory)

	for _, target := range plan.Targets {
		fmt.Fprintf(w, "\ntarget %s", target.Name)
		if target.ConfigKey != "" {
			fmt.Fprintf(w, " (%s)", target.ConfigKey)
		}
		fmt.Fprintln(w)

		if target.Prereq != "" {
			fmt.Fprintf(w, "  requires: tor %s (%s)\n", target.MinVersion, target.Prereq)
		}
		fmt.Fprintln(w, "  torrc:")
		for _, line := range strings.Split(strings.TrimSuffix(target.Torrc, "\n"), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}
