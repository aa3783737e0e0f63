package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/attrigate/attrigate/internal/analyzer"
	"github.com/attrigate/attrigate/internal/ci"
	"github.com/attrigate/attrigate/internal/config"
	"github.com/attrigate/attrigate/internal/export"
	"github.com/attrigate/attrigate/internal/pipeline"
)

// ErrRunFailed signals a failed run whose diagnostics were already printed
// by the pipeline. main maps it to exit code 1 without re-printing.
var ErrRunFailed = errors.New("run failed")

// RunCommand holds the flags for the run command.
type RunCommand struct {
	configPath   string
	since        string
	showDetails  bool
	minThreshold int
	analyzerCmd  string
	timeout      string
	artifactPath string
}

// NewRunCommand creates and configures the run command.
func NewRunCommand() *cobra.Command {
	rc := &RunCommand{}

	cobraCmd := &cobra.Command{
		Use:   "run [repository]",
		Short: "Analyze AI commit attribution and report to CI",
		Long: `Run the external attribution analyzer over a range of git history,
compare the AI-usage percentage against the configured minimum, and publish
the result as a JSON artifact plus CI step outputs and a job summary.

A threshold miss is a warning, not a failure: the exit code is 0 for both
passed and warning outcomes, and 1 only for validation or analyzer errors.`,
		Args: cobra.MaximumNArgs(1),
		RunE: rc.run,
	}

	cobraCmd.Flags().StringVar(&rc.configPath, "config", "", "Config file path (default: .attrigate.yaml in CWD or $HOME)")
	cobraCmd.Flags().StringVar(&rc.since, "since", config.DefaultSince, "Commit range start (passed verbatim to the analyzer, e.g. '1 day ago')")
	cobraCmd.Flags().BoolVar(&rc.showDetails, "show-details", false, "Request per-commit detail records from the analyzer")
	cobraCmd.Flags().IntVar(&rc.minThreshold, "minimum-threshold", config.DefaultMinThreshold, "Minimum acceptable AI-usage percentage (advisory only)")
	cobraCmd.Flags().StringVar(&rc.analyzerCmd, "analyzer-cmd", config.DefaultAnalyzerCmd, "External analyzer executable")
	cobraCmd.Flags().StringVar(&rc.timeout, "timeout", "", "Analyzer timeout (e.g. '5m'; empty = none)")
	cobraCmd.Flags().StringVar(&rc.artifactPath, "artifact", config.DefaultArtifactPath, "Artifact output path")

	return cobraCmd
}

// run loads configuration, applies flag overrides, and drives the pipeline.
func (rc *RunCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rc.configPath)
	if err != nil {
		return err
	}

	rc.applyOverrides(cmd, cfg, args)

	controller := &pipeline.Controller{
		Analyzer: analyzer.NewCommandAnalyzer(cfg.Analyzer.Command),
		Exporter: &export.Exporter{ArtifactPath: cfg.Output.ArtifactPath},
		CI:       ci.Detect(os.Getenv),
		Out:      cmd.OutOrStdout(),
		Err:      cmd.ErrOrStderr(),
	}

	code := controller.Run(cmd.Context(), cfg)
	if code != pipeline.ExitOK {
		return fmt.Errorf("%w: exit code %d", ErrRunFailed, code)
	}

	return nil
}

// applyOverrides lets explicitly set CLI flags win over config file and env.
func (rc *RunCommand) applyOverrides(cmd *cobra.Command, cfg *config.RunConfig, args []string) {
	if len(args) > 0 {
		cfg.Repository = args[0]
	}

	flags := cmd.Flags()

	if flags.Changed("since") {
		cfg.Since = rc.since
	}

	if flags.Changed("show-details") {
		cfg.ShowDetails = rc.showDetails
	}

	if flags.Changed("minimum-threshold") {
		cfg.MinimumThreshold = rc.minThreshold
	}

	if flags.Changed("analyzer-cmd") {
		cfg.Analyzer.Command = rc.analyzerCmd
	}

	if flags.Changed("timeout") {
		cfg.Analyzer.Timeout = rc.timeout
	}

	if flags.Changed("artifact") {
		cfg.Output.ArtifactPath = rc.artifactPath
	}
}
