// Package pipeline orchestrates one attribution run: validate, invoke,
// evaluate, export, and map the result to a process exit code.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/attrigate/attrigate/internal/analyzer"
	"github.com/attrigate/attrigate/internal/ci"
	"github.com/attrigate/attrigate/internal/config"
	"github.com/attrigate/attrigate/internal/export"
	"github.com/attrigate/attrigate/internal/gitrepo"
	"github.com/attrigate/attrigate/internal/threshold"
)

// Process exit codes. Threshold misses are advisory and share the success
// code; only infrastructure errors fail the run.
const (
	ExitOK     = 0
	ExitFailed = 1
)

// ResolveRepo resolves a repository path; swappable for tests.
type ResolveRepo func(path string) (*gitrepo.Info, error)

// Controller drives the four pipeline steps in order. Data flows strictly
// downstream; evaluation and export can never fail the run.
type Controller struct {
	Analyzer analyzer.Analyzer
	Exporter *export.Exporter
	CI       *ci.Context
	Out      io.Writer
	Err      io.Writer

	// Resolve defaults to gitrepo.Resolve when nil.
	Resolve ResolveRepo
}

// Run executes one attribution run and returns the process exit code.
func (c *Controller) Run(ctx context.Context, cfg *config.RunConfig) int {
	validateErr := c.validate(cfg)
	if validateErr != nil {
		return c.fail("invalid configuration", validateErr)
	}

	timeout, _ := cfg.AnalyzerTimeout() // Validated above.
	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	c.statusf("Analyzing commits in %s since %q", cfg.Repository, cfg.Since)

	result, invokeErr := c.Analyzer.Analyze(ctx, analyzer.Request{
		Repository:  cfg.Repository,
		Since:       cfg.Since,
		ShowDetails: cfg.ShowDetails,
	})
	if invokeErr != nil {
		return c.fail("analysis failed", invokeErr)
	}

	c.statusf("Analyzed %s commits, %s AI-likely (%.1f%%, average score %.2f)",
		humanize.Comma(int64(result.TotalCommits)),
		humanize.Comma(int64(result.AILikelyCommits)),
		result.AIPercentage,
		result.AverageScore,
	)

	outcome := threshold.Evaluate(result, cfg.MinimumThreshold)
	c.printOutcome(outcome)

	// Export runs for both Passed and Warning; its failures are logged
	// inside the exporter and never change the exit code.
	c.Exporter.Export(result, outcome, c.CI)

	return outcome.ExitCode
}

// validate checks parameter bounds and that the repository resolves to an
// accessible git root. Nothing downstream runs when this fails.
func (c *Controller) validate(cfg *config.RunConfig) error {
	err := cfg.Validate()
	if err != nil {
		return err
	}

	resolve := c.Resolve
	if resolve == nil {
		resolve = gitrepo.Resolve
	}

	info, err := resolve(cfg.Repository)
	if err != nil {
		return err
	}

	if info.Head != "" {
		c.statusf("Repository %s at %s", info.Path, info.Head)
	} else {
		c.statusf("Repository %s", info.Path)
	}

	return nil
}

// fail reports a fatal error on the error channel and, in CI, as an error
// annotation, then yields the failure exit code.
func (c *Controller) fail(stage string, err error) int {
	fmt.Fprintf(c.Err, "Error: %s: %v\n", stage, err)
	c.CI.Errorf(c.Out, "%s: %v", stage, err)

	return ExitFailed
}

func (c *Controller) statusf(format string, args ...any) {
	fmt.Fprintf(c.Out, format+"\n", args...)
}

func (c *Controller) printOutcome(out threshold.Outcome) {
	if out.Status == threshold.Passed {
		color.New(color.FgGreen).Fprintf(c.Out, "Passed: %s\n", out.Message)

		return
	}

	color.New(color.FgYellow).Fprintf(c.Out, "Warning: %s\n", out.Message)
}
