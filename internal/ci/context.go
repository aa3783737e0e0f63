// Package ci detects the continuous-integration execution context and
// exposes its reporting channels.
package ci

import (
	"fmt"
	"io"
)

// Environment variables defined by the GitHub Actions runner.
const (
	envActions     = "GITHUB_ACTIONS"
	envOutputPath  = "GITHUB_OUTPUT"
	envSummaryPath = "GITHUB_STEP_SUMMARY"
)

// Context describes a detected CI environment. A nil *Context means the
// process runs outside CI and all CI reporting is skipped.
type Context struct {
	// OutputPath is the step-output file supplied by the runner.
	OutputPath string
	// SummaryPath is the job-summary file supplied by the runner.
	SummaryPath string
}

// Detect probes the environment once at startup. getenv is injected so
// callers can test detection without mutating process state; pass os.Getenv
// in production.
func Detect(getenv func(string) string) *Context {
	if getenv(envActions) != "true" {
		return nil
	}

	return &Context{
		OutputPath:  getenv(envOutputPath),
		SummaryPath: getenv(envSummaryPath),
	}
}

// Errorf emits an error annotation workflow command on w.
// The runner surfaces it on the run page and in the step log.
func (c *Context) Errorf(w io.Writer, format string, args ...any) {
	if c == nil {
		return
	}

	fmt.Fprintf(w, "::error::"+format+"\n", args...)
}
