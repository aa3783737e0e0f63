// Package export serializes analysis results to the JSON artifact and to
// CI-native reporting channels.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/attrigate/attrigate/internal/analyzer"
	"github.com/attrigate/attrigate/internal/ci"
	"github.com/attrigate/attrigate/internal/threshold"
)

// File modes for artifact and CI channel writes.
const (
	artifactFileMode = 0o644
	appendFileMode   = 0o644
)

// Sentinel errors for missing CI channel paths.
var (
	errNoOutputPath  = errors.New("step-output path not set")
	errNoSummaryPath = errors.New("job-summary path not set")
)

// Exporter writes run results to the artifact file and, in CI, to the
// step-output and job-summary channels. All writes are best-effort: every
// failure is logged and never surfaces to the caller, so a broken export
// cannot change the run's exit code.
type Exporter struct {
	// ArtifactPath is where the JSON artifact is written, overwriting any
	// prior run's artifact.
	ArtifactPath string
	// Logger receives export warnings; log.Default() when nil.
	Logger *log.Logger
}

// Export publishes the result everywhere it belongs. The artifact and the
// two CI channels are independent: one failing does not stop the others.
func (e *Exporter) Export(res *analyzer.Result, out threshold.Outcome, ciCtx *ci.Context) {
	artifactErr := e.writeArtifact(res)
	if artifactErr != nil {
		e.logf("warning: failed to write artifact: %v", artifactErr)
	}

	if ciCtx == nil {
		return
	}

	outputErr := e.writeStepOutputs(res, ciCtx.OutputPath)
	if outputErr != nil {
		e.logf("warning: failed to write step outputs: %v", outputErr)
	}

	summaryErr := e.writeJobSummary(res, out, ciCtx.SummaryPath)
	if summaryErr != nil {
		e.logf("warning: failed to write job summary: %v", summaryErr)
	}
}

// writeArtifact serializes the result to the artifact path. Encoding is
// stable so identical inputs produce byte-identical files.
func (e *Exporter) writeArtifact(res *analyzer.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	data = append(data, '\n')

	err = os.WriteFile(e.ArtifactPath, data, artifactFileMode)
	if err != nil {
		return fmt.Errorf("write %s: %w", e.ArtifactPath, err)
	}

	return nil
}

// writeStepOutputs appends key=value pairs to the CI step-output file.
// The file belongs to the runner; append, never truncate.
func (e *Exporter) writeStepOutputs(res *analyzer.Result, path string) error {
	if path == "" {
		return errNoOutputPath
	}

	lines := fmt.Sprintf("ai-percentage=%s\ntotal-commits=%d\nai-commits=%d\naverage-score=%s\n",
		formatFloat(res.AIPercentage),
		res.TotalCommits,
		res.AILikelyCommits,
		formatFloat(res.AverageScore),
	)

	return appendTo(path, lines)
}

// writeJobSummary appends the markdown summary to the CI job-summary file.
func (e *Exporter) writeJobSummary(res *analyzer.Result, out threshold.Outcome, path string) error {
	if path == "" {
		return errNoSummaryPath
	}

	return appendTo(path, renderSummary(res, out))
}

func appendTo(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, appendFileMode)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	_, writeErr := file.WriteString(content)

	closeErr := file.Close()
	if writeErr != nil {
		return fmt.Errorf("append to %s: %w", path, writeErr)
	}

	if closeErr != nil {
		return fmt.Errorf("close %s: %w", path, closeErr)
	}

	return nil
}

// formatFloat renders a float without a trailing ".0" for whole values,
// matching the artifact's JSON number encoding.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (e *Exporter) logf(format string, args ...any) {
	logger := e.Logger
	if logger == nil {
		logger = log.Default()
	}

	logger.Printf(format, args...)
}
