// Package threshold derives the advisory run outcome from analysis results.
package threshold

import (
	"fmt"

	"github.com/attrigate/attrigate/internal/analyzer"
)

// Status classifies a finished run.
type Status int

// Run status values.
const (
	// Passed means AI usage exceeded the configured minimum.
	Passed Status = iota
	// Warning means AI usage was at or below the minimum. Advisory only.
	Warning
	// Failed means the pipeline hit an infrastructure error.
	Failed
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case Warning:
		return "warning"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the derived result of a run.
type Outcome struct {
	Status   Status
	ExitCode int
	Message  string
}

// Evaluate applies the acceptance policy to an analysis result.
// Passed requires AIPercentage strictly above the minimum; a result exactly
// at the threshold is a Warning. Neither branch fails the build: a threshold
// miss is advisory, so the exit code is 0 either way.
func Evaluate(res *analyzer.Result, minimumThreshold int) Outcome {
	if res.AIPercentage > float64(minimumThreshold) {
		return Outcome{
			Status:   Passed,
			ExitCode: 0,
			Message: fmt.Sprintf("AI usage %.1f%% is above the %d%% minimum",
				res.AIPercentage, minimumThreshold),
		}
	}

	return Outcome{
		Status:   Warning,
		ExitCode: 0,
		Message: fmt.Sprintf("AI usage %.1f%% is at or below the %d%% minimum",
			res.AIPercentage, minimumThreshold),
	}
}
