package analyzer

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// resultSchema validates the analyzer's JSON output shape. Missing required
// fields or non-numeric counts are contract violations, not parse quirks.
const resultSchema = `{
	"type": "object",
	"required": ["TotalCommits", "AILikelyCommits", "AIPercentage", "AverageScore"],
	"properties": {
		"TotalCommits": {"type": "integer", "minimum": 0},
		"AILikelyCommits": {"type": "integer", "minimum": 0},
		"AIPercentage": {"type": "number", "minimum": 0, "maximum": 100},
		"AverageScore": {"type": "number"},
		"PerCommitDetails": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["Hash", "Score"],
				"properties": {
					"Hash": {"type": "string"},
					"Author": {"type": "string"},
					"Score": {"type": "number"},
					"AILikely": {"type": "boolean"}
				}
			}
		}
	}
}`

// validateShape checks raw analyzer output against the contract schema.
func validateShape(raw []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(resultSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecution, err)
	}

	if !result.Valid() {
		first := result.Errors()[0]

		return fmt.Errorf("%w: output shape: %s: %s", ErrExecution, first.Field(), first.Description())
	}

	return nil
}
