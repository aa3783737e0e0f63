package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// stderrTailLimit bounds how much analyzer stderr is included in errors.
const stderrTailLimit = 512

// CommandAnalyzer invokes the external analyzer binary and normalizes its
// JSON output. The binary is resolved via PATH; installing it is a packaging
// concern, so a missing binary fails clearly with ErrUnavailable.
type CommandAnalyzer struct {
	// Command is the analyzer executable name or path.
	Command string
}

// NewCommandAnalyzer returns an invoker for the given analyzer command.
func NewCommandAnalyzer(command string) *CommandAnalyzer {
	return &CommandAnalyzer{Command: command}
}

// Analyze runs the analyzer over the requested commit range.
// Context cancellation and timeouts surface as ErrExecution.
func (a *CommandAnalyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	path, err := exec.LookPath(a.Command)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found in PATH", ErrUnavailable, a.Command)
	}

	args := buildArgs(req)
	cmd := exec.CommandContext(ctx, path, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecution, ctxErr)
	}

	if runErr != nil {
		return nil, fmt.Errorf("%w: %v%s", ErrExecution, runErr, stderrTail(stderr.String()))
	}

	return parseResult(stdout.Bytes())
}

// buildArgs maps a request onto the analyzer's CLI surface.
func buildArgs(req Request) []string {
	args := []string{
		"--repo", req.Repository,
		"--since", req.Since,
		"--format", "json",
	}

	if req.ShowDetails {
		args = append(args, "--details")
	}

	return args
}

// parseResult validates and decodes raw analyzer output.
func parseResult(raw []byte) (*Result, error) {
	validateErr := validateShape(raw)
	if validateErr != nil {
		return nil, validateErr
	}

	var res Result

	decodeErr := json.Unmarshal(raw, &res)
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode output: %v", ErrExecution, decodeErr)
	}

	if res.AILikelyCommits > res.TotalCommits {
		return nil, fmt.Errorf("%w: AI-likely commits (%d) exceed total commits (%d)",
			ErrExecution, res.AILikelyCommits, res.TotalCommits)
	}

	// An empty range carries no percentage, whatever the analyzer says.
	if res.TotalCommits == 0 {
		res.AIPercentage = 0
	}

	return &res, nil
}

func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if len(s) > stderrTailLimit {
		s = s[len(s)-stderrTailLimit:]
	}

	return ": " + s
}
