// Package analyzer defines the external commit-attribution analyzer contract
// and the command-backed invoker for it.
package analyzer

import (
	"context"
	"errors"
)

// Sentinel errors for analyzer invocation.
var (
	// ErrUnavailable indicates the analyzer dependency cannot be located.
	ErrUnavailable = errors.New("analyzer unavailable")
	// ErrExecution indicates the analyzer ran but failed or produced
	// malformed output.
	ErrExecution = errors.New("analyzer execution failed")
)

// Request selects the commit range and detail level for one analysis.
type Request struct {
	Repository  string
	Since       string
	ShowDetails bool
}

// CommitDetail is a per-commit attribution record.
type CommitDetail struct {
	Hash     string  `json:"Hash"`
	Author   string  `json:"Author,omitempty"`
	Score    float64 `json:"Score"`
	AILikely bool    `json:"AILikely"`
}

// Result is the normalized analyzer output for one commit range.
// PerCommitDetails is nil unless details were requested and returned.
type Result struct {
	TotalCommits     int            `json:"TotalCommits"`
	AILikelyCommits  int            `json:"AILikelyCommits"`
	AIPercentage     float64        `json:"AIPercentage"`
	AverageScore     float64        `json:"AverageScore"`
	PerCommitDetails []CommitDetail `json:"PerCommitDetails,omitempty"`
}

// Analyzer produces AI-attribution statistics for a commit range.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*Result, error)
}
