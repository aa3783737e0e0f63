package analyzer_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attrigate/attrigate/internal/analyzer"
)

// stubAnalyzer writes an executable shell script standing in for the real
// analyzer binary and returns its path.
func stubAnalyzer(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stub-analyzer")
	content := "#!/bin/sh\n" + script + "\n"

	require.NoError(t, os.WriteFile(path, []byte(content), 0o755))

	return path
}

func stubWithOutput(t *testing.T, output string) string {
	t.Helper()

	return stubAnalyzer(t, fmt.Sprintf("cat <<'EOF'\n%s\nEOF", output))
}

func TestAnalyze_Unavailable(t *testing.T) {
	t.Parallel()

	inv := analyzer.NewCommandAnalyzer("attrigate-test-no-such-binary")

	res, err := inv.Analyze(context.Background(), analyzer.Request{Repository: ".", Since: "1 day ago"})
	require.ErrorIs(t, err, analyzer.ErrUnavailable)
	assert.Nil(t, res)
}

func TestAnalyze_Success(t *testing.T) {
	t.Parallel()

	cmd := stubWithOutput(t, `{
		"TotalCommits": 40,
		"AILikelyCommits": 12,
		"AIPercentage": 30,
		"AverageScore": 0.62
	}`)
	inv := analyzer.NewCommandAnalyzer(cmd)

	res, err := inv.Analyze(context.Background(), analyzer.Request{Repository: ".", Since: "7 days ago"})
	require.NoError(t, err)

	assert.Equal(t, 40, res.TotalCommits)
	assert.Equal(t, 12, res.AILikelyCommits)
	assert.InDelta(t, 30.0, res.AIPercentage, 1e-9)
	assert.InDelta(t, 0.62, res.AverageScore, 1e-9)
	assert.Nil(t, res.PerCommitDetails)
}

func TestAnalyze_PerCommitDetails(t *testing.T) {
	t.Parallel()

	cmd := stubWithOutput(t, `{
		"TotalCommits": 2,
		"AILikelyCommits": 1,
		"AIPercentage": 50,
		"AverageScore": 0.5,
		"PerCommitDetails": [
			{"Hash": "abc1234", "Author": "alice", "Score": 0.9, "AILikely": true},
			{"Hash": "def5678", "Author": "bob", "Score": 0.1, "AILikely": false}
		]
	}`)
	inv := analyzer.NewCommandAnalyzer(cmd)

	res, err := inv.Analyze(context.Background(), analyzer.Request{Repository: ".", Since: "1 day ago", ShowDetails: true})
	require.NoError(t, err)

	require.Len(t, res.PerCommitDetails, 2)
	assert.Equal(t, "abc1234", res.PerCommitDetails[0].Hash)
	assert.True(t, res.PerCommitDetails[0].AILikely)
	assert.Equal(t, "def5678", res.PerCommitDetails[1].Hash)
}

func TestAnalyze_ArgumentSurface(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	t.Setenv("STUB_ARGS_FILE", argsFile)

	cmd := stubAnalyzer(t, `echo "$@" > "$STUB_ARGS_FILE"
cat <<'EOF'
{"TotalCommits": 0, "AILikelyCommits": 0, "AIPercentage": 0, "AverageScore": 0}
EOF`)
	inv := analyzer.NewCommandAnalyzer(cmd)

	_, err := inv.Analyze(context.Background(), analyzer.Request{
		Repository:  "/work/repo",
		Since:       "7 days ago",
		ShowDetails: true,
	})
	require.NoError(t, err)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)

	assert.Contains(t, string(args), "--repo /work/repo")
	assert.Contains(t, string(args), "--since 7 days ago")
	assert.Contains(t, string(args), "--format json")
	assert.Contains(t, string(args), "--details")
}

func TestAnalyze_MissingRequiredField(t *testing.T) {
	t.Parallel()

	cmd := stubWithOutput(t, `{"TotalCommits": 40, "AILikelyCommits": 12, "AIPercentage": 30}`)
	inv := analyzer.NewCommandAnalyzer(cmd)

	_, err := inv.Analyze(context.Background(), analyzer.Request{Repository: ".", Since: "1 day ago"})
	require.ErrorIs(t, err, analyzer.ErrExecution)
}

func TestAnalyze_NonNumericCount(t *testing.T) {
	t.Parallel()

	cmd := stubWithOutput(t, `{"TotalCommits": "40", "AILikelyCommits": 12, "AIPercentage": 30, "AverageScore": 0.5}`)
	inv := analyzer.NewCommandAnalyzer(cmd)

	_, err := inv.Analyze(context.Background(), analyzer.Request{Repository: ".", Since: "1 day ago"})
	require.ErrorIs(t, err, analyzer.ErrExecution)
}

func TestAnalyze_NotJSON(t *testing.T) {
	t.Parallel()

	cmd := stubWithOutput(t, `Traceback (most recent call last): boom`)
	inv := analyzer.NewCommandAnalyzer(cmd)

	_, err := inv.Analyze(context.Background(), analyzer.Request{Repository: ".", Since: "1 day ago"})
	require.ErrorIs(t, err, analyzer.ErrExecution)
}

func TestAnalyze_AILikelyExceedsTotal(t *testing.T) {
	t.Parallel()

	cmd := stubWithOutput(t, `{"TotalCommits": 5, "AILikelyCommits": 7, "AIPercentage": 30, "AverageScore": 0.5}`)
	inv := analyzer.NewCommandAnalyzer(cmd)

	_, err := inv.Analyze(context.Background(), analyzer.Request{Repository: ".", Since: "1 day ago"})
	require.ErrorIs(t, err, analyzer.ErrExecution)
}

func TestAnalyze_ZeroCommitsNormalizesPercentage(t *testing.T) {
	t.Parallel()

	cmd := stubWithOutput(t, `{"TotalCommits": 0, "AILikelyCommits": 0, "AIPercentage": 100, "AverageScore": 0}`)
	inv := analyzer.NewCommandAnalyzer(cmd)

	res, err := inv.Analyze(context.Background(), analyzer.Request{Repository: ".", Since: "1 day ago"})
	require.NoError(t, err)
	assert.Zero(t, res.AIPercentage)
}

func TestAnalyze_NonZeroExit(t *testing.T) {
	t.Parallel()

	cmd := stubAnalyzer(t, `echo "internal analyzer failure" >&2
exit 3`)
	inv := analyzer.NewCommandAnalyzer(cmd)

	_, err := inv.Analyze(context.Background(), analyzer.Request{Repository: ".", Since: "1 day ago"})
	require.ErrorIs(t, err, analyzer.ErrExecution)
	assert.Contains(t, err.Error(), "internal analyzer failure")
}

func TestAnalyze_Timeout(t *testing.T) {
	t.Parallel()

	cmd := stubAnalyzer(t, `exec sleep 10`)
	inv := analyzer.NewCommandAnalyzer(cmd)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := inv.Analyze(ctx, analyzer.Request{Repository: ".", Since: "1 day ago"})
	require.ErrorIs(t, err, analyzer.ErrExecution)
}
