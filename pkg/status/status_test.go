package status

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func newTestManager() *Manager {
	logger := zerolog.Nop()
	return NewManager(&logger, NewDefaultFileFormatter())
}

func TestManager_Track(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	m.Track(ctx, FileResult{Source: "/src", RelPath: "movie.nfo", Size: 1024, Outcome: OutcomeCopied})
	m.Track(ctx, FileResult{Source: "/src", RelPath: "poster.jpg", Size: 2048, Outcome: OutcomeOverwritten})
	m.Track(ctx, FileResult{Source: "/src", RelPath: "fanart.jpg", Size: 512, Outcome: OutcomeSkippedExisting})
	m.Track(ctx, FileResult{Source: "/src", RelPath: "movie.mkv", Size: 1 << 30, Outcome: OutcomeExcludedExt})
	m.Track(ctx, FileResult{Source: "/src", RelPath: "sample.iso", Size: 1 << 31, Outcome: OutcomeExcludedSize})
	m.Track(ctx, FileResult{Source: "/src", RelPath: "broken.nfo", Outcome: OutcomeFailed, Err: errors.New("permission denied")})

	s := m.Summary()
	assert.Equal(t, 1, s.Copied, "copied count should match")
	assert.Equal(t, 1, s.Overwritten, "overwritten count should match")
	assert.Equal(t, 1, s.Skipped, "skipped count should match")
	assert.Equal(t, 2, s.Excluded, "excluded count should match")
	assert.Equal(t, 1, s.Failed, "failed count should match")
	assert.Equal(t, int64(1024+2048), s.BytesCopied, "only copied and overwritten bytes should count")
	assert.Equal(t, 6, s.Total(), "total should cover every visited file")

	results := m.Results()
	require.Len(t, results, 6, "all results should be tracked")
	assert.Equal(t, "movie.nfo", results[0].RelPath, "results should keep discovery order")
}

func TestManager_TrackPairError(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	m.TrackPairError(ctx, "/media/missing", errors.New("source folder does not exist"))
	m.TrackPairError(ctx, "/media/gone", errors.New("source folder does not exist"))

	assert.Equal(t, 2, m.Summary().PairErrors, "pair errors should be counted")
	assert.Empty(t, m.Results(), "pair errors should not produce file results")
}

func TestManager_Result(t *testing.T) {
	ctx := context.Background()
	m := newTestManager()

	m.Track(ctx, FileResult{RelPath: "movie.nfo", Outcome: OutcomeCopied})

	res, err := m.Result("movie.nfo")
	require.NoError(t, err, "tracked file should be found")
	assert.Equal(t, OutcomeCopied, res.Outcome, "outcome should match")

	_, err = m.Result("other.nfo")
	require.Error(t, err, "untracked file should not be found")
	assert.Contains(t, err.Error(), "file not tracked", "error should mention tracking")
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeCopied, "copied"},
		{OutcomeOverwritten, "overwritten"},
		{OutcomeSkippedExisting, "skipped"},
		{OutcomeExcludedExt, "excluded (ext)"},
		{OutcomeExcludedPattern, "excluded (pattern)"},
		{OutcomeExcludedSize, "excluded (size)"},
		{OutcomeFailed, "failed"},
		{OutcomeUnknown, "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.outcome.String(), "outcome string should match")
	}
}
