package status

import (
	"context"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 Outcome represents what happened to a single discovered file
type Outcome int

const (
	OutcomeUnknown         Outcome = iota
	OutcomeCopied                  // File was copied to a fresh destination path
	OutcomeOverwritten             // Destination existed and was overwritten
	OutcomeSkippedExisting         // Destination existed and policy was skip
	OutcomeExcludedExt             // Extension matched exclude_exts
	OutcomeExcludedPattern         // Relative path matched exclude_patterns
	OutcomeExcludedSize            // Size exceeded max_size_mb
	OutcomeFailed                  // Per-file I/O error
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeCopied:
		return "copied"
	case OutcomeOverwritten:
		return "overwritten"
	case OutcomeSkippedExisting:
		return "skipped"
	case OutcomeExcludedExt:
		return "excluded (ext)"
	case OutcomeExcludedPattern:
		return "excluded (pattern)"
	case OutcomeExcludedSize:
		return "excluded (size)"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileResult contains the outcome for one discovered file
type FileResult struct {
	Source  string  // Source root the file was found under
	RelPath string  // Path relative to the source root
	Size    int64   // File size in bytes
	Outcome Outcome // What happened
	Err     error   // Set when Outcome is OutcomeFailed
}

// 📈 Summary aggregates the results of a run
type Summary struct {
	Copied      int
	Overwritten int
	Skipped     int
	Excluded    int
	Failed      int
	PairErrors  int
	BytesCopied int64
}

// Total returns the number of files that were visited
func (s Summary) Total() int {
	return s.Copied + s.Overwritten + s.Skipped + s.Excluded + s.Failed
}

// 🔧 Manager tracks per-file results and renders them to the console
type Manager struct {
	logger    *zerolog.Logger
	formatter FileFormatter

	mu      sync.Mutex
	results []FileResult
	summary Summary
}

// 🏭 NewManager creates a new status manager
func NewManager(logger *zerolog.Logger, formatter FileFormatter) *Manager {
	return &Manager{
		logger:    logger,
		formatter: formatter,
	}
}

// 📝 Track records the outcome for one file and logs it.
// Filter exclusions log at debug, copies and duplicate decisions at
// info, failures at error, matching the verbosity gate in the config.
func (m *Manager) Track(ctx context.Context, res FileResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results = append(m.results, res)

	switch res.Outcome {
	case OutcomeCopied:
		m.summary.Copied++
		m.summary.BytesCopied += res.Size
	case OutcomeOverwritten:
		m.summary.Overwritten++
		m.summary.BytesCopied += res.Size
	case OutcomeSkippedExisting:
		m.summary.Skipped++
	case OutcomeExcludedExt, OutcomeExcludedPattern, OutcomeExcludedSize:
		m.summary.Excluded++
	case OutcomeFailed:
		m.summary.Failed++
	}

	msg := m.formatter.FormatFileResult(res)
	event := m.logger.Info()
	switch res.Outcome {
	case OutcomeExcludedExt, OutcomeExcludedPattern, OutcomeExcludedSize:
		event = m.logger.Debug()
	case OutcomeFailed:
		event = m.logger.Error().Err(res.Err)
	}
	event.Str("path", res.RelPath).Str("outcome", res.Outcome.String()).Msg(msg)
}

// 🚫 TrackPairError records a folder-pair level failure (missing source).
// The pair is skipped but the run continues.
func (m *Manager) TrackPairError(ctx context.Context, source string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.summary.PairErrors++
	m.logger.Error().Err(err).Str("source", source).Msg(m.formatter.FormatPairError(source, err))
}

// 🔍 Result returns the tracked result for a relative path
func (m *Manager) Result(relPath string) (FileResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, res := range m.results {
		if res.RelPath == relPath {
			return res, nil
		}
	}
	return FileResult{}, errors.Errorf("file not tracked: %s", relPath)
}

// 📋 Results returns all tracked results in discovery order
func (m *Manager) Results() []FileResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]FileResult, len(m.results))
	copy(out, m.results)
	return out
}

// 📈 Summary returns the aggregate counts for the run so far
func (m *Manager) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.summary
}

// 🏁 PrintSummary renders the end-of-run summary to the user
func (m *Manager) PrintSummary() {
	s := m.Summary()

	line := m.formatter.FormatSummary(s)
	if s.Failed > 0 || s.PairErrors > 0 {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(line)
		return
	}
	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(line)
}
