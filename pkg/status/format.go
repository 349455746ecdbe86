package status

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 45 // Base width for the relative path
	outcomeWidth = 20 // Width for the outcome text
)

// FileFormatter defines how file results and the summary are formatted
type FileFormatter interface {
	// FormatFileResult formats a single file outcome line
	FormatFileResult(res FileResult) string

	// FormatPairError formats a folder-pair level failure
	FormatPairError(source string, err error) string

	// FormatSummary formats the end-of-run summary line
	FormatSummary(s Summary) string
}

// DefaultFileFormatter provides the standard console formatting
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileResult formats one outcome as an aligned, colored line
func (f *DefaultFileFormatter) FormatFileResult(res FileResult) string {
	var symbol rune
	var symbolColor color.Attribute
	switch res.Outcome {
	case OutcomeCopied:
		symbol = '✓'
		symbolColor = color.FgGreen
	case OutcomeOverwritten:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case OutcomeSkippedExisting:
		symbol = '-'
		symbolColor = color.FgYellow
	case OutcomeFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, res.RelPath),
		fmt.Sprintf("%-*s", outcomeWidth, res.Outcome.String()),
		humanize.Bytes(uint64(res.Size)))
}

// FormatPairError formats a skipped folder pair
func (f *DefaultFileFormatter) FormatPairError(source string, err error) string {
	return fmt.Sprintf("%s %s: %v",
		color.New(color.FgRed).Sprint("✗"),
		source, err)
}

// FormatSummary formats the aggregate counts for the end of the run
func (f *DefaultFileFormatter) FormatSummary(s Summary) string {
	line := fmt.Sprintf("%d copied, %d overwritten, %d skipped, %d excluded, %d failed (%s written)",
		s.Copied, s.Overwritten, s.Skipped, s.Excluded, s.Failed,
		humanize.Bytes(uint64(s.BytesCopied)))
	if s.PairErrors > 0 {
		line += fmt.Sprintf(", %d folder pairs skipped", s.PairErrors)
	}
	return line
}
