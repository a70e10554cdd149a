package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
)

const (
	successColorConstant           = "42"
	failureColorConstant           = "196"
	noticeColorConstant            = "245"
	headingColorConstant           = "212"
	summaryRunIDHeaderConstant     = "RUN ID"
	summaryOutcomeHeaderConstant   = "OUTCOME"
	summaryDetailHeaderConstant    = "DETAIL"
	summaryDeletedOutcomeConstant  = "deleted"
	summaryFailedOutcomeConstant   = "failed"
	summaryTotalsTemplateConstant  = "Deleted %d of %d run(s)."
	summaryTablePaddingConstant    = 2
	summaryHeaderSeparatorConstant = '-'
	lineTerminatorConstant         = "\n"
	blankLineConstant              = ""
)

// DeletionOutcome records the result of one delete request.
type DeletionOutcome struct {
	RunID   int64
	Deleted bool
	Detail  string
}

// Reporter writes dialogue lines and summaries to the user's terminal.
type Reporter struct {
	output       io.Writer
	successStyle lipgloss.Style
	failureStyle lipgloss.Style
	noticeStyle  lipgloss.Style
	headingStyle lipgloss.Style
}

// NewReporter constructs a Reporter. Colors are dropped automatically when output is not a terminal.
func NewReporter(output io.Writer) *Reporter {
	if output == nil {
		output = io.Discard
	}
	renderer := lipgloss.NewRenderer(output)
	return &Reporter{
		output:       output,
		successStyle: renderer.NewStyle().Foreground(lipgloss.Color(successColorConstant)),
		failureStyle: renderer.NewStyle().Foreground(lipgloss.Color(failureColorConstant)),
		noticeStyle:  renderer.NewStyle().Foreground(lipgloss.Color(noticeColorConstant)),
		headingStyle: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(headingColorConstant)),
	}
}

// Heading prints a section line preceded by a blank line.
func (reporter *Reporter) Heading(message string) {
	reporter.writeLine(blankLineConstant)
	reporter.writeLine(reporter.headingStyle.Render(message))
}

// Info prints an unstyled line.
func (reporter *Reporter) Info(message string) {
	reporter.writeLine(message)
}

// Notice prints a dimmed line.
func (reporter *Reporter) Notice(message string) {
	reporter.writeLine(reporter.noticeStyle.Render(message))
}

// Success prints a line in the success color.
func (reporter *Reporter) Success(message string) {
	reporter.writeLine(reporter.successStyle.Render(message))
}

// Failure prints a line in the failure color.
func (reporter *Reporter) Failure(message string) {
	reporter.writeLine(reporter.failureStyle.Render(message))
}

// DeletionSummary prints one table row per outcome followed by the totals line.
func (reporter *Reporter) DeletionSummary(outcomes []DeletionOutcome) {
	if len(outcomes) == 0 {
		return
	}

	summaryTable := table.New(summaryRunIDHeaderConstant, summaryOutcomeHeaderConstant, summaryDetailHeaderConstant).
		WithWriter(reporter.output).
		WithPadding(summaryTablePaddingConstant).
		WithHeaderSeparatorRow(summaryHeaderSeparatorConstant)

	deletedCount := 0
	for _, outcome := range outcomes {
		outcomeLabel := summaryFailedOutcomeConstant
		if outcome.Deleted {
			outcomeLabel = summaryDeletedOutcomeConstant
			deletedCount++
		}
		summaryTable.AddRow(strconv.FormatInt(outcome.RunID, 10), outcomeLabel, outcome.Detail)
	}

	reporter.writeLine(blankLineConstant)
	summaryTable.Print()

	totalsLine := fmt.Sprintf(summaryTotalsTemplateConstant, deletedCount, len(outcomes))
	if deletedCount == len(outcomes) {
		reporter.Success(totalsLine)
		return
	}
	reporter.Failure(totalsLine)
}

func (reporter *Reporter) writeLine(line string) {
	_, _ = io.WriteString(reporter.output, line+lineTerminatorConstant)
}
