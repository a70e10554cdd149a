package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/runsweep/internal/ui"
)

func TestReporterWritesPlainLinesWithoutTerminal(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	reporter := ui.NewReporter(outputBuffer)

	reporter.Info("No workflows found.")
	reporter.Success("Deleted workflow run ID 7.")
	reporter.Failure("Failed to delete workflow run ID 8.")

	require.Equal(testInstance, "No workflows found.\nDeleted workflow run ID 7.\nFailed to delete workflow run ID 8.\n", outputBuffer.String())
}

func TestReporterHeadingStartsWithBlankLine(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	reporter := ui.NewReporter(outputBuffer)

	reporter.Heading("Fetching workflows for repository 'acme/widgets'...")

	require.Equal(testInstance, "\nFetching workflows for repository 'acme/widgets'...\n", outputBuffer.String())
}

func TestReporterDeletionSummary(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	reporter := ui.NewReporter(outputBuffer)

	reporter.DeletionSummary([]ui.DeletionOutcome{
		{RunID: 101, Deleted: true},
		{RunID: 102, Deleted: false, Detail: "DeleteRun failed with status 404"},
	})

	summaryLines := strings.Split(strings.TrimSpace(outputBuffer.String()), "\n")
	require.Len(testInstance, summaryLines, 5)
	require.Contains(testInstance, summaryLines[0], "RUN ID")
	require.Contains(testInstance, summaryLines[0], "OUTCOME")
	require.Contains(testInstance, summaryLines[1], "---")
	require.Contains(testInstance, summaryLines[2], "101")
	require.Contains(testInstance, summaryLines[2], "deleted")
	require.Contains(testInstance, summaryLines[3], "102")
	require.Contains(testInstance, summaryLines[3], "status 404")
	require.Equal(testInstance, "Deleted 1 of 2 run(s).", summaryLines[4])
}

func TestReporterDeletionSummarySkipsEmptyBatch(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	ui.NewReporter(outputBuffer).DeletionSummary(nil)
	require.Empty(testInstance, outputBuffer.String())
}
