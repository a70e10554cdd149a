package selection_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/runsweep/internal/execshell"
	"github.com/temirov/runsweep/internal/selection"
)

const (
	testPromptConstant                 = "Select workflow runs to delete"
	testFirstChoiceConstant            = "CI - Created: 2024-01-01T00:00:00Z - Status: completed (ID: 1)"
	testSecondChoiceConstant           = "CI - Created: 2024-01-02T00:00:00Z - Status: failure (ID: 2)"
	testDeleteAllChoiceConstant        = "Delete All Runs"
	testBackChoiceConstant             = "Back"
	testSelectionCaseNameConstant      = "selection_in_choice_order"
	testNoMatchCaseNameConstant        = "no_match_is_empty"
	testInterruptedCaseNameConstant    = "interrupted_is_cancel"
	testUnexpectedExitCaseNameConstant = "unexpected_exit_code"
	testMissingBinaryCaseNameConstant  = "missing_binary"
	testEmptyOutputCaseNameConstant    = "empty_output"
)

type recordingCommandExecutor struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
}

func (executor *recordingCommandExecutor) Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, command)
	return executor.executionResult, executor.executionError
}

func testChoices() []string {
	return []string{testFirstChoiceConstant, testSecondChoiceConstant, testDeleteAllChoiceConstant, testBackChoiceConstant}
}

func TestFuzzyFinderSelectorSelect(testInstance *testing.T) {
	testCases := []struct {
		name             string
		executor         *recordingCommandExecutor
		expectedLabels   []string
		expectedError    error
		expectedFeedback string
	}{
		{
			name: testSelectionCaseNameConstant,
			executor: &recordingCommandExecutor{
				executionResult: execshell.ExecutionResult{StandardOutput: testBackChoiceConstant + "\n" + testFirstChoiceConstant + "\n"},
			},
			expectedLabels:   []string{testFirstChoiceConstant, testBackChoiceConstant},
			expectedFeedback: "\n2 items selected.\n",
		},
		{
			name:             testEmptyOutputCaseNameConstant,
			executor:         &recordingCommandExecutor{},
			expectedLabels:   []string{},
			expectedFeedback: "\n0 items selected.\n",
		},
		{
			name: testNoMatchCaseNameConstant,
			executor: &recordingCommandExecutor{
				executionError: execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 1}},
			},
			expectedLabels:   []string{},
			expectedFeedback: "\n0 items selected.\n",
		},
		{
			name: testInterruptedCaseNameConstant,
			executor: &recordingCommandExecutor{
				executionError: execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 130}},
			},
			expectedError: selection.ErrSelectionCancelled,
		},
		{
			name: testUnexpectedExitCaseNameConstant,
			executor: &recordingCommandExecutor{
				executionError: execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 2}},
			},
		},
		{
			name: testMissingBinaryCaseNameConstant,
			executor: &recordingCommandExecutor{
				executionError: execshell.CommandExecutionError{Cause: errors.New("executable file not found")},
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			feedbackBuffer := &bytes.Buffer{}
			selector, creationError := selection.NewFuzzyFinderSelector(testCase.executor, "", feedbackBuffer)
			require.NoError(testInstance, creationError)

			chosenLabels, selectError := selector.Select(context.Background(), testChoices(), testPromptConstant)

			require.Len(testInstance, testCase.executor.recordedCommands, 1)
			recordedCommand := testCase.executor.recordedCommands[0]
			require.Equal(testInstance, execshell.CommandFuzzyFinder, recordedCommand.Name)
			require.Equal(testInstance, []string{"--multi", "--bind", "space:toggle", "--preview", "echo {}", "--prompt", testPromptConstant + "> "}, recordedCommand.Details.Arguments)
			require.Equal(testInstance, testFirstChoiceConstant+"\n"+testSecondChoiceConstant+"\n"+testDeleteAllChoiceConstant+"\n"+testBackChoiceConstant, string(recordedCommand.Details.StandardInput))
			require.True(testInstance, recordedCommand.Details.ForwardStandardError)

			if testCase.expectedLabels == nil {
				require.Error(testInstance, selectError)
				if testCase.expectedError != nil {
					require.ErrorIs(testInstance, selectError, testCase.expectedError)
				}
				require.Nil(testInstance, chosenLabels)
				require.Empty(testInstance, feedbackBuffer.String())
				return
			}
			require.NoError(testInstance, selectError)
			require.Equal(testInstance, testCase.expectedLabels, chosenLabels)
			require.Equal(testInstance, testCase.expectedFeedback, feedbackBuffer.String())
		})
	}
}

func TestFuzzyFinderSelectorUsesConfiguredCommand(testInstance *testing.T) {
	executor := &recordingCommandExecutor{}
	selector, creationError := selection.NewFuzzyFinderSelector(executor, "/usr/local/bin/fzf", nil)
	require.NoError(testInstance, creationError)

	_, selectError := selector.Select(context.Background(), testChoices(), testPromptConstant)
	require.NoError(testInstance, selectError)
	require.Equal(testInstance, execshell.CommandName("/usr/local/bin/fzf"), executor.recordedCommands[0].Name)
}

func TestNewFuzzyFinderSelectorRequiresExecutor(testInstance *testing.T) {
	_, creationError := selection.NewFuzzyFinderSelector(nil, "", nil)
	require.ErrorIs(testInstance, creationError, selection.ErrExecutorNotConfigured)
}
