package selection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/runsweep/internal/execshell"
)

const (
	fuzzyFinderMultiFlagConstant           = "--multi"
	fuzzyFinderBindFlagConstant            = "--bind"
	fuzzyFinderToggleBindingConstant       = "space:toggle"
	fuzzyFinderPreviewFlagConstant         = "--preview"
	fuzzyFinderPreviewCommandConstant      = "echo {}"
	fuzzyFinderPromptFlagConstant          = "--prompt"
	fuzzyFinderPromptSuffixConstant        = "> "
	fuzzyFinderNoMatchExitCodeConstant     = 1
	fuzzyFinderInterruptedExitCodeConstant = 130
	choiceSeparatorConstant                = "\n"
	selectionFeedbackTemplateConstant      = "\n%d items selected.\n"
	executorNotConfiguredMessageConstant   = "fuzzy finder executor not configured"
)

// ErrExecutorNotConfigured indicates a FuzzyFinderSelector without a command executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// CommandExecutor runs a shell command and reports non-zero exits as execshell.CommandFailedError.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// FuzzyFinderSelector pipes the choices into fzf --multi and reads the chosen lines back.
type FuzzyFinderSelector struct {
	executor    CommandExecutor
	commandName execshell.CommandName
	output      io.Writer
}

// NewFuzzyFinderSelector constructs a selector running the named fzf binary.
// The selection count is reported on output.
func NewFuzzyFinderSelector(executor CommandExecutor, commandName string, output io.Writer) (*FuzzyFinderSelector, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	resolvedCommandName := execshell.CommandFuzzyFinder
	if trimmedCommandName := strings.TrimSpace(commandName); len(trimmedCommandName) > 0 {
		resolvedCommandName = execshell.CommandName(trimmedCommandName)
	}
	if output == nil {
		output = io.Discard
	}
	return &FuzzyFinderSelector{executor: executor, commandName: resolvedCommandName, output: output}, nil
}

// Select runs fzf. Exit code 130 is a cancellation and exit code 1 is an empty selection.
func (selector *FuzzyFinderSelector) Select(executionContext context.Context, choices []string, prompt string) ([]string, error) {
	command := execshell.ShellCommand{
		Name: selector.commandName,
		Details: execshell.CommandDetails{
			Arguments: []string{
				fuzzyFinderMultiFlagConstant,
				fuzzyFinderBindFlagConstant,
				fuzzyFinderToggleBindingConstant,
				fuzzyFinderPreviewFlagConstant,
				fuzzyFinderPreviewCommandConstant,
				fuzzyFinderPromptFlagConstant,
				prompt + fuzzyFinderPromptSuffixConstant,
			},
			StandardInput:        []byte(strings.Join(choices, choiceSeparatorConstant)),
			ForwardStandardError: true,
		},
	}

	executionResult, executionError := selector.executor.Execute(executionContext, command)
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if !errors.As(executionError, &commandFailure) {
			return nil, executionError
		}
		switch commandFailure.Result.ExitCode {
		case fuzzyFinderInterruptedExitCodeConstant:
			return nil, ErrSelectionCancelled
		case fuzzyFinderNoMatchExitCodeConstant:
			executionResult = execshell.ExecutionResult{}
		default:
			return nil, executionError
		}
	}

	chosenLabels := make([]string, 0)
	for _, outputLine := range strings.Split(executionResult.StandardOutput, choiceSeparatorConstant) {
		trimmedLine := strings.TrimRight(outputLine, "\r")
		if len(strings.TrimSpace(trimmedLine)) > 0 {
			chosenLabels = append(chosenLabels, trimmedLine)
		}
	}

	fmt.Fprintf(selector.output, selectionFeedbackTemplateConstant, len(chosenLabels))
	return orderByChoices(choices, chosenLabels), nil
}
