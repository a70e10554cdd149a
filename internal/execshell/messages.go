package execshell

import (
	"fmt"
	"path/filepath"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
)

const (
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitCommonDirectoryFlagConstant    = "--git-common-dir"
	gitDirectoryFlagConstant          = "--git-dir"
	githubAuthSubcommandNameConstant  = "auth"
	githubStatusSubcommandConstant    = "status"
	githubLoginSubcommandConstant     = "login"
	githubTokenSubcommandConstant     = "token"
	fuzzyFinderPromptFlagConstant     = "--prompt"
)

const (
	gitDirectoryStartTemplateConstant            = "Locating git directory for %s"
	gitDirectorySuccessTemplateConstant          = "Located git directory for %s"
	gitDirectoryFailureTemplateConstant          = "%s is not inside a git repository (exit code %d%s)"
	gitDirectoryExecutionFailureTemplateConstant = "Unable to locate git directory for %s: %s"
	githubAuthStatusStartMessageConstant         = "Checking GitHub CLI authentication status"
	githubAuthStatusSuccessMessageConstant       = "GitHub CLI is authenticated"
	githubAuthStatusFailureTemplateConstant      = "GitHub CLI is not authenticated (exit code %d%s)"
	githubAuthStatusExecutionTemplateConstant    = "Unable to check GitHub CLI authentication status: %s"
	githubAuthLoginStartMessageConstant          = "Starting interactive GitHub CLI login"
	githubAuthLoginSuccessMessageConstant        = "GitHub CLI login finished"
	githubAuthLoginFailureTemplateConstant       = "GitHub CLI login failed (exit code %d%s)"
	githubAuthLoginExecutionTemplateConstant     = "Unable to start GitHub CLI login: %s"
	githubAuthTokenStartMessageConstant          = "Retrieving GitHub CLI token"
	githubAuthTokenSuccessMessageConstant        = "Retrieved GitHub CLI token"
	githubAuthTokenFailureTemplateConstant       = "Failed to retrieve GitHub CLI token (exit code %d%s)"
	githubAuthTokenExecutionTemplateConstant     = "Unable to retrieve GitHub CLI token: %s"
	fuzzyFinderStartTemplateConstant             = "Opening fuzzy finder for %q"
	fuzzyFinderSuccessTemplateConstant           = "Fuzzy finder returned a selection for %q"
	fuzzyFinderFailureTemplateConstant           = "Fuzzy finder for %q closed with exit code %d%s"
	fuzzyFinderExecutionTemplateConstant         = "Unable to open fuzzy finder for %q: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch CommandName(filepath.Base(string(command.Name))) {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	case CommandFuzzyFinder:
		return formatter.describeFuzzyFinderMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 || strings.TrimSpace(arguments[0]) != gitRevParseSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
	if !containsArgument(arguments, gitCommonDirectoryFlagConstant) && !containsArgument(arguments, gitDirectoryFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitDirectoryStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitDirectorySuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitDirectoryFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitDirectoryExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 || strings.TrimSpace(arguments[0]) != githubAuthSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	standardErrorSuffix := formatter.formatStandardErrorSuffix(result.StandardError)
	switch strings.TrimSpace(arguments[1]) {
	case githubStatusSubcommandConstant:
		switch stage {
		case messageStageStart:
			return githubAuthStatusStartMessageConstant
		case messageStageSuccess:
			return githubAuthStatusSuccessMessageConstant
		case messageStageFailure:
			return fmt.Sprintf(githubAuthStatusFailureTemplateConstant, result.ExitCode, standardErrorSuffix)
		default:
			return fmt.Sprintf(githubAuthStatusExecutionTemplateConstant, formatter.describeFailure(failure))
		}
	case githubLoginSubcommandConstant:
		switch stage {
		case messageStageStart:
			return githubAuthLoginStartMessageConstant
		case messageStageSuccess:
			return githubAuthLoginSuccessMessageConstant
		case messageStageFailure:
			return fmt.Sprintf(githubAuthLoginFailureTemplateConstant, result.ExitCode, standardErrorSuffix)
		default:
			return fmt.Sprintf(githubAuthLoginExecutionTemplateConstant, formatter.describeFailure(failure))
		}
	case githubTokenSubcommandConstant:
		switch stage {
		case messageStageStart:
			return githubAuthTokenStartMessageConstant
		case messageStageSuccess:
			return githubAuthTokenSuccessMessageConstant
		case messageStageFailure:
			return fmt.Sprintf(githubAuthTokenFailureTemplateConstant, result.ExitCode, standardErrorSuffix)
		default:
			return fmt.Sprintf(githubAuthTokenExecutionTemplateConstant, formatter.describeFailure(failure))
		}
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

// describeFuzzyFinderMessage never echoes the arguments because they contain the full preview command.
func (formatter CommandMessageFormatter) describeFuzzyFinderMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	prompt := strings.TrimSpace(findFlagValue(command.Details.Arguments, fuzzyFinderPromptFlagConstant))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(fuzzyFinderStartTemplateConstant, prompt)
	case messageStageSuccess:
		return fmt.Sprintf(fuzzyFinderSuccessTemplateConstant, prompt)
	case messageStageFailure:
		return fmt.Sprintf(fuzzyFinderFailureTemplateConstant, prompt, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(fuzzyFinderExecutionTemplateConstant, prompt, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for argumentIndex := 0; argumentIndex < len(arguments)-1; argumentIndex++ {
		if strings.TrimSpace(arguments[argumentIndex]) == flag {
			return arguments[argumentIndex+1]
		}
	}
	return emptyStringConstant
}
