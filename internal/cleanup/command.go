package cleanup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/runsweep/internal/actions"
	"github.com/temirov/runsweep/internal/execshell"
	"github.com/temirov/runsweep/internal/githubauth"
	"github.com/temirov/runsweep/internal/githubcli"
	"github.com/temirov/runsweep/internal/gitrepo"
	"github.com/temirov/runsweep/internal/selection"
	"github.com/temirov/runsweep/internal/ui"
	"github.com/temirov/runsweep/internal/utils"
	"github.com/temirov/runsweep/internal/utils/flags"
)

const (
	commandUseConstant                     = "runsweep"
	commandShortDescriptionConstant        = "Interactively delete GitHub Actions workflow runs"
	commandLongDescriptionConstant         = "runsweep lists the workflows of the repository in the current directory, lets you pick runs with fzf or an in-terminal form, and deletes them through the GitHub REST API after confirmation."
	defaultGitHubAPIHostConstant           = "api.github.com"
	executorCreationErrorTemplateConstant  = "unable to construct command executor: %w"
	locatorCreationErrorTemplateConstant   = "unable to construct repository locator: %w"
	providerCreationErrorTemplateConstant  = "unable to construct credential provider: %w"
	selectorCreationErrorTemplateConstant  = "unable to construct selector: %w"
	configurationFileLogMessageConstant    = "Starting workflow run cleanup"
	logFieldConfigurationFileConstant      = "config_file"
	logFieldBackendConstant                = "selection_backend"
	logFieldAPIBaseURLConstant             = "api_base_url"
	logFieldRepositoryPathConstant         = "repository_path"
	logFieldRepositoryOverrideConstant     = "repository_override"
	logFieldHumanReadableConstant          = "human_readable_logging"
	logFieldPreferEnvironmentTokenConstant = "prefer_environment_token"
	backendFlagNameConstant                = "backend"
	backendFlagDescriptionConstant         = "Run picker implementation"
	repositoryFlagNameConstant             = "repository"
	repositoryFlagDescriptionConstant      = "Repository as owner/name; skips detection from the working directory"
	backendFlagErrorTemplateConstant       = "invalid --%s value: %w"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandExecutor is the subset of execshell.ShellExecutor used by the cleanup collaborators.
type CommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CommandBuilder assembles the cleanup cobra command. Nil collaborators are
// replaced with production implementations at run time.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() Configuration
	Executor                     CommandExecutor
	FileSystem                   afero.Fs
	Locator                      RepositoryLocator
	Credentials                  CredentialProvider
	APIFactory                   WorkflowAPIFactory
	HTTPClient                   *http.Client
	Selector                     Selector
	LookPath                     selection.ExecutableLookup
	Prompter                     ConfirmationPrompter
	EnvironmentLookup            githubauth.EnvironmentLookup
}

// Build constructs the cobra command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	flags.BindChoiceFlag(
		command.Flags(),
		backendFlagNameConstant,
		string(selection.BackendAuto),
		[]string{string(selection.BackendAuto), string(selection.BackendFuzzyFinder), string(selection.BackendForm)},
		backendFlagDescriptionConstant,
	)
	command.Flags().String(repositoryFlagNameConstant, "", repositoryFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()
	configuration, flagError := applyFlagOverrides(command, builder.resolveConfiguration())
	if flagError != nil {
		return flagError
	}
	humanReadableLogging := builder.humanReadableLoggingEnabled()
	output := utils.NewFlushingWriter(command.OutOrStdout())

	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	logger.Debug(
		configurationFileLogMessageConstant,
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
		zap.String(logFieldBackendConstant, string(configuration.Selection.Backend)),
		zap.String(logFieldAPIBaseURLConstant, configuration.GitHub.APIBaseURL),
		zap.String(logFieldRepositoryPathConstant, configuration.Cleanup.RepositoryPath),
		zap.String(logFieldRepositoryOverrideConstant, configuration.Cleanup.Repository),
		zap.Bool(logFieldPreferEnvironmentTokenConstant, configuration.Auth.PreferEnvironmentToken),
		zap.Bool(logFieldHumanReadableConstant, humanReadableLogging),
	)

	executor, executorError := builder.resolveExecutor(command, logger, humanReadableLogging)
	if executorError != nil {
		return fmt.Errorf(executorCreationErrorTemplateConstant, executorError)
	}

	locator, locatorError := builder.resolveLocator(executor)
	if locatorError != nil {
		return fmt.Errorf(locatorCreationErrorTemplateConstant, locatorError)
	}

	credentials, credentialsError := builder.resolveCredentials(executor, logger, output, configuration)
	if credentialsError != nil {
		return fmt.Errorf(providerCreationErrorTemplateConstant, credentialsError)
	}

	selector, selectorError := builder.resolveSelector(executor, output, configuration)
	if selectorError != nil {
		return fmt.Errorf(selectorCreationErrorTemplateConstant, selectorError)
	}

	service, serviceError := NewService(logger, ServiceDependencies{
		Locator:     locator,
		Credentials: credentials,
		APIFactory:  builder.resolveAPIFactory(logger, configuration),
		Selector:    selector,
		Prompter:    builder.resolvePrompter(command, output),
		Reporter:    ui.NewReporter(output),
	})
	if serviceError != nil {
		return serviceError
	}

	return service.Run(command.Context(), Options{
		Repository:     configuration.Cleanup.Repository,
		RepositoryPath: configuration.Cleanup.RepositoryPath,
	})
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func applyFlagOverrides(command *cobra.Command, configuration Configuration) (Configuration, error) {
	flagSet := command.Flags()

	if flagSet.Changed(backendFlagNameConstant) {
		backendValue, _ := flagSet.GetString(backendFlagNameConstant)
		var backend selection.Backend
		if parseError := backend.UnmarshalText([]byte(backendValue)); parseError != nil {
			return configuration, fmt.Errorf(backendFlagErrorTemplateConstant, backendFlagNameConstant, parseError)
		}
		configuration.Selection.Backend = backend
	}

	if flagSet.Changed(repositoryFlagNameConstant) {
		repositoryValue, _ := flagSet.GetString(repositoryFlagNameConstant)
		configuration.Cleanup.Repository = strings.TrimSpace(repositoryValue)
	}

	return configuration, nil
}

func (builder *CommandBuilder) humanReadableLoggingEnabled() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func (builder *CommandBuilder) resolveExecutor(command *cobra.Command, logger *zap.Logger, humanReadableLogging bool) (CommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	commandRunner := execshell.NewOSCommandRunnerWithTerminal(command.InOrStdin(), command.OutOrStdout(), command.ErrOrStderr())
	var observer execshell.CommandEventObserver
	if humanReadableLogging {
		observer = ui.NewConsoleCommandEventLogger(logger)
	}
	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, commandRunner, observer)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveLocator(executor CommandExecutor) (RepositoryLocator, error) {
	if builder.Locator != nil {
		return builder.Locator, nil
	}
	fileSystem := builder.FileSystem
	if fileSystem == nil {
		fileSystem = afero.NewOsFs()
	}
	locator, creationError := gitrepo.NewRepositoryLocator(fileSystem, executor)
	if creationError != nil {
		return nil, creationError
	}
	return locator, nil
}

func (builder *CommandBuilder) resolveCredentials(executor CommandExecutor, logger *zap.Logger, output io.Writer, configuration Configuration) (CredentialProvider, error) {
	if builder.Credentials != nil {
		return builder.Credentials, nil
	}

	cliClient, clientError := githubcli.NewClientForHost(executor, GitHubHostname(configuration.GitHub.APIBaseURL))
	if clientError != nil {
		return nil, clientError
	}

	environmentLookup := builder.EnvironmentLookup
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}

	provider, providerError := githubauth.NewProvider(cliClient, logger, output, githubauth.ProviderOptions{
		PreferEnvironmentToken: configuration.Auth.PreferEnvironmentToken,
		EnvironmentLookup:      environmentLookup,
	})
	if providerError != nil {
		return nil, providerError
	}
	return provider, nil
}

func (builder *CommandBuilder) resolveAPIFactory(logger *zap.Logger, configuration Configuration) WorkflowAPIFactory {
	if builder.APIFactory != nil {
		return builder.APIFactory
	}
	return func(token string) (WorkflowAPI, error) {
		client, clientError := actions.NewClient(actions.ClientConfiguration{
			BaseURL:    configuration.GitHub.APIBaseURL,
			Token:      token,
			HTTPClient: builder.HTTPClient,
		}, logger)
		if clientError != nil {
			return nil, clientError
		}
		return client, nil
	}
}

func (builder *CommandBuilder) resolveSelector(executor CommandExecutor, output io.Writer, configuration Configuration) (Selector, error) {
	if builder.Selector != nil {
		return builder.Selector, nil
	}
	return selection.NewSelector(configuration.Selection.Backend, selection.SelectorDependencies{
		Executor:           executor,
		FuzzyFinderCommand: configuration.Selection.FuzzyFinder,
		LookPath:           builder.LookPath,
		Output:             output,
	})
}

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command, output io.Writer) ConfirmationPrompter {
	if builder.Prompter != nil {
		return builder.Prompter
	}
	return selection.NewIOConfirmationPrompter(command.InOrStdin(), output)
}

// GitHubHostname returns the host gh should authenticate against. The public
// API host maps to an empty hostname so gh uses its default.
func GitHubHostname(apiBaseURL string) string {
	parsedURL, parseError := url.Parse(strings.TrimSpace(apiBaseURL))
	if parseError != nil || len(parsedURL.Hostname()) == 0 {
		return ""
	}
	hostname := parsedURL.Hostname()
	if strings.EqualFold(hostname, defaultGitHubAPIHostConstant) {
		return ""
	}
	return hostname
}
