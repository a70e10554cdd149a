package githubcli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/runsweep/internal/execshell"
)

const (
	authSubcommandConstant                  = "auth"
	statusSubcommandConstant                = "status"
	loginSubcommandConstant                 = "login"
	tokenSubcommandConstant                 = "token"
	hostnameFlagConstant                    = "--hostname"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	emptyTokenMessageConstant               = "github cli returned an empty token"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	authStatusOperationNameConstant         = OperationName("AuthStatus")
	authLoginOperationNameConstant          = OperationName("AuthLogin")
	authTokenOperationNameConstant          = OperationName("AuthToken")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrEmptyToken indicates gh auth token succeeded without printing a token.
	ErrEmptyToken = errors.New(emptyTokenMessageConstant)
)

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
	hostname string
}

// NewClient constructs a GitHub CLI client for the default host.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	return NewClientForHost(executor, "")
}

// NewClientForHost constructs a client whose auth commands target the given
// hostname. An empty hostname leaves host selection to gh.
func NewClientForHost(executor GitHubCommandExecutor, hostname string) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor, hostname: strings.TrimSpace(hostname)}, nil
}

// AuthStatus reports whether gh holds a valid login. A non-zero exit code is
// reported as unauthenticated rather than as an error.
func (client *Client) AuthStatus(executionContext context.Context) (bool, error) {
	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, execshell.CommandDetails{
		Arguments: client.authArguments(statusSubcommandConstant),
	})
	if executionError == nil {
		return true, nil
	}

	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) {
		return false, nil
	}
	return false, OperationError{Operation: authStatusOperationNameConstant, Cause: executionError}
}

// Login runs the interactive gh auth login flow attached to the terminal. It
// blocks until the user finishes or aborts.
func (client *Client) Login(executionContext context.Context) error {
	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, execshell.CommandDetails{
		Arguments:      client.authArguments(loginSubcommandConstant),
		AttachTerminal: true,
	})
	if executionError != nil {
		return OperationError{Operation: authLoginOperationNameConstant, Cause: executionError}
	}
	return nil
}

// Token prints the stored token through gh auth token.
func (client *Client) Token(executionContext context.Context) (string, error) {
	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, execshell.CommandDetails{
		Arguments: client.authArguments(tokenSubcommandConstant),
	})
	if executionError != nil {
		return "", OperationError{Operation: authTokenOperationNameConstant, Cause: executionError}
	}

	token := strings.TrimSpace(executionResult.StandardOutput)
	if len(token) == 0 {
		return "", OperationError{Operation: authTokenOperationNameConstant, Cause: ErrEmptyToken}
	}
	return token, nil
}

func (client *Client) authArguments(subcommand string) []string {
	arguments := []string{authSubcommandConstant, subcommand}
	if len(client.hostname) > 0 {
		arguments = append(arguments, hostnameFlagConstant, client.hostname)
	}
	return arguments
}
