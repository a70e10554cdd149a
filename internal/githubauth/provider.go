package githubauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"go.uber.org/zap"
)

const (
	githubCLIMissingMessageConstant       = "github cli (gh) is not installed"
	notAuthenticatedMessageConstant       = "github cli is not authenticated"
	tokenUnavailableMessageConstant       = "github token unavailable"
	cliClientNotConfiguredMessageConstant = "github cli client not configured"
	credentialErrorTemplateConstant       = "%w: %w"
	loginNoticeMessageConstant            = "You are not authenticated with GitHub CLI. Initiating login process...\n"
	environmentTokenLogMessageConstant    = "Using GitHub token from environment"
	cliTokenLogMessageConstant            = "Using GitHub token from GitHub CLI"
	logFieldVariableConstant              = "variable"
)

var (
	// ErrGitHubCLIMissing indicates gh is not installed or not on PATH.
	ErrGitHubCLIMissing = errors.New(githubCLIMissingMessageConstant)
	// ErrNotAuthenticated indicates gh reported no login even after the login flow.
	ErrNotAuthenticated = errors.New(notAuthenticatedMessageConstant)
	// ErrTokenUnavailable indicates gh could not print a token.
	ErrTokenUnavailable = errors.New(tokenUnavailableMessageConstant)
	// ErrCLIClientNotConfigured indicates the provider was constructed without a GitHub CLI client.
	ErrCLIClientNotConfigured = errors.New(cliClientNotConfiguredMessageConstant)
)

// CLIClient is the subset of githubcli.Client used to obtain credentials.
type CLIClient interface {
	AuthStatus(executionContext context.Context) (bool, error)
	Login(executionContext context.Context) error
	Token(executionContext context.Context) (string, error)
}

// ProviderOptions tunes credential resolution.
type ProviderOptions struct {
	PreferEnvironmentToken bool
	EnvironmentLookup      EnvironmentLookup
}

// Provider resolves a GitHub token once per invocation.
type Provider struct {
	cliClient CLIClient
	logger    *zap.Logger
	output    io.Writer
	options   ProviderOptions
}

// NewProvider constructs a Provider. Login notices are written to output.
func NewProvider(cliClient CLIClient, logger *zap.Logger, output io.Writer, options ProviderOptions) (*Provider, error) {
	if cliClient == nil {
		return nil, ErrCLIClientNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if output == nil {
		output = io.Discard
	}
	return &Provider{cliClient: cliClient, logger: logger, output: output, options: options}, nil
}

// Obtain returns a non-empty token or an error wrapping one of
// ErrGitHubCLIMissing, ErrNotAuthenticated or ErrTokenUnavailable.
func (provider *Provider) Obtain(executionContext context.Context) (string, error) {
	if provider.options.PreferEnvironmentToken {
		if token, variableName, found := ResolveEnvironmentToken(provider.options.EnvironmentLookup); found {
			provider.logger.Debug(environmentTokenLogMessageConstant, zap.String(logFieldVariableConstant, variableName))
			return token, nil
		}
	}

	authenticated, statusError := provider.cliClient.AuthStatus(executionContext)
	if statusError != nil {
		return "", classifyFailure(ErrNotAuthenticated, statusError)
	}

	if !authenticated {
		fmt.Fprint(provider.output, loginNoticeMessageConstant)
		if loginError := provider.cliClient.Login(executionContext); loginError != nil {
			return "", classifyFailure(ErrNotAuthenticated, loginError)
		}
		authenticated, statusError = provider.cliClient.AuthStatus(executionContext)
		if statusError != nil {
			return "", classifyFailure(ErrNotAuthenticated, statusError)
		}
		if !authenticated {
			return "", ErrNotAuthenticated
		}
	}

	token, tokenError := provider.cliClient.Token(executionContext)
	if tokenError != nil {
		return "", classifyFailure(ErrTokenUnavailable, tokenError)
	}
	if len(token) == 0 {
		return "", ErrTokenUnavailable
	}

	provider.logger.Debug(cliTokenLogMessageConstant)
	return token, nil
}

func classifyFailure(sentinel error, cause error) error {
	if errors.Is(cause, exec.ErrNotFound) {
		sentinel = ErrGitHubCLIMissing
	}
	return fmt.Errorf(credentialErrorTemplateConstant, sentinel, cause)
}
