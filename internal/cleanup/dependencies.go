package cleanup

import (
	"context"

	"github.com/temirov/runsweep/internal/actions"
	"github.com/temirov/runsweep/internal/ui"
)

// RepositoryLocator derives owner/name from a working directory.
type RepositoryLocator interface {
	Locate(executionContext context.Context, workingDirectory string) (string, error)
}

// CredentialProvider yields the bearer token for the REST API.
type CredentialProvider interface {
	Obtain(executionContext context.Context) (string, error)
}

// WorkflowAPI exposes the GitHub Actions operations used by the cleanup loop.
type WorkflowAPI interface {
	ListWorkflows(executionContext context.Context, repository actions.Repository) ([]actions.Workflow, error)
	ListRuns(executionContext context.Context, repository actions.Repository, workflowID int64) ([]actions.WorkflowRun, error)
	DeleteRun(executionContext context.Context, repository actions.Repository, runID int64) (bool, error)
}

// WorkflowAPIFactory builds a WorkflowAPI once the token is known.
type WorkflowAPIFactory func(token string) (WorkflowAPI, error)

// Selector lets the user pick labels.
type Selector interface {
	Select(executionContext context.Context, choices []string, prompt string) ([]string, error)
}

// ConfirmationPrompter asks a yes/no question.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}

// Reporter prints dialogue lines and deletion summaries.
type Reporter interface {
	Heading(message string)
	Info(message string)
	Notice(message string)
	Success(message string)
	Failure(message string)
	DeletionSummary(outcomes []ui.DeletionOutcome)
}

// ServiceDependencies carries the collaborators of Service.
type ServiceDependencies struct {
	Locator     RepositoryLocator
	Credentials CredentialProvider
	APIFactory  WorkflowAPIFactory
	Selector    Selector
	Prompter    ConfirmationPrompter
	Reporter    Reporter
}
