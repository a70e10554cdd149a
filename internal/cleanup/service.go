package cleanup

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/runsweep/internal/actions"
	"github.com/temirov/runsweep/internal/githubauth"
	"github.com/temirov/runsweep/internal/selection"
	"github.com/temirov/runsweep/internal/ui"
)

const (
	workflowPromptConstant                   = "Select a workflow"
	runPromptConstant                        = "Select workflow runs to delete"
	exitChoiceConstant                       = "Exit"
	deleteAllChoiceConstant                  = "Delete All Runs"
	backChoiceConstant                       = "Back"
	fetchingWorkflowsTemplateConstant        = "Fetching workflows for repository '%s'..."
	fetchingRunsTemplateConstant             = "Fetching runs for workflow '%s'..."
	noWorkflowsMessageConstant               = "No workflows found."
	noRunsMessageConstant                    = "No workflow runs found."
	exitingMessageConstant                   = "Exiting without selecting any workflow."
	returningMessageConstant                 = "Returning to workflow selection."
	noRunsSelectedMessageConstant            = "No runs selected."
	deletionDeclinedMessageConstant          = "No runs deleted."
	deleteAllPromptConstant                  = "Delete all runs? (y/n)"
	deleteSelectedPromptTemplateConstant     = "You have selected %d run(s). Do you want to delete these? (y/n)"
	deletedRunTemplateConstant               = "Deleted workflow run ID %d."
	failedRunTemplateConstant                = "Failed to delete workflow run ID %d."
	fetchWorkflowsFailedTemplateConstant     = "Failed to fetch workflows: %s"
	fetchRunsFailedTemplateConstant          = "Failed to fetch workflow runs: %s"
	selectionFailedTemplateConstant          = "Selection failed: %v"
	confirmationFailedTemplateConstant       = "Confirmation failed: %v"
	unrecognizedSelectionTemplateConstant    = "Skipping unrecognized selection %q."
	deletionStatusDetailTemplateConstant     = "HTTP %d"
	repositoryMessageConstant                = "Could not determine repository. Ensure you're in a GitHub repo directory."
	credentialMessageConstant                = "GitHub token is required. Please login using 'gh auth login' or provide a token."
	githubCLIMissingMessageConstant          = "GitHub CLI ('gh') is not installed. Please install it to authenticate."
	clientMessageConstant                    = "Unable to construct the GitHub API client."
	setupErrorTemplateConstant               = "%s (%v)"
	dependencyMissingTemplateConstant        = "cleanup service requires %s"
	repositoryResolvedLogMessageConstant     = "Resolved repository"
	workflowSelectedLogMessageConstant       = "Selected workflow"
	deletionBatchLogMessageConstant          = "Deleting workflow runs"
	logFieldRepositoryConstant               = "repository"
	logFieldWorkflowIDConstant               = "workflow_id"
	logFieldRunCountConstant                 = "run_count"
	logFieldSourceConstant                   = "source"
	repositorySourceConfigurationConstant    = "configuration"
	repositorySourceGitConfigurationConstant = "git_config"
	locatorDependencyNameConstant            = "a repository locator"
	credentialsDependencyNameConstant        = "a credential provider"
	apiFactoryDependencyNameConstant         = "a workflow API factory"
	selectorDependencyNameConstant           = "a selector"
	prompterDependencyNameConstant           = "a confirmation prompter"
	reporterDependencyNameConstant           = "a reporter"
)

// SetupStage names the startup step that failed.
type SetupStage string

// Startup steps.
const (
	SetupStageRepository SetupStage = "repository"
	SetupStageCredential SetupStage = "credential"
	SetupStageClient     SetupStage = "client"
)

// SetupError is returned when the loop cannot start.
type SetupError struct {
	Stage SetupStage
	Cause error
}

// Error renders the user-facing message followed by the cause.
func (setupError SetupError) Error() string {
	return fmt.Sprintf(setupErrorTemplateConstant, setupError.UserMessage(), setupError.Cause)
}

// Unwrap exposes the underlying failure.
func (setupError SetupError) Unwrap() error {
	return setupError.Cause
}

// UserMessage explains the failure without internal detail.
func (setupError SetupError) UserMessage() string {
	switch setupError.Stage {
	case SetupStageRepository:
		return repositoryMessageConstant
	case SetupStageCredential:
		if errors.Is(setupError.Cause, githubauth.ErrGitHubCLIMissing) {
			return githubCLIMissingMessageConstant
		}
		return credentialMessageConstant
	default:
		return clientMessageConstant
	}
}

// Options selects the repository. A non-empty Repository bypasses the locator.
type Options struct {
	Repository     string
	RepositoryPath string
}

// Service runs the interactive cleanup loop.
type Service struct {
	logger       *zap.Logger
	dependencies ServiceDependencies
}

// NewService validates the collaborators and constructs a Service.
func NewService(logger *zap.Logger, dependencies ServiceDependencies) (*Service, error) {
	missingDependencies := []struct {
		missing bool
		name    string
	}{
		{missing: dependencies.Locator == nil, name: locatorDependencyNameConstant},
		{missing: dependencies.Credentials == nil, name: credentialsDependencyNameConstant},
		{missing: dependencies.APIFactory == nil, name: apiFactoryDependencyNameConstant},
		{missing: dependencies.Selector == nil, name: selectorDependencyNameConstant},
		{missing: dependencies.Prompter == nil, name: prompterDependencyNameConstant},
		{missing: dependencies.Reporter == nil, name: reporterDependencyNameConstant},
	}
	for _, dependency := range missingDependencies {
		if dependency.missing {
			return nil, fmt.Errorf(dependencyMissingTemplateConstant, dependency.name)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, dependencies: dependencies}, nil
}

// Run resolves the repository and credential, then loops until the user exits.
// Only setup failures are returned; API and per-run failures are reported and
// the loop continues.
func (service *Service) Run(executionContext context.Context, options Options) error {
	repository, repositoryError := service.resolveRepository(executionContext, options)
	if repositoryError != nil {
		return SetupError{Stage: SetupStageRepository, Cause: repositoryError}
	}

	token, credentialError := service.dependencies.Credentials.Obtain(executionContext)
	if credentialError != nil {
		return SetupError{Stage: SetupStageCredential, Cause: credentialError}
	}

	workflowAPI, clientError := service.dependencies.APIFactory(token)
	if clientError != nil {
		return SetupError{Stage: SetupStageClient, Cause: clientError}
	}

	activeSession := session{
		service:     service,
		repository:  repository,
		workflowAPI: workflowAPI,
	}
	activeSession.run(executionContext)
	return nil
}

func (service *Service) resolveRepository(executionContext context.Context, options Options) (actions.Repository, error) {
	source := repositorySourceConfigurationConstant
	nameWithOwner := strings.TrimSpace(options.Repository)
	if len(nameWithOwner) == 0 {
		located, locateError := service.dependencies.Locator.Locate(executionContext, options.RepositoryPath)
		if locateError != nil {
			return actions.Repository{}, locateError
		}
		source = repositorySourceGitConfigurationConstant
		nameWithOwner = located
	}

	repository, parseError := actions.ParseRepository(nameWithOwner)
	if parseError != nil {
		return actions.Repository{}, parseError
	}

	service.logger.Debug(repositoryResolvedLogMessageConstant, zap.String(logFieldRepositoryConstant, repository.String()), zap.String(logFieldSourceConstant, source))
	return repository, nil
}

// session holds the state of one Run after setup succeeded.
type session struct {
	service     *Service
	repository  actions.Repository
	workflowAPI WorkflowAPI
}

func (activeSession *session) run(executionContext context.Context) {
	for {
		workflow, selected := activeSession.selectWorkflow(executionContext)
		if !selected {
			return
		}
		activeSession.browseRuns(executionContext, workflow)
	}
}

// selectWorkflow returns false when the loop should end.
func (activeSession *session) selectWorkflow(executionContext context.Context) (actions.Workflow, bool) {
	reporter := activeSession.service.dependencies.Reporter
	reporter.Heading(fmt.Sprintf(fetchingWorkflowsTemplateConstant, activeSession.repository.String()))

	workflows, listError := activeSession.workflowAPI.ListWorkflows(executionContext, activeSession.repository)
	if listError != nil {
		reporter.Failure(fmt.Sprintf(fetchWorkflowsFailedTemplateConstant, describeListFailure(listError)))
	}
	if listError != nil || len(workflows) == 0 {
		reporter.Info(noWorkflowsMessageConstant)
		return actions.Workflow{}, false
	}

	workflowsByLabel := make(map[string]actions.Workflow, len(workflows))
	choices := make([]string, 0, len(workflows)+1)
	for _, workflow := range workflows {
		label := workflow.Label()
		workflowsByLabel[label] = workflow
		choices = append(choices, label)
	}
	choices = append(choices, exitChoiceConstant)

	chosen, selectionError := activeSession.selectLabels(executionContext, choices, workflowPromptConstant)
	if selectionError != nil || len(chosen) == 0 || slices.Contains(chosen, exitChoiceConstant) {
		reporter.Info(exitingMessageConstant)
		return actions.Workflow{}, false
	}

	workflow, known := workflowsByLabel[chosen[0]]
	if !known {
		reporter.Notice(fmt.Sprintf(unrecognizedSelectionTemplateConstant, chosen[0]))
		reporter.Info(exitingMessageConstant)
		return actions.Workflow{}, false
	}

	activeSession.service.logger.Debug(workflowSelectedLogMessageConstant, zap.Int64(logFieldWorkflowIDConstant, workflow.ID))
	return workflow, true
}

// browseRuns loops over run selection for one workflow until the user goes back.
func (activeSession *session) browseRuns(executionContext context.Context, workflow actions.Workflow) {
	reporter := activeSession.service.dependencies.Reporter
	for {
		reporter.Heading(fmt.Sprintf(fetchingRunsTemplateConstant, workflow.Label()))

		// A failed page still returns the runs gathered before it.
		runs, listError := activeSession.workflowAPI.ListRuns(executionContext, activeSession.repository, workflow.ID)
		if listError != nil {
			reporter.Failure(fmt.Sprintf(fetchRunsFailedTemplateConstant, describeListFailure(listError)))
		}
		if len(runs) == 0 {
			reporter.Info(noRunsMessageConstant)
			return
		}

		sortedRuns := actions.SortRunsByName(runs)
		runsByLabel := make(map[string]actions.WorkflowRun, len(sortedRuns))
		choices := make([]string, 0, len(sortedRuns)+2)
		for _, run := range sortedRuns {
			label := run.Label()
			runsByLabel[label] = run
			choices = append(choices, label)
		}
		choices = append(choices, deleteAllChoiceConstant, backChoiceConstant)

		chosen, selectionError := activeSession.selectLabels(executionContext, choices, runPromptConstant)
		if selectionError != nil || slices.Contains(chosen, backChoiceConstant) {
			reporter.Info(returningMessageConstant)
			return
		}

		if slices.Contains(chosen, deleteAllChoiceConstant) {
			activeSession.confirmAndDelete(executionContext, deleteAllPromptConstant, sortedRuns)
			continue
		}

		selectedRuns := activeSession.resolveRuns(chosen, sortedRuns, runsByLabel)
		if len(selectedRuns) == 0 {
			reporter.Info(noRunsSelectedMessageConstant)
			continue
		}

		activeSession.confirmAndDelete(executionContext, fmt.Sprintf(deleteSelectedPromptTemplateConstant, len(selectedRuns)), selectedRuns)
	}
}

// resolveRuns maps chosen labels back to runs, falling back to the numeric ID
// embedded in the label.
func (activeSession *session) resolveRuns(chosen []string, runs []actions.WorkflowRun, runsByLabel map[string]actions.WorkflowRun) []actions.WorkflowRun {
	reporter := activeSession.service.dependencies.Reporter
	selectedRuns := make([]actions.WorkflowRun, 0, len(chosen))
	for _, label := range chosen {
		if run, known := runsByLabel[label]; known {
			selectedRuns = append(selectedRuns, run)
			continue
		}
		if run, found := findRunByLabelIdentifier(label, runs); found {
			selectedRuns = append(selectedRuns, run)
			continue
		}
		reporter.Notice(fmt.Sprintf(unrecognizedSelectionTemplateConstant, label))
	}
	return selectedRuns
}

func (activeSession *session) confirmAndDelete(executionContext context.Context, prompt string, runs []actions.WorkflowRun) {
	reporter := activeSession.service.dependencies.Reporter
	confirmed, confirmationError := activeSession.service.dependencies.Prompter.Confirm(prompt)
	if confirmationError != nil {
		reporter.Failure(fmt.Sprintf(confirmationFailedTemplateConstant, confirmationError))
		return
	}
	if !confirmed {
		reporter.Notice(deletionDeclinedMessageConstant)
		return
	}

	activeSession.service.logger.Info(deletionBatchLogMessageConstant, zap.String(logFieldRepositoryConstant, activeSession.repository.String()), zap.Int(logFieldRunCountConstant, len(runs)))

	outcomes := make([]ui.DeletionOutcome, 0, len(runs))
	for _, run := range runs {
		deleted, deleteError := activeSession.workflowAPI.DeleteRun(executionContext, activeSession.repository, run.ID)
		outcome := ui.DeletionOutcome{RunID: run.ID, Deleted: deleted && deleteError == nil}
		if outcome.Deleted {
			reporter.Success(fmt.Sprintf(deletedRunTemplateConstant, run.ID))
		} else {
			outcome.Detail = describeDeletionFailure(deleteError)
			reporter.Failure(fmt.Sprintf(failedRunTemplateConstant, run.ID))
		}
		outcomes = append(outcomes, outcome)
	}
	reporter.DeletionSummary(outcomes)
}

// selectLabels reports picker failures and folds them into cancellation.
func (activeSession *session) selectLabels(executionContext context.Context, choices []string, prompt string) ([]string, error) {
	chosen, selectionError := activeSession.service.dependencies.Selector.Select(executionContext, choices, prompt)
	if selectionError == nil {
		return chosen, nil
	}
	if !errors.Is(selectionError, selection.ErrSelectionCancelled) {
		activeSession.service.dependencies.Reporter.Failure(fmt.Sprintf(selectionFailedTemplateConstant, selectionError))
	}
	return nil, selection.ErrSelectionCancelled
}

func findRunByLabelIdentifier(label string, runs []actions.WorkflowRun) (actions.WorkflowRun, bool) {
	runID, parseError := actions.ParseLabelIdentifier(label)
	if parseError != nil {
		return actions.WorkflowRun{}, false
	}
	runIndex := slices.IndexFunc(runs, func(run actions.WorkflowRun) bool { return run.ID == runID })
	if runIndex < 0 {
		return actions.WorkflowRun{}, false
	}
	return runs[runIndex], true
}

func describeListFailure(listError error) string {
	var apiError actions.APIError
	if errors.As(listError, &apiError) && len(strings.TrimSpace(apiError.Body)) > 0 {
		return strings.TrimSpace(apiError.Body)
	}
	return listError.Error()
}

func describeDeletionFailure(deleteError error) string {
	if deleteError == nil {
		return ""
	}
	var apiError actions.APIError
	if errors.As(deleteError, &apiError) && apiError.StatusCode > 0 {
		return fmt.Sprintf(deletionStatusDetailTemplateConstant, apiError.StatusCode)
	}
	return deleteError.Error()
}
