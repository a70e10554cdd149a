package actions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v68/github"
	"go.uber.org/zap"
)

const (
	pageSizeConstant                   = 100
	firstPageNumberConstant            = 1
	baseURLTrailingSlashConstant       = "/"
	apiErrorTemplateConstant           = "%s failed with status %d: %s"
	apiErrorTransportTemplateConstant  = "%s failed: %v"
	invalidBaseURLTemplateConstant     = "invalid github api base url %q: %w"
	tokenRequiredMessageConstant       = "github token required"
	listWorkflowsOperationNameConstant = OperationName("ListWorkflows")
	listRunsOperationNameConstant      = OperationName("ListRuns")
	deleteRunOperationNameConstant     = OperationName("DeleteRun")
	apiFailureLogMessageConstant       = "GitHub API request failed"
	runsPageLogMessageConstant         = "Fetched workflow runs page"
	logFieldOperationConstant          = "operation"
	logFieldRepositoryConstant         = "repository"
	logFieldStatusCodeConstant         = "status_code"
	logFieldBodyConstant               = "body"
	logFieldPageConstant               = "page"
	logFieldCountConstant              = "count"
)

// OperationName names a REST call in errors and logs.
type OperationName string

// ErrTokenRequired indicates the client was configured without a token.
var ErrTokenRequired = errors.New(tokenRequiredMessageConstant)

// APIError describes a REST call that did not return the expected status.
// StatusCode is zero when no response was received.
type APIError struct {
	Operation  OperationName
	StatusCode int
	Body       string
	Cause      error
}

// Error describes the failure.
func (apiError APIError) Error() string {
	if apiError.StatusCode == 0 {
		return fmt.Sprintf(apiErrorTransportTemplateConstant, apiError.Operation, apiError.Cause)
	}
	return fmt.Sprintf(apiErrorTemplateConstant, apiError.Operation, apiError.StatusCode, strings.TrimSpace(apiError.Body))
}

// Unwrap exposes the transport or go-github error.
func (apiError APIError) Unwrap() error {
	return apiError.Cause
}

// ClientConfiguration holds everything needed to reach the API.
type ClientConfiguration struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// Client issues workflow and run requests for a single token.
type Client struct {
	githubClient *gh.Client
	logger       *zap.Logger
}

// NewClient constructs a Client. An empty BaseURL targets api.github.com.
func NewClient(configuration ClientConfiguration, logger *zap.Logger) (*Client, error) {
	if len(strings.TrimSpace(configuration.Token)) == 0 {
		return nil, ErrTokenRequired
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	githubClient := gh.NewClient(configuration.HTTPClient).WithAuthToken(configuration.Token)

	trimmedBaseURL := strings.TrimSpace(configuration.BaseURL)
	if len(trimmedBaseURL) > 0 {
		if !strings.HasSuffix(trimmedBaseURL, baseURLTrailingSlashConstant) {
			trimmedBaseURL += baseURLTrailingSlashConstant
		}
		parsedBaseURL, parseError := url.Parse(trimmedBaseURL)
		if parseError != nil {
			return nil, fmt.Errorf(invalidBaseURLTemplateConstant, configuration.BaseURL, parseError)
		}
		githubClient.BaseURL = parsedBaseURL
	}

	return &Client{githubClient: githubClient, logger: logger}, nil
}

// ListWorkflows fetches the first page of up to 100 workflows. On failure the
// returned slice is empty and the error is an APIError.
func (client *Client) ListWorkflows(executionContext context.Context, repository Repository) ([]Workflow, error) {
	workflowList, response, requestError := client.githubClient.Actions.ListWorkflows(executionContext, repository.Owner, repository.Name, &gh.ListOptions{PerPage: pageSizeConstant})
	if requestError != nil {
		return []Workflow{}, client.reportFailure(listWorkflowsOperationNameConstant, repository, response, requestError)
	}

	workflows := make([]Workflow, 0, len(workflowList.Workflows))
	for _, workflowEntry := range workflowList.Workflows {
		workflows = append(workflows, Workflow{ID: workflowEntry.GetID(), Name: workflowEntry.GetName()})
	}
	return workflows, nil
}

// ListRuns walks pages 1..n until a page comes back empty. A failing page ends
// the walk and the runs gathered so far are returned with an APIError.
func (client *Client) ListRuns(executionContext context.Context, repository Repository, workflowID int64) ([]WorkflowRun, error) {
	runs := []WorkflowRun{}
	for pageNumber := firstPageNumberConstant; ; pageNumber++ {
		listOptions := &gh.ListWorkflowRunsOptions{ListOptions: gh.ListOptions{Page: pageNumber, PerPage: pageSizeConstant}}
		runList, response, requestError := client.githubClient.Actions.ListWorkflowRunsByID(executionContext, repository.Owner, repository.Name, workflowID, listOptions)
		if requestError != nil {
			return runs, client.reportFailure(listRunsOperationNameConstant, repository, response, requestError)
		}

		client.logger.Debug(runsPageLogMessageConstant, zap.Int(logFieldPageConstant, pageNumber), zap.Int(logFieldCountConstant, len(runList.WorkflowRuns)))
		if len(runList.WorkflowRuns) == 0 {
			return runs, nil
		}
		for _, runEntry := range runList.WorkflowRuns {
			runs = append(runs, WorkflowRun{
				ID:        runEntry.GetID(),
				Name:      runEntry.GetName(),
				CreatedAt: runEntry.GetCreatedAt().Time,
				Status:    runEntry.GetStatus(),
			})
		}
	}
}

// DeleteRun deletes one run. Only HTTP 204 counts as success.
func (client *Client) DeleteRun(executionContext context.Context, repository Repository, runID int64) (bool, error) {
	response, requestError := client.githubClient.Actions.DeleteWorkflowRun(executionContext, repository.Owner, repository.Name, runID)
	if requestError != nil {
		return false, client.reportFailure(deleteRunOperationNameConstant, repository, response, requestError)
	}
	if response == nil || response.StatusCode != http.StatusNoContent {
		return false, client.reportFailure(deleteRunOperationNameConstant, repository, response, nil)
	}
	return true, nil
}

func (client *Client) reportFailure(operation OperationName, repository Repository, response *gh.Response, cause error) error {
	apiError := APIError{Operation: operation, Cause: cause}
	if response != nil && response.Response != nil {
		apiError.StatusCode = response.StatusCode
		apiError.Body = readResponseBody(response.Response)
	}
	if len(apiError.Body) == 0 && cause != nil {
		apiError.Body = cause.Error()
	}

	client.logger.Warn(
		apiFailureLogMessageConstant,
		zap.String(logFieldOperationConstant, string(operation)),
		zap.String(logFieldRepositoryConstant, repository.String()),
		zap.Int(logFieldStatusCodeConstant, apiError.StatusCode),
		zap.String(logFieldBodyConstant, apiError.Body),
	)
	return apiError
}

// readResponseBody relies on go-github restoring the body of error responses.
func readResponseBody(httpResponse *http.Response) string {
	if httpResponse.Body == nil {
		return ""
	}
	bodyBytes, readError := io.ReadAll(httpResponse.Body)
	if readError != nil {
		return ""
	}
	return string(bodyBytes)
}
