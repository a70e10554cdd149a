package actions

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	repositorySeparatorConstant            = "/"
	workflowLabelTemplateConstant          = "%s (ID: %d)"
	workflowRunLabelTemplateConstant       = "%s - Created: %s - Status: %s (ID: %d)"
	labelIdentifierPrefixConstant          = "(ID: "
	labelIdentifierSuffixConstant          = ")"
	invalidRepositoryMessageConstant       = "repository must be in owner/name form"
	invalidLabelMessageConstant            = "label does not end with a numeric identifier"
	invalidRepositoryErrorTemplateConstant = "%w: %q"
	invalidLabelErrorTemplateConstant      = "%w: %q"
)

var (
	// ErrInvalidRepository indicates an owner/name string could not be split.
	ErrInvalidRepository = errors.New(invalidRepositoryMessageConstant)
	// ErrInvalidLabel indicates a selection label carries no trailing identifier.
	ErrInvalidLabel = errors.New(invalidLabelMessageConstant)
)

// Repository identifies a GitHub repository.
type Repository struct {
	Owner string
	Name  string
}

// String renders owner/name.
func (repository Repository) String() string {
	return repository.Owner + repositorySeparatorConstant + repository.Name
}

// ParseRepository splits an owner/name identifier.
func ParseRepository(nameWithOwner string) (Repository, error) {
	segments := strings.Split(strings.TrimSpace(nameWithOwner), repositorySeparatorConstant)
	if len(segments) != 2 {
		return Repository{}, fmt.Errorf(invalidRepositoryErrorTemplateConstant, ErrInvalidRepository, nameWithOwner)
	}
	owner := strings.TrimSpace(segments[0])
	name := strings.TrimSpace(segments[1])
	if len(owner) == 0 || len(name) == 0 {
		return Repository{}, fmt.Errorf(invalidRepositoryErrorTemplateConstant, ErrInvalidRepository, nameWithOwner)
	}
	return Repository{Owner: owner, Name: name}, nil
}

// Workflow is a workflow definition of a repository.
type Workflow struct {
	ID   int64
	Name string
}

// Label renders "{name} (ID: {id})".
func (workflow Workflow) Label() string {
	return fmt.Sprintf(workflowLabelTemplateConstant, workflow.Name, workflow.ID)
}

// WorkflowRun is one historical execution of a workflow.
type WorkflowRun struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	Status    string
}

// Label renders "{name} - Created: {created_at} - Status: {status} (ID: {id})".
func (run WorkflowRun) Label() string {
	return fmt.Sprintf(workflowRunLabelTemplateConstant, run.Name, run.CreatedAt.UTC().Format(time.RFC3339), run.Status, run.ID)
}

// ParseLabelIdentifier recovers the identifier from the trailing "(ID: n)" of a label.
func ParseLabelIdentifier(label string) (int64, error) {
	trimmedLabel := strings.TrimSpace(label)
	if !strings.HasSuffix(trimmedLabel, labelIdentifierSuffixConstant) {
		return 0, fmt.Errorf(invalidLabelErrorTemplateConstant, ErrInvalidLabel, label)
	}
	prefixIndex := strings.LastIndex(trimmedLabel, labelIdentifierPrefixConstant)
	if prefixIndex == -1 {
		return 0, fmt.Errorf(invalidLabelErrorTemplateConstant, ErrInvalidLabel, label)
	}

	identifierText := trimmedLabel[prefixIndex+len(labelIdentifierPrefixConstant) : len(trimmedLabel)-len(labelIdentifierSuffixConstant)]
	identifier, parseError := strconv.ParseInt(identifierText, 10, 64)
	if parseError != nil {
		return 0, fmt.Errorf(invalidLabelErrorTemplateConstant, ErrInvalidLabel, label)
	}
	return identifier, nil
}

// SortRunsByName returns a copy of runs ordered by case-insensitive name.
// Runs with equal names keep their API order.
func SortRunsByName(runs []WorkflowRun) []WorkflowRun {
	sortedRuns := slices.Clone(runs)
	slices.SortStableFunc(sortedRuns, func(left WorkflowRun, right WorkflowRun) int {
		return strings.Compare(strings.ToLower(left.Name), strings.ToLower(right.Name))
	})
	return sortedRuns
}
