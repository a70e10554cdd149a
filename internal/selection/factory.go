package selection

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
)

const (
	fuzzyFinderMissingMessageConstant  = "fuzzy finder not found on PATH"
	fuzzyFinderMissingTemplateConstant = "%w: %s"
)

// ErrFuzzyFinderMissing indicates the fzf backend was requested explicitly but the binary is absent.
var ErrFuzzyFinderMissing = errors.New(fuzzyFinderMissingMessageConstant)

// ExecutableLookup matches the signature of exec.LookPath.
type ExecutableLookup func(file string) (string, error)

// SelectorDependencies carries what each backend needs.
type SelectorDependencies struct {
	Executor           CommandExecutor
	FuzzyFinderCommand string
	LookPath           ExecutableLookup
	Output             io.Writer
	Form               FormOptions
}

// NewSelector resolves a backend. BackendAuto prefers fzf and falls back to the form.
func NewSelector(backend Backend, dependencies SelectorDependencies) (Selector, error) {
	lookPath := dependencies.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	fuzzyFinderCommand := dependencies.FuzzyFinderCommand
	if len(fuzzyFinderCommand) == 0 {
		fuzzyFinderCommand = backendFuzzyFinderValueConstant
	}

	switch backend {
	case BackendForm:
		return NewFormSelector(dependencies.Form), nil
	case BackendFuzzyFinder:
		if _, lookupError := lookPath(fuzzyFinderCommand); lookupError != nil {
			return nil, fmt.Errorf(fuzzyFinderMissingTemplateConstant, ErrFuzzyFinderMissing, fuzzyFinderCommand)
		}
		return newFuzzyFinderBackend(dependencies, fuzzyFinderCommand)
	case BackendAuto, "":
		if _, lookupError := lookPath(fuzzyFinderCommand); lookupError != nil {
			return NewFormSelector(dependencies.Form), nil
		}
		return newFuzzyFinderBackend(dependencies, fuzzyFinderCommand)
	default:
		return nil, fmt.Errorf(unknownBackendTemplateConstant, ErrUnknownBackend, string(backend))
	}
}

func newFuzzyFinderBackend(dependencies SelectorDependencies, fuzzyFinderCommand string) (Selector, error) {
	fuzzyFinderSelector, creationError := NewFuzzyFinderSelector(dependencies.Executor, fuzzyFinderCommand, dependencies.Output)
	if creationError != nil {
		return nil, creationError
	}
	return fuzzyFinderSelector, nil
}
