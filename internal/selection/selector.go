package selection

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	selectionCancelledMessageConstant = "selection cancelled"
	unknownBackendMessageConstant     = "unknown selection backend"
	unknownBackendTemplateConstant    = "%w %q (expected auto, fzf or form)"
	backendAutoValueConstant          = "auto"
	backendFuzzyFinderValueConstant   = "fzf"
	backendFormValueConstant          = "form"
)

var (
	// ErrSelectionCancelled indicates the user dismissed the picker. It is distinct from an empty selection.
	ErrSelectionCancelled = errors.New(selectionCancelledMessageConstant)
	// ErrUnknownBackend indicates an unsupported selection.backend value.
	ErrUnknownBackend = errors.New(unknownBackendMessageConstant)
)

// Selector lets the user choose any number of labels.
type Selector interface {
	// Select returns the chosen labels in the order of choices.
	Select(executionContext context.Context, choices []string, prompt string) ([]string, error)
}

// Backend names a Selector implementation.
type Backend string

// Supported backends.
const (
	BackendAuto        Backend = Backend(backendAutoValueConstant)
	BackendFuzzyFinder Backend = Backend(backendFuzzyFinderValueConstant)
	BackendForm        Backend = Backend(backendFormValueConstant)
)

// UnmarshalText validates configuration values.
func (backend *Backend) UnmarshalText(text []byte) error {
	normalizedValue := Backend(strings.ToLower(strings.TrimSpace(string(text))))
	switch normalizedValue {
	case "":
		*backend = BackendAuto
	case BackendAuto, BackendFuzzyFinder, BackendForm:
		*backend = normalizedValue
	default:
		return fmt.Errorf(unknownBackendTemplateConstant, ErrUnknownBackend, string(text))
	}
	return nil
}

// orderByChoices keeps the chosen labels that appear in choices, in choice order, without duplicates.
func orderByChoices(choices []string, chosen []string) []string {
	chosenSet := make(map[string]struct{}, len(chosen))
	for _, chosenLabel := range chosen {
		chosenSet[chosenLabel] = struct{}{}
	}

	ordered := make([]string, 0, len(chosen))
	for _, choice := range choices {
		if _, isChosen := chosenSet[choice]; isChosen {
			ordered = append(ordered, choice)
			delete(chosenSet, choice)
		}
	}
	return ordered
}
