package selection

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/huh"
)

// FormOptions configures the huh form. Zero values use the process terminal.
type FormOptions struct {
	Input      io.Reader
	Output     io.Writer
	Accessible bool
}

// FormSelector renders choices as a huh multi-select.
type FormSelector struct {
	options FormOptions
}

// NewFormSelector constructs a FormSelector.
func NewFormSelector(options FormOptions) *FormSelector {
	return &FormSelector{options: options}
}

// Select runs the form. Aborting it (ctrl+c or esc) returns ErrSelectionCancelled.
func (selector *FormSelector) Select(executionContext context.Context, choices []string, prompt string) ([]string, error) {
	chosenLabels := make([]string, 0)

	multiSelect := huh.NewMultiSelect[string]().
		Title(prompt).
		Options(huh.NewOptions(choices...)...).
		Value(&chosenLabels)

	form := huh.NewForm(huh.NewGroup(multiSelect)).WithAccessible(selector.options.Accessible)
	if selector.options.Input != nil {
		form = form.WithInput(selector.options.Input)
	}
	if selector.options.Output != nil {
		form = form.WithOutput(selector.options.Output)
	}

	if runError := form.RunWithContext(executionContext); runError != nil {
		if errors.Is(runError, huh.ErrUserAborted) {
			return nil, ErrSelectionCancelled
		}
		return nil, runError
	}
	return orderByChoices(choices, chosenLabels), nil
}
