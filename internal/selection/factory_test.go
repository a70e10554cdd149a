package selection_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/runsweep/internal/selection"
)

func presentLookup(file string) (string, error) {
	return "/usr/bin/" + file, nil
}

func absentLookup(string) (string, error) {
	return "", errors.New("not found")
}

func TestNewSelector(testInstance *testing.T) {
	testCases := []struct {
		name          string
		backend       selection.Backend
		lookPath      selection.ExecutableLookup
		expectedType  any
		expectedError error
	}{
		{name: "auto_with_fzf", backend: selection.BackendAuto, lookPath: presentLookup, expectedType: &selection.FuzzyFinderSelector{}},
		{name: "auto_without_fzf", backend: selection.BackendAuto, lookPath: absentLookup, expectedType: &selection.FormSelector{}},
		{name: "form", backend: selection.BackendForm, lookPath: presentLookup, expectedType: &selection.FormSelector{}},
		{name: "fzf_present", backend: selection.BackendFuzzyFinder, lookPath: presentLookup, expectedType: &selection.FuzzyFinderSelector{}},
		{name: "fzf_missing", backend: selection.BackendFuzzyFinder, lookPath: absentLookup, expectedError: selection.ErrFuzzyFinderMissing},
		{name: "unknown", backend: selection.Backend("dmenu"), lookPath: presentLookup, expectedError: selection.ErrUnknownBackend},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			selector, creationError := selection.NewSelector(testCase.backend, selection.SelectorDependencies{
				Executor: &recordingCommandExecutor{},
				LookPath: testCase.lookPath,
			})
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, creationError, testCase.expectedError)
				require.Nil(testInstance, selector)
				return
			}
			require.NoError(testInstance, creationError)
			require.IsType(testInstance, testCase.expectedType, selector)
		})
	}
}

func TestBackendUnmarshalText(testInstance *testing.T) {
	var backend selection.Backend
	require.NoError(testInstance, backend.UnmarshalText([]byte(" FZF ")))
	require.Equal(testInstance, selection.BackendFuzzyFinder, backend)

	require.NoError(testInstance, backend.UnmarshalText([]byte("")))
	require.Equal(testInstance, selection.BackendAuto, backend)

	require.ErrorIs(testInstance, backend.UnmarshalText([]byte("dmenu")), selection.ErrUnknownBackend)
}
