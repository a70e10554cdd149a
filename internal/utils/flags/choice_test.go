package flags_test

import (
	"fmt"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/temirov/runsweep/internal/utils/flags"
)

const (
	testChoiceSubtestTemplateConstant = "%d_%s"
	testBackendFlagNameConstant       = "backend"
	testBackendDescriptionConstant    = "Picker used to choose workflows and runs."
	testFlagSetNameConstant           = "runsweep"
)

func TestFormatChoiceUsage(testInstance *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "default_first_choice",
			defaultChoice:  "auto",
			choices:        []string{"auto", "fzf", "form"},
			description:    testBackendDescriptionConstant,
			expectedOutput: "`<AUTO|fzf|form>` " + testBackendDescriptionConstant,
		},
		{
			name:           "default_last_choice",
			defaultChoice:  "console",
			choices:        []string{"structured", "console"},
			description:    "Log encoding.",
			expectedOutput: "`<structured|CONSOLE>` Log encoding.",
		},
		{
			name:           "empty_description",
			defaultChoice:  "error",
			choices:        []string{"debug", "info", "warn", "error"},
			expectedOutput: "`<debug|info|warn|ERROR>`",
		},
		{
			name:           "duplicates_and_blanks_ignored",
			defaultChoice:  "fzf",
			choices:        []string{" fzf ", "FZF", "", "form"},
			description:    "Pick one.",
			expectedOutput: "`<FZF|form>` Pick one.",
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testChoiceSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedOutput, flags.FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description))
		})
	}
}

func TestBindChoiceFlag(testInstance *testing.T) {
	flagSet := pflag.NewFlagSet(testFlagSetNameConstant, pflag.ContinueOnError)
	value := flags.BindChoiceFlag(flagSet, testBackendFlagNameConstant, "auto", []string{"auto", "fzf", "form"}, testBackendDescriptionConstant)

	require.Empty(testInstance, *value)
	registeredFlag := flagSet.Lookup(testBackendFlagNameConstant)
	require.NotNil(testInstance, registeredFlag)

	placeholder, usage := pflag.UnquoteUsage(registeredFlag)
	require.Equal(testInstance, "<AUTO|fzf|form>", placeholder)
	require.Equal(testInstance, "<AUTO|fzf|form> "+testBackendDescriptionConstant, usage)

	require.NoError(testInstance, flagSet.Parse([]string{"--backend", "form"}))
	require.Equal(testInstance, "form", *value)
	require.True(testInstance, flagSet.Changed(testBackendFlagNameConstant))
}
