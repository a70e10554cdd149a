package pathutils_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/runsweep/internal/utils/path"
)

const (
	testHomeDirectoryConstant           = "/home/maintainer"
	testExpanderSubtestTemplateConstant = "%d_%q"
	testHomeLookupFailureConstant       = "no home"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		candidatePath string
		expectedPath  string
	}{
		{candidatePath: "~", expectedPath: testHomeDirectoryConstant},
		{candidatePath: "~/.config/runsweep", expectedPath: filepath.Join(testHomeDirectoryConstant, ".config", "runsweep")},
		{candidatePath: "~maintainer/src", expectedPath: "~maintainer/src"},
		{candidatePath: "/srv/widgets", expectedPath: "/srv/widgets"},
		{candidatePath: ".", expectedPath: "."},
		{candidatePath: "", expectedPath: ""},
	}

	lookupCount := 0
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		lookupCount++
		return testHomeDirectoryConstant, nil
	})

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testExpanderSubtestTemplateConstant, testCaseIndex, testCase.candidatePath), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.candidatePath))
		})
	}
	require.Equal(testInstance, 1, lookupCount)
}

func TestHomeExpanderLookupFailure(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New(testHomeLookupFailureConstant)
	})
	require.Equal(testInstance, "~/src", expander.Expand("~/src"))
}
