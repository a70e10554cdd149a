package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/runsweep/internal/cleanup"
	"github.com/temirov/runsweep/internal/selection"
)

const (
	testSubtestNameTemplateConstant        = "%d_%s"
	testConfigurationFileNameConstant      = "config.yaml"
	testRepositoryConstant                 = "octo/widgets"
	testCredentialFailureMessageConstant   = "credential lookup refused"
	testBackendEnvironmentVariableConstant = "RUNSWEEP_SELECTION_BACKEND"
	testConfigurationContentConstant       = "common:\n  log_level: debug\n  log_format: structured\nselection:\n  backend: form\ncleanup:\n  repository: octo/widgets\n"
	testCaseConfigurationFileConstant      = "configuration file values are applied"
	testCaseFlagOverridesConstant          = "persistent flags override the file"
	testCaseInvalidFormatConstant          = "unknown log format is rejected"
	testCaseInvalidLevelConstant           = "unknown log level is rejected"
	testCaseInvalidBackendConstant         = "unknown backend from environment is rejected"
	testUnsupportedLogFormatConstant       = "unsupported log format"
	testUnsupportedLogLevelConstant        = "unsupported log level"
	testUnknownBackendConstant             = "unknown selection backend"
)

var errCredentialLookupRefused = errors.New(testCredentialFailureMessageConstant)

type refusingCredentialProvider struct {
	calls int
}

func (provider *refusingCredentialProvider) Obtain(context.Context) (string, error) {
	provider.calls++
	return "", errCredentialLookupRefused
}

func writeConfigurationFile(testInstance *testing.T) string {
	testInstance.Helper()
	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testConfigurationContentConstant), 0o600))
	return configurationPath
}

func TestApplicationConfigurationLayers(testInstance *testing.T) {
	testCases := []struct {
		name                   string
		extraArguments         []string
		environment            map[string]string
		expectedErrorContains  string
		expectedLogLevel       string
		expectedLogFormat      string
		expectedCredentialCall int
	}{
		{
			name:                   testCaseConfigurationFileConstant,
			expectedLogLevel:       "debug",
			expectedLogFormat:      "structured",
			expectedCredentialCall: 1,
		},
		{
			name:                   testCaseFlagOverridesConstant,
			extraArguments:         []string{"--log-level", "WARN", "--log-format", "console"},
			expectedLogLevel:       "WARN",
			expectedLogFormat:      "console",
			expectedCredentialCall: 1,
		},
		{
			name:                  testCaseInvalidFormatConstant,
			extraArguments:        []string{"--log-format", "xml"},
			expectedErrorContains: testUnsupportedLogFormatConstant,
		},
		{
			name:                  testCaseInvalidLevelConstant,
			extraArguments:        []string{"--log-level", "verbose"},
			expectedErrorContains: testUnsupportedLogLevelConstant,
		},
		{
			name:                  testCaseInvalidBackendConstant,
			environment:           map[string]string{testBackendEnvironmentVariableConstant: "mouse"},
			expectedErrorContains: testUnknownBackendConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			for environmentName, environmentValue := range testCase.environment {
				testInstance.Setenv(environmentName, environmentValue)
			}

			credentials := &refusingCredentialProvider{}
			application := newApplicationWithBuilder(cleanup.CommandBuilder{Credentials: credentials})
			application.rootCommand.SetOut(&bytes.Buffer{})
			application.rootCommand.SetErr(&bytes.Buffer{})
			application.rootCommand.SetIn(&bytes.Buffer{})

			configurationPath := writeConfigurationFile(testInstance)
			application.rootCommand.SetArgs(append([]string{"--config", configurationPath}, testCase.extraArguments...))

			executionError := application.Execute()
			require.Equal(testInstance, testCase.expectedCredentialCall, credentials.calls)

			if len(testCase.expectedErrorContains) > 0 {
				require.ErrorContains(testInstance, executionError, testCase.expectedErrorContains)
				return
			}

			require.ErrorIs(testInstance, executionError, errCredentialLookupRefused)
			var setupError cleanup.SetupError
			require.ErrorAs(testInstance, executionError, &setupError)
			require.Equal(testInstance, cleanup.SetupStageCredential, setupError.Stage)

			require.Equal(testInstance, testCase.expectedLogLevel, application.configuration.Common.LogLevel)
			require.Equal(testInstance, testCase.expectedLogFormat, application.configuration.Common.LogFormat)
			require.Equal(testInstance, configurationPath, application.configurationMetadata.ConfigFileUsed)
			require.Equal(testInstance, selection.BackendForm, application.configuration.Cleanup.Selection.Backend)
			require.Equal(testInstance, testRepositoryConstant, application.configuration.Cleanup.Cleanup.Repository)
			require.Equal(testInstance, cleanup.DefaultConfiguration().GitHub, application.configuration.Cleanup.GitHub)
			require.True(testInstance, application.configuration.Cleanup.Auth.PreferEnvironmentToken)

			recordedPath, recorded := application.commandContextAccessor.ConfigurationFilePath(application.rootCommand.Context())
			require.True(testInstance, recorded)
			require.Equal(testInstance, configurationPath, recordedPath)
		})
	}
}

func TestApplicationHumanReadableLogging(testInstance *testing.T) {
	application := &Application{}
	application.configuration.Common.LogFormat = " Console "
	require.True(testInstance, application.humanReadableLoggingEnabled())

	application.configuration.Common.LogFormat = "structured"
	require.False(testInstance, application.humanReadableLoggingEnabled())
}
