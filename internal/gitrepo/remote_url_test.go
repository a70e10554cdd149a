package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/runsweep/internal/gitrepo"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name           string
		remote         string
		expectedRemote gitrepo.RemoteURL
		expectError    bool
	}{
		{
			name:           "scp_like_ssh",
			remote:         "git@github.com:acme/widgets.git",
			expectedRemote: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "github.com", Owner: "acme", Repository: "widgets"},
		},
		{
			name:           "ssh_scheme",
			remote:         "ssh://git@github.com/acme/widgets.git",
			expectedRemote: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "github.com", Owner: "acme", Repository: "widgets"},
		},
		{
			name:           "https",
			remote:         "https://github.com/acme/widgets",
			expectedRemote: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "github.com", Owner: "acme", Repository: "widgets"},
		},
		{name: "empty", remote: "   ", expectError: true},
		{name: "missing_repository", remote: "https://github.com/acme", expectError: true},
		{name: "nested_path", remote: "git@github.com:acme/group/widgets.git", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedRemote, parseError := gitrepo.ParseRemoteURL(testCase.remote)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				require.IsType(testInstance, gitrepo.RemoteURLParseError{}, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedRemote, parsedRemote)
			require.Equal(testInstance, "acme/widgets", parsedRemote.NameWithOwner())
		})
	}
}
