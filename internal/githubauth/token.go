package githubauth

import (
	"os"
	"strings"
)

// Environment variable names consulted for a GitHub token, in preference order.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

var tokenPreference = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// EnvironmentLookup matches the signature of os.LookupEnv.
type EnvironmentLookup func(key string) (string, bool)

// ResolveEnvironmentToken returns the first non-blank token and the variable
// that supplied it. A nil lookup reads the process environment.
func ResolveEnvironmentToken(lookup EnvironmentLookup) (string, string, bool) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, variableName := range tokenPreference {
		value, exists := lookup(variableName)
		if !exists {
			continue
		}
		trimmedValue := strings.TrimSpace(value)
		if len(trimmedValue) > 0 {
			return trimmedValue, variableName, true
		}
	}
	return "", "", false
}
