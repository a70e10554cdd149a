package cleanup

import (
	"strings"

	"github.com/temirov/runsweep/internal/selection"
	pathutils "github.com/temirov/runsweep/internal/utils/path"
)

const (
	githubConfigurationKeyConstant                 = "github"
	authConfigurationKeyConstant                   = "auth"
	selectionConfigurationKeyConstant              = "selection"
	cleanupConfigurationKeyConstant                = "cleanup"
	apiBaseURLConfigurationKeyConstant             = githubConfigurationKeyConstant + ".api_base_url"
	preferEnvironmentTokenConfigurationKeyConstant = authConfigurationKeyConstant + ".prefer_environment_token"
	backendConfigurationKeyConstant                = selectionConfigurationKeyConstant + ".backend"
	fuzzyFinderConfigurationKeyConstant            = selectionConfigurationKeyConstant + ".fuzzy_finder"
	repositoryConfigurationKeyConstant             = cleanupConfigurationKeyConstant + ".repository"
	repositoryPathConfigurationKeyConstant         = cleanupConfigurationKeyConstant + ".repository_path"
	defaultAPIBaseURLConstant                      = "https://api.github.com/"
	defaultFuzzyFinderCommandConstant              = "fzf"
	defaultRepositoryPathConstant                  = "."
)

var repositoryPathHomeExpander = pathutils.NewHomeExpander()

// Configuration groups the sections read by the cleanup command.
type Configuration struct {
	GitHub    GitHubConfiguration    `mapstructure:"github"`
	Auth      AuthConfiguration      `mapstructure:"auth"`
	Selection SelectionConfiguration `mapstructure:"selection"`
	Cleanup   CommandConfiguration   `mapstructure:"cleanup"`
}

// GitHubConfiguration describes the REST endpoint.
type GitHubConfiguration struct {
	APIBaseURL string `mapstructure:"api_base_url"`
}

// AuthConfiguration controls how the token is obtained.
type AuthConfiguration struct {
	PreferEnvironmentToken bool `mapstructure:"prefer_environment_token"`
}

// SelectionConfiguration picks the picker backend.
type SelectionConfiguration struct {
	Backend     selection.Backend `mapstructure:"backend"`
	FuzzyFinder string            `mapstructure:"fuzzy_finder"`
}

// CommandConfiguration locates the repository whose runs are cleaned up.
type CommandConfiguration struct {
	Repository     string `mapstructure:"repository"`
	RepositoryPath string `mapstructure:"repository_path"`
}

// DefaultConfiguration returns the baseline settings.
func DefaultConfiguration() Configuration {
	return Configuration{
		GitHub:    GitHubConfiguration{APIBaseURL: defaultAPIBaseURLConstant},
		Auth:      AuthConfiguration{PreferEnvironmentToken: true},
		Selection: SelectionConfiguration{Backend: selection.BackendAuto, FuzzyFinder: defaultFuzzyFinderCommandConstant},
		Cleanup:   CommandConfiguration{Repository: "", RepositoryPath: defaultRepositoryPathConstant},
	}
}

// DefaultConfigurationValues exposes the defaults keyed for the configuration loader.
func DefaultConfigurationValues() map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		apiBaseURLConfigurationKeyConstant:             defaults.GitHub.APIBaseURL,
		preferEnvironmentTokenConfigurationKeyConstant: defaults.Auth.PreferEnvironmentToken,
		backendConfigurationKeyConstant:                string(defaults.Selection.Backend),
		fuzzyFinderConfigurationKeyConstant:            defaults.Selection.FuzzyFinder,
		repositoryConfigurationKeyConstant:             defaults.Cleanup.Repository,
		repositoryPathConfigurationKeyConstant:         defaults.Cleanup.RepositoryPath,
	}
}

// Sanitize trims values and restores defaults for blank entries.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := configuration

	sanitized.GitHub.APIBaseURL = strings.TrimSpace(configuration.GitHub.APIBaseURL)
	if len(sanitized.GitHub.APIBaseURL) == 0 {
		sanitized.GitHub.APIBaseURL = defaults.GitHub.APIBaseURL
	}

	if len(sanitized.Selection.Backend) == 0 {
		sanitized.Selection.Backend = defaults.Selection.Backend
	}
	sanitized.Selection.FuzzyFinder = strings.TrimSpace(configuration.Selection.FuzzyFinder)
	if len(sanitized.Selection.FuzzyFinder) == 0 {
		sanitized.Selection.FuzzyFinder = defaults.Selection.FuzzyFinder
	}

	sanitized.Cleanup.Repository = strings.TrimSpace(configuration.Cleanup.Repository)
	sanitized.Cleanup.RepositoryPath = repositoryPathHomeExpander.Expand(strings.TrimSpace(configuration.Cleanup.RepositoryPath))
	if len(sanitized.Cleanup.RepositoryPath) == 0 {
		sanitized.Cleanup.RepositoryPath = defaults.Cleanup.RepositoryPath
	}

	return sanitized
}
