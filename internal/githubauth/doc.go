// Package githubauth obtains the bearer token used for GitHub REST calls,
// either from the environment or from the GitHub CLI credential store.
package githubauth
