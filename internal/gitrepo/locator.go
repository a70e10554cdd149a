package gitrepo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/temirov/runsweep/internal/execshell"
)

const (
	gitDirectoryNameConstant                  = ".git"
	gitConfigFileNameConstant                 = "config"
	gitCommonDirectoryFileNameConstant        = "commondir"
	gitDirectoryPointerPrefixConstant         = "gitdir:"
	remoteURLLinePrefixConstant               = "url = "
	githubHostPathMarkerConstant              = "github.com/"
	gitRevParseSubcommandConstant             = "rev-parse"
	gitCommonDirectoryArgumentConstant        = "--git-common-dir"
	repositoryNotFoundMessageConstant         = "github repository not found"
	fileSystemNotConfiguredMessageConstant    = "repository locator file system not configured"
	locationErrorTemplateConstant             = "%s (%s: %s): %v"
	locationErrorWithoutCauseTemplateConstant = "%s (%s: %s)"
)

// LocationStage names the step at which repository discovery stopped.
type LocationStage string

// Discovery stages reported by RepositoryLocationError.
const (
	LocationStageGitDirectory LocationStage = LocationStage("git directory")
	LocationStageConfig       LocationStage = LocationStage("git config")
	LocationStageRemoteURL    LocationStage = LocationStage("remote url")
)

var (
	// ErrRepositoryNotFound indicates no GitHub owner/name could be derived for the working directory.
	ErrRepositoryNotFound = errors.New(repositoryNotFoundMessageConstant)
	// ErrFileSystemNotConfigured indicates the locator was constructed without a file system.
	ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)
)

// RepositoryLocationError reports where discovery failed. It always unwraps to ErrRepositoryNotFound.
type RepositoryLocationError struct {
	Stage LocationStage
	Path  string
	Cause error
}

// Error describes the failed stage.
func (locationError RepositoryLocationError) Error() string {
	if locationError.Cause == nil {
		return fmt.Sprintf(locationErrorWithoutCauseTemplateConstant, repositoryNotFoundMessageConstant, locationError.Stage, locationError.Path)
	}
	return fmt.Sprintf(locationErrorTemplateConstant, repositoryNotFoundMessageConstant, locationError.Stage, locationError.Path, locationError.Cause)
}

// Unwrap exposes ErrRepositoryNotFound.
func (locationError RepositoryLocationError) Unwrap() error {
	return ErrRepositoryNotFound
}

// GitExecutor runs git commands. The locator uses it only when the working
// directory has no .git entry of its own.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryLocator derives owner/name from the git configuration of a working tree.
type RepositoryLocator struct {
	fileSystem  afero.Fs
	gitExecutor GitExecutor
}

// NewRepositoryLocator constructs a locator. gitExecutor may be nil, in which
// case nested subdirectories of a repository are not resolved.
func NewRepositoryLocator(fileSystem afero.Fs, gitExecutor GitExecutor) (*RepositoryLocator, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &RepositoryLocator{fileSystem: fileSystem, gitExecutor: gitExecutor}, nil
}

// Locate returns the owner/name identifier of the first remote URL found in the git config.
func (locator *RepositoryLocator) Locate(executionContext context.Context, workingDirectory string) (string, error) {
	gitDirectory, resolveError := locator.resolveGitDirectory(executionContext, workingDirectory)
	if resolveError != nil {
		return "", resolveError
	}

	configPath := filepath.Join(gitDirectory, gitConfigFileNameConstant)
	configContents, readError := afero.ReadFile(locator.fileSystem, configPath)
	if readError != nil {
		return "", RepositoryLocationError{Stage: LocationStageConfig, Path: configPath, Cause: readError}
	}

	remoteURL, found := findFirstRemoteURL(string(configContents))
	if !found {
		return "", RepositoryLocationError{Stage: LocationStageRemoteURL, Path: configPath}
	}

	nameWithOwner, extractError := ExtractNameWithOwner(remoteURL)
	if extractError != nil {
		return "", RepositoryLocationError{Stage: LocationStageRemoteURL, Path: configPath, Cause: extractError}
	}
	return nameWithOwner, nil
}

// ExtractNameWithOwner returns the text after github.com/ without a trailing
// .git suffix, falling back to ParseRemoteURL for other remote forms.
func ExtractNameWithOwner(remoteURL string) (string, error) {
	trimmedURL := strings.TrimSpace(remoteURL)
	if markerIndex := strings.Index(trimmedURL, githubHostPathMarkerConstant); markerIndex != -1 {
		nameWithOwner := trimmedURL[markerIndex+len(githubHostPathMarkerConstant):]
		nameWithOwner = strings.TrimRight(nameWithOwner, pathSeparatorConstant)
		nameWithOwner = strings.TrimSuffix(nameWithOwner, gitSuffixConstant)
		if len(nameWithOwner) == 0 {
			return "", RemoteURLParseError{Input: remoteURL, Message: invalidRemoteURLMessageConstant}
		}
		return nameWithOwner, nil
	}

	parsedRemote, parseError := ParseRemoteURL(trimmedURL)
	if parseError != nil {
		return "", parseError
	}
	return parsedRemote.NameWithOwner(), nil
}

func (locator *RepositoryLocator) resolveGitDirectory(executionContext context.Context, workingDirectory string) (string, error) {
	candidatePath := filepath.Join(workingDirectory, gitDirectoryNameConstant)
	candidateInfo, statError := locator.fileSystem.Stat(candidatePath)
	if statError != nil {
		if locator.gitExecutor == nil {
			return "", RepositoryLocationError{Stage: LocationStageGitDirectory, Path: candidatePath, Cause: statError}
		}
		return locator.resolveGitDirectoryWithGit(executionContext, workingDirectory)
	}

	if candidateInfo.IsDir() {
		return candidatePath, nil
	}

	pointerContents, readError := afero.ReadFile(locator.fileSystem, candidatePath)
	if readError != nil {
		return "", RepositoryLocationError{Stage: LocationStageGitDirectory, Path: candidatePath, Cause: readError}
	}
	pointedDirectory := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(pointerContents)), gitDirectoryPointerPrefixConstant))
	if len(pointedDirectory) == 0 {
		return "", RepositoryLocationError{Stage: LocationStageGitDirectory, Path: candidatePath}
	}
	if !filepath.IsAbs(pointedDirectory) {
		pointedDirectory = filepath.Join(workingDirectory, pointedDirectory)
	}
	return locator.resolveCommonDirectory(pointedDirectory), nil
}

// resolveCommonDirectory follows the commondir file of a linked worktree so the
// shared config is read.
func (locator *RepositoryLocator) resolveCommonDirectory(gitDirectory string) string {
	commonDirectoryContents, readError := afero.ReadFile(locator.fileSystem, filepath.Join(gitDirectory, gitCommonDirectoryFileNameConstant))
	if readError != nil {
		return gitDirectory
	}
	commonDirectory := strings.TrimSpace(string(commonDirectoryContents))
	if len(commonDirectory) == 0 {
		return gitDirectory
	}
	if filepath.IsAbs(commonDirectory) {
		return commonDirectory
	}
	return filepath.Join(gitDirectory, commonDirectory)
}

func (locator *RepositoryLocator) resolveGitDirectoryWithGit(executionContext context.Context, workingDirectory string) (string, error) {
	executionResult, executionError := locator.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitCommonDirectoryArgumentConstant},
		WorkingDirectory: workingDirectory,
	})
	if executionError != nil {
		return "", RepositoryLocationError{Stage: LocationStageGitDirectory, Path: workingDirectory, Cause: executionError}
	}

	gitDirectory := strings.TrimSpace(executionResult.StandardOutput)
	if len(gitDirectory) == 0 {
		return "", RepositoryLocationError{Stage: LocationStageGitDirectory, Path: workingDirectory}
	}
	if !filepath.IsAbs(gitDirectory) {
		gitDirectory = filepath.Join(workingDirectory, gitDirectory)
	}
	return gitDirectory, nil
}

func findFirstRemoteURL(configContents string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(configContents))
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(trimmedLine, remoteURLLinePrefixConstant) {
			return strings.TrimSpace(strings.TrimPrefix(trimmedLine, remoteURLLinePrefixConstant)), true
		}
	}
	return "", false
}
