package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/restyle/internal/execshell"
)

const (
	gitVersionSubcommandConstant          = "version"
	gitRevParseSubcommandConstant         = "rev-parse"
	gitRevListSubcommandConstant          = "rev-list"
	gitCheckoutSubcommandConstant         = "checkout"
	gitWorktreeSubcommandConstant         = "worktree"
	gitWorktreeAddSubcommandConstant      = "add"
	gitWorktreeRemoveSubcommandConstant   = "remove"
	gitRebaseSubcommandConstant           = "rebase"
	gitCherryPickSubcommandConstant       = "cherry-pick"
	gitCommitSubcommandConstant           = "commit"
	gitShowSubcommandConstant             = "show"
	gitRemoteSubcommandConstant           = "remote"
	gitInsideWorkTreeFlagConstant         = "--is-inside-work-tree"
	gitDetachFlagConstant                 = "--detach"
	gitFixedStringsFlagConstant           = "--fixed-strings"
	gitGrepFlagTemplateConstant           = "--grep=%s"
	gitMergeStrategyTheirsFlagConstant    = "-Xtheirs"
	gitAllowEmptyFlagConstant             = "--allow-empty"
	gitAmendFlagConstant                  = "--amend"
	gitNoEditFlagConstant                 = "--no-edit"
	gitPathSeparatorArgumentConstant      = "--"
	gitEmptyFormatFlagConstant            = "--format="
	gitNameStatusFlagConstant             = "--name-status"
	gitVerboseFlagConstant                = "-v"
	revisionRangeTemplateConstant         = "%s..%s"
	insideWorkTreeAffirmativeConstant     = "true"
	remoteFetchDirectionSuffixConstant    = "(fetch)"
	changedPathDeletedStatusPrefix        = "D"
	changedPathRenamedStatusPrefix        = "R"
	changedPathCopiedStatusPrefix         = "C"
	lineSeparatorConstant                 = "\n"
	fieldSeparatorConstant                = "\t"
	lookupErrorTemplateConstant           = "%s: %s"
	noMatchingCommitMessageConstant       = "no commit message matches the phrase"
	noMatchingRemoteMessageConstant       = "no remote matches the repository"
	revisionRequiredMessageConstant       = "revision reference must not be empty"
	worktreePathRequiredMessageConstant   = "worktree path must not be empty"
	invalidReferenceErrorTemplateConstant = "gitrepo: %s"
)

// ErrExecutorNotConfigured indicates RepositoryClient was constructed without an executor.
var ErrExecutorNotConfigured = errors.New("gitrepo: git executor not configured")

// Revision identifies a commit. Values are opaque and compared by equality.
type Revision string

// String returns the textual form of the revision.
func (revision Revision) String() string {
	return string(revision)
}

// NamedRemote pairs a remote name with its fetch URL.
type NamedRemote struct {
	Name string
	URL  string
}

// LookupError reports that a repository query found no matching object.
type LookupError struct {
	Subject string
	Detail  string
}

// Error describes the failed lookup.
func (lookupError LookupError) Error() string {
	return fmt.Sprintf(lookupErrorTemplateConstant, lookupError.Detail, lookupError.Subject)
}

// GitExecutor runs git commands and reports their results.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryClient issues structured git operations through a shell executor.
type RepositoryClient struct {
	executor GitExecutor
}

// NewRepositoryClient validates the executor and constructs a RepositoryClient.
func NewRepositoryClient(executor GitExecutor) (*RepositoryClient, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryClient{executor: executor}, nil
}

// GitVersion reports the version banner printed by the git binary.
func (client *RepositoryClient) GitVersion(executionContext context.Context, workingDirectory string) (string, error) {
	executionResult, executionError := client.run(executionContext, workingDirectory, gitVersionSubcommandConstant)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// IsInsideWorkTree reports whether the working directory sits inside a Git work tree.
// A non-zero git exit is interpreted as not being inside a work tree.
func (client *RepositoryClient) IsInsideWorkTree(executionContext context.Context, workingDirectory string) (bool, error) {
	executionResult, executionError := client.run(executionContext, workingDirectory, gitRevParseSubcommandConstant, gitInsideWorkTreeFlagConstant)
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput) == insideWorkTreeAffirmativeConstant, nil
}

// ResolveRevision resolves a symbolic reference to its revision identifier.
func (client *RepositoryClient) ResolveRevision(executionContext context.Context, workingDirectory string, reference string) (Revision, error) {
	trimmedReference := strings.TrimSpace(reference)
	if len(trimmedReference) == 0 {
		return "", fmt.Errorf(invalidReferenceErrorTemplateConstant, revisionRequiredMessageConstant)
	}
	executionResult, executionError := client.run(executionContext, workingDirectory, gitRevParseSubcommandConstant, trimmedReference)
	if executionError != nil {
		return "", executionError
	}
	return Revision(strings.TrimSpace(executionResult.StandardOutput)), nil
}

// ListRevisions enumerates the commits reachable from newInclusive but not from
// oldExclusive, ordered oldest first. An empty range yields an empty sequence.
func (client *RepositoryClient) ListRevisions(executionContext context.Context, workingDirectory string, oldExclusive Revision, newInclusive Revision) ([]Revision, error) {
	revisionRange := fmt.Sprintf(revisionRangeTemplateConstant, oldExclusive, newInclusive)
	executionResult, executionError := client.run(executionContext, workingDirectory, gitRevListSubcommandConstant, revisionRange)
	if executionError != nil {
		return nil, executionError
	}

	outputLines := SplitLines(executionResult.StandardOutput)
	revisions := make([]Revision, 0, len(outputLines))
	for lineIndex := len(outputLines) - 1; lineIndex >= 0; lineIndex-- {
		revisions = append(revisions, Revision(outputLines[lineIndex]))
	}
	return revisions, nil
}

// FindRevisionByMessage locates the most recent commit reachable from the
// reference whose message contains the supplied phrase. The phrase is matched
// literally, not as a pattern.
func (client *RepositoryClient) FindRevisionByMessage(executionContext context.Context, workingDirectory string, reference string, messagePhrase string) (Revision, error) {
	grepArgument := fmt.Sprintf(gitGrepFlagTemplateConstant, messagePhrase)
	executionResult, executionError := client.run(executionContext, workingDirectory, gitRevListSubcommandConstant, gitFixedStringsFlagConstant, grepArgument, reference)
	if executionError != nil {
		return "", executionError
	}

	matchingLines := SplitLines(executionResult.StandardOutput)
	if len(matchingLines) == 0 {
		return "", LookupError{Subject: messagePhrase, Detail: noMatchingCommitMessageConstant}
	}
	return Revision(matchingLines[0]), nil
}

// CreateWorktree adds a detached worktree at the supplied path positioned at the reference.
func (client *RepositoryClient) CreateWorktree(executionContext context.Context, workingDirectory string, worktreePath string, reference string) error {
	if len(strings.TrimSpace(worktreePath)) == 0 {
		return fmt.Errorf(invalidReferenceErrorTemplateConstant, worktreePathRequiredMessageConstant)
	}
	_, executionError := client.run(executionContext, workingDirectory, gitWorktreeSubcommandConstant, gitWorktreeAddSubcommandConstant, gitDetachFlagConstant, worktreePath, reference)
	return executionError
}

// RemoveWorktree removes the worktree at the supplied path along with its metadata.
func (client *RepositoryClient) RemoveWorktree(executionContext context.Context, workingDirectory string, worktreePath string) error {
	_, executionError := client.run(executionContext, workingDirectory, gitWorktreeSubcommandConstant, gitWorktreeRemoveSubcommandConstant, worktreePath)
	return executionError
}

// CheckoutDetached positions HEAD at the reference without attaching a branch name.
func (client *RepositoryClient) CheckoutDetached(executionContext context.Context, workingDirectory string, reference string) error {
	_, executionError := client.run(executionContext, workingDirectory, gitCheckoutSubcommandConstant, gitDetachFlagConstant, reference)
	return executionError
}

// Rebase replays the commits of the current HEAD onto the supplied base reference.
func (client *RepositoryClient) Rebase(executionContext context.Context, workingDirectory string, baseReference string) error {
	_, executionError := client.run(executionContext, workingDirectory, gitRebaseSubcommandConstant, baseReference)
	return executionError
}

// CherryPickTheirs replays the revision onto HEAD, preferring the replayed
// content on conflicts and preserving originally empty commits.
func (client *RepositoryClient) CherryPickTheirs(executionContext context.Context, workingDirectory string, revision Revision) error {
	_, executionError := client.run(executionContext, workingDirectory, gitCherryPickSubcommandConstant, gitMergeStrategyTheirsFlagConstant, gitAllowEmptyFlagConstant, revision.String())
	return executionError
}

// AmendCommitPaths folds the supplied paths into the HEAD commit without
// changing its message and without dropping emptiness.
func (client *RepositoryClient) AmendCommitPaths(executionContext context.Context, workingDirectory string, paths []string) error {
	commandArguments := []string{gitCommitSubcommandConstant, gitAmendFlagConstant, gitNoEditFlagConstant, gitAllowEmptyFlagConstant, gitPathSeparatorArgumentConstant}
	commandArguments = append(commandArguments, paths...)
	_, executionError := client.run(executionContext, workingDirectory, commandArguments...)
	return executionError
}

// ChangedPaths lists the paths touched by the revision. Deleted paths are
// omitted and renamed or copied paths are reported under their new name.
func (client *RepositoryClient) ChangedPaths(executionContext context.Context, workingDirectory string, revision Revision) ([]string, error) {
	executionResult, executionError := client.run(executionContext, workingDirectory, gitShowSubcommandConstant, gitEmptyFormatFlagConstant, gitNameStatusFlagConstant, revision.String())
	if executionError != nil {
		return nil, executionError
	}

	changedPaths := []string{}
	for _, outputLine := range SplitLines(executionResult.StandardOutput) {
		statusFields := strings.Split(outputLine, fieldSeparatorConstant)
		if len(statusFields) < 2 {
			continue
		}
		statusCode := strings.TrimSpace(statusFields[0])
		if strings.HasPrefix(statusCode, changedPathDeletedStatusPrefix) {
			continue
		}
		if strings.HasPrefix(statusCode, changedPathRenamedStatusPrefix) || strings.HasPrefix(statusCode, changedPathCopiedStatusPrefix) {
			changedPaths = append(changedPaths, statusFields[len(statusFields)-1])
			continue
		}
		changedPaths = append(changedPaths, statusFields[1])
	}
	return changedPaths, nil
}

// ListRemotes reports the configured remotes with their fetch URLs.
func (client *RepositoryClient) ListRemotes(executionContext context.Context, workingDirectory string) ([]NamedRemote, error) {
	executionResult, executionError := client.run(executionContext, workingDirectory, gitRemoteSubcommandConstant, gitVerboseFlagConstant)
	if executionError != nil {
		return nil, executionError
	}

	remotes := []NamedRemote{}
	seenRemoteNames := map[string]struct{}{}
	for _, outputLine := range SplitLines(executionResult.StandardOutput) {
		if !strings.HasSuffix(strings.TrimSpace(outputLine), remoteFetchDirectionSuffixConstant) {
			continue
		}
		remoteFields := strings.Fields(outputLine)
		if len(remoteFields) < 2 {
			continue
		}
		remoteName := remoteFields[0]
		if _, alreadySeen := seenRemoteNames[remoteName]; alreadySeen {
			continue
		}
		seenRemoteNames[remoteName] = struct{}{}
		remotes = append(remotes, NamedRemote{Name: remoteName, URL: remoteFields[1]})
	}
	return remotes, nil
}

// FindRemoteByRepository locates a remote whose URL names the supplied owner
// and repository, comparing the parsed URL rather than raw text.
func (client *RepositoryClient) FindRemoteByRepository(executionContext context.Context, workingDirectory string, ownerName string, repositoryName string) (NamedRemote, error) {
	remotes, listError := client.ListRemotes(executionContext, workingDirectory)
	if listError != nil {
		return NamedRemote{}, listError
	}

	for _, remote := range remotes {
		parsedRemote, parseError := ParseRemoteURL(remote.URL)
		if parseError != nil {
			continue
		}
		if strings.EqualFold(parsedRemote.Owner, ownerName) && strings.EqualFold(parsedRemote.Repository, repositoryName) {
			return remote, nil
		}
	}
	return NamedRemote{}, LookupError{Subject: fmt.Sprintf("%s/%s", ownerName, repositoryName), Detail: noMatchingRemoteMessageConstant}
}

func (client *RepositoryClient) run(executionContext context.Context, workingDirectory string, commandArguments ...string) (execshell.ExecutionResult, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        commandArguments,
		WorkingDirectory: workingDirectory,
	}
	return client.executor.ExecuteGit(executionContext, commandDetails)
}

// SplitLines splits command output on newlines, stripping exactly one trailing
// newline so an empty output yields an empty sequence rather than a sequence
// holding one empty string. Leading and interior blank lines are preserved.
func SplitLines(output string) []string {
	trimmedOutput := strings.TrimSuffix(output, lineSeparatorConstant)
	if len(trimmedOutput) == 0 {
		return nil
	}
	return strings.Split(trimmedOutput, lineSeparatorConstant)
}
