package restyle_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/restyle/internal/execshell"
	"github.com/temirov/restyle/internal/gitrepo"
)

const (
	fakeDefaultGitVersionBannerConstant       = "git version 2.39.2"
	fakeDefaultFormatterVersionBannerConstant = "Uncrustify-0.75.1"
	formatterVersionArgumentConstant          = "--version"
)

// fakeRepository implements restyle.RepositoryOperations with scripted
// responses and an operation log, creating and removing real directories so
// worktree entry and teardown can change the process directory.
type fakeRepository struct {
	operations            []string
	insideWorkTree        bool
	gitVersionBanner      string
	switchPointRevision   gitrepo.Revision
	resolvedRevisions     map[string]gitrepo.Revision
	headRevisionQueue     []gitrepo.Revision
	commitSequence        []gitrepo.Revision
	changedPathsByCommit  map[gitrepo.Revision][]string
	upstreamRemote        gitrepo.NamedRemote
	upstreamLookupFailure error
	failOnOperation       string
	injectedFailure       error
	lastReplayedRevision  gitrepo.Revision
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		insideWorkTree:       true,
		gitVersionBanner:     fakeDefaultGitVersionBannerConstant,
		resolvedRevisions:    map[string]gitrepo.Revision{},
		changedPathsByCommit: map[gitrepo.Revision][]string{},
	}
}

func (repository *fakeRepository) record(operation string) error {
	repository.operations = append(repository.operations, operation)
	if len(repository.failOnOperation) > 0 && strings.HasPrefix(operation, repository.failOnOperation) {
		return repository.injectedFailure
	}
	return nil
}

func (repository *fakeRepository) GitVersion(_ context.Context, _ string) (string, error) {
	return repository.gitVersionBanner, nil
}

func (repository *fakeRepository) IsInsideWorkTree(_ context.Context, _ string) (bool, error) {
	return repository.insideWorkTree, nil
}

func (repository *fakeRepository) ResolveRevision(_ context.Context, _ string, reference string) (gitrepo.Revision, error) {
	if operationError := repository.record("resolve " + reference); operationError != nil {
		return "", operationError
	}
	if reference == "HEAD" && len(repository.headRevisionQueue) > 0 {
		nextRevision := repository.headRevisionQueue[0]
		repository.headRevisionQueue = repository.headRevisionQueue[1:]
		return nextRevision, nil
	}
	if resolvedRevision, known := repository.resolvedRevisions[reference]; known {
		return resolvedRevision, nil
	}
	return gitrepo.Revision(reference), nil
}

func (repository *fakeRepository) ListRevisions(_ context.Context, _ string, oldExclusive gitrepo.Revision, newInclusive gitrepo.Revision) ([]gitrepo.Revision, error) {
	if operationError := repository.record(fmt.Sprintf("rev-list %s..%s", oldExclusive, newInclusive)); operationError != nil {
		return nil, operationError
	}
	return append([]gitrepo.Revision{}, repository.commitSequence...), nil
}

func (repository *fakeRepository) FindRevisionByMessage(_ context.Context, _ string, reference string, messagePhrase string) (gitrepo.Revision, error) {
	if operationError := repository.record("find-message " + reference); operationError != nil {
		return "", operationError
	}
	if len(repository.switchPointRevision) == 0 {
		return "", gitrepo.LookupError{Subject: messagePhrase, Detail: "no commit message matches the phrase"}
	}
	return repository.switchPointRevision, nil
}

func (repository *fakeRepository) CreateWorktree(_ context.Context, _ string, worktreePath string, reference string) error {
	if operationError := repository.record("worktree-add " + worktreePath + " " + reference); operationError != nil {
		return operationError
	}
	return os.MkdirAll(worktreePath, 0o755)
}

func (repository *fakeRepository) RemoveWorktree(_ context.Context, _ string, worktreePath string) error {
	if operationError := repository.record("worktree-remove " + worktreePath); operationError != nil {
		return operationError
	}
	return os.RemoveAll(worktreePath)
}

func (repository *fakeRepository) CheckoutDetached(_ context.Context, _ string, reference string) error {
	return repository.record("checkout-detach " + reference)
}

func (repository *fakeRepository) Rebase(_ context.Context, _ string, baseReference string) error {
	return repository.record("rebase " + baseReference)
}

func (repository *fakeRepository) CherryPickTheirs(_ context.Context, _ string, revision gitrepo.Revision) error {
	repository.lastReplayedRevision = revision
	return repository.record("cherry-pick " + revision.String())
}

func (repository *fakeRepository) AmendCommitPaths(_ context.Context, _ string, paths []string) error {
	return repository.record("amend " + strings.Join(paths, ","))
}

func (repository *fakeRepository) ChangedPaths(_ context.Context, _ string, _ gitrepo.Revision) ([]string, error) {
	if operationError := repository.record("changed-paths " + repository.lastReplayedRevision.String()); operationError != nil {
		return nil, operationError
	}
	return append([]string{}, repository.changedPathsByCommit[repository.lastReplayedRevision]...), nil
}

func (repository *fakeRepository) FindRemoteByRepository(_ context.Context, _ string, ownerName string, repositoryName string) (gitrepo.NamedRemote, error) {
	if operationError := repository.record(fmt.Sprintf("find-remote %s/%s", ownerName, repositoryName)); operationError != nil {
		return gitrepo.NamedRemote{}, operationError
	}
	if repository.upstreamLookupFailure != nil {
		return gitrepo.NamedRemote{}, repository.upstreamLookupFailure
	}
	return repository.upstreamRemote, nil
}

func (repository *fakeRepository) operationsWithPrefix(prefix string) []string {
	matches := []string{}
	for _, operation := range repository.operations {
		if strings.HasPrefix(operation, prefix) {
			matches = append(matches, operation)
		}
	}
	return matches
}

// fakeFormatter implements restyle.FormatterExecutor, answering version probes
// with a configurable banner and recording formatting invocations.
type fakeFormatter struct {
	versionBanner       string
	formatRunFailure    error
	recordedRuns        []execshell.CommandDetails
	recordedVersionHits int
}

func newFakeFormatter() *fakeFormatter {
	return &fakeFormatter{versionBanner: fakeDefaultFormatterVersionBannerConstant}
}

func (formatter *fakeFormatter) ExecuteFormatter(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	for _, argument := range details.Arguments {
		if argument == formatterVersionArgumentConstant {
			formatter.recordedVersionHits++
			return execshell.ExecutionResult{StandardOutput: formatter.versionBanner}, nil
		}
	}
	formatter.recordedRuns = append(formatter.recordedRuns, details)
	if formatter.formatRunFailure != nil {
		return execshell.ExecutionResult{}, formatter.formatRunFailure
	}
	return execshell.ExecutionResult{}, nil
}
