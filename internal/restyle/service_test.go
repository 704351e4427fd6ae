package restyle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/restyle/internal/execshell"
	"github.com/temirov/restyle/internal/gitrepo"
	"github.com/temirov/restyle/internal/restyle"
)

func newFailedReplayError() error {
	return execshell.CommandFailedError{
		Command: execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: []string{"cherry-pick"}}},
		Result:  execshell.ExecutionResult{ExitCode: 1},
	}
}

const (
	testExistingBranchNameConstant      = "feature"
	testTargetBranchNameConstant        = "main"
	testSentinelPhraseConstant          = "Switch to the new code style"
	testSwitchPointRevisionConstant     = gitrepo.Revision("switchrev")
	testStyleBoundaryRevisionConstant   = gitrepo.Revision("boundaryrev")
	testRebasedHeadRevisionConstant     = gitrepo.Revision("rebasedhead")
	testFinalRevisionConstant           = gitrepo.Revision("finalhead")
	testMissingBranchCaseNameConstant   = "missing_existing_branch"
	testMissingTargetCaseNameConstant   = "missing_target_branch"
	testMissingSentinelCaseNameConstant = "missing_sentinel_phrase"
	testMissingConfigCaseNameConstant   = "missing_formatter_config"
)

func newScenarioRepository() *fakeRepository {
	repository := newFakeRepository()
	repository.switchPointRevision = testSwitchPointRevisionConstant
	repository.resolvedRevisions["switchrev^"] = testStyleBoundaryRevisionConstant
	repository.headRevisionQueue = []gitrepo.Revision{testRebasedHeadRevisionConstant, testFinalRevisionConstant}
	repository.commitSequence = []gitrepo.Revision{"feature1", "feature2"}
	repository.changedPathsByCommit["feature1"] = []string{"library/aes.c"}
	repository.changedPathsByCommit["feature2"] = []string{"docs/readme.md"}
	return repository
}

func newServiceUnderTest(testInstance *testing.T, repository *fakeRepository, formatter *fakeFormatter) *restyle.Service {
	classifier, classifierError := restyle.NewPathClassifier()
	require.NoError(testInstance, classifierError)

	service, serviceError := restyle.NewService(restyle.ServiceDependencies{
		Logger:     zap.NewNop(),
		Repository: repository,
		Formatter:  formatter,
		Classifier: classifier,
	})
	require.NoError(testInstance, serviceError)
	return service
}

func defaultRewriteOptions() restyle.RewriteOptions {
	return restyle.RewriteOptions{
		ExistingBranch:      testExistingBranchNameConstant,
		TargetBranch:        testTargetBranchNameConstant,
		SentinelPhrase:      testSentinelPhraseConstant,
		FormatterConfigFile: testFormatterConfigFileConstant,
	}
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	classifier, classifierError := restyle.NewPathClassifier()
	require.NoError(testInstance, classifierError)

	_, missingRepositoryError := restyle.NewService(restyle.ServiceDependencies{Formatter: newFakeFormatter(), Classifier: classifier})
	require.Error(testInstance, missingRepositoryError)

	_, missingFormatterError := restyle.NewService(restyle.ServiceDependencies{Repository: newFakeRepository(), Classifier: classifier})
	require.Error(testInstance, missingFormatterError)

	_, missingClassifierError := restyle.NewService(restyle.ServiceDependencies{Repository: newFakeRepository(), Formatter: newFakeFormatter()})
	require.Error(testInstance, missingClassifierError)
}

func TestServiceExecuteValidatesOptions(testInstance *testing.T) {
	testCases := []struct {
		name   string
		mutate func(options *restyle.RewriteOptions)
	}{
		{
			name:   testMissingBranchCaseNameConstant,
			mutate: func(options *restyle.RewriteOptions) { options.ExistingBranch = " " },
		},
		{
			name:   testMissingTargetCaseNameConstant,
			mutate: func(options *restyle.RewriteOptions) { options.TargetBranch = "" },
		},
		{
			name:   testMissingSentinelCaseNameConstant,
			mutate: func(options *restyle.RewriteOptions) { options.SentinelPhrase = "" },
		},
		{
			name:   testMissingConfigCaseNameConstant,
			mutate: func(options *restyle.RewriteOptions) { options.FormatterConfigFile = "" },
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			service := newServiceUnderTest(testInstance, newScenarioRepository(), newFakeFormatter())
			options := defaultRewriteOptions()
			testCase.mutate(&options)

			_, executionError := service.Execute(context.Background(), options)
			require.Error(testInstance, executionError)
			invalidInput := restyle.InvalidInputError{}
			require.ErrorAs(testInstance, executionError, &invalidInput)
		})
	}
}

func TestServiceExecuteRewritesBranchEndToEnd(testInstance *testing.T) {
	enterTemporaryRepository(testInstance)
	repository := newScenarioRepository()
	formatter := newFakeFormatter()
	service := newServiceUnderTest(testInstance, repository, formatter)

	result, executionError := service.Execute(context.Background(), defaultRewriteOptions())
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, testSwitchPointRevisionConstant, result.SwitchPointRevision)
	require.Equal(testInstance, testStyleBoundaryRevisionConstant, result.StyleBoundaryRevision)
	require.Equal(testInstance, testFinalRevisionConstant, result.FinalRevision)
	require.Empty(testInstance, result.Warnings)
	require.Len(testInstance, result.ReplayRecords, 2)
	require.True(testInstance, result.ReplayRecords[0].Amended)
	require.Equal(testInstance, []string{"library/aes.c"}, result.ReplayRecords[0].RestyledFiles)
	require.False(testInstance, result.ReplayRecords[1].Amended)
	require.Empty(testInstance, result.ReplayRecords[1].RestyledFiles)

	require.Len(testInstance, formatter.recordedRuns, 2)

	expectedOperations := []string{
		"worktree-add " + result.WorktreePath + " HEAD",
		"checkout-detach " + testExistingBranchNameConstant,
		"find-message " + testTargetBranchNameConstant,
		"resolve switchrev^",
		"rebase boundaryrev",
		"resolve HEAD",
		"rev-list boundaryrev..rebasedhead",
		"checkout-detach switchrev",
		"cherry-pick feature1",
		"changed-paths feature1",
		"amend library/aes.c",
		"cherry-pick feature2",
		"changed-paths feature2",
		"resolve HEAD",
		"worktree-remove " + result.WorktreePath,
	}
	require.Equal(testInstance, expectedOperations, repository.operations)
	require.NoDirExists(testInstance, result.WorktreePath)
}

func TestServiceExecuteTearsDownWorktreeOnReplayFailure(testInstance *testing.T) {
	enterTemporaryRepository(testInstance)
	repository := newScenarioRepository()
	repository.failOnOperation = "cherry-pick feature2"
	repository.injectedFailure = newFailedReplayError()
	service := newServiceUnderTest(testInstance, repository, newFakeFormatter())

	_, executionError := service.Execute(context.Background(), defaultRewriteOptions())
	require.Error(testInstance, executionError)

	removals := repository.operationsWithPrefix("worktree-remove")
	require.Len(testInstance, removals, 1)
	additions := repository.operationsWithPrefix("worktree-add")
	require.Len(testInstance, additions, 1)
}

func TestServiceExecuteStopsBeforeWorktreeOnPreconditionFailure(testInstance *testing.T) {
	repository := newScenarioRepository()
	formatter := newFakeFormatter()
	formatter.versionBanner = "Uncrustify-0.60.0"
	service := newServiceUnderTest(testInstance, repository, formatter)

	_, executionError := service.Execute(context.Background(), defaultRewriteOptions())
	require.Error(testInstance, executionError)
	preconditionFailure := restyle.PreconditionError{}
	require.ErrorAs(testInstance, executionError, &preconditionFailure)
	require.Empty(testInstance, repository.operationsWithPrefix("worktree-add"))
}

func TestServiceExecuteWarnsWhenNothingToReplay(testInstance *testing.T) {
	enterTemporaryRepository(testInstance)
	repository := newScenarioRepository()
	repository.commitSequence = nil
	service := newServiceUnderTest(testInstance, repository, newFakeFormatter())

	result, executionError := service.Execute(context.Background(), defaultRewriteOptions())
	require.NoError(testInstance, executionError)
	require.Len(testInstance, result.Warnings, 1)
	require.Empty(testInstance, result.ReplayRecords)
}

func TestServiceExecuteWarnsWhenNoCommitTouchedStyleableFiles(testInstance *testing.T) {
	enterTemporaryRepository(testInstance)
	repository := newScenarioRepository()
	repository.changedPathsByCommit["feature1"] = []string{"docs/guide.md"}
	repository.changedPathsByCommit["feature2"] = []string{"docs/readme.md"}
	service := newServiceUnderTest(testInstance, repository, newFakeFormatter())

	result, executionError := service.Execute(context.Background(), defaultRewriteOptions())
	require.NoError(testInstance, executionError)
	require.Len(testInstance, result.Warnings, 1)
	require.Empty(testInstance, repository.operationsWithPrefix("amend"))
}

func TestServiceExecuteResolvesUpstreamRemote(testInstance *testing.T) {
	enterTemporaryRepository(testInstance)
	repository := newScenarioRepository()
	repository.upstreamRemote = gitrepo.NamedRemote{Name: "upstream", URL: "https://github.com/owner/project.git"}
	service := newServiceUnderTest(testInstance, repository, newFakeFormatter())

	options := defaultRewriteOptions()
	options.UpstreamRepository = "owner/project"
	result, executionError := service.Execute(context.Background(), options)
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "upstream", result.UpstreamRemoteName)
	require.Equal(testInstance, []string{"find-message upstream/" + testTargetBranchNameConstant}, repository.operationsWithPrefix("find-message"))
}

func TestServiceExecuteAbortsWhenUpstreamRemoteIsMissing(testInstance *testing.T) {
	repository := newScenarioRepository()
	repository.upstreamLookupFailure = gitrepo.LookupError{Subject: "owner/project", Detail: "no remote matches the repository"}
	service := newServiceUnderTest(testInstance, repository, newFakeFormatter())

	options := defaultRewriteOptions()
	options.UpstreamRepository = "owner/project"
	_, executionError := service.Execute(context.Background(), options)
	require.Error(testInstance, executionError)
	lookupFailure := gitrepo.LookupError{}
	require.ErrorAs(testInstance, executionError, &lookupFailure)
	require.Empty(testInstance, repository.operationsWithPrefix("worktree-add"))
}
