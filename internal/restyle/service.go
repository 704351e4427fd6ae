package restyle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/restyle/internal/gitrepo"
)

const (
	existingBranchFieldNameConstant         = "existing_branch"
	targetBranchFieldNameConstant           = "target_branch"
	sentinelPhraseFieldNameConstant         = "sentinel_phrase"
	upstreamRepositoryFieldNameConstant     = "upstream_repository"
	formatterConfigFieldNameConstant        = "formatter_config"
	requiredValueMessageConstant            = "value is required"
	repositoryMissingMessageConstant        = "repository operations not configured"
	formatterMissingMessageConstant         = "formatter executor not configured"
	serviceClassifierMissingMessageConstant = "path classifier not configured"
	upstreamRepositoryFormatMessageConstant = "upstream repository must use the owner/name form"
	firstParentReferenceTemplateConstant    = "%s^"
	remoteTrackingReferenceTemplateConstant = "%s/%s"
	upstreamRepositorySeparatorConstant     = "/"
	noCommitsToReplayWarningConstant        = "no commits to replay between the style boundary and the rebased head"
	noStyleableFilesWarningConstant         = "no replayed commit touched a styleable file"
	teardownFailureWarningTemplateConstant  = "worktree teardown failed: %v"
	logMessageWorktreeReadyConstant         = "Worktree ready"
	logMessageSwitchPointLocatedConstant    = "Switch point located"
	logMessageRebaseCompletedConstant       = "Rebased onto style boundary"
	logMessageReplayProgressConstant        = "Replaying commit"
	logMessageRewriteCompletedConstant      = "Branch rewrite completed"
	logMessageUpstreamRemoteMatchedConstant = "Upstream remote matched"
	logFieldExistingBranchConstant          = "existing_branch"
	logFieldTargetBranchConstant            = "target_branch"
	logFieldSwitchPointConstant             = "switch_point"
	logFieldStyleBoundaryConstant           = "style_boundary"
	logFieldReplayIndexConstant             = "commit_index"
	logFieldReplayTotalConstant             = "commit_total"
	logFieldFinalRevisionConstant           = "final_revision"
	logFieldReplayedCommitCountConstant     = "replayed_commits"
	logFieldUpstreamRemoteNameConstant      = "remote_name"
	logFieldServiceWorktreePathConstant     = "worktree_path"
)

// InvalidInputError describes rewrite option validation failures.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", inputError.FieldName, inputError.Message)
}

// RepositoryOperations is the capability surface the rewrite workflow needs
// from a Git repository, kept narrow so the orchestration is testable against
// a fake implementation.
type RepositoryOperations interface {
	GitVersion(executionContext context.Context, workingDirectory string) (string, error)
	IsInsideWorkTree(executionContext context.Context, workingDirectory string) (bool, error)
	ResolveRevision(executionContext context.Context, workingDirectory string, reference string) (gitrepo.Revision, error)
	ListRevisions(executionContext context.Context, workingDirectory string, oldExclusive gitrepo.Revision, newInclusive gitrepo.Revision) ([]gitrepo.Revision, error)
	FindRevisionByMessage(executionContext context.Context, workingDirectory string, reference string, messagePhrase string) (gitrepo.Revision, error)
	CreateWorktree(executionContext context.Context, workingDirectory string, worktreePath string, reference string) error
	RemoveWorktree(executionContext context.Context, workingDirectory string, worktreePath string) error
	CheckoutDetached(executionContext context.Context, workingDirectory string, reference string) error
	Rebase(executionContext context.Context, workingDirectory string, baseReference string) error
	CherryPickTheirs(executionContext context.Context, workingDirectory string, revision gitrepo.Revision) error
	AmendCommitPaths(executionContext context.Context, workingDirectory string, paths []string) error
	ChangedPaths(executionContext context.Context, workingDirectory string, revision gitrepo.Revision) ([]string, error)
	FindRemoteByRepository(executionContext context.Context, workingDirectory string, ownerName string, repositoryName string) (gitrepo.NamedRemote, error)
}

// ServiceDependencies describes required collaborators for the rewrite workflow.
type ServiceDependencies struct {
	Logger     *zap.Logger
	Repository RepositoryOperations
	Formatter  FormatterExecutor
	Classifier *PathClassifier
}

// RewriteOptions configures one rewrite run. Options are immutable inputs; the
// run reports its outcome through RewriteResult instead of mutating shared state.
type RewriteOptions struct {
	ExistingBranch      string
	TargetBranch        string
	SentinelPhrase      string
	FormatterConfigFile string
	UpstreamRepository  string
	EnableDebugLogging  bool
}

// RewriteResult captures the observable outcome of a rewrite run.
type RewriteResult struct {
	SwitchPointRevision   gitrepo.Revision
	StyleBoundaryRevision gitrepo.Revision
	FinalRevision         gitrepo.Revision
	ReplayRecords         []ReplayRecord
	Warnings              []string
	WorktreePath          string
	UpstreamRemoteName    string
}

// Service orchestrates the two-phase rebase-and-restyle workflow.
type Service struct {
	logger     *zap.Logger
	repository RepositoryOperations
	formatter  FormatterExecutor
	classifier *PathClassifier
}

var (
	errRepositoryMissing        = errors.New(repositoryMissingMessageConstant)
	errFormatterMissing         = errors.New(formatterMissingMessageConstant)
	errServiceClassifierMissing = errors.New(serviceClassifierMissingMessageConstant)
)

// NewService constructs a Service with the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Repository == nil {
		return nil, errRepositoryMissing
	}
	if dependencies.Formatter == nil {
		return nil, errFormatterMissing
	}
	if dependencies.Classifier == nil {
		return nil, errServiceClassifierMissing
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	service := &Service{
		logger:     logger,
		repository: dependencies.Repository,
		formatter:  dependencies.Formatter,
		classifier: dependencies.Classifier,
	}
	return service, nil
}

// Execute performs the rewrite workflow: it verifies the environment, isolates
// the run in a disposable worktree, rebases the old-style portion of the
// branch onto the style boundary, then replays and restyles each remaining
// commit on top of the switch point. The worktree is removed on every path
// that reaches the deferred teardown.
func (service *Service) Execute(executionContext context.Context, options RewriteOptions) (RewriteResult, error) {
	if validationError := service.validateOptions(options); validationError != nil {
		return RewriteResult{}, validationError
	}

	environmentChecker := NewEnvironmentChecker(service.logger, service.repository, service.formatter)
	if preconditionFailure := environmentChecker.Check(executionContext, ""); preconditionFailure != nil {
		return RewriteResult{}, preconditionFailure
	}

	result := RewriteResult{}

	targetReference := options.TargetBranch
	if len(options.UpstreamRepository) > 0 {
		remoteName, remoteError := service.resolveUpstreamRemote(executionContext, options.UpstreamRepository)
		if remoteError != nil {
			return RewriteResult{}, remoteError
		}
		result.UpstreamRemoteName = remoteName
		targetReference = fmt.Sprintf(remoteTrackingReferenceTemplateConstant, remoteName, options.TargetBranch)
	}

	worktreeManager := NewWorktreeManager(service.logger, service.repository)
	worktreePath, prepareError := worktreeManager.Prepare(executionContext, options.ExistingBranch)
	if prepareError != nil {
		return RewriteResult{}, prepareError
	}
	defer func() {
		if teardownError := worktreeManager.Teardown(executionContext); teardownError != nil {
			service.logger.Warn(fmt.Sprintf(teardownFailureWarningTemplateConstant, teardownError))
		}
	}()
	result.WorktreePath = worktreePath

	if checkoutError := service.repository.CheckoutDetached(executionContext, worktreePath, options.ExistingBranch); checkoutError != nil {
		return RewriteResult{}, checkoutError
	}
	service.logger.Info(
		logMessageWorktreeReadyConstant,
		zap.String(logFieldServiceWorktreePathConstant, worktreePath),
		zap.String(logFieldExistingBranchConstant, options.ExistingBranch),
	)

	switchPointRevision, switchPointError := service.repository.FindRevisionByMessage(executionContext, worktreePath, targetReference, options.SentinelPhrase)
	if switchPointError != nil {
		return RewriteResult{}, switchPointError
	}
	styleBoundaryRevision, boundaryError := service.repository.ResolveRevision(executionContext, worktreePath, fmt.Sprintf(firstParentReferenceTemplateConstant, switchPointRevision))
	if boundaryError != nil {
		return RewriteResult{}, boundaryError
	}
	result.SwitchPointRevision = switchPointRevision
	result.StyleBoundaryRevision = styleBoundaryRevision
	service.logger.Info(
		logMessageSwitchPointLocatedConstant,
		zap.String(logFieldSwitchPointConstant, switchPointRevision.String()),
		zap.String(logFieldStyleBoundaryConstant, styleBoundaryRevision.String()),
	)

	if rebaseError := service.repository.Rebase(executionContext, worktreePath, styleBoundaryRevision.String()); rebaseError != nil {
		return RewriteResult{}, rebaseError
	}
	rebasedHeadRevision, rebasedHeadError := service.repository.ResolveRevision(executionContext, worktreePath, headReferenceConstant)
	if rebasedHeadError != nil {
		return RewriteResult{}, rebasedHeadError
	}
	service.logger.Info(logMessageRebaseCompletedConstant, zap.String(logFieldStyleBoundaryConstant, styleBoundaryRevision.String()))

	commitSequence, enumerationError := service.repository.ListRevisions(executionContext, worktreePath, styleBoundaryRevision, rebasedHeadRevision)
	if enumerationError != nil {
		return RewriteResult{}, enumerationError
	}
	if len(commitSequence) == 0 {
		result.Warnings = append(result.Warnings, noCommitsToReplayWarningConstant)
	}

	if checkoutError := service.repository.CheckoutDetached(executionContext, worktreePath, switchPointRevision.String()); checkoutError != nil {
		return RewriteResult{}, checkoutError
	}

	restyleEngine, engineError := NewRestyleEngine(service.logger, service.repository, service.formatter, service.classifier, options.FormatterConfigFile)
	if engineError != nil {
		return RewriteResult{}, engineError
	}

	for commitIndex, commitRevision := range commitSequence {
		service.logger.Info(
			logMessageReplayProgressConstant,
			zap.Int(logFieldReplayIndexConstant, commitIndex+1),
			zap.Int(logFieldReplayTotalConstant, len(commitSequence)),
		)
		replayRecord, replayError := restyleEngine.ApplyCommitOntoHead(executionContext, worktreePath, commitRevision)
		if replayError != nil {
			return RewriteResult{}, replayError
		}
		result.ReplayRecords = append(result.ReplayRecords, replayRecord)
	}

	finalRevision, finalError := service.repository.ResolveRevision(executionContext, worktreePath, headReferenceConstant)
	if finalError != nil {
		return RewriteResult{}, finalError
	}
	result.FinalRevision = finalRevision

	if len(commitSequence) > 0 && !anyCommitRestyled(result.ReplayRecords) {
		result.Warnings = append(result.Warnings, noStyleableFilesWarningConstant)
	}

	service.logger.Info(
		logMessageRewriteCompletedConstant,
		zap.String(logFieldExistingBranchConstant, options.ExistingBranch),
		zap.String(logFieldTargetBranchConstant, options.TargetBranch),
		zap.String(logFieldFinalRevisionConstant, finalRevision.String()),
		zap.Int(logFieldReplayedCommitCountConstant, len(result.ReplayRecords)),
	)
	return result, nil
}

func (service *Service) validateOptions(options RewriteOptions) error {
	if len(strings.TrimSpace(options.ExistingBranch)) == 0 {
		return InvalidInputError{FieldName: existingBranchFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.TargetBranch)) == 0 {
		return InvalidInputError{FieldName: targetBranchFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.SentinelPhrase)) == 0 {
		return InvalidInputError{FieldName: sentinelPhraseFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.FormatterConfigFile)) == 0 {
		return InvalidInputError{FieldName: formatterConfigFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return nil
}

func (service *Service) resolveUpstreamRemote(executionContext context.Context, upstreamRepository string) (string, error) {
	identifierSegments := strings.Split(upstreamRepository, upstreamRepositorySeparatorConstant)
	if len(identifierSegments) != 2 || len(identifierSegments[0]) == 0 || len(identifierSegments[1]) == 0 {
		return "", InvalidInputError{FieldName: upstreamRepositoryFieldNameConstant, Message: upstreamRepositoryFormatMessageConstant}
	}

	matchedRemote, lookupError := service.repository.FindRemoteByRepository(executionContext, "", identifierSegments[0], identifierSegments[1])
	if lookupError != nil {
		return "", lookupError
	}
	service.logger.Debug(logMessageUpstreamRemoteMatchedConstant, zap.String(logFieldUpstreamRemoteNameConstant, matchedRemote.Name))
	return matchedRemote.Name, nil
}

func anyCommitRestyled(replayRecords []ReplayRecord) bool {
	for _, replayRecord := range replayRecords {
		if len(replayRecord.RestyledFiles) > 0 {
			return true
		}
	}
	return false
}
