package restyle

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/restyle/internal/execshell"
	"github.com/temirov/restyle/internal/gitrepo"
)

const (
	formatterConfigFlagConstant           = "-c"
	formatterNoBackupFlagConstant         = "--no-backup"
	formatterPassCountConstant            = 2
	headReferenceConstant                 = "HEAD"
	classifierMissingMessageConstant      = "path classifier not configured"
	formatterExecutorMissingMessage       = "formatter executor not configured"
	engineRepositoryMissingMessage        = "repository operations not configured"
	logMessageCommitReplayedConstant      = "Replayed commit"
	logMessageFilesRestyledConstant       = "Restyled files"
	logFieldReplayedRevisionConstant      = "revision"
	logFieldRestyledFileCountConstant     = "restyled_files"
	logFieldFormatterPassConstant         = "formatter_pass"
	logFieldChangedPathCountFieldConstant = "changed_paths"
)

// FormatterExecutor runs the external code formatter.
type FormatterExecutor interface {
	ExecuteFormatter(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ReplayRecord captures the outcome of replaying one commit onto the new base.
type ReplayRecord struct {
	Revision      gitrepo.Revision
	ChangedPaths  []string
	RestyledFiles []string
	Amended       bool
}

// RestyleEngine replays commits onto a new history position and normalizes the
// formatting of the files each commit touches.
type RestyleEngine struct {
	logger              *zap.Logger
	repository          RepositoryOperations
	formatter           FormatterExecutor
	classifier          *PathClassifier
	formatterConfigFile string
}

var (
	errClassifierMissing        = errors.New(classifierMissingMessageConstant)
	errFormatterExecutorMissing = errors.New(formatterExecutorMissingMessage)
	errEngineRepositoryMissing  = errors.New(engineRepositoryMissingMessage)
)

// NewRestyleEngine constructs a RestyleEngine with the provided collaborators.
func NewRestyleEngine(logger *zap.Logger, repository RepositoryOperations, formatter FormatterExecutor, classifier *PathClassifier, formatterConfigFile string) (*RestyleEngine, error) {
	if repository == nil {
		return nil, errEngineRepositoryMissing
	}
	if formatter == nil {
		return nil, errFormatterExecutorMissing
	}
	if classifier == nil {
		return nil, errClassifierMissing
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := &RestyleEngine{
		logger:              logger,
		repository:          repository,
		formatter:           formatter,
		classifier:          classifier,
		formatterConfigFile: formatterConfigFile,
	}
	return engine, nil
}

// Restyle reformats the supplied files in place. The formatter runs exactly
// twice over the full list because a single pass is not idempotent for every
// construct; a third pass buys nothing. Empty input is a no-op with zero
// subprocess invocations.
func (engine *RestyleEngine) Restyle(executionContext context.Context, workingDirectory string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	formatterArguments := []string{formatterConfigFlagConstant, engine.formatterConfigFile, formatterNoBackupFlagConstant}
	formatterArguments = append(formatterArguments, paths...)

	for passNumber := 1; passNumber <= formatterPassCountConstant; passNumber++ {
		engine.logger.Debug(
			logMessageFilesRestyledConstant,
			zap.Int(logFieldRestyledFileCountConstant, len(paths)),
			zap.Int(logFieldFormatterPassConstant, passNumber),
		)
		_, formatterError := engine.formatter.ExecuteFormatter(executionContext, execshell.CommandDetails{
			Arguments:        formatterArguments,
			WorkingDirectory: workingDirectory,
		})
		if formatterError != nil {
			return formatterError
		}
	}
	return nil
}

// ApplyCommitOntoHead replays the commit onto the current HEAD, preferring the
// replayed content on conflicts, then restyles the styleable subset of the
// touched paths and folds the restyling back into the new commit without
// altering its message or its emptiness.
func (engine *RestyleEngine) ApplyCommitOntoHead(executionContext context.Context, workingDirectory string, revision gitrepo.Revision) (ReplayRecord, error) {
	if replayError := engine.repository.CherryPickTheirs(executionContext, workingDirectory, revision); replayError != nil {
		return ReplayRecord{}, replayError
	}

	changedPaths, changedError := engine.repository.ChangedPaths(executionContext, workingDirectory, headReferenceConstant)
	if changedError != nil {
		return ReplayRecord{}, changedError
	}

	styleablePaths := engine.classifier.StyleablePaths(changedPaths)
	if restyleError := engine.Restyle(executionContext, workingDirectory, styleablePaths); restyleError != nil {
		return ReplayRecord{}, restyleError
	}

	record := ReplayRecord{
		Revision:      revision,
		ChangedPaths:  changedPaths,
		RestyledFiles: styleablePaths,
	}

	if len(styleablePaths) > 0 {
		if amendError := engine.repository.AmendCommitPaths(executionContext, workingDirectory, styleablePaths); amendError != nil {
			return ReplayRecord{}, amendError
		}
		record.Amended = true
	}

	engine.logger.Debug(
		logMessageCommitReplayedConstant,
		zap.String(logFieldReplayedRevisionConstant, revision.String()),
		zap.Int(logFieldChangedPathCountFieldConstant, len(changedPaths)),
		zap.Int(logFieldRestyledFileCountConstant, len(styleablePaths)),
	)
	return record, nil
}
