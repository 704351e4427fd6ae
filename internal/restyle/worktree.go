package restyle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	worktreeDirectoryNameTemplateConstant  = "%s-%s-%d"
	worktreeLabelSegmentSeparatorConstant  = "-"
	worktreeAlreadyPreparedMessageConstant = "a worktree is already prepared for this manager"
	worktreeInitialReferenceConstant       = "HEAD"
	worktreeEnterErrorTemplateConstant     = "unable to enter worktree: %w"
	worktreeRestoreErrorTemplateConstant   = "unable to restore original directory: %w"
	worktreeResolveErrorTemplateConstant   = "unable to resolve working directory: %w"
	logMessageWorktreePreparedConstant     = "Prepared isolated worktree"
	logMessageWorktreeRemovedConstant      = "Removed isolated worktree"
	logFieldWorktreePathConstant           = "worktree_path"
)

// ErrWorktreeAlreadyPrepared indicates Prepare was called while a worktree is still live.
var ErrWorktreeAlreadyPrepared = errors.New(worktreeAlreadyPreparedMessageConstant)

// WorktreeManager owns the single disposable worktree used by a rewrite run.
// Exactly one worktree is live per manager at any time.
type WorktreeManager struct {
	logger            *zap.Logger
	repository        RepositoryOperations
	originalDirectory string
	worktreePath      string
	prepared          bool
}

// NewWorktreeManager constructs a WorktreeManager over the supplied repository operations.
func NewWorktreeManager(logger *zap.Logger, repository RepositoryOperations) *WorktreeManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorktreeManager{logger: logger, repository: repository}
}

// Prepare creates a detached worktree at a path derived from the label and the
// process identity, sibling to the current repository directory, and moves the
// process into it. The derived path keeps concurrent runs against different
// branches from colliding.
func (manager *WorktreeManager) Prepare(executionContext context.Context, label string) (string, error) {
	if manager.prepared {
		return "", ErrWorktreeAlreadyPrepared
	}

	currentDirectory, directoryError := os.Getwd()
	if directoryError != nil {
		return "", fmt.Errorf(worktreeResolveErrorTemplateConstant, directoryError)
	}

	worktreePath := deriveWorktreePath(currentDirectory, label)
	if creationError := manager.repository.CreateWorktree(executionContext, currentDirectory, worktreePath, worktreeInitialReferenceConstant); creationError != nil {
		return "", creationError
	}

	if enterError := os.Chdir(worktreePath); enterError != nil {
		removalError := manager.repository.RemoveWorktree(executionContext, currentDirectory, worktreePath)
		return "", errors.Join(fmt.Errorf(worktreeEnterErrorTemplateConstant, enterError), removalError)
	}

	manager.originalDirectory = currentDirectory
	manager.worktreePath = worktreePath
	manager.prepared = true
	manager.logger.Debug(logMessageWorktreePreparedConstant, zap.String(logFieldWorktreePathConstant, worktreePath))
	return worktreePath, nil
}

// Path reports the live worktree path, empty when none is prepared.
func (manager *WorktreeManager) Path() string {
	if !manager.prepared {
		return ""
	}
	return manager.worktreePath
}

// Teardown restores the original directory and removes the worktree along with
// its backing metadata. It is idempotent and safe to defer: calling it without
// a prepared worktree does nothing.
func (manager *WorktreeManager) Teardown(executionContext context.Context) error {
	if !manager.prepared {
		return nil
	}

	if restoreError := os.Chdir(manager.originalDirectory); restoreError != nil {
		return fmt.Errorf(worktreeRestoreErrorTemplateConstant, restoreError)
	}

	removalError := manager.repository.RemoveWorktree(executionContext, manager.originalDirectory, manager.worktreePath)
	if removalError != nil {
		return removalError
	}

	manager.logger.Debug(logMessageWorktreeRemovedConstant, zap.String(logFieldWorktreePathConstant, manager.worktreePath))
	manager.prepared = false
	manager.worktreePath = ""
	manager.originalDirectory = ""
	return nil
}

func deriveWorktreePath(repositoryDirectory string, label string) string {
	parentDirectory := filepath.Dir(repositoryDirectory)
	repositoryName := filepath.Base(repositoryDirectory)
	directoryName := fmt.Sprintf(worktreeDirectoryNameTemplateConstant, repositoryName, sanitizeWorktreeLabel(label), os.Getpid())
	return filepath.Join(parentDirectory, directoryName)
}

func sanitizeWorktreeLabel(label string) string {
	sanitizedLabel := strings.TrimSpace(label)
	sanitizedLabel = strings.ReplaceAll(sanitizedLabel, string(filepath.Separator), worktreeLabelSegmentSeparatorConstant)
	sanitizedLabel = strings.ReplaceAll(sanitizedLabel, "/", worktreeLabelSegmentSeparatorConstant)
	if len(sanitizedLabel) == 0 {
		sanitizedLabel = worktreeLabelSegmentSeparatorConstant
	}
	return sanitizedLabel
}
