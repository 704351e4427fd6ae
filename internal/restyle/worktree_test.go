package restyle_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/restyle/internal/restyle"
)

const (
	testRepositoryDirectoryNameConstant = "project"
	testWorktreeLabelConstant           = "feature/login"
)

func enterTemporaryRepository(testInstance *testing.T) string {
	repositoryDirectory := filepath.Join(testInstance.TempDir(), testRepositoryDirectoryNameConstant)
	require.NoError(testInstance, os.MkdirAll(repositoryDirectory, 0o755))

	originalDirectory, directoryError := os.Getwd()
	require.NoError(testInstance, directoryError)
	require.NoError(testInstance, os.Chdir(repositoryDirectory))
	testInstance.Cleanup(func() {
		require.NoError(testInstance, os.Chdir(originalDirectory))
	})
	return repositoryDirectory
}

func TestWorktreeManagerPrepareDerivesSiblingPathAndEntersIt(testInstance *testing.T) {
	repositoryDirectory := enterTemporaryRepository(testInstance)
	repository := newFakeRepository()
	manager := restyle.NewWorktreeManager(zap.NewNop(), repository)

	worktreePath, prepareError := manager.Prepare(context.Background(), testWorktreeLabelConstant)
	require.NoError(testInstance, prepareError)

	expectedDirectoryName := fmt.Sprintf("%s-feature-login-%d", testRepositoryDirectoryNameConstant, os.Getpid())
	require.Equal(testInstance, filepath.Join(filepath.Dir(repositoryDirectory), expectedDirectoryName), worktreePath)
	require.Equal(testInstance, worktreePath, manager.Path())

	currentDirectory, directoryError := os.Getwd()
	require.NoError(testInstance, directoryError)
	resolvedCurrent, resolveError := filepath.EvalSymlinks(currentDirectory)
	require.NoError(testInstance, resolveError)
	resolvedWorktree, worktreeResolveError := filepath.EvalSymlinks(worktreePath)
	require.NoError(testInstance, worktreeResolveError)
	require.Equal(testInstance, resolvedWorktree, resolvedCurrent)

	require.NoError(testInstance, manager.Teardown(context.Background()))
}

func TestWorktreeManagerPrepareRejectsSecondWorktree(testInstance *testing.T) {
	enterTemporaryRepository(testInstance)
	repository := newFakeRepository()
	manager := restyle.NewWorktreeManager(zap.NewNop(), repository)

	_, firstPrepareError := manager.Prepare(context.Background(), testWorktreeLabelConstant)
	require.NoError(testInstance, firstPrepareError)

	_, secondPrepareError := manager.Prepare(context.Background(), testWorktreeLabelConstant)
	require.ErrorIs(testInstance, secondPrepareError, restyle.ErrWorktreeAlreadyPrepared)

	require.NoError(testInstance, manager.Teardown(context.Background()))
}

func TestWorktreeManagerTeardownIsIdempotent(testInstance *testing.T) {
	repositoryDirectory := enterTemporaryRepository(testInstance)
	repository := newFakeRepository()
	manager := restyle.NewWorktreeManager(zap.NewNop(), repository)

	require.NoError(testInstance, manager.Teardown(context.Background()))
	require.Empty(testInstance, repository.operationsWithPrefix("worktree-remove"))

	worktreePath, prepareError := manager.Prepare(context.Background(), testWorktreeLabelConstant)
	require.NoError(testInstance, prepareError)

	require.NoError(testInstance, manager.Teardown(context.Background()))
	require.NoDirExists(testInstance, worktreePath)
	require.Empty(testInstance, manager.Path())

	currentDirectory, directoryError := os.Getwd()
	require.NoError(testInstance, directoryError)
	resolvedCurrent, resolveError := filepath.EvalSymlinks(currentDirectory)
	require.NoError(testInstance, resolveError)
	resolvedRepository, repositoryResolveError := filepath.EvalSymlinks(repositoryDirectory)
	require.NoError(testInstance, repositoryResolveError)
	require.Equal(testInstance, resolvedRepository, resolvedCurrent)

	require.NoError(testInstance, manager.Teardown(context.Background()))
	require.Len(testInstance, repository.operationsWithPrefix("worktree-remove"), 1)
}
