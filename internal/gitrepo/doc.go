// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryClient for resolving revisions, enumerating commit
// ranges, and driving worktree, rebase, and cherry-pick operations, along with
// supporting utilities consumed by the branch rewrite service.
package gitrepo
