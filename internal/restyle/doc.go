// Package restyle implements the branch rewrite workflow that carries a
// feature branch across a code style switch point.
//
// It exposes Service for orchestrating the two-phase rebase-and-restyle run,
// WorktreeManager for isolating the rewrite in a disposable worktree,
// RestyleEngine for replaying and reformatting individual commits, and
// CommandBuilder for assembling the CLI entry point.
package restyle
