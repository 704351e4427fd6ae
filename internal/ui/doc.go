// Package ui renders command lifecycle events for human operators.
//
// ConsoleCommandEventLogger implements execshell.CommandEventObserver and
// narrates each git and formatter invocation through a console-formatted zap
// logger when verbose mode is active.
package ui
