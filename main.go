package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/restyle/cmd/cli"
	"github.com/temirov/restyle/internal/restyle"
)

const (
	exitErrorTemplateConstant    = "%v\n"
	successExitCodeConstant      = 0
	runFailureExitCodeConstant   = 1
	preconditionExitCodeConstant = 2
)

// main executes the restyle command-line application.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	os.Exit(exitCodeForError(executionError))
}

// exitCodeForError maps a run outcome to the process exit code: 0 on success,
// 2 when an environment precondition failed before any mutation, 1 for every
// other failure.
func exitCodeForError(executionError error) int {
	if executionError == nil {
		return successExitCodeConstant
	}

	preconditionFailure := restyle.PreconditionError{}
	if errors.As(executionError, &preconditionFailure) {
		return preconditionExitCodeConstant
	}
	return runFailureExitCodeConstant
}
