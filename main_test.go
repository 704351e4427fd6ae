package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/restyle/internal/execshell"
	"github.com/temirov/restyle/internal/gitrepo"
	"github.com/temirov/restyle/internal/restyle"
)

const (
	exitCodeSuccessCaseNameConstant             = "success_maps_to_zero"
	exitCodePreconditionCaseNameConstant        = "precondition_failure_maps_to_two"
	exitCodeWrappedPreconditionCaseNameConstant = "wrapped_precondition_failure_maps_to_two"
	exitCodeCommandFailureCaseNameConstant      = "command_failure_maps_to_one"
	exitCodeLookupFailureCaseNameConstant       = "lookup_failure_maps_to_one"
	wrappedFailureTemplateConstant              = "rewrite failed: %w"
)

func TestExitCodeForError(testInstance *testing.T) {
	preconditionFailure := restyle.PreconditionError{Requirement: "uncrustify 0.75.1", Detail: "installed formatter reports \"Uncrustify-0.75.10\""}

	testCases := []struct {
		name             string
		executionError   error
		expectedExitCode int
	}{
		{
			name:             exitCodeSuccessCaseNameConstant,
			executionError:   nil,
			expectedExitCode: 0,
		},
		{
			name:             exitCodePreconditionCaseNameConstant,
			executionError:   preconditionFailure,
			expectedExitCode: 2,
		},
		{
			name:             exitCodeWrappedPreconditionCaseNameConstant,
			executionError:   fmt.Errorf(wrappedFailureTemplateConstant, preconditionFailure),
			expectedExitCode: 2,
		},
		{
			name:             exitCodeCommandFailureCaseNameConstant,
			executionError:   execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 1, StandardError: "conflict"}},
			expectedExitCode: 1,
		},
		{
			name:             exitCodeLookupFailureCaseNameConstant,
			executionError:   gitrepo.LookupError{Subject: "development", Detail: "no commit message contains the sentinel phrase"},
			expectedExitCode: 1,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedExitCode, exitCodeForError(testCase.executionError))
		})
	}
}
