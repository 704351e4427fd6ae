package restyle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/restyle/internal/restyle"
)

const (
	testOutsideWorkTreePreconditionCaseName   = "outside_work_tree"
	testOldGitVersionPreconditionCaseName     = "git_version_too_old"
	testUnparsableGitBannerPreconditionCase   = "git_banner_unparsable"
	testWrongFormatterVersionPreconditionCase = "formatter_version_unsupported"
	testFormatterVersionSupersetCaseName      = "formatter_version_superset_rejected"
	testSatisfiedPreconditionCaseNameConstant = "all_preconditions_satisfied"
	testVendorDecoratedGitBannerCaseName      = "vendor_decorated_git_banner"
)

func TestEnvironmentCheckerCheck(testInstance *testing.T) {
	testCases := []struct {
		name             string
		insideWorkTree   bool
		gitVersionBanner string
		formatterBanner  string
		expectFailure    bool
	}{
		{
			name:             testOutsideWorkTreePreconditionCaseName,
			insideWorkTree:   false,
			gitVersionBanner: "git version 2.39.2",
			formatterBanner:  "Uncrustify-0.75.1",
			expectFailure:    true,
		},
		{
			name:             testOldGitVersionPreconditionCaseName,
			insideWorkTree:   true,
			gitVersionBanner: "git version 2.16.6",
			formatterBanner:  "Uncrustify-0.75.1",
			expectFailure:    true,
		},
		{
			name:             testUnparsableGitBannerPreconditionCase,
			insideWorkTree:   true,
			gitVersionBanner: "unexpected banner",
			formatterBanner:  "Uncrustify-0.75.1",
			expectFailure:    true,
		},
		{
			name:             testWrongFormatterVersionPreconditionCase,
			insideWorkTree:   true,
			gitVersionBanner: "git version 2.39.2",
			formatterBanner:  "Uncrustify-0.72.0",
			expectFailure:    true,
		},
		{
			name:             testFormatterVersionSupersetCaseName,
			insideWorkTree:   true,
			gitVersionBanner: "git version 2.39.2",
			formatterBanner:  "Uncrustify-0.75.10",
			expectFailure:    true,
		},
		{
			name:             testSatisfiedPreconditionCaseNameConstant,
			insideWorkTree:   true,
			gitVersionBanner: "git version 2.17.0",
			formatterBanner:  "Uncrustify-0.75.1",
			expectFailure:    false,
		},
		{
			name:             testVendorDecoratedGitBannerCaseName,
			insideWorkTree:   true,
			gitVersionBanner: "git version 2.39.2 (Apple Git-145)",
			formatterBanner:  "uncrustify 0.75.1",
			expectFailure:    false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			repository := newFakeRepository()
			repository.insideWorkTree = testCase.insideWorkTree
			repository.gitVersionBanner = testCase.gitVersionBanner

			formatter := newFakeFormatter()
			formatter.versionBanner = testCase.formatterBanner

			checker := restyle.NewEnvironmentChecker(zap.NewNop(), repository, formatter)
			checkError := checker.Check(context.Background(), "")

			if testCase.expectFailure {
				require.Error(testInstance, checkError)
				preconditionFailure := restyle.PreconditionError{}
				require.ErrorAs(testInstance, checkError, &preconditionFailure)
			} else {
				require.NoError(testInstance, checkError)
			}
		})
	}
}
