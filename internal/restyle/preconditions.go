package restyle

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/restyle/internal/execshell"
)

const (
	minimumGitMajorVersionConstant            = 2
	minimumGitMinorVersionConstant            = 17
	supportedFormatterVersionConstant         = "0.75.1"
	formatterVersionFlagConstant              = "--version"
	preconditionErrorTemplateConstant         = "%s: %s"
	insideWorkTreeRequirementConstant         = "run inside a Git work tree"
	gitVersionRequirementConstant             = "git 2.17.0 or newer with worktree remove support"
	formatterVersionRequirementConstant       = "uncrustify " + supportedFormatterVersionConstant
	notInsideWorkTreeDetailConstant           = "the working directory is not inside a Git work tree"
	gitVersionUnparsableDetailTemplate        = "unable to parse git version banner %q"
	gitVersionTooOldDetailTemplateConstant    = "installed git reports %q"
	formatterVersionMismatchDetailTemplate    = "installed formatter reports %q"
	gitVersionComponentSeparatorConstant      = "."
	gitVersionBannerMinimumFieldCountConstant = 3
	gitVersionBannerVersionFieldIndexConstant = 2
	logMessagePreconditionsSatisfiedConstant  = "Environment preconditions satisfied"
	logFieldGitVersionConstant                = "git_version"
	logFieldFormatterVersionConstant          = "formatter_version"
)

// PreconditionError reports an environment requirement that failed before any mutation.
type PreconditionError struct {
	Requirement string
	Detail      string
}

// Error describes the failed requirement.
func (preconditionError PreconditionError) Error() string {
	return fmt.Sprintf(preconditionErrorTemplateConstant, preconditionError.Requirement, preconditionError.Detail)
}

// EnvironmentChecker verifies tooling requirements before a rewrite run mutates anything.
type EnvironmentChecker struct {
	logger     *zap.Logger
	repository RepositoryOperations
	formatter  FormatterExecutor
}

// NewEnvironmentChecker constructs an EnvironmentChecker over the supplied collaborators.
func NewEnvironmentChecker(logger *zap.Logger, repository RepositoryOperations, formatter FormatterExecutor) *EnvironmentChecker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnvironmentChecker{logger: logger, repository: repository, formatter: formatter}
}

// Check validates the working directory, the git version, and the formatter
// version. Each failure is reported as a PreconditionError.
func (checker *EnvironmentChecker) Check(executionContext context.Context, workingDirectory string) error {
	insideWorkTree, workTreeError := checker.repository.IsInsideWorkTree(executionContext, workingDirectory)
	if workTreeError != nil {
		return workTreeError
	}
	if !insideWorkTree {
		return PreconditionError{Requirement: insideWorkTreeRequirementConstant, Detail: notInsideWorkTreeDetailConstant}
	}

	gitVersionBanner, gitVersionError := checker.repository.GitVersion(executionContext, workingDirectory)
	if gitVersionError != nil {
		return gitVersionError
	}
	majorVersion, minorVersion, parseError := parseGitVersionBanner(gitVersionBanner)
	if parseError != nil {
		return PreconditionError{Requirement: gitVersionRequirementConstant, Detail: fmt.Sprintf(gitVersionUnparsableDetailTemplate, gitVersionBanner)}
	}
	if majorVersion < minimumGitMajorVersionConstant || (majorVersion == minimumGitMajorVersionConstant && minorVersion < minimumGitMinorVersionConstant) {
		return PreconditionError{Requirement: gitVersionRequirementConstant, Detail: fmt.Sprintf(gitVersionTooOldDetailTemplateConstant, gitVersionBanner)}
	}

	formatterResult, formatterError := checker.formatter.ExecuteFormatter(executionContext, execshell.CommandDetails{
		Arguments:        []string{formatterVersionFlagConstant},
		WorkingDirectory: workingDirectory,
	})
	if formatterError != nil {
		return formatterError
	}
	formatterVersionBanner := strings.TrimSpace(formatterResult.StandardOutput)
	if extractFormatterVersionToken(formatterVersionBanner) != supportedFormatterVersionConstant {
		return PreconditionError{Requirement: formatterVersionRequirementConstant, Detail: fmt.Sprintf(formatterVersionMismatchDetailTemplate, formatterVersionBanner)}
	}

	checker.logger.Debug(
		logMessagePreconditionsSatisfiedConstant,
		zap.String(logFieldGitVersionConstant, gitVersionBanner),
		zap.String(logFieldFormatterVersionConstant, formatterVersionBanner),
	)
	return nil
}

// extractFormatterVersionToken returns the first dotted numeric token in the
// banner. Comparing the whole token keeps version supersets such as 0.75.10
// from satisfying the 0.75.1 requirement.
func extractFormatterVersionToken(banner string) string {
	tokenBuilder := strings.Builder{}
	for _, bannerCharacter := range banner {
		if (bannerCharacter >= '0' && bannerCharacter <= '9') || bannerCharacter == '.' {
			tokenBuilder.WriteRune(bannerCharacter)
			continue
		}
		versionToken := strings.Trim(tokenBuilder.String(), gitVersionComponentSeparatorConstant)
		if strings.Contains(versionToken, gitVersionComponentSeparatorConstant) {
			return versionToken
		}
		tokenBuilder.Reset()
	}
	return strings.Trim(tokenBuilder.String(), gitVersionComponentSeparatorConstant)
}

func parseGitVersionBanner(banner string) (int, int, error) {
	bannerFields := strings.Fields(banner)
	if len(bannerFields) < gitVersionBannerMinimumFieldCountConstant {
		return 0, 0, fmt.Errorf(gitVersionUnparsableDetailTemplate, banner)
	}

	versionComponents := strings.Split(bannerFields[gitVersionBannerVersionFieldIndexConstant], gitVersionComponentSeparatorConstant)
	if len(versionComponents) < 2 {
		return 0, 0, fmt.Errorf(gitVersionUnparsableDetailTemplate, banner)
	}

	majorVersion, majorError := strconv.Atoi(versionComponents[0])
	if majorError != nil {
		return 0, 0, fmt.Errorf(gitVersionUnparsableDetailTemplate, banner)
	}
	minorVersion, minorError := strconv.Atoi(versionComponents[1])
	if minorError != nil {
		return 0, 0, fmt.Errorf(gitVersionUnparsableDetailTemplate, banner)
	}
	return majorVersion, minorVersion, nil
}
