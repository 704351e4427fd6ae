package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitRevParseSubcommandNameConstant   = "rev-parse"
	gitRevListSubcommandNameConstant    = "rev-list"
	gitCheckoutSubcommandNameConstant   = "checkout"
	gitWorktreeSubcommandNameConstant   = "worktree"
	gitRebaseSubcommandNameConstant     = "rebase"
	gitCherryPickSubcommandNameConstant = "cherry-pick"
	gitCommitSubcommandNameConstant     = "commit"
	gitShowSubcommandNameConstant       = "show"
	gitRemoteSubcommandNameConstant     = "remote"
	gitVersionSubcommandNameConstant    = "version"
	gitWorkTreeFlagConstant             = "--is-inside-work-tree"
	gitDetachFlagConstant               = "--detach"
	gitGrepFlagConstant                 = "--grep"
	gitAmendFlagConstant                = "--amend"
	gitWorktreeAddSubcommandConstant    = "add"
	gitWorktreeRemoveSubcommandConstant = "remove"
	uncrustifyVersionFlagConstant       = "--version"
	uncrustifyConfigFlagConstant        = "-c"
)

const (
	gitWorkTreeStartTemplateConstant                 = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant               = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant               = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplateConstant      = "Could not analyze %s: %s"
	gitRevisionStartTemplateConstant                 = "Resolving %s in %s"
	gitRevisionSuccessTemplateConstant               = "%s in %s resolved to %s"
	gitRevisionEmptySuccessTemplateConstant          = "%s in %s did not resolve to a revision"
	gitRevisionFailureTemplateConstant               = "Failed to resolve %s in %s (exit code %d%s)"
	gitRevisionExecutionFailureTemplateConstant      = "Unable to resolve %s in %s: %s"
	gitRevListStartTemplateConstant                  = "Enumerating commits for %s in %s"
	gitRevListSuccessTemplateConstant                = "Enumerated %d commits for %s in %s"
	gitRevListFailureTemplateConstant                = "Failed to enumerate commits for %s in %s (exit code %d%s)"
	gitRevListExecutionFailureTemplateConstant       = "Unable to enumerate commits for %s in %s: %s"
	gitDetachStartTemplateConstant                   = "Detaching %s at %s"
	gitDetachSuccessTemplateConstant                 = "%s now detached at %s"
	gitDetachFailureTemplateConstant                 = "Failed to detach %s at %s (exit code %d%s)"
	gitDetachExecutionFailureTemplateConstant        = "Unable to detach %s at %s: %s"
	worktreeAddStartTemplateConstant                 = "Creating worktree at %s"
	worktreeAddSuccessTemplateConstant               = "Created worktree at %s"
	worktreeAddFailureTemplateConstant               = "Failed to create worktree at %s (exit code %d%s)"
	worktreeAddExecutionFailureTemplateConstant      = "Unable to create worktree at %s: %s"
	worktreeRemoveStartTemplateConstant              = "Removing worktree at %s"
	worktreeRemoveSuccessTemplateConstant            = "Removed worktree at %s"
	worktreeRemoveFailureTemplateConstant            = "Failed to remove worktree at %s (exit code %d%s)"
	worktreeRemoveExecutionFailureTemplateConstant   = "Unable to remove worktree at %s: %s"
	rebaseStartTemplateConstant                      = "Rebasing %s onto %s"
	rebaseSuccessTemplateConstant                    = "Rebased %s onto %s"
	rebaseFailureTemplateConstant                    = "Failed to rebase %s onto %s (exit code %d%s)"
	rebaseExecutionFailureTemplateConstant           = "Unable to rebase %s onto %s: %s"
	cherryPickStartTemplateConstant                  = "Replaying commit %s in %s"
	cherryPickSuccessTemplateConstant                = "Replayed commit %s in %s"
	cherryPickFailureTemplateConstant                = "Failed to replay commit %s in %s (exit code %d%s)"
	cherryPickExecutionFailureTemplateConstant       = "Unable to replay commit %s in %s: %s"
	amendStartTemplateConstant                       = "Folding restyled files into HEAD in %s"
	amendSuccessTemplateConstant                     = "Folded restyled files into HEAD in %s"
	amendFailureTemplateConstant                     = "Failed to fold restyled files into HEAD in %s (exit code %d%s)"
	amendExecutionFailureTemplateConstant            = "Unable to fold restyled files into HEAD in %s: %s"
	showStartTemplateConstant                        = "Collecting changed paths for %s in %s"
	showSuccessTemplateConstant                      = "Collected changed paths for %s in %s"
	showFailureTemplateConstant                      = "Failed to collect changed paths for %s in %s (exit code %d%s)"
	showExecutionFailureTemplateConstant             = "Unable to collect changed paths for %s in %s: %s"
	remoteListStartTemplateConstant                  = "Listing remotes in %s"
	remoteListSuccessTemplateConstant                = "Listed remotes in %s"
	remoteListFailureTemplateConstant                = "Failed to list remotes in %s (exit code %d%s)"
	remoteListExecutionFailureTemplateConstant       = "Unable to list remotes in %s: %s"
	gitVersionStartTemplateConstant                  = "Checking git version"
	gitVersionSuccessTemplateConstant                = "Git reported %s"
	gitVersionFailureTemplateConstant                = "Failed to check git version (exit code %d%s)"
	gitVersionExecutionFailureTemplateConstant       = "Unable to check git version: %s"
	formatterVersionStartTemplateConstant            = "Checking uncrustify version"
	formatterVersionSuccessTemplateConstant          = "Uncrustify reported %s"
	formatterVersionFailureTemplateConstant          = "Failed to check uncrustify version (exit code %d%s)"
	formatterVersionExecutionFailureTemplateConstant = "Unable to check uncrustify version: %s"
	formatterRunStartTemplateConstant                = "Restyling %d files in %s"
	formatterRunSuccessTemplateConstant              = "Restyled %d files in %s"
	formatterRunFailureTemplateConstant              = "Failed to restyle %d files in %s (exit code %d%s)"
	formatterRunExecutionFailureTemplateConstant     = "Unable to restyle %d files in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandUncrustify:
		return formatter.describeFormatterMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitRevListSubcommandNameConstant:
		return formatter.describeGitRevListMessage(command, result, failure, stage)
	case gitCheckoutSubcommandNameConstant:
		return formatter.describeGitCheckoutMessage(command, result, failure, stage)
	case gitWorktreeSubcommandNameConstant:
		return formatter.describeGitWorktreeMessage(command, result, failure, stage)
	case gitRebaseSubcommandNameConstant:
		return formatter.describeGitRebaseMessage(command, result, failure, stage)
	case gitCherryPickSubcommandNameConstant:
		return formatter.describeGitCherryPickMessage(command, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage)
	case gitShowSubcommandNameConstant:
		return formatter.describeGitShowMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitVersionSubcommandNameConstant:
		return formatter.describeGitVersionMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitWorkTreeFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorkTreeStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitWorkTreeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitWorkTreeExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	reference := formatter.lastNonFlagArgument(arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRevisionStartTemplateConstant, reference, workingDirectory)
	case messageStageSuccess:
		trimmed := strings.TrimSpace(result.StandardOutput)
		if len(trimmed) == 0 {
			return fmt.Sprintf(gitRevisionEmptySuccessTemplateConstant, reference, workingDirectory)
		}
		return fmt.Sprintf(gitRevisionSuccessTemplateConstant, reference, workingDirectory, trimmed)
	case messageStageFailure:
		return fmt.Sprintf(gitRevisionFailureTemplateConstant, reference, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRevisionExecutionFailureTemplateConstant, reference, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevListMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	rangeLabel := formatter.lastNonFlagArgument(command.Details.Arguments)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRevListStartTemplateConstant, rangeLabel, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitRevListSuccessTemplateConstant, countOutputLines(result.StandardOutput), rangeLabel, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitRevListFailureTemplateConstant, rangeLabel, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRevListExecutionFailureTemplateConstant, rangeLabel, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCheckoutMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if !containsArgument(arguments, gitDetachFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	revision := formatter.ensureValue(formatter.lastNonFlagArgument(arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitDetachStartTemplateConstant, workingDirectory, revision)
	case messageStageSuccess:
		return fmt.Sprintf(gitDetachSuccessTemplateConstant, workingDirectory, revision)
	case messageStageFailure:
		return fmt.Sprintf(gitDetachFailureTemplateConstant, workingDirectory, revision, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitDetachExecutionFailureTemplateConstant, workingDirectory, revision, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitWorktreeMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(arguments[1])
	worktreePath := formatter.ensureValue(formatter.firstNonFlagArgument(arguments[2:]))

	switch subcommand {
	case gitWorktreeAddSubcommandConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(worktreeAddStartTemplateConstant, worktreePath)
		case messageStageSuccess:
			return fmt.Sprintf(worktreeAddSuccessTemplateConstant, worktreePath)
		case messageStageFailure:
			return fmt.Sprintf(worktreeAddFailureTemplateConstant, worktreePath, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(worktreeAddExecutionFailureTemplateConstant, worktreePath, formatter.describeFailure(failure))
		}
	case gitWorktreeRemoveSubcommandConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(worktreeRemoveStartTemplateConstant, worktreePath)
		case messageStageSuccess:
			return fmt.Sprintf(worktreeRemoveSuccessTemplateConstant, worktreePath)
		case messageStageFailure:
			return fmt.Sprintf(worktreeRemoveFailureTemplateConstant, worktreePath, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(worktreeRemoveExecutionFailureTemplateConstant, worktreePath, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitRebaseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	baseRevision := formatter.ensureValue(formatter.lastNonFlagArgument(command.Details.Arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(rebaseStartTemplateConstant, workingDirectory, baseRevision)
	case messageStageSuccess:
		return fmt.Sprintf(rebaseSuccessTemplateConstant, workingDirectory, baseRevision)
	case messageStageFailure:
		return fmt.Sprintf(rebaseFailureTemplateConstant, workingDirectory, baseRevision, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(rebaseExecutionFailureTemplateConstant, workingDirectory, baseRevision, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCherryPickMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	revision := formatter.ensureValue(formatter.lastNonFlagArgument(command.Details.Arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(cherryPickStartTemplateConstant, revision, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(cherryPickSuccessTemplateConstant, revision, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(cherryPickFailureTemplateConstant, revision, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(cherryPickExecutionFailureTemplateConstant, revision, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, gitAmendFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(amendStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(amendSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(amendFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(amendExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitShowMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	revision := formatter.ensureValue(formatter.lastNonFlagArgument(command.Details.Arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(showStartTemplateConstant, revision, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(showSuccessTemplateConstant, revision, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(showFailureTemplateConstant, revision, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(showExecutionFailureTemplateConstant, revision, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(remoteListStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(remoteListSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(remoteListFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(remoteListExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitVersionMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return gitVersionStartTemplateConstant
	case messageStageSuccess:
		return fmt.Sprintf(gitVersionSuccessTemplateConstant, formatter.ensureValue(strings.TrimSpace(result.StandardOutput)))
	case messageStageFailure:
		return fmt.Sprintf(gitVersionFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitVersionExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeFormatterMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if containsArgument(arguments, uncrustifyVersionFlagConstant) {
		switch stage {
		case messageStageStart:
			return formatterVersionStartTemplateConstant
		case messageStageSuccess:
			return fmt.Sprintf(formatterVersionSuccessTemplateConstant, formatter.ensureValue(strings.TrimSpace(result.StandardOutput)))
		case messageStageFailure:
			return fmt.Sprintf(formatterVersionFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(formatterVersionExecutionFailureTemplateConstant, formatter.describeFailure(failure))
		}
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	fileCount := formatter.countFormatterTargets(arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(formatterRunStartTemplateConstant, fileCount, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(formatterRunSuccessTemplateConstant, fileCount, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(formatterRunFailureTemplateConstant, fileCount, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(formatterRunExecutionFailureTemplateConstant, fileCount, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) firstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) lastNonFlagArgument(arguments []string) string {
	for index := len(arguments) - 1; index >= 0; index-- {
		trimmed := strings.TrimSpace(arguments[index])
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		return trimmed
	}
	return fallbackUnknownValueLabelConstant
}

func (formatter CommandMessageFormatter) countFormatterTargets(arguments []string) int {
	targetCount := 0
	for index := 0; index < len(arguments); index++ {
		trimmed := strings.TrimSpace(arguments[index])
		if trimmed == uncrustifyConfigFlagConstant {
			index++
			continue
		}
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		targetCount++
	}
	return targetCount
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func countOutputLines(output string) int {
	trimmed := strings.TrimSpace(output)
	if len(trimmed) == 0 {
		return 0
	}
	return len(strings.Split(trimmed, "\n"))
}
