package execshell

// CommandEventObserver is notified as the executor runs git and uncrustify
// processes, letting verbose modes narrate the rewrite without touching the
// structured log stream.
type CommandEventObserver interface {
	// CommandStarted fires immediately before the process is launched.
	CommandStarted(command ShellCommand)
	// CommandCompleted fires once the process exited, regardless of exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the process could not run at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// noopCommandEventObserver stands in when no observer is registered.
type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}
