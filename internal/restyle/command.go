package restyle

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/restyle/internal/execshell"
	"github.com/temirov/restyle/internal/gitrepo"
	"github.com/temirov/restyle/internal/ui"
	"github.com/temirov/restyle/internal/utils"
)

const (
	commandUseConstant              = "restyle <existing_branch> <target_branch>"
	commandShortDescriptionConstant = "Rewrite a branch across the code style switch point"
	commandLongDescriptionConstant  = "restyle locates the code style switch point on the target branch, rebases the existing branch onto the commit preceding it, then replays every remaining commit on top of the switch point while reformatting the source files each commit touches."
	commandArgumentCountConstant    = 2
	existingBranchArgumentIndex     = 0
	targetBranchArgumentIndex       = 1
	verboseFlagNameConstant         = "verbose"
	verboseFlagShorthandConstant    = "v"
	verboseFlagUsageConstant        = "Narrate each git and formatter invocation"
)

// RewriteExecutor performs the branch rewrite workflow.
type RewriteExecutor interface {
	Execute(executionContext context.Context, options RewriteOptions) (RewriteResult, error)
}

// CommandExecutor runs git and formatter processes on behalf of the rewrite command.
type CommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteFormatter(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ServiceProvider constructs a rewrite executor from dependencies.
type ServiceProvider func(dependencies ServiceDependencies) (RewriteExecutor, error)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

type commandOptions struct {
	existingBranch      string
	targetBranch        string
	sentinelPhrase      string
	formatterConfigFile string
	upstreamRepository  string
	debugLoggingEnabled bool
	verboseNarration    bool
}

// CommandBuilder assembles the restyle Cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     CommandExecutor
	ServiceProvider              ServiceProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the restyle command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ExactArgs(commandArgumentCountConstant),
		RunE:          builder.runRewrite,
	}

	command.Flags().BoolP(verboseFlagNameConstant, verboseFlagShorthandConstant, false, verboseFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) runRewrite(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger(options.debugLoggingEnabled)

	executor, executorError := builder.resolveExecutor(logger, options.verboseNarration)
	if executorError != nil {
		return executorError
	}

	repositoryClient, clientError := gitrepo.NewRepositoryClient(executor)
	if clientError != nil {
		return clientError
	}

	pathClassifier, classifierError := NewPathClassifier()
	if classifierError != nil {
		return classifierError
	}

	service, serviceError := builder.resolveService(ServiceDependencies{
		Logger:     logger,
		Repository: repositoryClient,
		Formatter:  executor,
		Classifier: pathClassifier,
	})
	if serviceError != nil {
		return serviceError
	}

	rewriteOptions := RewriteOptions{
		ExistingBranch:      options.existingBranch,
		TargetBranch:        options.targetBranch,
		SentinelPhrase:      options.sentinelPhrase,
		FormatterConfigFile: options.formatterConfigFile,
		UpstreamRepository:  options.upstreamRepository,
		EnableDebugLogging:  options.debugLoggingEnabled,
	}

	_, rewriteError := service.Execute(command.Context(), rewriteOptions)
	return rewriteError
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (commandOptions, error) {
	configuration := builder.resolveConfiguration()

	debugEnabled := configuration.EnableDebugLogging
	if command != nil {
		contextAccessor := utils.NewCommandContextAccessor()
		if logLevel, available := contextAccessor.LogLevel(command.Context()); available {
			if strings.EqualFold(logLevel, string(utils.LogLevelDebug)) {
				debugEnabled = true
			}
		}
	}

	verboseNarration := false
	if command != nil {
		flagValue, _ := command.Flags().GetBool(verboseFlagNameConstant)
		verboseNarration = flagValue
	}
	if verboseNarration {
		debugEnabled = true
	}

	return commandOptions{
		existingBranch:      strings.TrimSpace(arguments[existingBranchArgumentIndex]),
		targetBranch:        strings.TrimSpace(arguments[targetBranchArgumentIndex]),
		sentinelPhrase:      configuration.SentinelPhrase,
		formatterConfigFile: configuration.FormatterConfigFile,
		upstreamRepository:  configuration.UpstreamRepository,
		debugLoggingEnabled: debugEnabled,
		verboseNarration:    verboseNarration,
	}, nil
}

func (builder *CommandBuilder) resolveLogger(enableDebug bool) *zap.Logger {
	var logger *zap.Logger
	if builder.LoggerProvider != nil {
		logger = builder.LoggerProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if enableDebug {
		logger = logger.WithOptions(zap.IncreaseLevel(zapcore.DebugLevel))
	}
	return logger
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger, verboseNarration bool) (CommandExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner)
	if creationError != nil {
		return nil, creationError
	}

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	if verboseNarration && humanReadableLogging {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}

	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveService(dependencies ServiceDependencies) (RewriteExecutor, error) {
	if builder.ServiceProvider != nil {
		return builder.ServiceProvider(dependencies)
	}
	return NewService(dependencies)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}

	provided := builder.ConfigurationProvider()
	return provided.Sanitize()
}
