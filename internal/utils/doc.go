// Package utils exposes reusable helpers consumed by the CLI layers.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging, plus the context
// accessor carrying CLI-wide settings into command handlers.
package utils
