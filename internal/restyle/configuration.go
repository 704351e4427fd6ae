package restyle

import (
	"fmt"
	"strings"
)

const (
	defaultSentinelPhraseConstant      = "Switch to the new code style"
	defaultFormatterConfigFileConstant = ".uncrustify.cfg"
	configurationKeyTemplateConstant   = "%s.%s"
	debugConfigurationKeyConstant      = "debug"
	sentinelConfigurationKeyConstant   = "sentinel_phrase"
	upstreamConfigurationKeyConstant   = "upstream_repository"
	formatterConfigurationKeyConstant  = "formatter_config"
)

// CommandConfiguration captures persisted configuration for the branch rewrite command.
type CommandConfiguration struct {
	EnableDebugLogging  bool   `mapstructure:"debug"`
	SentinelPhrase      string `mapstructure:"sentinel_phrase"`
	UpstreamRepository  string `mapstructure:"upstream_repository"`
	FormatterConfigFile string `mapstructure:"formatter_config"`
}

// DefaultCommandConfiguration returns baseline configuration values for the branch rewrite command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		EnableDebugLogging:  false,
		SentinelPhrase:      defaultSentinelPhraseConstant,
		UpstreamRepository:  "",
		FormatterConfigFile: defaultFormatterConfigFileConstant,
	}
}

// DefaultConfigurationValues exposes baseline configuration defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		fmt.Sprintf(configurationKeyTemplateConstant, configurationPrefix, debugConfigurationKeyConstant):     defaults.EnableDebugLogging,
		fmt.Sprintf(configurationKeyTemplateConstant, configurationPrefix, sentinelConfigurationKeyConstant):  defaults.SentinelPhrase,
		fmt.Sprintf(configurationKeyTemplateConstant, configurationPrefix, upstreamConfigurationKeyConstant):  defaults.UpstreamRepository,
		fmt.Sprintf(configurationKeyTemplateConstant, configurationPrefix, formatterConfigurationKeyConstant): defaults.FormatterConfigFile,
	}
}

// Sanitize trims configured values and restores defaults for required fields left empty.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.SentinelPhrase = strings.TrimSpace(configuration.SentinelPhrase)
	sanitized.UpstreamRepository = strings.TrimSpace(configuration.UpstreamRepository)
	sanitized.FormatterConfigFile = strings.TrimSpace(configuration.FormatterConfigFile)
	if len(sanitized.SentinelPhrase) == 0 {
		sanitized.SentinelPhrase = defaultSentinelPhraseConstant
	}
	if len(sanitized.FormatterConfigFile) == 0 {
		sanitized.FormatterConfigFile = defaultFormatterConfigFileConstant
	}
	return sanitized
}
