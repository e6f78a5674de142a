package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mixport/internal/config"
	"mixport/internal/logging"
	"mixport/internal/services"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	verbose      *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	looseOnce sync.Once
	loose     *config.Config
	looseErr  error
}

func newCommandContext(configFlag, logLevelFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		verbose:      verbose,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// ensureConfig loads and validates the configuration, including credentials.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// looseConfig loads the configuration without requiring credentials. It is
// used by commands annotated with skipConfigLoad that still read settings.
func (c *commandContext) looseConfig() (*config.Config, error) {
	c.looseOnce.Do(func() {
		cfg, _, _, err := config.LoadUnvalidated(c.configPath())
		if err == nil {
			err = cfg.ValidateSettings()
		}
		if err != nil {
			c.looseErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		c.loose = cfg
	})
	return c.loose, c.looseErr
}

func (c *commandContext) resolvedLogLevel(cfg *config.Config) string {
	if c.verbose != nil && *c.verbose {
		return "debug"
	}
	if c.logLevelFlag != nil {
		if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
			return level
		}
	}
	if cfg != nil && cfg.Logging.Level != "" {
		return cfg.Logging.Level
	}
	return "info"
}

// logger builds the command logger with the resolved level applied.
func (c *commandContext) logger(cfg *config.Config) (*slog.Logger, error) {
	if cfg == nil {
		return logging.New(logging.Options{Level: c.resolvedLogLevel(nil), Format: "console"})
	}
	tuned := *cfg
	tuned.Logging.Level = c.resolvedLogLevel(cfg)
	return logging.NewFromConfig(&tuned)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
