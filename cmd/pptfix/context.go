package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pptfix/internal/config"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// applyOverrides copies explicitly-set command-line flags onto the loaded
// configuration, then re-normalizes and re-validates the result. Flags that
// were not passed leave the file/default values untouched.
func applyOverrides(flags *pflag.FlagSet, cfg *config.Config, o *batchOverrides) error {
	if flags.Changed("input") {
		cfg.Paths.InputDir = o.inputDir
	}
	if flags.Changed("output") {
		cfg.Paths.OutputDir = o.outputDir
	}
	if flags.Changed("crf") {
		cfg.Encoding.CRF = o.crf
	}
	if flags.Changed("audio-bitrate") {
		cfg.Encoding.AudioBitrate = o.audioBitrate
	}
	if flags.Changed("max-width") {
		cfg.Encoding.MaxWidth = o.maxWidth
	}
	if flags.Changed("max-height") {
		cfg.Encoding.MaxHeight = o.maxHeight
	}
	if flags.Changed("recursive") {
		cfg.Encoding.Recursive = o.recursive
	}
	if flags.Changed("overwrite") {
		cfg.Encoding.OverwriteExisting = o.overwrite
	}

	if err := cfg.Normalize(); err != nil {
		return err
	}
	return cfg.Validate()
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
