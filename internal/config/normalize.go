package config

import (
	"fmt"
	"strings"
)

// Normalize expands paths and fills defaulted fields. It is called by Load and
// again by the CLI after flag overrides are applied.
func (c *Config) Normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEncoding()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeEncoding() {
	c.Encoding.AudioBitrate = strings.ToLower(strings.TrimSpace(c.Encoding.AudioBitrate))
	if c.Encoding.AudioBitrate == "" {
		c.Encoding.AudioBitrate = defaultAudioBitrate
	}
	c.Encoding.VideoProfile = strings.ToLower(strings.TrimSpace(c.Encoding.VideoProfile))
	if c.Encoding.VideoProfile == "" {
		c.Encoding.VideoProfile = defaultVideoProfile
	}
	c.Encoding.VideoLevel = strings.TrimSpace(c.Encoding.VideoLevel)
	if c.Encoding.VideoLevel == "" {
		c.Encoding.VideoLevel = defaultVideoLevel
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
