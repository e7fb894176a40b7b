package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var bitratePattern = regexp.MustCompile(`^[0-9]+k$`)

var knownProfiles = map[string]struct{}{
	"baseline": {},
	"main":     {},
	"high":     {},
}

var knownLevels = map[string]struct{}{
	"3.0": {}, "3.1": {}, "3.2": {},
	"4.0": {}, "4.1": {}, "4.2": {},
	"5.0": {}, "5.1": {}, "5.2": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		return errors.New("paths.input_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	// A recursive scan over an output tree nested in the input tree would
	// re-discover its own results.
	if c.Encoding.Recursive && isSubPath(c.Paths.InputDir, c.Paths.OutputDir) {
		return fmt.Errorf("paths.output_dir %q must not be inside paths.input_dir when recursive scanning is enabled", c.Paths.OutputDir)
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if c.Encoding.CRF < MinCRF || c.Encoding.CRF > MaxCRF {
		return fmt.Errorf("encoding.crf must be between %d and %d", MinCRF, MaxCRF)
	}
	if !bitratePattern.MatchString(c.Encoding.AudioBitrate) {
		return fmt.Errorf("encoding.audio_bitrate %q must look like \"160k\"", c.Encoding.AudioBitrate)
	}
	if c.Encoding.MaxWidth <= 0 {
		return errors.New("encoding.max_width must be positive")
	}
	if c.Encoding.MaxHeight <= 0 {
		return errors.New("encoding.max_height must be positive")
	}
	if _, ok := knownProfiles[c.Encoding.VideoProfile]; !ok {
		return fmt.Errorf("encoding.video_profile %q must be one of baseline, main, high", c.Encoding.VideoProfile)
	}
	if _, ok := knownLevels[c.Encoding.VideoLevel]; !ok {
		return fmt.Errorf("encoding.video_level %q is not a known H.264 level", c.Encoding.VideoLevel)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}

func isSubPath(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}
