package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if err := validateRoot("paths.portrait_dir", c.Paths.PortraitDir); err != nil {
		return err
	}
	if err := validateRoot("paths.rotate_dir", c.Paths.RotateDir); err != nil {
		return err
	}
	if filepath.Clean(c.Paths.PortraitDir) == filepath.Clean(c.Paths.RotateDir) {
		return errors.New("paths.portrait_dir and paths.rotate_dir must differ")
	}
	return nil
}

// Output roots are created single-level, so a relative root must be one
// path segment. Absolute roots only need an existing parent at run time.
func validateRoot(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s must be set", key)
	}
	if filepath.IsAbs(value) {
		return nil
	}
	if value == "." || value == ".." || strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("%s must be a single directory name, got %q", key, value)
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	if c.FFmpeg.Binary == "" {
		return errors.New("ffmpeg.binary must be set")
	}
	if c.FFmpeg.Probe && c.FFmpeg.FFprobeBinary == "" {
		return errors.New("ffmpeg.ffprobe_binary must be set when ffmpeg.probe is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn, or error)", c.Logging.Level)
	}
	return nil
}
