package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizePaths()
	if err := c.normalizeLogDir(); err != nil {
		return err
	}
	c.normalizeFFmpeg()
	c.normalizeLogging()
	return nil
}

// Output roots stay relative so they resolve against the batch working
// directory rather than the process directory at load time.
func (c *Config) normalizePaths() {
	c.Paths.PortraitDir = cleanRoot(c.Paths.PortraitDir, defaultPortraitDir)
	c.Paths.RotateDir = cleanRoot(c.Paths.RotateDir, defaultRotateDir)
}

func cleanRoot(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if strings.HasPrefix(value, "~") {
		if expanded, err := expandPath(value); err == nil {
			return expanded
		}
	}
	return filepath.Clean(value)
}

func (c *Config) normalizeLogDir() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = ""
		return nil
	}
	var err error
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)
	if c.FFmpeg.FFprobeBinary == "" {
		c.FFmpeg.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("CLIPSPLIT_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
