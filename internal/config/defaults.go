package config

const (
	defaultConfigPath    = "~/.config/clipsplit/config.toml"
	projectConfigName    = "clipsplit.toml"
	defaultPortraitDir   = "portrait_clips"
	defaultRotateDir     = "rotated_left"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			PortraitDir: defaultPortraitDir,
			RotateDir:   defaultRotateDir,
		},
		FFmpeg: FFmpeg{
			Binary:        defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			Probe:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
