package config

const (
	defaultInputDir     = "data/input"
	defaultOutputDir    = "data/output"
	defaultCRF          = 22
	defaultAudioBitrate = "160k"
	defaultMaxWidth     = 1920
	defaultMaxHeight    = 1080
	defaultVideoProfile = "high"
	defaultVideoLevel   = "4.1"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"

	// CRF bounds mirror the useful x264 quality range for presentation video.
	MinCRF = 18
	MaxCRF = 35
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
		},
		Encoding: Encoding{
			CRF:          defaultCRF,
			AudioBitrate: defaultAudioBitrate,
			MaxWidth:     defaultMaxWidth,
			MaxHeight:    defaultMaxHeight,
			VideoProfile: defaultVideoProfile,
			VideoLevel:   defaultVideoLevel,
		},
		Validation: Validation{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
