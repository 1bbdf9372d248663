package config

const (
	defaultOutputDir        = "~/.local/share/censorr/output"
	defaultStateDir         = "~/.local/share/censorr"
	defaultLogDir           = "~/.local/share/censorr/logs"
	defaultCatalogPath      = "~/.config/censorr/catalog.json"
	defaultMatchThreshold   = 85.0
	defaultMinDeltaDB       = 20.0
	defaultSampleSeconds    = 1.0
	defaultMaxSamples       = 5
	defaultRemuxMode        = "replace"
	defaultRemuxNaming      = "movie"
	defaultSidecarLanguage  = "eng"
	defaultWorkerPoll       = 5
	defaultWorkerMaxRetries = 2
	defaultLogFormat        = "auto"
	defaultLogLevel         = "info"
	defaultFFmpegCommand    = "ffmpeg"
	defaultFFprobeCommand   = "ffprobe"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:   defaultOutputDir,
			StateDir:    defaultStateDir,
			LogDir:      defaultLogDir,
			CatalogPath: defaultCatalogPath,
		},
		Matching: Matching{
			DefaultThreshold: defaultMatchThreshold,
		},
		Subtitles: Subtitles{
			Languages:            []string{"en"},
			ExcludeTitleKeywords: []string{"commentary", "sdh", "forced"},
		},
		Audio: Audio{
			Languages:     []string{"en"},
			MinDeltaDB:    defaultMinDeltaDB,
			SampleSeconds: defaultSampleSeconds,
			MaxSamples:    defaultMaxSamples,
		},
		Remux: Remux{
			Mode:            defaultRemuxMode,
			Naming:          defaultRemuxNaming,
			SidecarLanguage: defaultSidecarLanguage,
		},
		Worker: Worker{
			PollInterval: defaultWorkerPoll,
			MaxRetries:   defaultWorkerMaxRetries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegCommand,
			FFprobe: defaultFFprobeCommand,
		},
	}
}
