package config

import (
	"fmt"
	"strings"

	"censorr/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeSubtitles()
	c.normalizeAudio()
	c.normalizeRemux()
	c.normalizeWorker()
	c.normalizeLogging()
	c.normalizeTools()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.CatalogPath, err = expandPath(c.Paths.CatalogPath); err != nil {
		return fmt.Errorf("paths.catalog_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	if c.Matching.DefaultThreshold <= 0 {
		c.Matching.DefaultThreshold = defaultMatchThreshold
	}
}

func (c *Config) normalizeSubtitles() {
	c.Subtitles.Languages = language.NormalizeList(c.Subtitles.Languages)
	if len(c.Subtitles.Languages) == 0 {
		c.Subtitles.Languages = []string{"en"}
	}
	c.Subtitles.ExcludeTitleKeywords = trimList(c.Subtitles.ExcludeTitleKeywords)
	c.Subtitles.ExcludeKeywords = trimList(c.Subtitles.ExcludeKeywords)
}

func (c *Config) normalizeAudio() {
	c.Audio.Languages = language.NormalizeList(c.Audio.Languages)
	if len(c.Audio.Languages) == 0 {
		c.Audio.Languages = []string{"en"}
	}
	if c.Audio.MinDeltaDB <= 0 {
		c.Audio.MinDeltaDB = defaultMinDeltaDB
	}
	if c.Audio.SampleSeconds <= 0 {
		c.Audio.SampleSeconds = defaultSampleSeconds
	}
	if c.Audio.MaxSamples <= 0 {
		c.Audio.MaxSamples = defaultMaxSamples
	}
}

func (c *Config) normalizeRemux() {
	c.Remux.Mode = strings.ToLower(strings.TrimSpace(c.Remux.Mode))
	if c.Remux.Mode == "" {
		c.Remux.Mode = defaultRemuxMode
	}
	c.Remux.Naming = strings.ToLower(strings.TrimSpace(c.Remux.Naming))
	if c.Remux.Naming == "" {
		c.Remux.Naming = defaultRemuxNaming
	}
	c.Remux.OutputBase = strings.TrimSpace(c.Remux.OutputBase)
	c.Remux.SidecarLanguage = strings.ToLower(strings.TrimSpace(c.Remux.SidecarLanguage))
	if c.Remux.SidecarLanguage == "" {
		c.Remux.SidecarLanguage = defaultSidecarLanguage
	}
}

func (c *Config) normalizeWorker() {
	if c.Worker.PollInterval <= 0 {
		c.Worker.PollInterval = defaultWorkerPoll
	}
	if c.Worker.MaxRetries < 0 {
		c.Worker.MaxRetries = 0
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

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegCommand
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeCommand
	}
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
