package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateRemux(); err != nil {
		return err
	}
	if err := c.validateWorker(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.CatalogPath) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/censorr/config.toml"
		}
		return fmt.Errorf("paths.catalog_path is required. Edit %s (create with 'censorr config init')", defaultPath)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.DefaultThreshold < 0 || c.Matching.DefaultThreshold > 100 {
		return errors.New("matching.default_threshold must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.MinDeltaDB <= 0 {
		return errors.New("audio.min_delta_db must be positive")
	}
	if c.Audio.SampleSeconds <= 0 {
		return errors.New("audio.sample_seconds must be positive")
	}
	if c.Audio.MaxSamples <= 0 {
		return errors.New("audio.max_samples must be positive")
	}
	return nil
}

func (c *Config) validateRemux() error {
	switch c.Remux.Mode {
	case "replace", "append":
	default:
		return fmt.Errorf("remux.mode must be 'replace' or 'append', got %q", c.Remux.Mode)
	}
	switch c.Remux.Naming {
	case "movie", "tv":
	default:
		return fmt.Errorf("remux.naming must be 'movie' or 'tv', got %q", c.Remux.Naming)
	}
	return nil
}

func (c *Config) validateWorker() error {
	if c.Worker.PollInterval <= 0 {
		return errors.New("worker.poll_interval must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format must be 'auto', 'console', or 'json', got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}
