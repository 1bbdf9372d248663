package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and file location configuration.
type Paths struct {
	// OutputDir receives intermediate artifacts and, for movie naming
	// without an explicit remux base, the final container.
	OutputDir string `toml:"output_dir"`
	// StateDir holds the queue database.
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
	// CatalogPath points at the profanity term catalog (JSON or plain
	// word list).
	CatalogPath string `toml:"catalog_path"`
}

// Matching contains fuzzy matcher tuning.
type Matching struct {
	// DefaultThreshold applies to catalog terms without their own.
	DefaultThreshold float64 `toml:"default_threshold"`
	// Aggressive enables substring and compound matching for terms that
	// do not set their own variant strategy.
	Aggressive bool `toml:"aggressive"`
}

// Subtitles contains subtitle stream selection settings.
type Subtitles struct {
	Languages            []string `toml:"languages"`
	ExcludeTitleKeywords []string `toml:"exclude_title_keywords"`
	ExcludeKeywords      []string `toml:"exclude_keywords"`
}

// Audio contains audio selection and QC settings.
type Audio struct {
	Languages     []string `toml:"languages"`
	MinDeltaDB    float64  `toml:"min_delta_db"`
	SampleSeconds float64  `toml:"sample_seconds"`
	MaxSamples    int      `toml:"max_samples"`
}

// Remux contains output container settings.
type Remux struct {
	Mode            string `toml:"mode"`
	Naming          string `toml:"naming"`
	OutputBase      string `toml:"output_base"`
	SidecarLanguage string `toml:"sidecar_language"`
}

// Worker contains queue worker timing.
type Worker struct {
	PollInterval int `toml:"poll_interval"`
	MaxRetries   int `toml:"max_retries"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Tools names the external binaries the pipeline shells out to.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Config encapsulates all configuration values for censorr.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Matching  Matching  `toml:"matching"`
	Subtitles Subtitles `toml:"subtitles"`
	Audio     Audio     `toml:"audio"`
	Remux     Remux     `toml:"remux"`
	Worker    Worker    `toml:"worker"`
	Logging   Logging   `toml:"logging"`
	Tools     Tools     `toml:"tools"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/censorr/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("censorr.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// QueueDatabasePath returns the location of the queue's SQLite database.
func (c *Config) QueueDatabasePath() string {
	return filepath.Join(c.Paths.StateDir, "queue.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
