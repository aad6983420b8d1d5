package config

import (
	"fmt"
	"os"
	"time"

	"github.com/itsmostafa/reduceindex/internal/omh"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = ".reduceindex.yaml"

// DefaultStopwords never appear in a consolidated index command.
var DefaultStopwords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
	"if", "in", "into", "is", "it", "its", "of", "on", "or", "than",
	"that", "the", "this", "to", "use", "using", "versus", "vs", "with",
}

// Config holds reduceindex settings.
type Config struct {
	// Stopwords replaces DefaultStopwords when non-empty.
	Stopwords []string `yaml:"stopwords"`
	// ExtraStopwords are appended to the stopword list.
	ExtraStopwords []string `yaml:"extra_stopwords"`

	// IndexCommand names the consolidated command written per section.
	IndexCommand string `yaml:"index_command"`

	// WorkdirMarker must exist relative to the working directory.
	// An empty value disables the check.
	WorkdirMarker string `yaml:"workdir_marker"`

	Watch WatchConfig `yaml:"watch"`
}

// WatchConfig configures --watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		IndexCommand:  "mindex",
		WorkdirMarker: "bin",
		Watch: WatchConfig{
			Debounce: "200ms",
		},
	}
}

// Load reads a YAML config file on top of the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults only
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies REDUCEINDEX_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v, ok := os.LookupEnv("REDUCEINDEX_WORKDIR_MARKER"); ok {
		c.WorkdirMarker = v
	}
	if v := os.Getenv("REDUCEINDEX_INDEX_COMMAND"); v != "" {
		c.IndexCommand = v
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if !omh.IndexCommandPattern.MatchString(c.IndexCommand) {
		return fmt.Errorf("invalid index_command %q: must be index with an optional one letter prefix", c.IndexCommand)
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	return nil
}

// AllStopwords returns the effective stopword list.
func (c *Config) AllStopwords() []string {
	base := c.Stopwords
	if len(base) == 0 {
		base = DefaultStopwords
	}
	out := make([]string, 0, len(base)+len(c.ExtraStopwords))
	out = append(out, base...)
	return append(out, c.ExtraStopwords...)
}

// DebounceDuration parses Watch.Debounce.
func (c *Config) DebounceDuration() (time.Duration, error) {
	if c.Watch.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid watch.debounce %q: %w", c.Watch.Debounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid watch.debounce %q: must not be negative", c.Watch.Debounce)
	}
	return d, nil
}
