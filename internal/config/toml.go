// Package config provides configuration helpers, TOML parsing and environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Scoring  ScoringConfig  `toml:"scoring"`
	Stats    StatsConfig    `toml:"stats"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Category     *string `toml:"category" env:"SCRIBBLE_CATEGORY"`
	CanvasWidth  *int    `toml:"canvas-width" env:"SCRIBBLE_CANVAS_WIDTH"`
	CanvasHeight *int    `toml:"canvas-height" env:"SCRIBBLE_CANVAS_HEIGHT"`
	WordsFile    *string `toml:"words-file" env:"SCRIBBLE_WORDS_FILE"`
	History      *bool   `toml:"history" env:"SCRIBBLE_HISTORY"`
}

// ScoringConfig maps the grading thresholds.
type ScoringConfig struct {
	PassThreshold *int     `toml:"pass-threshold" env:"SCRIBBLE_PASS_THRESHOLD"`
	PatternAvg    *float64 `toml:"pattern-avg" env:"SCRIBBLE_PATTERN_AVG"`
	PatternMax    *float64 `toml:"pattern-max" env:"SCRIBBLE_PATTERN_MAX"`
	MinSize       *float64 `toml:"min-size" env:"SCRIBBLE_MIN_SIZE"`
	MaxSize       *float64 `toml:"max-size" env:"SCRIBBLE_MAX_SIZE"`
	ClusterGap    *float64 `toml:"cluster-gap" env:"SCRIBBLE_CLUSTER_GAP"`
	ClusterShare  *float64 `toml:"cluster-share" env:"SCRIBBLE_CLUSTER_SHARE"`
}

// StatsConfig maps stats report settings.
type StatsConfig struct {
	Window *int `toml:"window" env:"SCRIBBLE_STATS_WINDOW"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Load reads the file at path and layers SCRIBBLE_* environment variables on top.
func Load(path string) (FileConfig, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return FileConfig{}, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}
