package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ApplyEnv overrides cfg with SCRIBBLE_* environment variables. Unset variables
// keep the file value.
func ApplyEnv(cfg *FileConfig) error {
	var fromEnv FileConfig
	if err := ParseEnv(&fromEnv); err != nil {
		return err
	}
	merge(&cfg.Practice.Category, fromEnv.Practice.Category)
	merge(&cfg.Practice.CanvasWidth, fromEnv.Practice.CanvasWidth)
	merge(&cfg.Practice.CanvasHeight, fromEnv.Practice.CanvasHeight)
	merge(&cfg.Practice.WordsFile, fromEnv.Practice.WordsFile)
	merge(&cfg.Practice.History, fromEnv.Practice.History)
	merge(&cfg.Scoring.PassThreshold, fromEnv.Scoring.PassThreshold)
	merge(&cfg.Scoring.PatternAvg, fromEnv.Scoring.PatternAvg)
	merge(&cfg.Scoring.PatternMax, fromEnv.Scoring.PatternMax)
	merge(&cfg.Scoring.MinSize, fromEnv.Scoring.MinSize)
	merge(&cfg.Scoring.MaxSize, fromEnv.Scoring.MaxSize)
	merge(&cfg.Scoring.ClusterGap, fromEnv.Scoring.ClusterGap)
	merge(&cfg.Scoring.ClusterShare, fromEnv.Scoring.ClusterShare)
	merge(&cfg.Stats.Window, fromEnv.Stats.Window)
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func merge[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}
