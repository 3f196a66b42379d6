// Package main provides the CLI entrypoint for scribble.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/scribble/internal/analyze"
	"github.com/verte-zerg/scribble/internal/catalog"
	"github.com/verte-zerg/scribble/internal/config"
	"github.com/verte-zerg/scribble/internal/generator"
	"github.com/verte-zerg/scribble/internal/model"
	"github.com/verte-zerg/scribble/internal/score"
	"github.com/verte-zerg/scribble/internal/session"
	"github.com/verte-zerg/scribble/internal/store"
	"github.com/verte-zerg/scribble/internal/tui"
)

const (
	defaultCategory     = catalog.Letters
	defaultCanvasWidth  = 60
	defaultCanvasHeight = 20
	defaultStatsWindow  = 20
	minCanvasWidth      = 10
	minCanvasHeight     = 5
)

var (
	practiceCategory      string
	practiceCanvasWidth   int
	practiceCanvasHeight  int
	practiceWordsFile     string
	practicePassThreshold int
	practicePatternAvg    float64
	practicePatternMax    float64
	practiceNoHistory     bool
	verbose               bool

	statsCategory string
	statsSince    string
	statsLast     int
	statsWindow   int
	statsPlain    bool

	checkJSON bool
	checkSave bool

	renderAttempt int64
	renderOut     string

	mathKind       string
	mathDifficulty string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := score.DefaultConfig()
	rootCmd := &cobra.Command{
		Use:           "scribble",
		Short:         "Handwriting practice with stroke scoring",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				score.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
	}

	rootCmd.Flags().StringVar(&practiceCategory, "category", defaultCategory, "exercise category")
	rootCmd.Flags().IntVar(&practiceCanvasWidth, "canvas-width", defaultCanvasWidth, "canvas width in cells")
	rootCmd.Flags().IntVar(&practiceCanvasHeight, "canvas-height", defaultCanvasHeight, "canvas height in cells")
	rootCmd.Flags().StringVar(&practiceWordsFile, "words-file", "", "replace the words category with items from a file")
	rootCmd.Flags().BoolVar(&practiceNoHistory, "no-history", false, "do not record attempts")
	rootCmd.PersistentFlags().IntVar(&practicePassThreshold, "pass-threshold", defaults.PassThreshold, "minimum score that passes (0-100)")
	rootCmd.PersistentFlags().Float64Var(&practicePatternAvg, "pattern-avg", defaults.PatternAvg, "average template distance tolerance")
	rootCmd.PersistentFlags().Float64Var(&practicePatternMax, "pattern-max", defaults.PatternMax, "maximum template distance tolerance")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log scoring details to stderr")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newExercisesCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newMathCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// resolvePracticeConfig layers defaults, the config file, SCRIBBLE_* variables and flags.
func resolvePracticeConfig(cmd *cobra.Command) (model.PracticeConfig, error) {
	fileCfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return model.PracticeConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	rules := analyze.DefaultRules()
	cfg := model.PracticeConfig{
		MinSize:      rules.MinSize,
		MaxSize:      rules.MaxSize,
		ClusterGap:   rules.ClusterGap,
		ClusterShare: rules.MaxClusterShare,
		History:      true,
	}

	applyStringConfig(cmd, "category", &practiceCategory, fileCfg.Practice.Category)
	applyIntConfig(cmd, "canvas-width", &practiceCanvasWidth, fileCfg.Practice.CanvasWidth)
	applyIntConfig(cmd, "canvas-height", &practiceCanvasHeight, fileCfg.Practice.CanvasHeight)
	applyStringConfig(cmd, "words-file", &practiceWordsFile, fileCfg.Practice.WordsFile)
	applyIntConfig(cmd, "pass-threshold", &practicePassThreshold, fileCfg.Scoring.PassThreshold)
	applyFloatConfig(cmd, "pattern-avg", &practicePatternAvg, fileCfg.Scoring.PatternAvg)
	applyFloatConfig(cmd, "pattern-max", &practicePatternMax, fileCfg.Scoring.PatternMax)
	applyFloatConfig(cmd, "min-size", &cfg.MinSize, fileCfg.Scoring.MinSize)
	applyFloatConfig(cmd, "max-size", &cfg.MaxSize, fileCfg.Scoring.MaxSize)
	applyFloatConfig(cmd, "cluster-gap", &cfg.ClusterGap, fileCfg.Scoring.ClusterGap)
	applyFloatConfig(cmd, "cluster-share", &cfg.ClusterShare, fileCfg.Scoring.ClusterShare)
	applyBoolConfig(cmd, "history", &cfg.History, fileCfg.Practice.History)
	if practiceNoHistory {
		cfg.History = false
	}

	cfg.Category = practiceCategory
	cfg.CanvasWidth = practiceCanvasWidth
	cfg.CanvasHeight = practiceCanvasHeight
	cfg.WordsFile = practiceWordsFile
	cfg.PassThreshold = practicePassThreshold
	cfg.PatternAvg = practicePatternAvg
	cfg.PatternMax = practicePatternMax

	if err := validateConfig(cfg); err != nil {
		return model.PracticeConfig{}, err
	}
	return cfg, nil
}

func scorerConfig(cfg model.PracticeConfig) score.Config {
	return score.Config{
		PassThreshold: cfg.PassThreshold,
		PatternAvg:    cfg.PatternAvg,
		PatternMax:    cfg.PatternMax,
		Rules: analyze.Rules{
			MinSize:         cfg.MinSize,
			MaxSize:         cfg.MaxSize,
			ClusterGap:      cfg.ClusterGap,
			MaxClusterShare: cfg.ClusterShare,
		},
	}
}

func loadCatalog(cfg model.PracticeConfig) (*catalog.Catalog, error) {
	if cfg.WordsFile == "" {
		return catalog.Default(), nil
	}
	items, err := catalog.LoadItems(cfg.WordsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load words file: %w", err)
	}
	return catalog.New(map[string][]string{catalog.Words: items})
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolvePracticeConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	sess, err := session.New(cat, score.New(scorerConfig(cfg)), cfg.Category)
	if err != nil {
		return err
	}

	var st *store.Store
	if cfg.History {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	m, err := tui.NewModel(cfg, st, sess, generator.New())
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	defaults := score.DefaultConfig()
	return fmt.Sprintf(`# scribble configuration
# Uncomment a value to enable it. SCRIBBLE_* environment variables override
# the file, CLI flags override both.

[practice]
# category = %q       # letters, capitals, numbers, words, shapes, sentences
# canvas-width = %d         # Canvas width in cells
# canvas-height = %d        # Canvas height in cells
# words-file = ""           # One item per line, replaces the words category
# history = true            # Record attempts for stats

[scoring]
# pass-threshold = %d       # Minimum passing score (0-100)
# pattern-avg = %.2f        # Average template distance tolerance
# pattern-max = %.2f        # Maximum template distance tolerance
# min-size = %.2f           # Smallest accepted bounding box side
# max-size = %.2f           # Largest accepted bounding box side
# cluster-gap = %.2f        # Distance that joins points into one cluster
# cluster-share = %.2f      # Largest share of points one cluster may hold

[stats]
# window = %d               # Moving average window
`,
		defaultCategory,
		defaultCanvasWidth,
		defaultCanvasHeight,
		defaults.PassThreshold,
		defaults.PatternAvg,
		defaults.PatternMax,
		defaults.Rules.MinSize,
		defaults.Rules.MaxSize,
		defaults.Rules.ClusterGap,
		defaults.Rules.MaxClusterShare,
		defaultStatsWindow,
	)
}

func validateConfig(cfg model.PracticeConfig) error {
	if cfg.PassThreshold < 0 || cfg.PassThreshold > 100 {
		return fmt.Errorf("--pass-threshold must be between 0 and 100")
	}
	if cfg.PatternAvg <= 0 {
		return fmt.Errorf("--pattern-avg must be > 0")
	}
	if cfg.PatternMax <= 0 {
		return fmt.Errorf("--pattern-max must be > 0")
	}
	if cfg.CanvasWidth < minCanvasWidth || cfg.CanvasHeight < minCanvasHeight {
		return fmt.Errorf("canvas must be at least %dx%d cells", minCanvasWidth, minCanvasHeight)
	}
	if cfg.MinSize < 0 || cfg.MinSize >= cfg.MaxSize || cfg.MaxSize > 1 {
		return fmt.Errorf("size bounds must satisfy 0 <= min-size < max-size <= 1")
	}
	if cfg.ClusterGap <= 0 {
		return fmt.Errorf("cluster-gap must be > 0")
	}
	if cfg.ClusterShare <= 0 || cfg.ClusterShare > 1 {
		return fmt.Errorf("cluster-share must be in (0, 1]")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
