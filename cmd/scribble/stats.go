package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/scribble/internal/catalog"
	"github.com/verte-zerg/scribble/internal/config"
	"github.com/verte-zerg/scribble/internal/generator"
	"github.com/verte-zerg/scribble/internal/mathui"
	"github.com/verte-zerg/scribble/internal/model"
	"github.com/verte-zerg/scribble/internal/stats"
	"github.com/verte-zerg/scribble/internal/statsui"
	"github.com/verte-zerg/scribble/internal/store"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show practice history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsCategory, "category", "", "category filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average and per-item window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "window", &statsWindow, fileCfg.Stats.Window)

	cfg, err := buildStatsConfig(statsCategory, statsSince, statsLast, statsWindow)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain || !isTerminal(cmd.OutOrStdout()) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		report, err := stats.BuildReport(ctx, st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return report.Render(cmd.OutOrStdout(), cfg.Window, stats.TerminalWidth())
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func buildStatsConfig(category, since string, last, window int) (model.StatsConfig, error) {
	if category != "" && catalog.Default().ItemCount(category) == 0 {
		return model.StatsConfig{}, fmt.Errorf("unknown category %q", category)
	}
	if last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if window <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--window must be > 0")
	}
	var sinceTime *time.Time
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	return model.StatsConfig{
		Category: category,
		Since:    sinceTime,
		Last:     last,
		Window:   window,
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newExercisesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exercises",
		Short: "List exercise categories and items",
		Args:  cobra.NoArgs,
		RunE:  runExercisesCmd,
	}
}

func runExercisesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolvePracticeConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	return writeExercises(cmd.OutOrStdout(), cat)
}

func writeExercises(w io.Writer, cat *catalog.Catalog) error {
	for _, category := range cat.Categories() {
		ex, _ := cat.Lookup(category)
		header := fmt.Sprintf("%s: %s (%d items, min %d points)", category, ex.Title, len(ex.Items), ex.MinStrokePoints)
		lines := []string{header, "  " + ex.Description, "  " + strings.Join(ex.Items, " | "), ""}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}

func newMathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "math",
		Short: "Arithmetic practice quiz",
		Args:  cobra.NoArgs,
		RunE:  runMathCmd,
	}
	cmd.Flags().StringVar(&mathKind, "kind", string(generator.KindRead), "problem kind (read, addition, subtraction, multiplication, division, sequence, comparison)")
	cmd.Flags().StringVar(&mathDifficulty, "difficulty", string(generator.Easy), "difficulty (easy, hard)")
	return cmd
}

func runMathCmd(_ *cobra.Command, _ []string) error {
	kind, err := generator.ParseKind(mathKind)
	if err != nil {
		return err
	}
	difficulty, err := generator.ParseDifficulty(mathDifficulty)
	if err != nil {
		return err
	}
	program := tea.NewProgram(mathui.NewModel(generator.New(), kind, difficulty), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run math TUI: %w", err)
	}
	return nil
}
