package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/scribble/internal/catalog"
	"github.com/verte-zerg/scribble/internal/config"
	"github.com/verte-zerg/scribble/internal/geom"
	"github.com/verte-zerg/scribble/internal/glyph"
	"github.com/verte-zerg/scribble/internal/model"
	"github.com/verte-zerg/scribble/internal/render"
	"github.com/verte-zerg/scribble/internal/score"
	"github.com/verte-zerg/scribble/internal/store"
)

// strokeDocument is the on-disk form of one attempt. Points are raw surface units.
type strokeDocument struct {
	Category string        `json:"category"`
	Item     *int          `json:"item,omitempty"`
	Content  string        `json:"content,omitempty"`
	Surface  model.Surface `json:"surface"`
	Points   []model.Point `json:"points"`
}

type checkOutput struct {
	Category    string        `json:"category"`
	Content     string        `json:"content"`
	Score       *int          `json:"score"`
	Passed      bool          `json:"passed"`
	Feedback    string        `json:"feedback"`
	Mode        model.Mode    `json:"mode,omitempty"`
	Issues      []model.Issue `json:"issues,omitempty"`
	AvgDistance *float64      `json:"avgDistance,omitempty"`
	MaxDistance *float64      `json:"maxDistance,omitempty"`
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Grade a stroke document (stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheckCmd,
	}
	cmd.Flags().BoolVar(&checkJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&checkSave, "save", false, "record the attempt in history")
	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolvePracticeConfig(cmd)
	if err != nil {
		return err
	}
	doc, err := readDocument(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	content, err := resolveContent(cat, doc)
	if err != nil {
		return err
	}
	points, err := geom.NormalizeStroke(doc.Points, doc.Surface)
	if err != nil {
		return fmt.Errorf("failed to normalize stroke: %w", err)
	}
	res := score.New(scorerConfig(cfg)).Grade(doc.Category, content, points)

	if checkSave && res.Score != nil {
		if err := saveDocumentAttempt(cmd.Context(), doc, content, points, res); err != nil {
			return err
		}
	}

	out := newCheckOutput(doc.Category, content, res)
	if checkJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	return writeCheckText(cmd.OutOrStdout(), out)
}

func readDocument(stdin io.Reader, args []string) (strokeDocument, error) {
	var r io.Reader = stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return strokeDocument{}, fmt.Errorf("failed to open stroke document: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logErrf("failed to close stroke document: %v\n", cerr)
			}
		}()
		r = f
	}
	return decodeDocument(r)
}

func decodeDocument(r io.Reader) (strokeDocument, error) {
	var doc strokeDocument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return strokeDocument{}, fmt.Errorf("failed to decode stroke document: %w", err)
	}
	if doc.Category == "" {
		return strokeDocument{}, fmt.Errorf("stroke document has no category")
	}
	return doc, nil
}

// resolveContent picks the item text. Explicit content wins over an item index.
func resolveContent(cat *catalog.Catalog, doc strokeDocument) (string, error) {
	if cat.ItemCount(doc.Category) == 0 {
		return "", fmt.Errorf("unknown category %q", doc.Category)
	}
	if doc.Content != "" {
		return doc.Content, nil
	}
	if doc.Item == nil {
		return "", fmt.Errorf("stroke document needs content or item")
	}
	item, ok := cat.Item(doc.Category, *doc.Item)
	if !ok {
		return "", fmt.Errorf("item %d out of range for %q", *doc.Item, doc.Category)
	}
	return item, nil
}

func newCheckOutput(category, content string, res model.Result) checkOutput {
	out := checkOutput{
		Category: category,
		Content:  content,
		Score:    res.Score,
		Passed:   res.Passed,
		Feedback: res.Feedback,
		Mode:     res.Mode,
		Issues:   res.Issues,
	}
	if res.Mode == model.ModeGlyph {
		out.AvgDistance = finitePtr(res.Distance.Avg)
		out.MaxDistance = finitePtr(res.Distance.Max)
	}
	return out
}

func finitePtr(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func writeCheckText(w io.Writer, out checkOutput) error {
	lines := []string{fmt.Sprintf("Item: %s (%s)", out.Content, out.Category)}
	if out.Score != nil {
		verdict := "not passed"
		if out.Passed {
			verdict = "passed"
		}
		lines = append(lines, fmt.Sprintf("Score: %d (%s)", *out.Score, verdict))
		lines = append(lines, fmt.Sprintf("Mode: %s", out.Mode))
	}
	if out.AvgDistance != nil && out.MaxDistance != nil {
		lines = append(lines, fmt.Sprintf("Distance: avg %.3f, max %.3f", *out.AvgDistance, *out.MaxDistance))
	}
	if len(out.Issues) > 0 {
		issues := make([]string, len(out.Issues))
		for i, issue := range out.Issues {
			issues[i] = string(issue)
		}
		lines = append(lines, fmt.Sprintf("Issues: %s", strings.Join(issues, ", ")))
	}
	lines = append(lines, fmt.Sprintf("Feedback: %s", out.Feedback))
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func saveDocumentAttempt(ctx context.Context, doc strokeDocument, content string, points []model.Point, res model.Result) error {
	if ctx == nil {
		ctx = context.Background()
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
	_, err = st.InsertAttempt(ctx, model.Attempt{
		AttemptedAt: time.Now(),
		Category:    doc.Category,
		Content:     content,
		Mode:        res.Mode,
		Score:       res.Score,
		Passed:      res.Passed,
		PointCount:  len(points),
		AvgDistance: res.Distance.Avg,
		MaxDistance: res.Distance.Max,
		Issues:      res.Issues,
		Surface:     doc.Surface,
		Points:      points,
	})
	if err != nil {
		return fmt.Errorf("failed to save attempt: %w", err)
	}
	return nil
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a stroke document or a stored attempt as PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRenderCmd,
	}
	cmd.Flags().Int64Var(&renderAttempt, "attempt", 0, "stored attempt id (-1 for the latest)")
	cmd.Flags().StringVarP(&renderOut, "out", "o", "", "output path ('-' for stdout)")
	return cmd
}

func runRenderCmd(cmd *cobra.Command, args []string) error {
	var (
		category, content string
		points            []model.Point
		res               *model.Result
		name              string
	)
	if cmd.Flags().Changed("attempt") {
		attempt, err := loadAttempt(cmd.Context(), renderAttempt)
		if err != nil {
			return err
		}
		category, content, points = attempt.Category, attempt.Content, attempt.Points
		res = &model.Result{Score: attempt.Score, Passed: attempt.Passed}
		name = fmt.Sprintf("attempt-%d.png", attempt.ID)
	} else {
		cfg, err := resolvePracticeConfig(cmd)
		if err != nil {
			return err
		}
		doc, err := readDocument(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		content, err = resolveContent(cat, doc)
		if err != nil {
			return err
		}
		points, err = geom.NormalizeStroke(doc.Points, doc.Surface)
		if err != nil {
			return fmt.Errorf("failed to normalize stroke: %w", err)
		}
		graded := score.New(scorerConfig(cfg)).Grade(doc.Category, content, points)
		category, res = doc.Category, &graded
		name = "stroke.png"
	}

	opts := render.DefaultOptions()
	opts.Label = renderLabel(content, res)
	if category == catalog.Letters {
		if tmpl, ok := glyph.Lookup(content); ok {
			opts.Template = &tmpl
		}
	}
	img, err := render.Render(points, opts)
	if err != nil {
		return err
	}

	if renderOut == "-" {
		return render.WritePNG(cmd.OutOrStdout(), img)
	}
	path := renderOut
	if path == "" {
		path = filepath.Join(config.DefaultRenderDir(), name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	if err := render.WritePNG(f, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

func loadAttempt(ctx context.Context, id int64) (model.Attempt, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return model.Attempt{}, fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if id < 0 {
		id, err = st.LatestAttemptID(ctx)
		if err != nil {
			return model.Attempt{}, fmt.Errorf("failed to find latest attempt: %w", err)
		}
	}
	attempt, err := st.GetAttempt(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.Attempt{}, fmt.Errorf("attempt %d not found", id)
	}
	if err != nil {
		return model.Attempt{}, fmt.Errorf("failed to load attempt: %w", err)
	}
	return attempt, nil
}

func renderLabel(content string, res *model.Result) string {
	if res == nil || res.Score == nil {
		return content
	}
	verdict := "retry"
	if res.Passed {
		verdict = "passed"
	}
	return fmt.Sprintf("%s  %d  %s", content, *res.Score, verdict)
}
