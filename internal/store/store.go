// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/scribble/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when an attempt id does not exist.
var ErrNotFound = errors.New("attempt not found")

// timeLayout keeps a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for attempt history.
type Store struct {
	db *sql.DB
}

// strokeDoc is the JSON payload kept in the stroke_json column.
type strokeDoc struct {
	Surface model.Surface `json:"surface"`
	Points  []model.Point `json:"points"`
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY,
			attempted_at TEXT NOT NULL,
			category TEXT NOT NULL,
			content TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER,
			passed INTEGER NOT NULL,
			point_count INTEGER NOT NULL,
			avg_distance REAL NOT NULL,
			max_distance REAL NOT NULL,
			issues TEXT NOT NULL,
			stroke_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_attempted_at ON attempts(attempted_at);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_item ON attempts(category, content);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAttempt stores a checked attempt together with its raw stroke.
func (s *Store) InsertAttempt(ctx context.Context, a model.Attempt) (int64, error) {
	doc, err := json.Marshal(strokeDoc{Surface: a.Surface, Points: a.Points})
	if err != nil {
		return 0, fmt.Errorf("failed to encode stroke: %w", err)
	}
	var score sql.NullInt64
	if a.Score != nil {
		score = sql.NullInt64{Int64: int64(*a.Score), Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (attempted_at, category, content, mode, score, passed, point_count, avg_distance, max_distance, issues, stroke_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.AttemptedAt.UTC().Format(timeLayout),
		a.Category,
		a.Content,
		string(a.Mode),
		score,
		boolToInt(a.Passed),
		a.PointCount,
		finite(a.AvgDistance),
		finite(a.MaxDistance),
		joinIssues(a.Issues),
		string(doc),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetAttempt loads a single attempt including its stroke.
func (s *Store) GetAttempt(ctx context.Context, id int64) (model.Attempt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, attempted_at, category, content, mode, score, passed, point_count, avg_distance, max_distance, issues, stroke_json
		 FROM attempts WHERE id = ?`, id)
	var (
		a           model.Attempt
		attemptedAt string
		mode        string
		score       sql.NullInt64
		passed      int
		issues      string
		raw         string
	)
	err := row.Scan(&a.ID, &attemptedAt, &a.Category, &a.Content, &mode, &score, &passed,
		&a.PointCount, &a.AvgDistance, &a.MaxDistance, &issues, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Attempt{}, ErrNotFound
	}
	if err != nil {
		return model.Attempt{}, err
	}
	parsed, err := time.Parse(timeLayout, attemptedAt)
	if err != nil {
		return model.Attempt{}, err
	}
	var doc strokeDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return model.Attempt{}, fmt.Errorf("failed to decode stroke: %w", err)
	}
	a.AttemptedAt = parsed
	a.Mode = model.Mode(mode)
	a.Score = scorePtr(score)
	a.Passed = passed != 0
	a.Issues = splitIssues(issues)
	a.Surface = doc.Surface
	a.Points = doc.Points
	return a, nil
}

// LatestAttemptID returns the id of the most recent attempt.
func (s *Store) LatestAttemptID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM attempts ORDER BY attempted_at DESC, id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return id, err
}

// ListAttempts returns attempt aggregates filtered by stats config, oldest first.
func (s *Store) ListAttempts(ctx context.Context, cfg model.StatsConfig) ([]model.AttemptAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, cfg.Category)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "attempted_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	limit := -1
	if cfg.Last > 0 {
		limit = cfg.Last
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT id, attempted_at, category, content, score, passed FROM (
			SELECT id, attempted_at, category, content, score, passed
			FROM attempts
			WHERE %s
			ORDER BY attempted_at DESC, id DESC
			LIMIT ?
		) ORDER BY attempted_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var attempts []model.AttemptAggregate
	for rows.Next() {
		var agg model.AttemptAggregate
		var attemptedAt string
		var score sql.NullInt64
		var passed int
		if err := rows.Scan(&agg.AttemptID, &attemptedAt, &agg.Category, &agg.Content, &score, &passed); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, attemptedAt)
		if err != nil {
			return nil, err
		}
		agg.AttemptedAt = parsed
		agg.Score = scorePtr(score)
		agg.Passed = passed != 0
		attempts = append(attempts, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attempts, nil
}

// ItemAggregates groups the most recent window attempts by exercise item.
func (s *Store) ItemAggregates(ctx context.Context, window int, category string) ([]model.ItemAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent AS (
		SELECT category, content, score, passed FROM attempts
		WHERE (? = '' OR category = ?)
		ORDER BY attempted_at DESC, id DESC
		LIMIT ?
	)
	SELECT category, content, COUNT(*) AS attempts, SUM(passed) AS passed,
		COALESCE(SUM(score), 0) AS score_sum, COUNT(score) AS scored
	FROM recent
	GROUP BY category, content
	ORDER BY category, content`

	rows, err := s.db.QueryContext(ctx, query, category, category, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.ItemAggregate
	for rows.Next() {
		var agg model.ItemAggregate
		if err := rows.Scan(&agg.Category, &agg.Content, &agg.Attempts, &agg.Passed, &agg.ScoreSum, &agg.Scored); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scorePtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// finite maps the unmatched-shape sentinel to -1 so the REAL column stays storable.
func finite(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return -1
	}
	return v
}

func joinIssues(issues []model.Issue) string {
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = string(issue)
	}
	return strings.Join(parts, ",")
}

func splitIssues(raw string) []model.Issue {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	issues := make([]model.Issue, len(parts))
	for i, p := range parts {
		issues[i] = model.Issue(p)
	}
	return issues
}
