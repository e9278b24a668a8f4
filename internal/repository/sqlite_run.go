package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timetabler/internal/db"
	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/google/uuid"
)

// MinPrefixLen is the shortest ID prefix GetByID resolves.
const MinPrefixLen = 4

// SQLiteRunRepo implements RunRepo using a SQLite database.
type SQLiteRunRepo struct {
	db db.DBTX
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo. conn may be a *sql.DB or a
// *sql.Tx handed out by a UnitOfWork.
func NewSQLiteRunRepo(conn db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: conn}
}

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO runs (id, provider, model, created_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Provider, run.Model, run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for i := range run.Results {
		res := &run.Results[i]
		if res.ID == "" {
			res.ID = uuid.New().String()
		}
		res.RunID = run.ID
		res.Position = i

		violations, err := encodeViolations(res.Violations)
		if err != nil {
			return fmt.Errorf("encoding violations for %s: %w", res.Division, err)
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO division_results (id, run_id, position, division, prompt, raw, html, error, latency_ms, violations)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			res.ID, res.RunID, res.Position, res.Division, res.Prompt, res.Raw, res.HTML, res.Error, res.LatencyMs, violations,
		)
		if err != nil {
			return fmt.Errorf("inserting division result %s: %w", res.Division, err)
		}
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	fullID, err := r.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}

	var run domain.Run
	var createdAt string
	err = r.db.QueryRowContext(ctx,
		`SELECT id, provider, model, created_at FROM runs WHERE id = ?`, fullID,
	).Scan(&run.ID, &run.Provider, &run.Model, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	run.CreatedAt = parseTime(createdAt)

	results, err := r.listResults(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	run.Results = results
	return &run, nil
}

func (r *SQLiteRunRepo) resolveID(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if len(id) < MinPrefixLen {
		return id, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE id = ? OR id LIKE ? ORDER BY id LIMIT 2`,
		id, stripLikeWildcards(id)+"%",
	)
	if err != nil {
		return "", fmt.Errorf("resolving run id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var match string
		if err := rows.Scan(&match); err != nil {
			return "", fmt.Errorf("scanning run id: %w", err)
		}
		if match == id {
			return match, nil
		}
		ids = append(ids, match)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("run %q: %w", id, ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("run %q: %w", id, ErrAmbiguous)
	}
}

func (r *SQLiteRunRepo) listResults(ctx context.Context, runID string) ([]domain.DivisionResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, run_id, position, division, prompt, raw, html, error, latency_ms, violations
		FROM division_results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing division results: %w", err)
	}
	defer rows.Close()

	var results []domain.DivisionResult
	for rows.Next() {
		var res domain.DivisionResult
		var violations string
		if err := rows.Scan(&res.ID, &res.RunID, &res.Position, &res.Division, &res.Prompt,
			&res.Raw, &res.HTML, &res.Error, &res.LatencyMs, &violations); err != nil {
			return nil, fmt.Errorf("scanning division result: %w", err)
		}
		if res.Violations, err = decodeViolations(violations); err != nil {
			return nil, fmt.Errorf("decoding violations for %s: %w", res.Division, err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *SQLiteRunRepo) List(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `SELECT r.id, r.provider, r.model, r.created_at,
			COUNT(d.id),
			COALESCE(SUM(CASE WHEN d.error != '' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(json_array_length(d.violations)), 0)
		FROM runs r
		LEFT JOIN division_results d ON d.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		var createdAt string
		if err := rows.Scan(&s.ID, &s.Provider, &s.Model, &createdAt, &s.Divisions, &s.Failed, &s.Violations); err != nil {
			return nil, fmt.Errorf("scanning run summary: %w", err)
		}
		s.CreatedAt = parseTime(createdAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %q: %w", id, ErrNotFound)
	}
	return nil
}

func stripLikeWildcards(s string) string {
	s = strings.ReplaceAll(s, "%", "")
	return strings.ReplaceAll(s, "_", "")
}
