package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jask/labdesk/internal/database"
)

// DefaultKeep is how many submissions per widget a session retains.
const DefaultKeep = 100

// SubmissionRepo handles the session's submission history.
type SubmissionRepo struct {
	db *sql.DB
	// Keep caps the rows retained per widget; older ones are pruned on insert.
	Keep int
}

func NewSubmissionRepo(db *sql.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db, Keep: DefaultKeep}
}

// Insert stores s and prunes the widget's history down to Keep rows in the
// same transaction.
func (r *SubmissionRepo) Insert(ctx context.Context, s Submission) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO submissions(id, widget, input, outcome, detail, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?);
		`, s.ID, s.Widget, s.Input, s.Outcome, s.Detail, s.Latency.Milliseconds(), s.CreatedAt.UTC()); err != nil {
			return err
		}
		if r.Keep <= 0 {
			return nil
		}
		_, err := tx.ExecContext(ctx, `
		DELETE FROM submissions
		WHERE widget = ? AND rowid NOT IN (
			SELECT rowid FROM submissions
			WHERE widget = ?
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		)`, s.Widget, s.Widget, r.Keep)
		return err
	})
}

// Recent lists the newest submissions of a widget, newest first.
func (r *SubmissionRepo) Recent(ctx context.Context, widget string, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, widget, input, outcome, detail, latency_ms, created_at
	FROM submissions
	WHERE widget = ?
	ORDER BY created_at DESC, rowid DESC
	LIMIT ?`, widget, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		var s Submission
		var ms int64
		if err := rows.Scan(&s.ID, &s.Widget, &s.Input, &s.Outcome, &s.Detail, &ms, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Latency = time.Duration(ms) * time.Millisecond
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountByWidget returns the number of retained submissions per widget.
func (r *SubmissionRepo) CountByWidget(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT widget, COUNT(*) FROM submissions GROUP BY widget`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var w string
		var n int
		if err := rows.Scan(&w, &n); err != nil {
			return nil, err
		}
		out[w] = n
	}
	return out, rows.Err()
}
