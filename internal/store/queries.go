package store

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertRun records a run and returns its ID. A zero CreatedAt is replaced
// with the current time.
func (s *Store) InsertRun(run *Run) (int64, error) {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO runs
		(created_at, operation, backup_root, categories, repo_count, cert_count, package_count, succeeded, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		createdAt.UTC().Format(time.RFC3339),
		run.Operation,
		run.BackupRoot,
		run.Categories,
		run.Repos,
		run.Certs,
		run.Packages,
		run.Succeeded,
		run.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	return id, nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id int64) (*Run, error) {
	query := `
		SELECT id, created_at, operation, backup_root, categories, repo_count, cert_count, package_count, succeeded, error
		FROM runs
		WHERE id = ?
	`

	run, err := scanRun(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", id, err)
	}

	return run, nil
}

// ListRuns returns the most recent runs, newest first. A limit of zero or
// less returns every run.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	query := `
		SELECT id, created_at, operation, backup_root, categories, repo_count, cert_count, package_count, succeeded, error
		FROM runs
		ORDER BY created_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// LastSuccessful returns the newest successful run of operation, or nil if
// there is none.
func (s *Store) LastSuccessful(operation string) (*Run, error) {
	query := `
		SELECT id, created_at, operation, backup_root, categories, repo_count, cert_count, package_count, succeeded, error
		FROM runs
		WHERE operation = ? AND succeeded = 1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	run, err := scanRun(s.db.QueryRow(query, operation))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last %s run: %w", operation, err)
	}

	return run, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var createdAt string
	var errText sql.NullString

	err := row.Scan(
		&run.ID,
		&createdAt,
		&run.Operation,
		&run.BackupRoot,
		&run.Categories,
		&run.Repos,
		&run.Certs,
		&run.Packages,
		&run.Succeeded,
		&errText,
	)
	if err != nil {
		return nil, err
	}

	run.Error = errText.String
	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for run %d: %w", run.ID, err)
	}

	return &run, nil
}
