package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteDocumentRepo implements DocumentRepo using a SQLite database.
type SQLiteDocumentRepo struct {
	db *sql.DB
}

// NewSQLiteDocumentRepo creates a new SQLiteDocumentRepo.
func NewSQLiteDocumentRepo(db *sql.DB) *SQLiteDocumentRepo {
	return &SQLiteDocumentRepo{db: db}
}

func (r *SQLiteDocumentRepo) Get(ctx context.Context, artifactID string) (*StoredDocument, error) {
	query := `SELECT artifact_id, revision, payload, created_at, updated_at
		FROM schedule_documents WHERE artifact_id = ?`
	row := r.db.QueryRowContext(ctx, query, artifactID)

	var d StoredDocument
	var payload, createdAtStr, updatedAtStr string
	err := row.Scan(&d.ArtifactID, &d.Revision, &payload, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	d.Payload = []byte(payload)

	var parseErr error
	d.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	d.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &d, nil
}

// Put writes a document payload. expectedRevision 0 creates the row;
// any other value must match the stored revision, otherwise the write
// is rejected with ErrRevisionConflict. Returns the new revision.
func (r *SQLiteDocumentRepo) Put(ctx context.Context, artifactID string, payload []byte, expectedRevision int64) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	if expectedRevision == 0 {
		query := `INSERT INTO schedule_documents (artifact_id, revision, payload, created_at, updated_at)
			VALUES (?, 1, ?, ?, ?)`
		if _, err := r.db.ExecContext(ctx, query, artifactID, string(payload), now, now); err != nil {
			return 0, fmt.Errorf("inserting document: %w", err)
		}
		return 1, nil
	}

	query := `UPDATE schedule_documents SET revision = revision + 1, payload = ?, updated_at = ?
		WHERE artifact_id = ? AND revision = ?`
	res, err := r.db.ExecContext(ctx, query, string(payload), now, artifactID, expectedRevision)
	if err != nil {
		return 0, fmt.Errorf("updating document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		// Distinguish a stale revision from a missing row.
		var exists int
		err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM schedule_documents WHERE artifact_id = ?`, artifactID).Scan(&exists)
		if err != nil {
			return 0, fmt.Errorf("checking document existence: %w", err)
		}
		if exists == 0 {
			return 0, ErrNotFound
		}
		return 0, ErrRevisionConflict
	}
	return expectedRevision + 1, nil
}

func (r *SQLiteDocumentRepo) Delete(ctx context.Context, artifactID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedule_documents WHERE artifact_id = ?`, artifactID)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteDocumentRepo) ListArtifacts(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT artifact_id FROM schedule_documents ORDER BY updated_at DESC, artifact_id`)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning artifact id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating artifacts: %w", err)
	}
	return ids, nil
}
