package repository

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no document exists for an artifact.
	ErrNotFound = errors.New("document not found")
	// ErrRevisionConflict is returned when a save carries a stale
	// revision token: the stored document moved underneath the caller.
	ErrRevisionConflict = errors.New("document revision conflict")
)

// StoredDocument is one persisted schedule payload with its
// optimistic-concurrency revision.
type StoredDocument struct {
	ArtifactID string
	Revision   int64
	Payload    []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DocumentRepo persists schedule documents by artifact id. Put with
// expectedRevision 0 creates; any other value must match the stored
// revision or the write fails with ErrRevisionConflict.
type DocumentRepo interface {
	Get(ctx context.Context, artifactID string) (*StoredDocument, error)
	Put(ctx context.Context, artifactID string, payload []byte, expectedRevision int64) (int64, error)
	Delete(ctx context.Context, artifactID string) error
	ListArtifacts(ctx context.Context) ([]string, error)
}
