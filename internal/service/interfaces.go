package service

import (
	"context"

	"github.com/shaqflair/timegrid/internal/contract"
	"github.com/shaqflair/timegrid/internal/document"
	"github.com/shaqflair/timegrid/internal/domain"
	"github.com/shaqflair/timegrid/internal/importer"
	"github.com/shaqflair/timegrid/internal/timeline"
)

// LoadedDocument is a schedule document together with the persistence
// coordinates needed to write it back.
type LoadedDocument struct {
	ArtifactID string
	Revision   int64
	Doc        domain.ScheduleDocument
}

type DocumentService interface {
	// Load fetches and normalizes the document for an artifact, seeding
	// and persisting a starter document when none exists yet.
	Load(ctx context.Context, artifactID string) (*LoadedDocument, error)
	// Save validates and persists a document at the given revision.
	// Blocking validation issues or a stale revision refuse the write.
	Save(ctx context.Context, artifactID string, doc domain.ScheduleDocument, revision int64) (int64, error)
	Validate(doc domain.ScheduleDocument) []document.Issue
	Delete(ctx context.Context, artifactID string) error
	ListArtifacts(ctx context.Context) ([]string, error)
}

type ImportService interface {
	ImportFile(ctx context.Context, artifactID, filePath, projectStart, projectFinish string) (*importer.Result, error)
	ImportPayload(ctx context.Context, artifactID string, payload []byte, projectStart, projectFinish string) (*importer.Result, error)
}

type TimelineService interface {
	// BuildView lays out one page of the timeline: lanes, bar geometry,
	// and visible dependency edges under the given filter.
	BuildView(doc domain.ScheduleDocument, artifactID string, page contract.WeekRange, dayWidth int, filter timeline.Filter) contract.TimelineView
}
