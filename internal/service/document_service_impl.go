package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shaqflair/timegrid/internal/document"
	"github.com/shaqflair/timegrid/internal/domain"
	"github.com/shaqflair/timegrid/internal/repository"
)

type documentService struct {
	docs repository.DocumentRepo
}

func NewDocumentService(docs repository.DocumentRepo) DocumentService {
	return &documentService{docs: docs}
}

func (s *documentService) Load(ctx context.Context, artifactID string) (*LoadedDocument, error) {
	stored, err := s.docs.Get(ctx, artifactID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.seed(ctx, artifactID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading document %q: %w", artifactID, err)
	}

	return &LoadedDocument{
		ArtifactID: artifactID,
		Revision:   stored.Revision,
		Doc:        document.Normalize(stored.Payload),
	}, nil
}

// seed creates and persists a starter document for a never-seen artifact.
func (s *documentService) seed(ctx context.Context, artifactID string) (*LoadedDocument, error) {
	doc := document.Seed(time.Now().UTC())
	payload, err := document.Serialize(doc)
	if err != nil {
		return nil, fmt.Errorf("serializing seed document: %w", err)
	}
	rev, err := s.docs.Put(ctx, artifactID, payload, 0)
	if err != nil {
		return nil, fmt.Errorf("persisting seed document %q: %w", artifactID, err)
	}
	return &LoadedDocument{ArtifactID: artifactID, Revision: rev, Doc: doc}, nil
}

func (s *documentService) Save(ctx context.Context, artifactID string, doc domain.ScheduleDocument, revision int64) (int64, error) {
	issues := document.Validate(doc)
	if document.HasBlocking(issues) {
		return 0, blockingError(issues)
	}

	payload, err := document.Serialize(doc)
	if err != nil {
		return 0, fmt.Errorf("serializing document: %w", err)
	}
	rev, err := s.docs.Put(ctx, artifactID, payload, revision)
	if err != nil {
		return 0, fmt.Errorf("saving document %q: %w", artifactID, err)
	}
	return rev, nil
}

func (s *documentService) Validate(doc domain.ScheduleDocument) []document.Issue {
	return document.Validate(doc)
}

func (s *documentService) Delete(ctx context.Context, artifactID string) error {
	if err := s.docs.Delete(ctx, artifactID); err != nil {
		return fmt.Errorf("deleting document %q: %w", artifactID, err)
	}
	return nil
}

func (s *documentService) ListArtifacts(ctx context.Context) ([]string, error) {
	return s.docs.ListArtifacts(ctx)
}

func blockingError(issues []document.Issue) error {
	n := 0
	for _, is := range issues {
		if is.Blocking {
			n++
		}
	}
	msg := fmt.Sprintf("document has %d blocking issues:", n)
	for _, is := range issues {
		if is.Blocking {
			msg += "\n  - " + is.String()
		}
	}
	return fmt.Errorf("%s", msg)
}
