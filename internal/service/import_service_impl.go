package service

import (
	"context"
	"fmt"

	"github.com/shaqflair/timegrid/internal/importer"
)

type importService struct {
	docs DocumentService
}

func NewImportService(docs DocumentService) ImportService {
	return &importService{docs: docs}
}

func (s *importService) ImportFile(ctx context.Context, artifactID, filePath, projectStart, projectFinish string) (*importer.Result, error) {
	rows, err := importer.LoadRows(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading breakdown file: %w", err)
	}
	return s.appendRows(ctx, artifactID, rows, projectStart, projectFinish)
}

func (s *importService) ImportPayload(ctx context.Context, artifactID string, payload []byte, projectStart, projectFinish string) (*importer.Result, error) {
	rows, err := importer.ParseRows(payload)
	if err != nil {
		return nil, fmt.Errorf("parsing breakdown payload: %w", err)
	}
	return s.appendRows(ctx, artifactID, rows, projectStart, projectFinish)
}

func (s *importService) appendRows(ctx context.Context, artifactID string, rows []importer.Row, projectStart, projectFinish string) (*importer.Result, error) {
	loaded, err := s.docs.Load(ctx, artifactID)
	if err != nil {
		return nil, err
	}

	next, result := importer.Append(loaded.Doc, rows, projectStart, projectFinish)
	if !result.Changed {
		return &result, nil
	}

	if _, err := s.docs.Save(ctx, artifactID, next, loaded.Revision); err != nil {
		return nil, fmt.Errorf("saving imported schedule: %w", err)
	}
	return &result, nil
}
