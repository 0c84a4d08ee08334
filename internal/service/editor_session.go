package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shaqflair/timegrid/internal/document"
	"github.com/shaqflair/timegrid/internal/domain"
	"github.com/shaqflair/timegrid/internal/timeline"
)

var (
	// ErrDragActive is returned when a drag begins while another is live.
	ErrDragActive = errors.New("a drag is already in progress")
	// ErrNoDrag is returned when a drag step arrives with no drag live.
	ErrNoDrag = errors.New("no drag in progress")
)

// EditorSession owns one working copy of a schedule document across an
// editing session: it tracks dirtiness, enforces the single-live-drag
// rule, and writes back through DocumentService with the revision it
// loaded at.
type EditorSession struct {
	docs DocumentService

	artifactID string
	revision   int64
	doc        domain.ScheduleDocument
	dirty      bool

	drag *timeline.Drag
	// preDrag holds the document as it was when the drag began, so a
	// cancel restores it exactly.
	preDrag domain.ScheduleDocument
}

// OpenSession loads (or seeds) the artifact's document into a session.
func OpenSession(ctx context.Context, docs DocumentService, artifactID string) (*EditorSession, error) {
	loaded, err := docs.Load(ctx, artifactID)
	if err != nil {
		return nil, err
	}
	return &EditorSession{
		docs:       docs,
		artifactID: loaded.ArtifactID,
		revision:   loaded.Revision,
		doc:        loaded.Doc,
	}, nil
}

// Document returns the current working copy.
func (s *EditorSession) Document() domain.ScheduleDocument { return s.doc }

// Dirty reports whether the working copy has unsaved changes.
func (s *EditorSession) Dirty() bool { return s.dirty }

// Revision returns the revision the session will save against.
func (s *EditorSession) Revision() int64 { return s.revision }

// Replace swaps in a new working copy and marks the session dirty.
// Mutation helpers funnel through here.
func (s *EditorSession) Replace(next domain.ScheduleDocument) {
	s.doc = next
	s.dirty = true
}

func (s *EditorSession) AddPhase(name string) (*domain.Phase, error) {
	next, phase := document.AddPhase(s.doc, name)
	if phase == nil {
		return nil, fmt.Errorf("phase limit reached")
	}
	s.Replace(next)
	return phase, nil
}

func (s *EditorSession) RemovePhase(phaseID string) {
	s.Replace(document.RemovePhase(s.doc, phaseID))
}

func (s *EditorSession) AddItem(item domain.ScheduleItem) (*domain.ScheduleItem, error) {
	next, added := document.AddItem(s.doc, item)
	if added == nil {
		return nil, fmt.Errorf("item limit reached")
	}
	s.Replace(next)
	return added, nil
}

func (s *EditorSession) RemoveItem(itemID string) {
	s.Replace(document.RemoveItem(s.doc, itemID))
}

func (s *EditorSession) PatchItem(itemID string, patch document.ItemPatch) bool {
	next, ok := document.PatchItem(s.doc, itemID, patch)
	if !ok {
		return false
	}
	s.Replace(next)
	return true
}

func (s *EditorSession) ShiftItemWeeks(itemID string, weeks int) {
	s.Replace(document.ShiftItemWeeks(s.doc, itemID, weeks))
}

func (s *EditorSession) DuplicateItem(itemID string) *domain.ScheduleItem {
	next, copied := document.DuplicateItem(s.doc, itemID)
	if copied == nil {
		return nil
	}
	s.Replace(next)
	return copied
}

// BeginDrag starts a drag on an item. Only one drag may be live at a
// time; a second BeginDrag fails with ErrDragActive.
func (s *EditorSession) BeginDrag(itemID string, mode timeline.DragMode) error {
	if s.drag != nil {
		return ErrDragActive
	}
	item := s.doc.Item(itemID)
	if item == nil {
		return fmt.Errorf("item %q not found", itemID)
	}
	d := timeline.StartDrag(*item, mode)
	s.drag = &d
	s.preDrag = s.doc
	return nil
}

// DragTo applies the current cumulative delta, in days, from the drag
// origin. Safe to call repeatedly; each call re-derives from the origin.
func (s *EditorSession) DragTo(deltaDays int) error {
	if s.drag == nil {
		return ErrNoDrag
	}
	s.doc = s.drag.Apply(s.doc, deltaDays)
	return nil
}

// EndDrag commits the drag, marking the session dirty if the item moved.
func (s *EditorSession) EndDrag() error {
	if s.drag == nil {
		return ErrNoDrag
	}
	itemID := s.drag.ItemID
	s.drag = nil
	before, after := s.preDrag.Item(itemID), s.doc.Item(itemID)
	if before != nil && after != nil && (before.Start != after.Start || before.End != after.End) {
		s.dirty = true
	}
	s.preDrag = domain.ScheduleDocument{}
	return nil
}

// CancelDrag abandons the drag and restores the document to its state
// at BeginDrag.
func (s *EditorSession) CancelDrag() error {
	if s.drag == nil {
		return ErrNoDrag
	}
	s.drag = nil
	s.doc = s.preDrag
	s.preDrag = domain.ScheduleDocument{}
	return nil
}

// Save writes the working copy back. On success the session adopts the
// new revision and is clean again.
func (s *EditorSession) Save(ctx context.Context) error {
	if s.drag != nil {
		return ErrDragActive
	}
	rev, err := s.docs.Save(ctx, s.artifactID, s.doc, s.revision)
	if err != nil {
		return err
	}
	s.revision = rev
	s.dirty = false
	return nil
}
