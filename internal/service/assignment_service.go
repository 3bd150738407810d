package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nurse103/QLNS-B11-sub000/internal/dto"
	"github.com/nurse103/QLNS-B11-sub000/internal/model"
	"github.com/nurse103/QLNS-B11-sub000/internal/repository"
	pkgerrors "github.com/nurse103/QLNS-B11-sub000/pkg/errors"
	"github.com/nurse103/QLNS-B11-sub000/pkg/taskslot"
)

// ── assignment module business errors ──

var (
	ErrAssignmentNotFound  = errors.New("assignment record not found")
	ErrAssignmentDateTaken = errors.New("an assignment record already exists for this date, edit the existing record instead")
	ErrDraftNotSubmittable = errors.New("draft has no date, cannot submit")
	ErrSubmitInFlight      = errors.New("a submit is already in progress")
)

// ── draft state machine ──

// Draft states: a draft starts empty, any load or edit moves it to
// editing, and it becomes ready once a date is present. Slot contents may
// legitimately stay empty ("unassigned" is allowed).
const (
	DraftEmpty   = "empty"
	DraftEditing = "editing"
	DraftReady   = "ready"
)

// Draft is one editing session's in-memory assignment record. It is
// private to the session: nothing here is shared or persisted until
// Submit.
type Draft struct {
	state  string
	record model.AssignmentRecord
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{state: DraftEmpty}
}

// LoadRecord seeds the draft from a persisted record.
func (d *Draft) LoadRecord(rec *model.AssignmentRecord) {
	d.record = *rec
	d.advance()
}

// SetDate sets the assignment date. The caller re-runs the prior-day
// roster lookup afterward, since every pool depends on it.
func (d *Draft) SetDate(date time.Time) {
	d.record.AssignmentDate = date
	d.advance()
}

// SetSlot stores the raw delimited text of one slot. Pools of dependent
// slots must be recomputed after each call.
func (d *Draft) SetSlot(slot Slot, raw string) {
	switch slot {
	case SlotRoom1:
		d.record.Room1 = raw
	case SlotRoom2:
		d.record.Room2 = raw
	case SlotRoom3:
		d.record.Room3 = raw
	case SlotRoom4:
		d.record.Room4 = raw
	case SlotOutsideRun:
		d.record.OutsideRun = raw
	case SlotImaging:
		d.record.Imaging = raw
	case SlotDataEntry:
		d.record.DataEntry = raw
	}
	d.advance()
}

// State returns the current draft state.
func (d *Draft) State() string { return d.state }

// ValidForSubmit reports whether the draft can be persisted: a date is
// required, slot contents are not.
func (d *Draft) ValidForSubmit() bool {
	return !d.record.AssignmentDate.IsZero()
}

// Record returns a copy of the draft's record.
func (d *Draft) Record() model.AssignmentRecord { return d.record }

func (d *Draft) advance() {
	if d.ValidForSubmit() {
		d.state = DraftReady
		return
	}
	d.state = DraftEditing
}

// AssignmentService orchestrates the daily assignment form: loading a
// day's draft and persisting it. Eligibility pools during editing come
// from AvailabilityService.FormOptions.
type AssignmentService interface {
	// LoadDraft returns the editing starting point for a date: the
	// persisted record when one exists, otherwise a fresh draft.
	LoadDraft(ctx context.Context, req *dto.GetAssignmentRequest) (*dto.DraftResponse, error)
	// Submit persists the draft, creating or updating the day's record.
	Submit(ctx context.Context, req *dto.SubmitAssignmentRequest) (*dto.AssignmentResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
	submit taskslot.Slot
}

// NewAssignmentService creates an AssignmentService instance.
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// LoadDraft
// ════════════════════════════════════════════════════════════

func (s *assignmentService) LoadDraft(ctx context.Context, req *dto.GetAssignmentRequest) (*dto.DraftResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	draft := NewDraft()

	record, err := s.repo.Assignment.GetByDate(ctx, date)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("load assignment failed", zap.String("date", req.Date), zap.Error(err))
			return nil, err
		}
		// no record yet: a fresh draft for this date
		draft.SetDate(date)
		return &dto.DraftResponse{State: draft.State(), Exists: false}, nil
	}

	draft.LoadRecord(record)
	resp := toAssignmentResponse(record)
	return &dto.DraftResponse{State: draft.State(), Exists: true, Record: &resp}, nil
}

// ════════════════════════════════════════════════════════════
// Submit
// ════════════════════════════════════════════════════════════

// Submit persists the draft as-is. Exclusion rules are not re-validated
// here: the pools the form offered may be stale by the time the user
// submits (concurrent editor, roster change mid-session) and the stored
// record may then hold a combination the form would no longer offer.
// Known consistency gap, kept deliberately.
func (s *assignmentService) Submit(ctx context.Context, req *dto.SubmitAssignmentRequest) (*dto.AssignmentResponse, error) {
	token, ok := s.submit.Acquire()
	if !ok {
		return nil, ErrSubmitInFlight
	}
	defer s.submit.Release(token)

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	draft := NewDraft()
	draft.SetDate(date)
	for _, slot := range allSlots {
		draft.SetSlot(slot, formValue(&req.Form, slot))
	}
	if !draft.ValidForSubmit() {
		return nil, ErrDraftNotSubmittable
	}
	record := draft.Record()

	if req.AssignmentID == "" {
		if err := s.repo.Assignment.Create(ctx, &record); err != nil {
			if pkgerrors.IsUniqueViolation(err) {
				return nil, ErrAssignmentDateTaken
			}
			s.logger.Error("create assignment failed", zap.String("date", req.Date), zap.Error(err))
			return nil, err
		}
		resp := toAssignmentResponse(&record)
		return &resp, nil
	}

	existing, err := s.repo.Assignment.GetByID(ctx, req.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("load assignment failed", zap.String("id", req.AssignmentID), zap.Error(err))
		return nil, err
	}

	existing.AssignmentDate = record.AssignmentDate
	existing.Room1 = record.Room1
	existing.Room2 = record.Room2
	existing.Room3 = record.Room3
	existing.Room4 = record.Room4
	existing.OutsideRun = record.OutsideRun
	existing.Imaging = record.Imaging
	existing.DataEntry = record.DataEntry
	existing.Version = req.Version

	if err := s.repo.Assignment.Update(ctx, existing); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrAssignmentDateTaken
		}
		s.logger.Error("update assignment failed", zap.String("id", req.AssignmentID), zap.Error(err))
		return nil, err
	}

	resp := toAssignmentResponse(existing)
	return &resp, nil
}

// ── helpers ──

func toAssignmentResponse(record *model.AssignmentRecord) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:   record.AssignmentID,
		Date: record.AssignmentDate.Format(model.DateOnly),
		Form: dto.AssignmentFormState{
			Room1:      record.Room1,
			Room2:      record.Room2,
			Room3:      record.Room3,
			Room4:      record.Room4,
			OutsideRun: record.OutsideRun,
			Imaging:    record.Imaging,
			DataEntry:  record.DataEntry,
		},
		Version:   record.Version,
		CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: record.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
