package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nurse103/QLNS-B11-sub000/internal/dto"
	"github.com/nurse103/QLNS-B11-sub000/internal/model"
	"github.com/nurse103/QLNS-B11-sub000/internal/repository"
	"github.com/nurse103/QLNS-B11-sub000/pkg/taskslot"
)

// ── rest module business errors ──

var ErrGenerateInFlight = errors.New("rest-record generation is already in progress")

// RestService manages rest/absence records, chiefly the bulk generation of
// "on-duty rest" records from the prior day's duty roster.
type RestService interface {
	// AutoGenerate creates one duty-rest record per nurse listed on the
	// roster entry of the day before req.Date. Nurses already holding a
	// record for that date are skipped; names with no directory match get
	// a free-text-only record rather than being dropped. The batch is
	// all-or-nothing: any storage failure aborts every creation.
	AutoGenerate(ctx context.Context, req *dto.AutoGenerateRequest) (*dto.AutoGenerateResponse, error)
	// ListByDate returns the rest records of one date.
	ListByDate(ctx context.Context, req *dto.RestRecordListRequest) ([]dto.RestRecordResponse, error)
}

type restService struct {
	repo     *repository.Repository
	logger   *zap.Logger
	generate taskslot.Slot
}

// NewRestService creates a RestService instance.
func NewRestService(repo *repository.Repository, logger *zap.Logger) RestService {
	return &restService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// AutoGenerate
// ════════════════════════════════════════════════════════════

func (s *restService) AutoGenerate(ctx context.Context, req *dto.AutoGenerateRequest) (*dto.AutoGenerateResponse, error) {
	token, ok := s.generate.Acquire()
	if !ok {
		return nil, ErrGenerateInFlight
	}
	defer s.generate.Release(token)

	target, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	// 1. prior-day roster lookup; absence is a normal "nothing to
	// generate" outcome, not an error
	entry, err := priorRosterEntry(ctx, s.repo.DutyRoster, target)
	if err != nil {
		s.logger.Error("prior roster lookup failed", zap.String("date", req.Date), zap.Error(err))
		return nil, err
	}
	if entry == nil {
		return &dto.AutoGenerateResponse{
			Message: "no duty roster entry for the prior day, nothing to generate",
		}, nil
	}

	rosterDate := entry.RosterDate.Format(model.DateOnly)

	// 2. tokenize the nurse field; duplicates within the text are kept
	names := SplitNames(entry.Nurse)
	if len(names) == 0 {
		return &dto.AutoGenerateResponse{
			RosterFound: true,
			RosterDate:  rosterDate,
			Message:     "prior-day roster has no nurses listed, nothing to generate",
		}, nil
	}

	// 3. resolve each name against the active directory (case-insensitive
	// exact match)
	staff, err := s.repo.Staff.ListActive(ctx)
	if err != nil {
		s.logger.Error("list active staff failed", zap.Error(err))
		return nil, err
	}

	var (
		records   []model.RestRecord
		unmatched []string
		skipped   int
	)
	// a name repeated within the roster text must not queue two records
	// for the same staff and date; the first occurrence wins
	queued := make(map[string]struct{})

	for _, rn := range ResolveNames(names, staff) {
		if rn.Resolved() {
			if _, ok := queued[rn.Staff.StaffID]; ok {
				skipped++
				continue
			}
			exists, err := s.repo.RestRecord.Exists(ctx, rn.Staff.StaffID, target)
			if err != nil {
				s.logger.Error("rest record existence check failed",
					zap.String("staff_id", rn.Staff.StaffID), zap.Error(err))
				return nil, err
			}
			if exists {
				skipped++
				continue
			}
			staffID := rn.Staff.StaffID
			queued[staffID] = struct{}{}
			records = append(records, model.RestRecord{
				StaffID:   &staffID,
				StaffName: rn.Raw,
				Category:  model.RestCategoryDutyRest,
				RestDate:  target,
				Note:      fmt.Sprintf("auto-generated from duty roster %s", rosterDate),
			})
			continue
		}

		// no directory match: keep the raw name, flag the mismatch
		unmatched = append(unmatched, rn.Raw)
		records = append(records, model.RestRecord{
			StaffName: rn.Raw,
			Category:  model.RestCategoryDutyRest,
			RestDate:  target,
			Note:      fmt.Sprintf("auto-generated from duty roster %s; no staff directory match", rosterDate),
		})
	}

	// 4. all-or-nothing batch insert
	if err := s.repo.RestRecord.CreateBatch(ctx, records); err != nil {
		s.logger.Error("rest record batch create failed",
			zap.String("date", req.Date), zap.Int("count", len(records)), zap.Error(err))
		return nil, err
	}

	return &dto.AutoGenerateResponse{
		Created:     len(records),
		Skipped:     skipped,
		RosterFound: true,
		RosterDate:  rosterDate,
		Unmatched:   unmatched,
	}, nil
}

// ════════════════════════════════════════════════════════════
// ListByDate
// ════════════════════════════════════════════════════════════

func (s *restService) ListByDate(ctx context.Context, req *dto.RestRecordListRequest) ([]dto.RestRecordResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.RestRecord.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("list rest records failed", zap.String("date", req.Date), zap.Error(err))
		return nil, err
	}

	result := make([]dto.RestRecordResponse, 0, len(records))
	for i := range records {
		result = append(result, toRestRecordResponse(&records[i]))
	}
	return result, nil
}

// ── helpers ──

func toRestRecordResponse(record *model.RestRecord) dto.RestRecordResponse {
	resp := dto.RestRecordResponse{
		ID:        record.RestRecordID,
		StaffName: record.StaffName,
		Resolved:  record.StaffID != nil,
		Category:  record.Category,
		RestDate:  record.RestDate.Format(model.DateOnly),
		Note:      record.Note,
		CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339),
	}
	if record.StaffID != nil {
		resp.StaffID = *record.StaffID
	}
	return resp
}
