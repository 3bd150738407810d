package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nurse103/QLNS-B11-sub000/internal/dto"
	"github.com/nurse103/QLNS-B11-sub000/internal/model"
	"github.com/nurse103/QLNS-B11-sub000/internal/repository"
)

// ── availability module business errors ──

var (
	ErrInvalidDate = errors.New("invalid calendar date")
	ErrUnknownSlot = errors.New("unknown assignment slot")
)

// Slot identifies one field of the daily assignment form.
type Slot string

const (
	SlotRoom1      Slot = "room_1"
	SlotRoom2      Slot = "room_2"
	SlotRoom3      Slot = "room_3"
	SlotRoom4      Slot = "room_4"
	SlotOutsideRun Slot = "outside_run"
	SlotImaging    Slot = "imaging"
	SlotDataEntry  Slot = "data_entry"
)

// allSlots is the form's fixed slot order.
var allSlots = []Slot{
	SlotRoom1, SlotRoom2, SlotRoom3, SlotRoom4,
	SlotOutsideRun, SlotImaging, SlotDataEntry,
}

// roomChain is the linear precedence chain: a name placed in an earlier
// chain slot is excluded from every later chain slot. Imaging and
// data-entry sit outside this chain.
var roomChain = []Slot{SlotRoom1, SlotRoom2, SlotRoom3, SlotRoom4, SlotOutsideRun}

func parseSlot(s string) (Slot, error) {
	for _, slot := range allSlots {
		if string(slot) == s {
			return slot, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, s)
}

// formValue returns the raw text the draft currently holds for slot.
func formValue(form *dto.AssignmentFormState, slot Slot) string {
	switch slot {
	case SlotRoom1:
		return form.Room1
	case SlotRoom2:
		return form.Room2
	case SlotRoom3:
		return form.Room3
	case SlotRoom4:
		return form.Room4
	case SlotOutsideRun:
		return form.OutsideRun
	case SlotImaging:
		return form.Imaging
	case SlotDataEntry:
		return form.DataEntry
	}
	return ""
}

// AvailabilityService answers which staff are eligible for each slot of a
// day's assignment form, given the prior day's on-call roster and the
// selections already made in earlier slots.
type AvailabilityService interface {
	// ListRosterMonth returns the duty roster entries of one month.
	ListRosterMonth(ctx context.Context, req *dto.DutyRosterListRequest) ([]dto.DutyRosterResponse, error)
	// PriorRoster looks up the roster entry for the day before date.
	// A missing entry is a normal outcome, reported via Found=false.
	PriorRoster(ctx context.Context, req *dto.PriorRosterRequest) (*dto.PriorRosterResponse, error)
	// SlotOptions computes the eligible pool for a single slot.
	SlotOptions(ctx context.Context, req *dto.SlotOptionsRequest) (*dto.SlotOptionsResponse, error)
	// FormOptions recomputes the pools of all seven slots.
	FormOptions(ctx context.Context, req *dto.FormOptionsRequest) (*dto.FormOptionsResponse, error)
}

type availabilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAvailabilityService creates an AvailabilityService instance.
func NewAvailabilityService(repo *repository.Repository, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Roster Lookup
// ════════════════════════════════════════════════════════════

// priorRosterEntry finds the duty roster entry for the day before target:
// it fetches the month containing target-1 (the day before the first of a
// month lands in the previous month) and picks the exact-date entry.
// Returns nil when no entry exists; callers surface that explicitly.
func priorRosterEntry(ctx context.Context, repo repository.DutyRosterRepository, target time.Time) (*model.DutyRosterEntry, error) {
	prior := target.AddDate(0, 0, -1)

	entries, err := repo.ListByMonth(ctx, prior.Year(), prior.Month())
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if sameDay(entries[i].RosterDate, prior) {
			return &entries[i], nil
		}
	}
	return nil, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func (s *availabilityService) ListRosterMonth(ctx context.Context, req *dto.DutyRosterListRequest) ([]dto.DutyRosterResponse, error) {
	entries, err := s.repo.DutyRoster.ListByMonth(ctx, req.Year, time.Month(req.Month))
	if err != nil {
		s.logger.Error("list duty rosters failed",
			zap.Int("year", req.Year), zap.Int("month", req.Month), zap.Error(err))
		return nil, err
	}

	result := make([]dto.DutyRosterResponse, 0, len(entries))
	for i := range entries {
		result = append(result, toRosterResponse(&entries[i]))
	}
	return result, nil
}

func (s *availabilityService) PriorRoster(ctx context.Context, req *dto.PriorRosterRequest) (*dto.PriorRosterResponse, error) {
	target, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	entry, err := priorRosterEntry(ctx, s.repo.DutyRoster, target)
	if err != nil {
		s.logger.Error("prior roster lookup failed", zap.String("date", req.Date), zap.Error(err))
		return nil, err
	}

	resp := &dto.PriorRosterResponse{
		RosterDate: target.AddDate(0, 0, -1).Format(model.DateOnly),
	}
	if entry != nil {
		resp.Found = true
		r := toRosterResponse(entry)
		resp.Entry = &r
	}
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// Exclusion-Set Builder
// ════════════════════════════════════════════════════════════

// exclusionsFor derives the names barred from slot, in rule precedence:
//  1. every name in any duty-role field of the prior day's roster entry
//     ("worked on-call last night") is excluded from every slot;
//  2. within the form, names in earlier room-chain slots are excluded from
//     later chain slots; data-entry additionally excludes the imaging and
//     outside-run selections; imaging excludes nothing from other slots.
//
// Comparison is case-sensitive exact equality on trimmed tokens.
func exclusionsFor(slot Slot, form *dto.AssignmentFormState, priorTeam []string) nameSet {
	excluded := make(nameSet)
	excluded.add(priorTeam...)

	for _, chainSlot := range roomChain {
		if chainSlot == slot {
			break
		}
		if slot != SlotImaging && slot != SlotDataEntry {
			excluded.addField(formValue(form, chainSlot))
		}
	}

	if slot == SlotDataEntry {
		excluded.addField(form.Imaging)
		excluded.addField(form.OutsideRun)
	}

	return excluded
}

// priorTeamNames tokenizes the union of all five duty-role fields.
// A nil entry (no roster for the prior day) yields an empty team: the
// form stays usable.
func priorTeamNames(entry *model.DutyRosterEntry) []string {
	if entry == nil {
		return nil
	}
	var team []string
	for _, field := range entry.RoleFields() {
		team = append(team, SplitNames(field)...)
	}
	return team
}

// ════════════════════════════════════════════════════════════
// Slot Eligibility Resolver
// ════════════════════════════════════════════════════════════

// eligiblePool filters the active directory down to the slot's selectable
// options: only career-military and contract-labor categories participate,
// minus the exclusion set, preserving directory order.
func eligiblePool(staff []model.StaffMember, excluded nameSet) []dto.StaffBrief {
	pool := make([]dto.StaffBrief, 0, len(staff))
	for i := range staff {
		m := &staff[i]
		if !m.Assignable() {
			continue
		}
		if excluded.contains(m.FullName) {
			continue
		}
		pool = append(pool, dto.StaffBrief{
			ID:       m.StaffID,
			FullName: m.FullName,
			Category: m.Category,
		})
	}
	return pool
}

func (s *availabilityService) SlotOptions(ctx context.Context, req *dto.SlotOptionsRequest) (*dto.SlotOptionsResponse, error) {
	slot, err := parseSlot(req.Slot)
	if err != nil {
		return nil, err
	}
	target, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	staff, entry, err := s.loadPoolInputs(ctx, target)
	if err != nil {
		return nil, err
	}

	pool := eligiblePool(staff, exclusionsFor(slot, &req.Form, priorTeamNames(entry)))
	return &dto.SlotOptionsResponse{
		Slot:       string(slot),
		Options:    pool,
		NoEligible: len(pool) == 0,
	}, nil
}

// FormOptions is the orchestrator's recomputation step: one directory and
// roster fetch, then every slot's pool against the same form state, so
// later slots always reflect the current selections in earlier slots.
func (s *availabilityService) FormOptions(ctx context.Context, req *dto.FormOptionsRequest) (*dto.FormOptionsResponse, error) {
	target, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	staff, entry, err := s.loadPoolInputs(ctx, target)
	if err != nil {
		return nil, err
	}

	team := priorTeamNames(entry)
	prior := &dto.PriorRosterResponse{
		RosterDate: target.AddDate(0, 0, -1).Format(model.DateOnly),
	}
	if entry != nil {
		prior.Found = true
		r := toRosterResponse(entry)
		prior.Entry = &r
	}

	resp := &dto.FormOptionsResponse{
		Date:      req.Date,
		PriorDuty: prior,
		Slots:     make([]dto.SlotOptionsResponse, 0, len(allSlots)),
	}
	for _, slot := range allSlots {
		pool := eligiblePool(staff, exclusionsFor(slot, &req.Form, team))
		resp.Slots = append(resp.Slots, dto.SlotOptionsResponse{
			Slot:       string(slot),
			Options:    pool,
			NoEligible: len(pool) == 0,
		})
	}
	return resp, nil
}

func (s *availabilityService) loadPoolInputs(ctx context.Context, target time.Time) ([]model.StaffMember, *model.DutyRosterEntry, error) {
	staff, err := s.repo.Staff.ListActive(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("list active staff failed", zap.Error(err))
		return nil, nil, err
	}

	entry, err := priorRosterEntry(ctx, s.repo.DutyRoster, target)
	if err != nil {
		s.logger.Error("prior roster lookup failed",
			zap.String("date", target.Format(model.DateOnly)), zap.Error(err))
		return nil, nil, err
	}

	return staff, entry, nil
}

// ── helpers ──

func toRosterResponse(entry *model.DutyRosterEntry) dto.DutyRosterResponse {
	return dto.DutyRosterResponse{
		ID:             entry.DutyRosterID,
		RosterDate:     entry.RosterDate.Format(model.DateOnly),
		Doctor:         entry.Doctor,
		Resident:       entry.Resident,
		Postgraduate:   entry.Postgraduate,
		Nurse:          entry.Nurse,
		AssistantNurse: entry.AssistantNurse,
		Team:           priorTeamNames(entry),
	}
}
