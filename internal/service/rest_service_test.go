package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nurse103/QLNS-B11-sub000/internal/dto"
	"github.com/nurse103/QLNS-B11-sub000/internal/model"
	"github.com/nurse103/QLNS-B11-sub000/internal/repository"
)

// ── fixtures ──

func newRestFixture() (*mockStaffRepo, *mockDutyRosterRepo, *mockRestRecordRepo, RestService) {
	staffRepo := newMockStaffRepo()
	rosterRepo := newMockDutyRosterRepo()
	restRepo := newMockRestRecordRepo()
	repo := &repository.Repository{
		Staff:      staffRepo,
		DutyRoster: rosterRepo,
		RestRecord: restRepo,
	}
	return staffRepo, rosterRepo, restRepo, NewRestService(repo, zap.NewNop())
}

// ── auto generation ──

func TestRestService_AutoGenerate(t *testing.T) {
	staffRepo, rosterRepo, restRepo, svc := newRestFixture()
	staffRepo.add("Nguyễn Văn A", model.CategoryCareerMilitary, true)
	staffRepo.add("Trần Thị B", model.CategoryContractLabor, true)
	seedRoster(rosterRepo, "2026-03-14", func(e *model.DutyRosterEntry) {
		e.Nurse = "Nguyễn Văn A, Trần Thị B\nLê Văn C"
	})

	resp, err := svc.AutoGenerate(context.Background(), &dto.AutoGenerateRequest{Date: "2026-03-15"})
	if err != nil {
		t.Fatalf("AutoGenerate error: %v", err)
	}

	if resp.Created != 3 {
		t.Errorf("created = %d, want 3", resp.Created)
	}
	if resp.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", resp.Skipped)
	}
	if !resp.RosterFound || resp.RosterDate != "2026-03-14" {
		t.Errorf("roster lookup = found=%v date=%q, want found on 2026-03-14", resp.RosterFound, resp.RosterDate)
	}
	if len(resp.Unmatched) != 1 || resp.Unmatched[0] != "Lê Văn C" {
		t.Errorf("unmatched = %v, want [Lê Văn C]", resp.Unmatched)
	}

	if len(restRepo.records) != 3 {
		t.Fatalf("stored %d records, want 3", len(restRepo.records))
	}
	for _, r := range restRepo.records {
		if r.Category != model.RestCategoryDutyRest {
			t.Errorf("record %q category = %q, want duty_rest", r.StaffName, r.Category)
		}
		if r.RestDate.Format(model.DateOnly) != "2026-03-15" {
			t.Errorf("record %q rest date = %s, want 2026-03-15", r.StaffName, r.RestDate.Format(model.DateOnly))
		}
		if !strings.Contains(r.Note, "2026-03-14") {
			t.Errorf("record %q note should name the source roster, got %q", r.StaffName, r.Note)
		}
		if r.StaffName == "Lê Văn C" {
			if r.StaffID != nil {
				t.Error("unmatched record must carry no staff reference")
			}
			if !strings.Contains(r.Note, "no staff directory match") {
				t.Errorf("unmatched record note should flag the mismatch, got %q", r.Note)
			}
		} else if r.StaffID == nil {
			t.Errorf("matched record %q must reference the directory entry", r.StaffName)
		}
	}
}

func TestRestService_AutoGenerate_CaseInsensitiveMatch(t *testing.T) {
	staffRepo, rosterRepo, restRepo, svc := newRestFixture()
	staffRepo.add("Nguyễn Văn A", model.CategoryCareerMilitary, true)
	seedRoster(rosterRepo, "2026-03-14", func(e *model.DutyRosterEntry) {
		e.Nurse = "nguyễn văn a"
	})

	resp, err := svc.AutoGenerate(context.Background(), &dto.AutoGenerateRequest{Date: "2026-03-15"})
	if err != nil {
		t.Fatalf("AutoGenerate error: %v", err)
	}
	if resp.Created != 1 || len(resp.Unmatched) != 0 {
		t.Fatalf("created = %d, unmatched = %v; differently-cased name should still match", resp.Created, resp.Unmatched)
	}
	if restRepo.records[0].StaffID == nil {
		t.Error("case-insensitive match must resolve to the directory entry")
	}
}

func TestRestService_AutoGenerate_RepeatedRosterName(t *testing.T) {
	staffRepo, rosterRepo, restRepo, svc := newRestFixture()
	staffRepo.add("Nguyễn Văn A", model.CategoryCareerMilitary, true)
	// the tokenizer keeps duplicates, but one staff member gets at most
	// one record per date even within a single batch; free-text names
	// carry no staff reference and are not deduplicated
	seedRoster(rosterRepo, "2026-03-14", func(e *model.DutyRosterEntry) {
		e.Nurse = "Nguyễn Văn A, Nguyễn Văn A\nLê Văn C, Lê Văn C"
	})

	resp, err := svc.AutoGenerate(context.Background(), &dto.AutoGenerateRequest{Date: "2026-03-15"})
	if err != nil {
		t.Fatalf("AutoGenerate error: %v", err)
	}
	if resp.Created != 3 {
		t.Errorf("created = %d, want 3", resp.Created)
	}
	if resp.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", resp.Skipped)
	}

	var resolved int
	for _, r := range restRepo.records {
		if r.StaffID != nil {
			resolved++
		}
	}
	if resolved != 1 {
		t.Errorf("stored %d records with a staff reference, want 1", resolved)
	}
	if len(restRepo.records) != 3 {
		t.Errorf("stored %d records total, want 3", len(restRepo.records))
	}
}

func TestRestService_AutoGenerate_SkipsExisting(t *testing.T) {
	staffRepo, rosterRepo, restRepo, svc := newRestFixture()
	staffRepo.add("Nguyễn Văn A", model.CategoryCareerMilitary, true)
	staffRepo.add("Trần Thị B", model.CategoryContractLabor, true)
	staffRepo.add("Lê Văn C", model.CategoryCareerMilitary, true)
	seedRoster(rosterRepo, "2026-03-14", func(e *model.DutyRosterEntry) {
		e.Nurse = "Nguyễn Văn A, Trần Thị B, Lê Văn C"
	})

	// one nurse already holds a record for the target date
	existing := staffRepo.staff[0].StaffID
	_ = restRepo.Create(context.Background(), &model.RestRecord{
		StaffID:   &existing,
		StaffName: "Nguyễn Văn A",
		Category:  model.RestCategoryBusinessTrip,
		RestDate:  mustDate(t, "2026-03-15"),
	})

	resp, err := svc.AutoGenerate(context.Background(), &dto.AutoGenerateRequest{Date: "2026-03-15"})
	if err != nil {
		t.Fatalf("AutoGenerate error: %v", err)
	}
	if resp.Created != 2 {
		t.Errorf("created = %d, want 2", resp.Created)
	}
	if resp.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", resp.Skipped)
	}
	if len(restRepo.records) != 3 {
		t.Errorf("stored %d records total, want 3", len(restRepo.records))
	}
}

func TestRestService_AutoGenerate_Idempotent(t *testing.T) {
	staffRepo, rosterRepo, restRepo, svc := newRestFixture()
	staffRepo.add("Nguyễn Văn A", model.CategoryCareerMilitary, true)
	staffRepo.add("Trần Thị B", model.CategoryContractLabor, true)
	seedRoster(rosterRepo, "2026-03-14", func(e *model.DutyRosterEntry) {
		e.Nurse = "Nguyễn Văn A, Trần Thị B"
	})

	req := &dto.AutoGenerateRequest{Date: "2026-03-15"}
	if _, err := svc.AutoGenerate(context.Background(), req); err != nil {
		t.Fatalf("first run error: %v", err)
	}

	resp, err := svc.AutoGenerate(context.Background(), req)
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}
	if resp.Created != 0 {
		t.Errorf("second run created = %d, want 0", resp.Created)
	}
	if resp.Skipped != 2 {
		t.Errorf("second run skipped = %d, want 2", resp.Skipped)
	}
	if len(restRepo.records) != 2 {
		t.Errorf("stored %d records after two runs, want 2", len(restRepo.records))
	}
}

func TestRestService_AutoGenerate_NoPriorRoster(t *testing.T) {
	_, _, restRepo, svc := newRestFixture()

	resp, err := svc.AutoGenerate(context.Background(), &dto.AutoGenerateRequest{Date: "2026-03-15"})
	if err != nil {
		t.Fatalf("missing roster must not be an error, got: %v", err)
	}
	if resp.Created != 0 || resp.RosterFound {
		t.Errorf("expected nothing generated, got %+v", resp)
	}
	if resp.Message == "" {
		t.Error("outcome must carry an explanatory message")
	}
	if len(restRepo.records) != 0 {
		t.Errorf("stored %d records, want 0", len(restRepo.records))
	}
}

func TestRestService_AutoGenerate_EmptyNurseField(t *testing.T) {
	_, rosterRepo, restRepo, svc := newRestFixture()
	seedRoster(rosterRepo, "2026-03-14", func(e *model.DutyRosterEntry) {
		e.Doctor = "Nguyễn Văn A"
		e.Nurse = "  \n "
	})

	resp, err := svc.AutoGenerate(context.Background(), &dto.AutoGenerateRequest{Date: "2026-03-15"})
	if err != nil {
		t.Fatalf("AutoGenerate error: %v", err)
	}
	if resp.Created != 0 || !resp.RosterFound {
		t.Errorf("expected found roster with nothing generated, got %+v", resp)
	}
	if resp.Message == "" {
		t.Error("outcome must carry an explanatory message")
	}
	if len(restRepo.records) != 0 {
		t.Errorf("stored %d records, want 0", len(restRepo.records))
	}
}

func TestRestService_AutoGenerate_BatchFailureAborts(t *testing.T) {
	staffRepo, rosterRepo, restRepo, svc := newRestFixture()
	staffRepo.add("Nguyễn Văn A", model.CategoryCareerMilitary, true)
	staffRepo.add("Trần Thị B", model.CategoryContractLabor, true)
	seedRoster(rosterRepo, "2026-03-14", func(e *model.DutyRosterEntry) {
		e.Nurse = "Nguyễn Văn A, Trần Thị B"
	})
	restRepo.failOnName = "Trần Thị B"

	_, err := svc.AutoGenerate(context.Background(), &dto.AutoGenerateRequest{Date: "2026-03-15"})
	if err == nil {
		t.Fatal("expected the batch failure to surface")
	}
	// all-or-nothing: the earlier record must not survive
	if len(restRepo.records) != 0 {
		t.Errorf("stored %d records after failed batch, want 0", len(restRepo.records))
	}
}

func TestRestService_AutoGenerate_InFlight(t *testing.T) {
	_, _, _, svc := newRestFixture()

	rest := svc.(*restService)
	token, ok := rest.generate.Acquire()
	if !ok {
		t.Fatal("fixture slot should be free")
	}
	defer rest.generate.Release(token)

	_, err := svc.AutoGenerate(context.Background(), &dto.AutoGenerateRequest{Date: "2026-03-15"})
	if !errors.Is(err, ErrGenerateInFlight) {
		t.Errorf("expected ErrGenerateInFlight, got %v", err)
	}
}

func TestToRestRecordResponse_TimestampUTC(t *testing.T) {
	hcm := time.FixedZone("ICT", 7*3600)
	record := &model.RestRecord{
		StaffName: "Nguyễn Văn A",
		Category:  model.RestCategoryDutyRest,
		RestDate:  mustDate(t, "2026-03-15"),
	}
	record.CreatedAt = time.Date(2026, 3, 15, 9, 30, 0, 0, hcm)

	resp := toRestRecordResponse(record)
	// local times are converted before the Z-suffixed wire form
	if resp.CreatedAt != "2026-03-15T02:30:00Z" {
		t.Errorf("created_at = %q, want 2026-03-15T02:30:00Z", resp.CreatedAt)
	}
}

// ── listing ──

func TestRestService_ListByDate(t *testing.T) {
	staffRepo, _, restRepo, svc := newRestFixture()
	staffRepo.add("Nguyễn Văn A", model.CategoryCareerMilitary, true)
	staffID := staffRepo.staff[0].StaffID

	_ = restRepo.Create(context.Background(), &model.RestRecord{
		StaffID:   &staffID,
		StaffName: "Nguyễn Văn A",
		Category:  model.RestCategoryDutyRest,
		RestDate:  mustDate(t, "2026-03-15"),
	})
	_ = restRepo.Create(context.Background(), &model.RestRecord{
		StaffName: "Lê Văn C",
		Category:  model.RestCategoryDutyRest,
		RestDate:  mustDate(t, "2026-03-15"),
	})
	_ = restRepo.Create(context.Background(), &model.RestRecord{
		StaffName: "Nguyễn Văn A",
		StaffID:   &staffID,
		Category:  model.RestCategoryTraining,
		RestDate:  mustDate(t, "2026-03-16"),
	})

	result, err := svc.ListByDate(context.Background(), &dto.RestRecordListRequest{Date: "2026-03-15"})
	if err != nil {
		t.Fatalf("ListByDate error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 records for the date, got %d", len(result))
	}
	for _, r := range result {
		switch r.StaffName {
		case "Nguyễn Văn A":
			if !r.Resolved || r.StaffID != staffID {
				t.Errorf("matched record should be resolved: %+v", r)
			}
		case "Lê Văn C":
			if r.Resolved || r.StaffID != "" {
				t.Errorf("free-text record should stay unresolved: %+v", r)
			}
		default:
			t.Errorf("unexpected record %+v", r)
		}
	}
}
