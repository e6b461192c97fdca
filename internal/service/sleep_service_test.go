package service

import (
	"context"
	"testing"

	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/pkg/apperr"
)

func newSleepService(t *testing.T) (SleepService, *model.Patient) {
	t.Helper()
	db := newTestDB(t)
	patient := seedPatient(t, db)
	svc := NewSleepService(repository.NewSleepRepository(db), repository.NewPatientRepository(db))
	return svc, patient
}

func TestCreateSleep(t *testing.T) {
	svc, patient := newSleepService(t)

	sleep, err := svc.CreateSleep(context.Background(), CreateSleepRequest{
		ResidentID: patient.ID.String(),
		MarkAs:     model.SleepMarkSleeping,
		DateTaken:  "2026-08-21",
		MarkedFor:  "2:00AM",
	})
	if err != nil {
		t.Fatalf("CreateSleep: %v", err)
	}
	if sleep.ResidentID == nil || *sleep.ResidentID != patient.ID {
		t.Errorf("resident = %v, want %s", sleep.ResidentID, patient.ID)
	}
	if sleep.MarkAs != model.SleepMarkSleeping {
		t.Errorf("markAs = %q", sleep.MarkAs)
	}
	if sleep.ReasonFilledLate != nil {
		t.Errorf("reasonFilledLate = %v, want nil", sleep.ReasonFilledLate)
	}
}

func TestCreateSleepBadSlot(t *testing.T) {
	svc, patient := newSleepService(t)

	_, err := svc.CreateSleep(context.Background(), CreateSleepRequest{
		ResidentID: patient.ID.String(),
		MarkAs:     model.SleepMarkAwake,
		DateTaken:  "2026-08-21",
		MarkedFor:  "2:30AM",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
	if msg := apperr.FieldsOf(err)["markedFor"]; msg == "" {
		t.Error("expected a field error on markedFor")
	}
}

func TestUpdateSleepMark(t *testing.T) {
	svc, patient := newSleepService(t)
	ctx := context.Background()

	sleep, err := svc.CreateSleep(ctx, CreateSleepRequest{
		ResidentID: patient.ID.String(),
		MarkAs:     model.SleepMarkSleeping,
		DateTaken:  "2026-08-21",
		MarkedFor:  "3:00AM",
	})
	if err != nil {
		t.Fatalf("CreateSleep: %v", err)
	}

	updated, err := svc.UpdateSleep(ctx, sleep.ID, UpdateSleepRequest{MarkAs: model.SleepMarkAwake, MarkedFor: "4:00AM"})
	if err != nil {
		t.Fatalf("UpdateSleep: %v", err)
	}
	if updated.MarkAs != model.SleepMarkAwake || updated.MarkedFor != "4:00AM" {
		t.Errorf("markAs = %q markedFor = %q", updated.MarkAs, updated.MarkedFor)
	}

	if _, err := svc.UpdateSleep(ctx, sleep.ID, UpdateSleepRequest{MarkedFor: "midnight"}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestListSleepsByDay(t *testing.T) {
	svc, patient := newSleepService(t)
	ctx := context.Background()

	entries := []struct{ date, slot string }{
		{"2026-08-21", "10:00PM"},
		{"2026-08-21", "11:00PM"},
		{"2026-08-22", "12:00AM"},
	}
	for _, e := range entries {
		if _, err := svc.CreateSleep(ctx, CreateSleepRequest{
			ResidentID: patient.ID.String(),
			MarkAs:     model.SleepMarkSleeping,
			DateTaken:  e.date,
			MarkedFor:  e.slot,
		}); err != nil {
			t.Fatalf("CreateSleep %s %s: %v", e.date, e.slot, err)
		}
	}

	_, total, err := svc.ListSleeps(ctx, &patient.ID, "2026-08-21", 0, 10)
	if err != nil {
		t.Fatalf("ListSleeps: %v", err)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}

	if _, _, err := svc.ListSleeps(ctx, nil, "yesterday", 0, 10); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestDeleteSleep(t *testing.T) {
	svc, patient := newSleepService(t)
	ctx := context.Background()

	sleep, err := svc.CreateSleep(ctx, CreateSleepRequest{
		ResidentID: patient.ID.String(),
		MarkAs:     model.SleepMarkAwake,
		DateTaken:  "2026-08-21",
		MarkedFor:  "7:00AM",
	})
	if err != nil {
		t.Fatalf("CreateSleep: %v", err)
	}
	if err := svc.DeleteSleep(ctx, sleep.ID); err != nil {
		t.Fatalf("DeleteSleep: %v", err)
	}
	if _, err := svc.GetSleep(ctx, sleep.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want not found", apperr.KindOf(err))
	}
}
