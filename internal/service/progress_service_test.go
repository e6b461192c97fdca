package service

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/pkg/apperr"
)

func newProgressService(db *gorm.DB) ProgressService {
	return NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewPatientRepository(db),
		repository.NewUserRepository(db),
		repository.NewTransactionManager(db),
		nopNotifier{},
		NopPublisher(),
	)
}

func TestWeekRange(t *testing.T) {
	cases := []struct {
		name       string
		date       string
		wantMonday string
		wantSunday string
	}{
		{"mid-week", "2026-08-26", "2026-08-24", "2026-08-30"},
		{"monday", "2026-08-24", "2026-08-24", "2026-08-30"},
		{"sunday", "2026-08-30", "2026-08-24", "2026-08-30"},
		{"across month boundary", "2026-09-01", "2026-08-31", "2026-09-06"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			date, _ := time.Parse("2006-01-02", tc.date)
			monday, sunday := weekRange(date)
			if monday.Format("2006-01-02") != tc.wantMonday {
				t.Errorf("monday = %s, want %s", monday.Format("2006-01-02"), tc.wantMonday)
			}
			if sunday.Format("2006-01-02") != tc.wantSunday {
				t.Errorf("sunday = %s, want %s", sunday.Format("2006-01-02"), tc.wantSunday)
			}
		})
	}
}

func TestMonthRange(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-02-17")
	first, last := monthRange(date)
	if first.Format("2006-01-02") != "2026-02-01" {
		t.Errorf("first = %s, want 2026-02-01", first.Format("2006-01-02"))
	}
	if last.Format("2006-01-02") != "2026-02-28" {
		t.Errorf("last = %s, want 2026-02-28", last.Format("2006-01-02"))
	}
}

func TestCreateWeeklyProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	careGiver := seedStaff(t, db, model.RoleCareGiver)
	patient := seedPatient(t, db)

	update, err := svc.CreateProgress(context.Background(), careGiver, CreateProgressRequest{
		PatientID: patient.ID.String(),
		Notes:     "settled in well this week",
		DateTaken: "2026-08-26",
		Type:      model.ProgressTypeWeekly,
	})
	if err != nil {
		t.Fatalf("CreateProgress: %v", err)
	}
	if update.Status != model.ProgressStatusPending {
		t.Errorf("status = %q, want pending", update.Status)
	}
	if update.WeightDeviation != nil {
		t.Error("weekly updates carry no weight deviation")
	}

	// Same ISO week, different day: rejected.
	_, err = svc.CreateProgress(context.Background(), careGiver, CreateProgressRequest{
		PatientID: patient.ID.String(),
		Notes:     "second note",
		DateTaken: "2026-08-28",
		Type:      model.ProgressTypeWeekly,
	})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("same-week kind = %v, want conflict", apperr.KindOf(err))
	}

	// Next Monday opens a new week.
	if _, err := svc.CreateProgress(context.Background(), careGiver, CreateProgressRequest{
		PatientID: patient.ID.String(),
		Notes:     "new week",
		DateTaken: "2026-08-31",
		Type:      model.ProgressTypeWeekly,
	}); err != nil {
		t.Errorf("next-week note: %v", err)
	}
}

func TestCreateMonthlyProgressRequiresWeight(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	careGiver := seedStaff(t, db, model.RoleCareGiver)
	patient := seedPatient(t, db)

	_, err := svc.CreateProgress(context.Background(), careGiver, CreateProgressRequest{
		PatientID: patient.ID.String(),
		Notes:     "monthly summary",
		DateTaken: "2026-08-26",
		Type:      model.ProgressTypeMonthly,
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
	if apperr.FieldsOf(err)["weight"] == "" {
		t.Error("expected a weight field error")
	}
}

func TestMonthlyWeightDeviation(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	careGiver := seedStaff(t, db, model.RoleCareGiver)
	patient := seedPatient(t, db)

	july := 72
	first, err := svc.CreateProgress(context.Background(), careGiver, CreateProgressRequest{
		PatientID: patient.ID.String(),
		Notes:     "july summary",
		DateTaken: "2026-07-15",
		Type:      model.ProgressTypeMonthly,
		Weight:    &july,
	})
	if err != nil {
		t.Fatalf("july note: %v", err)
	}
	// No June note exists, so the first deviation is zero.
	if first.WeightDeviation == nil || *first.WeightDeviation != 0 {
		t.Errorf("first deviation = %v, want 0", first.WeightDeviation)
	}

	august := 69
	second, err := svc.CreateProgress(context.Background(), careGiver, CreateProgressRequest{
		PatientID: patient.ID.String(),
		Notes:     "august summary",
		DateTaken: "2026-08-14",
		Type:      model.ProgressTypeMonthly,
		Weight:    &august,
	})
	if err != nil {
		t.Fatalf("august note: %v", err)
	}
	if second.WeightDeviation == nil || *second.WeightDeviation != -3 {
		t.Errorf("august deviation = %v, want -3", second.WeightDeviation)
	}

	// A second monthly note in August is rejected.
	_, err = svc.CreateProgress(context.Background(), careGiver, CreateProgressRequest{
		PatientID: patient.ID.String(),
		Notes:     "duplicate",
		DateTaken: "2026-08-30",
		Type:      model.ProgressTypeMonthly,
		Weight:    &august,
	})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("same-month kind = %v, want conflict", apperr.KindOf(err))
	}
}

func TestWeeklyAndMonthlyCoexist(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	careGiver := seedStaff(t, db, model.RoleCareGiver)
	patient := seedPatient(t, db)

	weight := 70
	if _, err := svc.CreateProgress(context.Background(), careGiver, CreateProgressRequest{
		PatientID: patient.ID.String(),
		Notes:     "monthly",
		DateTaken: "2026-08-26",
		Type:      model.ProgressTypeMonthly,
		Weight:    &weight,
	}); err != nil {
		t.Fatalf("monthly note: %v", err)
	}

	// The per-period rule is scoped by type: a weekly note the same day
	// is fine.
	if _, err := svc.CreateProgress(context.Background(), careGiver, CreateProgressRequest{
		PatientID: patient.ID.String(),
		Notes:     "weekly",
		DateTaken: "2026-08-26",
		Type:      model.ProgressTypeWeekly,
	}); err != nil {
		t.Errorf("weekly note alongside monthly: %v", err)
	}
}

func TestUpdateProgressRecomputesDeviation(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(db)
	careGiver := seedStaff(t, db, model.RoleCareGiver)
	patient := seedPatient(t, db)

	july, august := 72, 69
	if _, err := svc.CreateProgress(context.Background(), careGiver, CreateProgressRequest{
		PatientID: patient.ID.String(),
		Notes:     "july summary",
		DateTaken: "2026-07-15",
		Type:      model.ProgressTypeMonthly,
		Weight:    &july,
	}); err != nil {
		t.Fatalf("july note: %v", err)
	}
	created, err := svc.CreateProgress(context.Background(), careGiver, CreateProgressRequest{
		PatientID: patient.ID.String(),
		Notes:     "august summary",
		DateTaken: "2026-08-14",
		Type:      model.ProgressTypeMonthly,
		Weight:    &august,
	})
	if err != nil {
		t.Fatalf("august note: %v", err)
	}

	corrected := 74
	edited, err := svc.UpdateProgress(context.Background(), created.ID, UpdateProgressRequest{
		Weight:       &corrected,
		ReasonEdited: "scale misread on first weigh-in",
	})
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if edited.Status != model.ProgressStatusUpdated {
		t.Errorf("status = %q, want updated", edited.Status)
	}
	if edited.WeightDeviation == nil || *edited.WeightDeviation != 2 {
		t.Errorf("recomputed deviation = %v, want 2", edited.WeightDeviation)
	}
}
