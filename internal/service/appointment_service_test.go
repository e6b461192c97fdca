package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/pkg/apperr"
)

func newAppointmentService(t *testing.T) (AppointmentService, *model.Patient) {
	t.Helper()
	db := newTestDB(t)
	patient := seedPatient(t, db)
	svc := NewAppointmentService(repository.NewAppointmentRepository(db), repository.NewPatientRepository(db))
	return svc, patient
}

func TestCreateAppointment(t *testing.T) {
	svc, patient := newAppointmentService(t)
	ctx := context.Background()

	appointment, err := svc.CreateAppointment(ctx, CreateAppointmentRequest{
		PatientID:           patient.ID.String(),
		DateTaken:           "2026-08-20",
		Details:             "routine dental cleaning",
		Type:                "Dentist",
		NextAppointmentDate: "2027-02-20",
	})
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if appointment.PatientID != patient.ID {
		t.Errorf("patient = %s, want %s", appointment.PatientID, patient.ID)
	}
	if appointment.Type != "Dentist" {
		t.Errorf("type = %q", appointment.Type)
	}
	if appointment.Details == nil || *appointment.Details != "routine dental cleaning" {
		t.Errorf("details = %v", appointment.Details)
	}
	if appointment.NextAppointmentDate == nil {
		t.Error("next appointment date not set")
	}
}

func TestCreateAppointmentUnknownType(t *testing.T) {
	svc, patient := newAppointmentService(t)

	_, err := svc.CreateAppointment(context.Background(), CreateAppointmentRequest{
		PatientID: patient.ID.String(),
		DateTaken: "2026-08-20",
		Type:      "Astrologer",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
	if msg := apperr.FieldsOf(err)["type"]; msg == "" {
		t.Error("expected a field error on type")
	}
}

func TestCreateAppointmentUnknownPatient(t *testing.T) {
	svc, _ := newAppointmentService(t)

	_, err := svc.CreateAppointment(context.Background(), CreateAppointmentRequest{
		PatientID: uuid.NewString(),
		DateTaken: "2026-08-20",
		Type:      "Clinician",
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want not found", apperr.KindOf(err))
	}
}

func TestUpdateAppointment(t *testing.T) {
	svc, patient := newAppointmentService(t)
	ctx := context.Background()

	appointment, err := svc.CreateAppointment(ctx, CreateAppointmentRequest{
		PatientID: patient.ID.String(),
		DateTaken: "2026-08-20",
		Type:      "Specialist",
	})
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}

	updated, err := svc.UpdateAppointment(ctx, appointment.ID, UpdateAppointmentRequest{
		Details: "referred to cardiology",
		Type:    "Other",
	})
	if err != nil {
		t.Fatalf("UpdateAppointment: %v", err)
	}
	if updated.Type != "Other" {
		t.Errorf("type = %q", updated.Type)
	}
	if updated.Details == nil || *updated.Details != "referred to cardiology" {
		t.Errorf("details = %v", updated.Details)
	}

	if _, err := svc.UpdateAppointment(ctx, appointment.ID, UpdateAppointmentRequest{Type: "Astrologer"}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestListAppointmentsFilters(t *testing.T) {
	svc, patient := newAppointmentService(t)
	ctx := context.Background()

	for _, typ := range []string{"Dentist", "Clinician", "Dentist"} {
		if _, err := svc.CreateAppointment(ctx, CreateAppointmentRequest{
			PatientID: patient.ID.String(),
			DateTaken: "2026-08-20",
			Type:      typ,
		}); err != nil {
			t.Fatalf("CreateAppointment: %v", err)
		}
	}

	items, total, err := svc.ListAppointments(ctx, &patient.ID, "Dentist", 0, 10)
	if err != nil {
		t.Fatalf("ListAppointments: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("total = %d, items = %d, want 2", total, len(items))
	}

	_, total, err = svc.ListAppointments(ctx, nil, "", 0, 10)
	if err != nil {
		t.Fatalf("ListAppointments: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
}

func TestDeleteAppointment(t *testing.T) {
	svc, patient := newAppointmentService(t)
	ctx := context.Background()

	appointment, err := svc.CreateAppointment(ctx, CreateAppointmentRequest{
		PatientID: patient.ID.String(),
		DateTaken: "2026-08-20",
		Type:      "Counsellor",
	})
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if err := svc.DeleteAppointment(ctx, appointment.ID); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}
	if _, err := svc.GetAppointment(ctx, appointment.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want not found", apperr.KindOf(err))
	}
	if err := svc.DeleteAppointment(ctx, appointment.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("second delete kind = %v, want not found", apperr.KindOf(err))
	}
}
