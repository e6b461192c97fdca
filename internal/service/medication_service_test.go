package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/pkg/apperr"
)

func newMedicationService(db *gorm.DB) MedicationService {
	return NewMedicationService(
		repository.NewMedicationRepository(db),
		repository.NewAdministrationRepository(db),
		repository.NewPatientRepository(db),
		repository.NewUserRepository(db),
		repository.NewTransactionManager(db),
		nopNotifier{},
		NopPublisher(),
	)
}

func seedMedication(t *testing.T, svc MedicationService, patient *model.Patient) *model.Medication {
	t.Helper()
	medication, err := svc.CreateMedication(context.Background(), CreateMedicationRequest{
		PatientID:      patient.ID.String(),
		MedicationName: "Donepezil",
		MedicationCode: "DNP-10",
		EquivalentTo:   "Aricept",
		Instructions:   "With evening meal",
		Quantity:       "10mg",
		Diagnosis:      "dementia",
		MedicationTime: []string{"18:00"},
	})
	if err != nil {
		t.Fatalf("seed medication: %v", err)
	}
	return medication
}

func TestCreateMedicationDefaultsActive(t *testing.T) {
	db := newTestDB(t)
	svc := newMedicationService(db)
	patient := seedPatient(t, db)

	medication := seedMedication(t, svc, patient)
	if medication.Status != model.MedicationStatusActive {
		t.Errorf("status = %q, want active", medication.Status)
	}
}

func TestCreateAdministrationDuplicateDay(t *testing.T) {
	db := newTestDB(t)
	svc := newMedicationService(db)
	careGiver := seedStaff(t, db, model.RoleCareGiver)
	patient := seedPatient(t, db)
	medication := seedMedication(t, svc, patient)

	req := CreateAdministrationRequest{
		PatientID:         patient.ID.String(),
		MedicationID:      medication.ID.String(),
		TimesAdministered: []string{"18:05"},
		AdministeredOn:    "2026-08-28",
	}
	if _, err := svc.CreateAdministration(context.Background(), careGiver, req); err != nil {
		t.Fatalf("first administration: %v", err)
	}

	_, err := svc.CreateAdministration(context.Background(), careGiver, req)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("same-day kind = %v, want conflict", apperr.KindOf(err))
	}

	// A different medication on the same day is its own record.
	other := seedMedication(t, svc, patient)
	req.MedicationID = other.ID.String()
	if _, err := svc.CreateAdministration(context.Background(), careGiver, req); err != nil {
		t.Errorf("second medication same day: %v", err)
	}
}

func TestCreateAdministrationWrongPatient(t *testing.T) {
	db := newTestDB(t)
	svc := newMedicationService(db)
	careGiver := seedStaff(t, db, model.RoleCareGiver)
	patientA := seedPatient(t, db)
	patientB := seedPatient(t, db)
	medication := seedMedication(t, svc, patientA)

	_, err := svc.CreateAdministration(context.Background(), careGiver, CreateAdministrationRequest{
		PatientID:         patientB.ID.String(),
		MedicationID:      medication.ID.String(),
		TimesAdministered: []string{"18:05"},
		AdministeredOn:    "2026-08-28",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestCreateAdministrationInactiveMedication(t *testing.T) {
	db := newTestDB(t)
	svc := newMedicationService(db)
	careGiver := seedStaff(t, db, model.RoleCareGiver)
	patient := seedPatient(t, db)
	medication := seedMedication(t, svc, patient)

	if _, err := svc.UpdateMedication(context.Background(), medication.ID, UpdateMedicationRequest{
		Status: model.MedicationStatusPaused,
	}); err != nil {
		t.Fatalf("pause medication: %v", err)
	}

	_, err := svc.CreateAdministration(context.Background(), careGiver, CreateAdministrationRequest{
		PatientID:         patient.ID.String(),
		MedicationID:      medication.ID.String(),
		TimesAdministered: []string{"18:05"},
		AdministeredOn:    "2026-08-28",
	})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation", apperr.KindOf(err))
	}
}
