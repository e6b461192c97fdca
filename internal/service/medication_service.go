package service

import (
	"context"

	"github.com/google/uuid"

	"carehub/internal/mailer"
	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/internal/ws"
	"carehub/pkg/apperr"
)

// DTOs for request validation
type CreateMedicationRequest struct {
	PatientID      string   `json:"patientId" binding:"required"`
	MedicationName string   `json:"medicationName" binding:"required"`
	MedicationCode string   `json:"medicationCode" binding:"required"`
	EquivalentTo   string   `json:"equivalentTo" binding:"required"`
	Instructions   string   `json:"instructions" binding:"required"`
	Quantity       string   `json:"quantity" binding:"required"`
	Diagnosis      string   `json:"diagnosis" binding:"required"`
	MedicationTime []string `json:"medicationTime" binding:"required,min=1"`
}

type UpdateMedicationRequest struct {
	MedicationName string   `json:"medicationName"`
	MedicationCode string   `json:"medicationCode"`
	EquivalentTo   string   `json:"equivalentTo"`
	Instructions   string   `json:"instructions"`
	Quantity       string   `json:"quantity"`
	Diagnosis      string   `json:"diagnosis"`
	MedicationTime []string `json:"medicationTime"`
	Status         string   `json:"status" binding:"omitempty,oneof=active stale paused removed"`
}

type CreateAdministrationRequest struct {
	PatientID         string   `json:"patientId" binding:"required"`
	MedicationID      string   `json:"medicationId" binding:"required"`
	TimesAdministered []string `json:"timesAdministered" binding:"required,min=1"`
	AdministeredOn    string   `json:"administeredOn" binding:"required"`
	ReasonNotFiled    string   `json:"reasonNotFiled"`
}

// MedicationService covers prescriptions and their daily administration
// records.
type MedicationService interface {
	CreateMedication(ctx context.Context, req CreateMedicationRequest) (*model.Medication, error)
	GetMedication(ctx context.Context, id uuid.UUID) (*model.Medication, error)
	ListMedications(ctx context.Context, patientID *uuid.UUID, status string, offset, limit int) ([]model.Medication, int64, error)
	UpdateMedication(ctx context.Context, id uuid.UUID, req UpdateMedicationRequest) (*model.Medication, error)
	DeleteMedication(ctx context.Context, id uuid.UUID) error

	CreateAdministration(ctx context.Context, careGiver *model.User, req CreateAdministrationRequest) (*model.MedicationAdministration, error)
	GetAdministration(ctx context.Context, id uuid.UUID) (*model.MedicationAdministration, error)
	ListAdministrations(ctx context.Context, query ListChartsQuery, offset, limit int) ([]model.MedicationAdministration, int64, error)
	ReviewAdministration(ctx context.Context, reviewer *model.User, id uuid.UUID, req ReviewRequest) (*model.MedicationAdministration, error)
	DeleteAdministration(ctx context.Context, id uuid.UUID) error
}

type medicationService struct {
	medications repository.MedicationRepository
	admins      repository.AdministrationRepository
	patients    repository.PatientRepository
	users       repository.UserRepository
	tx          repository.TransactionManager
	notifier    mailer.Notifier
	events      Publisher
}

func NewMedicationService(medications repository.MedicationRepository, admins repository.AdministrationRepository, patients repository.PatientRepository, users repository.UserRepository, tx repository.TransactionManager, notifier mailer.Notifier, events Publisher) MedicationService {
	return &medicationService{medications: medications, admins: admins, patients: patients, users: users, tx: tx, notifier: notifier, events: events}
}

func (s *medicationService) CreateMedication(ctx context.Context, req CreateMedicationRequest) (*model.Medication, error) {
	patientID, err := parseID("patientId", req.PatientID)
	if err != nil {
		return nil, err
	}
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	medication := &model.Medication{
		PatientID:      patientID,
		MedicationName: req.MedicationName,
		MedicationCode: req.MedicationCode,
		EquivalentTo:   req.EquivalentTo,
		Instructions:   req.Instructions,
		Quantity:       req.Quantity,
		Diagnosis:      req.Diagnosis,
		MedicationTime: req.MedicationTime,
		Status:         model.MedicationStatusActive,
	}
	if err := s.medications.Create(ctx, medication); err != nil {
		return nil, err
	}
	return medication, nil
}

func (s *medicationService) GetMedication(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	return s.medications.GetByID(ctx, id)
}

func (s *medicationService) ListMedications(ctx context.Context, patientID *uuid.UUID, status string, offset, limit int) ([]model.Medication, int64, error) {
	return s.medications.List(ctx, patientID, status, offset, limit)
}

func (s *medicationService) UpdateMedication(ctx context.Context, id uuid.UUID, req UpdateMedicationRequest) (*model.Medication, error) {
	medication, err := s.medications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MedicationName != "" {
		medication.MedicationName = req.MedicationName
	}
	if req.MedicationCode != "" {
		medication.MedicationCode = req.MedicationCode
	}
	if req.EquivalentTo != "" {
		medication.EquivalentTo = req.EquivalentTo
	}
	if req.Instructions != "" {
		medication.Instructions = req.Instructions
	}
	if req.Quantity != "" {
		medication.Quantity = req.Quantity
	}
	if req.Diagnosis != "" {
		medication.Diagnosis = req.Diagnosis
	}
	if len(req.MedicationTime) > 0 {
		medication.MedicationTime = req.MedicationTime
	}
	if req.Status != "" {
		medication.Status = req.Status
	}

	if err := s.medications.Update(ctx, medication); err != nil {
		return nil, err
	}
	return medication, nil
}

func (s *medicationService) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	return s.medications.Delete(ctx, id)
}

// CreateAdministration records the times a medication was given on one
// day. Duplicate (resident, medication, day) submissions are rejected.
func (s *medicationService) CreateAdministration(ctx context.Context, careGiver *model.User, req CreateAdministrationRequest) (*model.MedicationAdministration, error) {
	patientID, err := parseID("patientId", req.PatientID)
	if err != nil {
		return nil, err
	}
	medicationID, err := parseID("medicationId", req.MedicationID)
	if err != nil {
		return nil, err
	}

	medication, err := s.medications.GetByID(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	if medication.PatientID != patientID {
		return nil, apperr.Validation("This medication is not prescribed to the selected resident")
	}
	if medication.Status != model.MedicationStatusActive {
		return nil, apperr.Validation("This medication is not active")
	}

	administeredOn, err := parseDate("administeredOn", req.AdministeredOn)
	if err != nil {
		return nil, err
	}

	var reasonNotFiled *string
	if req.ReasonNotFiled != "" {
		reasonNotFiled = &req.ReasonNotFiled
	}

	admin := &model.MedicationAdministration{
		PatientID:         patientID,
		MedicationID:      medicationID,
		CareGiverID:       &careGiver.ID,
		TimesAdministered: req.TimesAdministered,
		Status:            model.AdministrationStatusPending,
		ReasonNotFiled:    reasonNotFiled,
		AdministeredOn:    administeredOn,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exists, err := s.admins.ExistsOnDay(txCtx, patientID, medicationID, model.DayOf(administeredOn))
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("This medication was already administered to this resident on the selected date")
		}
		return s.admins.Create(txCtx, admin)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ws.Event{
		Entity:    "medication_administration",
		EntityID:  admin.ID,
		PatientID: admin.PatientID,
		Status:    admin.Status,
		Actor:     careGiver.FullName(),
	})
	return admin, nil
}

func (s *medicationService) GetAdministration(ctx context.Context, id uuid.UUID) (*model.MedicationAdministration, error) {
	return s.admins.GetByID(ctx, id)
}

func (s *medicationService) ListAdministrations(ctx context.Context, query ListChartsQuery, offset, limit int) ([]model.MedicationAdministration, int64, error) {
	filter := repository.CareRecordFilter{
		PatientID:   query.PatientID,
		CareGiverID: query.CareGiverID,
		Status:      query.Status,
	}
	return s.admins.List(ctx, filter, offset, limit)
}

func (s *medicationService) ReviewAdministration(ctx context.Context, reviewer *model.User, id uuid.UUID, req ReviewRequest) (*model.MedicationAdministration, error) {
	if req.Status == model.AdministrationStatusDeclined && req.DeclineReason == "" {
		return nil, apperr.FieldErrors(map[string]string{"declineReason": "required when declining"})
	}

	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	admin.Status = req.Status
	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}

	if admin.CareGiverID != nil {
		if careGiver, err := s.users.GetByID(ctx, *admin.CareGiverID); err == nil {
			patientName := ""
			if admin.Patient != nil {
				patientName = admin.Patient.FullName()
			}
			subject, body := mailer.RecordReviewed(careGiver.FullName(), "Medication administration", patientName, admin.Status, req.DeclineReason)
			sendMail(s.notifier, careGiver.Username, careGiver.FullName(), subject, body)
		}
	}

	s.events.Publish(ws.Event{
		Entity:    "medication_administration",
		EntityID:  admin.ID,
		PatientID: admin.PatientID,
		Status:    admin.Status,
		Actor:     reviewer.FullName(),
	})
	return admin, nil
}

func (s *medicationService) DeleteAdministration(ctx context.Context, id uuid.UUID) error {
	return s.admins.Delete(ctx, id)
}
