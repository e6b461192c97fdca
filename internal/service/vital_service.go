package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carehub/internal/mailer"
	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/internal/ws"
	"carehub/pkg/apperr"
)

// DTOs for request validation
type CreateVitalRequest struct {
	PatientID        string          `json:"patientId" binding:"required"`
	BloodPressure    string          `json:"bloodPressure" binding:"required"`
	Temperature      decimal.Decimal `json:"temperature" binding:"required"`
	Pulse            decimal.Decimal `json:"pulse" binding:"required"`
	OxygenSaturation decimal.Decimal `json:"oxygenSaturation" binding:"required"`
	Pain             string          `json:"pain"`
	DateTaken        string          `json:"dateTaken" binding:"required"`
	ReasonFilledLate string          `json:"reasonFilledLate"`
}

type UpdateVitalRequest struct {
	BloodPressure    string           `json:"bloodPressure"`
	Temperature      *decimal.Decimal `json:"temperature"`
	Pulse            *decimal.Decimal `json:"pulse"`
	OxygenSaturation *decimal.Decimal `json:"oxygenSaturation"`
	Pain             string           `json:"pain"`
	ReasonEdited     string           `json:"reasonEdited" binding:"required"`
}

// VitalService covers daily vital-sign readings.
type VitalService interface {
	CreateVital(ctx context.Context, careGiver *model.User, req CreateVitalRequest) (*model.Vital, error)
	GetVital(ctx context.Context, id uuid.UUID) (*model.Vital, error)
	ListVitals(ctx context.Context, query ListChartsQuery, offset, limit int) ([]model.Vital, int64, error)
	UpdateVital(ctx context.Context, id uuid.UUID, req UpdateVitalRequest) (*model.Vital, error)
	ReviewVital(ctx context.Context, reviewer *model.User, id uuid.UUID, req ReviewRequest) (*model.Vital, error)
	DeleteVital(ctx context.Context, id uuid.UUID) error
}

type vitalService struct {
	vitals   repository.VitalRepository
	patients repository.PatientRepository
	users    repository.UserRepository
	tx       repository.TransactionManager
	notifier mailer.Notifier
	events   Publisher
}

func NewVitalService(vitals repository.VitalRepository, patients repository.PatientRepository, users repository.UserRepository, tx repository.TransactionManager, notifier mailer.Notifier, events Publisher) VitalService {
	return &vitalService{vitals: vitals, patients: patients, users: users, tx: tx, notifier: notifier, events: events}
}

// CreateVital files the day's reading. One entry per resident per
// calendar day, enforced transactionally plus at the index level.
func (s *vitalService) CreateVital(ctx context.Context, careGiver *model.User, req CreateVitalRequest) (*model.Vital, error) {
	patientID, err := parseID("patientId", req.PatientID)
	if err != nil {
		return nil, err
	}
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	dateTaken, err := time.Parse(time.RFC3339, req.DateTaken)
	if err != nil {
		if dateTaken, err = time.Parse(dateLayout, req.DateTaken); err != nil {
			return nil, apperr.FieldErrors(map[string]string{"dateTaken": "must be an RFC 3339 timestamp or a YYYY-MM-DD date"})
		}
	}

	var pain, filledLate *string
	if req.Pain != "" {
		pain = &req.Pain
	}
	if req.ReasonFilledLate != "" {
		filledLate = &req.ReasonFilledLate
	}

	vital := &model.Vital{
		PatientID:        patientID,
		CareGiverID:      &careGiver.ID,
		BloodPressure:    req.BloodPressure,
		Temperature:      req.Temperature,
		Pulse:            req.Pulse,
		OxygenSaturation: req.OxygenSaturation,
		Pain:             pain,
		DateTaken:        dateTaken,
		ReasonFilledLate: filledLate,
		Status:           model.VitalStatusPending,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exists, err := s.vitals.ExistsOnDay(txCtx, patientID, model.DayOf(dateTaken))
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("A vital entry already exists for this resident on the selected date")
		}
		return s.vitals.Create(txCtx, vital)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ws.Event{
		Entity:    "vital",
		EntityID:  vital.ID,
		PatientID: vital.PatientID,
		Status:    vital.Status,
		Actor:     careGiver.FullName(),
	})
	return vital, nil
}

func (s *vitalService) GetVital(ctx context.Context, id uuid.UUID) (*model.Vital, error) {
	return s.vitals.GetByID(ctx, id)
}

func (s *vitalService) ListVitals(ctx context.Context, query ListChartsQuery, offset, limit int) ([]model.Vital, int64, error) {
	filter := repository.CareRecordFilter{
		PatientID:   query.PatientID,
		CareGiverID: query.CareGiverID,
		Status:      query.Status,
	}
	return s.vitals.List(ctx, filter, offset, limit)
}

// UpdateVital edits a reading. Edits require a reason and push the
// record back into review with status "updated".
func (s *vitalService) UpdateVital(ctx context.Context, id uuid.UUID, req UpdateVitalRequest) (*model.Vital, error) {
	vital, err := s.vitals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BloodPressure != "" {
		vital.BloodPressure = req.BloodPressure
	}
	if req.Temperature != nil {
		vital.Temperature = *req.Temperature
	}
	if req.Pulse != nil {
		vital.Pulse = *req.Pulse
	}
	if req.OxygenSaturation != nil {
		vital.OxygenSaturation = *req.OxygenSaturation
	}
	if req.Pain != "" {
		vital.Pain = &req.Pain
	}
	vital.ReasonEdited = &req.ReasonEdited
	vital.Status = model.VitalStatusUpdated
	vital.DeclineReason = nil

	if err := s.vitals.Update(ctx, vital); err != nil {
		return nil, err
	}
	return vital, nil
}

func (s *vitalService) ReviewVital(ctx context.Context, reviewer *model.User, id uuid.UUID, req ReviewRequest) (*model.Vital, error) {
	if req.Status == model.VitalStatusDeclined && req.DeclineReason == "" {
		return nil, apperr.FieldErrors(map[string]string{"declineReason": "required when declining"})
	}

	vital, err := s.vitals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vital.Status = req.Status
	if req.Status == model.VitalStatusDeclined {
		vital.DeclineReason = &req.DeclineReason
	} else {
		vital.DeclineReason = nil
	}

	if err := s.vitals.Update(ctx, vital); err != nil {
		return nil, err
	}

	if vital.CareGiverID != nil {
		if careGiver, err := s.users.GetByID(ctx, *vital.CareGiverID); err == nil {
			patientName := ""
			if vital.Patient != nil {
				patientName = vital.Patient.FullName()
			}
			subject, body := mailer.RecordReviewed(careGiver.FullName(), "Vital reading", patientName, vital.Status, req.DeclineReason)
			sendMail(s.notifier, careGiver.Username, careGiver.FullName(), subject, body)
		}
	}

	s.events.Publish(ws.Event{
		Entity:    "vital",
		EntityID:  vital.ID,
		PatientID: vital.PatientID,
		Status:    vital.Status,
		Actor:     reviewer.FullName(),
	})
	return vital, nil
}

func (s *vitalService) DeleteVital(ctx context.Context, id uuid.UUID) error {
	return s.vitals.Delete(ctx, id)
}
