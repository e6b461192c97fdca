package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carehub/internal/mailer"
	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/internal/ws"
	"carehub/pkg/apperr"
)

// DTOs for request validation
type CreateProgressRequest struct {
	PatientID        string `json:"patientId" binding:"required"`
	Notes            string `json:"notes" binding:"required"`
	DateTaken        string `json:"dateTaken" binding:"required"`
	Type             string `json:"type" binding:"required,oneof=weekly monthly"`
	Weight           *int   `json:"weight"`
	ReasonFilledLate string `json:"reasonFilledLate"`
}

type UpdateProgressRequest struct {
	Notes        string `json:"notes"`
	Weight       *int   `json:"weight"`
	ReasonEdited string `json:"reasonEdited" binding:"required"`
}

type ListProgressQuery struct {
	PatientID   *uuid.UUID
	CareGiverID *uuid.UUID
	Status      string
	Type        string
}

// ProgressService covers weekly and monthly progress notes.
type ProgressService interface {
	CreateProgress(ctx context.Context, careGiver *model.User, req CreateProgressRequest) (*model.ProgressUpdate, error)
	GetProgress(ctx context.Context, id uuid.UUID) (*model.ProgressUpdate, error)
	ListProgress(ctx context.Context, query ListProgressQuery, offset, limit int) ([]model.ProgressUpdate, int64, error)
	UpdateProgress(ctx context.Context, id uuid.UUID, req UpdateProgressRequest) (*model.ProgressUpdate, error)
	ReviewProgress(ctx context.Context, reviewer *model.User, id uuid.UUID, req ReviewRequest) (*model.ProgressUpdate, error)
	DeleteProgress(ctx context.Context, id uuid.UUID) error
}

type progressService struct {
	progress repository.ProgressRepository
	patients repository.PatientRepository
	users    repository.UserRepository
	tx       repository.TransactionManager
	notifier mailer.Notifier
	events   Publisher
}

func NewProgressService(progress repository.ProgressRepository, patients repository.PatientRepository, users repository.UserRepository, tx repository.TransactionManager, notifier mailer.Notifier, events Publisher) ProgressService {
	return &progressService{progress: progress, patients: patients, users: users, tx: tx, notifier: notifier, events: events}
}

// weekRange returns the Monday and Sunday of the ISO week containing t.
func weekRange(t time.Time) (time.Time, time.Time) {
	day := model.DayOf(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := day.AddDate(0, 0, 1-weekday)
	return monday, monday.AddDate(0, 0, 6)
}

// monthRange returns the first and last day of the calendar month
// containing t.
func monthRange(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// CreateProgress files a weekly or monthly note. At most one note of
// each type per resident per period; monthly notes must carry a weight,
// and the deviation is computed against the previous month's monthly
// note, defaulting to zero when there is none.
func (s *progressService) CreateProgress(ctx context.Context, careGiver *model.User, req CreateProgressRequest) (*model.ProgressUpdate, error) {
	patientID, err := parseID("patientId", req.PatientID)
	if err != nil {
		return nil, err
	}
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	dateTaken, err := parseDate("dateTaken", req.DateTaken)
	if err != nil {
		return nil, err
	}

	if req.Type == model.ProgressTypeMonthly && req.Weight == nil {
		return nil, apperr.FieldErrors(map[string]string{"weight": "required for monthly progress updates"})
	}

	var from, to time.Time
	var conflictMsg string
	if req.Type == model.ProgressTypeWeekly {
		from, to = weekRange(dateTaken)
		conflictMsg = "A weekly progress update already exists for this resident this week"
	} else {
		from, to = monthRange(dateTaken)
		conflictMsg = "A monthly progress update already exists for this resident this month"
	}

	var filledLate *string
	if req.ReasonFilledLate != "" {
		filledLate = &req.ReasonFilledLate
	}

	update := &model.ProgressUpdate{
		PatientID:        patientID,
		CareGiverID:      &careGiver.ID,
		Notes:            req.Notes,
		DateTaken:        model.DayOf(dateTaken),
		Type:             req.Type,
		Weight:           req.Weight,
		Status:           model.ProgressStatusPending,
		ReasonFilledLate: filledLate,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exists, err := s.progress.ExistsInRange(txCtx, patientID, req.Type, from, to)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict(conflictMsg)
		}

		if req.Type == model.ProgressTypeMonthly {
			prevFrom, prevTo := monthRange(dateTaken.AddDate(0, -1, 0))
			previous, err := s.progress.LastMonthlyInRange(txCtx, patientID, prevFrom, prevTo)
			if err != nil {
				return err
			}
			deviation := 0
			if previous != nil && previous.Weight != nil {
				deviation = *req.Weight - *previous.Weight
			}
			update.WeightDeviation = &deviation
		}

		return s.progress.Create(txCtx, update)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ws.Event{
		Entity:    "progress_update",
		EntityID:  update.ID,
		PatientID: update.PatientID,
		Status:    update.Status,
		Actor:     careGiver.FullName(),
	})
	return update, nil
}

func (s *progressService) GetProgress(ctx context.Context, id uuid.UUID) (*model.ProgressUpdate, error) {
	return s.progress.GetByID(ctx, id)
}

func (s *progressService) ListProgress(ctx context.Context, query ListProgressQuery, offset, limit int) ([]model.ProgressUpdate, int64, error) {
	filter := repository.CareRecordFilter{
		PatientID:   query.PatientID,
		CareGiverID: query.CareGiverID,
		Status:      query.Status,
	}
	return s.progress.List(ctx, filter, query.Type, offset, limit)
}

// UpdateProgress edits a note. Edits require a reason and put the note
// back into review with status "updated". A changed weight on a monthly
// note recomputes the deviation.
func (s *progressService) UpdateProgress(ctx context.Context, id uuid.UUID, req UpdateProgressRequest) (*model.ProgressUpdate, error) {
	update, err := s.progress.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Notes != "" {
		update.Notes = req.Notes
	}
	if req.Weight != nil && update.Type == model.ProgressTypeMonthly {
		update.Weight = req.Weight
		prevFrom, prevTo := monthRange(update.DateTaken.AddDate(0, -1, 0))
		previous, err := s.progress.LastMonthlyInRange(ctx, update.PatientID, prevFrom, prevTo)
		if err != nil {
			return nil, err
		}
		deviation := 0
		if previous != nil && previous.Weight != nil {
			deviation = *req.Weight - *previous.Weight
		}
		update.WeightDeviation = &deviation
	}
	update.ReasonEdited = &req.ReasonEdited
	update.Status = model.ProgressStatusUpdated
	update.DeclineReason = nil

	if err := s.progress.Update(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

func (s *progressService) ReviewProgress(ctx context.Context, reviewer *model.User, id uuid.UUID, req ReviewRequest) (*model.ProgressUpdate, error) {
	if req.Status == model.ProgressStatusDeclined && req.DeclineReason == "" {
		return nil, apperr.FieldErrors(map[string]string{"declineReason": "required when declining"})
	}

	update, err := s.progress.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Status = req.Status
	if req.Status == model.ProgressStatusDeclined {
		update.DeclineReason = &req.DeclineReason
	} else {
		update.DeclineReason = nil
	}

	if err := s.progress.Update(ctx, update); err != nil {
		return nil, err
	}

	if update.CareGiverID != nil {
		if careGiver, err := s.users.GetByID(ctx, *update.CareGiverID); err == nil {
			patientName := ""
			if update.Patient != nil {
				patientName = update.Patient.FullName()
			}
			subject, body := mailer.RecordReviewed(careGiver.FullName(), "Progress update", patientName, update.Status, req.DeclineReason)
			sendMail(s.notifier, careGiver.Username, careGiver.FullName(), subject, body)
		}
	}

	s.events.Publish(ws.Event{
		Entity:    "progress_update",
		EntityID:  update.ID,
		PatientID: update.PatientID,
		Status:    update.Status,
		Actor:     reviewer.FullName(),
	})
	return update, nil
}

func (s *progressService) DeleteProgress(ctx context.Context, id uuid.UUID) error {
	return s.progress.Delete(ctx, id)
}
