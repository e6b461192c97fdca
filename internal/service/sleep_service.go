package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/pkg/apperr"
)

// DTOs for request validation
type CreateSleepRequest struct {
	ResidentID       string `json:"residentId" binding:"required"`
	MarkAs           string `json:"markAs" binding:"required,oneof=A S"`
	DateTaken        string `json:"dateTaken" binding:"required"`
	MarkedFor        string `json:"markedFor" binding:"required"`
	ReasonFilledLate string `json:"reasonFilledLate"`
}

type UpdateSleepRequest struct {
	ResidentID string `json:"residentId"`
	MarkAs     string `json:"markAs" binding:"omitempty,oneof=A S"`
	DateTaken  string `json:"dateTaken"`
	MarkedFor  string `json:"markedFor"`
}

// SleepService covers the hourly sleep chart kept for each resident.
type SleepService interface {
	CreateSleep(ctx context.Context, req CreateSleepRequest) (*model.Sleep, error)
	GetSleep(ctx context.Context, id uuid.UUID) (*model.Sleep, error)
	ListSleeps(ctx context.Context, residentID *uuid.UUID, day string, offset, limit int) ([]model.Sleep, int64, error)
	UpdateSleep(ctx context.Context, id uuid.UUID, req UpdateSleepRequest) (*model.Sleep, error)
	DeleteSleep(ctx context.Context, id uuid.UUID) error
}

type sleepService struct {
	sleeps   repository.SleepRepository
	patients repository.PatientRepository
}

func NewSleepService(sleeps repository.SleepRepository, patients repository.PatientRepository) SleepService {
	return &sleepService{sleeps: sleeps, patients: patients}
}

func (s *sleepService) CreateSleep(ctx context.Context, req CreateSleepRequest) (*model.Sleep, error) {
	residentID, err := parseID("residentId", req.ResidentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.patients.GetByID(ctx, residentID); err != nil {
		return nil, err
	}
	if !model.ValidSleepSlot(req.MarkedFor) {
		return nil, apperr.FieldErrors(map[string]string{"markedFor": "must be an hourly slot such as 7:00AM"})
	}

	dateTaken, err := parseDate("dateTaken", req.DateTaken)
	if err != nil {
		return nil, err
	}

	sleep := &model.Sleep{
		ResidentID: &residentID,
		MarkAs:     req.MarkAs,
		DateTaken:  model.DayOf(dateTaken),
		MarkedFor:  req.MarkedFor,
	}
	if req.ReasonFilledLate != "" {
		sleep.ReasonFilledLate = &req.ReasonFilledLate
	}
	if err := s.sleeps.Create(ctx, sleep); err != nil {
		return nil, err
	}
	return sleep, nil
}

func (s *sleepService) GetSleep(ctx context.Context, id uuid.UUID) (*model.Sleep, error) {
	return s.sleeps.GetByID(ctx, id)
}

func (s *sleepService) ListSleeps(ctx context.Context, residentID *uuid.UUID, day string, offset, limit int) ([]model.Sleep, int64, error) {
	var onDay *time.Time
	if day != "" {
		d, err := parseDate("dateTaken", day)
		if err != nil {
			return nil, 0, err
		}
		onDay = &d
	}
	return s.sleeps.List(ctx, residentID, onDay, offset, limit)
}

func (s *sleepService) UpdateSleep(ctx context.Context, id uuid.UUID, req UpdateSleepRequest) (*model.Sleep, error) {
	sleep, err := s.sleeps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ResidentID != "" {
		residentID, err := parseID("residentId", req.ResidentID)
		if err != nil {
			return nil, err
		}
		if _, err := s.patients.GetByID(ctx, residentID); err != nil {
			return nil, err
		}
		sleep.ResidentID = &residentID
		sleep.Resident = nil
	}
	if req.MarkAs != "" {
		sleep.MarkAs = req.MarkAs
	}
	if req.DateTaken != "" {
		d, err := parseDate("dateTaken", req.DateTaken)
		if err != nil {
			return nil, err
		}
		sleep.DateTaken = model.DayOf(d)
	}
	if req.MarkedFor != "" {
		if !model.ValidSleepSlot(req.MarkedFor) {
			return nil, apperr.FieldErrors(map[string]string{"markedFor": "must be an hourly slot such as 7:00AM"})
		}
		sleep.MarkedFor = req.MarkedFor
	}

	if err := s.sleeps.Update(ctx, sleep); err != nil {
		return nil, err
	}
	return sleep, nil
}

func (s *sleepService) DeleteSleep(ctx context.Context, id uuid.UUID) error {
	return s.sleeps.Delete(ctx, id)
}
