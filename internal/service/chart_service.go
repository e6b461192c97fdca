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
type CreateChartRequest struct {
	PatientID            string   `json:"patientId" binding:"required"`
	Behaviors            []string `json:"behaviors" binding:"required,min=1"`
	BehaviorsDescription []string `json:"behaviorsDescription"`
	Vitals               []string `json:"vitals"`
	DateTaken            string   `json:"dateTaken" binding:"required"`
	ReasonNotFiled       string   `json:"reasonNotFiled"`
}

type UpdateChartRequest struct {
	Behaviors            []string `json:"behaviors"`
	BehaviorsDescription []string `json:"behaviorsDescription"`
	Vitals               []string `json:"vitals"`
	ReasonNotFiled       string   `json:"reasonNotFiled"`
}

// ReviewRequest approves or declines a pending care record. A decline
// must carry a reason.
type ReviewRequest struct {
	Status        string `json:"status" binding:"required,oneof=approved declined"`
	DeclineReason string `json:"declineReason"`
}

type ListChartsQuery struct {
	PatientID   *uuid.UUID
	CareGiverID *uuid.UUID
	Status      string
}

// ChartService covers daily behavioral charting.
type ChartService interface {
	CreateChart(ctx context.Context, careGiver *model.User, req CreateChartRequest) (*model.Chart, error)
	GetChart(ctx context.Context, id uuid.UUID) (*model.Chart, error)
	ListCharts(ctx context.Context, query ListChartsQuery, offset, limit int) ([]model.Chart, int64, error)
	UpdateChart(ctx context.Context, id uuid.UUID, req UpdateChartRequest) (*model.Chart, error)
	ReviewChart(ctx context.Context, reviewer *model.User, id uuid.UUID, req ReviewRequest) (*model.Chart, error)
	DeleteChart(ctx context.Context, id uuid.UUID) error
}

type chartService struct {
	charts   repository.ChartRepository
	patients repository.PatientRepository
	users    repository.UserRepository
	tx       repository.TransactionManager
	notifier mailer.Notifier
	events   Publisher
}

func NewChartService(charts repository.ChartRepository, patients repository.PatientRepository, users repository.UserRepository, tx repository.TransactionManager, notifier mailer.Notifier, events Publisher) ChartService {
	return &chartService{charts: charts, patients: patients, users: users, tx: tx, notifier: notifier, events: events}
}

// CreateChart files the day's chart for a resident. At most one chart
// per resident per calendar day: the check and the insert run in one
// transaction, and the unique index backstops concurrent submissions.
func (s *chartService) CreateChart(ctx context.Context, careGiver *model.User, req CreateChartRequest) (*model.Chart, error) {
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

	var reasonNotFiled *string
	if req.ReasonNotFiled != "" {
		reasonNotFiled = &req.ReasonNotFiled
	}

	chart := &model.Chart{
		PatientID:            patientID,
		CareGiverID:          careGiver.ID,
		Behaviors:            req.Behaviors,
		BehaviorsDescription: req.BehaviorsDescription,
		Vitals:               req.Vitals,
		Status:               model.ChartStatusPending,
		ReasonNotFiled:       reasonNotFiled,
		DateTaken:            dateTaken,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exists, err := s.charts.ExistsOnDay(txCtx, patientID, model.DayOf(dateTaken))
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("A chart entry for this resident already exists on this date")
		}
		return s.charts.Create(txCtx, chart)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ws.Event{
		Entity:    "chart",
		EntityID:  chart.ID,
		PatientID: chart.PatientID,
		Status:    chart.Status,
		Actor:     careGiver.FullName(),
	})
	return chart, nil
}

func (s *chartService) GetChart(ctx context.Context, id uuid.UUID) (*model.Chart, error) {
	return s.charts.GetByID(ctx, id)
}

func (s *chartService) ListCharts(ctx context.Context, query ListChartsQuery, offset, limit int) ([]model.Chart, int64, error) {
	filter := repository.CareRecordFilter{
		PatientID:   query.PatientID,
		CareGiverID: query.CareGiverID,
		Status:      query.Status,
	}
	return s.charts.List(ctx, filter, offset, limit)
}

func (s *chartService) UpdateChart(ctx context.Context, id uuid.UUID, req UpdateChartRequest) (*model.Chart, error) {
	chart, err := s.charts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(req.Behaviors) > 0 {
		chart.Behaviors = req.Behaviors
	}
	if len(req.BehaviorsDescription) > 0 {
		chart.BehaviorsDescription = req.BehaviorsDescription
	}
	if len(req.Vitals) > 0 {
		chart.Vitals = req.Vitals
	}
	if req.ReasonNotFiled != "" {
		chart.ReasonNotFiled = &req.ReasonNotFiled
	}
	// An edited chart goes back through review.
	chart.Status = model.ChartStatusPending
	chart.DeclineReason = nil

	if err := s.charts.Update(ctx, chart); err != nil {
		return nil, err
	}
	return chart, nil
}

// ReviewChart moves a chart to approved or declined. The filing care
// giver is notified by email and the change is broadcast to dashboards.
func (s *chartService) ReviewChart(ctx context.Context, reviewer *model.User, id uuid.UUID, req ReviewRequest) (*model.Chart, error) {
	if req.Status == model.ChartStatusDeclined && req.DeclineReason == "" {
		return nil, apperr.FieldErrors(map[string]string{"declineReason": "required when declining"})
	}

	chart, err := s.charts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	chart.Status = req.Status
	if req.Status == model.ChartStatusDeclined {
		chart.DeclineReason = &req.DeclineReason
	} else {
		chart.DeclineReason = nil
	}

	if err := s.charts.Update(ctx, chart); err != nil {
		return nil, err
	}

	if careGiver, err := s.users.GetByID(ctx, chart.CareGiverID); err == nil {
		patientName := ""
		if chart.Patient != nil {
			patientName = chart.Patient.FullName()
		}
		subject, body := mailer.RecordReviewed(careGiver.FullName(), "Chart", patientName, chart.Status, req.DeclineReason)
		sendMail(s.notifier, careGiver.Username, careGiver.FullName(), subject, body)
	}

	s.events.Publish(ws.Event{
		Entity:    "chart",
		EntityID:  chart.ID,
		PatientID: chart.PatientID,
		Status:    chart.Status,
		Actor:     reviewer.FullName(),
	})
	return chart, nil
}

func (s *chartService) DeleteChart(ctx context.Context, id uuid.UUID) error {
	return s.charts.Delete(ctx, id)
}
