package service

import (
	"context"

	"github.com/google/uuid"

	"carehub/internal/model"
	"carehub/internal/repository"
)

// DTOs for request validation
type CreateAssessmentRequest struct {
	ResidentID          string `json:"residentId" binding:"required"`
	AssessmentStartDate string `json:"assessmentStartDate"`
	AssessmentNextDate  string `json:"assessmentNextDate"`
	NCPStartDate        string `json:"ncpStartDate"`
	NCPNextDate         string `json:"ncpNextDate"`
	SocialWorker        string `json:"socialWorker" binding:"required"`
}

type UpdateAssessmentRequest struct {
	AssessmentStartDate string `json:"assessmentStartDate"`
	AssessmentNextDate  string `json:"assessmentNextDate"`
	NCPStartDate        string `json:"ncpStartDate"`
	NCPNextDate         string `json:"ncpNextDate"`
	SocialWorker        string `json:"socialWorker"`
}

// AssessmentService covers assessment and care-plan scheduling.
type AssessmentService interface {
	CreateAssessment(ctx context.Context, req CreateAssessmentRequest) (*model.Assessment, error)
	GetAssessment(ctx context.Context, id uuid.UUID) (*model.Assessment, error)
	ListAssessments(ctx context.Context, residentID *uuid.UUID, offset, limit int) ([]model.Assessment, int64, error)
	UpdateAssessment(ctx context.Context, id uuid.UUID, req UpdateAssessmentRequest) (*model.Assessment, error)
	DeleteAssessment(ctx context.Context, id uuid.UUID) error
}

type assessmentService struct {
	assessments repository.AssessmentRepository
	patients    repository.PatientRepository
}

func NewAssessmentService(assessments repository.AssessmentRepository, patients repository.PatientRepository) AssessmentService {
	return &assessmentService{assessments: assessments, patients: patients}
}

func (s *assessmentService) CreateAssessment(ctx context.Context, req CreateAssessmentRequest) (*model.Assessment, error) {
	residentID, err := parseID("residentId", req.ResidentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.patients.GetByID(ctx, residentID); err != nil {
		return nil, err
	}

	assessmentStart, err := parseOptionalDate("assessmentStartDate", req.AssessmentStartDate)
	if err != nil {
		return nil, err
	}
	assessmentNext, err := parseOptionalDate("assessmentNextDate", req.AssessmentNextDate)
	if err != nil {
		return nil, err
	}
	ncpStart, err := parseOptionalDate("ncpStartDate", req.NCPStartDate)
	if err != nil {
		return nil, err
	}
	ncpNext, err := parseOptionalDate("ncpNextDate", req.NCPNextDate)
	if err != nil {
		return nil, err
	}

	assessment := &model.Assessment{
		ResidentID:          &residentID,
		AssessmentStartDate: assessmentStart,
		AssessmentNextDate:  assessmentNext,
		NCPStartDate:        ncpStart,
		NCPNextDate:         ncpNext,
		SocialWorker:        req.SocialWorker,
	}
	if err := s.assessments.Create(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *assessmentService) GetAssessment(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	return s.assessments.GetByID(ctx, id)
}

func (s *assessmentService) ListAssessments(ctx context.Context, residentID *uuid.UUID, offset, limit int) ([]model.Assessment, int64, error) {
	return s.assessments.List(ctx, residentID, offset, limit)
}

func (s *assessmentService) UpdateAssessment(ctx context.Context, id uuid.UUID, req UpdateAssessmentRequest) (*model.Assessment, error) {
	assessment, err := s.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AssessmentStartDate != "" {
		d, err := parseDate("assessmentStartDate", req.AssessmentStartDate)
		if err != nil {
			return nil, err
		}
		assessment.AssessmentStartDate = &d
	}
	if req.AssessmentNextDate != "" {
		d, err := parseDate("assessmentNextDate", req.AssessmentNextDate)
		if err != nil {
			return nil, err
		}
		assessment.AssessmentNextDate = &d
	}
	if req.NCPStartDate != "" {
		d, err := parseDate("ncpStartDate", req.NCPStartDate)
		if err != nil {
			return nil, err
		}
		assessment.NCPStartDate = &d
	}
	if req.NCPNextDate != "" {
		d, err := parseDate("ncpNextDate", req.NCPNextDate)
		if err != nil {
			return nil, err
		}
		assessment.NCPNextDate = &d
	}
	if req.SocialWorker != "" {
		assessment.SocialWorker = req.SocialWorker
	}

	if err := s.assessments.Update(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *assessmentService) DeleteAssessment(ctx context.Context, id uuid.UUID) error {
	return s.assessments.Delete(ctx, id)
}
