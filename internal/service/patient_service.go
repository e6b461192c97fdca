package service

import (
	"context"

	"github.com/google/uuid"

	"carehub/internal/model"
	"carehub/internal/repository"
)

// DTOs for request validation
type CreatePatientRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	MiddleNames   string `json:"middleNames"`
	LastName      string `json:"lastName" binding:"required"`
	DateOfBirth   string `json:"dateOfBirth" binding:"required"`
	Diagnosis     string `json:"diagnosis" binding:"required"`
	Allergies     string `json:"allergies" binding:"required"`
	PhysicianName string `json:"physicianName" binding:"required"`
	PcpOrDoctor   string `json:"pcpOrDoctor" binding:"required"`
	BranchID      string `json:"branchId"`
	Room          string `json:"room" binding:"required"`
	Cart          string `json:"cart" binding:"required"`
}

type UpdatePatientRequest struct {
	FirstName     string `json:"firstName"`
	MiddleNames   string `json:"middleNames"`
	LastName      string `json:"lastName"`
	DateOfBirth   string `json:"dateOfBirth"`
	Diagnosis     string `json:"diagnosis"`
	Allergies     string `json:"allergies"`
	PhysicianName string `json:"physicianName"`
	PcpOrDoctor   string `json:"pcpOrDoctor"`
	BranchID      string `json:"branchId"`
	Room          string `json:"room"`
	Cart          string `json:"cart"`
}

// PatientService covers resident management.
type PatientService interface {
	CreatePatient(ctx context.Context, req CreatePatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	ListPatients(ctx context.Context, branchID *uuid.UUID, offset, limit int) ([]model.Patient, int64, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, req UpdatePatientRequest) (*model.Patient, error)
	DeletePatient(ctx context.Context, id uuid.UUID) error
}

type patientService struct {
	patients repository.PatientRepository
	branches repository.BranchRepository
}

func NewPatientService(patients repository.PatientRepository, branches repository.BranchRepository) PatientService {
	return &patientService{patients: patients, branches: branches}
}

func (s *patientService) CreatePatient(ctx context.Context, req CreatePatientRequest) (*model.Patient, error) {
	dob, err := parseDate("dateOfBirth", req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	branchID, err := parseOptionalID("branchId", req.BranchID)
	if err != nil {
		return nil, err
	}
	if branchID != nil {
		if _, err := s.branches.GetByID(ctx, *branchID); err != nil {
			return nil, err
		}
	}

	var middleNames *string
	if req.MiddleNames != "" {
		middleNames = &req.MiddleNames
	}

	patient := &model.Patient{
		FirstName:     req.FirstName,
		MiddleNames:   middleNames,
		LastName:      req.LastName,
		DateOfBirth:   dob,
		Diagnosis:     req.Diagnosis,
		Allergies:     req.Allergies,
		PhysicianName: req.PhysicianName,
		PcpOrDoctor:   req.PcpOrDoctor,
		BranchID:      branchID,
		Room:          req.Room,
		Cart:          req.Cart,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *patientService) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *patientService) ListPatients(ctx context.Context, branchID *uuid.UUID, offset, limit int) ([]model.Patient, int64, error) {
	return s.patients.List(ctx, branchID, offset, limit)
}

func (s *patientService) UpdatePatient(ctx context.Context, id uuid.UUID, req UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		patient.FirstName = req.FirstName
	}
	if req.MiddleNames != "" {
		patient.MiddleNames = &req.MiddleNames
	}
	if req.LastName != "" {
		patient.LastName = req.LastName
	}
	if req.DateOfBirth != "" {
		dob, err := parseDate("dateOfBirth", req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		patient.DateOfBirth = dob
	}
	if req.Diagnosis != "" {
		patient.Diagnosis = req.Diagnosis
	}
	if req.Allergies != "" {
		patient.Allergies = req.Allergies
	}
	if req.PhysicianName != "" {
		patient.PhysicianName = req.PhysicianName
	}
	if req.PcpOrDoctor != "" {
		patient.PcpOrDoctor = req.PcpOrDoctor
	}
	if req.BranchID != "" {
		branchID, err := parseID("branchId", req.BranchID)
		if err != nil {
			return nil, err
		}
		if _, err := s.branches.GetByID(ctx, branchID); err != nil {
			return nil, err
		}
		patient.BranchID = &branchID
	}
	if req.Room != "" {
		patient.Room = req.Room
	}
	if req.Cart != "" {
		patient.Cart = req.Cart
	}

	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *patientService) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}
