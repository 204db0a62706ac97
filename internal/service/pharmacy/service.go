package pharmacy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/repository"
)

type Service struct {
	repo     repository.PrescriptionRepository
	patients repository.PatientRepository
}

func NewService(repo repository.PrescriptionRepository, patients repository.PatientRepository) *Service {
	return &Service{repo: repo, patients: patients}
}

func (s *Service) Create(ctx context.Context, branchID uuid.UUID, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		return nil, fmt.Errorf("patient lookup failed: %w", err)
	}

	rx := &model.Prescription{
		BranchID:     branchID,
		PatientID:    req.PatientID,
		PrescribedBy: req.PrescribedBy,
		Medication:   req.Medication,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Duration:     req.Duration,
		Notes:        req.Notes,
		Status:       model.PrescriptionStatusPending,
	}
	if err := s.repo.Create(ctx, rx); err != nil {
		return nil, err
	}
	return rx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Dispense(ctx context.Context, id uuid.UUID) error {
	rx, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if rx.Status != model.PrescriptionStatusPending {
		return fmt.Errorf("prescription is %s, only pending prescriptions can be dispensed", rx.Status)
	}
	now := time.Now()
	return s.repo.UpdateStatus(ctx, id, model.PrescriptionStatusDispensed, &now)
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, id, model.PrescriptionStatusCancelled, nil)
}

func (s *Service) List(ctx context.Context, branchID uuid.UUID, search string, limit, offset int) ([]*model.Prescription, int, error) {
	return s.repo.List(ctx, repository.ListParams{
		BranchID: branchID,
		Search:   search,
		Limit:    limit,
		Offset:   offset,
	})
}
