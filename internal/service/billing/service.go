package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/repository"
)

type Service struct {
	repo     repository.CollectionRepository
	patients repository.PatientRepository
}

func NewService(repo repository.CollectionRepository, patients repository.PatientRepository) *Service {
	return &Service{repo: repo, patients: patients}
}

func (s *Service) Create(ctx context.Context, branchID uuid.UUID, req *model.CreateCollectionRequest) (*model.Collection, error) {
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		return nil, fmt.Errorf("patient lookup failed: %w", err)
	}

	now := time.Now()
	col := &model.Collection{
		BranchID:    branchID,
		PatientID:   req.PatientID,
		ReceiptNo:   newReceiptNo(now),
		Amount:      req.Amount,
		Mode:        req.Mode,
		CollectedBy: req.CollectedBy,
		CollectedAt: now,
		Remarks:     req.Remarks,
	}
	if err := s.repo.Create(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Collection, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, branchID uuid.UUID, search string, limit, offset int) ([]*model.Collection, int, error) {
	return s.repo.List(ctx, repository.ListParams{
		BranchID: branchID,
		Search:   search,
		Limit:    limit,
		Offset:   offset,
	})
}

func (s *Service) DayTotal(ctx context.Context, branchID uuid.UUID, day time.Time) (float64, error) {
	return s.repo.TotalForDay(ctx, branchID, day)
}

func newReceiptNo(t time.Time) string {
	return fmt.Sprintf("RCP-%s-%d", t.Format("20060102"), t.UnixNano()%100_000)
}
