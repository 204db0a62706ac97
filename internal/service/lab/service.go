package lab

import (
	"context"

	"github.com/google/uuid"

	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/repository"
)

type Service struct {
	repo repository.LabTestRepository
}

func NewService(repo repository.LabTestRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateLabTestRequest) (*model.LabTest, error) {
	test := &model.LabTest{
		Name:       req.Name,
		Code:       req.Code,
		Category:   req.Category,
		SampleType: req.SampleType,
		Unit:       req.Unit,
		RefRange:   req.RefRange,
		Price:      req.Price,
		Active:     true,
	}
	if err := s.repo.Create(ctx, test); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.LabTest, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateLabTestRequest) (*model.LabTest, error) {
	test, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		test.Name = *req.Name
	}
	if req.Category != nil {
		test.Category = *req.Category
	}
	if req.SampleType != nil {
		test.SampleType = *req.SampleType
	}
	if req.Unit != nil {
		test.Unit = *req.Unit
	}
	if req.RefRange != nil {
		test.RefRange = *req.RefRange
	}
	if req.Price != nil {
		test.Price = *req.Price
	}
	if req.Active != nil {
		test.Active = *req.Active
	}

	if err := s.repo.Update(ctx, test); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*model.LabTest, int, error) {
	return s.repo.List(ctx, search, limit, offset)
}
