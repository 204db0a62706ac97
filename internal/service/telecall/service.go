package telecall

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/repository"
)

type Service struct {
	repo   repository.TelecallRepository
	logger zerolog.Logger
}

func NewService(repo repository.TelecallRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) RecordCall(ctx context.Context, branchID, callerID uuid.UUID, req *model.CreateCallRecordRequest) (*model.CallRecord, error) {
	rec := &model.CallRecord{
		BranchID:   branchID,
		CallerID:   callerID,
		Phone:      req.Phone,
		Outcome:    req.Outcome,
		Notes:      req.Notes,
		CalledAt:   time.Now(),
		FollowUpAt: req.FollowUpAt,
	}
	if err := s.repo.CreateCallRecord(ctx, rec); err != nil {
		return nil, err
	}

	// Keep the assignment list's ordering fresh. Not fatal if it fails.
	if err := s.repo.TouchNumber(ctx, rec.Phone, rec.CalledAt); err != nil {
		s.logger.Warn().Err(err).Str("phone", rec.Phone).Msg("failed to update number last-call time")
	}
	return rec, nil
}

func (s *Service) CallHistory(ctx context.Context, branchID uuid.UUID, search string, limit, offset int) ([]*model.CallRecord, int, error) {
	return s.repo.ListCallRecords(ctx, repository.ListParams{
		BranchID: branchID,
		Search:   search,
		Limit:    limit,
		Offset:   offset,
	})
}

// MyNumbers lists the numbers assigned to the logged-in telecaller.
// This backs the one page every authenticated user may reach.
func (s *Service) MyNumbers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.MobileNumber, int, error) {
	return s.repo.ListAssignedNumbers(ctx, userID, limit, offset)
}
