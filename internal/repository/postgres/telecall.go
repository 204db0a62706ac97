package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/repository"
)

const callRecordColumns = `id, branch_id, caller_id, phone, outcome, notes, called_at,
	follow_up_at, created_at, updated_at`

func (r *telecallRepository) CreateCallRecord(ctx context.Context, rec *model.CallRecord) error {
	query := `
		INSERT INTO call_records (id, branch_id, caller_id, phone, outcome, notes,
			called_at, follow_up_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.BranchID,
		rec.CallerID,
		rec.Phone,
		rec.Outcome,
		rec.Notes,
		rec.CalledAt,
		rec.FollowUpAt,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create call record: %w", err)
	}
	return nil
}

func (r *telecallRepository) ListCallRecords(ctx context.Context, params repository.ListParams) ([]*model.CallRecord, int, error) {
	where := `WHERE branch_id = $1`
	args := []interface{}{params.BranchID}

	if params.Search != "" {
		where += ` AND phone ILIKE $2`
		args = append(args, "%"+params.Search+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM call_records %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count call records: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM call_records %s ORDER BY called_at DESC LIMIT %d OFFSET %d`,
		callRecordColumns, where, params.Limit, params.Offset)

	var list []*model.CallRecord
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list call records: %w", err)
	}
	return list, total, nil
}

func (r *telecallRepository) ListAssignedNumbers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.MobileNumber, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM mobile_numbers WHERE assigned_to = $1`, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count assigned numbers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, branch_id, assigned_to, phone, name, source, last_call_at,
			created_at, updated_at
		FROM mobile_numbers
		WHERE assigned_to = $1
		ORDER BY last_call_at ASC NULLS FIRST
		LIMIT %d OFFSET %d`, limit, offset)

	var numbers []*model.MobileNumber
	if err := r.db.SelectContext(ctx, &numbers, query, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to list assigned numbers: %w", err)
	}
	return numbers, total, nil
}

func (r *telecallRepository) TouchNumber(ctx context.Context, phone string, calledAt time.Time) error {
	query := `
		UPDATE mobile_numbers
		SET last_call_at = $1, updated_at = $2
		WHERE phone = $3
	`
	if _, err := r.db.ExecContext(ctx, query, calledAt, time.Now(), phone); err != nil {
		return fmt.Errorf("failed to touch mobile number: %w", err)
	}
	return nil
}
