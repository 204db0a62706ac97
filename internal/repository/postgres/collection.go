package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/repository"
	apperrors "github.com/careaxis/hms-api/pkg/errors"
)

const collectionColumns = `id, branch_id, patient_id, receipt_no, amount, mode,
	collected_by, collected_at, remarks, created_at, updated_at`

func (r *collectionRepository) Create(ctx context.Context, col *model.Collection) error {
	query := `
		INSERT INTO collections (id, branch_id, patient_id, receipt_no, amount, mode,
			collected_by, collected_at, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	col.ID = uuid.New()
	col.CreatedAt = time.Now()
	col.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		col.ID,
		col.BranchID,
		col.PatientID,
		col.ReceiptNo,
		col.Amount,
		col.Mode,
		col.CollectedBy,
		col.CollectedAt,
		col.Remarks,
		col.CreatedAt,
		col.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

func (r *collectionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Collection, error) {
	query := fmt.Sprintf(`SELECT %s FROM collections WHERE id = $1`, collectionColumns)

	var col model.Collection
	if err := r.db.GetContext(ctx, &col, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("collection", err)
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &col, nil
}

func (r *collectionRepository) List(ctx context.Context, params repository.ListParams) ([]*model.Collection, int, error) {
	where := `WHERE branch_id = $1`
	args := []interface{}{params.BranchID}

	if params.Search != "" {
		where += ` AND (receipt_no ILIKE $2 OR collected_by ILIKE $2)`
		args = append(args, "%"+params.Search+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM collections %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count collections: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM collections %s ORDER BY collected_at DESC LIMIT %d OFFSET %d`,
		collectionColumns, where, params.Limit, params.Offset)

	var list []*model.Collection
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list collections: %w", err)
	}
	return list, total, nil
}

func (r *collectionRepository) TotalForDay(ctx context.Context, branchID uuid.UUID, day time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM collections
		WHERE branch_id = $1 AND collected_at >= $2 AND collected_at < $3
	`
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var total float64
	if err := r.db.GetContext(ctx, &total, query, branchID, start, end); err != nil {
		return 0, fmt.Errorf("failed to total collections: %w", err)
	}
	return total, nil
}
