package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careaxis/hms-api/internal/model"
	apperrors "github.com/careaxis/hms-api/pkg/errors"
)

const labTestColumns = `id, name, code, category, sample_type, unit, ref_range, price,
	active, created_at, updated_at`

func (r *labTestRepository) Create(ctx context.Context, test *model.LabTest) error {
	query := `
		INSERT INTO lab_tests (id, name, code, category, sample_type, unit, ref_range,
			price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	test.ID = uuid.New()
	test.CreatedAt = time.Now()
	test.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		test.ID,
		test.Name,
		test.Code,
		test.Category,
		test.SampleType,
		test.Unit,
		test.RefRange,
		test.Price,
		test.Active,
		test.CreatedAt,
		test.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lab test: %w", err)
	}
	return nil
}

func (r *labTestRepository) Get(ctx context.Context, id uuid.UUID) (*model.LabTest, error) {
	query := fmt.Sprintf(`SELECT %s FROM lab_tests WHERE id = $1`, labTestColumns)

	var test model.LabTest
	if err := r.db.GetContext(ctx, &test, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("lab test", err)
		}
		return nil, fmt.Errorf("failed to get lab test: %w", err)
	}
	return &test, nil
}

func (r *labTestRepository) Update(ctx context.Context, test *model.LabTest) error {
	query := `
		UPDATE lab_tests
		SET name = $1, category = $2, sample_type = $3, unit = $4, ref_range = $5,
			price = $6, active = $7, updated_at = $8
		WHERE id = $9
	`
	test.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		test.Name,
		test.Category,
		test.SampleType,
		test.Unit,
		test.RefRange,
		test.Price,
		test.Active,
		test.UpdatedAt,
		test.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lab test: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("lab test", nil)
	}
	return nil
}

func (r *labTestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lab_tests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lab test: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("lab test", nil)
	}
	return nil
}

func (r *labTestRepository) List(ctx context.Context, search string, limit, offset int) ([]*model.LabTest, int, error) {
	where := ""
	var args []interface{}
	if search != "" {
		where = `WHERE name ILIKE $1 OR code ILIKE $1 OR category ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM lab_tests %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count lab tests: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM lab_tests %s ORDER BY name ASC LIMIT %d OFFSET %d`,
		labTestColumns, where, limit, offset)

	var tests []*model.LabTest
	if err := r.db.SelectContext(ctx, &tests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list lab tests: %w", err)
	}
	return tests, total, nil
}
