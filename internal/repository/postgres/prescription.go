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

const prescriptionColumns = `id, branch_id, patient_id, prescribed_by, medication, dosage,
	frequency, duration, notes, status, dispensed_at, created_at, updated_at`

func (r *prescriptionRepository) Create(ctx context.Context, rx *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (id, branch_id, patient_id, prescribed_by, medication,
			dosage, frequency, duration, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	rx.ID = uuid.New()
	rx.CreatedAt = time.Now()
	rx.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		rx.ID,
		rx.BranchID,
		rx.PatientID,
		rx.PrescribedBy,
		rx.Medication,
		rx.Dosage,
		rx.Frequency,
		rx.Duration,
		rx.Notes,
		rx.Status,
		rx.CreatedAt,
		rx.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	query := fmt.Sprintf(`SELECT %s FROM prescriptions WHERE id = $1`, prescriptionColumns)

	var rx model.Prescription
	if err := r.db.GetContext(ctx, &rx, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("prescription", err)
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &rx, nil
}

func (r *prescriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.PrescriptionStatus, dispensedAt *time.Time) error {
	query := `
		UPDATE prescriptions
		SET status = $1, dispensed_at = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, dispensedAt, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update prescription status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("prescription", nil)
	}
	return nil
}

func (r *prescriptionRepository) List(ctx context.Context, params repository.ListParams) ([]*model.Prescription, int, error) {
	where := `WHERE branch_id = $1`
	args := []interface{}{params.BranchID}

	if params.Search != "" {
		where += ` AND medication ILIKE $2`
		args = append(args, "%"+params.Search+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM prescriptions %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count prescriptions: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM prescriptions %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		prescriptionColumns, where, params.Limit, params.Offset)

	var list []*model.Prescription
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return list, total, nil
}
