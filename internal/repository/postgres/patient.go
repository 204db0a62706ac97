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

const patientColumns = `id, branch_id, mrn, first_name, last_name, gender, dob, phone,
	email, address, status, created_at, updated_at`

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (id, branch_id, mrn, first_name, last_name, gender,
			dob, phone, email, address, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.BranchID,
		patient.MRN,
		patient.FirstName,
		patient.LastName,
		patient.Gender,
		patient.DOB,
		patient.Phone,
		patient.Email,
		patient.Address,
		patient.Status,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := fmt.Sprintf(`SELECT %s FROM patients WHERE id = $1`, patientColumns)

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, gender = $3, dob = $4, phone = $5,
			email = $6, address = $7, status = $8, updated_at = $9
		WHERE id = $10
	`
	patient.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.Gender,
		patient.DOB,
		patient.Phone,
		patient.Email,
		patient.Address,
		patient.Status,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, params repository.ListParams) ([]*model.Patient, int, error) {
	where := `WHERE branch_id = $1`
	args := []interface{}{params.BranchID}

	if params.Search != "" {
		where += ` AND (first_name ILIKE $2 OR last_name ILIKE $2 OR phone ILIKE $2 OR mrn ILIKE $2)`
		args = append(args, "%"+params.Search+"%")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM patients %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM patients %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		patientColumns, where, params.Limit, params.Offset)

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, total, nil
}
