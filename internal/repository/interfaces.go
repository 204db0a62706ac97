package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/careaxis/hms-api/internal/model"
)

type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
}

type MenuRepository interface {
	MenuForRole(ctx context.Context, roleName string) (model.Menu, error)
}

type BranchRepository interface {
	List(ctx context.Context) ([]*model.Branch, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Branch, error)
}

// SessionStore persists session records behind bearer tokens. Absent or
// unreadable entries are reported as (nil, nil), never an error the
// caller has to distinguish.
type SessionStore interface {
	Save(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, token string) (*model.Session, error)
	Delete(ctx context.Context, token string) error
}

// ResetTokenStore holds short-lived password-reset tokens.
type ResetTokenStore interface {
	StoreResetToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
	ValidateResetToken(ctx context.Context, token string) (uuid.UUID, error)
	InvalidateResetToken(ctx context.Context, token string) error
}

// SelectionStore persists the deployment's active branch choice across
// restarts.
type SelectionStore interface {
	SaveBranchSelection(ctx context.Context, branchID uuid.UUID) error
	BranchSelection(ctx context.Context) (uuid.UUID, bool, error)
}

type ListParams struct {
	BranchID uuid.UUID
	Search   string
	Limit    int
	Offset   int
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ListParams) ([]*model.Patient, int, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, rx *model.Prescription) error
	Get(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.PrescriptionStatus, dispensedAt *time.Time) error
	List(ctx context.Context, params ListParams) ([]*model.Prescription, int, error)
}

type CollectionRepository interface {
	Create(ctx context.Context, col *model.Collection) error
	Get(ctx context.Context, id uuid.UUID) (*model.Collection, error)
	List(ctx context.Context, params ListParams) ([]*model.Collection, int, error)
	TotalForDay(ctx context.Context, branchID uuid.UUID, day time.Time) (float64, error)
}

type TelecallRepository interface {
	CreateCallRecord(ctx context.Context, rec *model.CallRecord) error
	ListCallRecords(ctx context.Context, params ListParams) ([]*model.CallRecord, int, error)
	ListAssignedNumbers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.MobileNumber, int, error)
	TouchNumber(ctx context.Context, phone string, calledAt time.Time) error
}

type LabTestRepository interface {
	Create(ctx context.Context, test *model.LabTest) error
	Get(ctx context.Context, id uuid.UUID) (*model.LabTest, error)
	Update(ctx context.Context, test *model.LabTest) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) ([]*model.LabTest, int, error)
}
