package billing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/repository"
)

type fakeCollectionRepo struct {
	created []*model.Collection
}

func (r *fakeCollectionRepo) Create(ctx context.Context, col *model.Collection) error {
	col.ID = uuid.New()
	r.created = append(r.created, col)
	return nil
}

func (r *fakeCollectionRepo) Get(ctx context.Context, id uuid.UUID) (*model.Collection, error) {
	for _, col := range r.created {
		if col.ID == id {
			return col, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeCollectionRepo) List(ctx context.Context, params repository.ListParams) ([]*model.Collection, int, error) {
	return r.created, len(r.created), nil
}

func (r *fakeCollectionRepo) TotalForDay(ctx context.Context, branchID uuid.UUID, day time.Time) (float64, error) {
	var total float64
	for _, col := range r.created {
		if col.BranchID == branchID && col.CollectedAt.Format("2006-01-02") == day.Format("2006-01-02") {
			total += col.Amount
		}
	}
	return total, nil
}

type fakePatientRepo struct {
	known map[uuid.UUID]bool
}

func (r *fakePatientRepo) Create(ctx context.Context, p *model.Patient) error { return nil }

func (r *fakePatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	if r.known[id] {
		return &model.Patient{Base: model.Base{ID: id}}, nil
	}
	return nil, errors.New("not found")
}

func (r *fakePatientRepo) Update(ctx context.Context, p *model.Patient) error { return nil }
func (r *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }

func (r *fakePatientRepo) List(ctx context.Context, params repository.ListParams) ([]*model.Patient, int, error) {
	return nil, 0, nil
}

func TestCreateCollection(t *testing.T) {
	patientID := uuid.New()
	branchID := uuid.New()
	repo := &fakeCollectionRepo{}
	svc := NewService(repo, &fakePatientRepo{known: map[uuid.UUID]bool{patientID: true}})

	col, err := svc.Create(context.Background(), branchID, &model.CreateCollectionRequest{
		PatientID:   patientID,
		Amount:      1500,
		Mode:        model.PaymentModeUPI,
		CollectedBy: "frontdesk",
	})
	require.NoError(t, err)
	assert.Equal(t, branchID, col.BranchID)
	assert.True(t, strings.HasPrefix(col.ReceiptNo, "RCP-"), "receipt no %q", col.ReceiptNo)
	assert.False(t, col.CollectedAt.IsZero())
}

func TestCreateCollectionUnknownPatient(t *testing.T) {
	svc := NewService(&fakeCollectionRepo{}, &fakePatientRepo{})

	_, err := svc.Create(context.Background(), uuid.New(), &model.CreateCollectionRequest{
		PatientID:   uuid.New(),
		Amount:      100,
		Mode:        model.PaymentModeCash,
		CollectedBy: "frontdesk",
	})
	assert.Error(t, err)
}

func TestDayTotal(t *testing.T) {
	patientID := uuid.New()
	branchID := uuid.New()
	otherBranch := uuid.New()
	repo := &fakeCollectionRepo{}
	svc := NewService(repo, &fakePatientRepo{known: map[uuid.UUID]bool{patientID: true}})
	ctx := context.Background()

	for _, amount := range []float64{100, 250} {
		_, err := svc.Create(ctx, branchID, &model.CreateCollectionRequest{
			PatientID:   patientID,
			Amount:      amount,
			Mode:        model.PaymentModeCash,
			CollectedBy: "frontdesk",
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, otherBranch, &model.CreateCollectionRequest{
		PatientID:   patientID,
		Amount:      999,
		Mode:        model.PaymentModeCard,
		CollectedBy: "frontdesk",
	})
	require.NoError(t, err)

	// Totals are branch-scoped.
	total, err := svc.DayTotal(ctx, branchID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 350.0, total)
}
