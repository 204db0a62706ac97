package branch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careaxis/hms-api/internal/model"
)

type fakeBranchRepo struct {
	branches []*model.Branch
	err      error
}

func (f *fakeBranchRepo) List(ctx context.Context) ([]*model.Branch, error) {
	return f.branches, f.err
}

func (f *fakeBranchRepo) Get(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	for _, b := range f.branches {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, errors.New("not found")
}

type fakeSelectionStore struct {
	selected uuid.UUID
	has      bool
	saveErr  error
}

func (f *fakeSelectionStore) SaveBranchSelection(ctx context.Context, branchID uuid.UUID) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.selected = branchID
	f.has = true
	return nil
}

func (f *fakeSelectionStore) BranchSelection(ctx context.Context) (uuid.UUID, bool, error) {
	return f.selected, f.has, nil
}

type fakeBroker struct {
	published []string
}

func (f *fakeBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	f.published = append(f.published, channel)
	return nil
}

func (f *fakeBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

func (f *fakeBroker) Close() error { return nil }

func newBranch(name string, typ model.BranchType) *model.Branch {
	return &model.Branch{
		Base: model.Base{ID: uuid.New()},
		Name: name,
		Type: typ,
	}
}

func newTestService(branches ...*model.Branch) (*Service, *fakeSelectionStore, *fakeBroker) {
	store := &fakeSelectionStore{}
	broker := &fakeBroker{}
	svc := NewService(&fakeBranchRepo{branches: branches}, store, broker, zerolog.Nop(), nil)
	return svc, store, broker
}

func TestInitialize(t *testing.T) {
	main := newBranch("Main Clinic", model.BranchTypeMain)
	satellite := newBranch("Whitefield", model.BranchTypeSatellite)
	svc, _, _ := newTestService(satellite, main)

	assert.Equal(t, StateUninitialized, svc.State())

	require.NoError(t, svc.Initialize(context.Background()))
	assert.Equal(t, StateReady, svc.State())

	// The main branch wins over catalog order when nothing is persisted.
	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, main.ID, current.ID)
}

func TestInitializeIdempotent(t *testing.T) {
	main := newBranch("Main Clinic", model.BranchTypeMain)
	satellite := newBranch("Whitefield", model.BranchTypeSatellite)
	svc, _, _ := newTestService(main, satellite)

	require.NoError(t, svc.Initialize(context.Background()))
	require.NoError(t, svc.Switch(context.Background(), satellite.ID))

	// A second Initialize must not reset the active branch.
	require.NoError(t, svc.Initialize(context.Background()))
	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, satellite.ID, current.ID)
}

func TestInitializeRestoresPersistedSelection(t *testing.T) {
	main := newBranch("Main Clinic", model.BranchTypeMain)
	satellite := newBranch("Whitefield", model.BranchTypeSatellite)
	svc, store, _ := newTestService(main, satellite)
	store.selected = satellite.ID
	store.has = true

	require.NoError(t, svc.Initialize(context.Background()))

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, satellite.ID, current.ID)
}

func TestInitializeIgnoresStaleSelection(t *testing.T) {
	main := newBranch("Main Clinic", model.BranchTypeMain)
	svc, store, _ := newTestService(main)
	store.selected = uuid.New() // no longer in the catalog
	store.has = true

	require.NoError(t, svc.Initialize(context.Background()))

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, main.ID, current.ID)
}

func TestUninitializedAccess(t *testing.T) {
	svc, _, _ := newTestService(newBranch("Main Clinic", model.BranchTypeMain))

	_, err := svc.Current()
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = svc.Branches()
	assert.ErrorIs(t, err, ErrNotInitialized)

	err = svc.Switch(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestSwitch(t *testing.T) {
	main := newBranch("Main Clinic", model.BranchTypeMain)
	satellite := newBranch("Whitefield", model.BranchTypeSatellite)
	svc, store, broker := newTestService(main, satellite)
	require.NoError(t, svc.Initialize(context.Background()))

	require.NoError(t, svc.Switch(context.Background(), satellite.ID))

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, "Whitefield", current.Name)

	// The selection survives restarts and other instances hear about it.
	assert.Equal(t, satellite.ID, store.selected)
	assert.Equal(t, []string{ChannelBranchChanged}, broker.published)
}

func TestSwitchUnknownBranch(t *testing.T) {
	main := newBranch("Main Clinic", model.BranchTypeMain)
	svc, _, broker := newTestService(main)
	require.NoError(t, svc.Initialize(context.Background()))

	ch, cancel := svc.Subscribe()
	defer cancel()

	err := svc.Switch(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUnknownBranch)

	// The active branch is unchanged and nobody was notified.
	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, main.ID, current.ID)
	assert.Empty(t, ch)
	assert.Empty(t, broker.published)
}

func TestSwitchNotifiesEachSubscriberOnce(t *testing.T) {
	main := newBranch("Main Clinic", model.BranchTypeMain)
	satellite := newBranch("Whitefield", model.BranchTypeSatellite)
	svc, _, _ := newTestService(main, satellite)
	require.NoError(t, svc.Initialize(context.Background()))

	first, cancelFirst := svc.Subscribe()
	defer cancelFirst()
	second, cancelSecond := svc.Subscribe()
	defer cancelSecond()

	require.NoError(t, svc.Switch(context.Background(), satellite.ID))

	for _, ch := range []<-chan ChangeNotice{first, second} {
		require.Len(t, ch, 1)
		notice := <-ch
		assert.Equal(t, satellite.ID, notice.Branch.ID)
		assert.Equal(t, uint64(1), notice.Seq)
	}
}

func TestSwitchSequenceIncreases(t *testing.T) {
	main := newBranch("Main Clinic", model.BranchTypeMain)
	satellite := newBranch("Whitefield", model.BranchTypeSatellite)
	svc, _, _ := newTestService(main, satellite)
	require.NoError(t, svc.Initialize(context.Background()))

	ch, cancel := svc.Subscribe()
	defer cancel()

	require.NoError(t, svc.Switch(context.Background(), satellite.ID))
	require.NoError(t, svc.Switch(context.Background(), main.ID))

	assert.Equal(t, uint64(1), (<-ch).Seq)
	assert.Equal(t, uint64(2), (<-ch).Seq)
}

func TestUnsubscribe(t *testing.T) {
	main := newBranch("Main Clinic", model.BranchTypeMain)
	satellite := newBranch("Whitefield", model.BranchTypeSatellite)
	svc, _, _ := newTestService(main, satellite)
	require.NoError(t, svc.Initialize(context.Background()))

	ch, cancel := svc.Subscribe()
	cancel()
	cancel() // double cancel is safe

	require.NoError(t, svc.Switch(context.Background(), satellite.ID))

	// The channel is closed and received nothing.
	_, open := <-ch
	assert.False(t, open)
}

func TestSwitchDuringSubscriberChurn(t *testing.T) {
	main := newBranch("Main Clinic", model.BranchTypeMain)
	satellite := newBranch("Whitefield", model.BranchTypeSatellite)
	svc, _, _ := newTestService(main, satellite)
	require.NoError(t, svc.Initialize(context.Background()))

	// Subscribers come and go while other requests switch branches.
	// Delivery must never hit a channel closed by a racing unsubscribe.
	stop := make(chan struct{})
	var churn sync.WaitGroup
	churn.Add(1)
	go func() {
		defer churn.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			_, cancel := svc.Subscribe()
			cancel()
		}
	}()

	var switchers sync.WaitGroup
	for i := 0; i < 4; i++ {
		switchers.Add(1)
		go func(i int) {
			defer switchers.Done()
			for j := 0; j < 200; j++ {
				target := satellite.ID
				if (i+j)%2 == 0 {
					target = main.ID
				}
				assert.NoError(t, svc.Switch(context.Background(), target))
			}
		}(i)
	}

	switchers.Wait()
	close(stop)
	churn.Wait()
}

type countingBranchRepo struct {
	branches []*model.Branch
	calls    int32
}

func (r *countingBranchRepo) List(ctx context.Context) ([]*model.Branch, error) {
	atomic.AddInt32(&r.calls, 1)
	return r.branches, nil
}

func (r *countingBranchRepo) Get(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	return nil, errors.New("not found")
}

func TestInitializeConcurrent(t *testing.T) {
	main := newBranch("Main Clinic", model.BranchTypeMain)
	repo := &countingBranchRepo{branches: []*model.Branch{main}}
	svc := NewService(repo, &fakeSelectionStore{}, &fakeBroker{}, zerolog.Nop(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.Initialize(context.Background()))
		}()
	}
	wg.Wait()

	// All callers see Ready, but the catalog was loaded exactly once.
	assert.Equal(t, StateReady, svc.State())
	assert.Equal(t, int32(1), atomic.LoadInt32(&repo.calls))
}

func TestIsKnown(t *testing.T) {
	main := newBranch("Main Clinic", model.BranchTypeMain)
	svc, _, _ := newTestService(main)
	require.NoError(t, svc.Initialize(context.Background()))

	assert.True(t, svc.IsKnown(main.ID))
	assert.False(t, svc.IsKnown(uuid.New()))
}
