package branch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/repository"
	"github.com/careaxis/hms-api/pkg/messaging"
	"github.com/careaxis/hms-api/pkg/metrics"
)

// ChannelBranchChanged is the broker channel other instances listen on.
const ChannelBranchChanged = "branch.changed"

const subscriberBuffer = 8

var (
	ErrNotInitialized = errors.New("branch context not initialized")
	ErrUnknownBranch  = errors.New("unknown branch")
)

type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

// ChangeNotice is delivered to every subscriber on a successful switch.
// Seq increases monotonically so consumers can drop notices that arrive
// out of order behind a newer one.
type ChangeNotice struct {
	Branch *model.Branch `json:"branch"`
	Seq    uint64        `json:"seq"`
}

// Service holds the fixed branch catalog and the single active branch,
// and notifies subscribers when it changes. It fetches only the branch
// catalog, never domain data.
type Service struct {
	repo    repository.BranchRepository
	store   repository.SelectionStore
	broker  messaging.Broker
	logger  zerolog.Logger
	metrics *metrics.Metrics

	// initMu serializes Initialize so concurrent callers load the
	// catalog at most once.
	initMu sync.Mutex

	mu      sync.RWMutex
	state   State
	byID    map[uuid.UUID]*model.Branch
	order   []*model.Branch
	current uuid.UUID
	seq     uint64
	subs    map[int]chan ChangeNotice
	nextSub int
}

func NewService(
	repo repository.BranchRepository,
	store repository.SelectionStore,
	broker messaging.Broker,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:    repo,
		store:   store,
		broker:  broker,
		logger:  logger,
		metrics: m,
		byID:    make(map[uuid.UUID]*model.Branch),
		subs:    make(map[int]chan ChangeNotice),
	}
}

// Initialize loads the branch catalog and the previously persisted
// selection, or falls back to the main branch. It is idempotent under
// concurrency: callers arriving while a load is in flight wait for it
// and see its result instead of loading again.
func (s *Service) Initialize(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	s.mu.Lock()
	if s.state == StateReady {
		s.mu.Unlock()
		return nil
	}
	s.state = StateLoading
	s.mu.Unlock()

	branches, err := s.repo.List(ctx)
	if err != nil {
		s.mu.Lock()
		s.state = StateUninitialized
		s.mu.Unlock()
		return fmt.Errorf("failed to load branch catalog: %w", err)
	}
	if len(branches) == 0 {
		s.mu.Lock()
		s.state = StateUninitialized
		s.mu.Unlock()
		return errors.New("branch catalog is empty")
	}

	byID := make(map[uuid.UUID]*model.Branch, len(branches))
	for _, b := range branches {
		byID[b.ID] = b
	}

	current := s.pickInitial(ctx, branches, byID)

	s.mu.Lock()
	s.byID = byID
	s.order = branches
	s.current = current
	s.state = StateReady
	s.mu.Unlock()

	s.logger.Info().Int("branches", len(branches)).Str("current", current.String()).
		Msg("branch context ready")
	return nil
}

func (s *Service) pickInitial(ctx context.Context, branches []*model.Branch, byID map[uuid.UUID]*model.Branch) uuid.UUID {
	if selected, ok, err := s.store.BranchSelection(ctx); err == nil && ok {
		if _, known := byID[selected]; known {
			return selected
		}
		s.logger.Warn().Str("branch_id", selected.String()).
			Msg("persisted branch selection no longer in catalog, falling back")
	}
	for _, b := range branches {
		if b.Type == model.BranchTypeMain {
			return b.ID
		}
	}
	return branches[0].ID
}

// State reports where initialization stands.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Current returns the active branch. Before initialization finishes it
// returns ErrNotInitialized rather than a nil branch.
func (s *Service) Current() (*model.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil, ErrNotInitialized
	}
	return s.byID[s.current], nil
}

// Branches returns the fixed catalog in display order.
func (s *Service) Branches() ([]*model.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateReady {
		return nil, ErrNotInitialized
	}
	out := make([]*model.Branch, len(s.order))
	copy(out, s.order)
	return out, nil
}

// IsKnown reports whether a branch id belongs to the catalog.
func (s *Service) IsKnown(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}

// Switch makes branchID the active branch. An id outside the catalog is
// rejected with ErrUnknownBranch, the active branch stays unchanged and
// no notification fires. A valid switch persists the selection and
// delivers exactly one notice to every subscriber.
func (s *Service) Switch(ctx context.Context, branchID uuid.UUID) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	branch, ok := s.byID[branchID]
	if !ok {
		s.mu.Unlock()
		s.metrics.IncBranchSwitchRejected()
		return ErrUnknownBranch
	}

	s.current = branchID
	s.seq++
	notice := ChangeNotice{Branch: branch, Seq: s.seq}

	// Deliver while still holding the lock: the sends cannot block, and
	// an unsubscribe racing this loop must not close a channel under a
	// pending send.
	for _, ch := range s.subs {
		select {
		case ch <- notice:
		default:
			s.logger.Warn().Uint64("seq", notice.Seq).Msg("dropping branch notice for slow subscriber")
		}
	}
	s.mu.Unlock()

	if err := s.store.SaveBranchSelection(ctx, branchID); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist branch selection")
	}

	if s.broker != nil {
		if err := s.broker.Publish(ctx, ChannelBranchChanged, notice); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish branch change")
		}
	}

	s.metrics.IncBranchSwitch()
	s.logger.Info().Str("branch", branch.Name).Uint64("seq", notice.Seq).Msg("active branch switched")
	return nil
}

// Subscribe registers a listener for branch changes. The returned
// cancel function must be called when the listener goes away.
func (s *Service) Subscribe() (<-chan ChangeNotice, func()) {
	ch := make(chan ChangeNotice, subscriberBuffer)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// CurrentID is a convenience for callers that only need the id, used as
// the default branch for new sessions.
func (s *Service) CurrentID(ctx context.Context) (uuid.UUID, error) {
	b, err := s.Current()
	if err != nil {
		return uuid.Nil, err
	}
	return b.ID, nil
}
