package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/careaxis/hms-api/internal/model"
)

const (
	sessionKeyPrefix = "session:"
	resetKeyPrefix   = "reset:"
	branchSelectKey  = "branch:selected"
)

var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// Store is the durable session storage: token-keyed session records,
// password-reset tokens, and the persisted branch selection.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

type Config struct {
	URL        string
	SessionTTL time.Duration
}

func NewStore(cfg Config, logger zerolog.Logger) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{client: client, ttl: cfg.SessionTTL, logger: logger}, nil
}

// NewStoreFromClient is used by tests and by callers that share one
// client between the store and the message broker.
func NewStoreFromClient(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *Store {
	return &Store{client: client, ttl: ttl, logger: logger}
}

func (s *Store) Client() *redis.Client {
	return s.client
}

func (s *Store) Save(ctx context.Context, session *model.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := s.ttl
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
	}
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+session.Token, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get returns the session for a token. A missing key or an unreadable
// stored value both come back as (nil, nil): the caller treats either
// as "not logged in".
func (s *Store) Get(ctx context.Context, token string) (*model.Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		s.logger.Warn().Err(err).Msg("discarding malformed session record")
		_ = s.client.Del(ctx, sessionKeyPrefix+token).Err()
		return nil, nil
	}
	return &session, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *Store) StoreResetToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	ttl := time.Until(expiry)
	if ttl <= 0 {
		return fmt.Errorf("reset token already expired")
	}
	if err := s.client.Set(ctx, resetKeyPrefix+token, userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return nil
}

func (s *Store) ValidateResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, resetKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrInvalidResetToken
		}
		return uuid.Nil, fmt.Errorf("failed to read reset token: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrInvalidResetToken
	}
	return userID, nil
}

func (s *Store) InvalidateResetToken(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, resetKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to invalidate reset token: %w", err)
	}
	return nil
}

func (s *Store) SaveBranchSelection(ctx context.Context, branchID uuid.UUID) error {
	if err := s.client.Set(ctx, branchSelectKey, branchID.String(), 0).Err(); err != nil {
		return fmt.Errorf("failed to persist branch selection: %w", err)
	}
	return nil
}

func (s *Store) BranchSelection(ctx context.Context) (uuid.UUID, bool, error) {
	val, err := s.client.Get(ctx, branchSelectKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("failed to read branch selection: %w", err)
	}

	branchID, err := uuid.Parse(val)
	if err != nil {
		// Unreadable selection is the same as no selection.
		return uuid.Nil, false, nil
	}
	return branchID, true, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
