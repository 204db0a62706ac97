package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/careaxis/hms-api/internal/email"
	"github.com/careaxis/hms-api/internal/model"
	"github.com/careaxis/hms-api/internal/repository"
	"github.com/careaxis/hms-api/pkg/auth"
	"github.com/careaxis/hms-api/pkg/metrics"
)

const (
	resetTokenExpiry = 1 * time.Hour
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
	bcryptCost       = 12
)

// Service is the single source of truth for who is logged in, with what
// token, under which role, and which branch. All mutations go through
// the durable session store; nothing else touches it.
type Service struct {
	userRepo repository.UserRepository
	menuRepo repository.MenuRepository
	store    repository.SessionStore
	resets   repository.ResetTokenStore
	jwtSvc   auth.JWTService
	emailSvc email.Service
	logger   zerolog.Logger
	metrics  *metrics.Metrics

	defaultBranch func(ctx context.Context) (uuid.UUID, error)
}

func NewService(
	userRepo repository.UserRepository,
	menuRepo repository.MenuRepository,
	store repository.SessionStore,
	resets repository.ResetTokenStore,
	jwtSvc auth.JWTService,
	emailSvc email.Service,
	defaultBranch func(ctx context.Context) (uuid.UUID, error),
	logger zerolog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		userRepo:      userRepo,
		menuRepo:      menuRepo,
		store:         store,
		resets:        resets,
		jwtSvc:        jwtSvc,
		emailSvc:      emailSvc,
		defaultBranch: defaultBranch,
		logger:        logger,
		metrics:       m,
	}
}

// Login exchanges credentials for a token, user record and permission
// menu. On any failure nothing is persisted.
func (s *Service) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		s.metrics.IncLoginFailure("unknown_user")
		return nil, model.ErrInvalidCredentials
	}

	if user.Status == model.UserStatusLocked {
		if time.Since(user.LastLoginAttempt) < lockoutDuration {
			s.metrics.IncLoginFailure("locked")
			return nil, model.ErrAccountLocked
		}
		user.Status = model.UserStatusActive
		user.LoginAttempts = 0
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		user.LoginAttempts++
		user.LastLoginAttempt = time.Now()
		if user.LoginAttempts >= maxLoginAttempts {
			user.Status = model.UserStatusLocked
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update login attempts: %w", err)
		}
		s.metrics.IncLoginFailure("bad_password")
		return nil, model.ErrInvalidCredentials
	}

	user.LoginAttempts = 0
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update login timestamp: %w", err)
	}

	token, expiresAt, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	menu, err := s.menuRepo.MenuForRole(ctx, user.RoleName)
	if err != nil {
		return nil, fmt.Errorf("failed to load permission menu: %w", err)
	}

	branchID, err := s.defaultBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default branch: %w", err)
	}

	sess := &model.Session{
		Token:     token,
		User:      user,
		Menu:      menu,
		BranchID:  branchID,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.metrics.IncSessionsIssued()
	s.logger.Info().Str("username", user.Username).Str("role", user.RoleName).Msg("session created")

	return &model.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
		Menu:        menu,
		BranchID:    branchID,
	}, nil
}

// Session returns the stored session for a token, or nil when the token
// is unknown, expired or the stored record is unreadable.
func (s *Service) Session(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, nil
	}
	if _, err := s.jwtSvc.ValidateToken(token); err != nil {
		return nil, nil
	}
	return s.store.Get(ctx, token)
}

// CurrentUser returns the session's user record or nil. It never fails
// on malformed stored data.
func (s *Service) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	sess, err := s.Session(ctx, token)
	if err != nil || sess == nil {
		return nil, err
	}
	return sess.User, nil
}

// CurrentMenu returns the permission menu issued at login, or nil when
// the token has no session.
func (s *Service) CurrentMenu(ctx context.Context, token string) (model.Menu, error) {
	sess, err := s.Session(ctx, token)
	if err != nil || sess == nil {
		return nil, err
	}
	return sess.Menu, nil
}

// LocationID returns the branch id the session's requests are scoped to.
func (s *Service) LocationID(ctx context.Context, token string) (uuid.UUID, error) {
	sess, err := s.Session(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	if sess == nil {
		return uuid.Nil, model.ErrNoSession
	}
	return sess.BranchID, nil
}

// SwitchLocation updates the branch a session's requests are scoped to.
// The caller is responsible for validating the branch id against the
// branch context first.
func (s *Service) SwitchLocation(ctx context.Context, token string, branchID uuid.UUID) error {
	sess, err := s.Session(ctx, token)
	if err != nil {
		return err
	}
	if sess == nil {
		return model.ErrNoSession
	}
	sess.BranchID = branchID
	return s.store.Save(ctx, sess)
}

// Logout destroys the session. Reading the token afterwards returns
// absent.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return err
	}
	s.metrics.IncSessionsRevoked()
	return nil
}

// ForgotPassword issues a reset token and emails it. Unknown emails are
// swallowed so the endpoint does not leak which accounts exist.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil
	}

	token := uuid.New().String()
	if err := s.resets.StoreResetToken(ctx, user.ID, token, time.Now().Add(resetTokenExpiry)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.emailSvc.SendPasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.resets.ValidateResetToken(ctx, token)
	if err != nil {
		return errors.New("invalid or expired reset token")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	user.PasswordHash = string(hashed)
	user.LoginAttempts = 0
	if user.Status == model.UserStatusLocked {
		user.Status = model.UserStatusActive
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return s.resets.InvalidateResetToken(ctx, token)
}
