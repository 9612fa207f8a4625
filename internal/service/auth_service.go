package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gymgate/internal/auth"
	apperrors "gymgate/internal/errors"
	"gymgate/internal/model"
	"gymgate/internal/repository"
	"gymgate/internal/storage"
)

const (
	bcryptCost = 10

	// Failed sign-ins before the account locks, and for how long.
	maxLoginAttempts = 3
	lockoutDuration  = 5 * time.Minute

	temporaryPasswordLength = 8
)

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserAlreadyExists is returned when trying to register an existing username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrAccountLocked is returned while a lockout after repeated failures is in effect.
	ErrAccountLocked = errors.New("account temporarily locked")
)

// AuthService handles staff authentication and credential management.
type AuthService interface {
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, user *model.User, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken, accessToken string) error
	Register(ctx context.Context, username, password, role string) (*model.User, error)
	ChangePassword(ctx context.Context, userID uint, current, updated string) error
	ResetPassword(ctx context.Context, username string) (temporary string, err error)
	EnsureDefaultAdmin(ctx context.Context, username, password string) (created bool, err error)
}

type lockoutState struct {
	failures int
	until    time.Time
}

type authService struct {
	store  *storage.Store
	users  *repository.UserRepository
	jwt    *auth.JWTService
	tokens auth.TokenStoreInterface

	// In-process lockout bookkeeping, keyed by username. Reset on success.
	mu       sync.Mutex
	lockouts map[string]*lockoutState
	now      func() time.Time
}

// NewAuthService creates a new auth service.
func NewAuthService(store *storage.Store, users *repository.UserRepository, jwtService *auth.JWTService, tokens auth.TokenStoreInterface) AuthService {
	return &authService{
		store:    store,
		users:    users,
		jwt:      jwtService,
		tokens:   tokens,
		lockouts: make(map[string]*lockoutState),
		now:      time.Now,
	}
}

// Login verifies the credentials and issues an access and a refresh token.
// Three consecutive failures lock the username for five minutes.
func (s *authService) Login(ctx context.Context, username, password string) (string, string, *model.User, error) {
	if err := s.checkLockout(username); err != nil {
		return "", "", nil, err
	}

	var user *model.User
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		user, err = s.users.FindByUsername(ctx, db, username)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordFailure(username)
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(username)
		return "", "", nil, ErrInvalidCredentials
	}
	s.clearFailures(username)

	accessToken, err := s.jwt.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}
	tokenID, refreshToken, err := s.jwt.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokens.StoreRefreshToken(ctx, tokenID, user.ID, user.Username, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	tokenID, err := s.jwt.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	userID, _, err := s.tokens.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	var user *model.User
	err = s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		user, err = s.users.FindByID(ctx, db, userID)
		return err
	})
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	return s.jwt.GenerateAccessToken(user.ID, user.Username, user.Role)
}

// Logout invalidates the refresh token and blacklists the access token for
// the remainder of its lifetime.
func (s *authService) Logout(ctx context.Context, refreshToken, accessToken string) error {
	tokenID, err := s.jwt.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	if err := s.tokens.DeleteRefreshToken(ctx, tokenID); err != nil {
		return err
	}

	if accessToken == "" {
		return nil
	}
	claims, err := s.jwt.ValidateToken(accessToken)
	if err != nil || claims.ID == "" || claims.ExpiresAt == nil {
		// An unparseable access token cannot be replayed; nothing to revoke.
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.tokens.BlacklistAccessToken(ctx, claims.ID, ttl)
}

// Register creates a staff account. Role defaults to staff.
func (s *authService) Register(ctx context.Context, username, password, role string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}
	if role == "" {
		role = model.RoleStaff
	}
	if role != model.RoleAdmin && role != model.RoleStaff {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Username: username, PasswordHash: string(hash), Role: role}
	err = s.store.Execute(ctx, func(tx *gorm.DB) error {
		if _, err := s.users.FindByUsername(ctx, tx, username); err == nil {
			return ErrUserAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return s.users.Create(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *authService) ChangePassword(ctx context.Context, userID uint, current, updated string) error {
	if updated == "" {
		return fmt.Errorf("%w: new password is required", apperrors.ErrValidation)
	}

	var user *model.User
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		user, err = s.users.FindByID(ctx, db, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrEntityNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(updated), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.users.UpdatePassword(ctx, tx, userID, string(hash))
	})
}

// ResetPassword replaces the user's password with a generated temporary one
// and returns it so the caller can hand it over out of band.
func (s *authService) ResetPassword(ctx context.Context, username string) (string, error) {
	var user *model.User
	err := s.store.Fetch(ctx, func(db *gorm.DB) error {
		var err error
		user, err = s.users.FindByUsername(ctx, db, username)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: user %q", apperrors.ErrEntityNotFound, username)
		}
		return "", err
	}

	temporary := temporaryPassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(temporary), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	err = s.store.Execute(ctx, func(tx *gorm.DB) error {
		return s.users.UpdatePassword(ctx, tx, user.ID, string(hash))
	})
	if err != nil {
		return "", err
	}
	s.clearFailures(username)
	return temporary, nil
}

// EnsureDefaultAdmin creates the given admin account when the users table is
// empty, so a fresh installation can be signed into.
func (s *authService) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	created := false
	err = s.store.Execute(ctx, func(tx *gorm.DB) error {
		count, err := s.users.Count(ctx, tx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		created = true
		return s.users.Create(ctx, tx, &model.User{
			Username:     username,
			PasswordHash: string(hash),
			Role:         model.RoleAdmin,
		})
	})
	return created, err
}

func (s *authService) checkLockout(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.lockouts[username]
	if !ok {
		return nil
	}
	if remaining := state.until.Sub(s.now()); remaining > 0 {
		return fmt.Errorf("%w: retry in %s", ErrAccountLocked, remaining.Round(time.Second))
	}
	return nil
}

func (s *authService) recordFailure(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.lockouts[username]
	if !ok {
		state = &lockoutState{}
		s.lockouts[username] = state
	}
	state.failures++
	if state.failures >= maxLoginAttempts {
		state.until = s.now().Add(lockoutDuration)
		state.failures = 0
	}
}

func (s *authService) clearFailures(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lockouts, username)
}

const temporaryPasswordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func temporaryPassword() string {
	var b strings.Builder
	b.Grow(temporaryPasswordLength)
	for i := 0; i < temporaryPasswordLength; i++ {
		b.WriteByte(temporaryPasswordAlphabet[rand.Intn(len(temporaryPasswordAlphabet))])
	}
	return b.String()
}
