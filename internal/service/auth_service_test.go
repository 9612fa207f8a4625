package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gymgate/internal/auth"
	apperrors "gymgate/internal/errors"
	"gymgate/internal/model"
	"gymgate/internal/repository"
	"gymgate/internal/storage"
)

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, username, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func newAuthService(store *storage.Store, tokens auth.TokenStoreInterface, now func() time.Time) *authService {
	return &authService{
		store:    store,
		users:    repository.NewUserRepository(),
		jwt:      auth.NewJWTService("test-secret"),
		tokens:   tokens,
		lockouts: make(map[string]*lockoutState),
		now:      now,
	}
}

func TestAuthRegisterAndLogin(t *testing.T) {
	store := newTestStore(t)
	tokens := new(MockTokenStore)
	tokens.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "alice", mock.Anything).Return(nil)
	svc := newAuthService(store, tokens, time.Now)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStaff, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice", "other", "")
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.Register(ctx, "bob", "password123", "owner")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("successful login", func(t *testing.T) {
		accessToken, refreshToken, loggedIn, err := svc.Login(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, user.ID, loggedIn.ID)

		claims, err := svc.jwt.ValidateToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, model.RoleStaff, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "nobody", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	tokens.AssertExpectations(t)
}

func TestAuthLoginLockout(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	svc := newAuthService(store, new(MockTokenStore), func() time.Time { return now })
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "password123", "")
	require.NoError(t, err)

	for i := 0; i < maxLoginAttempts; i++ {
		_, _, _, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// Locked now, even with the right password.
	_, _, _, err = svc.Login(ctx, "alice", "password123")
	assert.ErrorIs(t, err, ErrAccountLocked)

	// Other accounts are unaffected.
	_, _, _, err = svc.Login(ctx, "bob", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// After the lockout window passes, login succeeds again.
	tokens := new(MockTokenStore)
	tokens.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "alice", mock.Anything).Return(nil)
	svc.tokens = tokens
	now = now.Add(lockoutDuration + time.Second)
	_, _, _, err = svc.Login(ctx, "alice", "password123")
	assert.NoError(t, err)
}

func TestAuthRefreshAndLogout(t *testing.T) {
	store := newTestStore(t)
	tokens := new(MockTokenStore)
	svc := newAuthService(store, tokens, time.Now)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "password123", model.RoleAdmin)
	require.NoError(t, err)

	tokenID, refreshToken, err := svc.jwt.GenerateRefreshToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)

	tokens.On("GetRefreshToken", mock.Anything, tokenID).Return(user.ID, user.Username, nil)
	accessToken, err := svc.Refresh(ctx, refreshToken)
	require.NoError(t, err)
	claims, err := svc.jwt.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	tokens.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
	tokens.On("BlacklistAccessToken", mock.Anything, claims.ID, mock.Anything).Return(nil)
	assert.NoError(t, svc.Logout(ctx, refreshToken, accessToken))

	t.Run("unparseable access token skipped", func(t *testing.T) {
		assert.NoError(t, svc.Logout(ctx, refreshToken, "not-a-jwt"))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	tokens.AssertExpectations(t)
}

func TestAuthChangePassword(t *testing.T) {
	store := newTestStore(t)
	svc := newAuthService(store, new(MockTokenStore), time.Now)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "password123", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "wrong", "newpassword"), ErrInvalidCredentials)
	require.NoError(t, svc.ChangePassword(ctx, user.ID, "password123", "newpassword"))

	tokens := new(MockTokenStore)
	tokens.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "alice", mock.Anything).Return(nil)
	svc.tokens = tokens
	_, _, _, err = svc.Login(ctx, "alice", "newpassword")
	assert.NoError(t, err)
	_, _, _, err = svc.Login(ctx, "alice", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthResetPassword(t *testing.T) {
	store := newTestStore(t)
	tokens := new(MockTokenStore)
	tokens.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "alice", mock.Anything).Return(nil)
	svc := newAuthService(store, tokens, time.Now)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "password123", "")
	require.NoError(t, err)

	temporary, err := svc.ResetPassword(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, temporary, temporaryPasswordLength)

	// The temporary password works, the old one does not.
	_, _, _, err = svc.Login(ctx, "alice", temporary)
	assert.NoError(t, err)
	_, _, _, err = svc.Login(ctx, "alice", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.ResetPassword(ctx, "nobody")
		assert.ErrorIs(t, err, apperrors.ErrEntityNotFound)
	})
}

func TestEnsureDefaultAdmin(t *testing.T) {
	store := newTestStore(t)
	svc := newAuthService(store, new(MockTokenStore), time.Now)
	ctx := context.Background()

	created, err := svc.EnsureDefaultAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	// A populated users table is left alone.
	created, err = svc.EnsureDefaultAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.False(t, created)

	tokens := new(MockTokenStore)
	tokens.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "admin", mock.Anything).Return(nil)
	svc.tokens = tokens
	_, _, user, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
}
