package service

import (
	"context"
	"testing"
	"time"

	"hijabstyles/auth-service/internal/app/auth/entity"
	"hijabstyles/auth-service/internal/app/auth/repository"
	"hijabstyles/auth-service/internal/app/auth/repository/mocks"
	"hijabstyles/auth-service/internal/app/auth/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() (*AuthService, *mocks.MockUserRepository, *mocks.MockTokenRepository, *util.JWTManager) {
	userRepo := new(mocks.MockUserRepository)
	tokenRepo := new(mocks.MockTokenRepository)
	jwtManager := util.NewJWTManager("test-secret-key", 15*time.Minute, 7*24*time.Hour)

	svc := NewAuthService(userRepo, tokenRepo, jwtManager)
	return svc, userRepo, tokenRepo, jwtManager
}

// ===================== Register Tests =====================

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, tokenRepo, jwtManager := newTestAuthService()

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
	tokenRepo.On("SaveRefreshToken", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	// Act
	resp, err := svc.Register(ctx, &entity.RegisterRequest{
		Username: "amira",
		Email:    "amira@example.com",
		Password: "mysecretpassword123",
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "amira", resp.User.Username)
	assert.Equal(t, "amira@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)

	// Access токен должен нести username для отзывов
	claims, err := jwtManager.ValidateToken(resp.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "amira", claims.Username)
	assert.Equal(t, resp.User.ID, claims.UserID)

	userRepo.AssertExpectations(t)
	tokenRepo.AssertExpectations(t)
}

func TestRegister_PasswordNotStored(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, tokenRepo, _ := newTestAuthService()

	var created *entity.User
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.User)
		}).
		Return(nil)
	tokenRepo.On("SaveRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Register(ctx, &entity.RegisterRequest{
		Username: "amira",
		Email:    "amira@example.com",
		Password: "mysecretpassword123",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, "mysecretpassword123", created.PasswordHash)
	assert.True(t, util.CheckPassword("mysecretpassword123", created.PasswordHash))
}

func TestRegister_UserExists(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, tokenRepo, _ := newTestAuthService()

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(repository.ErrUserExists)

	resp, err := svc.Register(ctx, &entity.RegisterRequest{
		Username: "amira",
		Email:    "amira@example.com",
		Password: "mysecretpassword123",
	})

	assert.ErrorIs(t, err, ErrUserExists)
	assert.Nil(t, resp)
	tokenRepo.AssertNotCalled(t, "SaveRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_ValidationErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		req  *entity.RegisterRequest
	}{
		{"invalid email", &entity.RegisterRequest{Username: "amira", Email: "not-an-email", Password: "mysecretpassword123"}},
		{"short password", &entity.RegisterRequest{Username: "amira", Email: "amira@example.com", Password: "short"}},
		{"empty username", &entity.RegisterRequest{Username: "", Email: "amira@example.com", Password: "mysecretpassword123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, _, _ := newTestAuthService()

			resp, err := svc.Register(ctx, tt.req)

			assert.ErrorIs(t, err, ErrValidation)
			assert.Nil(t, resp)
			userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

// ===================== Login Tests =====================

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, tokenRepo, _ := newTestAuthService()

	hash, err := util.HashPassword("mysecretpassword123")
	require.NoError(t, err)

	user := &entity.User{
		ID:           uuid.New(),
		Username:     "amira",
		Email:        "amira@example.com",
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	userRepo.On("GetByEmail", mock.Anything, "amira@example.com").Return(user, nil)
	tokenRepo.On("SaveRefreshToken", mock.Anything, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	resp, err := svc.Login(ctx, &entity.LoginRequest{
		Email:    "amira@example.com",
		Password: "mysecretpassword123",
	})

	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, tokenRepo, _ := newTestAuthService()

	hash, err := util.HashPassword("mysecretpassword123")
	require.NoError(t, err)

	user := &entity.User{
		ID:           uuid.New(),
		Email:        "amira@example.com",
		PasswordHash: hash,
	}

	userRepo.On("GetByEmail", mock.Anything, "amira@example.com").Return(user, nil)

	resp, err := svc.Login(ctx, &entity.LoginRequest{
		Email:    "amira@example.com",
		Password: "wrongpassword",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
	tokenRepo.AssertNotCalled(t, "SaveRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_UserNotFound(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _, _ := newTestAuthService()

	userRepo.On("GetByEmail", mock.Anything, "unknown@example.com").Return(nil, repository.ErrUserNotFound)

	resp, err := svc.Login(ctx, &entity.LoginRequest{
		Email:    "unknown@example.com",
		Password: "mysecretpassword123",
	})

	// Не раскрываем, существует ли пользователь
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, resp)
}

// ===================== RefreshTokens Tests =====================

func TestRefreshTokens_Success(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, tokenRepo, _ := newTestAuthService()

	user := &entity.User{
		ID:       uuid.New(),
		Username: "amira",
		Email:    "amira@example.com",
	}

	stored := &entity.RefreshToken{
		UserID:    user.ID,
		Token:     "old-refresh-token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	tokenRepo.On("GetRefreshToken", mock.Anything, "old-refresh-token").Return(stored, nil)
	tokenRepo.On("DeleteRefreshToken", mock.Anything, "old-refresh-token").Return(nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	tokenRepo.On("SaveRefreshToken", mock.Anything, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	pair, err := svc.RefreshTokens(ctx, "old-refresh-token")

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, "old-refresh-token", pair.RefreshToken)

	// Старый токен инвалидирован
	tokenRepo.AssertCalled(t, "DeleteRefreshToken", mock.Anything, "old-refresh-token")
}

func TestRefreshTokens_InvalidToken(t *testing.T) {
	ctx := context.Background()
	svc, _, tokenRepo, _ := newTestAuthService()

	tokenRepo.On("GetRefreshToken", mock.Anything, "unknown-token").Return(nil, repository.ErrRefreshTokenNotFound)

	pair, err := svc.RefreshTokens(ctx, "unknown-token")

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	assert.Nil(t, pair)
}

// ===================== Logout / ValidateToken Tests =====================

func TestLogout_BlacklistsAccessToken(t *testing.T) {
	ctx := context.Background()
	svc, _, tokenRepo, jwtManager := newTestAuthService()

	accessToken, err := jwtManager.GenerateAccessToken(uuid.New(), "amira@example.com", "amira")
	require.NoError(t, err)

	tokenRepo.On("AddToBlacklist", mock.Anything, accessToken, mock.AnythingOfType("time.Time")).Return(nil)
	tokenRepo.On("DeleteRefreshToken", mock.Anything, "refresh-token").Return(nil)

	err = svc.Logout(ctx, accessToken, "refresh-token")

	assert.NoError(t, err)
	tokenRepo.AssertExpectations(t)
}

func TestLogout_InvalidAccessTokenIgnored(t *testing.T) {
	ctx := context.Background()
	svc, _, tokenRepo, _ := newTestAuthService()

	tokenRepo.On("DeleteRefreshToken", mock.Anything, "refresh-token").Return(nil)

	// Невалидный access токен не мешает выйти
	err := svc.Logout(ctx, "garbage-token", "refresh-token")

	assert.NoError(t, err)
	tokenRepo.AssertNotCalled(t, "AddToBlacklist", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateToken_Blacklisted(t *testing.T) {
	ctx := context.Background()
	svc, _, tokenRepo, jwtManager := newTestAuthService()

	accessToken, err := jwtManager.GenerateAccessToken(uuid.New(), "amira@example.com", "amira")
	require.NoError(t, err)

	tokenRepo.On("IsBlacklisted", mock.Anything, accessToken).Return(true, nil)

	claims, err := svc.ValidateToken(ctx, accessToken)

	assert.ErrorIs(t, err, util.ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestValidateToken_Success(t *testing.T) {
	ctx := context.Background()
	svc, _, tokenRepo, jwtManager := newTestAuthService()

	userID := uuid.New()
	accessToken, err := jwtManager.GenerateAccessToken(userID, "amira@example.com", "amira")
	require.NoError(t, err)

	tokenRepo.On("IsBlacklisted", mock.Anything, accessToken).Return(false, nil)

	claims, err := svc.ValidateToken(ctx, accessToken)

	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "amira", claims.Username)
}

// ===================== GetCurrentUser Tests =====================

func TestGetCurrentUser_Success(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _, _ := newTestAuthService()

	user := &entity.User{ID: uuid.New(), Username: "amira", Email: "amira@example.com"}
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	got, err := svc.GetCurrentUser(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _, _ := newTestAuthService()

	id := uuid.New()
	userRepo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrUserNotFound)

	got, err := svc.GetCurrentUser(ctx, id)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, got)
}
