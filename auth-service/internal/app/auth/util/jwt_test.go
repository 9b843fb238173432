package util

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAccessToken_Success(t *testing.T) {
	// Arrange
	jwtManager := NewJWTManager("test-secret-key", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()
	email := "amira@example.com"
	username := "amira"

	// Act
	token, err := jwtManager.GenerateAccessToken(userID, email, username)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Проверяем что токен можно распарсить
	claims, err := jwtManager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, email, claims.Email)
	assert.Equal(t, username, claims.Username)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTManager_GenerateRefreshToken_Success(t *testing.T) {
	// Arrange
	jwtManager := NewJWTManager("test-secret-key", 15*time.Minute, 7*24*time.Hour)

	// Act
	token1, err1 := jwtManager.GenerateRefreshToken()
	token2, err2 := jwtManager.GenerateRefreshToken()

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotEmpty(t, token1)
	assert.NotEmpty(t, token2)
	assert.NotEqual(t, token1, token2) // Токены должны быть уникальными
}

func TestJWTManager_ValidateToken_InvalidToken(t *testing.T) {
	// Arrange
	jwtManager := NewJWTManager("test-secret-key", 15*time.Minute, 7*24*time.Hour)

	// Act
	claims, err := jwtManager.ValidateToken("not-a-jwt-token")

	// Assert
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTManager_ValidateToken_WrongSecret(t *testing.T) {
	// Arrange
	jwtManager := NewJWTManager("test-secret-key", 15*time.Minute, 7*24*time.Hour)
	otherManager := NewJWTManager("another-secret-key", 15*time.Minute, 7*24*time.Hour)

	token, err := jwtManager.GenerateAccessToken(uuid.New(), "amira@example.com", "amira")
	require.NoError(t, err)

	// Act
	claims, err := otherManager.ValidateToken(token)

	// Assert
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestJWTManager_ValidateToken_Expired(t *testing.T) {
	// Arrange - токен с отрицательным временем жизни уже истек
	jwtManager := NewJWTManager("test-secret-key", -1*time.Minute, 7*24*time.Hour)

	token, err := jwtManager.GenerateAccessToken(uuid.New(), "amira@example.com", "amira")
	require.NoError(t, err)

	// Act
	claims, err := jwtManager.ValidateToken(token)

	// Assert
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}
