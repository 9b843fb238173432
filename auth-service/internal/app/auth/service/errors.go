package service

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUserExists          = errors.New("user with this email or username already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrValidation          = errors.New("validation error")
)
