package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrStyleNotFound   = errors.New("style not found")
	ErrAlreadyReviewed = errors.New("user has already reviewed this style")
	ErrInvalidStyleID  = errors.New("invalid style ID")
)
