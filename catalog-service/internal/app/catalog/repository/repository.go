package repository

import (
	"context"

	"hijabstyles/catalog-service/internal/app/catalog/entity"
)

// StyleRepository определяет методы для работы со стилями в MongoDB
// UpdateRating - единственный писатель сводки average_rating/total_reviews
type StyleRepository interface {
	GetAll(ctx context.Context) ([]entity.Style, error)
	GetByID(ctx context.Context, id string) (*entity.Style, error)
	UpdateRating(ctx context.Context, id string, averageRating float64, totalReviews int) error
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, styles []entity.Style) error
}

// ReviewRepository определяет методы для работы с отзывами в MongoDB
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByStyleID(ctx context.Context, styleID string) ([]entity.Review, error)
	GetByUserAndStyle(ctx context.Context, userID, styleID string) (*entity.Review, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Review, error)
}
