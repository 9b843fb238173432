package mocks

import (
	"context"
	"time"

	"hijabstyles/catalog-service/internal/app/catalog/entity"

	"github.com/stretchr/testify/mock"
)

// MockStyleRepository мок для StyleRepository
type MockStyleRepository struct {
	mock.Mock
}

func (m *MockStyleRepository) GetAll(ctx context.Context) ([]entity.Style, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Style), args.Error(1)
}

func (m *MockStyleRepository) GetByID(ctx context.Context, id string) (*entity.Style, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Style), args.Error(1)
}

func (m *MockStyleRepository) UpdateRating(ctx context.Context, id string, averageRating float64, totalReviews int) error {
	args := m.Called(ctx, id, averageRating, totalReviews)
	return args.Error(0)
}

func (m *MockStyleRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStyleRepository) InsertMany(ctx context.Context, styles []entity.Style) error {
	args := m.Called(ctx, styles)
	return args.Error(0)
}

// MockReviewRepository мок для ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByStyleID(ctx context.Context, styleID string) ([]entity.Review, error) {
	args := m.Called(ctx, styleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByUserAndStyle(ctx context.Context, userID, styleID string) (*entity.Review, error) {
	args := m.Called(ctx, userID, styleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Review, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockStyleCache мок для кеша списка стилей
type MockStyleCache struct {
	mock.Mock
}

func (m *MockStyleCache) GetStyles(ctx context.Context) ([]entity.Style, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Style), args.Error(1)
}

func (m *MockStyleCache) SetStyles(ctx context.Context, styles []entity.Style, ttl time.Duration) error {
	args := m.Called(ctx, styles, ttl)
	return args.Error(0)
}

func (m *MockStyleCache) DeleteStyles(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
