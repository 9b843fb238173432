package service

import (
	"context"
	"errors"
	"testing"

	"hijabstyles/catalog-service/internal/app/catalog/entity"
	"hijabstyles/catalog-service/internal/app/catalog/repository"
	"hijabstyles/catalog-service/internal/app/catalog/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetAllStyles_CacheHit(t *testing.T) {
	styleRepo := new(mocks.MockStyleRepository)
	styleCache := new(mocks.MockStyleCache)
	svc := NewCatalogService(styleRepo, styleCache)

	ctx := context.Background()
	cached := []entity.Style{{ID: primitive.NewObjectID(), Name: "Classic Hijab", AverageRating: 4.5, TotalReviews: 2}}

	styleCache.On("GetStyles", ctx).Return(cached, nil)

	result, err := svc.GetAllStyles(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, result)
	styleRepo.AssertNotCalled(t, "GetAll", mock.Anything)
}

func TestGetAllStyles_CacheMiss(t *testing.T) {
	styleRepo := new(mocks.MockStyleRepository)
	styleCache := new(mocks.MockStyleCache)
	svc := NewCatalogService(styleRepo, styleCache)

	ctx := context.Background()
	stored := []entity.Style{
		{ID: primitive.NewObjectID(), Name: "Sport Hijab"},
		{ID: primitive.NewObjectID(), Name: "Turkish Style Hijab"},
	}

	styleCache.On("GetStyles", ctx).Return(nil, nil)
	styleRepo.On("GetAll", ctx).Return(stored, nil)
	styleCache.On("SetStyles", ctx, stored, stylesCacheTTL).Return(nil)

	result, err := svc.GetAllStyles(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	styleCache.AssertCalled(t, "SetStyles", ctx, stored, stylesCacheTTL)
}

func TestGetAllStyles_CacheWriteErrorIgnored(t *testing.T) {
	styleRepo := new(mocks.MockStyleRepository)
	styleCache := new(mocks.MockStyleCache)
	svc := NewCatalogService(styleRepo, styleCache)

	ctx := context.Background()
	stored := []entity.Style{{ID: primitive.NewObjectID(), Name: "Classic Hijab"}}

	styleCache.On("GetStyles", ctx).Return(nil, nil)
	styleRepo.On("GetAll", ctx).Return(stored, nil)
	styleCache.On("SetStyles", ctx, stored, stylesCacheTTL).Return(errors.New("redis down"))

	result, err := svc.GetAllStyles(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestGetStyle_Success(t *testing.T) {
	styleRepo := new(mocks.MockStyleRepository)
	styleCache := new(mocks.MockStyleCache)
	svc := NewCatalogService(styleRepo, styleCache)

	ctx := context.Background()
	styleID := primitive.NewObjectID()
	style := &entity.Style{ID: styleID, Name: "Elegant Wrap Hijab", AverageRating: 3.0, TotalReviews: 2}

	styleRepo.On("GetByID", ctx, styleID.Hex()).Return(style, nil)

	result, err := svc.GetStyle(ctx, styleID.Hex())

	assert.NoError(t, err)
	assert.Equal(t, style, result)
}

func TestGetStyle_NotFound(t *testing.T) {
	styleRepo := new(mocks.MockStyleRepository)
	styleCache := new(mocks.MockStyleCache)
	svc := NewCatalogService(styleRepo, styleCache)

	ctx := context.Background()
	styleID := primitive.NewObjectID().Hex()

	styleRepo.On("GetByID", ctx, styleID).Return(nil, repository.ErrStyleNotFound)

	result, err := svc.GetStyle(ctx, styleID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrStyleNotFound)
}

func TestGetStyle_InvalidID(t *testing.T) {
	styleRepo := new(mocks.MockStyleRepository)
	styleCache := new(mocks.MockStyleCache)
	svc := NewCatalogService(styleRepo, styleCache)

	ctx := context.Background()

	styleRepo.On("GetByID", ctx, "not-an-object-id").Return(nil, repository.ErrInvalidStyleID)

	result, err := svc.GetStyle(ctx, "not-an-object-id")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrStyleNotFound)
}
