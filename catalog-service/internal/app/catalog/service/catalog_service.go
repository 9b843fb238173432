package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hijabstyles/catalog-service/internal/app/catalog/entity"
	"hijabstyles/catalog-service/internal/app/catalog/infrastructure"
	"hijabstyles/catalog-service/internal/app/catalog/repository"
	"hijabstyles/pkg/logger"
)

// TTL кеша списка стилей; кеш дополнительно инвалидируется
// при каждом пересчёте рейтинга
const stylesCacheTTL = 5 * time.Minute

// CatalogService обрабатывает бизнес-логику каталога стилей
type CatalogService struct {
	styleRepo  repository.StyleRepository
	styleCache infrastructure.StyleCache
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(styleRepo repository.StyleRepository, styleCache infrastructure.StyleCache) *CatalogService {
	return &CatalogService{
		styleRepo:  styleRepo,
		styleCache: styleCache,
	}
}

// GetAllStyles получает все стили с кешированием в Redis
// Сначала проверяет кеш, при промахе загружает из MongoDB и кеширует
func (s *CatalogService) GetAllStyles(ctx context.Context) ([]entity.Style, error) {
	styles, err := s.styleCache.GetStyles(ctx)
	if err == nil && len(styles) > 0 {
		return styles, nil
	}

	styles, err = s.styleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get styles: %w", err)
	}

	if styles == nil {
		styles = []entity.Style{}
	}

	if err := s.styleCache.SetStyles(ctx, styles, stylesCacheTTL); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to cache styles")
	}

	return styles, nil
}

// GetStyle получает стиль по ID
// Не использует кеш: сводка конкретного стиля должна быть свежей
func (s *CatalogService) GetStyle(ctx context.Context, id string) (*entity.Style, error) {
	style, err := s.styleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStyleNotFound) || errors.Is(err, repository.ErrInvalidStyleID) {
			return nil, ErrStyleNotFound
		}
		return nil, fmt.Errorf("failed to get style: %w", err)
	}

	return style, nil
}
