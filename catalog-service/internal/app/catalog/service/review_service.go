package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"hijabstyles/catalog-service/internal/app/catalog/entity"
	"hijabstyles/catalog-service/internal/app/catalog/infrastructure"
	"hijabstyles/catalog-service/internal/app/catalog/repository"
	"hijabstyles/pkg/logger"
	"hijabstyles/pkg/metrics"
)

// ReviewService обрабатывает бизнес-логику отзывов и пересчёт рейтинга стилей
// Сводка (average_rating, total_reviews) - кеш чистой функции от множества
// отзывов: каждое успешное создание отзыва синхронно пересчитывает её
type ReviewService struct {
	reviewRepo    repository.ReviewRepository
	styleRepo     repository.StyleRepository
	styleCache    infrastructure.StyleCache
	kafkaProducer infrastructure.MessagePublisher

	// Пересчёт по одному стилю сериализуется, чтобы чтение всех отзывов
	// и запись сводки не потеряли параллельную вставку
	mu         sync.Mutex
	styleLocks map[string]*sync.Mutex
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	styleRepo repository.StyleRepository,
	styleCache infrastructure.StyleCache,
	kafkaProducer infrastructure.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo:    reviewRepo,
		styleRepo:     styleRepo,
		styleCache:    styleCache,
		kafkaProducer: kafkaProducer,
		styleLocks:    make(map[string]*sync.Mutex),
	}
}

// CreateReview создает новый отзыв
// 1. Проверяет существование стиля
// 2. Проверяет, что пользователь ещё не оценивал стиль (гонки решает
//    уникальный индекс хранилища, проверка лишь даёт быстрый ответ)
// 3. Сохраняет отзыв и синхронно пересчитывает сводку стиля
// 4. Отправляет событие REVIEW_CREATED в Kafka (ошибка не фатальна)
func (s *ReviewService) CreateReview(ctx context.Context, userID, username string, req *entity.CreateReviewRequest) (*entity.Review, error) {
	style, err := s.styleRepo.GetByID(ctx, req.StyleID)
	if err != nil {
		if errors.Is(err, repository.ErrStyleNotFound) || errors.Is(err, repository.ErrInvalidStyleID) {
			metrics.ReviewsRejected.WithLabelValues("style_not_found").Inc()
			return nil, ErrStyleNotFound
		}
		return nil, fmt.Errorf("failed to get style: %w", err)
	}

	_, err = s.reviewRepo.GetByUserAndStyle(ctx, userID, req.StyleID)
	if err == nil {
		metrics.ReviewsRejected.WithLabelValues("duplicate").Inc()
		return nil, ErrAlreadyReviewed
	}
	if !errors.Is(err, repository.ErrReviewNotFound) {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}

	review := &entity.Review{
		StyleID:  style.ID,
		UserID:   userID,
		Username: username,
		Rating:   req.Rating,
		Text:     req.Text,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			metrics.ReviewsRejected.WithLabelValues("duplicate").Inc()
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	// Сводка должна быть актуальна до возврата ответа клиенту
	summary, err := s.RecomputeRating(ctx, req.StyleID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute style rating: %w", err)
	}
	metrics.RatingRecomputes.WithLabelValues("review").Inc()

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(float64(review.Rating))

	event := entity.ReviewEvent{
		EventType:     "REVIEW_CREATED",
		ReviewID:      review.ID.Hex(),
		StyleID:       req.StyleID,
		UserID:        userID,
		Rating:        review.Rating,
		AverageRating: summary.AverageRating,
		TotalReviews:  summary.TotalReviews,
		Timestamp:     time.Now(),
	}

	if err := s.publishReviewEvent(ctx, event); err != nil {
		// Отзыв уже создан и сводка пересчитана, проблемы с Kafka не критичны
		logger.Warn().Err(err).Str("review_id", event.ReviewID).Msg("failed to publish review created event")
	}

	return review, nil
}

// GetReviewsByStyle получает все отзывы на стиль, новые первыми
// Для несуществующего стиля возвращает ErrStyleNotFound,
// для стиля без отзывов - пустой список
func (s *ReviewService) GetReviewsByStyle(ctx context.Context, styleID string) ([]entity.Review, error) {
	if _, err := s.styleRepo.GetByID(ctx, styleID); err != nil {
		if errors.Is(err, repository.ErrStyleNotFound) || errors.Is(err, repository.ErrInvalidStyleID) {
			return nil, ErrStyleNotFound
		}
		return nil, fmt.Errorf("failed to get style: %w", err)
	}

	reviews, err := s.reviewRepo.GetByStyleID(ctx, styleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	if reviews == nil {
		reviews = []entity.Review{}
	}

	return reviews, nil
}

// GetUserReviews получает все отзывы пользователя
func (s *ReviewService) GetUserReviews(ctx context.Context, userID string) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user reviews: %w", err)
	}

	if reviews == nil {
		reviews = []entity.Review{}
	}

	return reviews, nil
}

// RecomputeRating пересчитывает сводку стиля из полного множества его отзывов
// и перезаписывает её на документе стиля. Операция идемпотентна: повторный
// вызов без новых отзывов даёт тот же результат
func (s *ReviewService) RecomputeRating(ctx context.Context, styleID string) (*entity.RatingSummary, error) {
	lock := s.lockForStyle(styleID)
	lock.Lock()
	defer lock.Unlock()

	reviews, err := s.reviewRepo.GetByStyleID(ctx, styleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews for recompute: %w", err)
	}

	summary := Summarize(reviews)

	if err := s.styleRepo.UpdateRating(ctx, styleID, summary.AverageRating, summary.TotalReviews); err != nil {
		if errors.Is(err, repository.ErrStyleNotFound) || errors.Is(err, repository.ErrInvalidStyleID) {
			return nil, ErrStyleNotFound
		}
		return nil, fmt.Errorf("failed to write style rating: %w", err)
	}

	// Кешированный список стилей содержит устаревшую сводку
	if err := s.styleCache.DeleteStyles(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate styles cache")
	}

	return &summary, nil
}

// ReconcileRatings пересчитывает сводки всех стилей
// Вызывается планировщиком для устранения возможного дрейфа
func (s *ReviewService) ReconcileRatings(ctx context.Context) error {
	styles, err := s.styleRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list styles for reconciliation: %w", err)
	}

	for _, style := range styles {
		if _, err := s.RecomputeRating(ctx, style.ID.Hex()); err != nil {
			return fmt.Errorf("failed to reconcile style %s: %w", style.ID.Hex(), err)
		}
		metrics.RatingRecomputes.WithLabelValues("reconcile").Inc()
	}

	return nil
}

// Summarize вычисляет сводку по множеству отзывов
// Среднее округляется до одного знака через math.Round - половины
// округляются от нуля, для оценок 1..5 это совпадает с округлением вверх
func Summarize(reviews []entity.Review) entity.RatingSummary {
	total := len(reviews)
	if total == 0 {
		return entity.RatingSummary{AverageRating: 0, TotalReviews: 0}
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}

	average := math.Round(float64(sum)/float64(total)*10) / 10

	return entity.RatingSummary{
		AverageRating: average,
		TotalReviews:  total,
	}
}

func (s *ReviewService) lockForStyle(styleID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.styleLocks[styleID]
	if !ok {
		lock = &sync.Mutex{}
		s.styleLocks[styleID] = lock
	}
	return lock
}

// publishReviewEvent отправляет событие об отзыве в Kafka
func (s *ReviewService) publishReviewEvent(ctx context.Context, event entity.ReviewEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal review event: %w", err)
	}

	// Ключ = ReviewID для партиционирования
	if err := s.kafkaProducer.PublishMessage(ctx, event.ReviewID, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}
