package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hijabstyles/catalog-service/internal/app/catalog/entity"
	"hijabstyles/pkg/logger"
	"hijabstyles/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview возвращается, когда уникальный индекс (user_id, style_id)
	// отклонил вставку - у пользователя уже есть отзыв на этот стиль
	ErrDuplicateReview = errors.New("review already exists for this user and style")
)

const reviewsCollection = "reviews"

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает новый репозиторий отзывов
// Создает уникальный составной индекс (user_id, style_id) - правило
// "один отзыв на стиль" обеспечивает именно хранилище, а не приложение
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection(reviewsCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uniqueIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "style_id", Value: 1},
		},
		Options: options.Index().SetName("user_style_unique_idx").SetUnique(true),
	}

	if _, err := collection.Indexes().CreateOne(ctx, uniqueIndex); err != nil {
		// Индекс может уже существовать, работу не прерываем
		logger.Warn().Err(err).Msg("failed to create unique index on (user_id, style_id)")
	}

	// Индекс по style_id для выборки отзывов по стилю
	styleIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "style_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("style_created_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, styleIndex); err != nil {
		logger.Warn().Err(err).Msg("failed to create index on style_id")
	}

	return &reviewRepository{
		collection: collection,
	}
}

// Create создает новый отзыв
// При гонке двух запросов одной пары (user_id, style_id) ровно один
// получает ErrDuplicateReview от уникального индекса
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt

	timer := metrics.NewDbTimer("catalog-service", metrics.DbOpInsert, reviewsCollection)
	defer timer.ObserveDuration()

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReview
		}
		metrics.RecordDbError("catalog-service", metrics.DbOpInsert)
		return fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}

	return nil
}

// GetByStyleID получает все отзывы на стиль, новые первыми
func (r *reviewRepository) GetByStyleID(ctx context.Context, styleID string) ([]entity.Review, error) {
	objectID, err := primitive.ObjectIDFromHex(styleID)
	if err != nil {
		return nil, ErrInvalidStyleID
	}

	timer := metrics.NewDbTimer("catalog-service", metrics.DbOpFind, reviewsCollection)
	defer timer.ObserveDuration()

	filter := bson.M{"style_id": objectID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		metrics.RecordDbError("catalog-service", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// GetByUserAndStyle получает отзыв пользователя на конкретный стиль
func (r *reviewRepository) GetByUserAndStyle(ctx context.Context, userID, styleID string) (*entity.Review, error) {
	objectID, err := primitive.ObjectIDFromHex(styleID)
	if err != nil {
		return nil, ErrInvalidStyleID
	}

	timer := metrics.NewDbTimer("catalog-service", metrics.DbOpFind, reviewsCollection)
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID, "style_id": objectID}

	var review entity.Review
	err = r.collection.FindOne(ctx, filter).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}
		metrics.RecordDbError("catalog-service", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

// GetByUserID получает все отзывы пользователя, новые первыми
func (r *reviewRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Review, error) {
	timer := metrics.NewDbTimer("catalog-service", metrics.DbOpFind, reviewsCollection)
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		metrics.RecordDbError("catalog-service", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}
