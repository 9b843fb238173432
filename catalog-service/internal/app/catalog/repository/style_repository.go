package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hijabstyles/catalog-service/internal/app/catalog/entity"
	"hijabstyles/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrStyleNotFound  = errors.New("style not found")
	ErrInvalidStyleID = errors.New("invalid style ID")
)

const stylesCollection = "styles"

type styleRepository struct {
	collection *mongo.Collection
}

// NewStyleRepository создает новый репозиторий стилей
func NewStyleRepository(db *mongo.Database) StyleRepository {
	return &styleRepository{
		collection: db.Collection(stylesCollection),
	}
}

// GetAll получает все стили, новые первыми
func (r *styleRepository) GetAll(ctx context.Context) ([]entity.Style, error) {
	timer := metrics.NewDbTimer("catalog-service", metrics.DbOpFind, stylesCollection)
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		metrics.RecordDbError("catalog-service", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to find styles: %w", err)
	}
	defer cursor.Close(ctx)

	var styles []entity.Style
	if err := cursor.All(ctx, &styles); err != nil {
		return nil, fmt.Errorf("failed to decode styles: %w", err)
	}

	return styles, nil
}

// GetByID получает стиль по ID
func (r *styleRepository) GetByID(ctx context.Context, id string) (*entity.Style, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidStyleID
	}

	timer := metrics.NewDbTimer("catalog-service", metrics.DbOpFind, stylesCollection)
	defer timer.ObserveDuration()

	var style entity.Style
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&style)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrStyleNotFound
		}
		metrics.RecordDbError("catalog-service", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to get style: %w", err)
	}

	return &style, nil
}

// UpdateRating перезаписывает сводку рейтинга стиля одним $set
func (r *styleRepository) UpdateRating(ctx context.Context, id string, averageRating float64, totalReviews int) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidStyleID
	}

	timer := metrics.NewDbTimer("catalog-service", metrics.DbOpUpdate, stylesCollection)
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"average_rating": averageRating,
			"total_reviews":  totalReviews,
			"updated_at":     time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		metrics.RecordDbError("catalog-service", metrics.DbOpUpdate)
		return fmt.Errorf("failed to update style rating: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrStyleNotFound
	}

	return nil
}

// Count возвращает количество стилей в каталоге
func (r *styleRepository) Count(ctx context.Context) (int64, error) {
	timer := metrics.NewDbTimer("catalog-service", metrics.DbOpCount, stylesCollection)
	defer timer.ObserveDuration()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		metrics.RecordDbError("catalog-service", metrics.DbOpCount)
		return 0, fmt.Errorf("failed to count styles: %w", err)
	}

	return count, nil
}

// InsertMany добавляет стили, используется для начального наполнения каталога
func (r *styleRepository) InsertMany(ctx context.Context, styles []entity.Style) error {
	timer := metrics.NewDbTimer("catalog-service", metrics.DbOpInsert, stylesCollection)
	defer timer.ObserveDuration()

	docs := make([]interface{}, 0, len(styles))
	now := time.Now()
	for i := range styles {
		styles[i].CreatedAt = now
		styles[i].UpdatedAt = now
		docs = append(docs, styles[i])
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		metrics.RecordDbError("catalog-service", metrics.DbOpInsert)
		return fmt.Errorf("failed to insert styles: %w", err)
	}

	return nil
}
