package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Style представляет стиль хиджаба в каталоге
// AverageRating и TotalReviews - денормализованная сводка отзывов,
// их пишет только пересчёт рейтинга
type Style struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Description   string             `json:"description" bson:"description"`
	Image         string             `json:"image" bson:"image"`
	Category      string             `json:"category" bson:"category"` // everyday, formal, sport
	AverageRating float64            `json:"average_rating" bson:"average_rating"`
	TotalReviews  int                `json:"total_reviews" bson:"total_reviews"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// Review представляет отзыв пользователя на стиль
// Username денормализуется из JWT claims при создании,
// чтобы отдавать автора без обращения к Auth Service
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StyleID   primitive.ObjectID `json:"style_id" bson:"style_id"`
	UserID    string             `json:"user_id" bson:"user_id"` // UUID пользователя из Auth Service
	Username  string             `json:"username" bson:"username"`
	Rating    int                `json:"rating" bson:"rating"` // Оценка от 1 до 5
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// RatingSummary - результат пересчёта рейтинга стиля
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

// ReviewEvent представляет событие об отзыве для Kafka
type ReviewEvent struct {
	EventType     string    `json:"event_type"` // REVIEW_CREATED
	ReviewID      string    `json:"review_id"`
	StyleID       string    `json:"style_id"`
	UserID        string    `json:"user_id"`
	Rating        int       `json:"rating"`
	AverageRating float64   `json:"average_rating"` // сводка стиля после пересчёта
	TotalReviews  int       `json:"total_reviews"`
	Timestamp     time.Time `json:"timestamp"`
}
