package infrastructure

import (
	"context"
	"time"

	"hijabstyles/catalog-service/internal/app/catalog/entity"
)

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// StyleCache интерфейс кеша списка стилей (Redis)
// Сервисный слой инвалидирует кеш после каждого пересчёта рейтинга
type StyleCache interface {
	GetStyles(ctx context.Context) ([]entity.Style, error)
	SetStyles(ctx context.Context, styles []entity.Style, ttl time.Duration) error
	DeleteStyles(ctx context.Context) error
}
