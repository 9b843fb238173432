package repository

import (
	"context"
	"errors"
	"fmt"

	"hijabstyles/auth-service/internal/app/auth/entity"
	"hijabstyles/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// Код PostgreSQL для нарушения уникального ограничения
const pgUniqueViolation = "23505"

type userRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create создает нового пользователя.
// Уникальность username и email гарантируется ограничениями БД.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	timer := metrics.NewDbTimer("auth-service", metrics.DbOpInsert, "users")
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrUserExists
		}
		metrics.RecordDbError("auth-service", metrics.DbOpInsert)
		return fmt.Errorf("failed to create user: %w", result.Error)
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	timer := metrics.NewDbTimer("auth-service", metrics.DbOpFind, "users")
	defer timer.ObserveDuration()

	var user entity.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		metrics.RecordDbError("auth-service", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to get user by id: %w", result.Error)
	}

	return &user, nil
}

// GetByEmail получает пользователя по email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	timer := metrics.NewDbTimer("auth-service", metrics.DbOpFind, "users")
	defer timer.ObserveDuration()

	var user entity.User
	result := r.db.WithContext(ctx).First(&user, "email = ?", email)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		metrics.RecordDbError("auth-service", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to get user by email: %w", result.Error)
	}

	return &user, nil
}

// GetByUsername получает пользователя по имени
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	timer := metrics.NewDbTimer("auth-service", metrics.DbOpFind, "users")
	defer timer.ObserveDuration()

	var user entity.User
	result := r.db.WithContext(ctx).First(&user, "username = ?", username)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		metrics.RecordDbError("auth-service", metrics.DbOpFind)
		return nil, fmt.Errorf("failed to get user by username: %w", result.Error)
	}

	return &user, nil
}
