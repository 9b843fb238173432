package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"hijabstyles/auth-service/internal/app/auth/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite тестовый suite для PostgreSQL repository
type UserRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  UserRepository
	sqlDB *sql.DB
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewUserRepository(s.db)
}

func (s *UserRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func sampleUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Username:     "amira",
		Email:        "amira@example.com",
		PasswordHash: "$2a$10$hashhashhashhashhashha",
		CreatedAt:    time.Now(),
	}
}

// ===================== Create Tests =====================

func (s *UserRepositoryTestSuite) TestCreate_Success() {
	ctx := context.Background()
	user := sampleUser()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WithArgs(user.ID, user.Username, user.Email, user.PasswordHash, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Create(ctx, user)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *UserRepositoryTestSuite) TestCreate_UniqueViolation() {
	ctx := context.Background()
	user := sampleUser()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})
	s.mock.ExpectRollback()

	// Act
	err := s.repo.Create(ctx, user)

	// Assert - нарушение уникальности отображается в ErrUserExists
	s.ErrorIs(err, ErrUserExists)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *UserRepositoryTestSuite) TestCreate_DBError() {
	ctx := context.Background()
	user := sampleUser()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(sql.ErrConnDone)
	s.mock.ExpectRollback()

	// Act
	err := s.repo.Create(ctx, user)

	// Assert
	s.Error(err)
	s.NotErrorIs(err, ErrUserExists)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetByID Tests =====================

func (s *UserRepositoryTestSuite) TestGetByID_Success() {
	ctx := context.Background()
	user := sampleUser()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WithArgs(user.ID).
		WillReturnRows(rows)

	// Act
	got, err := s.repo.GetByID(ctx, user.ID)

	// Assert
	s.NoError(err)
	s.NotNil(got)
	s.Equal(user.ID, got.ID)
	s.Equal("amira", got.Username)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *UserRepositoryTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()
	id := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

	// Act
	got, err := s.repo.GetByID(ctx, id)

	// Assert
	s.ErrorIs(err, ErrUserNotFound)
	s.Nil(got)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetByEmail Tests =====================

func (s *UserRepositoryTestSuite) TestGetByEmail_Success() {
	ctx := context.Background()
	user := sampleUser()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WithArgs(user.Email).
		WillReturnRows(rows)

	// Act
	got, err := s.repo.GetByEmail(ctx, user.Email)

	// Assert
	s.NoError(err)
	s.Equal(user.Email, got.Email)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *UserRepositoryTestSuite) TestGetByEmail_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WithArgs("unknown@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

	// Act
	got, err := s.repo.GetByEmail(ctx, "unknown@example.com")

	// Assert
	s.ErrorIs(err, ErrUserNotFound)
	s.Nil(got)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetByUsername Tests =====================

func (s *UserRepositoryTestSuite) TestGetByUsername_Success() {
	ctx := context.Background()
	user := sampleUser()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
		AddRow(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
		WithArgs(user.Username).
		WillReturnRows(rows)

	// Act
	got, err := s.repo.GetByUsername(ctx, user.Username)

	// Assert
	s.NoError(err)
	s.Equal("amira", got.Username)

	s.NoError(s.mock.ExpectationsWereMet())
}
