package user

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestCreate_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	u := &User{
		Email:        "jo@example.com",
		PasswordHash: "$2a$10$hash",
		FullName:     "Jo Doe",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (id, email, password_hash, full_name, address)`)).
		WithArgs(sqlmock.AnyArg(), u.Email, u.PasswordHash, u.FullName, "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, repo.Create(ctx, u))
	require.NotEmpty(t, u.ID)
	require.Equal(t, now, u.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err = repo.Create(context.Background(), &User{Email: "jo@example.com"})
	require.ErrorIs(t, err, ErrEmailTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_OtherErrorsSurface(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(errors.New("connection refused"))

	err = repo.Create(context.Background(), &User{Email: "jo@example.com"})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmailTaken)
}

func TestGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
			WithArgs("jo@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "full_name", "address", "created_at", "updated_at"}).
				AddRow("uuid-1", "jo@example.com", "$2a$10$hash", "Jo Doe", "", now, now))

		u, err := repo.GetByEmail(ctx, "jo@example.com")
		require.NoError(t, err)
		require.NotNil(t, u)
		require.Equal(t, "uuid-1", u.ID)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "full_name", "address", "created_at", "updated_at"}))

		u, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		require.Nil(t, u)
	})
}
