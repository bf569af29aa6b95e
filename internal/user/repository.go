package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrEmailTaken signals the unique constraint on users.email fired.
var ErrEmailTaken = errors.New("user already exists")

type Repository interface {
	// Create inserts the user, filling in the generated id and
	// timestamps. The password must already be hashed.
	Create(ctx context.Context, u *User) error
	// GetByEmail returns nil when no user has that email.
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, address)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING created_at, updated_at`,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.Address,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, full_name, COALESCE(address, ''), created_at, updated_at
         FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Address, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
