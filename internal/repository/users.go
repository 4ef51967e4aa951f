package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kavyanair/mindhaven/backend/internal/domain"
	"github.com/kavyanair/mindhaven/backend/internal/model/user"
)

// UserStore manages account rows. Callers pass usernames already lowercased.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash, name string) (int64, error)
	FindByUsername(ctx context.Context, username string) (user.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

const uniqueViolation = "23505"

// PostgresUserStore keeps accounts in the users table.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (s *PostgresUserStore) Create(ctx context.Context, username, passwordHash, name string) (int64, error) {
	const q = `INSERT INTO users (username, password, name) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	if err := s.pool.QueryRow(ctx, q, username, passwordHash, name).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, domain.ErrUserExists
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (s *PostgresUserStore) FindByUsername(ctx context.Context, username string) (user.User, error) {
	const q = `SELECT id, username, password, name FROM users WHERE username = $1`

	var u user.User
	err := s.pool.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, domain.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (s *PostgresUserStore) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := s.pool.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user existence: %w", err)
	}
	return exists, nil
}
