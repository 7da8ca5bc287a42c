package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pviana/daily-diet-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, name, email, session_id, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, name, email, session_id, created_at`

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.SessionID, user.CreatedAt,
	).Scan(
		&savedUser.ID, &savedUser.Name, &savedUser.Email, &savedUser.SessionID, &savedUser.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcodeUniqueViolation {
			return model.User{}, model.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT id, name, email, session_id, created_at
			  FROM users WHERE email = $1`

	return r.scanOne(ctx, query, email)
}

func (r *UserRepository) GetByNameAndEmail(ctx context.Context, name, email string) (model.User, error) {
	query := `SELECT id, name, email, session_id, created_at
			  FROM users WHERE name = $1 AND email = $2`

	return r.scanOne(ctx, query, name, email)
}

func (r *UserRepository) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (model.User, error) {
	query := `SELECT id, name, email, session_id, created_at
			  FROM users WHERE session_id = $1`

	return r.scanOne(ctx, query, sessionID)
}

func (r *UserRepository) UpdateSessionID(ctx context.Context, id, sessionID uuid.UUID) error {
	query := `UPDATE users SET session_id = $2 WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session id: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, name, email, session_id, created_at
			  FROM users ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.SessionID, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// meal rows follow via ON DELETE CASCADE on meal.user_meal_id
	query := `DELETE FROM users WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(ctx context.Context, query string, args ...any) (model.User, error) {
	var user model.User
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&user.ID, &user.Name, &user.Email, &user.SessionID, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
