package repository

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
	"portfolio-api/internal/domain/profile"
	"portfolio-api/internal/domain/user"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, username, password_hash, created_at`

func (r *PostgresUserRepository) Create(ctx context.Context, username, passwordHash string) (user.User, error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING `+userColumns,
		username,
		passwordHash,
	)
	u, err := scanUser(row)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.User{}, user.ErrUsernameTaken
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) CreateWithProfile(ctx context.Context, username, passwordHash string, fields profile.Fields) (user.User, profile.Profile, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return user.User{}, profile.Profile{}, err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	u, err := scanUser(tx.QueryRow(
		ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING `+userColumns,
		username,
		passwordHash,
	))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return user.User{}, profile.Profile{}, user.ErrUsernameTaken
		}
		return user.User{}, profile.Profile{}, fmt.Errorf("insert user: %w", err)
	}

	p, err := insertProfile(ctx, tx, u.ID, fields)
	if err != nil {
		return user.User{}, profile.Profile{}, fmt.Errorf("insert profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return user.User{}, profile.Profile{}, fmt.Errorf("commit: %w", err)
	}
	return u, p, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if database.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
