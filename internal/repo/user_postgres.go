package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Myseie/ShopInventory/internal/models"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByUsername(username string) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *PostgresUserRepository) CreateUser(u models.User) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	u.CreatedAt = time.Now()
	err := r.db.QueryRowContext(ctx, `INSERT INTO users (username, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id`,
		u.Username, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		// 23505 is unique_violation
		if strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key") {
			return models.User{}, ErrDuplicatedValueUnique
		}
		return models.User{}, err
	}
	return u, nil
}
