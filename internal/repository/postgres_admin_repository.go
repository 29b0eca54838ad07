package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

type PostgresAdminRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAdminRepository(db *pgxpool.Pool) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

func (r *PostgresAdminRepository) Create(ctx context.Context, a *models.Admin) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Email = strings.ToLower(a.Email)
	err := r.db.QueryRow(ctx, `
		INSERT INTO admins (id, email, password_hash) VALUES ($1, $2, $3)
		RETURNING created_at
	`, a.ID, a.Email, a.PasswordHash).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert admin: %w", mapError(err))
	}
	return nil
}

func (r *PostgresAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	err := r.db.QueryRow(ctx, `
		SELECT id::text, email, password_hash, created_at FROM admins WHERE email = $1
	`, strings.ToLower(email)).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *PostgresAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	var a models.Admin
	err := r.db.QueryRow(ctx, `
		SELECT id::text, email, password_hash, created_at FROM admins WHERE id = $1
	`, id).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}
