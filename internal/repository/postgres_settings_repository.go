package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

type PostgresSettingsRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSettingsRepository(db *pgxpool.Pool) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

func (r *PostgresSettingsRepository) List(ctx context.Context) ([]models.StoreSetting, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value, updated_at FROM store_settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	out := []models.StoreSetting{}
	for rows.Next() {
		var s models.StoreSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresSettingsRepository) Update(ctx context.Context, key, value string) (*models.StoreSetting, error) {
	s := models.StoreSetting{Key: key, Value: value}
	err := r.db.QueryRow(ctx, `
		UPDATE store_settings SET value = $2, updated_at = now()
		WHERE key = $1
		RETURNING updated_at
	`, key, value).Scan(&s.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *PostgresSettingsRepository) Upsert(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO store_settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	if err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
