package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

type PostgresOptionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOptionRepository(db *pgxpool.Pool) *PostgresOptionRepository {
	return &PostgresOptionRepository{db: db}
}

// optionTable maps a kind to its table; kinds never come from raw user input
func optionTable(kind models.OptionKind) (string, error) {
	switch kind {
	case models.OptionSubcategory:
		return "subcategories", nil
	case models.OptionSize:
		return "available_sizes", nil
	case models.OptionColor:
		return "available_colors", nil
	}
	return "", fmt.Errorf("unknown option kind %q", kind)
}

func (r *PostgresOptionRepository) List(ctx context.Context, kind models.OptionKind) ([]models.Option, error) {
	table, err := optionTable(kind)
	if err != nil {
		return nil, err
	}

	q := `SELECT id::text, name, sort_order FROM ` + table + ` ORDER BY sort_order, name`
	if kind == models.OptionSubcategory {
		q = `SELECT id::text, name, 0 FROM subcategories ORDER BY name`
	}

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	out := []models.Option{}
	for rows.Next() {
		var o models.Option
		if err := rows.Scan(&o.ID, &o.Name, &o.SortOrder); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PostgresOptionRepository) Create(ctx context.Context, kind models.OptionKind, name string) (*models.Option, error) {
	table, err := optionTable(kind)
	if err != nil {
		return nil, err
	}

	opt := models.Option{ID: uuid.NewString(), Name: name}
	if kind == models.OptionSubcategory {
		_, err = r.db.Exec(ctx, `INSERT INTO subcategories (id, name) VALUES ($1, $2)`, opt.ID, name)
	} else {
		err = r.db.QueryRow(ctx, `
			INSERT INTO `+table+` (id, name, sort_order)
			SELECT $1, $2, COALESCE(MAX(sort_order) + 1, 0) FROM `+table+`
			RETURNING sort_order
		`, opt.ID, name).Scan(&opt.SortOrder)
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &opt, nil
}

func (r *PostgresOptionRepository) Delete(ctx context.Context, kind models.OptionKind, id string) error {
	table, err := optionTable(kind)
	if err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
