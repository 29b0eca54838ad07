package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

const slideColumns = `id::text, subtitle, title_line1, title_line2, description, image_url, sort_order`

type PostgresSlideRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSlideRepository(db *pgxpool.Pool) *PostgresSlideRepository {
	return &PostgresSlideRepository{db: db}
}

func (r *PostgresSlideRepository) List(ctx context.Context) ([]models.HeroSlide, error) {
	rows, err := r.db.Query(ctx, `SELECT `+slideColumns+` FROM hero_slides ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	defer rows.Close()

	out := []models.HeroSlide{}
	for rows.Next() {
		s, err := scanSlide(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresSlideRepository) GetByID(ctx context.Context, id string) (*models.HeroSlide, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	s, err := scanSlide(r.db.QueryRow(ctx, `SELECT `+slideColumns+` FROM hero_slides WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *PostgresSlideRepository) Create(ctx context.Context, s *models.HeroSlide) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO hero_slides (id, subtitle, title_line1, title_line2, description, image_url, sort_order)
		SELECT $1,$2,$3,$4,$5,$6, COUNT(*) FROM hero_slides
		RETURNING sort_order
	`, s.ID, s.Subtitle, s.TitleLine1, s.TitleLine2, s.Description, s.ImageURL).Scan(&s.SortOrder)
	if err != nil {
		return fmt.Errorf("insert slide: %w", mapError(err))
	}
	return nil
}

func (r *PostgresSlideRepository) Update(ctx context.Context, s *models.HeroSlide) error {
	if _, err := uuid.Parse(s.ID); err != nil {
		return ErrNotFound
	}
	err := r.db.QueryRow(ctx, `
		UPDATE hero_slides SET subtitle=$2, title_line1=$3, title_line2=$4, description=$5, image_url=$6
		WHERE id = $1
		RETURNING sort_order
	`, s.ID, s.Subtitle, s.TitleLine1, s.TitleLine2, s.Description, s.ImageURL).Scan(&s.SortOrder)
	return mapError(err)
}

func (r *PostgresSlideRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM hero_slides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slide: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresSlideRepository) Reorder(ctx context.Context, ids []string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin reorder tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return ErrNotFound
		}
		tag, err := tx.Exec(ctx, `UPDATE hero_slides SET sort_order = $2 WHERE id = $1`, id, i)
		if err != nil {
			return fmt.Errorf("reorder slide %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
	}
	return tx.Commit(ctx)
}

func scanSlide(row pgx.Row) (models.HeroSlide, error) {
	var s models.HeroSlide
	err := row.Scan(&s.ID, &s.Subtitle, &s.TitleLine1, &s.TitleLine2, &s.Description, &s.ImageURL, &s.SortOrder)
	return s, err
}
