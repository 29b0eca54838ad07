package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

const productColumns = `id::text, name, description, price, original_price, category, subcategory,
	image_url, images, sizes, colors, in_stock, stock_quantity, created_at, updated_at`

// PostgresProductRepository implements ProductRepository on PostgreSQL
type PostgresProductRepository struct {
	db *pgxpool.Pool
}

func NewPostgresProductRepository(db *pgxpool.Pool) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE TRUE`
	args := []any{}

	if filter.Category != "" {
		args = append(args, string(filter.Category))
		q += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Subcategory != "" {
		args = append(args, filter.Subcategory)
		q += fmt.Sprintf(" AND subcategory = $%d", len(args))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		q += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	q += " ORDER BY created_at DESC, id"

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *PostgresProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (id, name, description, price, original_price, category, subcategory,
			image_url, images, sizes, colors, in_stock, stock_quantity)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at, updated_at
	`, p.ID, p.Name, p.Description, p.Price, p.OriginalPrice, string(p.Category), p.Subcategory,
		p.ImageURL, p.Images, p.Sizes, p.Colors, p.InStock, p.StockQuantity,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", mapError(err))
	}
	return nil
}

func (r *PostgresProductRepository) Update(ctx context.Context, p *models.Product) error {
	if _, err := uuid.Parse(p.ID); err != nil {
		return ErrNotFound
	}
	err := r.db.QueryRow(ctx, `
		UPDATE products SET name=$2, description=$3, price=$4, original_price=$5, category=$6,
			subcategory=$7, image_url=$8, images=$9, sizes=$10, colors=$11, in_stock=$12,
			stock_quantity=$13, updated_at=now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, p.ID, p.Name, p.Description, p.Price, p.OriginalPrice, string(p.Category), p.Subcategory,
		p.ImageURL, p.Images, p.Sizes, p.Colors, p.InStock, p.StockQuantity,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	var category string
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &category, &p.Subcategory,
		&p.ImageURL, &p.Images, &p.Sizes, &p.Colors, &p.InStock, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt,
	)
	p.Category = models.Category(category)
	return p, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
