package product

import (
	"context"
	"database/sql"
	"errors"

	"delservice/internal/db"
	"delservice/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrInUse    = errors.New("product referenced by order items")
)

type Repository interface {
	// List returns products ordered by name, optionally filtered by a
	// case-insensitive substring over name and description.
	List(ctx context.Context, search string) ([]*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

const productCols = `id, name, description, price, weight_kg, dimensions_cm`

func (r *repository) List(ctx context.Context, search string) ([]*Product, error) {
	q := `SELECT ` + productCols + ` FROM products`
	var args []interface{}
	if search != "" {
		q += ` WHERE name ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	q += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("list products failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.WeightKg, &p.DimensionsCm); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	q := `SELECT ` + productCols + ` FROM products WHERE id = $1`

	var p Product
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.WeightKg, &p.DimensionsCm)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	const q = `
		INSERT INTO products (name, description, price, weight_kg, dimensions_cm)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, q, p.Name, p.Description, p.Price, p.WeightKg, p.DimensionsCm).
		Scan(&p.ID)
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	const q = `
		UPDATE products
		SET name = $1, description = $2, price = $3, weight_kg = $4, dimensions_cm = $5
		WHERE id = $6
	`

	res, err := r.db.ExecContext(ctx, q, p.Name, p.Description, p.Price, p.WeightKg, p.DimensionsCm, p.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

// Delete removes a product. order_items references are RESTRICT so a
// product already sold stays on record and the delete fails with ErrInUse.
func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if db.IsForeignKeyViolation(err) {
		return ErrInUse
	}
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
