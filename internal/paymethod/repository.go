package paymethod

import (
	"context"
	"database/sql"
	"errors"

	"delservice/internal/db"
	"delservice/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrNotFound  = errors.New("payment method not found")
	ErrCodeTaken = errors.New("payment method code already in use")
	ErrInUse     = errors.New("payment method is referenced by existing orders or payments")
)

type Repository interface {
	List(ctx context.Context) ([]*PaymentMethod, error)
	GetByID(ctx context.Context, id int64) (*PaymentMethod, error)
	Create(ctx context.Context, method *PaymentMethod) error
	Update(ctx context.Context, method *PaymentMethod) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

func (r *repository) List(ctx context.Context) ([]*PaymentMethod, error) {
	const q = `
		SELECT id, code, name, fee_percent
		FROM payment_methods
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		logger.FromCtx(ctx).Error("list payment methods failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var methods []*PaymentMethod
	for rows.Next() {
		var m PaymentMethod
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.FeePercent); err != nil {
			return nil, err
		}
		methods = append(methods, &m)
	}
	return methods, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*PaymentMethod, error) {
	const q = `
		SELECT id, code, name, fee_percent
		FROM payment_methods
		WHERE id = $1
	`

	var m PaymentMethod
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Code, &m.Name, &m.FeePercent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) Create(ctx context.Context, method *PaymentMethod) error {
	const q = `
		INSERT INTO payment_methods (code, name, fee_percent)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, q, method.Code, method.Name, method.FeePercent).Scan(&method.ID)
	if db.IsUniqueViolation(err) {
		return ErrCodeTaken
	}
	return err
}

func (r *repository) Update(ctx context.Context, method *PaymentMethod) error {
	const q = `
		UPDATE payment_methods
		SET code = $1, name = $2, fee_percent = $3
		WHERE id = $4
	`

	res, err := r.db.ExecContext(ctx, q, method.Code, method.Name, method.FeePercent, method.ID)
	if db.IsUniqueViolation(err) {
		return ErrCodeTaken
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

// Delete removes a method. Both orders and payments reference methods with
// RESTRICT, so a method still in use fails with ErrInUse.
func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payment_methods WHERE id = $1`, id)
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
