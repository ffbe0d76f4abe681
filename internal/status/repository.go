package status

import (
	"context"
	"database/sql"
	"errors"

	"delservice/internal/db"
	"delservice/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrNotFound  = errors.New("order status not found")
	ErrCodeTaken = errors.New("status code already in use")
	ErrInUse     = errors.New("status is referenced by existing orders")
)

type Repository interface {
	// List returns statuses in workflow order (sort_order ascending).
	List(ctx context.Context) ([]*OrderStatus, error)
	// ListCodes returns the live set of valid status codes. Callers that
	// validate against it must call this per validation, never cache it.
	ListCodes(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id int64) (*OrderStatus, error)
	GetByCode(ctx context.Context, code string) (*OrderStatus, error)
	Create(ctx context.Context, st *OrderStatus) error
	Update(ctx context.Context, st *OrderStatus) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

func (r *repository) List(ctx context.Context) ([]*OrderStatus, error) {
	const q = `
		SELECT id, code, name, sort_order
		FROM order_statuses
		ORDER BY sort_order
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		logger.FromCtx(ctx).Error("list statuses failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var statuses []*OrderStatus
	for rows.Next() {
		var st OrderStatus
		if err := rows.Scan(&st.ID, &st.Code, &st.Name, &st.SortOrder); err != nil {
			return nil, err
		}
		statuses = append(statuses, &st)
	}
	return statuses, rows.Err()
}

func (r *repository) ListCodes(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT code FROM order_statuses ORDER BY sort_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*OrderStatus, error) {
	const q = `
		SELECT id, code, name, sort_order
		FROM order_statuses
		WHERE id = $1
	`

	var st OrderStatus
	err := r.db.QueryRowContext(ctx, q, id).Scan(&st.ID, &st.Code, &st.Name, &st.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*OrderStatus, error) {
	const q = `
		SELECT id, code, name, sort_order
		FROM order_statuses
		WHERE code = $1
	`

	var st OrderStatus
	err := r.db.QueryRowContext(ctx, q, code).Scan(&st.ID, &st.Code, &st.Name, &st.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repository) Create(ctx context.Context, st *OrderStatus) error {
	const q = `
		INSERT INTO order_statuses (code, name, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, q, st.Code, st.Name, st.SortOrder).Scan(&st.ID)
	if db.IsUniqueViolation(err) {
		return ErrCodeTaken
	}
	return err
}

func (r *repository) Update(ctx context.Context, st *OrderStatus) error {
	const q = `
		UPDATE order_statuses
		SET code = $1, name = $2, sort_order = $3
		WHERE id = $4
	`

	res, err := r.db.ExecContext(ctx, q, st.Code, st.Name, st.SortOrder, st.ID)
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

// Delete removes a status. The orders.status_id reference is RESTRICT, so a
// status still in use fails with ErrInUse instead of cascading.
func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM order_statuses WHERE id = $1`, id)
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
