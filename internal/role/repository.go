package role

import (
	"context"
	"database/sql"
	"errors"

	"delservice/internal/db"
	"delservice/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrNotFound  = errors.New("role not found")
	ErrNameTaken = errors.New("role name already in use")
)

type Repository interface {
	List(ctx context.Context) ([]*Role, error)
	GetByID(ctx context.Context, id int64) (*Role, error)
	Create(ctx context.Context, role *Role) error
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

func (r *repository) List(ctx context.Context) ([]*Role, error) {
	const q = `
		SELECT id, name, description
		FROM roles
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		logger.FromCtx(ctx).Error("list roles failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var roles []*Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Role, error) {
	const q = `
		SELECT id, name, description
		FROM roles
		WHERE id = $1
	`

	var role Role
	err := r.db.QueryRowContext(ctx, q, id).Scan(&role.ID, &role.Name, &role.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) Create(ctx context.Context, role *Role) error {
	const q = `
		INSERT INTO roles (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, q, role.Name, role.Description).Scan(&role.ID)
	if db.IsUniqueViolation(err) {
		return ErrNameTaken
	}
	return err
}

func (r *repository) Update(ctx context.Context, role *Role) error {
	const q = `
		UPDATE roles
		SET name = $1, description = $2
		WHERE id = $3
	`

	res, err := r.db.ExecContext(ctx, q, role.Name, role.Description, role.ID)
	if db.IsUniqueViolation(err) {
		return ErrNameTaken
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

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
