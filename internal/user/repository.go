package user

import (
	"context"
	"database/sql"
	"errors"

	"delservice/internal/db"
	"delservice/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrLoginTaken = errors.New("login already taken")
	ErrNoSuchRole = errors.New("role does not exist")
)

type Repository interface {
	// List returns staff newest-hire-first, optionally filtered by a
	// case-insensitive substring over name, login and phone.
	List(ctx context.Context, search string) ([]*User, error)
	// ListByRole returns working staff holding the named role, for
	// assignment dropdowns.
	ListByRole(ctx context.Context, roleName string) ([]*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	FindByLogin(ctx context.Context, login string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

const userCols = `u.id, u.role_id, r.name, u.login, u.password_hash, u.full_name, u.phone, u.status, u.hire_date`

func scanUser(row interface{ Scan(...interface{}) error }) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.RoleID, &u.RoleName, &u.Login, &u.PasswordHash,
		&u.FullName, &u.Phone, &u.Status, &u.HireDate)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context, search string) ([]*User, error) {
	q := `SELECT ` + userCols + ` FROM users u JOIN roles r ON r.id = u.role_id`
	var args []interface{}
	if search != "" {
		q += ` WHERE u.full_name ILIKE $1 OR u.login ILIKE $1 OR u.phone ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	q += ` ORDER BY u.hire_date DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("list users failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func (r *repository) ListByRole(ctx context.Context, roleName string) ([]*User, error) {
	q := `SELECT ` + userCols + ` FROM users u JOIN roles r ON r.id = u.role_id
		WHERE r.name = $1 AND u.status = 'works'
		ORDER BY u.full_name`

	rows, err := r.db.QueryContext(ctx, q, roleName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func collect(rows *sql.Rows) ([]*User, error) {
	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	q := `SELECT ` + userCols + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (r *repository) FindByLogin(ctx context.Context, login string) (*User, error) {
	q := `SELECT ` + userCols + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE u.login = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, q, login))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (r *repository) Create(ctx context.Context, u *User) error {
	const q = `
		INSERT INTO users (role_id, login, password_hash, full_name, phone, status, hire_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, q,
		u.RoleID, u.Login, u.PasswordHash, u.FullName, u.Phone, u.Status, u.HireDate).
		Scan(&u.ID)
	if db.IsUniqueViolation(err) {
		return ErrLoginTaken
	}
	if db.IsForeignKeyViolation(err) {
		return ErrNoSuchRole
	}
	return err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	const q = `
		UPDATE users
		SET role_id = $1, login = $2, password_hash = $3, full_name = $4,
		    phone = $5, status = $6, hire_date = $7
		WHERE id = $8
	`

	res, err := r.db.ExecContext(ctx, q,
		u.RoleID, u.Login, u.PasswordHash, u.FullName, u.Phone, u.Status, u.HireDate, u.ID)
	if db.IsUniqueViolation(err) {
		return ErrLoginTaken
	}
	if db.IsForeignKeyViolation(err) {
		return ErrNoSuchRole
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

// Delete removes a staff account. Orders assigned to a deleted courier
// keep running with the courier reference cleared (ON DELETE SET NULL);
// the account's sessions cascade.
func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
