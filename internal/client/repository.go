package client

import (
	"context"
	"database/sql"
	"errors"

	"delservice/internal/db"
	"delservice/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("client not found")
	ErrEmailExists = errors.New("email already registered")
)

type Repository interface {
	// List returns clients newest-first, optionally filtered by a
	// case-insensitive substring over name, email and phone.
	List(ctx context.Context, search string) ([]*Client, error)
	GetByID(ctx context.Context, id int64) (*Client, error)
	Create(ctx context.Context, c *Client) error
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

func (r *repository) List(ctx context.Context, search string) ([]*Client, error) {
	q := `
		SELECT id, email, phone, full_name, registration_date, status
		FROM clients
	`
	var args []interface{}
	if search != "" {
		q += ` WHERE full_name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	q += ` ORDER BY registration_date DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("list clients failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var clients []*Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Email, &c.Phone, &c.FullName, &c.RegistrationDate, &c.Status); err != nil {
			return nil, err
		}
		clients = append(clients, &c)
	}
	return clients, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Client, error) {
	const q = `
		SELECT id, email, phone, full_name, registration_date, status
		FROM clients
		WHERE id = $1
	`

	var c Client
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&c.ID, &c.Email, &c.Phone, &c.FullName, &c.RegistrationDate, &c.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *Client) error {
	const q = `
		INSERT INTO clients (email, phone, full_name, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, registration_date
	`

	err := r.db.QueryRowContext(ctx, q, c.Email, c.Phone, c.FullName, c.Status).
		Scan(&c.ID, &c.RegistrationDate)
	if db.IsUniqueViolation(err) {
		return ErrEmailExists
	}
	return err
}

func (r *repository) Update(ctx context.Context, c *Client) error {
	const q = `
		UPDATE clients
		SET email = $1, phone = $2, full_name = $3, status = $4
		WHERE id = $5
	`

	res, err := r.db.ExecContext(ctx, q, c.Email, c.Phone, c.FullName, c.Status, c.ID)
	if db.IsUniqueViolation(err) {
		return ErrEmailExists
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

// Delete removes a client; its orders (and their items, reviews and
// payments) go with it via ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
