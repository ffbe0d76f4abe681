package address

import (
	"context"
	"database/sql"
	"errors"

	"delservice/internal/logger"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("address not found")

type Repository interface {
	// List returns addresses ordered by street then house number,
	// optionally filtered by a case-insensitive substring over both.
	List(ctx context.Context, search string) ([]*Address, error)
	GetByID(ctx context.Context, id int64) (*Address, error)
	Create(ctx context.Context, a *Address) error
	Update(ctx context.Context, a *Address) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

const addressCols = `id, street, house_number, apartment_number, entrance, floor, door_code, latitude, longitude`

func scanAddress(row interface{ Scan(...interface{}) error }) (*Address, error) {
	var a Address
	err := row.Scan(&a.ID, &a.Street, &a.HouseNumber, &a.ApartmentNumber, &a.Entrance,
		&a.Floor, &a.DoorCode, &a.Latitude, &a.Longitude)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context, search string) ([]*Address, error) {
	q := `SELECT ` + addressCols + ` FROM addresses`
	var args []interface{}
	if search != "" {
		q += ` WHERE street ILIKE $1 OR house_number ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	q += ` ORDER BY street, house_number`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("list addresses failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var addrs []*Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Address, error) {
	q := `SELECT ` + addressCols + ` FROM addresses WHERE id = $1`

	a, err := scanAddress(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *repository) Create(ctx context.Context, a *Address) error {
	const q = `
		INSERT INTO addresses (street, house_number, apartment_number, entrance, floor, door_code, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, q,
		a.Street, a.HouseNumber, a.ApartmentNumber, a.Entrance,
		a.Floor, a.DoorCode, a.Latitude, a.Longitude).
		Scan(&a.ID)
}

func (r *repository) Update(ctx context.Context, a *Address) error {
	const q = `
		UPDATE addresses
		SET street = $1, house_number = $2, apartment_number = $3, entrance = $4,
		    floor = $5, door_code = $6, latitude = $7, longitude = $8
		WHERE id = $9
	`

	res, err := r.db.ExecContext(ctx, q,
		a.Street, a.HouseNumber, a.ApartmentNumber, a.Entrance,
		a.Floor, a.DoorCode, a.Latitude, a.Longitude, a.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

// Delete removes an address. Orders delivering to it are removed via
// ON DELETE CASCADE; orders picking up from it keep running with the
// pickup reference cleared (ON DELETE SET NULL).
func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
