package report

import (
	"context"
	"database/sql"
	"time"

	"delservice/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// CourierStats aggregates per-courier order counts and delivery cost
	// sums for orders created since the cutoff, busiest first.
	CourierStats(ctx context.Context, since time.Time) ([]CourierStat, error)
	StatusStats(ctx context.Context) ([]StatusStat, error)
	PaymentStats(ctx context.Context) ([]PaymentStat, error)
	DashboardCounts(ctx context.Context, todayStart time.Time) (total, pending, couriers, today int, err error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

func (r *repository) CourierStats(ctx context.Context, since time.Time) ([]CourierStat, error) {
	const q = `
		SELECT u.id, u.full_name, COUNT(o.id), COALESCE(SUM(o.delivery_cost), 0)
		FROM users u
		JOIN roles r ON r.id = u.role_id AND r.name = 'courier'
		JOIN orders o ON o.courier_id = u.id AND o.created_at >= $1
		GROUP BY u.id, u.full_name
		ORDER BY COUNT(o.id) DESC
	`

	rows, err := r.db.QueryContext(ctx, q, since)
	if err != nil {
		logger.FromCtx(ctx).Error("courier stats query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var stats []CourierStat
	for rows.Next() {
		var s CourierStat
		if err := rows.Scan(&s.CourierID, &s.Name, &s.Deliveries, &s.Earnings); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *repository) StatusStats(ctx context.Context) ([]StatusStat, error) {
	const q = `
		SELECT s.id, s.name, COUNT(o.id)
		FROM order_statuses s
		LEFT JOIN orders o ON o.status_id = s.id
		GROUP BY s.id, s.name, s.sort_order
		ORDER BY s.sort_order
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []StatusStat
	for rows.Next() {
		var s StatusStat
		if err := rows.Scan(&s.StatusID, &s.Name, &s.Orders); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *repository) PaymentStats(ctx context.Context) ([]PaymentStat, error) {
	const q = `
		SELECT pm.id, pm.name, COUNT(p.id), COALESCE(SUM(p.amount), 0)
		FROM payment_methods pm
		LEFT JOIN payments p ON p.payment_method_id = pm.id
		GROUP BY pm.id, pm.name
		ORDER BY pm.name
	`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []PaymentStat
	for rows.Next() {
		var s PaymentStat
		if err := rows.Scan(&s.MethodID, &s.Name, &s.Payments, &s.Amount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *repository) DashboardCounts(ctx context.Context, todayStart time.Time) (total, pending, couriers, today int, err error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders o JOIN order_statuses s ON s.id = o.status_id WHERE s.code = 'created'),
			(SELECT COUNT(*) FROM users u JOIN roles r ON r.id = u.role_id WHERE r.name = 'courier' AND u.status = 'works'),
			(SELECT COUNT(*) FROM orders WHERE created_at >= $1)
	`

	err = r.db.QueryRowContext(ctx, q, todayStart).Scan(&total, &pending, &couriers, &today)
	return total, pending, couriers, today, err
}
