package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"delservice/internal/db"
	"delservice/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrItemNotFound    = errors.New("order item not found")
	ErrProductNotFound = errors.New("product not found")
	ErrNoReview        = errors.New("order has no review")
	ErrNoPayment       = errors.New("order has no payment")
)

// InvalidRefError reports a foreign key that points nowhere, keyed by the
// form field that carried it.
type InvalidRefError struct {
	Field string
}

func (e *InvalidRefError) Error() string {
	return "invalid reference in field " + e.Field
}

type Repository interface {
	Search(ctx context.Context, f Filter, limit, offset int) ([]*Order, error)
	Count(ctx context.Context, f Filter) (int, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id int64) error

	ListItems(ctx context.Context, orderID int64) ([]*Item, error)
	GetItem(ctx context.Context, itemID int64) (*Item, error)
	// AddItem snapshots the product's current price into the new item and
	// recomputes order_total, all in one transaction.
	AddItem(ctx context.Context, orderID, productID int64, quantity int) (*Item, error)
	// RemoveItem deletes the item and recomputes its order's total in one
	// transaction. Returns the owning order id.
	RemoveItem(ctx context.Context, itemID int64) (int64, error)

	GetReview(ctx context.Context, orderID int64) (*Review, error)
	GetPayment(ctx context.Context, orderID int64) (*Payment, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(database *sql.DB) Repository {
	return &repository{db: database}
}

const orderSelect = `
	SELECT o.id, o.client_id, o.delivery_address_id, o.pickup_address_id, o.courier_id,
	       o.status_id, o.delivery_cost, o.order_total, o.payment_method_id,
	       o.created_at, o.confirmed_at, o.courier_assigned_at, o.dispatched_at, o.delivered_at,
	       o.comment,
	       c.full_name, c.phone, s.code, s.name, u.full_name, pm.name,
	       da.street || ', ' || da.house_number,
	       pa.street || ', ' || pa.house_number
	FROM orders o
	JOIN clients c ON c.id = o.client_id
	JOIN order_statuses s ON s.id = o.status_id
	JOIN payment_methods pm ON pm.id = o.payment_method_id
	JOIN addresses da ON da.id = o.delivery_address_id
	LEFT JOIN users u ON u.id = o.courier_id
	LEFT JOIN addresses pa ON pa.id = o.pickup_address_id
`

func scanOrder(row interface{ Scan(...interface{}) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.ClientID, &o.DeliveryAddressID, &o.PickupAddressID, &o.CourierID,
		&o.StatusID, &o.DeliveryCost, &o.OrderTotal, &o.PaymentMethodID,
		&o.CreatedAt, &o.ConfirmedAt, &o.CourierAssignedAt, &o.DispatchedAt, &o.DeliveredAt,
		&o.Comment,
		&o.ClientName, &o.ClientPhone, &o.StatusCode, &o.StatusName, &o.CourierName, &o.PaymentMethodName,
		&o.DeliveryAddress, &o.PickupAddress,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// where renders the filter into a conjunctive WHERE clause with positional
// placeholders.
func where(f Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.ClientQuery != "" {
		add(`(c.full_name ILIKE $%[1]d OR c.phone ILIKE $%[1]d)`, "%"+f.ClientQuery+"%")
	}
	if f.StatusCode != "" {
		add(`s.code = $%d`, f.StatusCode)
	}
	if f.DateFrom != nil {
		add(`o.created_at >= $%d`, *f.DateFrom)
	}
	if f.DateTo != nil {
		add(`o.created_at < $%d`, *f.DateTo)
	}
	if f.CourierID != nil {
		add(`o.courier_id = $%d`, *f.CourierID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *repository) Search(ctx context.Context, f Filter, limit, offset int) ([]*Order, error) {
	clause, args := where(f)
	q := orderSelect + clause +
		fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("order search failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) Count(ctx context.Context, f Filter) (int, error) {
	clause, args := where(f)
	q := `SELECT COUNT(*) FROM orders o
		JOIN clients c ON c.id = o.client_id
		JOIN order_statuses s ON s.id = o.status_id` + clause

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, orderSelect+` WHERE o.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

// refField maps FK constraint names to the form fields that carry them.
var refField = map[string]string{
	"orders_client_id_fkey":           "client_id",
	"orders_delivery_address_id_fkey": "delivery_address_id",
	"orders_pickup_address_id_fkey":   "pickup_address_id",
	"orders_courier_id_fkey":          "courier_id",
	"orders_status_id_fkey":           "status_id",
	"orders_payment_method_id_fkey":   "payment_method_id",
}

func translateRef(err error) error {
	if !db.IsForeignKeyViolation(err) {
		return err
	}
	if field, ok := refField[db.ConstraintName(err)]; ok {
		return &InvalidRefError{Field: field}
	}
	return err
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	const q = `
		INSERT INTO orders (client_id, delivery_address_id, pickup_address_id, courier_id,
		                    status_id, delivery_cost, order_total, payment_method_id,
		                    confirmed_at, courier_assigned_at, dispatched_at, delivered_at, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, q,
		o.ClientID, o.DeliveryAddressID, o.PickupAddressID, o.CourierID,
		o.StatusID, o.DeliveryCost, o.OrderTotal, o.PaymentMethodID,
		o.ConfirmedAt, o.CourierAssignedAt, o.DispatchedAt, o.DeliveredAt, o.Comment).
		Scan(&o.ID, &o.CreatedAt)
	return translateRef(err)
}

// Update writes the editable fields. order_total and created_at are never
// touched here: the total belongs to the item transactions, created_at is
// immutable.
func (r *repository) Update(ctx context.Context, o *Order) error {
	const q = `
		UPDATE orders
		SET client_id = $1, delivery_address_id = $2, pickup_address_id = $3, courier_id = $4,
		    status_id = $5, delivery_cost = $6, payment_method_id = $7,
		    confirmed_at = $8, courier_assigned_at = $9, dispatched_at = $10, delivered_at = $11,
		    comment = $12
		WHERE id = $13
	`

	res, err := r.db.ExecContext(ctx, q,
		o.ClientID, o.DeliveryAddressID, o.PickupAddressID, o.CourierID,
		o.StatusID, o.DeliveryCost, o.PaymentMethodID,
		o.ConfirmedAt, o.CourierAssignedAt, o.DispatchedAt, o.DeliveredAt,
		o.Comment, o.ID)
	if err != nil {
		return translateRef(err)
	}

	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

// Delete removes an order; items, review and payment cascade.
func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

const itemSelect = `
	SELECT i.id, i.order_id, i.product_id, p.name, i.quantity, i.price_at_order
	FROM order_items i
	JOIN products p ON p.id = i.product_id
`

func (r *repository) ListItems(ctx context.Context, orderID int64) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, itemSelect+` WHERE i.order_id = $1 ORDER BY i.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.PriceAtOrder); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *repository) GetItem(ctx context.Context, itemID int64) (*Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx, itemSelect+` WHERE i.id = $1`, itemID).
		Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.PriceAtOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// recomputeTotal derives order_total from the surviving items. Running it
// inside the same transaction as the item write keeps the total exact under
// concurrent edits.
const recomputeTotal = `
	UPDATE orders
	SET order_total = COALESCE(
		(SELECT SUM(price_at_order * quantity) FROM order_items WHERE order_id = $1), 0)
	WHERE id = $1
`

func (r *repository) AddItem(ctx context.Context, orderID, productID int64, quantity int) (*Item, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Serialize item mutations per order.
	var ok int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&ok)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	it := &Item{OrderID: orderID, ProductID: productID, Quantity: quantity}
	err = tx.QueryRowContext(ctx, `SELECT name, price FROM products WHERE id = $1`, productID).
		Scan(&it.ProductName, &it.PriceAtOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO order_items (order_id, product_id, quantity, price_at_order)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		orderID, productID, quantity, it.PriceAtOrder).Scan(&it.ID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, recomputeTotal, orderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repository) RemoveItem(ctx context.Context, itemID int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var orderID int64
	err = tx.QueryRowContext(ctx,
		`SELECT o.id FROM orders o
		 JOIN order_items i ON i.order_id = o.id
		 WHERE i.id = $1 FOR UPDATE OF o`, itemID).Scan(&orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrItemNotFound
	}
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE id = $1`, itemID); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, recomputeTotal, orderID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orderID, nil
}

func (r *repository) GetReview(ctx context.Context, orderID int64) (*Review, error) {
	const q = `SELECT id, order_id, rating, text, created_at FROM reviews WHERE order_id = $1`

	var rv Review
	err := r.db.QueryRowContext(ctx, q, orderID).
		Scan(&rv.ID, &rv.OrderID, &rv.Rating, &rv.Text, &rv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoReview
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repository) GetPayment(ctx context.Context, orderID int64) (*Payment, error) {
	const q = `
		SELECT p.id, p.order_id, p.payment_method_id, pm.name, p.amount, p.status, p.transaction_number, p.paid_at
		FROM payments p
		JOIN payment_methods pm ON pm.id = p.payment_method_id
		WHERE p.order_id = $1
	`

	var pay Payment
	err := r.db.QueryRowContext(ctx, q, orderID).
		Scan(&pay.ID, &pay.OrderID, &pay.PaymentMethodID, &pay.MethodName, &pay.Amount,
			&pay.Status, &pay.TransactionNumber, &pay.PaidAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoPayment
	}
	if err != nil {
		return nil, err
	}
	return &pay, nil
}
