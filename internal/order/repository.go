package order

import (
	"context"
	"database/sql"
	"errors"

	"campuseats-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx persists the order, its initial history entry and all
	// line items in one transaction: they appear together or not at all.
	CreateOrderTx(ctx context.Context, o *Order, items []OrderItem) error

	GetByID(ctx context.Context, orderID string) (*Order, error)
	GetDetail(ctx context.Context, orderID string) (*Order, error)
	ListByStudent(ctx context.Context, studentID string) ([]*Order, error)
	ListByCanteen(ctx context.Context, canteenID string) ([]*Order, error)

	// UpdateStatusTx performs the transition as a compare-and-swap on the
	// expected prior status and appends the history entry in the same
	// transaction. A concurrent change surfaces as ErrStatusConflict.
	UpdateStatusTx(ctx context.Context, orderID string, from, to Status, completePayment bool) error

	CanteenStats(ctx context.Context, canteenID string) (*CanteenStats, error)
	GlobalStats(ctx context.Context) (*CanteenStats, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order, items []OrderItem) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_id", o.ID),
		zap.Int("item_count", len(items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, student_id, canteen_id, total_amount,
			payment_method, payment_status, order_status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		o.ID, o.StudentID, o.CanteenID, o.TotalAmount,
		o.PaymentMethod, o.PaymentStatus, o.Status, o.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, status, created_at)
		VALUES ($1, $2, $3)
	`, o.ID, StatusPending, o.CreatedAt)
	if err != nil {
		log.Error("failed to insert initial history entry", zap.Error(err))
		return err
	}

	for i, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, price, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`, o.ID, item.MenuItemID, item.Name, item.Price, item.Quantity)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.String("menu_item_id", item.MenuItemID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order transaction committed")

	return nil
}

const orderColumns = `id, student_id, canteen_id, total_amount, payment_method, payment_status, order_status, created_at`

func scanOrder(row interface{ Scan(...any) error }, extra ...*string) (*Order, error) {
	var o Order
	dest := []any{
		&o.ID, &o.StudentID, &o.CanteenID, &o.TotalAmount,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.CreatedAt,
	}
	for _, e := range extra {
		dest = append(dest, e)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, orderID))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	histories, err := r.loadHistories(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.StatusHistory = histories[o.ID]

	return o, nil
}

func (r *repository) GetDetail(ctx context.Context, orderID string) (*Order, error) {
	var upi sql.NullString
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.student_id, o.canteen_id, o.total_amount,
		       o.payment_method, o.payment_status, o.order_status, o.created_at,
		       c.name, c.upi_id, u.name
		FROM orders o
		JOIN canteens c ON c.id = o.canteen_id
		JOIN users u ON u.id = o.student_id
		WHERE o.id = $1
	`, orderID).Scan(
		&o.ID, &o.StudentID, &o.CanteenID, &o.TotalAmount,
		&o.PaymentMethod, &o.PaymentStatus, &o.Status, &o.CreatedAt,
		&o.CanteenName, &upi, &o.StudentName,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if upi.Valid {
		o.CanteenUpi = upi.String
	}

	histories, err := r.loadHistories(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.StatusHistory = histories[o.ID]

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, menu_item_id, name, price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) ListByStudent(ctx context.Context, studentID string) ([]*Order, error) {
	return r.listWithName(ctx, `
		SELECT `+prefixedOrderColumns+`, c.name
		FROM orders o
		JOIN canteens c ON c.id = o.canteen_id
		WHERE o.student_id = $1
		ORDER BY o.created_at DESC
	`, studentID, func(o *Order, name string) { o.CanteenName = name })
}

func (r *repository) ListByCanteen(ctx context.Context, canteenID string) ([]*Order, error) {
	return r.listWithName(ctx, `
		SELECT `+prefixedOrderColumns+`, u.name
		FROM orders o
		JOIN users u ON u.id = o.student_id
		WHERE o.canteen_id = $1
		ORDER BY o.created_at DESC
	`, canteenID, func(o *Order, name string) { o.StudentName = name })
}

const prefixedOrderColumns = `o.id, o.student_id, o.canteen_id, o.total_amount, o.payment_method, o.payment_status, o.order_status, o.created_at`

func (r *repository) listWithName(ctx context.Context, query, arg string, assign func(*Order, string)) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
	)

	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var name string
		o, err := scanOrder(rows, &name)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		assign(o, name)
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		histories, err := r.loadHistories(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			o.StatusHistory = histories[o.ID]
		}
	}

	return orders, nil
}

// loadHistories fetches the append-only history rows for a batch of
// orders in one query, oldest first.
func (r *repository) loadHistories(ctx context.Context, orderIDs []string) (map[string][]StatusEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, status, created_at
		FROM order_status_history
		WHERE order_id = ANY($1)
		ORDER BY created_at, id
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	histories := make(map[string][]StatusEntry, len(orderIDs))
	for rows.Next() {
		var orderID string
		var e StatusEntry
		if err := rows.Scan(&orderID, &e.Status, &e.Timestamp); err != nil {
			return nil, err
		}
		histories[orderID] = append(histories[orderID], e)
	}

	return histories, rows.Err()
}

func (r *repository) UpdateStatusTx(ctx context.Context, orderID string, from, to Status, completePayment bool) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatusTx"),
		zap.String("order_id", orderID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// CAS on the expected prior status: a racing update makes this match
	// zero rows instead of clobbering it.
	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET order_status = $1,
		    payment_status = CASE WHEN $2 THEN 'completed' ELSE payment_status END,
		    updated_at = NOW()
		WHERE id = $3 AND order_status = $4
	`, to, completePayment, orderID, from)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Warn("status update lost the race")
		return ErrStatusConflict
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_status_history (order_id, status, created_at)
		VALUES ($1, $2, NOW())
	`, orderID, to)
	if err != nil {
		log.Error("failed to append history entry", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	committed = true
	log.Info("order status updated")

	return nil
}

func (r *repository) CanteenStats(ctx context.Context, canteenID string) (*CanteenStats, error) {
	var s CanteenStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(total_amount) FILTER (WHERE order_status = 'completed'), 0)
		FROM orders
		WHERE canteen_id = $1
	`, canteenID).Scan(&s.OrderCount, &s.TotalRevenue)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) GlobalStats(ctx context.Context) (*CanteenStats, error) {
	var s CanteenStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(total_amount) FILTER (WHERE order_status = 'completed'), 0)
		FROM orders
	`).Scan(&s.OrderCount, &s.TotalRevenue)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
