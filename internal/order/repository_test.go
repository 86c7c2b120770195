package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() (*Order, []OrderItem) {
	now := time.Now()
	o := &Order{
		ID:            "ord-1",
		StudentID:     "stud-1",
		CanteenID:     "cant-1",
		TotalAmount:   3.00,
		PaymentMethod: PaymentCash,
		PaymentStatus: PaymentCompleted,
		Status:        StatusPending,
		CreatedAt:     now,
	}
	items := []OrderItem{
		{MenuItemID: "item-1", Name: "Samosa", Price: 1.00, Quantity: 1},
		{MenuItemID: "item-2", Name: "Vada Pav", Price: 2.00, Quantity: 1},
	}
	return o, items
}

func TestRepository_CreateOrderTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		o, items := testOrder()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").
			WithArgs(o.ID, o.StudentID, o.CanteenID, o.TotalAmount,
				o.PaymentMethod, o.PaymentStatus, o.Status, o.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_status_history").
			WithArgs(o.ID, StatusPending, o.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_items").
			WithArgs(o.ID, "item-1", "Samosa", 1.00, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_items").
			WithArgs(o.ID, "item-2", "Vada Pav", 2.00, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.CreateOrderTx(context.Background(), o, items))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollbackOnItemFailure", func(t *testing.T) {
		o, items := testOrder()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO orders").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_status_history").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_items").
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		err := repo.CreateOrderTx(context.Background(), o, items)
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_UpdateStatusTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE orders").
			WithArgs(StatusAccepted, false, "ord-1", StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_status_history").
			WithArgs("ord-1", StatusAccepted).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateStatusTx(context.Background(), "ord-1", StatusPending, StatusAccepted, false)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConflictWhenPriorStatusMoved", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE orders").
			WithArgs(StatusAccepted, false, "ord-1", StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.UpdateStatusTx(context.Background(), "ord-1", StatusPending, StatusAccepted, false)
		assert.ErrorIs(t, err, ErrStatusConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CompletedForcesPaymentFlag", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE orders").
			WithArgs(StatusCompleted, true, "ord-1", StatusReady).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_status_history").
			WithArgs("ord-1", StatusCompleted).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateStatusTx(context.Background(), "ord-1", StatusReady, StatusCompleted, true)
		require.NoError(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		orderRows := sqlmock.NewRows([]string{
			"id", "student_id", "canteen_id", "total_amount",
			"payment_method", "payment_status", "order_status", "created_at",
		}).AddRow("ord-1", "stud-1", "cant-1", 3.00, PaymentCash, PaymentCompleted, StatusAccepted, now)

		mock.ExpectQuery("SELECT .* FROM orders").
			WithArgs("ord-1").
			WillReturnRows(orderRows)

		historyRows := sqlmock.NewRows([]string{"order_id", "status", "created_at"}).
			AddRow("ord-1", StatusPending, now).
			AddRow("ord-1", StatusAccepted, now.Add(time.Minute))

		mock.ExpectQuery("SELECT order_id, status, created_at FROM order_status_history").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(historyRows)

		o, err := repo.GetByID(context.Background(), "ord-1")
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, o.Status)
		require.Len(t, o.StatusHistory, 2)
		assert.Equal(t, StatusPending, o.StatusHistory[0].Status)
		assert.Equal(t, StatusAccepted, o.StatusHistory[1].Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_ListByCanteen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	now := time.Now()
	orderRows := sqlmock.NewRows([]string{
		"id", "student_id", "canteen_id", "total_amount",
		"payment_method", "payment_status", "order_status", "created_at", "name",
	}).
		AddRow("ord-2", "stud-2", "cant-1", 5.00, PaymentUPI, PaymentPending, StatusPending, now, "Priya").
		AddRow("ord-1", "stud-1", "cant-1", 3.00, PaymentCash, PaymentCompleted, StatusReady, now.Add(-time.Hour), "Amit")

	mock.ExpectQuery("SELECT .* FROM orders").
		WithArgs("cant-1").
		WillReturnRows(orderRows)

	historyRows := sqlmock.NewRows([]string{"order_id", "status", "created_at"}).
		AddRow("ord-2", StatusPending, now).
		AddRow("ord-1", StatusPending, now.Add(-time.Hour)).
		AddRow("ord-1", StatusAccepted, now.Add(-50*time.Minute))

	mock.ExpectQuery("SELECT order_id, status, created_at FROM order_status_history").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(historyRows)

	orders, err := repo.ListByCanteen(context.Background(), "cant-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Priya", orders[0].StudentName)
	assert.Len(t, orders[1].StatusHistory, 2)
}

func TestRepository_CanteenStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WithArgs("cant-1").
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(12, 148.50))

	stats, err := repo.CanteenStats(context.Background(), "cant-1")
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.OrderCount)
	assert.Equal(t, 148.50, stats.TotalRevenue)
}
