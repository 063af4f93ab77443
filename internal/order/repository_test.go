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

var orderRowColumns = []string{
	"id", "customer_name", "phone", "address", "total", "status", "created_at",
}

func sampleOrderRow() *sqlmock.Rows {
	return sqlmock.NewRows(orderRowColumns).AddRow(
		"order-1", "Ali Valiyev", "+998901234567", "Chilonzor, 1-mavze, 15-uy",
		int64(112000), "new", time.Now(),
	)
}

func sampleInput() NewOrderInput {
	return NewOrderInput{
		CustomerName: "Ali Valiyev",
		Phone:        "+998901234567",
		Address:      "Chilonzor, 1-mavze, 15-uy",
		Total:        112000,
		Items: []NewOrderItem{
			{ProductID: "prod-1", ProductName: "Classic Burger", Quantity: 2, Price: 45000},
			{ProductID: "prod-2", ProductName: "Cappuccino", Quantity: 1, Price: 22000},
		},
	}
}

func TestRepository_CreateOrderTx(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs("Ali Valiyev", "+998901234567", "Chilonzor, 1-mavze, 15-uy", int64(112000), StatusNew).
			WillReturnRows(sampleOrderRow())
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs("order-1", "prod-1", "Classic Burger", int32(2), int64(45000)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("item-1"))
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs("order-1", "prod-2", "Cappuccino", int32(1), int64(22000)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("item-2"))
		mock.ExpectCommit()

		o, err := repo.CreateOrderTx(context.Background(), sampleInput())

		require.NoError(t, err)
		assert.Equal(t, "order-1", o.ID)
		assert.Equal(t, StatusNew, o.Status)
		assert.Len(t, o.Items, 2)
		assert.Equal(t, "Classic Burger", o.Items[0].ProductName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back when an item insert fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnRows(sampleOrderRow())
		mock.ExpectQuery("INSERT INTO order_items").
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		_, err = repo.CreateOrderTx(context.Background(), sampleInput())

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back when the order insert fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		_, err = repo.CreateOrderTx(context.Background(), sampleInput())

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders").
			WithArgs(int32(50), int32(0)).
			WillReturnRows(sampleOrderRow())

		orders, err := repo.List(context.Background(), OrderQueryOptions{})
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.Equal(t, "Ali Valiyev", orders[0].CustomerName)
		assert.Equal(t, int64(112000), orders[0].Total)
	})

	t.Run("FilterByStatus", func(t *testing.T) {
		status := StatusPreparing
		mock.ExpectQuery("SELECT .* FROM orders .* WHERE status").
			WithArgs(status, int32(50), int32(0)).
			WillReturnRows(sampleOrderRow())

		orders, err := repo.List(context.Background(), OrderQueryOptions{Status: &status})
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("SearchByCustomer", func(t *testing.T) {
		search := "Ali"
		mock.ExpectQuery("SELECT .* FROM orders .* WHERE .*ILIKE").
			WithArgs("%Ali%", int32(50), int32(0)).
			WillReturnRows(sampleOrderRow())

		orders, err := repo.List(context.Background(), OrderQueryOptions{Search: &search})
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders").
			WillReturnError(errors.New("db error"))

		_, err := repo.List(context.Background(), OrderQueryOptions{})
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success with items", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders").
			WithArgs("order-1").
			WillReturnRows(sampleOrderRow())
		mock.ExpectQuery("SELECT .* FROM order_items").
			WithArgs("order-1").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "order_id", "product_id", "product_name", "quantity", "price",
			}).
				AddRow("item-1", "order-1", "prod-1", "Classic Burger", int32(2), int64(45000)).
				AddRow("item-2", "order-1", "prod-2", "Cappuccino", int32(1), int64(22000)))

		o, err := repo.GetByID(context.Background(), "order-1")

		require.NoError(t, err)
		assert.Len(t, o.Items, 2)
		assert.Equal(t, int32(2), o.Items[0].Quantity)
	})

	t.Run("NotFound returns nil", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM orders").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(orderRowColumns))

		o, err := repo.GetByID(context.Background(), "missing")
		assert.NoError(t, err)
		assert.Nil(t, o)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders").
			WithArgs(StatusDelivering, "order-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), "order-1", StatusDelivering)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE orders").
			WithArgs(StatusDelivering, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), "missing", StatusDelivering)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
