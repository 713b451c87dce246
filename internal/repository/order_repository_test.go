package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createOrder(t *testing.T, repo OrderRepository, createdAt time.Time, items ...model.OrderItem) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	var subtotal int64
	for _, it := range items {
		subtotal += it.UnitPrice * int64(it.Quantity)
	}

	order := &model.Order{
		ID:        uuid.New(),
		UserID:    "user-1",
		Subtotal:  subtotal,
		Total:     subtotal,
		CreatedAt: createdAt,
	}
	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = order.ID
	}

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NoError(t, repo.CreateOrderItems(ctx, tx, items))
	require.NoError(t, tx.Commit(ctx))

	return order.ID
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	pool := setupTestDB(t)
	logger := zerolog.Nop()
	products := NewProductRepository(pool, logger)
	repo := NewOrderRepository(pool, logger)
	ctx := context.Background()

	seedProducts(t, products, []model.Product{
		testProduct("P001", "Abon", 30000),
		testProduct("P002", "Dodol", 20000),
	})

	id := createOrder(t, repo, time.Now().UTC(),
		model.OrderItem{ProductID: "P001", Name: "Abon", UnitPrice: 30000, Quantity: 2},
		model.OrderItem{ProductID: "P002", Name: "Dodol", UnitPrice: 20000, Quantity: 1},
	)

	order, items, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, int64(80000), order.Subtotal)
	assert.Nil(t, order.VoucherCode)
	assert.Len(t, items, 2)

	missing, _, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOrderRepository_RollbackDiscardsOrder(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	order := &model.Order{ID: uuid.New(), Subtotal: 1, Total: 1, CreatedAt: time.Now().UTC()}

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.CreateOrder(ctx, tx, order))

	// Unknown product violates the foreign key.
	err = repo.CreateOrderItems(ctx, tx, []model.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: "P404", Name: "x", UnitPrice: 1, Quantity: 1},
	})
	require.Error(t, err)
	require.NoError(t, tx.Rollback(ctx))

	got, _, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderRepository_SalesByProduct(t *testing.T) {
	pool := setupTestDB(t)
	logger := zerolog.Nop()
	products := NewProductRepository(pool, logger)
	repo := NewOrderRepository(pool, logger)
	ctx := context.Background()

	seedProducts(t, products, []model.Product{
		testProduct("P001", "Abon", 30000),
		testProduct("P002", "Dodol", 20000),
	})

	now := time.Now().UTC()
	createOrder(t, repo, now.Add(-48*time.Hour),
		model.OrderItem{ProductID: "P001", Name: "Abon", UnitPrice: 30000, Quantity: 10},
	)
	createOrder(t, repo, now,
		model.OrderItem{ProductID: "P001", Name: "Abon", UnitPrice: 30000, Quantity: 1},
		model.OrderItem{ProductID: "P002", Name: "Dodol", UnitPrice: 20000, Quantity: 3},
	)
	createOrder(t, repo, now,
		model.OrderItem{ProductID: "P001", Name: "Abon", UnitPrice: 24000, Quantity: 1},
	)

	sales, err := repo.SalesByProduct(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Equal(t, "P002", sales[0].ProductID)
	assert.Equal(t, 3, sales[0].Units)
	assert.Equal(t, int64(60000), sales[0].Revenue)

	assert.Equal(t, "P001", sales[1].ProductID)
	assert.Equal(t, 2, sales[1].Units)
	assert.Equal(t, int64(54000), sales[1].Revenue)
}
