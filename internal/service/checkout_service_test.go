package service_test

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"alfaraz/spareparts/internal/apperr"
	"alfaraz/spareparts/internal/config"
	"alfaraz/spareparts/internal/repository"
	"alfaraz/spareparts/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	if err := repository.Migrate(dbURL); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("Unable to connect to database: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		t.Fatalf("Unable to ping database: %v", err)
	}

	// Truncate tables to ensure clean state
	tables := []string{"orders", "users", "spare_parts", "admin"} // Order matters due to FK
	for _, table := range tables {
		_, err := pool.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			t.Fatalf("Failed to truncate table %s: %v", table, err)
		}
	}

	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, id int) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO users (id, name, email, password) VALUES ($1, $2, $3, 'x')",
		id, fmt.Sprintf("User %d", id), fmt.Sprintf("user%d@example.com", id))
	require.NoError(t, err)
}

func seedPart(t *testing.T, pool *pgxpool.Pool, id int, price float64, quantity int) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		"INSERT INTO spare_parts (id, name, price, quantity) VALUES ($1, $2, $3, $4)",
		id, fmt.Sprintf("Part %d", id), price, quantity)
	require.NoError(t, err)
}

func partStock(t *testing.T, pool *pgxpool.Pool, id int) int {
	t.Helper()
	var stock int
	require.NoError(t, pool.QueryRow(context.Background(),
		"SELECT quantity FROM spare_parts WHERE id = $1", id).Scan(&stock))
	return stock
}

func orderCount(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM orders").Scan(&n))
	return n
}

func TestCheckout_Validation(t *testing.T) {
	// Precondition and coercion failures return before any transaction is
	// opened, so no database is needed.
	svc := service.NewCheckoutService(repository.New(nil), config.Checkout{})
	ctx := context.Background()

	_, err := svc.Checkout(ctx, 0, []service.LineItem{{PartID: 1, Price: 1.0, Quantity: 1.0}})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.Checkout(ctx, 1, nil)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.Checkout(ctx, 1, []service.LineItem{{PartID: 1, Price: "not a price", Quantity: 1.0}})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = svc.Checkout(ctx, 1, []service.LineItem{
		{PartID: 1, Price: 1.0, Quantity: 1.0},
		{PartID: 2, Price: 1.0, Quantity: "many"},
	})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestCheckout_Total(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seedUser(t, pool, 1)
	seedPart(t, pool, 1, 10.00, 10)
	seedPart(t, pool, 2, 5.50, 10)

	svc := service.NewCheckoutService(repository.New(pool), config.Checkout{})

	total, err := svc.Checkout(ctx, 1, []service.LineItem{
		{PartID: 1, Price: 10.00, Quantity: float64(3)},
		{PartID: 2, Price: "5.50", Quantity: "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 41.00, total)

	assert.Equal(t, 2, orderCount(t, pool))
	assert.Equal(t, 7, partStock(t, pool, 1))
	assert.Equal(t, 8, partStock(t, pool, 2))
}

func TestCheckout_AtomicRollback(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seedUser(t, pool, 1)
	seedPart(t, pool, 1, 10.00, 5)

	svc := service.NewCheckoutService(repository.New(pool), config.Checkout{})

	// The last line references a part that does not exist; the FK violation
	// must roll back the first line's order and stock decrement too.
	_, err := svc.Checkout(ctx, 1, []service.LineItem{
		{PartID: 1, Price: 10.00, Quantity: float64(2)},
		{PartID: 999, Price: 5.00, Quantity: float64(1)},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Checkout, apperr.KindOf(err))

	assert.Equal(t, 0, orderCount(t, pool))
	assert.Equal(t, 5, partStock(t, pool, 1))
}

func TestCheckout_OversellAllowedByDefault(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seedUser(t, pool, 1)
	seedPart(t, pool, 1, 10.00, 1)

	svc := service.NewCheckoutService(repository.New(pool), config.Checkout{})

	total, err := svc.Checkout(ctx, 1, []service.LineItem{
		{PartID: 1, Price: 10.00, Quantity: float64(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, 30.00, total)
	assert.Equal(t, -2, partStock(t, pool, 1))
}

func TestCheckout_LockStockRefusesOversell(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seedUser(t, pool, 1)
	seedPart(t, pool, 1, 10.00, 1)

	svc := service.NewCheckoutService(repository.New(pool), config.Checkout{LockStock: true})

	_, err := svc.Checkout(ctx, 1, []service.LineItem{
		{PartID: 1, Price: 10.00, Quantity: float64(3)},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Checkout, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "insufficient stock")

	assert.Equal(t, 0, orderCount(t, pool))
	assert.Equal(t, 1, partStock(t, pool, 1))
}

func TestCheckout_VerifyPriceOverridesClientPrice(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seedUser(t, pool, 1)
	seedPart(t, pool, 1, 12.50, 10)

	svc := service.NewCheckoutService(repository.New(pool), config.Checkout{VerifyPrice: true})

	// Client claims the part costs 0.01; the catalog price wins.
	total, err := svc.Checkout(ctx, 1, []service.LineItem{
		{PartID: 1, Price: 0.01, Quantity: float64(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, 25.00, total)
}

func TestCheckout_ConcurrentUnlockedMayOversell(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seedUser(t, pool, 1)
	seedPart(t, pool, 1, 10.00, 1)

	svc := service.NewCheckoutService(repository.New(pool), config.Checkout{})

	// Two concurrent checkouts on a part with quantity 1. Without the row
	// lock both succeed and drive the stock negative; that is the documented
	// reference behavior, not a bug in the test.
	var g errgroup.Group
	for i := 0; i < 2; i++ {
		g.Go(func() error {
			_, err := svc.Checkout(ctx, 1, []service.LineItem{
				{PartID: 1, Price: 10.00, Quantity: float64(1)},
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 2, orderCount(t, pool))
	assert.Equal(t, -1, partStock(t, pool, 1))
}

func TestCheckout_ConcurrentLocked(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	initialStock := 10
	seedUser(t, pool, 1)
	seedPart(t, pool, 1, 10.00, initialStock)

	svc := service.NewCheckoutService(repository.New(pool), config.Checkout{LockStock: true})

	// 50 buyers, 10 in stock: exactly 10 must succeed.
	var successCount atomic.Int64
	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			_, err := svc.Checkout(ctx, 1, []service.LineItem{
				{PartID: 1, Price: 10.00, Quantity: float64(1)},
			})
			if err == nil {
				successCount.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(initialStock), successCount.Load())
	assert.Equal(t, initialStock, orderCount(t, pool))
	assert.Equal(t, 0, partStock(t, pool, 1))
}
