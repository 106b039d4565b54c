package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/testutil"
)

func TestCatalogRepository_Constraints(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	pool, _ := testutil.StartPostgres(t)
	testutil.TruncateAll(t, pool)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	repo := catalog.NewPostgresRepository(pool)
	now := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, repo.CreateCategory(ctx, catalog.Category{ID: "c1", Name: "Jackets", CreatedAt: now}))
	err := repo.CreateCategory(ctx, catalog.Category{ID: "c2", Name: "jackets", CreatedAt: now})
	require.ErrorIs(t, err, catalog.ErrDuplicateCategory)

	p := catalog.Product{
		ID:          "p1",
		Name:        "Rain Jacket",
		Description: "Light waterproof shell",
		Price:       decimal.RequireFromString("89.90"),
		CategoryID:  "c1",
		Sizes:       []string{"S", "M"},
		Images:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.CreateProduct(ctx, p))

	got, err := repo.GetProduct(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Jackets", got.CategoryName)
	require.True(t, got.Price.Equal(p.Price))
	require.Equal(t, []string{"S", "M"}, got.Sizes)

	require.ErrorIs(t, repo.DeleteCategory(ctx, "c1"), catalog.ErrCategoryInUse)

	bad := p
	bad.ID = "p2"
	bad.CategoryID = "missing"
	require.ErrorIs(t, repo.CreateProduct(ctx, bad), catalog.ErrUnknownCategory)

	require.NoError(t, repo.DeleteProduct(ctx, "p1"))
	require.NoError(t, repo.DeleteCategory(ctx, "c1"))
}

func TestSequenceRepository_PerPartition(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	pool, _ := testutil.StartPostgres(t)
	testutil.TruncateAll(t, pool)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	seq := events.NewSequenceRepository(pool)
	for want := int64(1); want <= 3; want++ {
		got, err := seq.NextSequence(ctx, "order-a")
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	got, err := seq.NextSequence(ctx, "order-b")
	require.NoError(t, err)
	require.Equal(t, int64(1), got)
}

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	client := testutil.StartRedis(t)
	store := cart.NewRedisStore(client, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snap := cart.ProductSnapshot{ProductID: "p1", Name: "Tee", Price: decimal.RequireFromString("20")}
	add := func(c cart.Cart) (cart.Cart, error) { return c.Add(snap, "M", 1) }

	_, err := store.Update(ctx, "u1", add)
	require.NoError(t, err)
	c, err := store.Update(ctx, "u1", add)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	require.Equal(t, 2, c.Lines[0].Quantity)

	ttl, err := client.TTL(ctx, "cart:u1").Result()
	require.NoError(t, err)
	require.Greater(t, ttl, time.Duration(0))

	loaded, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, c.Lines[0].ID, loaded.Lines[0].ID)

	_, err = store.Update(ctx, "u1", func(c cart.Cart) (cart.Cart, error) { return c.Clear(), nil })
	require.NoError(t, err)
	exists, err := client.Exists(ctx, "cart:u1").Result()
	require.NoError(t, err)
	require.Zero(t, exists)

	require.NoError(t, store.Delete(ctx, "u1"))
}
