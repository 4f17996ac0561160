package repository

import (
	"context"
	"testing"
	"time"

	"cart-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupTestDB(t *testing.T) (*mongo.Database, func()) {
	ctx := context.Background()

	// Start MongoDB container
	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return db, cleanup
}

func setupCartRepo(t *testing.T) (CartRepository, func()) {
	db, cleanup := setupTestDB(t)

	repo := NewCartRepository(db)
	err := repo.(*mongoCartRepository).CreateIndexes(context.Background())
	require.NoError(t, err)

	return repo, cleanup
}

func TestGetCart_NotFound(t *testing.T) {
	repo, cleanup := setupCartRepo(t)
	defer cleanup()

	cart, err := repo.GetCart(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Nil(t, cart)
}

func TestUpsertCart_CreatesAndReads(t *testing.T) {
	repo, cleanup := setupCartRepo(t)
	defer cleanup()

	ctx := context.Background()
	cart := &domain.Cart{
		UserID: "user123",
		Items: []domain.CartItem{
			{ProductID: 7, Name: "shirt", Size: "M", Color: "red", Price: 10, Quantity: 2, Image: "shirt.png"},
		},
	}

	err := repo.UpsertCart(ctx, cart)
	require.NoError(t, err)
	assert.False(t, cart.CreatedAt.IsZero())
	assert.False(t, cart.UpdatedAt.IsZero())

	got, err := repo.GetCart(ctx, "user123")
	require.NoError(t, err)
	assert.Equal(t, "user123", got.UserID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 7, got.Items[0].ProductID)
	assert.Equal(t, "shirt", got.Items[0].Name)
	assert.Equal(t, "M", got.Items[0].Size)
	assert.Equal(t, 10.0, got.Items[0].Price)
}

func TestUpsertCart_SecondWriteReplacesItems(t *testing.T) {
	repo, cleanup := setupCartRepo(t)
	defer cleanup()

	ctx := context.Background()
	cart := &domain.Cart{
		UserID: "user123",
		Items:  []domain.CartItem{{ProductID: 7, Quantity: 1}},
	}
	require.NoError(t, repo.UpsertCart(ctx, cart))
	firstUpdate := cart.UpdatedAt

	time.Sleep(5 * time.Millisecond)

	cart.Items = []domain.CartItem{}
	require.NoError(t, repo.UpsertCart(ctx, cart))

	got, err := repo.GetCart(ctx, "user123")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.True(t, got.UpdatedAt.After(firstUpdate), "updated_at was not refreshed")
}

func TestUpsertCart_EmptyItemsRoundTrip(t *testing.T) {
	repo, cleanup := setupCartRepo(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.UpsertCart(ctx, &domain.Cart{
		UserID: "user123",
		Items:  []domain.CartItem{},
	}))

	got, err := repo.GetCart(ctx, "user123")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got.Items)
}
