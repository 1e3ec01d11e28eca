package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/repository"
	"github.com/tebele-dev/tailor-made-couture/services"
	"go.uber.org/zap"
)

// --- Mock KV store ---

type failingStore struct {
	repository.KVStore
	setErr error
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.KVStore.Set(ctx, key, value, ttl)
}

// --- Helpers ---

func product(id, price string) *models.Product {
	return &models.Product{ID: id, Name: "Product " + id, Price: decimal.RequireFromString(price)}
}

func newTestCart(store repository.KVStore) (services.CartService, *services.NotificationHub) {
	hub := services.NewNotificationHub(zap.NewNop())
	return services.NewCartService(store, time.Hour, hub, zap.NewNop()), hub
}

// --- Tests ---

func TestCart_AddMergesSameProduct(t *testing.T) {
	ctx := context.Background()
	cart, _ := newTestCart(repository.NewMemoryStore())

	require.NoError(t, cart.Add(ctx, "s1", product("1", "100"), 1))
	require.NoError(t, cart.Add(ctx, "s1", product("1", "100"), 2))
	require.NoError(t, cart.Add(ctx, "s1", product("2", "50"), 1))

	items := cart.Items(ctx, "s1")
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 4, cart.Count(ctx, "s1"))
	assert.Equal(t, "350", cart.Total(ctx, "s1").String())
}

func TestCart_AddRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	cart, hub := newTestCart(repository.NewMemoryStore())

	err := cart.Add(ctx, "s1", product("1", "100"), 0)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.EqualError(t, err, "Invalid product or quantity")

	err = cart.Add(ctx, "s1", nil, 1)
	assert.Error(t, err)

	assert.Empty(t, cart.Items(ctx, "s1"))
	assert.Len(t, hub.For("s1").ByType(models.NotificationError), 2)
}

func TestCart_RemoveAndSetQuantity(t *testing.T) {
	ctx := context.Background()
	cart, hub := newTestCart(repository.NewMemoryStore())
	require.NoError(t, cart.Add(ctx, "s1", product("1", "10"), 1))
	require.NoError(t, cart.Add(ctx, "s1", product("2", "20"), 1))

	require.NoError(t, cart.SetQuantity(ctx, "s1", "2", 5))
	assert.Equal(t, 6, cart.Count(ctx, "s1"))

	require.NoError(t, cart.SetQuantity(ctx, "s1", "2", 0))
	assert.Len(t, cart.Items(ctx, "s1"), 1)

	err := cart.SetQuantity(ctx, "s1", "missing", 2)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.EqualError(t, err, "Product not found in cart")

	err = cart.SetQuantity(ctx, "s1", "1", -1)
	assert.EqualError(t, err, "Invalid product ID or quantity")

	err = cart.Remove(ctx, "s1", "")
	assert.EqualError(t, err, "Invalid product ID")

	require.NoError(t, cart.Remove(ctx, "s1", "1"))
	assert.Empty(t, cart.Items(ctx, "s1"))
	assert.Len(t, hub.For("s1").ByType(models.NotificationError), 3)
}

func TestCart_SetQuantityZeroOnMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	cart, hub := newTestCart(repository.NewMemoryStore())

	assert.NoError(t, cart.SetQuantity(ctx, "s1", "ghost", 0))
	assert.False(t, hub.For("s1").HasErrors())
}

func TestCart_PersistsAndHydrates(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	first, _ := newTestCart(store)
	require.NoError(t, first.Add(ctx, "s1", product("1", "99.99"), 2))

	second, _ := newTestCart(store)
	view := second.View(ctx, "s1")
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, "199.98", view.Total.String())
}

func TestCart_HydrationDropsMalformedItems(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	blob := `[{"product":{"id":"1","price":"10"},"quantity":2},{"quantity":3},{"product":{"id":"2"},"quantity":0},{"product":{"id":"3"},"quantity":"x"}]`
	require.NoError(t, store.Set(ctx, "tmc_cart:s1", []byte(blob), 0))

	cart, _ := newTestCart(store)
	items := cart.Items(ctx, "s1")
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].Product.ID)
}

func TestCart_CorruptBlobIsDiscarded(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "tmc_cart:s1", []byte(`{"not":"an array"}`), 0))

	cart, _ := newTestCart(store)
	assert.Empty(t, cart.Items(ctx, "s1"))

	data, err := store.Get(ctx, "tmc_cart:s1")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCart_PersistFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{KVStore: repository.NewMemoryStore(), setErr: errors.New("disk full")}
	cart, hub := newTestCart(store)

	require.NoError(t, cart.Add(ctx, "s1", product("1", "10"), 1))
	assert.Equal(t, 1, cart.Count(ctx, "s1"))
	assert.False(t, hub.For("s1").HasErrors())
}

func TestCart_InstancesSharingAStoreAgree(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	first, _ := newTestCart(store)
	second, _ := newTestCart(store)

	require.NoError(t, first.Add(ctx, "s1", product("1", "10"), 1))
	assert.Equal(t, 1, second.Count(ctx, "s1"))

	require.NoError(t, second.Add(ctx, "s1", product("2", "5"), 2))
	assert.Equal(t, 3, first.Count(ctx, "s1"))
	assert.Equal(t, "20", first.Total(ctx, "s1").String())

	first.Clear(ctx, "s1")
	assert.Zero(t, second.Count(ctx, "s1"))
}

func TestCart_UnsavedCartIsWrittenOnRecovery(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{KVStore: repository.NewMemoryStore(), setErr: errors.New("disk full")}
	cart, _ := newTestCart(store)

	require.NoError(t, cart.Add(ctx, "s1", product("1", "10"), 1))
	store.setErr = nil
	require.NoError(t, cart.Add(ctx, "s1", product("2", "10"), 1))

	other, _ := newTestCart(store)
	assert.Equal(t, 2, other.Count(ctx, "s1"))
}

func TestCart_Clear(t *testing.T) {
	ctx := context.Background()
	cart, _ := newTestCart(repository.NewMemoryStore())
	require.NoError(t, cart.Add(ctx, "s1", product("1", "10"), 1))
	require.NoError(t, cart.Add(ctx, "s2", product("1", "10"), 1))

	cart.Clear(ctx, "s1")
	assert.Zero(t, cart.Count(ctx, "s1"))
	assert.Equal(t, 1, cart.Count(ctx, "s2"))
}
