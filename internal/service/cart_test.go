package service

import (
	"testing"

	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddRejectsUnknownProduct(t *testing.T) {
	store, userID := newTestStore(t)
	cart := NewCartService(store, store)

	_, err := cart.Add(userID, 9000, 1, 1, "", nil)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCartAddDefaultsShop(t *testing.T) {
	store, userID := newTestStore(t)
	cart := NewCartService(store, store)

	product := newTestProduct(t, store, "Wool Scarf", "14.50")

	item, err := cart.Add(userID, product.ID, 0, 2, "M", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ShopID)
	assert.Equal(t, 2, item.Quantity)
}

func TestCartTotalTracksLivePrices(t *testing.T) {
	store, userID := newTestStore(t)
	cart := NewCartService(store, store)

	product := newTestProduct(t, store, "Linen Shirt", "10.00")
	_, err := cart.Add(userID, product.ID, 1, 2, "", nil)
	require.NoError(t, err)

	_, total, err := cart.Lines(userID)
	require.NoError(t, err)
	requireAmount(t, "20.00", total)

	product.Price = decimal.RequireFromString("12.50")
	_, err = store.UpdateProduct(*product)
	require.NoError(t, err)

	_, total, err = cart.Lines(userID)
	require.NoError(t, err)
	requireAmount(t, "25.00", total)
}

func TestCartUpdateValidatesQuantity(t *testing.T) {
	store, userID := newTestStore(t)
	cart := NewCartService(store, store)

	product := newTestProduct(t, store, "Linen Shirt", "10.00")
	item, err := cart.Add(userID, product.ID, 1, 1, "", nil)
	require.NoError(t, err)

	zero := 0
	_, err = cart.Update(item.ID, userID, &zero, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidOrderData)

	three := 3
	size := "L"
	updated, err := cart.Update(item.ID, userID, &three, &size, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, "L", updated.Size)
}

func TestCartForeignItemsLookMissing(t *testing.T) {
	store, userID := newTestStore(t)
	cart := NewCartService(store, store)

	product := newTestProduct(t, store, "Linen Shirt", "10.00")
	item, err := cart.Add(userID, product.ID, 1, 1, "", nil)
	require.NoError(t, err)

	otherID, err := store.CreateUser("John Roe", "john@example.com", "johnroe", "not-a-real-hash")
	require.NoError(t, err)

	two := 2
	_, err = cart.Update(item.ID, otherID, &two, nil, nil)
	assert.ErrorIs(t, err, domain.ErrCartItemNotFound)

	err = cart.Remove(item.ID, otherID)
	assert.ErrorIs(t, err, domain.ErrCartItemNotFound)

	// still there for the owner
	lines, _, err := cart.Lines(userID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestCartRemoveAndClear(t *testing.T) {
	store, userID := newTestStore(t)
	cart := NewCartService(store, store)

	p1 := newTestProduct(t, store, "Linen Shirt", "10.00")
	p2 := newTestProduct(t, store, "Wool Scarf", "14.50")

	item, err := cart.Add(userID, p1.ID, 1, 1, "", nil)
	require.NoError(t, err)
	_, err = cart.Add(userID, p2.ID, 1, 1, "", nil)
	require.NoError(t, err)

	require.NoError(t, cart.Remove(item.ID, userID))

	lines, _, err := cart.Lines(userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	require.NoError(t, cart.Clear(userID))

	lines, total, err := cart.Lines(userID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	requireAmount(t, "0", total)
}
