package service

import (
	"testing"

	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/mkarpenko/storefront/internal/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*memstore.MemStore, int64) {
	t.Helper()

	store := memstore.New()
	userID, err := store.CreateUser("Jane Doe", "jane@example.com", "janedoe", "not-a-real-hash")
	require.NoError(t, err)

	_, err = store.CreateShop(domain.Shop{Name: "Central Store", Location: "Main St 12"})
	require.NoError(t, err)

	return store, userID
}

func newTestProduct(t *testing.T, store *memstore.MemStore, name, price string) *domain.Product {
	t.Helper()

	product, err := store.CreateProduct(domain.Product{
		BrandID: 1,
		Name:    name,
		Price:   decimal.RequireFromString(price),
		Stock:   10,
	})
	require.NoError(t, err)

	return product
}

func topUp(t *testing.T, store *memstore.MemStore, userID int64, amount string) {
	t.Helper()

	_, err := store.Credit(userID, decimal.RequireFromString(amount), domain.TxTopUp)
	require.NoError(t, err)
}

func addLine(t *testing.T, store *memstore.MemStore, userID, productID int64, quantity int) *domain.CartItem {
	t.Helper()

	item, err := store.CreateCartItem(domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		ShopID:    1,
		Quantity:  quantity,
	})
	require.NoError(t, err)

	return item
}

func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
