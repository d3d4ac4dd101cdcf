package service

import (
	"testing"
	"time"

	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/mkarpenko/storefront/internal/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReturnService(store *memstore.MemStore) *ReturnService {
	return NewReturnService(store, store, store, &EventPublisher{}, NewUserLocks(), false)
}

// deliveredOrder runs a one-line checkout and marks the order delivered.
func deliveredOrder(t *testing.T, store *memstore.MemStore, orders *OrderService, userID int64, price string, quantity int) *domain.Order {
	t.Helper()

	product := newTestProduct(t, store, "Leather Wallet", price)
	addLine(t, store, userID, product.ID, quantity)

	unit := decimal.RequireFromString(price)
	topUp(t, store, userID, unit.Mul(decimal.NewFromInt(int64(quantity))).String())

	created, err := orders.Checkout(userID)
	require.NoError(t, err)
	require.Len(t, created, 1)

	order, err := orders.SetStatus(created[0].ID, domain.OrderStatusDelivered)
	require.NoError(t, err)

	return order
}

func TestReturnRequiresDeliveredOrder(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)
	returns := newReturnService(store)

	product := newTestProduct(t, store, "Leather Wallet", "30.00")
	addLine(t, store, userID, product.ID, 1)
	topUp(t, store, userID, "30.00")

	created, err := orders.Checkout(userID)
	require.NoError(t, err)
	orderID := created[0].ID

	for _, status := range []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusProcessing,
		domain.OrderStatusShipped,
	} {
		if status != domain.OrderStatusPending {
			_, err = orders.SetStatus(orderID, status)
			require.NoError(t, err)
		}

		_, err = returns.Request(orderID, userID, "does not fit")
		assert.ErrorIs(t, err, domain.ErrReturnNotEligible, "status %s", status)
	}

	_, err = orders.SetStatus(orderID, domain.OrderStatusDelivered)
	require.NoError(t, err)

	ret, err := returns.Request(orderID, userID, "does not fit")
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusRequested, ret.Status)

	// the order stays delivered until the return is resolved
	order, err := store.Order(orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, order.Status)
}

func TestReturnWindowBoundary(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)
	returns := newReturnService(store)

	order := deliveredOrder(t, store, orders, userID, "30.00", 1)

	returns.now = func() time.Time { return order.ReturnExpiryDate.Add(time.Second) }
	_, err := returns.Request(order.ID, userID, "too late")
	assert.ErrorIs(t, err, domain.ErrReturnWindowExpired)

	// exactly at expiry is still inside the window
	returns.now = func() time.Time { return order.ReturnExpiryDate }
	ret, err := returns.Request(order.ID, userID, "just in time")
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusRequested, ret.Status)
}

func TestReturnChecksOwnership(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)
	returns := newReturnService(store)

	order := deliveredOrder(t, store, orders, userID, "30.00", 1)

	otherID, err := store.CreateUser("John Roe", "john@example.com", "johnroe", "not-a-real-hash")
	require.NoError(t, err)

	_, err = returns.Request(order.ID, otherID, "not mine")
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	_, err = returns.Request(9000, userID, "ghost")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestReturnOneActivePerOrder(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)
	returns := newReturnService(store)

	order := deliveredOrder(t, store, orders, userID, "30.00", 1)

	first, err := returns.Request(order.ID, userID, "wrong color")
	require.NoError(t, err)

	_, err = returns.Request(order.ID, userID, "wrong color again")
	assert.ErrorIs(t, err, domain.ErrReturnExists)

	// a rejected return frees the order for a fresh request
	_, err = returns.Resolve(first.ID, false)
	require.NoError(t, err)

	_, err = returns.Request(order.ID, userID, "still wrong color")
	assert.NoError(t, err)
}

func TestReturnApprovalCreditsSnapshotOnce(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)
	returns := newReturnService(store)

	// quantity 3 at 10.00; the default refund is the unit price
	order := deliveredOrder(t, store, orders, userID, "10.00", 3)

	ret, err := returns.Request(order.ID, userID, "damaged")
	require.NoError(t, err)
	requireAmount(t, "10.00", ret.RefundAmount)

	resolved, err := returns.Resolve(ret.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusApproved, resolved.Status)

	balance, err := store.Balance(userID)
	require.NoError(t, err)
	requireAmount(t, "10.00", balance)

	updated, err := store.Order(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusReturned, updated.Status)

	// resolution is terminal either way
	_, err = returns.Resolve(ret.ID, true)
	assert.ErrorIs(t, err, domain.ErrReturnResolved)
	_, err = returns.Resolve(ret.ID, false)
	assert.ErrorIs(t, err, domain.ErrReturnResolved)

	balance, err = store.Balance(userID)
	require.NoError(t, err)
	requireAmount(t, "10.00", balance)
}

func TestReturnRefundPerUnitFlag(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)
	returns := newReturnService(store)
	returns.refundPerUnit = true

	order := deliveredOrder(t, store, orders, userID, "10.00", 3)

	ret, err := returns.Request(order.ID, userID, "damaged")
	require.NoError(t, err)
	requireAmount(t, "30.00", ret.RefundAmount)
}

func TestReturnRejectionMovesNoMoney(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)
	returns := newReturnService(store)

	order := deliveredOrder(t, store, orders, userID, "30.00", 1)

	ret, err := returns.Request(order.ID, userID, "changed my mind")
	require.NoError(t, err)

	rejected, err := returns.Resolve(ret.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnStatusRejected, rejected.Status)

	balance, err := store.Balance(userID)
	require.NoError(t, err)
	requireAmount(t, "0", balance)

	updated, err := store.Order(order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, updated.Status)
}
