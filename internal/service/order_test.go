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

func newOrderService(store *memstore.MemStore) *OrderService {
	return NewOrderService(store, store, store, &EventPublisher{}, NewUserLocks(), 7, 30)
}

func TestCheckoutDebitsOnceAndClearsCart(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)

	// three lines totaling exactly 50.00
	p1 := newTestProduct(t, store, "Trail Backpack 30L", "10.00")
	p2 := newTestProduct(t, store, "Insulated Bottle", "15.50")
	p3 := newTestProduct(t, store, "Wool Scarf", "14.50")
	addLine(t, store, userID, p1.ID, 2)
	addLine(t, store, userID, p2.ID, 1)
	addLine(t, store, userID, p3.ID, 1)
	topUp(t, store, userID, "50.00")

	created, err := orders.Checkout(userID)
	require.NoError(t, err)
	require.Len(t, created, 3)

	balance, err := store.Balance(userID)
	require.NoError(t, err)
	requireAmount(t, "0", balance)

	lines, err := store.CartLines(userID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	for _, order := range created {
		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.False(t, order.Paid)
		assert.Equal(t, order.DeliveryDate.Add(30*24*time.Hour), order.ReturnExpiryDate)
	}

	// the whole batch is one debit
	txs, err := store.Transactions(userID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, domain.TxOrderPayment, txs[1].Kind)
	requireAmount(t, "-50.00", txs[1].Amount)
}

func TestCheckoutInsufficientBalanceLeavesEverythingUntouched(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)

	product := newTestProduct(t, store, "Trail Backpack 30L", "50.00")
	addLine(t, store, userID, product.ID, 1)
	topUp(t, store, userID, "49.99")

	_, err := orders.Checkout(userID)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	balance, err := store.Balance(userID)
	require.NoError(t, err)
	requireAmount(t, "49.99", balance)

	lines, err := store.CartLines(userID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	placed, err := store.Orders(userID)
	require.NoError(t, err)
	assert.Empty(t, placed)
}

func TestCheckoutEmptyCart(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)

	_, err := orders.Checkout(userID)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckoutInvalidLineRefundsFullTotal(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)

	p1 := newTestProduct(t, store, "Trail Backpack 30L", "10.00")
	p2 := newTestProduct(t, store, "Insulated Bottle", "5.00")
	addLine(t, store, userID, p1.ID, 1)
	bad := addLine(t, store, userID, p2.ID, 1)
	topUp(t, store, userID, "15.00")

	// corrupt one line behind the service's validation
	bad.Quantity = 0
	_, err := store.UpdateCartItem(*bad)
	require.NoError(t, err)

	_, err = orders.Checkout(userID)
	require.ErrorIs(t, err, domain.ErrInvalidOrderData)

	balance, err := store.Balance(userID)
	require.NoError(t, err)
	requireAmount(t, "15.00", balance)

	lines, err := store.CartLines(userID)
	require.NoError(t, err)
	assert.Len(t, lines, 2, "cart must stay untouched on a failed checkout")

	placed, err := store.Orders(userID)
	require.NoError(t, err)
	assert.Empty(t, placed)
}

func TestOrderPriceIsSnapshottedAtCheckout(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)

	product := newTestProduct(t, store, "Linen Shirt", "10.00")
	addLine(t, store, userID, product.ID, 1)
	topUp(t, store, userID, "10.00")

	created, err := orders.Checkout(userID)
	require.NoError(t, err)
	require.Len(t, created, 1)

	product.Price = decimal.RequireFromString("99.00")
	_, err = store.UpdateProduct(*product)
	require.NoError(t, err)

	order, err := store.Order(created[0].ID)
	require.NoError(t, err)
	requireAmount(t, "10.00", order.Price)
}

func TestCancelRefundsAndIsTerminal(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)

	product := newTestProduct(t, store, "Ceramic Mug Set", "20.00")
	addLine(t, store, userID, product.ID, 1)
	topUp(t, store, userID, "35.00")

	created, err := orders.Checkout(userID)
	require.NoError(t, err)
	orderID := created[0].ID

	balance, err := store.Balance(userID)
	require.NoError(t, err)
	requireAmount(t, "15.00", balance)

	cancelled, err := orders.Cancel(orderID, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)

	balance, err = store.Balance(userID)
	require.NoError(t, err)
	requireAmount(t, "35.00", balance)

	_, err = orders.Cancel(orderID, userID)
	assert.ErrorIs(t, err, domain.ErrNotCancellable)
}

func TestCancelChecksOwnership(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)

	product := newTestProduct(t, store, "Cast Iron Pan", "20.00")
	addLine(t, store, userID, product.ID, 1)
	topUp(t, store, userID, "20.00")

	created, err := orders.Checkout(userID)
	require.NoError(t, err)

	otherID, err := store.CreateUser("John Roe", "john@example.com", "johnroe", "not-a-real-hash")
	require.NoError(t, err)

	_, err = orders.Cancel(created[0].ID, otherID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	_, err = orders.Cancel(9000, userID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestSetStatusReleasesEscrowIdempotently(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)

	product := newTestProduct(t, store, "Linen Shirt", "25.00")
	addLine(t, store, userID, product.ID, 1)
	topUp(t, store, userID, "25.00")

	created, err := orders.Checkout(userID)
	require.NoError(t, err)
	orderID := created[0].ID

	delivered, err := orders.SetStatus(orderID, domain.OrderStatusDelivered)
	require.NoError(t, err)
	assert.True(t, delivered.Paid)

	txsBefore, err := store.Transactions(userID)
	require.NoError(t, err)

	delivered, err = orders.SetStatus(orderID, domain.OrderStatusDelivered)
	require.NoError(t, err)
	assert.True(t, delivered.Paid, "paid must survive a repeated delivered update")

	txsAfter, err := store.Transactions(userID)
	require.NoError(t, err)
	assert.Len(t, txsAfter, len(txsBefore), "delivery must not move money")
}

func TestSetStatusRejectsUnknownAndReturned(t *testing.T) {
	store, userID := newTestStore(t)
	orders := newOrderService(store)

	product := newTestProduct(t, store, "Wool Scarf", "10.00")
	addLine(t, store, userID, product.ID, 1)
	topUp(t, store, userID, "10.00")

	created, err := orders.Checkout(userID)
	require.NoError(t, err)

	_, err = orders.SetStatus(created[0].ID, "lost-in-transit")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	// returned is reachable only via return approval
	_, err = orders.SetStatus(created[0].ID, domain.OrderStatusReturned)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	for _, status := range []domain.OrderStatus{
		domain.OrderStatusProcessing,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
		domain.OrderStatusCompleted,
	} {
		updated, err := orders.SetStatus(created[0].ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}
