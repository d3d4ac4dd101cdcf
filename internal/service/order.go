package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/mkarpenko/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

type orderRepository interface {
	CreateOrders(orders []domain.Order) ([]domain.Order, error)
	Orders(userID int64) ([]domain.Order, error)
	Order(id int64) (*domain.Order, error)
	UpdateOrderStatus(id int64, status domain.OrderStatus, paid bool) (*domain.Order, error)
}

type checkoutCartRepository interface {
	CartLines(userID int64) ([]domain.CartLine, error)
	ClearCart(userID int64) error
}

type orderWallet interface {
	Credit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error)
	Debit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error)
}

type orderEvents interface {
	OrderEvent(order domain.Order, event string)
}

// OrderService drives the order state machine:
//
//	pending -> processing -> shipped -> delivered -> completed
//
// with pending -> cancelled and delivered -> returned as side exits.
// Funds are held in escrow from checkout until delivery; the paid flag is
// the escrow release.
type OrderService struct {
	repo   orderRepository
	cart   checkoutCartRepository
	wallet orderWallet
	events orderEvents
	locks  *UserLocks

	deliveryLead time.Duration
	returnWindow time.Duration

	now func() time.Time
}

func NewOrderService(repo orderRepository, cart checkoutCartRepository, wallet orderWallet, events orderEvents, locks *UserLocks, deliveryLeadDays, returnWindowDays int) *OrderService {
	return &OrderService{
		repo:         repo,
		cart:         cart,
		wallet:       wallet,
		events:       events,
		locks:        locks,
		deliveryLead: time.Duration(deliveryLeadDays) * 24 * time.Hour,
		returnWindow: time.Duration(returnWindowDays) * 24 * time.Hour,
		now:          time.Now,
	}
}

// Checkout turns the whole cart into orders. The wallet is debited exactly
// once for the batch total; each order captures the product price at this
// moment and never re-reads it. Any failure after the debit refunds the full
// total before the error is surfaced, so money never leaves the wallet
// without orders existing.
func (s *OrderService) Checkout(userID int64) ([]domain.Order, error) {
	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	lines, err := s.cart.CartLines(userID)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	if _, err = s.wallet.Debit(userID, total, domain.TxOrderPayment); err != nil {
		return nil, err
	}

	now := s.now()
	deliveryDate := now.Add(s.deliveryLead)
	returnExpiryDate := deliveryDate.Add(s.returnWindow)

	orders := make([]domain.Order, 0, len(lines))
	for _, line := range lines {
		order := domain.Order{
			UserID:           userID,
			ProductID:        line.ProductID,
			ShopID:           line.ShopID,
			Quantity:         line.Quantity,
			Price:            line.Product.Price,
			Size:             line.Size,
			DeliveryDate:     deliveryDate,
			ReturnExpiryDate: returnExpiryDate,
			Status:           domain.OrderStatusPending,
			Paid:             false,
		}

		if err = validateOrder(order); err != nil {
			s.refund(userID, total)
			return nil, errors.Join(domain.ErrInvalidOrderData, err)
		}

		orders = append(orders, order)
	}

	created, err := s.repo.CreateOrders(orders)
	if err != nil {
		s.refund(userID, total)
		return nil, fmt.Errorf("error creating orders: %w", err)
	}

	if err = s.cart.ClearCart(userID); err != nil {
		logger.Log.Error("error clearing cart after checkout", logger.Int64("user_id", userID), logger.Error(err))
	}

	for _, order := range created {
		s.events.OrderEvent(order, "order_created")
	}

	logger.Log.Info("checkout complete",
		logger.Int64("user_id", userID),
		logger.Int("orders", len(created)),
		logger.String("total", total.String()),
	)

	return created, nil
}

func (s *OrderService) Orders(userID int64) ([]domain.Order, error) {
	return s.repo.Orders(userID)
}

func (s *OrderService) Order(id, userID int64) (*domain.Order, error) {
	order, err := s.repo.Order(id)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	return order, nil
}

// Cancel refunds price*quantity and is allowed for pending orders only.
func (s *OrderService) Cancel(id, userID int64) (*domain.Order, error) {
	order, err := s.repo.Order(id)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	s.locks.Lock(order.UserID)
	defer s.locks.Unlock(order.UserID)

	// re-read under the user lock; a concurrent transition may have landed
	order, err = s.repo.Order(id)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusPending {
		return nil, domain.ErrNotCancellable
	}

	updated, err := s.repo.UpdateOrderStatus(id, domain.OrderStatusCancelled, order.Paid)
	if err != nil {
		return nil, err
	}

	if _, err = s.wallet.Credit(order.UserID, order.Total(), domain.TxOrderRefund); err != nil {
		return nil, fmt.Errorf("error refunding cancelled order %d: %w", id, err)
	}

	s.events.OrderEvent(*updated, "order_cancelled")

	return updated, nil
}

// SetStatus is the operator path. It accepts the six settable statuses;
// "returned" is rejected here because it is reachable only through return
// approval. Entering delivered releases the escrow by setting paid once,
// and is a no-op on the flag when the order is already paid.
func (s *OrderService) SetStatus(id int64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Settable() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.repo.Order(id)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(order.UserID)
	defer s.locks.Unlock(order.UserID)

	order, err = s.repo.Order(id)
	if err != nil {
		return nil, err
	}

	paid := order.Paid
	if status == domain.OrderStatusDelivered && !paid {
		paid = true
	}

	updated, err := s.repo.UpdateOrderStatus(id, status, paid)
	if err != nil {
		return nil, err
	}

	if status == domain.OrderStatusDelivered && !order.Paid {
		logger.Log.Info("escrow released", logger.Int64("order_id", id), logger.String("amount", order.Total().String()))
		s.events.OrderEvent(*updated, "order_delivered")
	}

	return updated, nil
}

func (s *OrderService) refund(userID int64, total decimal.Decimal) {
	if _, err := s.wallet.Credit(userID, total, domain.TxOrderRefund); err != nil {
		logger.Log.Error("error refunding failed checkout",
			logger.Int64("user_id", userID),
			logger.String("total", total.String()),
			logger.Error(err),
		)
	}
}

func validateOrder(order domain.Order) error {
	if order.ProductID <= 0 {
		return fmt.Errorf("order has no product")
	}

	if order.ShopID <= 0 {
		return fmt.Errorf("order has no shop")
	}

	if order.Quantity < 1 {
		return fmt.Errorf("order quantity must be at least 1")
	}

	if order.Price.IsNegative() {
		return fmt.Errorf("order price must not be negative")
	}

	return nil
}
