package service

import (
	"fmt"
	"time"

	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/mkarpenko/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

type returnRepository interface {
	CreateReturn(ret domain.Return) (*domain.Return, error)
	Return(id int64) (*domain.Return, error)
	Returns(userID int64) ([]domain.Return, error)
	ActiveReturnExists(orderID int64) (bool, error)
	UpdateReturnStatus(id int64, status domain.ReturnStatus) (*domain.Return, error)
}

type returnOrderRepository interface {
	Order(id int64) (*domain.Order, error)
	UpdateOrderStatus(id int64, status domain.OrderStatus, paid bool) (*domain.Order, error)
}

type returnWallet interface {
	Credit(userID int64, amount decimal.Decimal, kind domain.TransactionKind) (decimal.Decimal, error)
}

// ReturnService handles post-delivery refunds. The refund amount is
// snapshotted from the order at request time; by default it is the unit
// price, not price*quantity, matching the behavior this service replaces.
// refundPerUnit flips that until product owners settle the question.
type ReturnService struct {
	repo   returnRepository
	orders returnOrderRepository
	wallet returnWallet
	events orderEvents
	locks  *UserLocks

	refundPerUnit bool

	now func() time.Time
}

func NewReturnService(repo returnRepository, orders returnOrderRepository, wallet returnWallet, events orderEvents, locks *UserLocks, refundPerUnit bool) *ReturnService {
	return &ReturnService{
		repo:          repo,
		orders:        orders,
		wallet:        wallet,
		events:        events,
		locks:         locks,
		refundPerUnit: refundPerUnit,
		now:           time.Now,
	}
}

// Request creates a return in "requested" state. The order keeps its
// delivered status until the return is resolved. A request exactly at the
// window boundary is still accepted; only strictly later requests expire.
func (s *ReturnService) Request(orderID, userID int64, reason string) (*domain.Return, error) {
	order, err := s.orders.Order(orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	if order.Status != domain.OrderStatusDelivered {
		return nil, domain.ErrReturnNotEligible
	}

	if s.now().After(order.ReturnExpiryDate) {
		return nil, domain.ErrReturnWindowExpired
	}

	exists, err := s.repo.ActiveReturnExists(orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrReturnExists
	}

	refund := order.Price
	if s.refundPerUnit {
		refund = order.Total()
	}

	ret, err := s.repo.CreateReturn(domain.Return{
		OrderID:      orderID,
		Reason:       reason,
		Status:       domain.ReturnStatusRequested,
		RefundAmount: refund,
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("return requested",
		logger.Int64("order_id", orderID),
		logger.Int64("user_id", userID),
		logger.String("refund_amount", refund.String()),
	)

	return ret, nil
}

func (s *ReturnService) Returns(userID int64) ([]domain.Return, error) {
	return s.repo.Returns(userID)
}

// Resolve is terminal: a return is approved or rejected exactly once.
// Approval credits the refund snapshot back to the wallet and moves the
// parent order to returned.
func (s *ReturnService) Resolve(id int64, approve bool) (*domain.Return, error) {
	ret, err := s.repo.Return(id)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.Order(ret.OrderID)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(order.UserID)
	defer s.locks.Unlock(order.UserID)

	ret, err = s.repo.Return(id)
	if err != nil {
		return nil, err
	}

	if ret.Status != domain.ReturnStatusRequested {
		return nil, domain.ErrReturnResolved
	}

	if !approve {
		return s.repo.UpdateReturnStatus(id, domain.ReturnStatusRejected)
	}

	resolved, err := s.repo.UpdateReturnStatus(id, domain.ReturnStatusApproved)
	if err != nil {
		return nil, err
	}

	if _, err = s.wallet.Credit(order.UserID, ret.RefundAmount, domain.TxReturnRefund); err != nil {
		return nil, fmt.Errorf("error crediting refund for return %d: %w", id, err)
	}

	updated, err := s.orders.UpdateOrderStatus(order.ID, domain.OrderStatusReturned, order.Paid)
	if err != nil {
		return nil, fmt.Errorf("error marking order %d returned: %w", order.ID, err)
	}

	s.events.OrderEvent(*updated, "order_returned")

	logger.Log.Info("return approved",
		logger.Int64("return_id", id),
		logger.Int64("order_id", order.ID),
		logger.String("refund_amount", ret.RefundAmount.String()),
	)

	return resolved, nil
}
