package domain

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// Settable reports whether an operator may set the status directly.
// "returned" is reachable only through return approval.
func (s OrderStatus) Settable() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type ReturnStatus string

const (
	ReturnStatusRequested ReturnStatus = "requested"
	ReturnStatusApproved  ReturnStatus = "approved"
	ReturnStatusRejected  ReturnStatus = "rejected"
)

// TransactionKind tags every ledger mutation with its causing event.
type TransactionKind string

const (
	TxTopUp        TransactionKind = "topup"
	TxWithdrawal   TransactionKind = "withdrawal"
	TxOrderPayment TransactionKind = "order_payment"
	TxOrderRefund  TransactionKind = "order_refund"
	TxReturnRefund TransactionKind = "return_refund"
)
