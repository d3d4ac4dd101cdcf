package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID            int64
	Name          string
	Email         string
	Username      string
	Password      string
	WalletBalance decimal.Decimal
	CreatedAt     time.Time
}

type Brand struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

type Product struct {
	ID           int64
	BrandID      int64
	Name         string
	Description  string
	Price        decimal.Decimal
	RegularPrice decimal.Decimal
	Stock        int
	Category     string
	CreatedAt    time.Time
}

type Shop struct {
	ID        int64
	Name      string
	Location  string
	CreatedAt time.Time
}

type CartItem struct {
	ID           int64
	UserID       int64
	ProductID    int64
	ShopID       int64
	Quantity     int
	Size         string
	DeliveryDate *time.Time
	CreatedAt    time.Time
}

// CartLine is a cart item joined with its product and shop at read time.
// The product price here is the live catalog price, not a snapshot.
type CartLine struct {
	CartItem
	Product Product
	Shop    Shop
}

type Order struct {
	ID               int64
	UserID           int64
	ProductID        int64
	ShopID           int64
	Quantity         int
	Price            decimal.Decimal
	Size             string
	DeliveryDate     time.Time
	ReturnExpiryDate time.Time
	Status           OrderStatus
	Paid             bool
	CreatedAt        time.Time
}

// Total is the amount debited for the order at checkout.
func (o Order) Total() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

type Return struct {
	ID           int64
	OrderID      int64
	Reason       string
	Status       ReturnStatus
	RefundAmount decimal.Decimal
	CreatedAt    time.Time
}

type WalletTransaction struct {
	ID        string
	UserID    int64
	Amount    decimal.Decimal
	Kind      TransactionKind
	CreatedAt time.Time
}
