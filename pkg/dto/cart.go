package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type AddCartItem struct {
	ProductID    int64      `json:"product_id"`
	ShopID       int64      `json:"shop_id"`
	Quantity     int        `json:"quantity"`
	Size         string     `json:"size,omitempty"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
}

func (a AddCartItem) IsValid() error {
	if a.ProductID <= 0 {
		return fmt.Errorf("product_id is required")
	}

	if a.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	return nil
}

// UpdateCartItem carries a partial update; nil fields stay untouched.
type UpdateCartItem struct {
	Quantity     *int       `json:"quantity,omitempty"`
	Size         *string    `json:"size,omitempty"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
}

type CartLine struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	ShopID       int64           `json:"shop_id"`
	Quantity     int             `json:"quantity"`
	Size         string          `json:"size,omitempty"`
	DeliveryDate string          `json:"delivery_date,omitempty"`
	Product      Product         `json:"product"`
	Shop         Shop            `json:"shop"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

/**
  {
      "items": [...],
      "total": "129.97"
  }
*/

type Cart struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}
