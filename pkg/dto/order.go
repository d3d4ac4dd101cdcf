package dto

import "github.com/shopspring/decimal"

/**
  {
      "id": 12,
      "product_id": 3,
      "shop_id": 1,
      "quantity": 2,
      "price": "19.99",
      "status": "pending",
      "paid": false,
      "delivery_date": "2026-09-05T00:00:00Z",
      "return_expiry_date": "2026-10-05T00:00:00Z"
  }
*/

type Order struct {
	ID               int64           `json:"id"`
	ProductID        int64           `json:"product_id"`
	ShopID           int64           `json:"shop_id"`
	Quantity         int             `json:"quantity"`
	Price            decimal.Decimal `json:"price"`
	Size             string          `json:"size,omitempty"`
	Status           string          `json:"status"`
	Paid             bool            `json:"paid"`
	DeliveryDate     string          `json:"delivery_date"`
	ReturnExpiryDate string          `json:"return_expiry_date"`
	CreatedAt        string          `json:"created_at"`
}

type StatusUpdate struct {
	Status string `json:"status"`
}
