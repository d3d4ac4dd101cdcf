package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type RequestReturn struct {
	OrderID int64  `json:"order_id"`
	Reason  string `json:"reason"`
}

func (r RequestReturn) IsValid() error {
	if r.OrderID <= 0 {
		return fmt.Errorf("order_id is required")
	}

	if strings.TrimSpace(r.Reason) == "" {
		return fmt.Errorf("reason is required")
	}

	return nil
}

type ResolveReturn struct {
	Approve bool `json:"approve"`
}

type Return struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"order_id"`
	Reason       string          `json:"reason"`
	Status       string          `json:"status"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	CreatedAt    string          `json:"created_at"`
}
