package dto

import "github.com/shopspring/decimal"

type Product struct {
	ID           int64           `json:"id"`
	BrandID      int64           `json:"brand_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	RegularPrice decimal.Decimal `json:"regular_price"`
	Stock        int             `json:"stock"`
	Category     string          `json:"category,omitempty"`
}

type Brand struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Shop struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}
