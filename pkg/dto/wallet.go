package dto

import "github.com/shopspring/decimal"

/**
  {
      "balance": "142.50"
  }
*/

type Balance struct {
	Balance decimal.Decimal `json:"balance"`
}

/**
  {
      "amount": "50.00",
      "card": "4561261212345467"
  }
*/

type Deposit struct {
	Amount decimal.Decimal `json:"amount"`
	Card   string          `json:"card"`
}

type Withdrawal struct {
	Amount decimal.Decimal `json:"amount"`
}

type Transaction struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Kind      string          `json:"kind"`
	CreatedAt string          `json:"created_at"`
}
