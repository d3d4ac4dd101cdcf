package dto

/**
  {
      "event_id": "8b3f...",
      "event": "order_delivered",
      "order_id": 12,
      "user_id": 4,
      "status": "delivered",
      "amount": "39.98",
      "occurred_at": "2026-09-05T10:15:00Z"
  }
*/

type OrderEvent struct {
	EventID    string `json:"event_id"`
	Event      string `json:"event"`
	OrderID    int64  `json:"order_id"`
	UserID     int64  `json:"user_id"`
	Status     string `json:"status"`
	Amount     string `json:"amount"`
	OccurredAt string `json:"occurred_at"`
}
