package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkarpenko/storefront/internal/domain"
	"github.com/mkarpenko/storefront/pkg/dto"
	pkgkafka "github.com/mkarpenko/storefront/pkg/kafka"
	"github.com/mkarpenko/storefront/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// EventPublisher emits order lifecycle events to a broker. With no brokers
// configured it stays disabled and every publish is a no-op. Publishing is
// best effort: failures are logged and never surfaced to callers.
type EventPublisher struct {
	writer *kafka.Writer
}

func NewEventPublisher(client *pkgkafka.Client, topic string) *EventPublisher {
	if !client.Enabled() {
		return &EventPublisher{}
	}

	return &EventPublisher{
		writer: client.NewWriter(topic),
	}
}

func (p *EventPublisher) OrderEvent(order domain.Order, event string) {
	if p.writer == nil {
		return
	}

	amount := order.Price.Mul(decimal.NewFromInt(int64(order.Quantity)))
	payload := dto.OrderEvent{
		EventID:    uuid.NewString(),
		Event:      event,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		Amount:     amount.String(),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	key := payload.EventID
	if err := pkgkafka.PublishJSON(ctx, p.writer, key, payload); err != nil {
		logger.Log.Error("error publishing order event",
			logger.Int64("order_id", order.ID),
			logger.String("event", event),
			logger.Error(err),
		)
	}
}

func (p *EventPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
