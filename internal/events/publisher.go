// Package events publishes order lifecycle events to RabbitMQ. Publishing
// happens after the checkout transaction commits and is best-effort: a
// broker outage never fails or rolls back a committed order.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"techhub-shop/internal/model"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Routing keys for order events.
const (
	RoutingKeyOrderCreated   = "order.created"
	RoutingKeyOrderCancelled = "order.cancelled"
)

// OrderEvent is the payload published for order lifecycle changes.
type OrderEvent struct {
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	Total      string    `json:"total"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewOrderEvent builds the event payload for an order.
func NewOrderEvent(order *model.Order) OrderEvent {
	return OrderEvent{
		OrderID:    order.ID.String(),
		UserID:     order.UserID.String(),
		Total:      order.Total.StringFixed(2),
		Status:     order.Status,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher emits order events.
type Publisher interface {
	// PublishOrder publishes an order event with the given routing key.
	PublishOrder(ctx context.Context, routingKey string, order *model.Order) error

	// Close releases the underlying connection.
	Close() error
}

// rabbitPublisher publishes order events to a RabbitMQ direct exchange.
type rabbitPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   zerolog.Logger
}

// NewRabbitPublisher connects to RabbitMQ and declares the order exchange.
func NewRabbitPublisher(url, exchange string, logger zerolog.Logger) (Publisher, error) {
	logger = logger.With().Str("component", "order-events").Logger()

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	logger.Info().Str("exchange", exchange).Msg("order event publisher connected")

	return &rabbitPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// PublishOrder publishes an order event with the given routing key.
func (p *rabbitPublisher) PublishOrder(ctx context.Context, routingKey string, order *model.Order) error {
	body, err := json.Marshal(NewOrderEvent(order))
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("routing_key", routingKey).
			Str("order_id", order.ID.String()).
			Msg("failed to publish order event")
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	p.logger.Debug().
		Str("routing_key", routingKey).
		Str("order_id", order.ID.String()).
		Msg("order event published")

	return nil
}

// Close releases the channel and connection.
func (p *rabbitPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// nopPublisher discards events; used when event publishing is disabled.
type nopPublisher struct{}

// NewNopPublisher returns a publisher that discards all events.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishOrder(context.Context, string, *model.Order) error { return nil }
func (nopPublisher) Close() error                                             { return nil }
