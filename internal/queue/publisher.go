// Package queue publishes domain events to RabbitMQ. Publishing is fire
// and forget from the caller's point of view: failures are logged and
// never fail the request that produced the event.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const orderCreatedQueue = "order.created"

// OrderCreatedEvent is emitted after an order transaction commits.
type OrderCreatedEvent struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Tickets   int       `json:"tickets"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher owns one AMQP connection and channel. A nil *Publisher is
// valid and drops all events.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *zap.Logger
}

// NewPublisher dials the broker and declares the durable order.created
// queue. An empty url returns a nil publisher (events disabled).
func NewPublisher(url string, log *zap.Logger) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		orderCreatedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", orderCreatedQueue, err)
	}

	return &Publisher{
		conn: conn,
		ch:   ch,
		log:  log.With(zap.String("component", "queue_publisher")),
	}, nil
}

// PublishOrderCreated sends the event with persistent delivery. Errors
// are logged and swallowed.
func (p *Publisher) PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) {
	if p == nil {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to marshal order event", zap.Error(err))
		return
	}

	err = p.ch.PublishWithContext(ctx,
		"",                // default exchange
		orderCreatedQueue, // routing key = queue name
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("Failed to publish order event",
			zap.Error(err),
			zap.String("order_id", event.OrderID),
		)
		return
	}

	p.log.Debug("Order event published", zap.String("order_id", event.OrderID))
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.ch.Close()
	p.conn.Close()
}
