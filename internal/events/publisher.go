package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
)

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publishes order events to the topic exchange.
type RabbitPublisher struct {
	ch  amqpChannel
	seq Sequencer
	now func() time.Time
}

func NewRabbitPublisher(conn *amqp.Connection, seq Sequencer) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p, err := newRabbitPublisher(ch, seq)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return p, nil
}

func newRabbitPublisher(ch amqpChannel, seq Sequencer) (*RabbitPublisher, error) {
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", EventsExchange, err)
	}
	return &RabbitPublisher{ch: ch, seq: seq, now: time.Now}, nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitPublisher) PublishOrderPlaced(ctx context.Context, o order.Order) error {
	seq, err := p.seq.NextSequence(ctx, o.ID)
	if err != nil {
		return err
	}
	env := BuildOrderPlacedEnvelope(o, seq, middleware.GetReqID(ctx), p.now().UTC())
	return p.publishJSON(ctx, OrderPlacedRoutingKey, env.EventID, env)
}

func (p *RabbitPublisher) PublishOrderStatusChanged(ctx context.Context, o order.Order, previous order.Status) error {
	seq, err := p.seq.NextSequence(ctx, o.ID)
	if err != nil {
		return err
	}
	env := BuildOrderStatusChangedEnvelope(o, previous, seq, middleware.GetReqID(ctx), p.now().UTC())
	return p.publishJSON(ctx, OrderStatusChangedRoutingKey, env.EventID, env)
}

func (p *RabbitPublisher) publishJSON(ctx context.Context, routingKey, messageID string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", routingKey, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Timestamp:    p.now().UTC(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, order.Order) error { return nil }

func (NopPublisher) PublishOrderStatusChanged(context.Context, order.Order, order.Status) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
