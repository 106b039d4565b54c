package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// orderPayload is implemented by the payload of every order event.
type orderPayload interface {
	orderID() string
}

func (p OrderPlacedPayload) orderID() string        { return p.OrderID }
func (p OrderStatusChangedPayload) orderID() string { return p.OrderID }

// Envelope wraps an order event published on the storefront exchange. All
// events of one order share its id as partition key and carry increasing
// sequence numbers, so a consumer can drop duplicates and spot gaps.
type Envelope[P orderPayload] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	Sequence      int64     `json:"sequence"`
	OccurredAt    time.Time `json:"occurredAt"`
	Schema        string    `json:"schema"`
	Payload       P         `json:"payload"`
}

type (
	OrderPlacedEnvelope        = Envelope[OrderPlacedPayload]
	OrderStatusChangedEnvelope = Envelope[OrderStatusChangedPayload]
)

// newEnvelope stamps payload with a fresh event id. A request without a
// correlation id gets a new one.
func newEnvelope[P orderPayload](name string, version int, schema string, payload P, seq int64, correlationID string, now time.Time) Envelope[P] {
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	return Envelope[P]{
		EventName:     name,
		EventVersion:  version,
		EventID:       uuid.NewString(),
		CorrelationID: correlationID,
		Producer:      producerName,
		PartitionKey:  payload.orderID(),
		Sequence:      seq,
		OccurredAt:    now,
		Schema:        schema,
		Payload:       payload,
	}
}

// Validate checks the event identity and that the envelope is keyed by the
// order it carries.
func (e Envelope[P]) Validate(expectedName string, expectedVersion int) error {
	switch {
	case e.EventName != expectedName:
		return fmt.Errorf("unexpected eventName: %s", e.EventName)
	case e.EventVersion != expectedVersion:
		return fmt.Errorf("unexpected eventVersion: %d", e.EventVersion)
	case e.PartitionKey == "":
		return errors.New("missing partitionKey")
	case e.PartitionKey != e.Payload.orderID():
		return fmt.Errorf("partitionKey %s does not match order %s", e.PartitionKey, e.Payload.orderID())
	case e.Sequence < 1:
		return fmt.Errorf("sequence must be positive, got %d", e.Sequence)
	}
	return nil
}
