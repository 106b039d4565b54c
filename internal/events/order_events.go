package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
)

const (
	OrderPlacedEventName    = "OrderPlaced"
	orderPlacedEventVersion = 1
	orderPlacedSchema       = "contracts/events/storefront/OrderPlaced.v1.payload.schema.json"

	OrderStatusChangedEventName    = "OrderStatusChanged"
	orderStatusChangedEventVersion = 1
	orderStatusChangedSchema       = "contracts/events/storefront/OrderStatusChanged.v1.payload.schema.json"
)

type OrderItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type OrderPlacedPayload struct {
	OrderID     string          `json:"orderId"`
	UserID      string          `json:"userId"`
	Items       []OrderItem     `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	Timestamp   time.Time       `json:"timestamp"`
}

type OrderStatusChangedPayload struct {
	OrderID        string    `json:"orderId"`
	UserID         string    `json:"userId"`
	PreviousStatus string    `json:"previousStatus"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// BuildOrderPlacedEnvelope wraps a newly placed order. The order id is the
// partition key.
func BuildOrderPlacedEnvelope(o order.Order, seq int64, correlationID string, now time.Time) OrderPlacedEnvelope {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	payload := OrderPlacedPayload{
		OrderID:     o.ID,
		UserID:      o.UserID,
		Items:       items,
		Subtotal:    o.Subtotal,
		DeliveryFee: o.DeliveryFee,
		Total:       o.Total,
		Status:      string(o.Status),
		Timestamp:   o.CreatedAt,
	}
	return newEnvelope(OrderPlacedEventName, orderPlacedEventVersion, orderPlacedSchema, payload, seq, correlationID, now)
}

func BuildOrderStatusChangedEnvelope(o order.Order, previous order.Status, seq int64, correlationID string, now time.Time) OrderStatusChangedEnvelope {
	payload := OrderStatusChangedPayload{
		OrderID:        o.ID,
		UserID:         o.UserID,
		PreviousStatus: string(previous),
		Status:         string(o.Status),
		Timestamp:      o.UpdatedAt,
	}
	return newEnvelope(OrderStatusChangedEventName, orderStatusChangedEventVersion, orderStatusChangedSchema, payload, seq, correlationID, now)
}
