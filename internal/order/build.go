package order

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/money"
)

var (
	ErrEmptyCart          = fmt.Errorf("%w: cart is empty", apperr.ErrInvalid)
	ErrInvalidDeliveryFee = fmt.Errorf("%w: delivery fee must not be negative", apperr.ErrInvalid)
	ErrTotalTooLarge      = fmt.Errorf("%w: order total is too large", apperr.ErrInvalid)
	ErrUserRequired       = fmt.Errorf("%w: user id is required", apperr.ErrInvalid)
)

var newOrderID = uuid.NewString

// Normalize trims every field.
func (c Customer) Normalize() Customer {
	return Customer{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
		Notes:   strings.TrimSpace(c.Notes),
	}
}

// Validate checks the contact details of a pre-order. Notes are optional.
func (c Customer) Validate() error {
	c = c.Normalize()
	switch {
	case utf8.RuneCountInString(c.Name) < 2:
		return fmt.Errorf("%w: name must be at least 2 characters", apperr.ErrInvalid)
	case utf8.RuneCountInString(c.Phone) < 5:
		return fmt.Errorf("%w: phone must be at least 5 characters", apperr.ErrInvalid)
	case utf8.RuneCountInString(c.Address) < 10:
		return fmt.Errorf("%w: address must be at least 10 characters", apperr.ErrInvalid)
	}
	return nil
}

// Build turns cart lines into a pending order. Prices are copied from the
// line snapshots, so the order does not change when the catalog does.
func Build(userID string, lines []cart.Line, customer Customer, deliveryFee decimal.Decimal, now time.Time) (Order, error) {
	if strings.TrimSpace(userID) == "" {
		return Order{}, ErrUserRequired
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}
	if deliveryFee.IsNegative() || !money.Fits(deliveryFee) {
		return Order{}, ErrInvalidDeliveryFee
	}
	if err := customer.Validate(); err != nil {
		return Order{}, err
	}

	items := make([]Item, 0, len(lines))
	subtotal := decimal.Zero
	for _, l := range lines {
		it := Item{
			ProductID:   l.Product.ProductID,
			ProductName: l.Product.Name,
			Size:        l.Size,
			Quantity:    l.Quantity,
			UnitPrice:   l.Product.Price,
		}
		subtotal = subtotal.Add(it.Total())
		items = append(items, it)
	}
	total := subtotal.Add(deliveryFee)
	if !money.Fits(total) {
		return Order{}, ErrTotalTooLarge
	}

	return Order{
		ID:          newOrderID(),
		UserID:      userID,
		Items:       items,
		Customer:    customer.Normalize(),
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Total:       total,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
