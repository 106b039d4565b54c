package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

// CartSource is the part of the cart store checkout needs.
type CartSource interface {
	Load(ctx context.Context, userID string) (cart.Cart, error)
	Update(ctx context.Context, userID string, fn func(cart.Cart) (cart.Cart, error)) (cart.Cart, error)
}

type FeeSource interface {
	DeliveryFee(ctx context.Context) (decimal.Decimal, error)
}

// EventPublisher announces order changes to other services.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, o Order) error
	PublishOrderStatusChanged(ctx context.Context, o Order, previous Status) error
}

type Service struct {
	repo      Repository
	carts     CartSource
	fees      FeeSource
	publisher EventPublisher
	policy    TransitionPolicy
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(repo Repository, carts CartSource, fees FeeSource, publisher EventPublisher, policy TransitionPolicy, logger zerolog.Logger) *Service {
	if policy == nil {
		policy = PermissivePolicy{}
	}
	return &Service{
		repo:      repo,
		carts:     carts,
		fees:      fees,
		publisher: publisher,
		policy:    policy,
		logger:    logger,
		now:       time.Now,
	}
}

// PlaceOrder turns the user's cart into a pending order. The order is
// stored before the cart is touched: when storing fails the cart stays as it
// was, and once it succeeds the ordered lines are taken out of the cart.
// Lines added while the order was being placed stay behind.
func (s *Service) PlaceOrder(ctx context.Context, userID string, customer Customer) (Order, error) {
	if strings.TrimSpace(userID) == "" {
		return Order{}, ErrUserRequired
	}
	if err := customer.Validate(); err != nil {
		return Order{}, err
	}

	c, err := s.carts.Load(ctx, userID)
	if err != nil {
		return Order{}, fmt.Errorf("load cart: %w", err)
	}
	if c.IsEmpty() {
		return Order{}, ErrEmptyCart
	}

	fee, err := s.fees.DeliveryFee(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("read delivery fee: %w", err)
	}

	o, err := Build(userID, c.Lines, customer, fee, s.now().UTC())
	if err != nil {
		return Order{}, err
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return Order{}, fmt.Errorf("save order: %w", err)
	}

	ordered := c.Lines
	if _, err := s.carts.Update(ctx, userID, func(cur cart.Cart) (cart.Cart, error) {
		return cur.Without(ordered), nil
	}); err != nil {
		s.logger.Warn().Err(err).Str("order_id", o.ID).Str("user_id", userID).Msg("order saved but cart not cleared")
	}

	if err := s.publisher.PublishOrderPlaced(ctx, o); err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID).Msg("publish order placed")
	}

	s.logger.Info().
		Str("order_id", o.ID).
		Str("user_id", userID).
		Int("items", len(o.Items)).
		Str("total", o.Total.StringFixed(2)).
		Msg("order placed")

	return o, nil
}

// SetStatus changes the status of an order if the transition policy allows
// it.
func (s *Service) SetStatus(ctx context.Context, orderID, status string) (Order, error) {
	to, err := ParseStatus(status)
	if err != nil {
		return Order{}, err
	}

	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return Order{}, err
	}

	from := o.Status
	if !s.policy.Allow(from, to) {
		return Order{}, fmt.Errorf("%w: %s to %s", ErrTransitionNotAllowed, from, to)
	}

	at := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, orderID, from, to, at); err != nil {
		return Order{}, err
	}
	o.Status = to
	o.UpdatedAt = at

	if err := s.publisher.PublishOrderStatusChanged(ctx, o, from); err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID).Msg("publish order status changed")
	}

	s.logger.Info().Str("order_id", o.ID).Str("from", string(from)).Str("to", string(to)).Msg("order status changed")
	return o, nil
}

func (s *Service) Get(ctx context.Context, orderID string) (Order, error) {
	return s.repo.Get(ctx, orderID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}
