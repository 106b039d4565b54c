package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/money"
)

// Known keys.
const (
	KeyDeliveryFee = "deliveryFee"
	KeyShopName    = "shopName"
)

var (
	ErrKeyRequired        = fmt.Errorf("%w: setting key is required", apperr.ErrInvalid)
	ErrInvalidDeliveryFee = fmt.Errorf("%w: deliveryFee must be a non-negative amount with at most 2 decimal places", apperr.ErrInvalid)
	ErrShopNameRequired   = fmt.Errorf("%w: shopName must not be empty", apperr.ErrInvalid)
)

type Service struct {
	repo            Repository
	defaultFee      decimal.Decimal
	defaultShopName string
}

func NewService(repo Repository, defaultFee decimal.Decimal, defaultShopName string) *Service {
	return &Service{repo: repo, defaultFee: defaultFee, defaultShopName: defaultShopName}
}

// Get returns the stored value for key, or def when the key was never set.
func (s *Service) Get(ctx context.Context, key, def string) (string, error) {
	v, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// Lookup returns the stored value and whether the key is set at all.
func (s *Service) Lookup(ctx context.Context, key string) (string, bool, error) {
	return s.repo.Get(ctx, key)
}

// Set stores value under key without looking at its shape.
func (s *Service) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrKeyRequired
	}
	return s.repo.Set(ctx, key, value)
}

// Update validates values for known keys before storing them. Unknown keys
// are stored as given.
func (s *Service) Update(ctx context.Context, key, value string) error {
	switch key {
	case KeyDeliveryFee:
		value = strings.TrimSpace(value)
		fee, err := decimal.NewFromString(value)
		if err != nil || fee.IsNegative() || !money.Fits(fee) {
			return ErrInvalidDeliveryFee
		}
	case KeyShopName:
		value = strings.TrimSpace(value)
		if value == "" {
			return ErrShopNameRequired
		}
	}
	return s.Set(ctx, key, value)
}

// DeliveryFee returns the fee currently in force.
func (s *Service) DeliveryFee(ctx context.Context) (decimal.Decimal, error) {
	v, ok, err := s.repo.Get(ctx, KeyDeliveryFee)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return s.defaultFee, nil
	}
	fee, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse stored delivery fee %q: %w", v, err)
	}
	if fee.IsNegative() {
		return decimal.Zero, fmt.Errorf("stored delivery fee %q is negative", v)
	}
	return fee, nil
}

func (s *Service) ShopName(ctx context.Context) (string, error) {
	return s.Get(ctx, KeyShopName, s.defaultShopName)
}
