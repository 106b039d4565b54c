package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/apperr"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

var (
	ErrUserRequired    = fmt.Errorf("%w: user id is required", apperr.ErrInvalid)
	ErrSizeUnavailable = fmt.Errorf("%w: size is not available for this product", apperr.ErrInvalid)
)

type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
}

type Service struct {
	store    Store
	products ProductLookup
}

func NewService(store Store, products ProductLookup) *Service {
	return &Service{store: store, products: products}
}

func (s *Service) Get(ctx context.Context, userID string) (Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return Cart{}, ErrUserRequired
	}
	return s.store.Load(ctx, userID)
}

// AddItem adds a product in one of its sizes. The product's current name,
// price and cover image are copied into the line.
func (s *Service) AddItem(ctx context.Context, userID, productID, size string, quantity int) (Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return Cart{}, ErrUserRequired
	}
	if strings.TrimSpace(productID) == "" {
		return Cart{}, ErrProductRequired
	}
	size = strings.TrimSpace(size)
	if err := ValidateLine(size, quantity); err != nil {
		return Cart{}, err
	}

	p, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return Cart{}, err
	}
	if !p.HasSize(size) {
		return Cart{}, ErrSizeUnavailable
	}

	snapshot := ProductSnapshot{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.FirstImage(),
	}
	return s.store.Update(ctx, userID, func(c Cart) (Cart, error) {
		return c.Add(snapshot, size, quantity)
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return Cart{}, ErrUserRequired
	}
	return s.store.Update(ctx, userID, func(c Cart) (Cart, error) {
		return c.UpdateQuantity(lineID, quantity)
	})
}

func (s *Service) RemoveItem(ctx context.Context, userID, lineID string) (Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return Cart{}, ErrUserRequired
	}
	return s.store.Update(ctx, userID, func(c Cart) (Cart, error) {
		return c.Remove(lineID), nil
	})
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrUserRequired
	}
	return s.store.Delete(ctx, userID)
}
