package httpapi

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
)

// The handlers depend on these views of the domain services.

type CatalogService interface {
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	CreateCategory(ctx context.Context, name string) (catalog.Category, error)
	RenameCategory(ctx context.Context, id, name string) (catalog.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListProducts(ctx context.Context, f catalog.ProductFilter) ([]catalog.Product, error)
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
	CreateProduct(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	UpdateProduct(ctx context.Context, id string, in catalog.ProductInput) (catalog.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type CartService interface {
	Get(ctx context.Context, userID string) (cart.Cart, error)
	AddItem(ctx context.Context, userID, productID, size string, quantity int) (cart.Cart, error)
	UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (cart.Cart, error)
	RemoveItem(ctx context.Context, userID, lineID string) (cart.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type OrderService interface {
	PlaceOrder(ctx context.Context, userID string, customer order.Customer) (order.Order, error)
	SetStatus(ctx context.Context, orderID, status string) (order.Order, error)
	Get(ctx context.Context, orderID string) (order.Order, error)
	ListByUser(ctx context.Context, userID string) ([]order.Order, error)
	ListAll(ctx context.Context) ([]order.Order, error)
}

type SettingsService interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
	Update(ctx context.Context, key, value string) error
	DeliveryFee(ctx context.Context) (decimal.Decimal, error)
	ShopName(ctx context.Context) (string, error)
}
