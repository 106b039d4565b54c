package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/images"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/telegram"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/telegram/telegramtest"
)

type fakeCatalog struct {
	listCategoriesFunc func(ctx context.Context) ([]catalog.Category, error)
	createCategoryFunc func(ctx context.Context, name string) (catalog.Category, error)
	renameCategoryFunc func(ctx context.Context, id, name string) (catalog.Category, error)
	deleteCategoryFunc func(ctx context.Context, id string) error
	listProductsFunc   func(ctx context.Context, f catalog.ProductFilter) ([]catalog.Product, error)
	getProductFunc     func(ctx context.Context, id string) (catalog.Product, error)
	createProductFunc  func(ctx context.Context, in catalog.ProductInput) (catalog.Product, error)
	updateProductFunc  func(ctx context.Context, id string, in catalog.ProductInput) (catalog.Product, error)
	deleteProductFunc  func(ctx context.Context, id string) error
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	if f.listCategoriesFunc != nil {
		return f.listCategoriesFunc(ctx)
	}
	return []catalog.Category{}, nil
}

func (f *fakeCatalog) CreateCategory(ctx context.Context, name string) (catalog.Category, error) {
	if f.createCategoryFunc != nil {
		return f.createCategoryFunc(ctx, name)
	}
	return catalog.Category{}, nil
}

func (f *fakeCatalog) RenameCategory(ctx context.Context, id, name string) (catalog.Category, error) {
	if f.renameCategoryFunc != nil {
		return f.renameCategoryFunc(ctx, id, name)
	}
	return catalog.Category{}, nil
}

func (f *fakeCatalog) DeleteCategory(ctx context.Context, id string) error {
	if f.deleteCategoryFunc != nil {
		return f.deleteCategoryFunc(ctx, id)
	}
	return nil
}

func (f *fakeCatalog) ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	if f.listProductsFunc != nil {
		return f.listProductsFunc(ctx, filter)
	}
	return []catalog.Product{}, nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	if f.getProductFunc != nil {
		return f.getProductFunc(ctx, id)
	}
	return catalog.Product{}, nil
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	if f.createProductFunc != nil {
		return f.createProductFunc(ctx, in)
	}
	return catalog.Product{}, nil
}

func (f *fakeCatalog) UpdateProduct(ctx context.Context, id string, in catalog.ProductInput) (catalog.Product, error) {
	if f.updateProductFunc != nil {
		return f.updateProductFunc(ctx, id, in)
	}
	return catalog.Product{}, nil
}

func (f *fakeCatalog) DeleteProduct(ctx context.Context, id string) error {
	if f.deleteProductFunc != nil {
		return f.deleteProductFunc(ctx, id)
	}
	return nil
}

type fakeCarts struct {
	getFunc            func(ctx context.Context, userID string) (cart.Cart, error)
	addItemFunc        func(ctx context.Context, userID, productID, size string, quantity int) (cart.Cart, error)
	updateQuantityFunc func(ctx context.Context, userID, lineID string, quantity int) (cart.Cart, error)
	removeItemFunc     func(ctx context.Context, userID, lineID string) (cart.Cart, error)
	clearFunc          func(ctx context.Context, userID string) error
}

func (f *fakeCarts) Get(ctx context.Context, userID string) (cart.Cart, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, userID)
	}
	return cart.Cart{}, nil
}

func (f *fakeCarts) AddItem(ctx context.Context, userID, productID, size string, quantity int) (cart.Cart, error) {
	if f.addItemFunc != nil {
		return f.addItemFunc(ctx, userID, productID, size, quantity)
	}
	return cart.Cart{}, nil
}

func (f *fakeCarts) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (cart.Cart, error) {
	if f.updateQuantityFunc != nil {
		return f.updateQuantityFunc(ctx, userID, lineID, quantity)
	}
	return cart.Cart{}, nil
}

func (f *fakeCarts) RemoveItem(ctx context.Context, userID, lineID string) (cart.Cart, error) {
	if f.removeItemFunc != nil {
		return f.removeItemFunc(ctx, userID, lineID)
	}
	return cart.Cart{}, nil
}

func (f *fakeCarts) Clear(ctx context.Context, userID string) error {
	if f.clearFunc != nil {
		return f.clearFunc(ctx, userID)
	}
	return nil
}

type fakeOrders struct {
	placeOrderFunc func(ctx context.Context, userID string, customer order.Customer) (order.Order, error)
	setStatusFunc  func(ctx context.Context, orderID, status string) (order.Order, error)
	getFunc        func(ctx context.Context, orderID string) (order.Order, error)
	listByUserFunc func(ctx context.Context, userID string) ([]order.Order, error)
	listAllFunc    func(ctx context.Context) ([]order.Order, error)
}

func (f *fakeOrders) PlaceOrder(ctx context.Context, userID string, customer order.Customer) (order.Order, error) {
	if f.placeOrderFunc != nil {
		return f.placeOrderFunc(ctx, userID, customer)
	}
	return order.Order{}, nil
}

func (f *fakeOrders) SetStatus(ctx context.Context, orderID, status string) (order.Order, error) {
	if f.setStatusFunc != nil {
		return f.setStatusFunc(ctx, orderID, status)
	}
	return order.Order{}, nil
}

func (f *fakeOrders) Get(ctx context.Context, orderID string) (order.Order, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, orderID)
	}
	return order.Order{}, nil
}

func (f *fakeOrders) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	if f.listByUserFunc != nil {
		return f.listByUserFunc(ctx, userID)
	}
	return []order.Order{}, nil
}

func (f *fakeOrders) ListAll(ctx context.Context) ([]order.Order, error) {
	if f.listAllFunc != nil {
		return f.listAllFunc(ctx)
	}
	return []order.Order{}, nil
}

// fakeSettings keeps values in a map and applies the same defaults as the
// real service.
type fakeSettings struct {
	values    map[string]string
	updateErr error
	feeErr    error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: map[string]string{}}
}

func (f *fakeSettings) Lookup(_ context.Context, key string) (string, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeSettings) Update(_ context.Context, key, value string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.values[key] = value
	return nil
}

func (f *fakeSettings) DeliveryFee(context.Context) (decimal.Decimal, error) {
	if f.feeErr != nil {
		return decimal.Zero, f.feeErr
	}
	if v, ok := f.values["deliveryFee"]; ok {
		return decimal.RequireFromString(v), nil
	}
	return decimal.RequireFromString("5"), nil
}

func (f *fakeSettings) ShopName(context.Context) (string, error) {
	if v, ok := f.values["shopName"]; ok {
		return v, nil
	}
	return "ThreadLine", nil
}

type fakeUploader struct {
	uploadFunc func(ctx context.Context, filename string, r io.Reader) (string, error)
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if f.uploadFunc != nil {
		return f.uploadFunc(ctx, filename, r)
	}
	return "", images.ErrUploadDisabled
}

type testDeps struct {
	catalog  *fakeCatalog
	carts    *fakeCarts
	orders   *fakeOrders
	settings *fakeSettings
	uploader *fakeUploader
}

func newTestDeps() *testDeps {
	return &testDeps{
		catalog:  &fakeCatalog{},
		carts:    &fakeCarts{},
		orders:   &fakeOrders{},
		settings: newFakeSettings(),
		uploader: &fakeUploader{},
	}
}

// router builds the full route tree. adminOpen turns the admin check off.
func (d *testDeps) router(adminOpen bool) http.Handler {
	verifier := telegram.NewVerifier(telegramtest.BotToken, time.Hour)
	return NewRouter(Deps{
		Catalog:  d.catalog,
		Carts:    d.carts,
		Orders:   d.orders,
		Settings: d.settings,
		Images:   d.uploader,
		Verifier: verifier,
		Admin:    telegram.NewAdminGuard(verifier, []string{"owner"}, adminOpen, zerolog.Nop()),
		Logger:   zerolog.Nop(),
	})
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequestAs(t, h, method, path, body, "")
}

// doRequestAs sends the request with initData in the Telegram init data
// header; an empty initData sends none.
func doRequestAs(t *testing.T, h http.Handler, method, path, body, initData string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if initData != "" {
		req.Header.Set(telegram.InitDataHeader, initData)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
