package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/order"
)

type CartHandler struct {
	carts    CartService
	orders   OrderService
	settings SettingsService
	logger   zerolog.Logger
}

func NewCartHandler(carts CartService, orders OrderService, settings SettingsService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{carts: carts, orders: orders, settings: settings, logger: logger}
}

type cartResponse struct {
	UserID      string          `json:"userId"`
	Items       []cart.Line     `json:"items"`
	ItemCount   int             `json:"itemCount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
}

// respondCart writes the cart with totals computed against the fee in force.
func (h *CartHandler) respondCart(ctx context.Context, w http.ResponseWriter, r *http.Request, userID string, c cart.Cart) {
	fee, err := h.settings.DeliveryFee(ctx)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	items := c.Lines
	if items == nil {
		items = []cart.Line{}
	}
	subtotal := c.Subtotal()
	writeJSON(w, http.StatusOK, cartResponse{
		UserID:      userID,
		Items:       items,
		ItemCount:   c.ItemCount(),
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal.Add(fee),
	})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.carts.Get(ctx, userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	h.respondCart(ctx, w, r, userID, c)
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.carts.AddItem(ctx, userID, req.ProductID, req.Size, req.Quantity)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	h.respondCart(ctx, w, r, userID, c)
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.carts.UpdateQuantity(ctx, userID, chi.URLParam(r, "lineId"), req.Quantity)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	h.respondCart(ctx, w, r, userID, c)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.carts.RemoveItem(ctx, userID, chi.URLParam(r, "lineId"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	h.respondCart(ctx, w, r, userID, c)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.carts.Clear(ctx, chi.URLParam(r, "userId")); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Checkout submits the cart as a pre-order.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var customer order.Customer
	if err := decodeJSON(w, r, &customer); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.orders.PlaceOrder(ctx, chi.URLParam(r, "userId"), customer)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}
