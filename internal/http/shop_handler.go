package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/telegram"
)

type ShopHandler struct {
	settings SettingsService
	verifier *telegram.Verifier
	admin    *telegram.AdminGuard
	logger   zerolog.Logger
}

func NewShopHandler(settings SettingsService, verifier *telegram.Verifier, admin *telegram.AdminGuard, logger zerolog.Logger) *ShopHandler {
	return &ShopHandler{settings: settings, verifier: verifier, admin: admin, logger: logger}
}

func (h *ShopHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	name, err := h.settings.ShopName(ctx)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	fee, err := h.settings.DeliveryFee(ctx)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"shopName":    name,
		"deliveryFee": fee,
	})
}

type meResponse struct {
	telegram.User
	IsAdmin bool `json:"isAdmin"`
}

// Me returns the Telegram profile of the caller, used to prefill the
// pre-order form.
func (h *ShopHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.verifier.Verify(telegram.InitDataFromRequest(r))
	if err != nil {
		if !errors.Is(err, telegram.ErrMissingInitData) {
			h.logger.Warn().Err(err).Msg("rejected telegram init data")
		}
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, meResponse{User: user, IsAdmin: h.admin.IsAdmin(user)})
}
