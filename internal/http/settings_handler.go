package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/settings"
)

type SettingsHandler struct {
	settings SettingsService
	logger   zerolog.Logger
}

func NewSettingsHandler(s SettingsService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: s, logger: logger}
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// GetSetting returns the value as it was stored. Known keys that were never
// set fall back to their defaults; other keys must have been set.
func (h *SettingsHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	value, ok, err := h.settings.Lookup(ctx, key)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if !ok {
		switch key {
		case settings.KeyDeliveryFee:
			fee, err := h.settings.DeliveryFee(ctx)
			if err != nil {
				respondError(w, r, h.logger, err)
				return
			}
			value = fee.String()
		case settings.KeyShopName:
			name, err := h.settings.ShopName(ctx)
			if err != nil {
				respondError(w, r, h.logger, err)
				return
			}
			value = name
		default:
			writeError(w, http.StatusNotFound, "setting not found")
			return
		}
	}

	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: value})
}

type putSettingRequest struct {
	Value string `json:"value"`
}

func (h *SettingsHandler) PutSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req putSettingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.settings.Update(ctx, key, req.Value); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	v, _, err := h.settings.Lookup(ctx, key)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, settingResponse{Key: key, Value: v})
}
