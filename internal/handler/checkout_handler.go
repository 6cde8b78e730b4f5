package handler

import (
	"encoding/json"
	"net/http"

	"techhub-shop/internal/middleware"
	"techhub-shop/internal/model"
	"techhub-shop/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout HTTP requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// ShippingMethods handles GET /api/checkout/shipping-methods requests.
func (h *CheckoutHandler) ShippingMethods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.service.ShippingMethods())
}

// PlaceOrder handles POST /api/checkout/order requests.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
		return
	}

	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	resp, err := h.service.PlaceOrder(r.Context(), userID, &req)
	if err != nil {
		middleware.RecordOrderOperation("place_order", false)
		writeServiceError(w, err, "Failed to place order", h.logger)
		return
	}

	middleware.RecordOrderOperation("place_order", true)
	writeJSON(w, http.StatusCreated, resp)
}
