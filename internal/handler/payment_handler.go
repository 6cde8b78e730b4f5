package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"techhub-shop/internal/model"
	"techhub-shop/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentHandler handles payment-method HTTP requests.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// ListMethods handles GET /api/payment/methods requests.
func (h *PaymentHandler) ListMethods(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	methods, err := h.service.ListMethods(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, "Failed to retrieve payment methods", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, methods)
}

// AddMethod handles POST /api/payment/methods requests.
func (h *PaymentHandler) AddMethod(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CreatePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	method, err := h.service.AddMethod(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, "Failed to add payment method", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, method)
}

// UpdateMethod handles PUT /api/payment/methods/{id} requests.
func (h *PaymentHandler) UpdateMethod(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	methodID, ok := methodIDFromPath(w, r, h.logger)
	if !ok {
		return
	}

	var req model.UpdatePaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	method, err := h.service.UpdateMethod(r.Context(), methodID, userID, &req)
	if err != nil {
		writeServiceError(w, err, "Failed to update payment method", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, method)
}

// DeleteMethod handles DELETE /api/payment/methods/{id} requests.
func (h *PaymentHandler) DeleteMethod(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	methodID, ok := methodIDFromPath(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.DeleteMethod(r.Context(), methodID, userID); err != nil {
		writeServiceError(w, err, "Failed to delete payment method", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Payment method removed"})
}

// ProcessPayment handles POST /api/payment/process requests.
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", h.logger)
		return
	}

	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	resp, err := h.service.ProcessPayment(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, "Failed to process payment", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// methodIDFromPath extracts the payment method ID from
// /api/payment/methods/{id} paths.
func methodIDFromPath(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (uuid.UUID, bool) {
	idStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/payment/methods"), "/")

	if idStr == "" {
		writeError(w, http.StatusBadRequest, "Payment method ID is required", logger)
		return uuid.Nil, false
	}

	methodID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payment method ID format", logger)
		return uuid.Nil, false
	}

	return methodID, true
}
