package service

import (
	"context"

	"techhub-shop/internal/model"

	"github.com/google/uuid"
)

// CheckoutService owns the order-placement transaction and the shipping
// catalogue.
type CheckoutService interface {
	// PlaceOrder validates the request, reserves stock, prices and
	// persists the order, and clears the cart, all within one atomic
	// transaction.
	PlaceOrder(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	// ShippingMethods returns the available shipping options.
	ShippingMethods() []model.ShippingMethod
}

// OrderService defines operations on existing orders.
type OrderService interface {
	// ListByUser retrieves the user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// GetByID retrieves one of the user's orders. Returns nil when not found.
	GetByID(ctx context.Context, id, userID uuid.UUID) (*model.Order, error)

	// Cancel transitions one of the user's orders to cancelled.
	Cancel(ctx context.Context, id, userID uuid.UUID) (*model.Order, error)
}

// PaymentService manages saved payment methods and the simulated gateway.
type PaymentService interface {
	// ListMethods retrieves the user's payment methods with card numbers masked.
	ListMethods(ctx context.Context, userID uuid.UUID) ([]model.PaymentMethod, error)

	// AddMethod saves a new payment method; only the last four card digits are kept.
	AddMethod(ctx context.Context, userID uuid.UUID, req *model.CreatePaymentMethodRequest) (*model.PaymentMethod, error)

	// UpdateMethod updates details and/or default flag of a saved method.
	UpdateMethod(ctx context.Context, id, userID uuid.UUID, req *model.UpdatePaymentMethodRequest) (*model.PaymentMethod, error)

	// DeleteMethod removes a saved method; the last remaining method cannot be deleted.
	DeleteMethod(ctx context.Context, id, userID uuid.UUID) error

	// ProcessPayment runs the simulated gateway and marks the order paid on success.
	ProcessPayment(ctx context.Context, userID uuid.UUID, req *model.ProcessPaymentRequest) (*model.ProcessPaymentResponse, error)
}
