package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status values.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment status values.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Order is the committed, priced record of a purchase. It is created
// once per checkout; only status, paymentStatus and trackingNumber are
// mutated afterwards.
type Order struct {
	ID              uuid.UUID             `json:"id" db:"id"`
	UserID          uuid.UUID             `json:"userId" db:"user_id"`
	Items           []OrderItem           `json:"items"`
	ShippingAddress Address               `json:"shippingAddress" db:"shipping_address"`
	BillingAddress  Address               `json:"billingAddress" db:"billing_address"`
	SameBilling     bool                  `json:"sameBillingAddress" db:"same_billing_address"`
	ShippingMethod  ShippingMethod        `json:"shippingMethod" db:"shipping_method"`
	PaymentMethod   PaymentMethodSnapshot `json:"paymentMethod"`
	Subtotal        decimal.Decimal       `json:"subtotal" db:"subtotal"`
	Tax             decimal.Decimal       `json:"tax" db:"tax"`
	ShippingCost    decimal.Decimal       `json:"shippingCost" db:"shipping_cost"`
	Total           decimal.Decimal       `json:"total" db:"total"`
	Status          string                `json:"status" db:"status"`
	PaymentStatus   string                `json:"paymentStatus" db:"payment_status"`
	TrackingNumber  string                `json:"trackingNumber,omitempty" db:"tracking_number"`
	OrderNotes      string                `json:"orderNotes,omitempty" db:"order_notes"`
	CreatedAt       time.Time             `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time             `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line of an order. Price is the unit price captured at
// order time, deliberately decoupled from later catalogue changes.
type OrderItem struct {
	ID          uuid.UUID       `json:"-" db:"id"`
	OrderID     uuid.UUID       `json:"-" db:"order_id"`
	ProductID   string          `json:"productId" db:"product_id"`
	ProductName string          `json:"productName" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Price       decimal.Decimal `json:"price" db:"price"`
}

// PaymentMethodSnapshot is the id + type pair embedded on an order. Full
// payment details are never copied onto orders.
type PaymentMethodSnapshot struct {
	ID   uuid.UUID `json:"id"`
	Type string    `json:"type"`
}

// CheckoutRequest is the request payload for placing an order.
type CheckoutRequest struct {
	ShippingAddress *Address        `json:"shippingAddress"`
	BillingAddress  *Address        `json:"billingAddress,omitempty"`
	SameBilling     bool            `json:"sameBillingAddress"`
	ShippingMethod  *ShippingMethod `json:"shippingMethod"`
	PaymentMethodID uuid.UUID       `json:"paymentMethodId"`
	OrderNotes      string          `json:"orderNotes,omitempty"`
}

// CheckoutResponse is the deliberately thin response for a placed order:
// line items and addresses are fetched separately via the orders API.
type CheckoutResponse struct {
	OrderID       uuid.UUID             `json:"orderId"`
	Total         decimal.Decimal       `json:"total"`
	PaymentMethod PaymentMethodSnapshot `json:"paymentMethod"`
}

// UpdateOrderStatusRequest is the payload for status transitions.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
