package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment method types.
const (
	PaymentTypeCreditCard = "credit_card"
	PaymentTypePayPal     = "paypal"
	PaymentTypeApplePay   = "apple_pay"
	PaymentTypeGooglePay  = "google_pay"
)

// PaymentMethod is a saved payment instrument owned by a user. Only the
// last four digits of a card number are ever stored.
type PaymentMethod struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	UserID    uuid.UUID      `json:"userId" db:"user_id"`
	Type      string         `json:"type" db:"type"`
	IsDefault bool           `json:"isDefault" db:"is_default"`
	Details   PaymentDetails `json:"details" db:"details"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`
}

// PaymentDetails holds per-type payment fields, stored as JSONB.
type PaymentDetails struct {
	CardNumber string `json:"cardNumber,omitempty"`
	CardHolder string `json:"cardHolder,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"`
	Email      string `json:"email,omitempty"`
}

// Masked returns a copy with the card number padded to the usual
// 16-character masked form, keeping only the last four digits visible.
func (p PaymentMethod) Masked() PaymentMethod {
	if p.Type == PaymentTypeCreditCard && p.Details.CardNumber != "" {
		last4 := p.Details.CardNumber
		if len(last4) > 4 {
			last4 = last4[len(last4)-4:]
		}
		masked := last4
		for len(masked) < 16 {
			masked = "*" + masked
		}
		p.Details.CardNumber = masked
	}
	return p
}

// CreatePaymentMethodRequest is the payload for saving a payment method.
type CreatePaymentMethodRequest struct {
	Type      string         `json:"type"`
	Details   PaymentDetails `json:"details"`
	IsDefault bool           `json:"isDefault"`
}

// UpdatePaymentMethodRequest is the payload for updating a saved method.
type UpdatePaymentMethodRequest struct {
	Details   *PaymentDetails `json:"details,omitempty"`
	IsDefault *bool           `json:"isDefault,omitempty"`
}

// ProcessPaymentRequest is the payload for the simulated gateway call.
type ProcessPaymentRequest struct {
	OrderID         uuid.UUID       `json:"orderId"`
	PaymentMethodID uuid.UUID       `json:"paymentMethodId"`
	Amount          decimal.Decimal `json:"amount"`
}

// ProcessPaymentResponse reports the outcome of a simulated payment.
type ProcessPaymentResponse struct {
	Success       bool            `json:"success"`
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	OrderID       uuid.UUID       `json:"orderId"`
}
