package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON           = "INVALID_JSON"
	ErrCodeInvalidAddress        = "INVALID_ADDRESS"
	ErrCodeMissingShippingMethod = "MISSING_SHIPPING_METHOD"
	ErrCodeMissingPaymentMethod  = "MISSING_PAYMENT_METHOD"
	ErrCodePaymentMethodNotFound = "PAYMENT_METHOD_NOT_FOUND"
	ErrCodeCartEmpty             = "CART_EMPTY"
	ErrCodeInsufficientStock     = "INSUFFICIENT_STOCK"
	ErrCodeProductNotFound       = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound         = "ORDER_NOT_FOUND"
	ErrCodePaymentDeclined       = "PAYMENT_DECLINED"
	ErrCodeInvalidPaymentDetails = "INVALID_PAYMENT_DETAILS"
	ErrCodeLastPaymentMethod     = "LAST_PAYMENT_METHOD"
	ErrCodeUnauthorised          = "UNAUTHORIZED"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside the client-visible message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrIncompleteShippingAddress = NewDomainError(ErrCodeInvalidAddress, "Complete shipping address is required")
	ErrIncompleteBillingAddress  = NewDomainError(ErrCodeInvalidAddress, "Complete billing address is required")
	ErrMissingShippingMethod     = NewDomainError(ErrCodeMissingShippingMethod, "Shipping method is required")
	ErrMissingPaymentMethod      = NewDomainError(ErrCodeMissingPaymentMethod, "Payment method is required")
	ErrPaymentMethodNotFound     = NewDomainError(ErrCodePaymentMethodNotFound, "Payment method not found")
	ErrCartEmpty                 = NewDomainError(ErrCodeCartEmpty, "Cart is empty")
	ErrProductNotFound           = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrOrderNotFound             = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrPaymentDeclined           = NewDomainError(ErrCodePaymentDeclined, "Payment processing failed")
	ErrInvalidCardDetails        = NewDomainError(ErrCodeInvalidPaymentDetails, "Card details are required")
	ErrMissingPayPalEmail        = NewDomainError(ErrCodeInvalidPaymentDetails, "Email is required for PayPal")
	ErrLastPaymentMethod         = NewDomainError(ErrCodeLastPaymentMethod, "Cannot delete the only payment method")
)

// InsufficientStockError reports a cart line whose quantity exceeds the
// product's current stock.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock for %s. Available: %d", e.ProductName, e.Available)
}
