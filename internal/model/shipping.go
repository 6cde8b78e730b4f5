package model

import "github.com/shopspring/decimal"

// ShippingMethod describes one shipping option. On an order it is stored
// as a snapshot, never a reference, so catalogue changes do not rewrite
// history.
type ShippingMethod struct {
	ID                string          `json:"id,omitempty"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	EstimatedDelivery string          `json:"estimatedDelivery,omitempty"`
}
