package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item in the catalogue. Stock is the only field
// this service mutates, and only inside the checkout transaction.
type Product struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Stock     int             `json:"stock" db:"stock"`
	Category  string          `json:"category" db:"category"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
