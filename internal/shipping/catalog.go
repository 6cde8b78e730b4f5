// Package shipping serves the shipping-method catalogue. The built-in
// methods are the authoritative default; deployments can override them
// with a JSON file on local disk or S3.
package shipping

import (
	"context"
	"fmt"

	"techhub-shop/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultMethods returns the built-in shipping options.
func DefaultMethods() []model.ShippingMethod {
	return []model.ShippingMethod{
		{
			ID:                "standard",
			Name:              "Standard Shipping",
			Price:             decimal.NewFromFloat(5.99),
			EstimatedDelivery: "5-7 business days",
		},
		{
			ID:                "express",
			Name:              "Express Shipping",
			Price:             decimal.NewFromFloat(12.99),
			EstimatedDelivery: "2-3 business days",
		},
		{
			ID:                "overnight",
			Name:              "Overnight Shipping",
			Price:             decimal.NewFromFloat(24.99),
			EstimatedDelivery: "Next business day",
		},
	}
}

// Catalog holds the active shipping methods. It is loaded once at
// startup and read-only afterwards.
type Catalog struct {
	methods []model.ShippingMethod
	logger  zerolog.Logger
}

// NewCatalog builds a catalogue. When catalogFile is empty the built-in
// methods are used; otherwise the file is loaded through the given
// loader and validated.
func NewCatalog(ctx context.Context, catalogFile string, loader Loader, logger zerolog.Logger) (*Catalog, error) {
	logger = logger.With().Str("component", "shipping-catalog").Logger()

	if catalogFile == "" {
		logger.Info().Int("methods", len(DefaultMethods())).Msg("using built-in shipping methods")
		return &Catalog{methods: DefaultMethods(), logger: logger}, nil
	}

	methods, err := loader.Load(ctx, catalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipping catalogue: %w", err)
	}

	if err := validate(methods); err != nil {
		return nil, fmt.Errorf("invalid shipping catalogue %s: %w", catalogFile, err)
	}

	logger.Info().
		Str("file", catalogFile).
		Int("methods", len(methods)).
		Msg("shipping catalogue loaded")

	return &Catalog{methods: methods, logger: logger}, nil
}

// Methods returns the active shipping methods.
func (c *Catalog) Methods() []model.ShippingMethod {
	out := make([]model.ShippingMethod, len(c.methods))
	copy(out, c.methods)
	return out
}

// validate rejects catalogues with unusable entries.
func validate(methods []model.ShippingMethod) error {
	if len(methods) == 0 {
		return fmt.Errorf("catalogue contains no shipping methods")
	}

	for i, m := range methods {
		if m.ID == "" {
			return fmt.Errorf("method %d: id is required", i)
		}
		if m.Name == "" {
			return fmt.Errorf("method %d: name is required", i)
		}
		if !m.Price.IsPositive() {
			return fmt.Errorf("method %d: price must be positive", i)
		}
	}

	return nil
}
