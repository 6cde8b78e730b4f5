package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"techhub-shop/internal/model"

	"github.com/rs/zerolog"
)

// Loader reads a shipping catalogue from some backing store.
type Loader interface {
	// Load reads and decodes a JSON catalogue identified by path.
	Load(ctx context.Context, path string) ([]model.ShippingMethod, error)
}

// fileLoader implements Loader for local JSON catalogue files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalogue loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "shipping-loader").Logger(),
	}
}

// Load reads a JSON file containing an array of shipping methods.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.ShippingMethod, error) {
	l.logger.Info().Str("file", filePath).Msg("loading shipping catalogue")

	data, err := os.ReadFile(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read catalogue file")
		return nil, fmt.Errorf("failed to read catalogue file %s: %w", filePath, err)
	}

	methods, err := decode(data)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to decode catalogue file")
		return nil, fmt.Errorf("failed to decode catalogue file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("methods", len(methods)).
		Msg("shipping catalogue file loaded")

	return methods, nil
}

// decode unmarshals a JSON catalogue document.
func decode(data []byte) ([]model.ShippingMethod, error) {
	var methods []model.ShippingMethod
	if err := json.Unmarshal(data, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}
