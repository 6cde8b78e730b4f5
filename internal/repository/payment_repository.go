package repository

import (
	"context"
	"fmt"

	"techhub-shop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// paymentMethodRepository implements PaymentMethodRepository using PostgreSQL.
type paymentMethodRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentMethodRepository creates a new PostgreSQL-backed payment method repository.
func NewPaymentMethodRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentMethodRepository {
	return &paymentMethodRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment_method").Logger(),
	}
}

const paymentMethodColumns = `id, user_id, type, is_default, details, created_at, updated_at`

func scanPaymentMethod(row pgx.Row) (*model.PaymentMethod, error) {
	var m model.PaymentMethod
	err := row.Scan(&m.ID, &m.UserID, &m.Type, &m.IsDefault, &m.Details, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindByIDAndUser retrieves a payment method owned by the given user.
func (r *paymentMethodRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE id = $1 AND user_id = $2`

	method, err := scanPaymentMethod(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("payment_method_id", id.String()).Msg("payment method not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("payment_method_id", id.String()).Msg("failed to query payment method")
		return nil, fmt.Errorf("failed to query payment method: %w", err)
	}

	return method, nil
}

// ListByUser retrieves all payment methods for a user.
func (r *paymentMethodRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query payment methods")
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer rows.Close()

	var methods []model.PaymentMethod
	for rows.Next() {
		method, err := scanPaymentMethod(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan payment method row")
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		methods = append(methods, *method)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating payment method rows")
		return nil, fmt.Errorf("error iterating payment methods: %w", err)
	}

	return methods, nil
}

// Create inserts a new payment method.
func (r *paymentMethodRepository) Create(ctx context.Context, method *model.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (id, user_id, type, is_default, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		method.ID, method.UserID, method.Type, method.IsDefault, method.Details,
		method.CreatedAt, method.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("payment_method_id", method.ID.String()).Msg("failed to create payment method")
		return fmt.Errorf("failed to create payment method: %w", err)
	}

	return nil
}

// Update persists changes to details and default flag.
func (r *paymentMethodRepository) Update(ctx context.Context, method *model.PaymentMethod) error {
	query := `
		UPDATE payment_methods
		SET is_default = $2, details = $3, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, method.ID, method.IsDefault, method.Details)
	if err != nil {
		r.logger.Error().Err(err).Str("payment_method_id", method.ID.String()).Msg("failed to update payment method")
		return fmt.Errorf("failed to update payment method: %w", err)
	}

	return nil
}

// Delete removes a payment method.
func (r *paymentMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM payment_methods WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("payment_method_id", id.String()).Msg("failed to delete payment method")
		return fmt.Errorf("failed to delete payment method: %w", err)
	}

	return nil
}

// CountByUser returns how many payment methods a user has saved.
func (r *paymentMethodRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM payment_methods WHERE user_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to count payment methods")
		return 0, fmt.Errorf("failed to count payment methods: %w", err)
	}

	return count, nil
}

// ClearDefault unsets the default flag on all of a user's methods except the given one.
func (r *paymentMethodRepository) ClearDefault(ctx context.Context, userID, except uuid.UUID) error {
	query := `UPDATE payment_methods SET is_default = FALSE, updated_at = NOW() WHERE user_id = $1 AND id <> $2`

	_, err := r.pool.Exec(ctx, query, userID, except)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to clear default payment method")
		return fmt.Errorf("failed to clear default payment method: %w", err)
	}

	return nil
}

// FindAnotherByUser returns any payment method of the user other than the excluded one.
func (r *paymentMethodRepository) FindAnotherByUser(ctx context.Context, userID, exclude uuid.UUID) (*model.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE user_id = $1 AND id <> $2 LIMIT 1`

	method, err := scanPaymentMethod(r.pool.QueryRow(ctx, query, userID, exclude))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query alternate payment method")
		return nil, fmt.Errorf("failed to query alternate payment method: %w", err)
	}

	return method, nil
}
