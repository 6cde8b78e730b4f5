package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"techhub-shop/internal/model"
	"techhub-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GatewayFunc simulates a payment gateway call; it reports whether the
// charge was accepted. The default declines roughly one in ten charges.
type GatewayFunc func() bool

// DefaultGateway is the simulated gateway used in production wiring.
func DefaultGateway() bool {
	return rand.Float64() > 0.1
}

// paymentService implements PaymentService.
type paymentService struct {
	paymentRepo repository.PaymentMethodRepository
	orderRepo   repository.OrderRepository
	gateway     GatewayFunc
	logger      zerolog.Logger
}

// NewPaymentService creates a new payment service. A nil gateway uses
// the default simulation.
func NewPaymentService(
	paymentRepo repository.PaymentMethodRepository,
	orderRepo repository.OrderRepository,
	gateway GatewayFunc,
	logger zerolog.Logger,
) PaymentService {
	if gateway == nil {
		gateway = DefaultGateway
	}
	return &paymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		logger:      logger.With().Str("service", "payment").Logger(),
	}
}

// ListMethods retrieves the user's payment methods with card numbers masked.
func (s *paymentService) ListMethods(ctx context.Context, userID uuid.UUID) ([]model.PaymentMethod, error) {
	methods, err := s.paymentRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list payment methods")
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	masked := make([]model.PaymentMethod, len(methods))
	for i, m := range methods {
		masked[i] = m.Masked()
	}
	return masked, nil
}

// AddMethod saves a new payment method. Only the last four digits of a
// card number are ever stored.
func (s *paymentService) AddMethod(ctx context.Context, userID uuid.UUID, req *model.CreatePaymentMethodRequest) (*model.PaymentMethod, error) {
	if err := validatePaymentDetails(req.Type, req.Details); err != nil {
		return nil, err
	}

	details := req.Details
	if req.Type == model.PaymentTypeCreditCard && len(details.CardNumber) > 4 {
		details.CardNumber = details.CardNumber[len(details.CardNumber)-4:]
	}

	now := time.Now()
	method := &model.PaymentMethod{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      req.Type,
		IsDefault: req.IsDefault,
		Details:   details,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// A new default demotes the user's other methods.
	if req.IsDefault {
		if err := s.paymentRepo.ClearDefault(ctx, userID, method.ID); err != nil {
			return nil, fmt.Errorf("failed to add payment method: %w", err)
		}
	}

	if err := s.paymentRepo.Create(ctx, method); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create payment method")
		return nil, fmt.Errorf("failed to add payment method: %w", err)
	}

	s.logger.Info().
		Str("payment_method_id", method.ID.String()).
		Str("type", method.Type).
		Msg("payment method added")

	return method, nil
}

// UpdateMethod updates details and/or the default flag of a saved method.
func (s *paymentService) UpdateMethod(ctx context.Context, id, userID uuid.UUID, req *model.UpdatePaymentMethodRequest) (*model.PaymentMethod, error) {
	method, err := s.paymentRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}
	if method == nil {
		return nil, model.ErrPaymentMethodNotFound
	}

	if req.Details != nil {
		switch method.Type {
		case model.PaymentTypeCreditCard:
			if req.Details.CardNumber != "" {
				number := req.Details.CardNumber
				if len(number) > 4 {
					number = number[len(number)-4:]
				}
				method.Details.CardNumber = number
			}
			if req.Details.CardHolder != "" {
				method.Details.CardHolder = req.Details.CardHolder
			}
			if req.Details.ExpiryDate != "" {
				method.Details.ExpiryDate = req.Details.ExpiryDate
			}
		case model.PaymentTypePayPal:
			if req.Details.Email != "" {
				method.Details.Email = req.Details.Email
			}
		}
	}

	if req.IsDefault != nil {
		method.IsDefault = *req.IsDefault
		if *req.IsDefault {
			if err := s.paymentRepo.ClearDefault(ctx, userID, method.ID); err != nil {
				return nil, fmt.Errorf("failed to update payment method: %w", err)
			}
		}
	}

	if err := s.paymentRepo.Update(ctx, method); err != nil {
		s.logger.Error().Err(err).Str("payment_method_id", id.String()).Msg("failed to update payment method")
		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}

	return method, nil
}

// DeleteMethod removes a saved method. The only remaining method cannot
// be deleted; deleting the default promotes another method.
func (s *paymentService) DeleteMethod(ctx context.Context, id, userID uuid.UUID) error {
	method, err := s.paymentRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}
	if method == nil {
		return model.ErrPaymentMethodNotFound
	}

	count, err := s.paymentRepo.CountByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}
	if count == 1 {
		return model.ErrLastPaymentMethod
	}

	if method.IsDefault {
		another, err := s.paymentRepo.FindAnotherByUser(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("failed to delete payment method: %w", err)
		}
		if another != nil {
			another.IsDefault = true
			if err := s.paymentRepo.Update(ctx, another); err != nil {
				return fmt.Errorf("failed to delete payment method: %w", err)
			}
		}
	}

	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("payment_method_id", id.String()).Msg("failed to delete payment method")
		return fmt.Errorf("failed to delete payment method: %w", err)
	}

	s.logger.Info().Str("payment_method_id", id.String()).Msg("payment method deleted")

	return nil
}

// ProcessPayment runs the simulated gateway and marks the order paid on
// success. A real integration would call out to a payment provider here.
func (s *paymentService) ProcessPayment(ctx context.Context, userID uuid.UUID, req *model.ProcessPaymentRequest) (*model.ProcessPaymentResponse, error) {
	method, err := s.paymentRepo.FindByIDAndUser(ctx, req.PaymentMethodID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}
	if method == nil {
		return nil, model.ErrPaymentMethodNotFound
	}

	order, err := s.orderRepo.GetByIDAndUser(ctx, req.OrderID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !s.gateway() {
		s.logger.Warn().
			Str("order_id", order.ID.String()).
			Str("payment_method_id", method.ID.String()).
			Msg("payment declined")
		return nil, model.ErrPaymentDeclined
	}

	if err := s.orderRepo.MarkPaid(ctx, order.ID, userID); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to mark order paid")
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("payment_method", method.Type).
		Msg("payment processed")

	return &model.ProcessPaymentResponse{
		Success:       true,
		TransactionID: fmt.Sprintf("tr_%d", time.Now().UnixMilli()),
		Amount:        req.Amount,
		PaymentMethod: method.Type,
		OrderID:       order.ID,
	}, nil
}

// validatePaymentDetails checks per-type required fields.
func validatePaymentDetails(methodType string, details model.PaymentDetails) error {
	switch methodType {
	case model.PaymentTypeCreditCard:
		if details.CardNumber == "" || details.CardHolder == "" || details.ExpiryDate == "" {
			return model.ErrInvalidCardDetails
		}
	case model.PaymentTypePayPal:
		if details.Email == "" {
			return model.ErrMissingPayPalEmail
		}
	}
	return nil
}
