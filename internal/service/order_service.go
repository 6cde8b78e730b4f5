package service

import (
	"context"
	"fmt"

	"techhub-shop/internal/events"
	"techhub-shop/internal/model"
	"techhub-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, publisher events.Publisher, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// ListByUser retrieves the user's orders, newest first.
func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves one of the user's orders. Returns nil when not found.
func (s *orderService) GetByID(ctx context.Context, id, userID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// Cancel transitions one of the user's orders to cancelled. Stock is not
// returned to the catalogue on cancellation.
func (s *orderService) Cancel(ctx context.Context, id, userID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.UpdateStatus(ctx, id, userID, model.OrderStatusCancelled)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to cancel order")
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if pubErr := s.publisher.PublishOrder(ctx, events.RoutingKeyOrderCancelled, order); pubErr != nil {
		s.logger.Warn().Err(pubErr).Str("order_id", order.ID.String()).Msg("failed to publish order cancelled event")
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID.String()).
		Msg("order cancelled")

	return order, nil
}
