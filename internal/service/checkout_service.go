package service

import (
	"context"
	"fmt"
	"time"

	"techhub-shop/internal/events"
	"techhub-shop/internal/model"
	"techhub-shop/internal/repository"
	"techhub-shop/internal/shipping"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// taxRate is the fixed sales tax applied to the subtotal.
var taxRate = decimal.NewFromFloat(0.08)

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	paymentRepo repository.PaymentMethodRepository
	catalog     *shipping.Catalog
	publisher   events.Publisher
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	paymentRepo repository.PaymentMethodRepository,
	catalog *shipping.Catalog,
	publisher events.Publisher,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		paymentRepo: paymentRepo,
		catalog:     catalog,
		publisher:   publisher,
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

// ShippingMethods returns the available shipping options.
func (s *checkoutService) ShippingMethods() []model.ShippingMethod {
	return s.catalog.Methods()
}

// PlaceOrder creates an order from the user's cart. All validation runs
// before any mutating storage call; stock decrements, the order insert
// and the cart clear share one transaction, so either everything lands
// or nothing does.
func (s *checkoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if err := validateCheckoutRequest(req); err != nil {
		s.logger.Warn().
			Str("user_id", userID.String()).
			Err(err).
			Msg("checkout request rejected")
		return nil, err
	}

	// Resolve the payment method; it must belong to the caller.
	method, err := s.paymentRepo.FindByIDAndUser(ctx, req.PaymentMethodID, userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up payment method")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if method == nil {
		return nil, model.ErrPaymentMethodNotFound
	}

	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, model.ErrCartEmpty
	}

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	orderID := uuid.New()

	// Walk the cart in order: lock each product row, re-verify stock and
	// decrement it in the same transaction, snapshotting the price into
	// the order line.
	subtotal := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		var product *model.Product
		product, err = s.productRepo.GetForUpdate(ctx, tx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to place order: %w", err)
		}
		if product == nil {
			err = model.ErrProductNotFound
			return nil, err
		}

		if product.Stock < item.Quantity {
			s.logger.Warn().
				Str("product_id", product.ID).
				Int("requested", item.Quantity).
				Int("available", product.Stock).
				Msg("insufficient stock")
			err = &model.InsufficientStockError{ProductName: product.Name, Available: product.Stock}
			return nil, err
		}

		orderItems = append(orderItems, model.OrderItem{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.Price,
		})
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))

		if err = s.productRepo.DecrementStock(ctx, tx, product.ID, item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to place order: %w", err)
		}
	}

	tax := subtotal.Mul(taxRate).Round(2)
	shippingCost := req.ShippingMethod.Price
	total := subtotal.Add(tax).Add(shippingCost)

	// Billing address is a copy of shipping when the flag is set,
	// regardless of what the payload supplied.
	billing := *req.ShippingAddress
	if !req.SameBilling {
		billing = *req.BillingAddress
	}

	order := &model.Order{
		ID:              orderID,
		UserID:          userID,
		Items:           orderItems,
		ShippingAddress: *req.ShippingAddress,
		BillingAddress:  billing,
		SameBilling:     req.SameBilling,
		ShippingMethod:  *req.ShippingMethod,
		PaymentMethod: model.PaymentMethodSnapshot{
			ID:   method.ID,
			Type: method.Type,
		},
		Subtotal:      subtotal,
		Tax:           tax,
		ShippingCost:  shippingCost,
		Total:         total,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		OrderNotes:    req.OrderNotes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(orderItems)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Cart empties if and only if the order commits.
	if err = s.cartRepo.Clear(ctx, tx, cart.ID); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to clear cart")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Best-effort event after commit; a broker failure never undoes the order.
	if pubErr := s.publisher.PublishOrder(ctx, events.RoutingKeyOrderCreated, order); pubErr != nil {
		s.logger.Warn().Err(pubErr).Str("order_id", order.ID.String()).Msg("failed to publish order created event")
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID.String()).
		Int("item_count", len(orderItems)).
		Str("total", total.StringFixed(2)).
		Msg("order placed")

	return &model.CheckoutResponse{
		OrderID:       order.ID,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
	}, nil
}

// validateCheckoutRequest runs the pre-transaction validation sequence.
// The first failing check wins.
func validateCheckoutRequest(req *model.CheckoutRequest) error {
	if req == nil || !req.ShippingAddress.Complete() {
		return model.ErrIncompleteShippingAddress
	}

	if !req.SameBilling && !req.BillingAddress.Complete() {
		return model.ErrIncompleteBillingAddress
	}

	if req.ShippingMethod == nil || req.ShippingMethod.Name == "" || !req.ShippingMethod.Price.IsPositive() {
		return model.ErrMissingShippingMethod
	}

	if req.PaymentMethodID == uuid.Nil {
		return model.ErrMissingPaymentMethod
	}

	return nil
}
