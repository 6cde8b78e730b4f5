package repository

import (
	"context"

	"techhub-shop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository is the product-catalogue collaborator. Checkout only
// reads price/stock and decrements stock inside a transaction.
type ProductRepository interface {
	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetForUpdate retrieves a product inside the given transaction with
	// a row lock, so the stock check and decrement are atomic.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*model.Product, error)

	// DecrementStock decrements a product's stock within the transaction.
	// The update is guarded by stock >= quantity and fails rather than
	// driving stock negative.
	DecrementStock(ctx context.Context, tx pgx.Tx, id string, quantity int) error
}

// CartRepository is the cart-store collaborator.
type CartRepository interface {
	// FindByUser retrieves the user's cart with its items in insertion
	// order. Returns nil when the user has no cart.
	FindByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// Clear removes all items from a cart within the provided transaction.
	Clear(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error
}

// PaymentMethodRepository defines access to saved payment methods.
type PaymentMethodRepository interface {
	// FindByIDAndUser retrieves a payment method owned by the given user.
	// Returns nil when it does not exist or belongs to someone else.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.PaymentMethod, error)

	// ListByUser retrieves all payment methods for a user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.PaymentMethod, error)

	// Create inserts a new payment method.
	Create(ctx context.Context, method *model.PaymentMethod) error

	// Update persists changes to details and default flag.
	Update(ctx context.Context, method *model.PaymentMethod) error

	// Delete removes a payment method.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByUser returns how many payment methods a user has saved.
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)

	// ClearDefault unsets the default flag on all of a user's methods
	// except the given one.
	ClearDefault(ctx context.Context, userID, except uuid.UUID) error

	// FindAnotherByUser returns any payment method of the user other than
	// the excluded one, or nil.
	FindAnotherByUser(ctx context.Context, userID, exclude uuid.UUID) (*model.PaymentMethod, error)
}

// OrderRepository defines the interface for order data access operations.
// It also owns the transaction primitive spanning orders, product stock
// and cart items.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's line items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByIDAndUser retrieves one of the user's orders with its items.
	// Returns nil when not found.
	GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.Order, error)

	// ListByUser retrieves the user's orders, newest first, with items.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// UpdateStatus transitions an order's status and returns the updated
	// order, or nil when the order does not belong to the user.
	UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) (*model.Order, error)

	// MarkPaid sets paymentStatus to paid and status to processing.
	// Returns model.ErrOrderNotFound when the order is not the user's.
	MarkPaid(ctx context.Context, id, userID uuid.UUID) error
}
