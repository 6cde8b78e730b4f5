package integration

import (
	"context"
	"testing"

	"techhub-shop/internal/events"
	"techhub-shop/internal/model"
	"techhub-shop/internal/repository"
	"techhub-shop/internal/service"
	"techhub-shop/internal/shipping"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutStack struct {
	checkout service.CheckoutService
	orders   service.OrderService
	payments service.PaymentService
}

func newCheckoutStack(t *testing.T, db *TestDB, gateway service.GatewayFunc) checkoutStack {
	t.Helper()

	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(db.Pool, logger)
	cartRepo := repository.NewCartRepository(db.Pool, logger)
	paymentRepo := repository.NewPaymentMethodRepository(db.Pool, logger)
	orderRepo := repository.NewOrderRepository(db.Pool, logger)

	catalog, err := shipping.NewCatalog(context.Background(), "", nil, logger)
	require.NoError(t, err)

	publisher := events.NewNopPublisher()

	return checkoutStack{
		checkout: service.NewCheckoutService(orderRepo, productRepo, cartRepo, paymentRepo, catalog, publisher, logger),
		orders:   service.NewOrderService(orderRepo, publisher, logger),
		payments: service.NewPaymentService(paymentRepo, orderRepo, gateway, logger),
	}
}

func checkoutRequest(paymentMethodID uuid.UUID) *model.CheckoutRequest {
	return &model.CheckoutRequest{
		ShippingAddress: &model.Address{
			FullName:     "Jordan Smith",
			AddressLine1: "1 Main St",
			City:         "Springfield",
			State:        "IL",
			ZipCode:      "62701",
			Country:      "US",
			PhoneNumber:  "555-0100",
		},
		SameBilling: true,
		ShippingMethod: &model.ShippingMethod{
			ID:                "standard",
			Name:              "Standard Shipping",
			Price:             decimal.NewFromFloat(5.99),
			EstimatedDelivery: "5-7 business days",
		},
		PaymentMethodID: paymentMethodID,
	}
}

func TestPlaceOrder_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	stack := newCheckoutStack(t, db, nil)
	ctx := context.Background()

	SeedProducts(t, db.Pool)

	userID := uuid.New()
	cartID := SeedCart(t, db.Pool, userID, []model.CartItem{
		{ProductID: "P001", Quantity: 2},
		{ProductID: "P002", Quantity: 1},
	})
	methodID := SeedPaymentMethod(t, db.Pool, userID, model.PaymentTypeCreditCard, true)

	resp, err := stack.checkout.PlaceOrder(ctx, userID, checkoutRequest(methodID))
	require.NoError(t, err)
	require.NotNil(t, resp)

	// subtotal 20.00 + tax 1.60 + shipping 5.99
	assert.Equal(t, "27.59", resp.Total.StringFixed(2))
	assert.Equal(t, methodID, resp.PaymentMethod.ID)

	// Stock decremented
	assert.Equal(t, 8, ProductStock(t, db.Pool, "P001"))
	assert.Equal(t, 2, ProductStock(t, db.Pool, "P002"))

	// Cart emptied
	var cartItems int
	err = db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM cart_items WHERE cart_id = $1", cartID).Scan(&cartItems)
	require.NoError(t, err)
	assert.Equal(t, 0, cartItems)

	// Order persisted with snapshots
	order, err := stack.orders.GetByID(ctx, resp.OrderID, userID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "20.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "1.60", order.Tax.StringFixed(2))
	assert.Equal(t, order.ShippingAddress, order.BillingAddress)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Widget", order.Items[0].ProductName)
	assert.Equal(t, "5.00", order.Items[0].Price.StringFixed(2))
}

func TestPlaceOrder_InsufficientStock_RollsBackEverything(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	stack := newCheckoutStack(t, db, nil)
	ctx := context.Background()

	SeedProducts(t, db.Pool)

	userID := uuid.New()
	// First item is available; the second exceeds its stock of 1. The
	// first item's decrement must be rolled back with the rest.
	cartID := SeedCart(t, db.Pool, userID, []model.CartItem{
		{ProductID: "P001", Quantity: 2},
		{ProductID: "P003", Quantity: 5},
	})
	methodID := SeedPaymentMethod(t, db.Pool, userID, model.PaymentTypeCreditCard, true)

	resp, err := stack.checkout.PlaceOrder(ctx, userID, checkoutRequest(methodID))
	require.Error(t, err)
	assert.Nil(t, resp)

	var stockErr *model.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Not enough stock for Doohickey. Available: 1", err.Error())

	// No partial effects
	assert.Equal(t, 10, ProductStock(t, db.Pool, "P001"))
	assert.Equal(t, 1, ProductStock(t, db.Pool, "P003"))
	assert.Equal(t, 0, CountRows(t, db.Pool, "orders"))
	assert.Equal(t, 0, CountRows(t, db.Pool, "order_items"))

	var cartItems int
	err = db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM cart_items WHERE cart_id = $1", cartID).Scan(&cartItems)
	require.NoError(t, err)
	assert.Equal(t, 2, cartItems)
}

func TestPlaceOrder_ZeroStockProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	stack := newCheckoutStack(t, db, nil)
	ctx := context.Background()

	SeedProducts(t, db.Pool)

	userID := uuid.New()
	SeedCart(t, db.Pool, userID, []model.CartItem{
		{ProductID: "P004", Quantity: 1},
	})
	methodID := SeedPaymentMethod(t, db.Pool, userID, model.PaymentTypeCreditCard, true)

	_, err := stack.checkout.PlaceOrder(ctx, userID, checkoutRequest(methodID))
	require.Error(t, err)
	assert.Equal(t, "Not enough stock for Gizmo. Available: 0", err.Error())
}

func TestPlaceOrder_SeparateBillingAddressPersisted(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	stack := newCheckoutStack(t, db, nil)
	ctx := context.Background()

	SeedProducts(t, db.Pool)

	userID := uuid.New()
	SeedCart(t, db.Pool, userID, []model.CartItem{
		{ProductID: "P001", Quantity: 1},
	})
	methodID := SeedPaymentMethod(t, db.Pool, userID, model.PaymentTypeCreditCard, true)

	req := checkoutRequest(methodID)
	req.SameBilling = false
	req.BillingAddress = &model.Address{
		FullName:     "Casey Doe",
		AddressLine1: "99 Billing Ave",
		City:         "Chicago",
		State:        "IL",
		ZipCode:      "60601",
		Country:      "US",
		PhoneNumber:  "555-0200",
	}

	resp, err := stack.checkout.PlaceOrder(ctx, userID, req)
	require.NoError(t, err)

	order, err := stack.orders.GetByID(ctx, resp.OrderID, userID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "Casey Doe", order.BillingAddress.FullName)
	assert.NotEqual(t, order.ShippingAddress, order.BillingAddress)
	assert.False(t, order.SameBilling)
}

func TestOrderHistory_ListAndCancel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	stack := newCheckoutStack(t, db, nil)
	ctx := context.Background()

	SeedProducts(t, db.Pool)

	userID := uuid.New()
	SeedCart(t, db.Pool, userID, []model.CartItem{
		{ProductID: "P001", Quantity: 1},
	})
	methodID := SeedPaymentMethod(t, db.Pool, userID, model.PaymentTypeCreditCard, true)

	resp, err := stack.checkout.PlaceOrder(ctx, userID, checkoutRequest(methodID))
	require.NoError(t, err)

	orders, err := stack.orders.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, resp.OrderID, orders[0].ID)
	require.Len(t, orders[0].Items, 1)

	// Another user sees nothing
	otherOrders, err := stack.orders.ListByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, otherOrders)

	// Another user cannot cancel
	_, err = stack.orders.Cancel(ctx, resp.OrderID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, model.ErrOrderNotFound, err)

	cancelled, err := stack.orders.Cancel(ctx, resp.OrderID, userID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)

	// Cancellation does not restock
	assert.Equal(t, 9, ProductStock(t, db.Pool, "P001"))
}

func TestProcessPayment_MarksOrderPaid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	stack := newCheckoutStack(t, db, func() bool { return true })
	ctx := context.Background()

	SeedProducts(t, db.Pool)

	userID := uuid.New()
	SeedCart(t, db.Pool, userID, []model.CartItem{
		{ProductID: "P001", Quantity: 1},
	})
	methodID := SeedPaymentMethod(t, db.Pool, userID, model.PaymentTypeCreditCard, true)

	placed, err := stack.checkout.PlaceOrder(ctx, userID, checkoutRequest(methodID))
	require.NoError(t, err)

	result, err := stack.payments.ProcessPayment(ctx, userID, &model.ProcessPaymentRequest{
		OrderID:         placed.OrderID,
		PaymentMethodID: methodID,
		Amount:          placed.Total,
	})
	require.NoError(t, err)
	assert.True(t, result.Success)

	order, err := stack.orders.GetByID(ctx, placed.OrderID, userID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)
}

func TestPaymentMethods_CRUDRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	stack := newCheckoutStack(t, db, nil)
	ctx := context.Background()

	userID := uuid.New()

	card, err := stack.payments.AddMethod(ctx, userID, &model.CreatePaymentMethodRequest{
		Type: model.PaymentTypeCreditCard,
		Details: model.PaymentDetails{
			CardNumber: "4242424242424242",
			CardHolder: "Jordan Smith",
			ExpiryDate: "12/27",
		},
		IsDefault: true,
	})
	require.NoError(t, err)

	paypal, err := stack.payments.AddMethod(ctx, userID, &model.CreatePaymentMethodRequest{
		Type:    model.PaymentTypePayPal,
		Details: model.PaymentDetails{Email: "jordan@example.com"},
	})
	require.NoError(t, err)

	methods, err := stack.payments.ListMethods(ctx, userID)
	require.NoError(t, err)
	require.Len(t, methods, 2)
	for _, m := range methods {
		if m.Type == model.PaymentTypeCreditCard {
			assert.Equal(t, "************4242", m.Details.CardNumber)
		}
	}

	// Deleting the default promotes the remaining method
	require.NoError(t, stack.payments.DeleteMethod(ctx, card.ID, userID))

	methods, err = stack.payments.ListMethods(ctx, userID)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, paypal.ID, methods[0].ID)
	assert.True(t, methods[0].IsDefault)

	// The last method cannot be removed
	err = stack.payments.DeleteMethod(ctx, paypal.ID, userID)
	require.Error(t, err)
	assert.Equal(t, model.ErrLastPaymentMethod, err)
}
