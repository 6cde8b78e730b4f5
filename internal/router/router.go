package router

import (
	"net/http"
	"strings"

	"techhub-shop/internal/handler"
	"techhub-shop/internal/middleware"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	checkoutHandler *handler.CheckoutHandler,
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
	jwtSecret string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Prometheus scrape endpoint (no authentication required)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/checkout/shipping-methods", checkoutHandler.ShippingMethods)
	mux.HandleFunc("/api/checkout/order", checkoutHandler.PlaceOrder)

	// Order handler function
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/orders" || r.URL.Path == "/api/orders/" {
			orderHandler.List(w, r)
			return
		}

		if strings.HasSuffix(strings.TrimSuffix(r.URL.Path, "/"), "/cancel") {
			orderHandler.Cancel(w, r)
			return
		}

		orderHandler.GetByID(w, r)
	}

	// Register order routes (both with and without trailing slash)
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Payment method handler function
	paymentMethodsRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		exact := r.URL.Path == "/api/payment/methods" || r.URL.Path == "/api/payment/methods/"

		switch {
		case exact && r.Method == http.MethodGet:
			paymentHandler.ListMethods(w, r)
		case exact && r.Method == http.MethodPost:
			paymentHandler.AddMethod(w, r)
		case !exact && r.Method == http.MethodPut:
			paymentHandler.UpdateMethod(w, r)
		case !exact && r.Method == http.MethodDelete:
			paymentHandler.DeleteMethod(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	// Register payment routes (both with and without trailing slash)
	mux.HandleFunc("/api/payment/methods", paymentMethodsRouteHandler)
	mux.HandleFunc("/api/payment/methods/", paymentMethodsRouteHandler)
	mux.HandleFunc("/api/payment/process", paymentHandler.ProcessPayment)

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS -> JWTAuth
	var h http.Handler = mux
	h = middleware.JWTAuth(jwtSecret, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Metrics(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
