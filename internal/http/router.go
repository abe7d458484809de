package http

import (
	"net/http"

	"sevensmile-backend/internal/handlers"
	"sevensmile-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	informationHandler *handlers.InformationHandler,
	mergeHandler *handlers.MergeHandler,
	orderHandler *handlers.OrderHandler,
	bookingHandler *handlers.BookingHandler,
	voucherHandler *handlers.VoucherHandler,
	paymentHandler *handlers.PaymentHandler,
	invoiceHandler *handlers.InvoiceHandler,
	reportHandler *handlers.ReportHandler,
	documentHandler *handlers.DocumentHandler,
	totpHandler *handlers.TOTPHandler,
	razorpayHandler *handlers.RazorpayHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/verify-2fa", authHandler.Verify2FA).Methods("POST")

	// Signup is admin-only so staff accounts are provisioned, not self-served
	r.Handle("/auth/signup", authMiddleware.RequireAdmin(http.HandlerFunc(authHandler.Signup))).Methods("POST")

	// Gateway webhook (signature-verified, no JWT)
	r.HandleFunc("/webhooks/razorpay", razorpayHandler.Webhook).Methods("POST")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", authMiddleware.RequireRole("admin")(http.HandlerFunc(userHandler.ListUsers)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(userHandler.GetUser)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("/{id}/toggle-active", authMiddleware.RequireRole("admin")(http.HandlerFunc(userHandler.ToggleActive)).ServeHTTP).Methods("PATCH")

	// Protected API routes - Information records
	informationAPI := r.PathPrefix("/api/information").Subrouter()
	informationAPI.Use(authMiddleware.Authenticate)
	informationAPI.HandleFunc("", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(informationHandler.Create)).ServeHTTP).Methods("POST")
	informationAPI.HandleFunc("/categories", informationHandler.ListCategories).Methods("GET")
	informationAPI.HandleFunc("/search", informationHandler.Search).Methods("GET")
	informationAPI.HandleFunc("/category/{category}", informationHandler.ListByCategory).Methods("GET")
	informationAPI.HandleFunc("/{id}", informationHandler.Get).Methods("GET")
	informationAPI.HandleFunc("/{id}", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(informationHandler.Update)).ServeHTTP).Methods("PUT")
	informationAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(informationHandler.Delete)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Merge workflow (preview open, execute admin only)
	mergeAPI := r.PathPrefix("/api/merge").Subrouter()
	mergeAPI.Use(authMiddleware.Authenticate)
	mergeAPI.HandleFunc("/preview", mergeHandler.PreviewImpact).Methods("POST")
	mergeAPI.HandleFunc("/conflicts", mergeHandler.DetectConflicts).Methods("POST")
	mergeAPI.HandleFunc("/execute", authMiddleware.RequireRole("admin")(http.HandlerFunc(mergeHandler.Merge)).ServeHTTP).Methods("POST")

	// Protected API routes - Orders
	ordersAPI := r.PathPrefix("/api/orders").Subrouter()
	ordersAPI.Use(authMiddleware.Authenticate)
	ordersAPI.HandleFunc("", orderHandler.ListOrders).Methods("GET")
	ordersAPI.HandleFunc("", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(orderHandler.CreateOrder)).ServeHTTP).Methods("POST")
	ordersAPI.HandleFunc("/search", orderHandler.SearchOrders).Methods("GET")
	ordersAPI.HandleFunc("/{id}", orderHandler.GetOrder).Methods("GET")
	ordersAPI.HandleFunc("/{id}", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(orderHandler.UpdateOrder)).ServeHTTP).Methods("PUT")
	ordersAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(orderHandler.DeleteOrder)).ServeHTTP).Methods("DELETE")
	ordersAPI.HandleFunc("/{id}/completed", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(orderHandler.SetCompleted)).ServeHTTP).Methods("PATCH")
	ordersAPI.HandleFunc("/{id}/recalculate-pax", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(orderHandler.RecalculatePax)).ServeHTTP).Methods("POST")

	// Protected API routes - Bookings
	bookingsAPI := r.PathPrefix("/api/bookings").Subrouter()
	bookingsAPI.Use(authMiddleware.Authenticate)
	bookingsAPI.HandleFunc("/tour", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(bookingHandler.CreateTourBooking)).ServeHTTP).Methods("POST")
	bookingsAPI.HandleFunc("/transfer", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(bookingHandler.CreateTransferBooking)).ServeHTTP).Methods("POST")
	bookingsAPI.HandleFunc("/tour", bookingHandler.ListTourBookings).Methods("GET")
	bookingsAPI.HandleFunc("/transfer", bookingHandler.ListTransferBookings).Methods("GET")
	bookingsAPI.HandleFunc("/tour/{id}", bookingHandler.GetTourBooking).Methods("GET")
	bookingsAPI.HandleFunc("/transfer/{id}", bookingHandler.GetTransferBooking).Methods("GET")
	bookingsAPI.HandleFunc("/tour/{id}", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(bookingHandler.UpdateTourBooking)).ServeHTTP).Methods("PUT")
	bookingsAPI.HandleFunc("/transfer/{id}", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(bookingHandler.UpdateTransferBooking)).ServeHTTP).Methods("PUT")
	bookingsAPI.HandleFunc("/{type}/{id}/status", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(bookingHandler.UpdateStatus)).ServeHTTP).Methods("PATCH")
	bookingsAPI.HandleFunc("/tour/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(bookingHandler.DeleteTourBooking)).ServeHTTP).Methods("DELETE")
	bookingsAPI.HandleFunc("/transfer/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(bookingHandler.DeleteTransferBooking)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Vouchers
	vouchersAPI := r.PathPrefix("/api/vouchers").Subrouter()
	vouchersAPI.Use(authMiddleware.Authenticate)
	vouchersAPI.HandleFunc("", voucherHandler.List).Methods("GET")
	vouchersAPI.HandleFunc("/{type}/{id}", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(voucherHandler.CreateOrGet)).ServeHTTP).Methods("POST")
	vouchersAPI.HandleFunc("/{type}/{id}", voucherHandler.GetByBooking).Methods("GET")

	// Protected API routes - Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.Authenticate)
	paymentsAPI.HandleFunc("", paymentHandler.ListPayments).Methods("GET")
	paymentsAPI.HandleFunc("", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(paymentHandler.CreatePayment)).ServeHTTP).Methods("POST")
	paymentsAPI.HandleFunc("/gateway/verify", razorpayHandler.VerifyPayment).Methods("POST")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.GetPayment).Methods("GET")
	paymentsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(paymentHandler.UpdatePayment)).ServeHTTP).Methods("PUT")
	paymentsAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(paymentHandler.DeletePayment)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(invoiceHandler.CreateInvoice)).ServeHTTP).Methods("POST")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", authMiddleware.RequireRole("admin")(http.HandlerFunc(invoiceHandler.DeleteInvoice)).ServeHTTP).Methods("DELETE")
	invoicesAPI.HandleFunc("/{id}/paid", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(invoiceHandler.SetPaid)).ServeHTTP).Methods("PATCH")
	invoicesAPI.HandleFunc("/{id}/gateway-order", authMiddleware.RequireRole("employee", "admin")(http.HandlerFunc(razorpayHandler.CreateOrder)).ServeHTTP).Methods("POST")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("", reportHandler.Generate).Methods("POST")

	// Protected API routes - Documents
	documentsAPI := r.PathPrefix("/api/documents").Subrouter()
	documentsAPI.Use(authMiddleware.Authenticate)
	documentsAPI.HandleFunc("/voucher/{type}/{id}", documentHandler.VoucherPDF).Methods("GET")
	documentsAPI.HandleFunc("/invoice/{id}", documentHandler.InvoicePDF).Methods("GET")

	// Protected API routes - Two-factor auth
	totpAPI := r.PathPrefix("/api/totp").Subrouter()
	totpAPI.Use(authMiddleware.Authenticate)
	totpAPI.HandleFunc("/setup", totpHandler.Setup).Methods("POST")
	totpAPI.HandleFunc("/enable", totpHandler.Enable).Methods("POST")
	totpAPI.HandleFunc("/status", totpHandler.Status).Methods("GET")
	totpAPI.HandleFunc("/disable", totpHandler.Disable).Methods("POST")

	// Health endpoints (no auth required, for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
