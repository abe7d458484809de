package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"sevensmile-backend/internal/services"
	"sevensmile-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// RazorpayHandler exposes the optional online payment flow for invoices.
type RazorpayHandler struct {
	Service *services.RazorpayService
}

func NewRazorpayHandler(s *services.RazorpayService) *RazorpayHandler {
	return &RazorpayHandler{Service: s}
}

// CreateOrder creates a gateway order for an unpaid invoice.
// POST /invoices/{id}/gateway-order.
func (h *RazorpayHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if !h.Service.Enabled() {
		utils.Error(w, http.StatusServiceUnavailable, "online payments not configured")
		return
	}

	invoiceID, _ := strconv.Atoi(mux.Vars(r)["id"])
	order, err := h.Service.CreateInvoiceOrder(r.Context(), invoiceID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, order)
}

// VerifyPayment checks the checkout callback signature and marks the
// invoice paid. POST /payments/gateway/verify.
func (h *RazorpayHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if !h.Service.Enabled() {
		utils.Error(w, http.StatusServiceUnavailable, "online payments not configured")
		return
	}

	var req struct {
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	invoice, err := h.Service.VerifyPayment(r.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice)
}

// Webhook handles gateway event notifications. The raw body is needed
// for signature verification, so it is read before decoding.
// POST /webhooks/razorpay (unauthenticated).
func (h *RazorpayHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "failed to read body")
		return
	}

	if !h.Service.VerifyWebhookSignature(body, r.Header.Get("X-Razorpay-Signature")) {
		utils.Error(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var event struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					OrderID string `json:"order_id"`
				} `json:"entity"`
			} `json:"payment"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	switch event.Event {
	case "payment.captured":
		if err := h.Service.HandlePaymentCaptured(r.Context(), event.Payload.Payment.Entity.OrderID); err != nil {
			log.Printf("[Razorpay] webhook payment.captured failed: %v", err)
		}
	default:
		// Other events are acknowledged without action.
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
