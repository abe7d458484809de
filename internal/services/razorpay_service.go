package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"

	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/repositories"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayService creates payment gateway orders for invoices and
// processes the payment confirmations. Amounts go to the gateway in
// the smallest currency unit (satang).
type RazorpayService struct {
	InvoiceRepo *repositories.InvoiceRepository

	keyID         string
	keySecret     string
	webhookSecret string
}

func NewRazorpayService(keyID, keySecret, webhookSecret string, invoiceRepo *repositories.InvoiceRepository) *RazorpayService {
	return &RazorpayService{
		InvoiceRepo:   invoiceRepo,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

// Enabled reports whether gateway credentials are configured.
func (s *RazorpayService) Enabled() bool {
	return s.keyID != "" && s.keySecret != ""
}

func (s *RazorpayService) client() *razorpay.Client {
	if !s.Enabled() {
		return nil
	}
	return razorpay.NewClient(s.keyID, s.keySecret)
}

// GatewayOrder is what the frontend needs to open the checkout.
type GatewayOrder struct {
	OrderID       string  `json:"order_id"`
	Amount        int     `json:"amount"` // satang
	Currency      string  `json:"currency"`
	KeyID         string  `json:"key_id"`
	InvoiceNumber string  `json:"invoice_number"`
	Total         float64 `json:"total"`
}

// CreateInvoiceOrder opens a gateway order for an unpaid invoice and
// records the gateway order id on the invoice.
func (s *RazorpayService) CreateInvoiceOrder(ctx context.Context, invoiceID int) (*GatewayOrder, error) {
	client := s.client()
	if client == nil {
		return nil, fmt.Errorf("%w: online payments are not configured", ErrInvalidArgument)
	}

	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Paid {
		return nil, fmt.Errorf("%w: invoice %s is already paid", ErrInvalidArgument, inv.InvoiceNumber)
	}

	amountMinor := int(inv.TotalSellingPrice * 100)
	orderData := map[string]interface{}{
		"amount":   amountMinor,
		"currency": "THB",
		"receipt":  inv.InvoiceNumber,
		"notes": map[string]interface{}{
			"invoice_id":     inv.ID,
			"invoice_number": inv.InvoiceNumber,
		},
	}
	order, err := client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}
	gatewayOrderID, ok := order["id"].(string)
	if !ok {
		return nil, fmt.Errorf("gateway order response missing id")
	}

	if err := s.InvoiceRepo.SetGatewayOrderID(ctx, inv.ID, gatewayOrderID); err != nil {
		return nil, err
	}

	return &GatewayOrder{
		OrderID:       gatewayOrderID,
		Amount:        amountMinor,
		Currency:      "THB",
		KeyID:         s.keyID,
		InvoiceNumber: inv.InvoiceNumber,
		Total:         inv.TotalSellingPrice,
	}, nil
}

// VerifyPayment checks the checkout callback signature and marks the
// invoice paid.
func (s *RazorpayService) VerifyPayment(ctx context.Context, gatewayOrderID, paymentID, signature string) (*models.Invoice, error) {
	if !s.verifySignature(gatewayOrderID, paymentID, signature) {
		return nil, fmt.Errorf("%w: invalid payment signature", ErrInvalidArgument)
	}
	inv, err := s.InvoiceRepo.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return nil, err
	}
	if err := s.InvoiceRepo.SetPaid(ctx, inv.ID, true); err != nil {
		return nil, err
	}
	inv.Paid = true
	log.Printf("[Razorpay] Invoice %s marked paid via %s", inv.InvoiceNumber, paymentID)
	return inv, nil
}

func (s *RazorpayService) verifySignature(orderID, paymentID, signature string) bool {
	h := hmac.New(sha256.New, []byte(s.keySecret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks the signature header on a webhook
// delivery against the raw body.
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandlePaymentCaptured processes a payment.captured webhook event.
// Idempotent: re-delivery of an already-paid invoice is a no-op.
func (s *RazorpayService) HandlePaymentCaptured(ctx context.Context, gatewayOrderID string) error {
	inv, err := s.InvoiceRepo.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return err
	}
	if inv.Paid {
		return nil
	}
	return s.InvoiceRepo.SetPaid(ctx, inv.ID, true)
}
