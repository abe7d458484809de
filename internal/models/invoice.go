package models

import "time"

// Invoice references one or more payments. Its totals are always
// recomputed from the live payment rows, never edited directly.
type Invoice struct {
	ID                int       `json:"id"`
	InvoiceNumber     string    `json:"invoice_number"`
	InvoiceDate       string    `json:"invoice_date"`
	PaymentIDs        []int     `json:"payment_ids"`
	TotalCost         float64   `json:"total_cost"`
	TotalSellingPrice float64   `json:"total_selling_price"`
	TotalProfit       float64   `json:"total_profit"`
	Paid              bool      `json:"paid"`
	GatewayOrderID    string    `json:"gateway_order_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type CreateInvoiceRequest struct {
	InvoiceDate string `json:"invoice_date"`
	PaymentIDs  []int  `json:"payment_ids"`
}
