package models

import "time"

// BookingSnapshot is the frozen view of a booking at the moment a
// payment was saved. It does not live-reference the booking row: later
// edits (or merges) do not touch it.
type BookingSnapshot struct {
	BookingType  BookingType `json:"booking_type"`
	BookingID    int         `json:"booking_id"`
	Date         string      `json:"date"`
	Detail       string      `json:"detail"`
	SendTo       string      `json:"send_to"`
	Pax          string      `json:"pax"`
	CostPrice    float64     `json:"cost_price"`
	SellingPrice float64     `json:"selling_price"`
}

type Payment struct {
	ID                int               `json:"id"`
	PaymentID         string            `json:"payment_id"`
	OrderID           *int              `json:"order_id"`
	FirstName         string            `json:"first_name"`
	LastName          string            `json:"last_name"`
	AgentName         string            `json:"agent_name"`
	Bookings          []BookingSnapshot `json:"bookings"`
	TotalCost         float64           `json:"total_cost"`
	TotalSellingPrice float64           `json:"total_selling_price"`
	TotalProfit       float64           `json:"total_profit"`
	Invoiced          bool              `json:"invoiced"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type CreatePaymentRequest struct {
	OrderID   *int              `json:"order_id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	AgentName string            `json:"agent_name"`
	Bookings  []BookingSnapshot `json:"bookings"`
}
