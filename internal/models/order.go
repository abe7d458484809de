package models

import (
	"fmt"
	"strings"
	"time"
)

// Order groups bookings for one customer party. agent_name is a
// denormalized copy of the agent's information value; agent_id is the
// foreign key. Both are rewritten by a merge.
type Order struct {
	ID          int       `json:"id"`
	ReferenceID string    `json:"reference_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	AgentID     *int      `json:"agent_id"`
	AgentName   string    `json:"agent_name"`
	PaxAdt      int       `json:"pax_adt"`
	PaxChd      int       `json:"pax_chd"`
	PaxInf      int       `json:"pax_inf"`
	Completed   bool      `json:"completed"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Pax returns the display form of the pax counts: the non-zero
// components joined by "+", or "0" if all are zero.
// adults=2, children=1, infants=0 -> "2+1".
func (o *Order) Pax() string {
	return FormatPax(o.PaxAdt, o.PaxChd, o.PaxInf)
}

// FormatPax renders adult/child/infant counts as the non-zero
// components joined by "+"; all zero renders "0".
func FormatPax(adt, chd, inf int) string {
	var parts []string
	for _, n := range []int{adt, chd, inf} {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d", n))
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "+")
}

type CreateOrderRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AgentID   *int   `json:"agent_id"`
	AgentName string `json:"agent_name"`
	PaxAdt    int    `json:"pax_adt"`
	PaxChd    int    `json:"pax_chd"`
	PaxInf    int    `json:"pax_inf"`
	Note      string `json:"note"`
}

type UpdateOrderRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AgentID   *int   `json:"agent_id"`
	AgentName string `json:"agent_name"`
	PaxAdt    int    `json:"pax_adt"`
	PaxChd    int    `json:"pax_chd"`
	PaxInf    int    `json:"pax_inf"`
	Completed *bool  `json:"completed"`
	Note      string `json:"note"`
}
