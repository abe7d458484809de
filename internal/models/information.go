package models

import "time"

// Category identifies which kind of shared reference data an
// InformationRecord belongs to. The set is closed: the merge engine's
// column mapping is keyed on it at compile time.
type Category string

const (
	CategoryAgent             Category = "agent"
	CategoryTourRecipient     Category = "tour_recipient"
	CategoryTransferRecipient Category = "transfer_recipient"
	CategoryTourType          Category = "tour_type"
	CategoryTransferType      Category = "transfer_type"
	CategoryPlace             Category = "place"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryAgent,
	CategoryTourRecipient,
	CategoryTransferRecipient,
	CategoryTourType,
	CategoryTransferType,
	CategoryPlace,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryAgent, CategoryTourRecipient, CategoryTransferRecipient,
		CategoryTourType, CategoryTransferType, CategoryPlace:
		return true
	}
	return false
}

// InformationRecord is a shared reference row (agent, recipient, type,
// place). Its value string is denormalized into dependent tables, which
// is why merging duplicates has to rewrite references.
type InformationRecord struct {
	ID          int       `json:"id"`
	Category    Category  `json:"category"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	Phone       string    `json:"phone"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateInformationRequest struct {
	Category    Category `json:"category"`
	Value       string   `json:"value"`
	Description string   `json:"description"`
	Phone       string   `json:"phone"`
}

type UpdateInformationRequest struct {
	Value       string `json:"value"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Active      *bool  `json:"active"`
}
