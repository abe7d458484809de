package models

import (
	"fmt"
	"time"
)

// Voucher is a printable confirmation document tied 1:1 to a booking.
// Numbering is per calendar year: 2025/0142.
type Voucher struct {
	ID             int         `json:"id"`
	BookingType    BookingType `json:"booking_type"`
	BookingID      int         `json:"booking_id"`
	YearNumber     int         `json:"year_number"`
	SequenceNumber int         `json:"sequence_number"`
	CreatedAt      time.Time   `json:"created_at"`
}

// Number returns the display form, e.g. "2025/0142".
func (v *Voucher) Number() string {
	return fmt.Sprintf("%d/%04d", v.YearNumber, v.SequenceNumber)
}
