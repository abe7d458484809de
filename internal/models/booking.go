package models

import "time"

// BookingStatus is the delivery status of a tour or transfer booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusBooked     BookingStatus = "booked"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusBooked, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// BookingType distinguishes the two booking tables.
type BookingType string

const (
	BookingTour     BookingType = "tour"
	BookingTransfer BookingType = "transfer"
)

type TourBooking struct {
	ID             int           `json:"id"`
	OrderID        *int          `json:"order_id"`
	TourDate       string        `json:"tour_date"`
	TourPickupTime string        `json:"tour_pickup_time"`
	CustomerName   string        `json:"customer_name"`
	TourHotel      string        `json:"tour_hotel"`
	TourRoomNo     string        `json:"tour_room_no"`
	TourDetail     string        `json:"tour_detail"`
	TourType       string        `json:"tour_type"`
	SendTo         string        `json:"send_to"`
	PaxAdt         int           `json:"pax_adt"`
	PaxChd         int           `json:"pax_chd"`
	PaxInf         int           `json:"pax_inf"`
	Status         BookingStatus `json:"status"`
	CostPrice      float64       `json:"cost_price"`
	SellingPrice   float64       `json:"selling_price"`
	PaymentStatus  string        `json:"payment_status"`
	VoucherCreated bool          `json:"voucher_created"`
	Note           string        `json:"note"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type TransferBooking struct {
	ID             int           `json:"id"`
	OrderID        *int          `json:"order_id"`
	TransferDate   string        `json:"transfer_date"`
	TransferTime   string        `json:"transfer_time"`
	CustomerName   string        `json:"customer_name"`
	PickupLocation string        `json:"pickup_location"`
	DropLocation   string        `json:"drop_location"`
	TransferFlight string        `json:"transfer_flight"`
	FlightTime     string        `json:"flight_time"`
	TransferType   string        `json:"transfer_type"`
	SendTo         string        `json:"send_to"`
	CarModel       string        `json:"car_model"`
	LicensePlate   string        `json:"license_plate"`
	DriverName     string        `json:"driver_name"`
	PaxAdt         int           `json:"pax_adt"`
	PaxChd         int           `json:"pax_chd"`
	PaxInf         int           `json:"pax_inf"`
	Status         BookingStatus `json:"status"`
	CostPrice      float64       `json:"cost_price"`
	SellingPrice   float64       `json:"selling_price"`
	PaymentStatus  string        `json:"payment_status"`
	VoucherCreated bool          `json:"voucher_created"`
	Note           string        `json:"note"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
