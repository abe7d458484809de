package services

import (
	"context"
	"fmt"
	"strings"

	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/repositories"
)

// BookingService manages tour and transfer bookings behind one API.
// Status moves through pending -> booked -> in_progress -> completed,
// with cancelled reachable from any non-terminal state.
type BookingService struct {
	TourRepo     *repositories.TourBookingRepository
	TransferRepo *repositories.TransferBookingRepository
	OrderRepo    *repositories.OrderRepository
}

func NewBookingService(tourRepo *repositories.TourBookingRepository,
	transferRepo *repositories.TransferBookingRepository,
	orderRepo *repositories.OrderRepository) *BookingService {
	return &BookingService{
		TourRepo:     tourRepo,
		TransferRepo: transferRepo,
		OrderRepo:    orderRepo,
	}
}

// statusTransitions lists the allowed next states for each status.
var statusTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:    {models.StatusBooked, models.StatusCancelled},
	models.StatusBooked:     {models.StatusInProgress, models.StatusCompleted, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

func transitionAllowed(from, to models.BookingStatus) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s *BookingService) checkOrder(ctx context.Context, orderID *int) error {
	if orderID == nil {
		return nil
	}
	if _, err := s.OrderRepo.Get(ctx, *orderID); err != nil {
		return fmt.Errorf("order %d: %w", *orderID, err)
	}
	return nil
}

func (s *BookingService) CreateTourBooking(ctx context.Context, b *models.TourBooking) (*models.TourBooking, error) {
	if strings.TrimSpace(b.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidArgument)
	}
	if b.TourDate == "" {
		return nil, fmt.Errorf("%w: tour date is required", ErrInvalidArgument)
	}
	if err := s.checkOrder(ctx, b.OrderID); err != nil {
		return nil, err
	}
	if b.Status == "" {
		b.Status = models.StatusPending
	}
	if !b.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, b.Status)
	}
	if err := s.TourRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) CreateTransferBooking(ctx context.Context, b *models.TransferBooking) (*models.TransferBooking, error) {
	if strings.TrimSpace(b.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidArgument)
	}
	if b.TransferDate == "" {
		return nil, fmt.Errorf("%w: transfer date is required", ErrInvalidArgument)
	}
	if err := s.checkOrder(ctx, b.OrderID); err != nil {
		return nil, err
	}
	if b.Status == "" {
		b.Status = models.StatusPending
	}
	if !b.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, b.Status)
	}
	if err := s.TransferRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookingService) GetTourBooking(ctx context.Context, id int) (*models.TourBooking, error) {
	return s.TourRepo.Get(ctx, id)
}

func (s *BookingService) GetTransferBooking(ctx context.Context, id int) (*models.TransferBooking, error) {
	return s.TransferRepo.Get(ctx, id)
}

// ListTourBookings returns tour bookings within the date range,
// inclusive on both ends.
func (s *BookingService) ListTourBookings(ctx context.Context, startDate, endDate string) ([]*models.TourBooking, error) {
	if err := checkDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	return s.TourRepo.ListForReport(ctx, startDate, endDate, nil, nil)
}

// ListTransferBookings returns transfer bookings within the date
// range, inclusive on both ends.
func (s *BookingService) ListTransferBookings(ctx context.Context, startDate, endDate string) ([]*models.TransferBooking, error) {
	if err := checkDateRange(startDate, endDate); err != nil {
		return nil, err
	}
	return s.TransferRepo.ListForReport(ctx, startDate, endDate, nil, nil)
}

func checkDateRange(startDate, endDate string) error {
	if startDate == "" || endDate == "" {
		return fmt.Errorf("%w: start_date and end_date are required", ErrInvalidArgument)
	}
	if startDate > endDate {
		return fmt.Errorf("%w: start date after end date", ErrInvalidArgument)
	}
	return nil
}

func (s *BookingService) UpdateTourBooking(ctx context.Context, b *models.TourBooking) error {
	current, err := s.TourRepo.Get(ctx, b.ID)
	if err != nil {
		return err
	}
	if b.Status != current.Status && !transitionAllowed(current.Status, b.Status) {
		return fmt.Errorf("%w: cannot move booking from %s to %s", ErrInvalidArgument, current.Status, b.Status)
	}
	return s.TourRepo.Update(ctx, b)
}

func (s *BookingService) UpdateTransferBooking(ctx context.Context, b *models.TransferBooking) error {
	current, err := s.TransferRepo.Get(ctx, b.ID)
	if err != nil {
		return err
	}
	if b.Status != current.Status && !transitionAllowed(current.Status, b.Status) {
		return fmt.Errorf("%w: cannot move booking from %s to %s", ErrInvalidArgument, current.Status, b.Status)
	}
	return s.TransferRepo.Update(ctx, b)
}

// UpdateStatus advances one booking's status, enforcing the
// transition rules.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingType models.BookingType, id int, status models.BookingStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, status)
	}
	var current models.BookingStatus
	switch bookingType {
	case models.BookingTour:
		b, err := s.TourRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		current = b.Status
	case models.BookingTransfer:
		b, err := s.TransferRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		current = b.Status
	default:
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidArgument, bookingType)
	}
	if status == current {
		return nil
	}
	if !transitionAllowed(current, status) {
		return fmt.Errorf("%w: cannot move booking from %s to %s", ErrInvalidArgument, current, status)
	}
	if bookingType == models.BookingTour {
		return s.TourRepo.UpdateStatus(ctx, id, status)
	}
	return s.TransferRepo.UpdateStatus(ctx, id, status)
}

func (s *BookingService) DeleteTourBooking(ctx context.Context, id int) error {
	if _, err := s.TourRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.TourRepo.Delete(ctx, id)
}

func (s *BookingService) DeleteTransferBooking(ctx context.Context, id int) error {
	if _, err := s.TransferRepo.Get(ctx, id); err != nil {
		return err
	}
	return s.TransferRepo.Delete(ctx, id)
}
