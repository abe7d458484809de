package services

import (
	"context"
	"fmt"

	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/repositories"
	"sevensmile-backend/internal/timeutil"
)

// VoucherService issues one voucher per booking, numbered per calendar
// year. Re-requesting a voucher for the same booking returns the
// existing one.
type VoucherService struct {
	Repo         *repositories.VoucherRepository
	TourRepo     *repositories.TourBookingRepository
	TransferRepo *repositories.TransferBookingRepository
}

func NewVoucherService(repo *repositories.VoucherRepository, tourRepo *repositories.TourBookingRepository,
	transferRepo *repositories.TransferBookingRepository) *VoucherService {
	return &VoucherService{
		Repo:         repo,
		TourRepo:     tourRepo,
		TransferRepo: transferRepo,
	}
}

// CreateOrGet returns the booking's voucher, issuing it first if none
// exists yet.
func (s *VoucherService) CreateOrGet(ctx context.Context, bookingType models.BookingType, bookingID int) (*models.Voucher, error) {
	switch bookingType {
	case models.BookingTour:
		if _, err := s.TourRepo.Get(ctx, bookingID); err != nil {
			return nil, err
		}
	case models.BookingTransfer:
		if _, err := s.TransferRepo.Get(ctx, bookingID); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown booking type %q", ErrInvalidArgument, bookingType)
	}

	existing, err := s.Repo.GetByBooking(ctx, bookingType, bookingID)
	if err == nil {
		return existing, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	v := &models.Voucher{
		BookingType: bookingType,
		BookingID:   bookingID,
		YearNumber:  timeutil.Now().Year(),
	}
	if err := s.Repo.Create(ctx, v); err != nil {
		return nil, err
	}
	if bookingType == models.BookingTour {
		err = s.TourRepo.SetVoucherCreated(ctx, bookingID)
	} else {
		err = s.TransferRepo.SetVoucherCreated(ctx, bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("mark voucher created: %w", err)
	}
	return v, nil
}

func (s *VoucherService) GetByBooking(ctx context.Context, bookingType models.BookingType, bookingID int) (*models.Voucher, error) {
	return s.Repo.GetByBooking(ctx, bookingType, bookingID)
}

func (s *VoucherService) List(ctx context.Context, year int) ([]*models.Voucher, error) {
	if year == 0 {
		year = timeutil.Now().Year()
	}
	return s.Repo.List(ctx, year)
}
