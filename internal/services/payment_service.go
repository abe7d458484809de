package services

import (
	"context"
	"fmt"

	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/repositories"
)

// PaymentService manages payment records. A payment freezes snapshots
// of its bookings at save time and carries its own totals; later
// booking edits do not flow back into saved payments.
type PaymentService struct {
	Repo       *repositories.PaymentRepository
	OrderRepo  *repositories.OrderRepository
	InvoiceSvc *InvoiceService
}

func NewPaymentService(repo *repositories.PaymentRepository, orderRepo *repositories.OrderRepository,
	invoiceSvc *InvoiceService) *PaymentService {
	return &PaymentService{
		Repo:       repo,
		OrderRepo:  orderRepo,
		InvoiceSvc: invoiceSvc,
	}
}

func snapshotTotals(bookings []models.BookingSnapshot) (cost, sell, profit float64) {
	for _, b := range bookings {
		cost += b.CostPrice
		sell += b.SellingPrice
	}
	return cost, sell, sell - cost
}

func (s *PaymentService) CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if len(req.Bookings) == 0 {
		return nil, fmt.Errorf("%w: payment needs at least one booking", ErrInvalidArgument)
	}
	if req.OrderID != nil {
		if _, err := s.OrderRepo.Get(ctx, *req.OrderID); err != nil {
			return nil, fmt.Errorf("order %d: %w", *req.OrderID, err)
		}
	}

	cost, sell, profit := snapshotTotals(req.Bookings)
	p := &models.Payment{
		OrderID:           req.OrderID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		AgentName:         req.AgentName,
		Bookings:          req.Bookings,
		TotalCost:         cost,
		TotalSellingPrice: sell,
		TotalProfit:       profit,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, id int) (*models.Payment, error) {
	return s.Repo.Get(ctx, id)
}

func (s *PaymentService) ListPayments(ctx context.Context, invoiced *bool) ([]*models.Payment, error) {
	return s.Repo.List(ctx, invoiced)
}

// UpdatePayment replaces the stored snapshots, recomputes the totals,
// and refreshes any invoice that references this payment.
func (s *PaymentService) UpdatePayment(ctx context.Context, id int, req *models.CreatePaymentRequest) (*models.Payment, error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(req.Bookings) == 0 {
		return nil, fmt.Errorf("%w: payment needs at least one booking", ErrInvalidArgument)
	}

	p.OrderID = req.OrderID
	p.FirstName = req.FirstName
	p.LastName = req.LastName
	p.AgentName = req.AgentName
	p.Bookings = req.Bookings
	p.TotalCost, p.TotalSellingPrice, p.TotalProfit = snapshotTotals(req.Bookings)

	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	if err := s.InvoiceSvc.RefreshTotalsForPayments(ctx, []int{id}); err != nil {
		return nil, fmt.Errorf("refresh invoices for payment %d: %w", id, err)
	}
	return p, nil
}

// DeletePayment refuses to remove a payment that an invoice still
// references.
func (s *PaymentService) DeletePayment(ctx context.Context, id int) error {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.Invoiced {
		return fmt.Errorf("%w: payment %s is invoiced, delete the invoice first", ErrInvalidArgument, p.PaymentID)
	}
	return s.Repo.Delete(ctx, id)
}
