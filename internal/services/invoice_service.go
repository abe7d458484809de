package services

import (
	"context"
	"fmt"

	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/repositories"
)

// InvoiceService builds invoices over payments. Invoice totals are
// always recomputed from the referenced payment rows; they are never
// edited directly.
type InvoiceService struct {
	Repo        *repositories.InvoiceRepository
	PaymentRepo *repositories.PaymentRepository
}

func NewInvoiceService(repo *repositories.InvoiceRepository, paymentRepo *repositories.PaymentRepository) *InvoiceService {
	return &InvoiceService{Repo: repo, PaymentRepo: paymentRepo}
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	if len(req.PaymentIDs) == 0 {
		return nil, fmt.Errorf("%w: invoice needs at least one payment", ErrInvalidArgument)
	}
	payments, err := s.PaymentRepo.GetByIDs(ctx, req.PaymentIDs)
	if err != nil {
		return nil, err
	}
	if len(payments) != len(req.PaymentIDs) {
		return nil, fmt.Errorf("%w: one or more payments do not exist", ErrNotFound)
	}
	for _, p := range payments {
		if p.Invoiced {
			return nil, fmt.Errorf("%w: payment %s already belongs to an invoice", ErrInvalidArgument, p.PaymentID)
		}
	}

	var cost, sell float64
	for _, p := range payments {
		cost += p.TotalCost
		sell += p.TotalSellingPrice
	}
	inv := &models.Invoice{
		InvoiceDate:       req.InvoiceDate,
		PaymentIDs:        req.PaymentIDs,
		TotalCost:         cost,
		TotalSellingPrice: sell,
		TotalProfit:       sell - cost,
	}
	if err := s.Repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.PaymentRepo.SetInvoiced(ctx, req.PaymentIDs, true); err != nil {
		return nil, fmt.Errorf("mark payments invoiced: %w", err)
	}
	return inv, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	return s.Repo.Get(ctx, id)
}

func (s *InvoiceService) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	return s.Repo.List(ctx)
}

func (s *InvoiceService) ListByMonth(ctx context.Context, year, month int) ([]*models.Invoice, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d out of range", ErrInvalidArgument, month)
	}
	return s.Repo.ListByMonth(ctx, year, month)
}

// RefreshTotalsForPayments recomputes totals for every invoice that
// references any of the given payments. Used after a payment edit and
// after an agent merge rewrites payment rows.
func (s *InvoiceService) RefreshTotalsForPayments(ctx context.Context, paymentIDs []int) error {
	if len(paymentIDs) == 0 {
		return nil
	}
	invoices, err := s.Repo.ListReferencingPayments(ctx, paymentIDs)
	if err != nil {
		return err
	}
	for _, inv := range invoices {
		payments, err := s.PaymentRepo.GetByIDs(ctx, inv.PaymentIDs)
		if err != nil {
			return fmt.Errorf("invoice %s: %w", inv.InvoiceNumber, err)
		}
		var cost, sell float64
		for _, p := range payments {
			cost += p.TotalCost
			sell += p.TotalSellingPrice
		}
		if err := s.Repo.UpdateTotals(ctx, inv.ID, cost, sell, sell-cost); err != nil {
			return fmt.Errorf("invoice %s: %w", inv.InvoiceNumber, err)
		}
	}
	return nil
}

func (s *InvoiceService) SetPaid(ctx context.Context, id int, paid bool) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return err
	}
	return s.Repo.SetPaid(ctx, id, paid)
}

// DeleteInvoice removes the invoice and releases its payments back to
// the uninvoiced pool.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id int) error {
	inv, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.PaymentRepo.SetInvoiced(ctx, inv.PaymentIDs, false)
}
