package services

import (
	"context"
	"fmt"
	"strings"

	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/repositories"
)

// OrderService manages customer orders. Pax counts on an order are
// derived from its bookings, not entered directly.
type OrderService struct {
	Repo         *repositories.OrderRepository
	TourRepo     *repositories.TourBookingRepository
	TransferRepo *repositories.TransferBookingRepository
	InfoRepo     *repositories.InformationRepository
}

func NewOrderService(repo *repositories.OrderRepository, tourRepo *repositories.TourBookingRepository,
	transferRepo *repositories.TransferBookingRepository, infoRepo *repositories.InformationRepository) *OrderService {
	return &OrderService{
		Repo:         repo,
		TourRepo:     tourRepo,
		TransferRepo: transferRepo,
		InfoRepo:     infoRepo,
	}
}

// OrderDetail is an order with its attached bookings.
type OrderDetail struct {
	Order            *models.Order             `json:"order"`
	TourBookings     []*models.TourBooking     `json:"tour_bookings"`
	TransferBookings []*models.TransferBooking `json:"transfer_bookings"`
}

func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	if strings.TrimSpace(req.FirstName) == "" && strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidArgument)
	}

	order := &models.Order{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		AgentID:   req.AgentID,
		AgentName: strings.TrimSpace(req.AgentName),
		PaxAdt:    req.PaxAdt,
		PaxChd:    req.PaxChd,
		PaxInf:    req.PaxInf,
		Note:      req.Note,
	}
	if err := s.resolveAgent(ctx, order); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// resolveAgent fills agent_name from the information record when only
// the id was supplied, and verifies the record is an agent.
func (s *OrderService) resolveAgent(ctx context.Context, order *models.Order) error {
	if order.AgentID == nil {
		return nil
	}
	rec, err := s.InfoRepo.Get(ctx, *order.AgentID)
	if err != nil {
		return fmt.Errorf("resolve agent %d: %w", *order.AgentID, err)
	}
	if rec.Category != models.CategoryAgent {
		return fmt.Errorf("%w: information record %d is %s, not agent", ErrInvalidArgument, rec.ID, rec.Category)
	}
	order.AgentName = rec.Value
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int) (*OrderDetail, error) {
	order, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tours, err := s.TourRepo.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	transfers, err := s.TransferRepo.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: order, TourBookings: tours, TransferBookings: transfers}, nil
}

func (s *OrderService) ListOrders(ctx context.Context, completed *bool) ([]*models.Order, error) {
	return s.Repo.List(ctx, completed)
}

func (s *OrderService) SearchOrders(ctx context.Context, term string) ([]*models.Order, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrInvalidArgument)
	}
	return s.Repo.Search(ctx, term)
}

func (s *OrderService) UpdateOrder(ctx context.Context, id int, req *models.UpdateOrderRequest) (*models.Order, error) {
	order, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(req.FirstName); v != "" {
		order.FirstName = v
	}
	if v := strings.TrimSpace(req.LastName); v != "" {
		order.LastName = v
	}
	order.AgentID = req.AgentID
	order.AgentName = strings.TrimSpace(req.AgentName)
	if err := s.resolveAgent(ctx, order); err != nil {
		return nil, err
	}
	order.PaxAdt = req.PaxAdt
	order.PaxChd = req.PaxChd
	order.PaxInf = req.PaxInf
	if req.Completed != nil {
		order.Completed = *req.Completed
	}
	order.Note = req.Note
	if err := s.Repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) SetCompleted(ctx context.Context, id int, completed bool) error {
	return s.Repo.SetCompleted(ctx, id, completed)
}

// RecalculatePax sums pax over the order's non-cancelled bookings and
// stores the result on the order.
func (s *OrderService) RecalculatePax(ctx context.Context, id int) (*models.Order, error) {
	order, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tours, err := s.TourRepo.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	transfers, err := s.TransferRepo.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	var adt, chd, inf int
	for _, b := range tours {
		if b.Status == models.StatusCancelled {
			continue
		}
		adt += b.PaxAdt
		chd += b.PaxChd
		inf += b.PaxInf
	}
	for _, b := range transfers {
		if b.Status == models.StatusCancelled {
			continue
		}
		adt += b.PaxAdt
		chd += b.PaxChd
		inf += b.PaxInf
	}

	order.PaxAdt, order.PaxChd, order.PaxInf = adt, chd, inf
	if err := s.Repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes the order. Its bookings survive with order_id
// cleared by the foreign key, so their history and payments stay
// intact.
func (s *OrderService) DeleteOrder(ctx context.Context, id int) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
