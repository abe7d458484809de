package services

import (
	"context"
	"fmt"
	"strings"

	"sevensmile-backend/internal/cache"
	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/repositories"
)

// InformationService manages the shared reference data (agents,
// recipients, types, places). Category lists are cached; every write
// invalidates the category it touched.
type InformationService struct {
	Repo *repositories.InformationRepository
}

func NewInformationService(repo *repositories.InformationRepository) *InformationService {
	return &InformationService{Repo: repo}
}

func (s *InformationService) Create(ctx context.Context, req *models.CreateInformationRequest) (*models.InformationRecord, error) {
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, req.Category)
	}
	value := strings.TrimSpace(req.Value)
	if value == "" {
		return nil, fmt.Errorf("%w: value is required", ErrInvalidArgument)
	}

	rec := &models.InformationRecord{
		Category:    req.Category,
		Value:       value,
		Description: strings.TrimSpace(req.Description),
		Phone:       strings.TrimSpace(req.Phone),
		Active:      true,
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	cache.InvalidateInformation(ctx, string(rec.Category))
	return rec, nil
}

func (s *InformationService) Get(ctx context.Context, id int) (*models.InformationRecord, error) {
	return s.Repo.Get(ctx, id)
}

// ListByCategory serves active records from the cache when possible,
// falling back to the database on a miss.
func (s *InformationService) ListByCategory(ctx context.Context, category models.Category, activeOnly bool) ([]*models.InformationRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, category)
	}
	if activeOnly {
		var cached []*models.InformationRecord
		if cache.GetInformation(ctx, string(category), &cached) {
			return cached, nil
		}
	}
	records, err := s.Repo.ListByCategory(ctx, category, activeOnly)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		cache.SetInformation(ctx, string(category), records)
	}
	return records, nil
}

func (s *InformationService) Search(ctx context.Context, category models.Category, term string) ([]*models.InformationRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidArgument, category)
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrInvalidArgument)
	}
	return s.Repo.Search(ctx, category, term)
}

func (s *InformationService) Update(ctx context.Context, id int, req *models.UpdateInformationRequest) (*models.InformationRecord, error) {
	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(req.Value); v != "" {
		rec.Value = v
	}
	rec.Description = strings.TrimSpace(req.Description)
	rec.Phone = strings.TrimSpace(req.Phone)
	if req.Active != nil {
		rec.Active = *req.Active
	}
	if err := s.Repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	cache.InvalidateInformation(ctx, string(rec.Category))
	return rec, nil
}

// Delete removes a record outright. Records still referenced by
// bookings keep their denormalized value strings; deleting here does
// not rewrite them, which is what merging is for.
func (s *InformationService) Delete(ctx context.Context, id int) error {
	rec, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateInformation(ctx, string(rec.Category))
	return nil
}
