package services

import (
	"context"
	"fmt"
	"log"

	"sevensmile-backend/internal/cache"
	"sevensmile-backend/internal/metrics"
	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// columnRef names one place a category's information value leaks into a
// dependent table: either as a foreign key (ByID) or as a denormalized
// text copy.
type columnRef struct {
	Table  string
	Column string
	ByID   bool
}

// referenceColumns is the single registry of denormalized references.
// Adding a new denormalized column is a one-line registration here; an
// unknown category cannot slip through because the switch is exhaustive
// over the closed Category set.
func referenceColumns(c models.Category) []columnRef {
	switch c {
	case models.CategoryAgent:
		return []columnRef{
			{Table: "orders", Column: "agent_id", ByID: true},
			{Table: "orders", Column: "agent_name"},
			{Table: "payments", Column: "agent_name"},
		}
	case models.CategoryTourRecipient:
		return []columnRef{
			{Table: "tour_bookings", Column: "send_to"},
		}
	case models.CategoryTransferRecipient:
		return []columnRef{
			{Table: "transfer_bookings", Column: "send_to"},
		}
	case models.CategoryTourType:
		return []columnRef{
			{Table: "tour_bookings", Column: "tour_type"},
		}
	case models.CategoryTransferType:
		return []columnRef{
			{Table: "transfer_bookings", Column: "transfer_type"},
		}
	case models.CategoryPlace:
		return []columnRef{
			{Table: "tour_bookings", Column: "tour_hotel"},
			{Table: "transfer_bookings", Column: "pickup_location"},
			{Table: "transfer_bookings", Column: "drop_location"},
		}
	}
	return nil
}

// conflictFields is the watch-list of scalar fields compared across
// master and duplicates.
var conflictFields = []string{"description", "phone"}

// ConflictAlternative is one differing duplicate value, tagged with the
// source record's display value for attribution.
type ConflictAlternative struct {
	Value  string `json:"value"`
	Source string `json:"source"`
}

// FieldConflict holds the master's value and every differing duplicate
// value for one watched field.
type FieldConflict struct {
	Field        string                `json:"field"`
	MasterValue  string                `json:"master_value"`
	Alternatives []ConflictAlternative `json:"alternatives"`
}

// ColumnImpact reports how many rows of one mapped column reference the
// duplicate set.
type ColumnImpact struct {
	Table         string `json:"table"`
	Column        string `json:"column"`
	AffectedCount int    `json:"affected_count"`
}

// MergeImpact is the read-only preview shown before a merge is
// confirmed.
type MergeImpact struct {
	Master               *models.InformationRecord   `json:"master"`
	Duplicates           []*models.InformationRecord `json:"duplicates"`
	Conflicts            map[string]*FieldConflict   `json:"conflicts"`
	ColumnImpacts        []ColumnImpact              `json:"column_impacts"`
	TotalAffectedRecords int                         `json:"total_affected_records"`
}

// MergeService implements the de-duplication workflow: impact preview,
// conflict detection, and the merge itself. The merge's write sequence
// runs inside one transaction, so a mid-sequence failure rolls back
// rather than leaving a partially merged state.
type MergeService struct {
	InfoRepo    *repositories.InformationRepository
	MergeRepo   *repositories.MergeRepository
	PaymentRepo *repositories.PaymentRepository
	InvoiceSvc  *InvoiceService
}

func NewMergeService(infoRepo *repositories.InformationRepository, mergeRepo *repositories.MergeRepository,
	paymentRepo *repositories.PaymentRepository, invoiceSvc *InvoiceService) *MergeService {
	return &MergeService{
		InfoRepo:    infoRepo,
		MergeRepo:   mergeRepo,
		PaymentRepo: paymentRepo,
		InvoiceSvc:  invoiceSvc,
	}
}

// normalizeDuplicateIDs validates the requested duplicate set and
// collapses repeated ids, keeping input order.
func normalizeDuplicateIDs(masterID int, duplicateIDs []int) ([]int, error) {
	if len(duplicateIDs) == 0 {
		return nil, fmt.Errorf("%w: empty duplicate set", ErrInvalidArgument)
	}
	seen := make(map[int]struct{}, len(duplicateIDs))
	out := make([]int, 0, len(duplicateIDs))
	for _, id := range duplicateIDs {
		if id == masterID {
			return nil, fmt.Errorf("%w: master %d listed as duplicate", ErrInvalidArgument, masterID)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

// loadRecords fetches master and duplicates in one query and validates
// the set: master must exist, duplicates must be non-empty, all rows
// must share the master's category, and the master must not be listed
// among the duplicates.
func (s *MergeService) loadRecords(ctx context.Context, masterID int, duplicateIDs []int) (*models.InformationRecord, []*models.InformationRecord, error) {
	duplicateIDs, err := normalizeDuplicateIDs(masterID, duplicateIDs)
	if err != nil {
		return nil, nil, err
	}

	ids := append([]int{masterID}, duplicateIDs...)
	records, err := s.InfoRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("load information records: %w", err)
	}

	byID := make(map[int]*models.InformationRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	master, ok := byID[masterID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: master record %d", ErrNotFound, masterID)
	}

	// GetByIDs returns ascending id order; keep that order for the
	// duplicates so back-fill is deterministic (lowest id wins).
	var duplicates []*models.InformationRecord
	for _, rec := range records {
		if rec.ID == masterID {
			continue
		}
		duplicates = append(duplicates, rec)
	}
	if len(duplicates) != len(duplicateIDs) {
		return nil, nil, fmt.Errorf("%w: one or more duplicate records", ErrNotFound)
	}

	for _, d := range duplicates {
		if d.Category != master.Category {
			return nil, nil, fmt.Errorf("%w: record %d has category %q, master has %q",
				ErrInvalidArgument, d.ID, d.Category, master.Category)
		}
	}
	return master, duplicates, nil
}

// PreviewImpact loads the merge candidates and counts, per mapped
// column, the rows that reference the duplicate set. It performs no
// writes and is safe to call repeatedly.
func (s *MergeService) PreviewImpact(ctx context.Context, masterID int, duplicateIDs []int) (*MergeImpact, error) {
	master, duplicates, err := s.loadRecords(ctx, masterID, duplicateIDs)
	if err != nil {
		return nil, err
	}

	dupValues := make([]string, len(duplicates))
	for i, d := range duplicates {
		dupValues[i] = d.Value
	}

	impact := &MergeImpact{
		Master:     master,
		Duplicates: duplicates,
		Conflicts:  DetectConflicts(master, duplicates),
	}

	for _, ref := range referenceColumns(master.Category) {
		var count int
		if ref.ByID {
			count, err = s.MergeRepo.CountWhereIDIn(ctx, ref.Table, ref.Column, duplicateIDs)
		} else {
			count, err = s.MergeRepo.CountWhereValueIn(ctx, ref.Table, ref.Column, dupValues)
		}
		if err != nil {
			return nil, err
		}
		impact.ColumnImpacts = append(impact.ColumnImpacts, ColumnImpact{
			Table:         ref.Table,
			Column:        ref.Column,
			AffectedCount: count,
		})
		impact.TotalAffectedRecords += count
	}
	return impact, nil
}

// Conflicts loads the merge candidates and reports the field conflicts
// that must be resolved before Merge will proceed.
func (s *MergeService) Conflicts(ctx context.Context, masterID int, duplicateIDs []int) (map[string]*FieldConflict, error) {
	master, duplicates, err := s.loadRecords(ctx, masterID, duplicateIDs)
	if err != nil {
		return nil, err
	}
	return DetectConflicts(master, duplicates), nil
}

func fieldValue(rec *models.InformationRecord, field string) string {
	switch field {
	case "description":
		return rec.Description
	case "phone":
		return rec.Phone
	}
	return ""
}

func setFieldValue(rec *models.InformationRecord, field, value string) {
	switch field {
	case "description":
		rec.Description = value
	case "phone":
		rec.Phone = value
	}
}

// DetectConflicts compares the watched fields across master and
// duplicates. A conflict is recorded only when the master's value is
// non-empty and a duplicate holds a different non-empty value; an empty
// master field with filled duplicates is a silent back-fill case, not a
// conflict.
func DetectConflicts(master *models.InformationRecord, duplicates []*models.InformationRecord) map[string]*FieldConflict {
	conflicts := make(map[string]*FieldConflict)
	for _, field := range conflictFields {
		masterValue := fieldValue(master, field)
		if masterValue == "" {
			continue
		}
		for _, d := range duplicates {
			dupValue := fieldValue(d, field)
			if dupValue == "" || dupValue == masterValue {
				continue
			}
			c, ok := conflicts[field]
			if !ok {
				c = &FieldConflict{Field: field, MasterValue: masterValue}
				conflicts[field] = c
			}
			c.Alternatives = append(c.Alternatives, ConflictAlternative{
				Value:  dupValue,
				Source: d.Value,
			})
		}
	}
	return conflicts
}

// mergedFields builds the final scalar field set for the master: the
// master's own values, with empty fields back-filled from the first
// duplicate (in ascending id order) holding a non-empty value, then
// overlaid with the caller's conflict resolutions.
func mergedFields(master *models.InformationRecord, duplicates []*models.InformationRecord, resolutions map[string]string) (*models.InformationRecord, error) {
	conflicts := DetectConflicts(master, duplicates)
	for field := range conflicts {
		if _, ok := resolutions[field]; !ok {
			return nil, fmt.Errorf("%w: unresolved conflict on field %q", ErrInvalidArgument, field)
		}
	}
	for field := range resolutions {
		if _, ok := conflicts[field]; !ok {
			return nil, fmt.Errorf("%w: resolution for field %q with no conflict", ErrInvalidArgument, field)
		}
	}

	merged := *master
	for _, field := range conflictFields {
		if fieldValue(&merged, field) != "" {
			continue
		}
		for _, d := range duplicates {
			if v := fieldValue(d, field); v != "" {
				setFieldValue(&merged, field, v)
				break
			}
		}
	}
	for field, value := range resolutions {
		setFieldValue(&merged, field, value)
	}
	return &merged, nil
}

// Merge absorbs the duplicates into the master: writes the merged
// fields, repoints every mapped reference, and deletes the duplicate
// rows, all in one transaction. Afterwards it refreshes invoice totals
// touched by an agent rename and drops the category's cached list.
func (s *MergeService) Merge(ctx context.Context, masterID int, duplicateIDs []int, resolutions map[string]string) error {
	master, duplicates, err := s.loadRecords(ctx, masterID, duplicateIDs)
	if err != nil {
		return err
	}

	merged, err := mergedFields(master, duplicates, resolutions)
	if err != nil {
		return err
	}

	dupValues := make([]string, len(duplicates))
	for i, d := range duplicates {
		dupValues[i] = d.Value
	}

	err = s.MergeRepo.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.MergeRepo.UpdateMaster(ctx, tx, merged); err != nil {
			return err
		}
		for _, ref := range referenceColumns(master.Category) {
			if ref.ByID {
				if err := s.MergeRepo.RewriteFKColumn(ctx, tx, ref.Table, ref.Column, master.ID, duplicateIDs); err != nil {
					return err
				}
			} else {
				if err := s.MergeRepo.RewriteValueColumn(ctx, tx, ref.Table, ref.Column, master.Value, dupValues); err != nil {
					return err
				}
			}
		}
		return s.MergeRepo.DeleteDuplicates(ctx, tx, duplicateIDs)
	})
	if err != nil {
		return fmt.Errorf("merge %s %q: %w", master.Category, master.Value, err)
	}

	if master.Category == models.CategoryAgent {
		if err := s.refreshInvoicesForAgent(ctx, master.Value); err != nil {
			// The merge itself committed; totals refresh is a follow-up
			// that can be repeated from the invoice endpoints.
			log.Printf("[Merge] invoice totals refresh after agent merge: %v", err)
		}
	}
	cache.InvalidateInformation(ctx, string(master.Category))
	metrics.MergesTotal.WithLabelValues(string(master.Category)).Inc()
	return nil
}

func (s *MergeService) refreshInvoicesForAgent(ctx context.Context, agentName string) error {
	paymentIDs, err := s.PaymentRepo.IDsByAgentName(ctx, agentName)
	if err != nil {
		return err
	}
	if len(paymentIDs) == 0 {
		return nil
	}
	return s.InvoiceSvc.RefreshTotalsForPayments(ctx, paymentIDs)
}
