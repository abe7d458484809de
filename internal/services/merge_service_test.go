package services

import (
	"errors"
	"testing"

	"sevensmile-backend/internal/models"
)

func rec(id int, value, description, phone string) *models.InformationRecord {
	return &models.InformationRecord{
		ID:          id,
		Category:    models.CategoryAgent,
		Value:       value,
		Description: description,
		Phone:       phone,
	}
}

func TestDetectConflicts(t *testing.T) {
	tests := []struct {
		name       string
		master     *models.InformationRecord
		duplicates []*models.InformationRecord
		wantFields map[string]int // field -> expected alternative count
	}{
		{
			name:       "no conflicts when values match",
			master:     rec(1, "Acme Travel", "main office", "081-111-1111"),
			duplicates: []*models.InformationRecord{rec(2, "Acme", "main office", "081-111-1111")},
			wantFields: map[string]int{},
		},
		{
			name:       "empty master field is a back-fill, not a conflict",
			master:     rec(1, "Acme Travel", "", ""),
			duplicates: []*models.InformationRecord{rec(2, "Acme", "main office", "081-111-1111")},
			wantFields: map[string]int{},
		},
		{
			name:       "empty duplicate field is not a conflict",
			master:     rec(1, "Acme Travel", "main office", "081-111-1111"),
			duplicates: []*models.InformationRecord{rec(2, "Acme", "", "")},
			wantFields: map[string]int{},
		},
		{
			name:       "differing description",
			master:     rec(1, "Acme Travel", "main office", ""),
			duplicates: []*models.InformationRecord{rec(2, "Acme", "branch office", "")},
			wantFields: map[string]int{"description": 1},
		},
		{
			name:   "both fields conflict across several duplicates",
			master: rec(1, "Acme Travel", "main office", "081-111-1111"),
			duplicates: []*models.InformationRecord{
				rec(2, "Acme", "branch office", "082-222-2222"),
				rec(3, "ACME Co", "head office", "081-111-1111"),
			},
			wantFields: map[string]int{"description": 2, "phone": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectConflicts(tt.master, tt.duplicates)
			if len(got) != len(tt.wantFields) {
				t.Fatalf("got %d conflict fields, want %d: %+v", len(got), len(tt.wantFields), got)
			}
			for field, wantCount := range tt.wantFields {
				c, ok := got[field]
				if !ok {
					t.Fatalf("missing conflict for field %q", field)
				}
				if len(c.Alternatives) != wantCount {
					t.Errorf("field %q: got %d alternatives, want %d", field, len(c.Alternatives), wantCount)
				}
			}
		})
	}
}

func TestDetectConflictsAttributesSource(t *testing.T) {
	master := rec(1, "Acme Travel", "main office", "")
	dup := rec(2, "Acme", "branch office", "")

	got := DetectConflicts(master, []*models.InformationRecord{dup})
	c, ok := got["description"]
	if !ok {
		t.Fatal("expected a description conflict")
	}
	if c.MasterValue != "main office" {
		t.Errorf("master value = %q, want %q", c.MasterValue, "main office")
	}
	if c.Alternatives[0].Value != "branch office" || c.Alternatives[0].Source != "Acme" {
		t.Errorf("alternative = %+v, want value %q from source %q", c.Alternatives[0], "branch office", "Acme")
	}
}

func TestNormalizeDuplicateIDs(t *testing.T) {
	tests := []struct {
		name     string
		masterID int
		ids      []int
		want     []int
		wantErr  bool
	}{
		{name: "passes distinct ids through", masterID: 1, ids: []int{2, 3}, want: []int{2, 3}},
		{name: "collapses repeated ids", masterID: 1, ids: []int{2, 2, 3, 2}, want: []int{2, 3}},
		{name: "rejects empty set", masterID: 1, ids: nil, wantErr: true},
		{name: "rejects master listed as duplicate", masterID: 1, ids: []int{2, 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeDuplicateIDs(tt.masterID, tt.ids)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("err = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeDuplicateIDs: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestMergedFields(t *testing.T) {
	t.Run("back-fills empty fields from lowest id first", func(t *testing.T) {
		master := rec(1, "Acme Travel", "", "")
		dups := []*models.InformationRecord{
			rec(2, "Acme", "", "082-222-2222"),
			rec(3, "ACME Co", "head office", "083-333-3333"),
		}

		merged, err := mergedFields(master, dups, nil)
		if err != nil {
			t.Fatalf("mergedFields: %v", err)
		}
		if merged.Phone != "082-222-2222" {
			t.Errorf("phone = %q, want back-fill from first duplicate", merged.Phone)
		}
		if merged.Description != "head office" {
			t.Errorf("description = %q, want back-fill from first non-empty duplicate", merged.Description)
		}
	})

	t.Run("keeps master values when no conflict", func(t *testing.T) {
		master := rec(1, "Acme Travel", "main office", "081-111-1111")
		dups := []*models.InformationRecord{rec(2, "Acme", "", "")}

		merged, err := mergedFields(master, dups, nil)
		if err != nil {
			t.Fatalf("mergedFields: %v", err)
		}
		if merged.Description != "main office" || merged.Phone != "081-111-1111" {
			t.Errorf("master values were not preserved: %+v", merged)
		}
	})

	t.Run("rejects unresolved conflicts", func(t *testing.T) {
		master := rec(1, "Acme Travel", "main office", "")
		dups := []*models.InformationRecord{rec(2, "Acme", "branch office", "")}

		_, err := mergedFields(master, dups, nil)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("err = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("applies resolution over master value", func(t *testing.T) {
		master := rec(1, "Acme Travel", "main office", "")
		dups := []*models.InformationRecord{rec(2, "Acme", "branch office", "")}

		merged, err := mergedFields(master, dups, map[string]string{"description": "branch office"})
		if err != nil {
			t.Fatalf("mergedFields: %v", err)
		}
		if merged.Description != "branch office" {
			t.Errorf("description = %q, want resolution value", merged.Description)
		}
	})

	t.Run("rejects resolution for unknown field", func(t *testing.T) {
		master := rec(1, "Acme Travel", "", "")
		dups := []*models.InformationRecord{rec(2, "Acme", "", "")}

		_, err := mergedFields(master, dups, map[string]string{"value": "Acme"})
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("err = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("rejects resolution for watched field with no conflict", func(t *testing.T) {
		master := rec(1, "Acme Travel", "", "081-111-1111")
		dups := []*models.InformationRecord{rec(2, "Acme", "", "")}

		_, err := mergedFields(master, dups, map[string]string{"phone": "089-999-9999"})
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("err = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("does not mutate the master record", func(t *testing.T) {
		master := rec(1, "Acme Travel", "", "")
		dups := []*models.InformationRecord{rec(2, "Acme", "somewhere", "")}

		if _, err := mergedFields(master, dups, nil); err != nil {
			t.Fatalf("mergedFields: %v", err)
		}
		if master.Description != "" {
			t.Errorf("master was mutated: description = %q", master.Description)
		}
	})
}

func TestReferenceColumns(t *testing.T) {
	tests := []struct {
		category models.Category
		want     []columnRef
	}{
		{
			category: models.CategoryAgent,
			want: []columnRef{
				{Table: "orders", Column: "agent_id", ByID: true},
				{Table: "orders", Column: "agent_name"},
				{Table: "payments", Column: "agent_name"},
			},
		},
		{
			category: models.CategoryTourRecipient,
			want:     []columnRef{{Table: "tour_bookings", Column: "send_to"}},
		},
		{
			category: models.CategoryTransferRecipient,
			want:     []columnRef{{Table: "transfer_bookings", Column: "send_to"}},
		},
		{
			category: models.CategoryTourType,
			want:     []columnRef{{Table: "tour_bookings", Column: "tour_type"}},
		},
		{
			category: models.CategoryTransferType,
			want:     []columnRef{{Table: "transfer_bookings", Column: "transfer_type"}},
		},
		{
			category: models.CategoryPlace,
			want: []columnRef{
				{Table: "tour_bookings", Column: "tour_hotel"},
				{Table: "transfer_bookings", Column: "pickup_location"},
				{Table: "transfer_bookings", Column: "drop_location"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := referenceColumns(tt.category)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d refs, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ref[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}

	// Every category must be mapped; an unmapped category would make a
	// merge silently skip reference rewrites.
	for _, c := range models.Categories {
		if len(referenceColumns(c)) == 0 {
			t.Errorf("category %q has no reference columns", c)
		}
	}
}
