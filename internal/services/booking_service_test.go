package services

import (
	"testing"

	"sevensmile-backend/internal/models"
)

func TestTransitionAllowed(t *testing.T) {
	tests := []struct {
		name string
		from models.BookingStatus
		to   models.BookingStatus
		want bool
	}{
		{name: "pending to booked", from: models.StatusPending, to: models.StatusBooked, want: true},
		{name: "pending to cancelled", from: models.StatusPending, to: models.StatusCancelled, want: true},
		{name: "pending skips to in_progress", from: models.StatusPending, to: models.StatusInProgress, want: false},
		{name: "booked to in_progress", from: models.StatusBooked, to: models.StatusInProgress, want: true},
		{name: "booked straight to completed", from: models.StatusBooked, to: models.StatusCompleted, want: true},
		{name: "booked to cancelled", from: models.StatusBooked, to: models.StatusCancelled, want: true},
		{name: "in_progress to completed", from: models.StatusInProgress, to: models.StatusCompleted, want: true},
		{name: "in_progress to cancelled", from: models.StatusInProgress, to: models.StatusCancelled, want: true},
		{name: "in_progress back to booked", from: models.StatusInProgress, to: models.StatusBooked, want: false},
		{name: "completed is terminal", from: models.StatusCompleted, to: models.StatusCancelled, want: false},
		{name: "cancelled is terminal", from: models.StatusCancelled, to: models.StatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transitionAllowed(tt.from, tt.to); got != tt.want {
				t.Errorf("transitionAllowed(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []models.BookingStatus{
		models.StatusPending, models.StatusBooked, models.StatusInProgress,
		models.StatusCompleted, models.StatusCancelled,
	} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}
	if models.BookingStatus("done").Valid() {
		t.Error("unknown status should be invalid")
	}
}
