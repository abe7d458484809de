package models

import "testing"

func TestFormatPax(t *testing.T) {
	tests := []struct {
		name          string
		adt, chd, inf int
		want          string
	}{
		{name: "adults only", adt: 2, want: "2"},
		{name: "adults and children", adt: 2, chd: 1, want: "2+1"},
		{name: "all three", adt: 2, chd: 1, inf: 1, want: "2+1+1"},
		{name: "children only", chd: 3, want: "3"},
		{name: "infants only", inf: 1, want: "1"},
		{name: "children and infants", chd: 2, inf: 1, want: "2+1"},
		{name: "all zero", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPax(tt.adt, tt.chd, tt.inf); got != tt.want {
				t.Errorf("FormatPax(%d, %d, %d) = %q, want %q", tt.adt, tt.chd, tt.inf, got, tt.want)
			}
		})
	}
}

func TestOrderPax(t *testing.T) {
	o := &Order{PaxAdt: 2, PaxChd: 1}
	if got := o.Pax(); got != "2+1" {
		t.Errorf("Pax() = %q, want 2+1", got)
	}
}
