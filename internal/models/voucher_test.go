package models

import "testing"

func TestVoucherNumber(t *testing.T) {
	tests := []struct {
		year, seq int
		want      string
	}{
		{2025, 142, "2025/0142"},
		{2025, 1, "2025/0001"},
		{2026, 12345, "2026/12345"},
	}

	for _, tt := range tests {
		v := &Voucher{YearNumber: tt.year, SequenceNumber: tt.seq}
		if got := v.Number(); got != tt.want {
			t.Errorf("Number() = %q, want %q", got, tt.want)
		}
	}
}
