package services

import (
	"testing"
	"time"

	"sevensmile-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

func TestCombinedSheetSummaryTotals(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	rows := []reportRow{
		{Type: models.BookingTour, Date: "2025-01-05", Time: "09:00", Cost: 100, Sell: 150},
		{Type: models.BookingTransfer, Date: "2025-01-05", Time: "10:00", Cost: 50, Sell: 80},
	}
	if err := writeCombinedSheet(f, "Bookings", rows); err != nil {
		t.Fatalf("writeCombinedSheet: %v", err)
	}

	read := func(cell string) string {
		v, err := f.GetCellValue("Bookings", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		return v
	}

	// Two data rows, so the summary lands on row 4 with the totals in
	// the Cost/Sell/Profit columns.
	if v := read("A4"); v != "Summary" {
		t.Errorf("A4 = %q, want %q", v, "Summary")
	}
	if v := read("P4"); v != "150" {
		t.Errorf("total cost = %q, want 150", v)
	}
	if v := read("Q4"); v != "230" {
		t.Errorf("total sell = %q, want 230", v)
	}
	if v := read("R4"); v != "80" {
		t.Errorf("total profit = %q, want 80", v)
	}
}

func TestGroupByDateOrdersDatesAscending(t *testing.T) {
	rows := []reportRow{
		{Date: "2025-01-05", Customer: "later"},
		{Date: "2025-01-03", Customer: "earlier"},
		{Date: "2025-01-03", Customer: "also earlier"},
	}

	dates, groups := groupByDate(rows)
	if len(dates) != 2 {
		t.Fatalf("got %d dates, want 2", len(dates))
	}
	if dates[0] != "2025-01-03" || dates[1] != "2025-01-05" {
		t.Errorf("dates = %v, want ascending order", dates)
	}
	if len(groups["2025-01-03"]) != 2 || len(groups["2025-01-05"]) != 1 {
		t.Errorf("unexpected group sizes: %v", groups)
	}
}

func TestGroupByDateSortsWithinDateByTime(t *testing.T) {
	rows := []reportRow{
		{Date: "2025-01-03", Time: "", Customer: "no time"},
		{Date: "2025-01-03", Time: "10:00", Customer: "mid morning"},
		{Date: "2025-01-03", Time: "09:00", Customer: "early"},
	}

	_, groups := groupByDate(rows)
	group := groups["2025-01-03"]
	want := []string{"early", "mid morning", "no time"}
	for i, w := range want {
		if group[i].Customer != w {
			t.Errorf("group[%d] = %q, want %q", i, group[i].Customer, w)
		}
	}
}

func TestOrderedRowsFlattensGroups(t *testing.T) {
	rows := []reportRow{
		{Date: "2025-01-05", Time: "08:00", Customer: "d"},
		{Date: "2025-01-03", Time: "14:00", Customer: "b"},
		{Date: "2025-01-03", Time: "", Customer: "c"},
		{Date: "2025-01-03", Time: "09:00", Customer: "a"},
	}

	ordered := orderedRows(rows)
	want := []string{"a", "b", "c", "d"}
	for i, w := range want {
		if ordered[i].Customer != w {
			t.Errorf("ordered[%d] = %q, want %q", i, ordered[i].Customer, w)
		}
	}
}

func TestTimeSortKey(t *testing.T) {
	if got := timeSortKey(""); got != "23:59" {
		t.Errorf("empty time sorts as %q, want 23:59 sentinel", got)
	}
	if got := timeSortKey("09:30"); got != "09:30" {
		t.Errorf("timeSortKey(09:30) = %q", got)
	}
}

func TestReportRowProfit(t *testing.T) {
	r := reportRow{Cost: 1200, Sell: 1500}
	if got := r.profit(); got != 300 {
		t.Errorf("profit = %v, want 300", got)
	}
}

func TestDash(t *testing.T) {
	if got := dash(""); got != "-" {
		t.Errorf("dash(\"\") = %q", got)
	}
	if got := dash("PG8241"); got != "PG8241" {
		t.Errorf("dash(PG8241) = %q", got)
	}
}

func TestFilterDescriptor(t *testing.T) {
	tests := []struct {
		name                           string
		agents, tourRecs, transferRecs []string
		want                           string
	}{
		{name: "no filters", want: "All"},
		{name: "single agent", agents: []string{"Acme"}, want: "Acme"},
		{name: "single tour recipient", tourRecs: []string{"Phuket Tours"}, want: "Phuket Tours"},
		{name: "single transfer recipient", transferRecs: []string{"Smile Vans"}, want: "Smile Vans"},
		{
			name:     "mixed filters use counts",
			agents:   []string{"Acme", "Beta"},
			tourRecs: []string{"Phuket Tours"},
			want:     "2agents-1tour",
		},
		{
			name:         "all three kinds",
			agents:       []string{"Acme"},
			tourRecs:     []string{"Phuket Tours"},
			transferRecs: []string{"Smile Vans", "Krabi Vans"},
			want:         "1agents-1tour-2transfer",
		},
		{
			name:   "several of one kind",
			agents: []string{"Acme", "Beta", "Gamma"},
			want:   "3agents",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDescriptor(tt.agents, tt.tourRecs, tt.transferRecs)
			if got != tt.want {
				t.Errorf("FilterDescriptor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReportFilename(t *testing.T) {
	generated := time.Date(2025, 2, 14, 10, 30, 0, 0, time.UTC)

	opts := ReportOptions{StartDate: "2025-01-03", EndDate: "2025-01-31"}
	got := ReportFilename(opts, generated)
	want := "ReportAll_03012025-31012025_20250214.xlsx"
	if got != want {
		t.Errorf("filename = %q, want %q", got, want)
	}

	opts.Agents = []string{"Acme"}
	got = ReportFilename(opts, generated)
	want = "ReportAcme_03012025-31012025_20250214.xlsx"
	if got != want {
		t.Errorf("filename = %q, want %q", got, want)
	}
}
