package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/repositories"
	"sevensmile-backend/internal/storage"
	"sevensmile-backend/internal/timeutil"

	"github.com/xuri/excelize/v2"
)

// missingTimeSentinel sorts bookings without a time to the end of their
// date group.
const missingTimeSentinel = "23:59"

// ReportFormat selects the workbook layout.
type ReportFormat string

const (
	FormatCombined ReportFormat = "combined"
	FormatSeparate ReportFormat = "separate"
)

// ReportOptions is the caller-chosen range and filter set.
type ReportOptions struct {
	StartDate          string       `json:"start_date"` // YYYY-MM-DD
	EndDate            string       `json:"end_date"`
	Format             ReportFormat `json:"format"`
	Agents             []string     `json:"agents"`
	TourRecipients     []string     `json:"tour_recipients"`
	TransferRecipients []string     `json:"transfer_recipients"`
}

// reportRow is the unified view of a tour or transfer booking inside
// the workbook.
type reportRow struct {
	Type       models.BookingType
	Date       string
	Time       string
	Agent      string
	Customer   string
	Pax        string
	Hotel      string
	Detail     string
	PickupFrom string
	DropTo     string
	Flight     string
	FlightTime string
	SendTo     string
	Remark     string
	Cost       float64
	Sell       float64
	Note       string
}

func (r reportRow) profit() float64 { return r.Sell - r.Cost }

// ReportService builds the xlsx booking report: groups bookings by
// date, sorts within each date by time-of-day, and renders combined or
// per-type sheets with a summary row.
type ReportService struct {
	TourRepo     *repositories.TourBookingRepository
	TransferRepo *repositories.TransferBookingRepository
	OrderRepo    *repositories.OrderRepository

	archiver *storage.ArchiveUploader
}

func NewReportService(tourRepo *repositories.TourBookingRepository,
	transferRepo *repositories.TransferBookingRepository,
	orderRepo *repositories.OrderRepository) *ReportService {
	return &ReportService{
		TourRepo:     tourRepo,
		TransferRepo: transferRepo,
		OrderRepo:    orderRepo,
	}
}

// SetArchiver wires optional workbook archival to object storage.
func (s *ReportService) SetArchiver(a *storage.ArchiveUploader) {
	s.archiver = a
}

// BuildReport fetches bookings in range, renders the workbook, and
// returns the deterministic filename plus the file bytes. Fails fast
// (no file) on a malformed range or an empty result set.
func (s *ReportService) BuildReport(ctx context.Context, opts ReportOptions) (string, []byte, error) {
	start, err := time.Parse(timeutil.DateLayout, opts.StartDate)
	if err != nil {
		return "", nil, fmt.Errorf("%w: start date %q", ErrInvalidArgument, opts.StartDate)
	}
	end, err := time.Parse(timeutil.DateLayout, opts.EndDate)
	if err != nil {
		return "", nil, fmt.Errorf("%w: end date %q", ErrInvalidArgument, opts.EndDate)
	}
	if start.After(end) {
		return "", nil, fmt.Errorf("%w: start date after end date", ErrInvalidArgument)
	}
	if opts.Format == "" {
		opts.Format = FormatCombined
	}
	if opts.Format != FormatCombined && opts.Format != FormatSeparate {
		return "", nil, fmt.Errorf("%w: unknown report format %q", ErrInvalidArgument, opts.Format)
	}

	tours, err := s.TourRepo.ListForReport(ctx, opts.StartDate, opts.EndDate, opts.Agents, opts.TourRecipients)
	if err != nil {
		return "", nil, fmt.Errorf("fetch tour bookings: %w", err)
	}
	transfers, err := s.TransferRepo.ListForReport(ctx, opts.StartDate, opts.EndDate, opts.Agents, opts.TransferRecipients)
	if err != nil {
		return "", nil, fmt.Errorf("fetch transfer bookings: %w", err)
	}
	if len(tours) == 0 && len(transfers) == 0 {
		return "", nil, fmt.Errorf("%w: no bookings in range %s to %s", ErrNotFound, opts.StartDate, opts.EndDate)
	}

	agentNames, err := s.agentNames(ctx, tours, transfers)
	if err != nil {
		return "", nil, err
	}

	tourRows := make([]reportRow, 0, len(tours))
	for _, b := range tours {
		tourRows = append(tourRows, tourRow(b, agentNames))
	}
	transferRows := make([]reportRow, 0, len(transfers))
	for _, b := range transfers {
		transferRows = append(transferRows, transferRow(b, agentNames))
	}

	f := excelize.NewFile()
	defer f.Close()

	switch opts.Format {
	case FormatCombined:
		all := append(append([]reportRow{}, tourRows...), transferRows...)
		if err := writeCombinedSheet(f, "Report", all); err != nil {
			return "", nil, err
		}
	case FormatSeparate:
		if len(tourRows) > 0 {
			if err := writeTourSheet(f, "Tours", tourRows); err != nil {
				return "", nil, err
			}
		}
		if len(transferRows) > 0 {
			if err := writeTransferSheet(f, "Transfers", transferRows); err != nil {
				return "", nil, err
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", nil, fmt.Errorf("drop default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, fmt.Errorf("render workbook: %w", err)
	}

	filename := ReportFilename(opts, timeutil.Now())
	if s.archiver != nil {
		// Archival is best-effort; the download must not fail on it.
		s.archiver.UploadAsync("reports/"+filename, buf.Bytes(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	}
	return filename, buf.Bytes(), nil
}

func (s *ReportService) agentNames(ctx context.Context, tours []*models.TourBooking, transfers []*models.TransferBooking) (map[int]string, error) {
	idSet := make(map[int]struct{})
	for _, b := range tours {
		if b.OrderID != nil {
			idSet[*b.OrderID] = struct{}{}
		}
	}
	for _, b := range transfers {
		if b.OrderID != nil {
			idSet[*b.OrderID] = struct{}{}
		}
	}
	names := make(map[int]string, len(idSet))
	if len(idSet) == 0 {
		return names, nil
	}
	ids := make([]int, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	orders, err := s.OrderRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch orders for report: %w", err)
	}
	for id, o := range orders {
		names[id] = o.AgentName
	}
	return names, nil
}

func tourRow(b *models.TourBooking, agentNames map[int]string) reportRow {
	agent := ""
	if b.OrderID != nil {
		agent = agentNames[*b.OrderID]
	}
	return reportRow{
		Type:     models.BookingTour,
		Date:     b.TourDate,
		Time:     b.TourPickupTime,
		Agent:    agent,
		Customer: b.CustomerName,
		Pax:      models.FormatPax(b.PaxAdt, b.PaxChd, b.PaxInf),
		Hotel:    b.TourHotel,
		Detail:   b.TourDetail,
		SendTo:   b.SendTo,
		Remark:   b.TourRoomNo,
		Cost:     b.CostPrice,
		Sell:     b.SellingPrice,
		Note:     b.Note,
	}
}

func transferRow(b *models.TransferBooking, agentNames map[int]string) reportRow {
	agent := ""
	if b.OrderID != nil {
		agent = agentNames[*b.OrderID]
	}
	return reportRow{
		Type:       models.BookingTransfer,
		Date:       b.TransferDate,
		Time:       b.TransferTime,
		Agent:      agent,
		Customer:   b.CustomerName,
		Pax:        models.FormatPax(b.PaxAdt, b.PaxChd, b.PaxInf),
		PickupFrom: b.PickupLocation,
		DropTo:     b.DropLocation,
		Flight:     b.TransferFlight,
		FlightTime: b.FlightTime,
		SendTo:     b.SendTo,
		Remark:     b.CarModel,
		Cost:       b.CostPrice,
		Sell:       b.SellingPrice,
		Note:       b.Note,
	}
}

// groupByDate buckets rows by their raw date string and returns the
// sorted keys plus the groups, each group sorted by time-of-day with
// missing times last.
func groupByDate(rows []reportRow) ([]string, map[string][]reportRow) {
	groups := make(map[string][]reportRow)
	for _, r := range rows {
		groups[r.Date] = append(groups[r.Date], r)
	}
	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		group := groups[d]
		sort.SliceStable(group, func(i, j int) bool {
			return timeSortKey(group[i].Time) < timeSortKey(group[j].Time)
		})
		groups[d] = group
	}
	return dates, groups
}

func timeSortKey(t string) string {
	if t == "" {
		return missingTimeSentinel
	}
	return t
}

// orderedRows flattens the date groups into final sheet order.
func orderedRows(rows []reportRow) []reportRow {
	dates, groups := groupByDate(rows)
	out := make([]reportRow, 0, len(rows))
	for _, d := range dates {
		out = append(out, groups[d]...)
	}
	return out
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var combinedHeaders = []string{
	"No.", "Type", "Agent", "Customer Name", "Pax", "Pickup Time", "Hotel", "Details",
	"Pickup From", "Drop To", "Flight", "Flight Time", "Send To", "Remark", "",
	"Cost", "Sell", "Profit", "Note",
}

func writeCombinedSheet(f *excelize.File, sheet string, rows []reportRow) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	ordered := orderedRows(rows)
	cells := make([][]any, 0, len(ordered))
	var totalCost, totalSell float64
	for i, r := range ordered {
		tourOnly := r.Type == models.BookingTour
		hotel, detail := "-", "-"
		pickupFrom, dropTo, flight, flightTime := "-", "-", "-", "-"
		if tourOnly {
			hotel, detail = dash(r.Hotel), dash(r.Detail)
		} else {
			pickupFrom, dropTo = dash(r.PickupFrom), dash(r.DropTo)
			flight, flightTime = dash(r.Flight), dash(r.FlightTime)
		}
		cells = append(cells, []any{
			i + 1, string(r.Type), r.Agent, r.Customer, r.Pax, dash(r.Time), hotel, detail,
			pickupFrom, dropTo, flight, flightTime, r.SendTo, r.Remark, "",
			r.Cost, r.Sell, r.profit(), r.Note,
		})
		totalCost += r.Cost
		totalSell += r.Sell
	}
	return renderSheet(f, sheet, combinedHeaders, cells, 16, totalCost, totalSell)
}

var tourHeaders = []string{
	"No.", "Agent", "Customer Name", "Pax", "Pickup Time", "Hotel", "Details",
	"Send To", "Remark", "Cost", "Sell", "Profit", "Note",
}

func writeTourSheet(f *excelize.File, sheet string, rows []reportRow) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	ordered := orderedRows(rows)
	cells := make([][]any, 0, len(ordered))
	var totalCost, totalSell float64
	for i, r := range ordered {
		cells = append(cells, []any{
			i + 1, r.Agent, r.Customer, r.Pax, dash(r.Time), dash(r.Hotel), dash(r.Detail),
			r.SendTo, r.Remark, r.Cost, r.Sell, r.profit(), r.Note,
		})
		totalCost += r.Cost
		totalSell += r.Sell
	}
	return renderSheet(f, sheet, tourHeaders, cells, 10, totalCost, totalSell)
}

var transferHeaders = []string{
	"No.", "Agent", "Customer Name", "Pax", "Time", "Pickup From", "Drop To",
	"Flight", "Flight Time", "Send To", "Remark", "Cost", "Sell", "Profit", "Note",
}

func writeTransferSheet(f *excelize.File, sheet string, rows []reportRow) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	ordered := orderedRows(rows)
	cells := make([][]any, 0, len(ordered))
	var totalCost, totalSell float64
	for i, r := range ordered {
		cells = append(cells, []any{
			i + 1, r.Agent, r.Customer, r.Pax, dash(r.Time), dash(r.PickupFrom), dash(r.DropTo),
			dash(r.Flight), dash(r.FlightTime), r.SendTo, r.Remark, r.Cost, r.Sell, r.profit(), r.Note,
		})
		totalCost += r.Cost
		totalSell += r.Sell
	}
	return renderSheet(f, sheet, transferHeaders, cells, 12, totalCost, totalSell)
}

// renderSheet writes the header row, the data rows, and the trailing
// summary row. costCol is the 1-based column of the Cost cell; Sell and
// Profit follow it.
func renderSheet(f *excelize.File, sheet string, headers []string, rows [][]any, costCol int, totalCost, totalSell float64) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border: []excelize.Border{
			{Type: "top", Color: "000000", Style: 2},
		},
	})
	if err != nil {
		return fmt.Errorf("summary style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	// Summary row: label merged across the leading columns, then the
	// three sheet-wide totals.
	summaryRow := len(rows) + 2
	labelEnd, err := excelize.CoordinatesToCellName(costCol-1, summaryRow)
	if err != nil {
		return err
	}
	labelStart, err := excelize.CoordinatesToCellName(1, summaryRow)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, labelStart, labelEnd); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, labelStart, "Summary"); err != nil {
		return err
	}
	totals := []float64{totalCost, totalSell, totalSell - totalCost}
	for i, v := range totals {
		cell, err := excelize.CoordinatesToCellName(costCol+i, summaryRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	rowEnd, err := excelize.CoordinatesToCellName(len(headers), summaryRow)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, labelStart, rowEnd, summaryStyle)
}

// FilterDescriptor names the active filter set for the report filename:
// "All" with no filters, the single filter's display value when exactly
// one is active, or a counts summary like "2agents-1tour".
func FilterDescriptor(agents, tourRecipients, transferRecipients []string) string {
	total := len(agents) + len(tourRecipients) + len(transferRecipients)
	switch total {
	case 0:
		return "All"
	case 1:
		if len(agents) == 1 {
			return agents[0]
		}
		if len(tourRecipients) == 1 {
			return tourRecipients[0]
		}
		return transferRecipients[0]
	}
	var parts []string
	if len(agents) > 0 {
		parts = append(parts, fmt.Sprintf("%dagents", len(agents)))
	}
	if len(tourRecipients) > 0 {
		parts = append(parts, fmt.Sprintf("%dtour", len(tourRecipients)))
	}
	if len(transferRecipients) > 0 {
		parts = append(parts, fmt.Sprintf("%dtransfer", len(transferRecipients)))
	}
	descriptor := parts[0]
	for _, p := range parts[1:] {
		descriptor += "-" + p
	}
	return descriptor
}

// ReportFilename is deterministic for a given option set and
// generation day: Report{Descriptor}_{startDDMMYYYY}-{endDDMMYYYY}_{genYYYYMMDD}.xlsx.
func ReportFilename(opts ReportOptions, generatedAt time.Time) string {
	start, _ := time.Parse(timeutil.DateLayout, opts.StartDate)
	end, _ := time.Parse(timeutil.DateLayout, opts.EndDate)
	return fmt.Sprintf("Report%s_%s-%s_%s.xlsx",
		FilterDescriptor(opts.Agents, opts.TourRecipients, opts.TransferRecipients),
		start.Format("02012006"),
		end.Format("02012006"),
		generatedAt.Format("20060102"))
}
