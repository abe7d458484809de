package services

import (
	"bytes"
	"context"
	"fmt"

	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// DocumentService renders printable PDFs: booking vouchers and
// invoices.
type DocumentService struct {
	VoucherSvc   *VoucherService
	InvoiceSvc   *InvoiceService
	PaymentRepo  paymentGetter
	TourRepo     tourGetter
	TransferRepo transferGetter
}

type paymentGetter interface {
	GetByIDs(ctx context.Context, ids []int) ([]*models.Payment, error)
}

type tourGetter interface {
	Get(ctx context.Context, id int) (*models.TourBooking, error)
}

type transferGetter interface {
	Get(ctx context.Context, id int) (*models.TransferBooking, error)
}

func NewDocumentService(voucherSvc *VoucherService, invoiceSvc *InvoiceService,
	paymentRepo paymentGetter, tourRepo tourGetter, transferRepo transferGetter) *DocumentService {
	return &DocumentService{
		VoucherSvc:   voucherSvc,
		InvoiceSvc:   invoiceSvc,
		PaymentRepo:  paymentRepo,
		TourRepo:     tourRepo,
		TransferRepo: transferRepo,
	}
}

// VoucherPDF issues (or fetches) the booking's voucher and renders it.
func (s *DocumentService) VoucherPDF(ctx context.Context, bookingType models.BookingType, bookingID int) (string, []byte, error) {
	voucher, err := s.VoucherSvc.CreateOrGet(ctx, bookingType, bookingID)
	if err != nil {
		return "", nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(180, 12, "Seven Smile Tour - Service Voucher", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(180, 6, fmt.Sprintf("Voucher No: %s", voucher.Number()), "", 1, "C", false, 0, "")
	pdf.CellFormat(180, 6, fmt.Sprintf("Issued: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	switch bookingType {
	case models.BookingTour:
		b, err := s.TourRepo.Get(ctx, bookingID)
		if err != nil {
			return "", nil, err
		}
		writeVoucherRows(pdf, [][2]string{
			{"Service", "Tour"},
			{"Customer", b.CustomerName},
			{"Date", b.TourDate},
			{"Pickup Time", b.TourPickupTime},
			{"Hotel", b.TourHotel},
			{"Room No", b.TourRoomNo},
			{"Detail", b.TourDetail},
			{"Pax", models.FormatPax(b.PaxAdt, b.PaxChd, b.PaxInf)},
			{"Operator", b.SendTo},
			{"Note", b.Note},
		})
	case models.BookingTransfer:
		b, err := s.TransferRepo.Get(ctx, bookingID)
		if err != nil {
			return "", nil, err
		}
		writeVoucherRows(pdf, [][2]string{
			{"Service", "Transfer"},
			{"Customer", b.CustomerName},
			{"Date", b.TransferDate},
			{"Time", b.TransferTime},
			{"Pickup From", b.PickupLocation},
			{"Drop To", b.DropLocation},
			{"Flight", b.TransferFlight},
			{"Flight Time", b.FlightTime},
			{"Pax", models.FormatPax(b.PaxAdt, b.PaxChd, b.PaxInf)},
			{"Operator", b.SendTo},
			{"Note", b.Note},
		})
	default:
		return "", nil, fmt.Errorf("%w: unknown booking type %q", ErrInvalidArgument, bookingType)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", nil, fmt.Errorf("render voucher pdf: %w", err)
	}
	filename := fmt.Sprintf("Voucher_%d-%04d.pdf", voucher.YearNumber, voucher.SequenceNumber)
	return filename, buf.Bytes(), nil
}

func writeVoucherRows(pdf *gofpdf.Fpdf, rows [][2]string) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(180, 8, "Booking Details", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		value := row[1]
		if value == "" {
			value = "-"
		}
		pdf.CellFormat(50, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(130, 7, value, "1", 1, "L", false, 0, "")
	}
}

// InvoicePDF renders the invoice with one line per payment and the
// grand totals.
func (s *DocumentService) InvoicePDF(ctx context.Context, invoiceID int) (string, []byte, error) {
	inv, err := s.InvoiceSvc.GetInvoice(ctx, invoiceID)
	if err != nil {
		return "", nil, err
	}
	payments, err := s.PaymentRepo.GetByIDs(ctx, inv.PaymentIDs)
	if err != nil {
		return "", nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(180, 12, "Seven Smile Tour - Invoice", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(180, 6, fmt.Sprintf("Invoice No: %s", inv.InvoiceNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(180, 6, fmt.Sprintf("Invoice Date: %s", inv.InvoiceDate), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(35, 7, "Payment ID", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Customer", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Agent", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Amount (THB)", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, p := range payments {
		customer := p.FirstName
		if p.LastName != "" {
			customer += " " + p.LastName
		}
		if len(customer) > 30 {
			customer = customer[:27] + "..."
		}
		pdf.CellFormat(35, 6, p.PaymentID, "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, customer, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, p.AgentName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, fmt.Sprintf("%.2f", p.TotalSellingPrice), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(135, 8, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(45, 8, fmt.Sprintf("%.2f", inv.TotalSellingPrice), "1", 1, "R", true, 0, "")

	if inv.Paid {
		pdf.Ln(4)
		pdf.SetFillColor(200, 255, 200)
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(180, 10, "PAID", "1", 1, "C", true, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	filename := fmt.Sprintf("Invoice_%s.pdf", inv.InvoiceNumber)
	return filename, buf.Bytes(), nil
}
