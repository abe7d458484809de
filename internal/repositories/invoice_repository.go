package repositories

import (
	"context"

	"sevensmile-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

const invoiceColumns = `id, invoice_number, to_char(invoice_date, 'YYYY-MM-DD') as invoice_date,
        payment_ids, total_cost, total_selling_price, total_profit, paid,
        COALESCE(gateway_order_id, '') as gateway_order_id, created_at, updated_at`

func scanInvoice(row interface{ Scan(...any) error }) (*models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.InvoiceDate,
		&inv.PaymentIDs, &inv.TotalCost, &inv.TotalSellingPrice, &inv.TotalProfit,
		&inv.Paid, &inv.GatewayOrderID, &inv.CreatedAt, &inv.UpdatedAt)
	return &inv, err
}

// Create inserts an invoice numbered per year, e.g. IV-2025-0042.
func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	query := `
		WITH next_num AS (
			SELECT COALESCE(COUNT(*), 0) + 1 as num
			FROM invoices
			WHERE date_trunc('year', created_at) = date_trunc('year', NOW())
		)
		INSERT INTO invoices(invoice_number, invoice_date, payment_ids,
		                     total_cost, total_selling_price, total_profit)
		SELECT 'IV-' || to_char(NOW(), 'YYYY') || '-' || LPAD(num::text, 4, '0'),
		       COALESCE(NULLIF($1, '')::date, CURRENT_DATE), $2, $3, $4, $5
		FROM next_num
		RETURNING id, invoice_number, to_char(invoice_date, 'YYYY-MM-DD'), paid, created_at, updated_at`
	return r.DB.QueryRow(ctx, query,
		inv.InvoiceDate, inv.PaymentIDs, inv.TotalCost, inv.TotalSellingPrice, inv.TotalProfit,
	).Scan(&inv.ID, &inv.InvoiceNumber, &inv.InvoiceDate, &inv.Paid, &inv.CreatedAt, &inv.UpdatedAt)
}

func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.Invoice, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id=$1`, id)
	return scanInvoice(row)
}

func (r *InvoiceRepository) List(ctx context.Context) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func (r *InvoiceRepository) ListByMonth(ctx context.Context, year, month int) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices
         WHERE EXTRACT(YEAR FROM invoice_date)=$1 AND EXTRACT(MONTH FROM invoice_date)=$2
         ORDER BY invoice_date`, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

// ListReferencingPayments returns invoices whose payment_ids overlap the
// given set. Used to recompute totals after a payment changes.
func (r *InvoiceRepository) ListReferencingPayments(ctx context.Context, paymentIDs []int) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE payment_ids && $1`, paymentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func collectInvoices(rows interface {
	Next() bool
	Scan(...any) error
	Close()
}) ([]*models.Invoice, error) {
	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (r *InvoiceRepository) UpdateTotals(ctx context.Context, id int, cost, sell, profit float64) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE invoices SET total_cost=$1, total_selling_price=$2, total_profit=$3, updated_at=NOW()
         WHERE id=$4`, cost, sell, profit, id)
	return err
}

func (r *InvoiceRepository) SetPaid(ctx context.Context, id int, paid bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE invoices SET paid=$1, updated_at=NOW() WHERE id=$2`, paid, id)
	return err
}

func (r *InvoiceRepository) SetGatewayOrderID(ctx context.Context, id int, gatewayOrderID string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE invoices SET gateway_order_id=$1, updated_at=NOW() WHERE id=$2`, gatewayOrderID, id)
	return err
}

func (r *InvoiceRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*models.Invoice, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE gateway_order_id=$1`, gatewayOrderID)
	return scanInvoice(row)
}

func (r *InvoiceRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM invoices WHERE id=$1`, id)
	return err
}
