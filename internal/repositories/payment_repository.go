package repositories

import (
	"context"
	"encoding/json"

	"sevensmile-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

const paymentColumns = `id, payment_id, order_id, first_name, last_name,
        COALESCE(agent_name, '') as agent_name, bookings,
        total_cost, total_selling_price, total_profit, invoiced, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var p models.Payment
	var bookingsJSON []byte
	err := row.Scan(&p.ID, &p.PaymentID, &p.OrderID, &p.FirstName, &p.LastName,
		&p.AgentName, &bookingsJSON,
		&p.TotalCost, &p.TotalSellingPrice, &p.TotalProfit, &p.Invoiced,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(bookingsJSON, &p.Bookings); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a payment with a generated display reference like
// PM-2501-0042 and the booking snapshot serialized as JSONB.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	bookingsJSON, err := json.Marshal(p.Bookings)
	if err != nil {
		return err
	}
	query := `
		WITH next_num AS (
			SELECT COALESCE(COUNT(*), 0) + 1 as num
			FROM payments
			WHERE date_trunc('month', created_at) = date_trunc('month', NOW())
		)
		INSERT INTO payments(payment_id, order_id, first_name, last_name, agent_name,
		                     bookings, total_cost, total_selling_price, total_profit)
		SELECT 'PM-' || to_char(NOW(), 'YYMM') || '-' || LPAD(num::text, 4, '0'),
		       $1, $2, $3, $4, $5, $6, $7, $8
		FROM next_num
		RETURNING id, payment_id, invoiced, created_at, updated_at`
	return r.DB.QueryRow(ctx, query,
		p.OrderID, p.FirstName, p.LastName, p.AgentName,
		bookingsJSON, p.TotalCost, p.TotalSellingPrice, p.TotalProfit,
	).Scan(&p.ID, &p.PaymentID, &p.Invoiced, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PaymentRepository) Get(ctx context.Context, id int) (*models.Payment, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id)
	return scanPayment(row)
}

func (r *PaymentRepository) GetByIDs(ctx context.Context, ids []int) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (r *PaymentRepository) List(ctx context.Context, invoiced *bool) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments`
	args := []any{}
	if invoiced != nil {
		query += ` WHERE invoiced=$1`
		args = append(args, *invoiced)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func collectPayments(rows interface {
	Next() bool
	Scan(...any) error
	Close()
}) ([]*models.Payment, error) {
	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// Update replaces the snapshot and totals of an existing payment.
func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment) error {
	bookingsJSON, err := json.Marshal(p.Bookings)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx,
		`UPDATE payments SET first_name=$1, last_name=$2, agent_name=$3, bookings=$4,
                total_cost=$5, total_selling_price=$6, total_profit=$7, updated_at=NOW()
         WHERE id=$8`,
		p.FirstName, p.LastName, p.AgentName, bookingsJSON,
		p.TotalCost, p.TotalSellingPrice, p.TotalProfit, p.ID)
	return err
}

// IDsByAgentName returns payment ids carrying the given denormalized
// agent name. The merge engine uses it to find invoices whose totals
// may need refreshing after an agent merge.
func (r *PaymentRepository) IDsByAgentName(ctx context.Context, agentName string) ([]int, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id FROM payments WHERE agent_name=$1`, agentName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *PaymentRepository) SetInvoiced(ctx context.Context, ids []int, invoiced bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE payments SET invoiced=$1, updated_at=NOW() WHERE id = ANY($2)`, invoiced, ids)
	return err
}

func (r *PaymentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM payments WHERE id=$1`, id)
	return err
}
