package repositories

import (
	"context"

	"sevensmile-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `id, reference_id, first_name, last_name, agent_id,
        COALESCE(agent_name, '') as agent_name, pax_adt, pax_chd, pax_inf,
        completed, COALESCE(note, '') as note, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.ReferenceID, &o.FirstName, &o.LastName, &o.AgentID,
		&o.AgentName, &o.PaxAdt, &o.PaxChd, &o.PaxInf,
		&o.Completed, &o.Note, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

// Create inserts an order with a generated reference like OR-2501-0042,
// numbered per year+month of creation.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	query := `
		WITH next_num AS (
			SELECT COALESCE(COUNT(*), 0) + 1 as num
			FROM orders
			WHERE date_trunc('month', created_at) = date_trunc('month', NOW())
		)
		INSERT INTO orders(reference_id, first_name, last_name, agent_id, agent_name,
		                   pax_adt, pax_chd, pax_inf, note)
		SELECT 'OR-' || to_char(NOW(), 'YYMM') || '-' || LPAD(num::text, 4, '0'),
		       $1, $2, $3, $4, $5, $6, $7, $8
		FROM next_num
		RETURNING id, reference_id, completed, created_at, updated_at`
	return r.DB.QueryRow(ctx, query,
		o.FirstName, o.LastName, o.AgentID, o.AgentName,
		o.PaxAdt, o.PaxChd, o.PaxInf, o.Note,
	).Scan(&o.ID, &o.ReferenceID, &o.Completed, &o.CreatedAt, &o.UpdatedAt)
}

func (r *OrderRepository) Get(ctx context.Context, id int) (*models.Order, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	return scanOrder(row)
}

func (r *OrderRepository) List(ctx context.Context, completed *bool) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if completed != nil {
		query += ` WHERE completed=$1`
		args = append(args, *completed)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// GetByIDs loads a set of orders keyed by id, for joining agent names
// onto report rows without per-row queries.
func (r *OrderRepository) GetByIDs(ctx context.Context, ids []int) (map[int]*models.Order, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make(map[int]*models.Order, len(ids))
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders[o.ID] = o
	}
	return orders, nil
}

// Search matches reference id, customer name or agent name,
// case-insensitively.
func (r *OrderRepository) Search(ctx context.Context, term string) ([]*models.Order, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
         WHERE reference_id ILIKE '%' || $1 || '%'
            OR first_name ILIKE '%' || $1 || '%'
            OR last_name ILIKE '%' || $1 || '%'
            OR agent_name ILIKE '%' || $1 || '%'
         ORDER BY created_at DESC`, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) Update(ctx context.Context, o *models.Order) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE orders SET first_name=$1, last_name=$2, agent_id=$3, agent_name=$4,
                pax_adt=$5, pax_chd=$6, pax_inf=$7, completed=$8, note=$9, updated_at=NOW()
         WHERE id=$10`,
		o.FirstName, o.LastName, o.AgentID, o.AgentName,
		o.PaxAdt, o.PaxChd, o.PaxInf, o.Completed, o.Note, o.ID)
	return err
}

func (r *OrderRepository) SetCompleted(ctx context.Context, id int, completed bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE orders SET completed=$1, updated_at=NOW() WHERE id=$2`, completed, id)
	return err
}

// Delete removes the order row. Bookings are detached, not deleted:
// both booking tables declare order_id ON DELETE SET NULL.
func (r *OrderRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	return err
}
