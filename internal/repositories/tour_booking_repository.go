package repositories

import (
	"context"

	"sevensmile-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TourBookingRepository struct {
	DB *pgxpool.Pool
}

func NewTourBookingRepository(db *pgxpool.Pool) *TourBookingRepository {
	return &TourBookingRepository{DB: db}
}

const tourBookingColumns = `t.id, t.order_id, COALESCE(to_char(t.tour_date, 'YYYY-MM-DD'), '') as tour_date,
        COALESCE(t.tour_pickup_time, '') as tour_pickup_time, t.customer_name,
        t.tour_hotel, t.tour_room_no, t.tour_detail, t.tour_type, t.send_to,
        t.pax_adt, t.pax_chd, t.pax_inf, t.status, t.cost_price, t.selling_price,
        t.payment_status, t.voucher_created, COALESCE(t.note, '') as note,
        t.created_at, t.updated_at`

func scanTourBooking(row interface{ Scan(...any) error }) (*models.TourBooking, error) {
	var b models.TourBooking
	err := row.Scan(&b.ID, &b.OrderID, &b.TourDate, &b.TourPickupTime, &b.CustomerName,
		&b.TourHotel, &b.TourRoomNo, &b.TourDetail, &b.TourType, &b.SendTo,
		&b.PaxAdt, &b.PaxChd, &b.PaxInf, &b.Status, &b.CostPrice, &b.SellingPrice,
		&b.PaymentStatus, &b.VoucherCreated, &b.Note, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *TourBookingRepository) Create(ctx context.Context, b *models.TourBooking) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO tour_bookings(order_id, tour_date, tour_pickup_time, customer_name,
                tour_hotel, tour_room_no, tour_detail, tour_type, send_to,
                pax_adt, pax_chd, pax_inf, status, cost_price, selling_price, note)
         VALUES($1, NULLIF($2, '')::date, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
         RETURNING id, payment_status, voucher_created, created_at, updated_at`,
		b.OrderID, b.TourDate, b.TourPickupTime, b.CustomerName,
		b.TourHotel, b.TourRoomNo, b.TourDetail, b.TourType, b.SendTo,
		b.PaxAdt, b.PaxChd, b.PaxInf, b.Status, b.CostPrice, b.SellingPrice, b.Note,
	).Scan(&b.ID, &b.PaymentStatus, &b.VoucherCreated, &b.CreatedAt, &b.UpdatedAt)
}

func (r *TourBookingRepository) Get(ctx context.Context, id int) (*models.TourBooking, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+tourBookingColumns+` FROM tour_bookings t WHERE t.id=$1`, id)
	return scanTourBooking(row)
}

func (r *TourBookingRepository) ListByOrder(ctx context.Context, orderID int) ([]*models.TourBooking, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+tourBookingColumns+` FROM tour_bookings t
         WHERE t.order_id=$1 ORDER BY t.tour_date, t.tour_pickup_time`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTourBookings(rows)
}

// ListForReport fetches bookings in the inclusive date range, optionally
// restricted to orders of the given agents and/or the given recipients.
// Empty filter slices mean no restriction on that dimension.
func (r *TourBookingRepository) ListForReport(ctx context.Context, startDate, endDate string, agents, recipients []string) ([]*models.TourBooking, error) {
	query := `SELECT ` + tourBookingColumns + ` FROM tour_bookings t
         LEFT JOIN orders o ON o.id = t.order_id
         WHERE t.tour_date >= $1::date AND t.tour_date <= $2::date
           AND t.status <> 'cancelled'`
	args := []any{startDate, endDate}
	if len(agents) > 0 {
		args = append(args, agents)
		query += ` AND o.agent_name = ANY($3)`
	}
	if len(recipients) > 0 {
		args = append(args, recipients)
		if len(agents) > 0 {
			query += ` AND t.send_to = ANY($4)`
		} else {
			query += ` AND t.send_to = ANY($3)`
		}
	}
	query += ` ORDER BY t.tour_date, t.tour_pickup_time`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTourBookings(rows)
}

func collectTourBookings(rows interface {
	Next() bool
	Scan(...any) error
	Close()
}) ([]*models.TourBooking, error) {
	var bookings []*models.TourBooking
	for rows.Next() {
		b, err := scanTourBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *TourBookingRepository) Update(ctx context.Context, b *models.TourBooking) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE tour_bookings SET order_id=$1, tour_date=NULLIF($2, '')::date,
                tour_pickup_time=$3, customer_name=$4, tour_hotel=$5, tour_room_no=$6,
                tour_detail=$7, tour_type=$8, send_to=$9, pax_adt=$10, pax_chd=$11,
                pax_inf=$12, status=$13, cost_price=$14, selling_price=$15,
                payment_status=$16, note=$17, updated_at=NOW()
         WHERE id=$18`,
		b.OrderID, b.TourDate, b.TourPickupTime, b.CustomerName, b.TourHotel, b.TourRoomNo,
		b.TourDetail, b.TourType, b.SendTo, b.PaxAdt, b.PaxChd, b.PaxInf,
		b.Status, b.CostPrice, b.SellingPrice, b.PaymentStatus, b.Note, b.ID)
	return err
}

func (r *TourBookingRepository) UpdateStatus(ctx context.Context, id int, status models.BookingStatus) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE tour_bookings SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	return err
}

func (r *TourBookingRepository) SetVoucherCreated(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE tour_bookings SET voucher_created=TRUE, updated_at=NOW() WHERE id=$1`, id)
	return err
}

func (r *TourBookingRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM tour_bookings WHERE id=$1`, id)
	return err
}
