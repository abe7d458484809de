package repositories

import (
	"context"

	"sevensmile-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TransferBookingRepository struct {
	DB *pgxpool.Pool
}

func NewTransferBookingRepository(db *pgxpool.Pool) *TransferBookingRepository {
	return &TransferBookingRepository{DB: db}
}

const transferBookingColumns = `t.id, t.order_id, COALESCE(to_char(t.transfer_date, 'YYYY-MM-DD'), '') as transfer_date,
        COALESCE(t.transfer_time, '') as transfer_time, t.customer_name,
        t.pickup_location, t.drop_location, t.transfer_flight, t.flight_time,
        t.transfer_type, t.send_to, t.car_model, t.license_plate, t.driver_name,
        t.pax_adt, t.pax_chd, t.pax_inf, t.status, t.cost_price, t.selling_price,
        t.payment_status, t.voucher_created, COALESCE(t.note, '') as note,
        t.created_at, t.updated_at`

func scanTransferBooking(row interface{ Scan(...any) error }) (*models.TransferBooking, error) {
	var b models.TransferBooking
	err := row.Scan(&b.ID, &b.OrderID, &b.TransferDate, &b.TransferTime, &b.CustomerName,
		&b.PickupLocation, &b.DropLocation, &b.TransferFlight, &b.FlightTime,
		&b.TransferType, &b.SendTo, &b.CarModel, &b.LicensePlate, &b.DriverName,
		&b.PaxAdt, &b.PaxChd, &b.PaxInf, &b.Status, &b.CostPrice, &b.SellingPrice,
		&b.PaymentStatus, &b.VoucherCreated, &b.Note, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *TransferBookingRepository) Create(ctx context.Context, b *models.TransferBooking) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO transfer_bookings(order_id, transfer_date, transfer_time, customer_name,
                pickup_location, drop_location, transfer_flight, flight_time, transfer_type,
                send_to, car_model, license_plate, driver_name,
                pax_adt, pax_chd, pax_inf, status, cost_price, selling_price, note)
         VALUES($1, NULLIF($2, '')::date, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
                $14, $15, $16, $17, $18, $19, $20)
         RETURNING id, payment_status, voucher_created, created_at, updated_at`,
		b.OrderID, b.TransferDate, b.TransferTime, b.CustomerName,
		b.PickupLocation, b.DropLocation, b.TransferFlight, b.FlightTime, b.TransferType,
		b.SendTo, b.CarModel, b.LicensePlate, b.DriverName,
		b.PaxAdt, b.PaxChd, b.PaxInf, b.Status, b.CostPrice, b.SellingPrice, b.Note,
	).Scan(&b.ID, &b.PaymentStatus, &b.VoucherCreated, &b.CreatedAt, &b.UpdatedAt)
}

func (r *TransferBookingRepository) Get(ctx context.Context, id int) (*models.TransferBooking, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+transferBookingColumns+` FROM transfer_bookings t WHERE t.id=$1`, id)
	return scanTransferBooking(row)
}

func (r *TransferBookingRepository) ListByOrder(ctx context.Context, orderID int) ([]*models.TransferBooking, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+transferBookingColumns+` FROM transfer_bookings t
         WHERE t.order_id=$1 ORDER BY t.transfer_date, t.transfer_time`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransferBookings(rows)
}

// ListForReport mirrors TourBookingRepository.ListForReport for the
// transfer table.
func (r *TransferBookingRepository) ListForReport(ctx context.Context, startDate, endDate string, agents, recipients []string) ([]*models.TransferBooking, error) {
	query := `SELECT ` + transferBookingColumns + ` FROM transfer_bookings t
         LEFT JOIN orders o ON o.id = t.order_id
         WHERE t.transfer_date >= $1::date AND t.transfer_date <= $2::date
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
	query += ` ORDER BY t.transfer_date, t.transfer_time`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransferBookings(rows)
}

func collectTransferBookings(rows interface {
	Next() bool
	Scan(...any) error
	Close()
}) ([]*models.TransferBooking, error) {
	var bookings []*models.TransferBooking
	for rows.Next() {
		b, err := scanTransferBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *TransferBookingRepository) Update(ctx context.Context, b *models.TransferBooking) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE transfer_bookings SET order_id=$1, transfer_date=NULLIF($2, '')::date,
                transfer_time=$3, customer_name=$4, pickup_location=$5, drop_location=$6,
                transfer_flight=$7, flight_time=$8, transfer_type=$9, send_to=$10,
                car_model=$11, license_plate=$12, driver_name=$13,
                pax_adt=$14, pax_chd=$15, pax_inf=$16, status=$17,
                cost_price=$18, selling_price=$19, payment_status=$20, note=$21, updated_at=NOW()
         WHERE id=$22`,
		b.OrderID, b.TransferDate, b.TransferTime, b.CustomerName, b.PickupLocation, b.DropLocation,
		b.TransferFlight, b.FlightTime, b.TransferType, b.SendTo,
		b.CarModel, b.LicensePlate, b.DriverName,
		b.PaxAdt, b.PaxChd, b.PaxInf, b.Status,
		b.CostPrice, b.SellingPrice, b.PaymentStatus, b.Note, b.ID)
	return err
}

func (r *TransferBookingRepository) UpdateStatus(ctx context.Context, id int, status models.BookingStatus) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE transfer_bookings SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	return err
}

func (r *TransferBookingRepository) SetVoucherCreated(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE transfer_bookings SET voucher_created=TRUE, updated_at=NOW() WHERE id=$1`, id)
	return err
}

func (r *TransferBookingRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM transfer_bookings WHERE id=$1`, id)
	return err
}
