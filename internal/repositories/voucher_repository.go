package repositories

import (
	"context"

	"sevensmile-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type VoucherRepository struct {
	DB *pgxpool.Pool
}

func NewVoucherRepository(db *pgxpool.Pool) *VoucherRepository {
	return &VoucherRepository{DB: db}
}

// Create assigns the next sequence number for the given year. The
// unique (year_number, sequence_number) constraint turns the rare
// concurrent race into an insert error instead of a duplicate number.
func (r *VoucherRepository) Create(ctx context.Context, v *models.Voucher) error {
	query := `
		WITH next_seq AS (
			SELECT COALESCE(MAX(sequence_number), 0) + 1 as seq
			FROM vouchers
			WHERE year_number = $3
		)
		INSERT INTO vouchers(booking_type, booking_id, year_number, sequence_number)
		SELECT $1, $2, $3, seq FROM next_seq
		RETURNING id, sequence_number, created_at`
	return r.DB.QueryRow(ctx, query, v.BookingType, v.BookingID, v.YearNumber).
		Scan(&v.ID, &v.SequenceNumber, &v.CreatedAt)
}

func (r *VoucherRepository) GetByBooking(ctx context.Context, bookingType models.BookingType, bookingID int) (*models.Voucher, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, booking_type, booking_id, year_number, sequence_number, created_at
         FROM vouchers WHERE booking_type=$1 AND booking_id=$2`, bookingType, bookingID)

	var v models.Voucher
	err := row.Scan(&v.ID, &v.BookingType, &v.BookingID, &v.YearNumber, &v.SequenceNumber, &v.CreatedAt)
	return &v, err
}

func (r *VoucherRepository) List(ctx context.Context, year int) ([]*models.Voucher, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, booking_type, booking_id, year_number, sequence_number, created_at
         FROM vouchers WHERE year_number=$1 ORDER BY sequence_number DESC`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []*models.Voucher
	for rows.Next() {
		var v models.Voucher
		err := rows.Scan(&v.ID, &v.BookingType, &v.BookingID, &v.YearNumber, &v.SequenceNumber, &v.CreatedAt)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, &v)
	}
	return vouchers, nil
}
