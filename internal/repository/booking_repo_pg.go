package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// bookingDB is the part of *pgxpool.Pool the booking repository uses.
type bookingDB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGBookingRepository struct {
	db bookingDB
}

func NewPGBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Book runs the conditional seat update and the booking insert in one transaction.
func (r *PGBookingRepository) Book(ctx context.Context, seatID, personID int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE seats SET booked = TRUE, booked_at = now() WHERE seat_id=$1 AND booked = FALSE`, seatID)
	if err != nil {
		return false, fmt.Errorf("update seat %d: %w", seatID, err)
	}
	if tag.RowsAffected() != 1 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `INSERT INTO bookings (seat_id, person_id) VALUES ($1, $2)
		ON CONFLICT (seat_id, person_id) DO NOTHING`, seatID, personID); err != nil {
		return false, fmt.Errorf("insert booking %d/%d: %w", seatID, personID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit booking: %w", err)
	}
	return true, nil
}

func (r *PGBookingRepository) Get(ctx context.Context, seatID, personID int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.QueryRow(ctx, `SELECT seat_id, person_id, created_at FROM bookings WHERE seat_id=$1 AND person_id=$2`, seatID, personID).
		Scan(&b.SeatID, &b.PersonID, &b.CreatedAt)
	if err != nil {
		return nil, notFound(err, "booking %d/%d", seatID, personID)
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
