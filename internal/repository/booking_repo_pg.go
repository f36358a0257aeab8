package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smetanin/airseats/internal/domain"
)

// Postgres error codes surfaced as domain errors.
const (
	pgLockNotAvailable    = "55P03"
	pgForeignKeyViolation = "23503"
)

type BookingRepository interface {
	// CreateConfirmed runs the whole booking unit atomically: lock the
	// flight row, allocate a seat, occupy it, insert the booking and its
	// payment, decrement available_seats. On error nothing is committed.
	CreateConfirmed(ctx context.Context, booking *domain.Booking, requestedSeat string, payment *domain.Payment) error
	// Cancel flips a CONFIRMED booking to CANCELLED, releases its seat and
	// increments available_seats in one transaction. The payment row is
	// left untouched.
	Cancel(ctx context.Context, id int64) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

func NewBookingRepository(db *pgxpool.Pool, lockTimeout time.Duration) BookingRepository {
	return &PGBookingRepository{db: db, lockTimeout: lockTimeout}
}

func (r *PGBookingRepository) CreateConfirmed(ctx context.Context, booking *domain.Booking, requestedSeat string, payment *domain.Payment) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	available, err := r.lockFlight(ctx, tx, booking.FlightID)
	if err != nil {
		return err
	}
	// Fast-path rejection: a fully booked flight never pays for seat search.
	if available <= 0 {
		return domain.ErrNoSeatsAvailable
	}

	seats, err := listSeats(ctx, tx, booking.FlightID)
	if err != nil {
		return err
	}
	label, err := domain.AllocateSeat(seats, requestedSeat)
	if err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `UPDATE seats SET occupied = TRUE WHERE flight_id=$1 AND label=$2 AND NOT occupied`, booking.FlightID, label)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("seat %s: %w", label, domain.ErrSeatUnavailable)
	}

	booking.SeatLabel = label
	booking.Status = domain.BookingStatusConfirmed
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (reference, flight_id, customer_id, seat_label, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		booking.Reference, booking.FlightID, booking.CustomerID, booking.SeatLabel, booking.PriceCents, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return mapPGError(err)
	}

	payment.BookingID = booking.ID
	if err := tx.QueryRow(ctx, `INSERT INTO payments (booking_id, amount_cents, mode) VALUES ($1, $2, $3) RETURNING id, created_at`,
		payment.BookingID, payment.AmountCents, payment.Mode).
		Scan(&payment.ID, &payment.CreatedAt); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE bookings SET payment_id=$1 WHERE id=$2`, payment.ID, booking.ID); err != nil {
		return err
	}
	booking.PaymentID = &payment.ID

	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now() WHERE id=$1`, booking.FlightID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) Cancel(ctx context.Context, id int64) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	current, err := getBooking(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.BookingStatusConfirmed {
		return nil, domain.ErrBookingAlreadyCancelled
	}

	if _, err := r.lockFlight(ctx, tx, current.FlightID); err != nil {
		return nil, err
	}

	// Guarded update: a concurrent cancel that won the flight lock first has
	// already flipped the status.
	cmd, err := tx.Exec(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 AND status=$3`,
		domain.BookingStatusCancelled, id, domain.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrBookingAlreadyCancelled
	}

	if _, err := tx.Exec(ctx, `UPDATE seats SET occupied = FALSE WHERE flight_id=$1 AND label=$2`, current.FlightID, current.SeatLabel); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + 1, updated_at = now() WHERE id=$1`, current.FlightID); err != nil {
		return nil, err
	}

	updated, err := getBooking(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return getBooking(ctx, r.db, id)
}

// lockFlight takes the exclusive flight row lock that serializes all booking
// and cancellation work for one flight, bounded by lock_timeout so contended
// callers fail fast instead of queueing forever.
func (r *PGBookingRepository) lockFlight(ctx context.Context, tx pgx.Tx, flightID int64) (available int, err error) {
	timeout := r.lockTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", timeout.Milliseconds())); err != nil {
		return 0, err
	}
	err = tx.QueryRow(ctx, `SELECT available_seats FROM flights WHERE id=$1 FOR UPDATE`, flightID).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrFlightNotFound
		}
		return 0, mapPGError(err)
	}
	return available, nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func getBooking(ctx context.Context, q queryRower, id int64) (*domain.Booking, error) {
	row := q.QueryRow(ctx, `SELECT id, reference, flight_id, customer_id, seat_label, price_cents, status, payment_id, created_at, updated_at FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Reference, &b.FlightID, &b.CustomerID, &b.SeatLabel, &b.PriceCents, &b.Status, &b.PaymentID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func listSeats(ctx context.Context, q queryRower, flightID int64) ([]domain.Seat, error) {
	rows, err := q.Query(ctx, `SELECT id, flight_id, label, row_num, letter, occupied FROM seats WHERE flight_id=$1 ORDER BY row_num, letter`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.ID, &s.FlightID, &s.Label, &s.Row, &s.Letter, &s.Occupied); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func mapPGError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgLockNotAvailable:
		return fmt.Errorf("%w: %s", domain.ErrFlightBusy, pgErr.Message)
	case pgForeignKeyViolation:
		if pgErr.ConstraintName == "bookings_customer_id_fkey" {
			return domain.ErrCustomerNotFound
		}
		return err
	default:
		return err
	}
}

var _ BookingRepository = (*PGBookingRepository)(nil)
