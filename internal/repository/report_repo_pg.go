package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Reporting reads committed state only; it never mutates inventory.

type FlightLoad struct {
	FlightID       int64   `json:"flight_id"`
	FlightNumber   string  `json:"flight_number"`
	TotalSeats     int     `json:"total_seats"`
	AvailableSeats int     `json:"available_seats"`
	LoadFactor     float64 `json:"load_factor"`
}

type FlightRevenue struct {
	FlightID     int64  `json:"flight_id"`
	FlightNumber string `json:"flight_number"`
	Bookings     int    `json:"bookings"`
	RevenueCents int64  `json:"revenue_cents"`
}

type DailyBookings struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// CounterDrift is one flight whose cached available_seats disagrees with the
// ground truth derived from seats and bookings.
type CounterDrift struct {
	FlightID          int64 `json:"flight_id"`
	AvailableSeats    int   `json:"available_seats"`
	FreeSeats         int   `json:"free_seats"`
	ConfirmedBookings int   `json:"confirmed_bookings"`
}

type ReportRepository interface {
	LoadFactor(ctx context.Context) ([]FlightLoad, error)
	Revenue(ctx context.Context) ([]FlightRevenue, error)
	BookingsPerDay(ctx context.Context) ([]DailyBookings, error)
	AuditCounters(ctx context.Context) ([]CounterDrift, error)
}

type PGReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &PGReportRepository{db: db}
}

func (r *PGReportRepository) LoadFactor(ctx context.Context) ([]FlightLoad, error) {
	rows, err := r.db.Query(ctx, `SELECT id, flight_number, total_seats, available_seats,
		(total_seats - available_seats)::float / total_seats
		FROM flights ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loads := make([]FlightLoad, 0)
	for rows.Next() {
		var l FlightLoad
		if err := rows.Scan(&l.FlightID, &l.FlightNumber, &l.TotalSeats, &l.AvailableSeats, &l.LoadFactor); err != nil {
			return nil, err
		}
		loads = append(loads, l)
	}
	return loads, rows.Err()
}

func (r *PGReportRepository) Revenue(ctx context.Context) ([]FlightRevenue, error) {
	rows, err := r.db.Query(ctx, `SELECT f.id, f.flight_number, count(b.id), coalesce(sum(b.price_cents), 0)
		FROM flights f
		LEFT JOIN bookings b ON b.flight_id = f.id AND b.status = 'CONFIRMED'
		GROUP BY f.id, f.flight_number
		ORDER BY f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	revenues := make([]FlightRevenue, 0)
	for rows.Next() {
		var v FlightRevenue
		if err := rows.Scan(&v.FlightID, &v.FlightNumber, &v.Bookings, &v.RevenueCents); err != nil {
			return nil, err
		}
		revenues = append(revenues, v)
	}
	return revenues, rows.Err()
}

func (r *PGReportRepository) BookingsPerDay(ctx context.Context) ([]DailyBookings, error) {
	rows, err := r.db.Query(ctx, `SELECT date_trunc('day', created_at), count(*)
		FROM bookings GROUP BY 1 ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]DailyBookings, 0)
	for rows.Next() {
		var d DailyBookings
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// AuditCounters returns flights violating
// available_seats == total_seats - occupied == total_seats - confirmed.
// Empty result means the invariant holds everywhere.
func (r *PGReportRepository) AuditCounters(ctx context.Context) ([]CounterDrift, error) {
	rows, err := r.db.Query(ctx, `SELECT id, available_seats, free_seats, confirmed FROM (
			SELECT f.id, f.available_seats,
				f.total_seats - (SELECT count(*) FROM seats s WHERE s.flight_id = f.id AND s.occupied) AS free_seats,
				(SELECT count(*) FROM bookings b WHERE b.flight_id = f.id AND b.status = 'CONFIRMED') AS confirmed,
				f.total_seats
			FROM flights f
		) t
		WHERE available_seats <> free_seats OR total_seats - available_seats <> confirmed`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drifts := make([]CounterDrift, 0)
	for rows.Next() {
		var d CounterDrift
		if err := rows.Scan(&d.FlightID, &d.AvailableSeats, &d.FreeSeats, &d.ConfirmedBookings); err != nil {
			return nil, err
		}
		drifts = append(drifts, d)
	}
	return drifts, rows.Err()
}

var _ ReportRepository = (*PGReportRepository)(nil)
