package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smetanin/airseats/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	ListSeats(ctx context.Context, flightID int64) ([]domain.Seat, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT id, flight_number, from_airport, to_airport, departure_time, arrival_time, total_seats, available_seats, status, created_at, updated_at FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.FlightNumber, &f.FromAirport, &f.ToAirport, &f.DepartureTime, &f.ArrivalTime, &f.TotalSeats, &f.AvailableSeats, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT id, flight_number, from_airport, to_airport, departure_time, arrival_time, total_seats, available_seats, status, created_at, updated_at FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.FromAirport, &f.ToAirport, &f.DepartureTime, &f.ArrivalTime, &f.TotalSeats, &f.AvailableSeats, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Create inserts the flight and its generated seat set in one transaction.
// available_seats starts equal to total_seats and is mutated afterwards only
// by the booking repository.
func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	flight.AvailableSeats = flight.TotalSeats
	if flight.Status == "" {
		flight.Status = domain.FlightStatusScheduled
	}
	if err := tx.QueryRow(ctx, `INSERT INTO flights (flight_number, from_airport, to_airport, departure_time, arrival_time, total_seats, available_seats, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.FromAirport, flight.ToAirport, flight.DepartureTime, flight.ArrivalTime, flight.TotalSeats, flight.AvailableSeats, flight.Status).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, s := range domain.GenerateSeats(flight.TotalSeats) {
		batch.Queue(`INSERT INTO seats (flight_id, label, row_num, letter) VALUES ($1, $2, $3, $4)`, flight.ID, s.Label, s.Row, s.Letter)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert seats: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PGFlightRepository) ListSeats(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `SELECT id, flight_id, label, row_num, letter, occupied FROM seats WHERE flight_id=$1 ORDER BY row_num, letter`, flightID)
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
	if len(seats) == 0 {
		if _, err := r.GetByID(ctx, flightID); err != nil {
			return nil, err
		}
	}
	return seats, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
