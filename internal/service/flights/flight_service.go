package flights

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/smetanin/airseats/internal/domain"
	"github.com/smetanin/airseats/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	SeatMap(ctx context.Context, flightID int64) ([]domain.Seat, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	flights repository.FlightRepository
	cache   Cache
}

type CreateFlightInput struct {
	FlightNumber  string    `json:"flight_number"`
	FromAirport   string    `json:"from_airport"`
	ToAirport     string    `json:"to_airport"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	TotalSeats    int       `json:"total_seats"`
}

func NewFlightService(flights repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{flights: flights, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err != nil {
			log.Printf("flights cache read: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			log.Printf("flights cache write: %v", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if input.FlightNumber == "" {
		return nil, fmt.Errorf("%w: flight number is required", domain.ErrInvalidInput)
	}
	if input.FromAirport == "" || input.ToAirport == "" {
		return nil, fmt.Errorf("%w: origin and destination are required", domain.ErrInvalidInput)
	}
	if input.TotalSeats <= 0 {
		return nil, fmt.Errorf("%w: total seats must be positive", domain.ErrInvalidInput)
	}
	if !input.ArrivalTime.After(input.DepartureTime) {
		return nil, fmt.Errorf("%w: arrival must be after departure", domain.ErrInvalidInput)
	}

	flight := &domain.Flight{
		FlightNumber:  input.FlightNumber,
		FromAirport:   input.FromAirport,
		ToAirport:     input.ToAirport,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
		TotalSeats:    input.TotalSeats,
	}
	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			log.Printf("invalidate flights cache: %v", err)
		}
	}
	return flight, nil
}

func (s *FlightService) SeatMap(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	return s.flights.ListSeats(ctx, flightID)
}

var _ FlightUseCase = (*FlightService)(nil)
