package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smetanin/airseats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) ListSeats(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func validCreateInput() CreateFlightInput {
	departure := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return CreateFlightInput{
		FlightNumber:  "SU-100",
		FromAirport:   "SVO",
		ToAirport:     "LED",
		DepartureTime: departure,
		ArrivalTime:   departure.Add(90 * time.Minute),
		TotalSeats:    120,
	}
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	cached := []domain.Flight{{ID: 1, FlightNumber: "SU-100"}}
	mockCache.On("GetFlights", ctx).Return(cached, nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, flights)
	mockRepo.AssertNotCalled(t, "List")
	mockCache.AssertExpectations(t)
}

func TestFlightService_List_CacheMissFallsBackToRepo(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	stored := []domain.Flight{{ID: 1}, {ID: 2}}
	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(stored, nil).Once()
	mockCache.On("SetFlights", ctx, stored).Return(nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, stored, flights)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_List_CacheErrorIsNotFatal(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	stored := []domain.Flight{{ID: 1}}
	mockCache.On("GetFlights", ctx).Return(nil, errors.New("redis down")).Once()
	mockRepo.On("List", ctx).Return(stored, nil).Once()
	mockCache.On("SetFlights", ctx, stored).Return(errors.New("redis down")).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, stored, flights)
}

func TestFlightService_Create_Success(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Flight")).
		Run(func(args mock.Arguments) {
			f := args.Get(1).(*domain.Flight)
			f.ID = 10
			f.AvailableSeats = f.TotalSeats
			f.Status = domain.FlightStatusScheduled
		}).
		Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	flight, err := service.Create(ctx, validCreateInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(10), flight.ID)
	assert.Equal(t, 120, flight.AvailableSeats)
	assert.Equal(t, domain.FlightStatusScheduled, flight.Status)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Create_ValidationErrors(t *testing.T) {
	service := NewFlightService(&MockFlightRepository{}, nil)
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*CreateFlightInput)
	}{
		{name: "missing flight number", mutate: func(in *CreateFlightInput) { in.FlightNumber = "" }},
		{name: "missing origin", mutate: func(in *CreateFlightInput) { in.FromAirport = "" }},
		{name: "zero seats", mutate: func(in *CreateFlightInput) { in.TotalSeats = 0 }},
		{name: "arrival before departure", mutate: func(in *CreateFlightInput) { in.ArrivalTime = in.DepartureTime.Add(-time.Hour) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput()
			tc.mutate(&input)

			flight, err := service.Create(ctx, input)
			assert.Nil(t, flight)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestFlightService_SeatMap(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	seats := []domain.Seat{{Label: "1A"}, {Label: "1B", Occupied: true}}
	mockRepo.On("ListSeats", ctx, int64(1)).Return(seats, nil).Once()

	got, err := service.SeatMap(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, seats, got)
}

func TestFlightService_GetByID_NotFound(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, int64(404)).Return(nil, domain.ErrFlightNotFound).Once()

	flight, err := service.GetByID(ctx, 404)

	assert.Nil(t, flight)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}
