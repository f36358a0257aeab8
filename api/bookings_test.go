package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smetanin/airseats/internal/domain"
	"github.com/smetanin/airseats/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) MakeBooking(ctx context.Context, input booking.MakeBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := createBookingRequest{
		FlightID:    1,
		CustomerID:  7,
		Seat:        "1A",
		AmountCents: 9900,
		PaymentMode: "CARD",
	}
	body, _ := json.Marshal(req)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Booking{
		ID:         1,
		Reference:  "ref-123",
		FlightID:   1,
		CustomerID: 7,
		SeatLabel:  "1A",
		PriceCents: 9900,
		Status:     domain.BookingStatusConfirmed,
	}

	mockService.On("MakeBooking", c.Request.Context(), booking.MakeBookingInput{
		FlightID:    1,
		CustomerID:  7,
		SeatLabel:   "1A",
		AmountCents: 9900,
		PaymentMode: domain.PaymentModeCard,
	}).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ref-123", response.Reference)
	assert.Equal(t, "1A", response.Seat)
	assert.Equal(t, string(domain.BookingStatusConfirmed), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_errorMapping(t *testing.T) {
	testCases := []struct {
		err  error
		code int
	}{
		{err: fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalidInput), code: http.StatusBadRequest},
		{err: domain.ErrFlightNotFound, code: http.StatusNotFound},
		{err: domain.ErrCustomerNotFound, code: http.StatusNotFound},
		{err: domain.ErrNoSeatsAvailable, code: http.StatusConflict},
		{err: fmt.Errorf("seat 1A: %w", domain.ErrSeatUnavailable), code: http.StatusConflict},
		{err: domain.ErrFlightBusy, code: http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			body, _ := json.Marshal(createBookingRequest{FlightID: 1, CustomerID: 7, AmountCents: 100, PaymentMode: "CASH"})
			c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
			c.Request.Header.Set("Content-Type", "application/json")

			mockService.On("MakeBooking", c.Request.Context(), mock.Anything).Return(nil, tc.err)

			handler.create(c)

			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/1", nil)

	cancelled := &domain.Booking{
		ID:        1,
		Reference: "ref-123",
		FlightID:  1,
		SeatLabel: "1A",
		Status:    domain.BookingStatusCancelled,
	}

	mockService.On("CancelBooking", c.Request.Context(), int64(1)).Return(cancelled, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusCancelled), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_alreadyCancelled(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/1", nil)

	mockService.On("CancelBooking", c.Request.Context(), int64(1)).Return(nil, domain.ErrBookingAlreadyCancelled)

	handler.cancel(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingHandler_cancel_notFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "99"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/99", nil)

	mockService.On("CancelBooking", c.Request.Context(), int64(99)).Return(nil, domain.ErrBookingNotFound)

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_cancel_invalidID(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/abc", nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CancelBooking")
}

func TestBookingHandler_get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/bookings/1", nil)

	found := &domain.Booking{ID: 1, Reference: "ref-123", Status: domain.BookingStatusConfirmed}
	mockService.On("GetBooking", c.Request.Context(), int64(1)).Return(found, nil)

	handler.get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
