package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/smetanin/airseats/internal/domain"
	"github.com/smetanin/airseats/internal/kafka"
	"github.com/smetanin/airseats/internal/repository"
)

type BookingUseCase interface {
	MakeBooking(ctx context.Context, input MakeBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id int64) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingService orchestrates the booking engine. The transactional writes to
// seat occupancy, booking status and available_seats all happen inside the
// booking repository; this layer validates input, resolves the customer,
// publishes events and keeps the read cache honest.
type BookingService struct {
	bookings           repository.BookingRepository
	customers          repository.CustomerRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type MakeBookingInput struct {
	FlightID    int64              `json:"flight_id"`
	CustomerID  int64              `json:"customer_id"`
	SeatLabel   string             `json:"seat_label"`
	AmountCents int64              `json:"amount_cents"`
	PaymentMode domain.PaymentMode `json:"payment_mode"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	customers repository.CustomerRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		customers:    customers,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) MakeBooking(ctx context.Context, input MakeBookingInput) (*domain.Booking, error) {
	if input.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalidInput)
	}
	if !input.PaymentMode.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment mode %q", domain.ErrInvalidInput, input.PaymentMode)
	}
	if input.SeatLabel != "" {
		if _, _, err := domain.ParseSeatLabel(input.SeatLabel); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}

	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Reference:  uuid.NewString(),
		FlightID:   input.FlightID,
		CustomerID: input.CustomerID,
		PriceCents: input.AmountCents,
	}
	payment := &domain.Payment{
		AmountCents: input.AmountCents,
		Mode:        input.PaymentMode,
	}

	if err := s.bookings.CreateConfirmed(ctx, booking, input.SeatLabel, payment); err != nil {
		return nil, err
	}

	s.afterCommit(ctx, "booking_confirmed", booking)
	return booking, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	cancelled, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, "booking_cancelled", cancelled)
	return cancelled, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// afterCommit runs the best-effort side effects of a committed transition.
// Failures here never unwind the booking: the cache self-heals via TTL and
// event consumers are read-only over inventory.
func (s *BookingService) afterCommit(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			log.Printf("invalidate flights cache: %v", err)
		}
	}
	if err := s.publish(ctx, eventType, booking); err != nil {
		log.Printf("publish %s event for booking %s: %v", eventType, booking.Reference, err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		Reference:  booking.Reference,
		FlightID:   booking.FlightID,
		CustomerID: booking.CustomerID,
		SeatLabel:  booking.SeatLabel,
		Status:     string(booking.Status),
		OccurredAt: time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
