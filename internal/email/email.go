package email

import (
	"context"
	"log"

	"github.com/smetanin/airseats/internal/kafka"
)

// Sender delivers booking notifications. The transport is a stub; wiring a
// real SMTP provider is an operational concern, not a booking one.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	log.Printf("notify customer %d: %s booking %s, flight %d seat %s",
		event.CustomerID, event.Type, event.Reference, event.FlightID, event.SeatLabel)
	return nil
}
