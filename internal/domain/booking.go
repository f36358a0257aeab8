package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type PaymentMode string

const (
	PaymentModeUPI        PaymentMode = "UPI"
	PaymentModeCard       PaymentMode = "CARD"
	PaymentModeNetbanking PaymentMode = "NETBANKING"
	PaymentModeCash       PaymentMode = "CASH"
)

func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeUPI, PaymentModeCard, PaymentModeNetbanking, PaymentModeCash:
		return true
	}
	return false
}

// Booking transitions CONFIRMED -> CANCELLED exactly once; a cancelled
// booking is terminal.
type Booking struct {
	ID         int64         `json:"id"`
	Reference  string        `json:"reference"`
	FlightID   int64         `json:"flight_id"`
	CustomerID int64         `json:"customer_id"`
	SeatLabel  string        `json:"seat_label"`
	PriceCents int64         `json:"price_cents"`
	Status     BookingStatus `json:"status"`
	PaymentID  *int64        `json:"payment_id,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Payment is immutable once created; cancellation never reverses or deletes
// it.
type Payment struct {
	ID          int64       `json:"id"`
	BookingID   int64       `json:"booking_id"`
	AmountCents int64       `json:"amount_cents"`
	Mode        PaymentMode `json:"mode"`
	CreatedAt   time.Time   `json:"created_at"`
}

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
