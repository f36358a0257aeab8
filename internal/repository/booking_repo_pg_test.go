package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smetanin/airseats/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewBookingRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewBookingRepository(pool, 2*time.Second)
	assert.NotNil(t, repo)
}

func TestMapPGError_LockTimeout(t *testing.T) {
	err := mapPGError(&pgconn.PgError{Code: pgLockNotAvailable, Message: "canceling statement due to lock timeout"})
	assert.ErrorIs(t, err, domain.ErrFlightBusy)
}

func TestMapPGError_CustomerFK(t *testing.T) {
	err := mapPGError(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "bookings_customer_id_fkey"})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestMapPGError_Passthrough(t *testing.T) {
	plain := errors.New("connection refused")
	assert.Equal(t, plain, mapPGError(plain))

	other := &pgconn.PgError{Code: "23505", ConstraintName: "idx_bookings_confirmed_seat"}
	assert.Equal(t, error(other), mapPGError(other))
}
