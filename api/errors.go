package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smetanin/airseats/internal/domain"
)

// writeError maps domain error kinds onto HTTP statuses. Every failure is one
// specific kind; callers must never have to guess from a bare 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoSeatsAvailable),
		errors.Is(err, domain.ErrSeatUnavailable),
		errors.Is(err, domain.ErrBookingAlreadyCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrFlightBusy):
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
