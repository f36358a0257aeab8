package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smetanin/airseats/internal/domain"
	"github.com/smetanin/airseats/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID    int64  `json:"flight_id"`
	CustomerID  int64  `json:"customer_id"`
	Seat        string `json:"seat"`
	AmountCents int64  `json:"amount_cents"`
	PaymentMode string `json:"payment_mode"`
}

type bookingResponse struct {
	ID         int64  `json:"id"`
	Reference  string `json:"reference"`
	FlightID   int64  `json:"flight_id"`
	CustomerID int64  `json:"customer_id"`
	Seat       string `json:"seat"`
	PriceCents int64  `json:"price_cents"`
	Status     string `json:"status"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.MakeBooking(c.Request.Context(), booking.MakeBookingInput{
		FlightID:    req.FlightID,
		CustomerID:  req.CustomerID,
		SeatLabel:   req.Seat,
		AmountCents: req.AmountCents,
		PaymentMode: domain.PaymentMode(req.PaymentMode),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	found, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	cancelled, err := h.service.CancelBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(cancelled))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID,
		Reference:  b.Reference,
		FlightID:   b.FlightID,
		CustomerID: b.CustomerID,
		Seat:       b.SeatLabel,
		PriceCents: b.PriceCents,
		Status:     string(b.Status),
	}
}
