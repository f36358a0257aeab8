package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smetanin/airseats/internal/domain"
	"github.com/smetanin/airseats/internal/repository"
)

type CustomerHandler struct {
	customers repository.CustomerRepository
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func NewCustomerHandler(customers repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
}

func (h *CustomerHandler) create(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
		return
	}

	customer := &domain.Customer{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if err := h.customers.Create(c.Request.Context(), customer); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}
