package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smetanin/airseats/internal/repository"
)

// ReportHandler exposes read-only aggregations over committed state.
type ReportHandler struct {
	reports repository.ReportRepository
}

func NewReportHandler(reports repository.ReportRepository) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/load-factor", h.loadFactor)
	router.GET("/revenue", h.revenue)
	router.GET("/daily", h.daily)
}

func (h *ReportHandler) loadFactor(c *gin.Context) {
	loads, err := h.reports.LoadFactor(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, loads)
}

func (h *ReportHandler) revenue(c *gin.Context) {
	revenues, err := h.reports.Revenue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, revenues)
}

func (h *ReportHandler) daily(c *gin.Context) {
	days, err := h.reports.BookingsPerDay(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, days)
}
