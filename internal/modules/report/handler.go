package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/middleware"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/response"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/policy"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/reports")
	{
		g.GET("/summary", middleware.Authorize(policy.ReportSummary), h.Summary)
		g.GET("/staff-summary", middleware.Authorize(policy.ReportStaffSummary), h.StaffSummary)
	}
}

func (h *Handler) Summary(c *gin.Context) {
	sum, err := h.service.Summary(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sum)
}

func (h *Handler) StaffSummary(c *gin.Context) {
	sum, err := h.service.StaffSummary(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sum)
}
