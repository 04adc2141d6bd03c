package borrow

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/middleware"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/response"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/utils"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/policy"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/borrowed")
	{
		g.GET("", middleware.Authorize(policy.BorrowList), h.List)
		g.GET("/my", middleware.Authorize(policy.BorrowListOwn), h.ListMine)
		g.GET("/user/:userId", middleware.Authorize(policy.BorrowListOwn), h.ListByUser)
		g.GET("/pending", middleware.Authorize(policy.BorrowListPending), h.ListPending)
		g.GET("/:id", middleware.Authorize(policy.BorrowGet), h.Get)

		g.POST("/request", middleware.Authorize(policy.BorrowRequest), h.Request)
		g.POST("/borrow", middleware.Authorize(policy.BorrowRecord), h.RecordBorrow)
		g.DELETE("/:id", middleware.Authorize(policy.BorrowCancel), h.Cancel)
		g.PUT("/approve/:id", middleware.Authorize(policy.BorrowApprove), h.Approve)
		g.PUT("/reject/:id", middleware.Authorize(policy.BorrowReject), h.Reject)
		g.PUT("/return/:id", middleware.Authorize(policy.BorrowReturn), h.Return)
	}
}

func (h *Handler) Request(c *gin.Context) {
	var req requestBorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	due, err := utils.ParseOptionalDate(req.DueDate)
	if err != nil {
		response.FromError(c, ErrInvalidDate)
		return
	}

	rec, err := h.service.Request(c.Request.Context(), middleware.CallerFrom(c), RequestInput{
		EquipmentID: req.EquipmentID,
		Notes:       req.Notes,
		DueDate:     due,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

func (h *Handler) RecordBorrow(c *gin.Context) {
	var req recordBorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	due, err := utils.ParseOptionalDate(req.DueDate)
	if err != nil {
		response.FromError(c, ErrInvalidDate)
		return
	}

	rec, err := h.service.Borrow(c.Request.Context(), middleware.CallerFrom(c), BorrowInput{
		UserID:      req.UserID,
		EquipmentID: req.EquipmentID,
		Notes:       req.Notes,
		DueDate:     due,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Cancel(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Request cancelled.")
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rec, err := h.service.Approve(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rec, err := h.service.Reject(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) Return(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req returnRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	due, err := utils.ParseOptionalDate(req.DueDate)
	if err != nil {
		response.FromError(c, ErrInvalidDate)
		return
	}

	result, err := h.service.RecordOutcome(c.Request.Context(), middleware.CallerFrom(c), id, OutcomeInput{
		Status:  domain.BorrowStatus(req.Status),
		DueDate: due,
		Notes:   req.Notes,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rec, err := h.service.Get(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) List(c *gin.Context) {
	recs, err := h.service.List(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, recs)
}

func (h *Handler) ListPending(c *gin.Context) {
	recs, err := h.service.ListPending(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, recs)
}

func (h *Handler) ListMine(c *gin.Context) {
	recs, err := h.service.ListByUser(c.Request.Context(), middleware.CallerFrom(c), 0)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, recs)
}

func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	recs, err := h.service.ListByUser(c.Request.Context(), middleware.CallerFrom(c), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, recs)
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+param)
		return 0, false
	}
	return id, true
}
