package penalty

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/middleware"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/response"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/validator"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/policy"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/penalties")
	{
		g.GET("", middleware.Authorize(policy.PenaltyList), h.List)
		g.GET("/my", middleware.Authorize(policy.PenaltyListOwn), h.ListMine)
		g.GET("/user/:userId", middleware.Authorize(policy.PenaltyListOwn), h.ListByUser)
		g.GET("/:id", middleware.Authorize(policy.PenaltyGet), h.Get)
		g.POST("", middleware.Authorize(policy.PenaltyCreate), h.Create)
		g.PUT("/:id", middleware.Authorize(policy.PenaltyUpdate), h.Update)
		g.DELETE("/:id", middleware.Authorize(policy.PenaltyDelete), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePenaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", ErrFieldsRequired.Message, errs)
		return
	}

	in := CreateInput{
		UserID:              req.UserID,
		BorrowedEquipmentID: req.BorrowedEquipmentID,
		Amount:              *req.Amount,
		Reason:              req.Reason,
	}
	if req.Status != nil {
		in.Status = domain.PenaltyStatus(*req.Status)
	}

	p, err := h.service.Create(c.Request.Context(), middleware.CallerFrom(c), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdatePenaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid penalty fields.", errs)
		return
	}

	in := UpdateInput{
		Amount: req.Amount,
		Reason: req.Reason,
	}
	if req.Status != nil {
		status := domain.PenaltyStatus(*req.Status)
		in.Status = &status
	}

	p, err := h.service.Update(c.Request.Context(), middleware.CallerFrom(c), id, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Penalty deleted.")
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) List(c *gin.Context) {
	ps, err := h.service.List(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ps)
}

func (h *Handler) ListMine(c *gin.Context) {
	ps, err := h.service.ListByUser(c.Request.Context(), middleware.CallerFrom(c), 0)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ps)
}

func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	ps, err := h.service.ListByUser(c.Request.Context(), middleware.CallerFrom(c), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ps)
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+param)
		return 0, false
	}
	return id, true
}
