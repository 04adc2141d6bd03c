package equipment

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
	g := rg.Group("/equipment")
	{
		g.GET("", middleware.Authorize(policy.EquipmentRead), h.List)
		g.GET("/:id", middleware.Authorize(policy.EquipmentRead), h.Get)
		g.POST("", middleware.Authorize(policy.EquipmentWrite), h.Create)
		g.PUT("/:id", middleware.Authorize(policy.EquipmentWrite), h.Update)
		g.DELETE("/:id", middleware.Authorize(policy.EquipmentWrite), h.Delete)
	}
}

// GET /equipment?sport=Football
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), middleware.CallerFrom(c), c.Query("sport"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	e, err := h.service.Get(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", ErrNameRequired.Message, errs)
		return
	}

	in := CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    *req.Quantity,
		Sport:       req.Sport,
	}
	if req.Status != nil {
		in.Status = domain.EquipmentStatus(*req.Status)
	}

	e, err := h.service.Create(c.Request.Context(), middleware.CallerFrom(c), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, e)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment fields.", errs)
		return
	}

	in := UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		Sport:       req.Sport,
	}
	if req.Status != nil {
		st := domain.EquipmentStatus(*req.Status)
		in.Status = &st
	}

	e, err := h.service.Update(c.Request.Context(), middleware.CallerFrom(c), id, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Equipment deleted.")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid equipment id")
		return 0, false
	}
	return id, true
}
