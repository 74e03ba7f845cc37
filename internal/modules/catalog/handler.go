package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bikerental/internal/domain"
	"bikerental/internal/middleware"
	"bikerental/internal/pkg/response"
	"bikerental/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes the read-only catalog.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/bikes", h.List)
	rg.GET("/bikes/:id", h.GetByID)
}

// RegisterAdminRoutes exposes catalog management, admin only.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("", middleware.AdminOnly())
	admin.POST("/bikes", h.Create)
	admin.PUT("/bikes/:id", h.Update)
	admin.PATCH("/bikes/:id/availability", h.SetAvailability)
	admin.DELETE("/bikes/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	bikes, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "STORE_FAILURE", "Failed to load bikes")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bikes": bikes})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	bike, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bike": bike})
}

func (h *Handler) Create(c *gin.Context) {
	var req BikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name, type, and price are required", validator.Describe(err))
		return
	}

	bike, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"bike": bike})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req BikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name, type, and price are required", validator.Describe(err))
		return
	}

	bike, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bike": bike})
}

func (h *Handler) SetAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "available flag is required")
		return
	}

	if err := h.service.SetAvailability(c.Request.Context(), id, *req.Available); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "available": *req.Available})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Bike deleted successfully"})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid bike ID")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrBikeNotFound):
		response.Error(c, http.StatusNotFound, "BIKE_NOT_FOUND", "Bike not found")
	case errors.Is(err, ErrActiveRentals):
		response.Error(c, http.StatusBadRequest, "ACTIVE_RENTALS", "Cannot delete bike with active rentals")
	default:
		response.Error(c, http.StatusInternalServerError, "STORE_FAILURE", "Durable store failure")
	}
}
