package rental

import (
	"context"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/rentals", h.Create)
	rg.GET("/rentals", middleware.AdminOnly(), h.ListAll)
	rg.GET("/rentals/user/:userId", h.ListByUser)
	rg.GET("/rentals/conflicts", h.Conflicts)
	rg.PUT("/rentals/:id/confirm", middleware.AdminOnly(), h.Confirm)
	rg.PUT("/rentals/:id/reject", middleware.AdminOnly(), h.Reject)
	rg.PUT("/rentals/:id/return", middleware.AdminOnly(), h.Return)
	rg.PUT("/rentals/:id/cancel", h.Cancel)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Describe(err))
		return
	}

	r, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"rental": gin.H{
			"id":     r.ID,
			"status": r.Status,
		},
	})
}

func (h *Handler) ListAll(c *gin.Context) {
	rows, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rentals": rows})
}

func (h *Handler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	rows, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rentals": rows})
}

// Conflicts handles GET /rentals/conflicts?start_date=&end_date= and returns
// the bike ids occupied somewhere in the range.
func (h *Handler) Conflicts(c *gin.Context) {
	ids, err := h.service.FindConflicts(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bike_ids": ids})
}

func (h *Handler) Confirm(c *gin.Context) { h.applyTransition(c, h.service.Confirm) }
func (h *Handler) Reject(c *gin.Context)  { h.applyTransition(c, h.service.Reject) }
func (h *Handler) Return(c *gin.Context)  { h.applyTransition(c, h.service.Return) }
func (h *Handler) Cancel(c *gin.Context)  { h.applyTransition(c, h.service.Cancel) }

func (h *Handler) applyTransition(c *gin.Context, fn func(ctx context.Context, id int64) (*domain.Rental, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid rental ID")
		return
	}

	r, err := fn(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"rental": gin.H{
			"id":          r.ID,
			"status":      r.Status,
			"return_date": r.ReturnDate,
		},
	})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrBikeNotFound):
		response.Error(c, http.StatusNotFound, "BIKE_NOT_FOUND", "Bike not found")
	case errors.Is(err, domain.ErrRentalNotFound):
		response.Error(c, http.StatusNotFound, "RENTAL_NOT_FOUND", "Rental not found")
	case errors.Is(err, domain.ErrBikeUnavailable):
		response.Error(c, http.StatusBadRequest, "BIKE_UNAVAILABLE", "Bike is not available")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrDuplicateRental):
		response.Error(c, http.StatusConflict, "RENTAL_CONFLICT", "You already have a pending request for this bike")
	case errors.Is(err, domain.ErrDateConflict):
		response.Error(c, http.StatusConflict, "RENTAL_CONFLICT", "Bike not available for selected dates")
	case errors.Is(err, domain.ErrCancelNotPending):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Can only cancel pending rentals")
	case errors.Is(err, domain.ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Invalid status transition")
	default:
		response.Error(c, http.StatusInternalServerError, "STORE_FAILURE", "Durable store failure")
	}
}
