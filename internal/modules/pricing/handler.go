package pricing

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bikerental/internal/domain"
	"bikerental/internal/pkg/response"
)

// CatalogStore supplies the base rate of the bike being quoted.
type CatalogStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Bike, error)
}

type Handler struct {
	bikes CatalogStore
}

func NewHandler(bikes CatalogStore) *Handler {
	return &Handler{bikes: bikes}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/pricing/quote", h.Quote)
}

// Quote computes a dynamic price for a bike given the current demand signal
// and the caller's tier. The bike's hourly rate is the base price.
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	bike, err := h.bikes.GetByID(c.Request.Context(), req.BikeID)
	if err != nil {
		if errors.Is(err, domain.ErrBikeNotFound) {
			response.Error(c, http.StatusNotFound, "BIKE_NOT_FOUND", "Bike not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "STORE_FAILURE", "Durable store failure")
		return
	}

	seasonality := 1.0
	if req.Seasonality != nil {
		seasonality = *req.Seasonality
	}
	tier := TierRegular
	if req.Tier != "" {
		tier = Tier(req.Tier)
	}

	price, err := Price(bike.PricePerHour, req.Demand, seasonality, tier)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_PRICE_INPUT", "Invalid price input")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"quote": gin.H{
			"bike_id": bike.ID,
			"price":   price,
		},
	})
}
