package recommend

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bikerental/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recommendations/:userId", h.Recommendations)
}

func (h *Handler) Recommendations(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	bikes, err := h.service.Recommend(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "STORE_FAILURE", "Failed to get recommendations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"recommendations": bikes})
}
