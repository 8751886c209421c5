package handlers

import (
	"net/http"

	"poojaseva/models"
	"poojaseva/services/intelligence"

	"github.com/gin-gonic/gin"
)

// AIHandler serves generated pilgrimage itineraries.
type AIHandler struct {
	Itineraries intelligence.ItineraryService
}

func NewAIHandler(svc intelligence.ItineraryService) *AIHandler {
	return &AIHandler{Itineraries: svc}
}

func (h *AIHandler) Itinerary(c *gin.Context) {
	var req models.ItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	it, err := h.Itineraries.PlanItinerary(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}
