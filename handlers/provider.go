package handlers

import (
	"net/http"
	"strings"

	"poojaseva/models"
	"poojaseva/services/booking"
	"poojaseva/services/functions"
	"poojaseva/services/matching"
	"poojaseva/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const noProvidersMessage = "No priests are available for this pooja right now. Choose auto-assign and we will find one for you."

// ProviderHandler serves provider discovery and the provider-side booking inbox.
type ProviderHandler struct {
	Matching     matching.MatchingService
	Availability functions.AvailabilityService
	Bookings     booking.BookingService
}

func NewProviderHandler(m matching.MatchingService, a functions.AvailabilityService, b booking.BookingService) *ProviderHandler {
	return &ProviderHandler{Matching: m, Availability: a, Bookings: b}
}

// Eligible returns the ranked providers for ?pooja_id= and optional ?temple_id=.
// The first entry is the preferred provider.
func (h *ProviderHandler) Eligible(c *gin.Context) {
	poojaID := strings.TrimSpace(c.Query("pooja_id"))
	if poojaID == "" {
		utils.JSONError(c, http.StatusBadRequest, "pooja_id is required", "pooja_id")
		return
	}
	templeID := strings.TrimSpace(c.Query("temple_id"))

	providers, err := h.Matching.EligibleProviders(c.Request.Context(), poojaID, templeID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{"providers": providers, "count": len(providers)}
	if len(providers) == 0 {
		resp["message"] = noProvidersMessage
	}
	getLogger(c).Debug("eligible providers listed",
		zap.String("poojaID", poojaID),
		zap.String("templeID", templeID),
		zap.Int("count", len(providers)))
	c.JSON(http.StatusOK, resp)
}

// Slots proxies slot availability for a pooja on ?date= in ?mode=.
func (h *ProviderHandler) Slots(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "date is required", "date")
		return
	}
	mode := models.ModeVirtual
	if raw := c.Query("mode"); raw != "" {
		parsed, ok := models.ParseServiceMode(raw)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "unknown service mode", "mode")
			return
		}
		mode = parsed
	}

	slots, err := h.Availability.GetAvailablePoojaSlots(c.Request.Context(), c.Param("id"), date, mode)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots, "date": date, "mode": mode})
}

// ListBookings lists a provider's bookings. Only that provider or an admin may read it.
func (h *ProviderHandler) ListBookings(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	providerID := c.Param("id")
	if u.Role != models.RoleAdmin && u.ProviderID != providerID {
		utils.JSONError(c, http.StatusForbidden, "You can only view your own bookings", "")
		return
	}

	list, err := h.Bookings.ListForProvider(c.Request.Context(), providerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list, "count": len(list)})
}
