package handlers

import (
	"context"
	"net/http"
	"strings"

	"poojaseva/models"
	"poojaseva/services/booking"
	"poojaseva/services/selection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves booking submission and the booking lifecycle.
type BookingHandler struct {
	Bookings   booking.BookingService
	Selections selection.SelectionService
}

func NewBookingHandler(b booking.BookingService, s selection.SelectionService) *BookingHandler {
	return &BookingHandler{Bookings: b, Selections: s}
}

// submitBookingRequest carries either a selection session or an explicit intent.
type submitBookingRequest struct {
	SelectionID string                `json:"selection_id"`
	PoojaID     string                `json:"pooja_id"`
	TempleID    string                `json:"temple_id"`
	ServiceMode string                `json:"service_mode"`
	Date        string                `json:"date"`
	TimeSlot    string                `json:"time_slot"`
	ProviderID  *string               `json:"provider_id"`
	AutoAssign  bool                  `json:"auto_assign"`
	TempleVisit bool                  `json:"temple_visit"`
	Sankalp     models.SankalpDetails `json:"sankalp_details"`
}

// Submit creates a booking. When selection_id is given, the stored selection
// decides between the chosen provider and auto-assign and is closed on success.
func (h *BookingHandler) Submit(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var body submitBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()

	req := booking.SubmitRequest{
		UserID:      u.ID,
		PoojaID:     body.PoojaID,
		TempleID:    body.TempleID,
		ServiceMode: body.ServiceMode,
		Date:        body.Date,
		TimeSlot:    body.TimeSlot,
		ProviderID:  body.ProviderID,
		AutoAssign:  body.AutoAssign,
		TempleVisit: body.TempleVisit,
		Sankalp:     body.Sankalp,
	}

	var sel *selection.Selection
	if body.SelectionID != "" {
		var err error
		sel, err = h.Selections.Get(ctx, body.SelectionID, u.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := applySelection(&req, sel); err != nil {
			writeError(c, err)
			return
		}
	}

	b, err := h.Bookings.Submit(ctx, req)
	if err != nil {
		writeError(c, err)
		return
	}
	if sel != nil {
		if err := h.Selections.MarkSubmitted(context.WithoutCancel(ctx), sel, b.ID); err != nil {
			getLogger(c).Warn("selection not closed after submit",
				zap.String("selection", sel.ID), zap.String("booking", b.ID), zap.Error(err))
		}
	}
	c.JSON(http.StatusCreated, b)
}

// applySelection overlays the selection's pooja, temple and intent onto req. A
// body naming a different pooja or temple than the selection is rejected.
func applySelection(req *booking.SubmitRequest, sel *selection.Selection) error {
	if id := strings.TrimSpace(req.PoojaID); id != "" && id != sel.PoojaID {
		return &booking.ValidationError{Field: "pooja_id", Message: "pooja does not match the selected priest flow"}
	}
	req.PoojaID = sel.PoojaID
	if id := strings.TrimSpace(req.TempleID); sel.TempleID != "" {
		if id != "" && id != sel.TempleID {
			return &booking.ValidationError{Field: "temple_id", Message: "temple does not match the selected priest flow"}
		}
		req.TempleID = sel.TempleID
	}
	if req.TempleVisit {
		return nil
	}
	providerID, err := sel.Intent()
	if err != nil {
		return err
	}
	req.ProviderID = providerID
	req.AutoAssign = providerID == nil
	return nil
}

func (h *BookingHandler) Mine(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.Bookings.ListMine(c.Request.Context(), u.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list, "count": len(list)})
}

func (h *BookingHandler) Get(c *gin.Context) {
	h.transition(c, h.Bookings.GetBooking)
}

func (h *BookingHandler) Accept(c *gin.Context) { h.transition(c, h.Bookings.Accept) }
func (h *BookingHandler) Decline(c *gin.Context) { h.transition(c, h.Bookings.Decline) }
func (h *BookingHandler) CheckIn(c *gin.Context) { h.transition(c, h.Bookings.CheckIn) }
func (h *BookingHandler) Complete(c *gin.Context) { h.transition(c, h.Bookings.Complete) }
func (h *BookingHandler) Cancel(c *gin.Context) { h.transition(c, h.Bookings.Cancel) }

// Delete soft-deletes a booking.
func (h *BookingHandler) Delete(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Bookings.Delete(c.Request.Context(), c.Param("id"), u); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type bookingAction func(ctx context.Context, id string, actor models.CurrentUser) (*models.Booking, error)

func (h *BookingHandler) transition(c *gin.Context, action bookingAction) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	b, err := action(c.Request.Context(), c.Param("id"), u)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
