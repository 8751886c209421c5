package handlers

import (
	"net/http"

	"poojaseva/services/selection"

	"github.com/gin-gonic/gin"
)

// SelectionHandler drives the priest-selection flow ahead of submitting a booking.
type SelectionHandler struct {
	Selections selection.SelectionService
}

func NewSelectionHandler(svc selection.SelectionService) *SelectionHandler {
	return &SelectionHandler{Selections: svc}
}

func (h *SelectionHandler) Start(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		PoojaID  string `json:"pooja_id" binding:"required"`
		TempleID string `json:"temple_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sel, err := h.Selections.Start(c.Request.Context(), u.ID, req.PoojaID, req.TempleID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sel)
}

func (h *SelectionHandler) Get(c *gin.Context) {
	h.respond(c, func(userID string) (*selection.Selection, error) {
		return h.Selections.Get(c.Request.Context(), c.Param("id"), userID)
	})
}

// AutoAssign switches the selection to auto-assign, clearing any chosen provider.
func (h *SelectionHandler) AutoAssign(c *gin.Context) {
	h.respond(c, func(userID string) (*selection.Selection, error) {
		return h.Selections.ChooseAutoAssign(c.Request.Context(), c.Param("id"), userID)
	})
}

// ChooseProvider pins a provider, clearing auto-assign.
func (h *SelectionHandler) ChooseProvider(c *gin.Context) {
	h.respond(c, func(userID string) (*selection.Selection, error) {
		return h.Selections.ChooseProvider(c.Request.Context(), c.Param("id"), userID, c.Param("providerID"))
	})
}

func (h *SelectionHandler) Reset(c *gin.Context) {
	h.respond(c, func(userID string) (*selection.Selection, error) {
		return h.Selections.Reset(c.Request.Context(), c.Param("id"), userID)
	})
}

func (h *SelectionHandler) Discard(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Selections.Discard(c.Request.Context(), c.Param("id"), u.ID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SelectionHandler) respond(c *gin.Context, fn func(userID string) (*selection.Selection, error)) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	sel, err := fn(u.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}
