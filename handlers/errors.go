package handlers

import (
	"errors"
	"net/http"

	"poojaseva/database/repository"
	"poojaseva/middleware"
	"poojaseva/models"
	"poojaseva/services/booking"
	"poojaseva/services/functions"
	"poojaseva/services/intelligence"
	"poojaseva/services/selection"
	"poojaseva/services/storage"
	"poojaseva/services/user"
	"poojaseva/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps service errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	var (
		validation *booking.ValidationError
		transition *booking.TransitionError
		remote     *functions.RemoteError
		input      *user.InputError
	)
	switch {
	case errors.As(err, &validation):
		utils.JSONError(c, http.StatusBadRequest, validation.Message, validation.Field)
	case errors.As(err, &input):
		utils.JSONError(c, http.StatusBadRequest, input.Message, input.Field)
	case errors.As(err, &transition):
		utils.JSONError(c, http.StatusConflict, transition.Error(), string(transition.Status))
	case errors.Is(err, booking.ErrSubmitFailed):
		getLogger(c).Error("booking submission failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, booking.ErrSubmitFailed.Error(), "")
	case errors.Is(err, booking.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, err.Error(), "")
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, selection.ErrSelectionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, selection.ErrNothingSelected),
		errors.Is(err, selection.ErrProviderRequired),
		errors.Is(err, selection.ErrPoojaRequired),
		errors.Is(err, storage.ErrUnknownMediaKind):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, selection.ErrAlreadySubmitted), errors.Is(err, user.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.Is(err, user.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, err.Error(), "")
	case errors.Is(err, functions.ErrNotConfigured),
		errors.Is(err, intelligence.ErrUnavailable),
		errors.Is(err, storage.ErrNotConfigured):
		utils.JSONError(c, http.StatusServiceUnavailable, "This feature is temporarily unavailable", "")
	case errors.As(err, &remote):
		getLogger(c).Error("remote function failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Upstream service failed, please try again", "")
	default:
		getLogger(c).Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Something went wrong, please try again", "")
	}
}

// badRequest reports an undecodable request body.
func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
}

// currentUser returns the authenticated identity or aborts with 401.
func currentUser(c *gin.Context) (models.CurrentUser, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
	}
	return u, ok
}
