package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"
)

// respondError maps service errors onto HTTP statuses. Unexpected errors are
// attached to the gin context so the access log records them.
func respondError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var invalid *services.ValidationError
	var conflict *services.ConflictError

	switch {
	case errors.As(err, &invalid):
		utils.JSONError(c, http.StatusBadRequest, "error.validation", invalid.Error())
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, "error."+notFound.Resource+"NotFound", notFound.Error())
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, "error.conflict", conflict.Error())
	default:
		_ = c.Error(err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error")
	}
}

func respondInvalidPayload(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "Invalid request payload: "+err.Error())
}
