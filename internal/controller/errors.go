package controller

import (
	"errors"
	"net/http"

	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps service-layer sentinel errors onto the HTTP envelope.
// Anything unrecognized is logged and surfaced as a 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied), errors.Is(err, util.ErrLectureLocked):
		util.Error(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, util.ErrNotEnrolled):
		util.Error(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, util.ErrAlreadyEnrolled), errors.Is(err, util.ErrQuizWindowClosed):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidInput):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := util.ParseUint(ctx.Param(name))
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}
