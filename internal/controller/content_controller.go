package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	Service *service.ContentService
}

func NewContentController(svc *service.ContentService) *ContentController {
	return &ContentController{Service: svc}
}

// @Summary Upload a lecture asset (video or PDF)
// @Tags instructor
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "asset file"
// @Success 201 {object} util.Response
// @Router /api/instructor/assets [post]
func (c *ContentController) UploadAsset(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	result, err := c.Service.UploadAsset(ctx.Request.Context(), header)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
