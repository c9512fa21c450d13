package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Service *service.CourseService
}

func NewCourseController(svc *service.CourseService) *CourseController {
	return &CourseController{Service: svc}
}

// @Summary List published courses
// @Tags courses
// @Produce json
// @Param search query string false "title search"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) ListPublished(ctx *gin.Context) {
	courses, err := c.Service.ListPublished(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Get course detail with lecture list
// @Tags courses
// @Produce json
// @Param id path int true "course ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.Service.GetCourseDetail(id, util.GetUserFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary Create a course
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CourseInput true "course info"
// @Success 201 {object} util.Response
// @Router /api/instructor/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var input service.CourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.CreateCourse(claims.UserID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary List own courses
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/courses [get]
func (c *CourseController) ListOwn(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	courses, err := c.Service.ListByInstructor(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary Update a course
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Param body body service.CourseInput true "course info"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var input service.CourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.UpdateCourse(claims.UserID, id, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

type publishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// @Summary Publish or unpublish a course
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Param body body publishRequest true "publish flag"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id}/publish [patch]
func (c *CourseController) PublishCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req publishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.PublishCourse(claims.UserID, id, *req.Published)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary Delete a course
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeleteCourse(claims.UserID, id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
