package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradeController struct {
	Service *service.GradeService
}

func NewGradeController(svc *service.GradeService) *GradeController {
	return &GradeController{Service: svc}
}

// @Summary List raw submissions for a quiz lecture
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "lecture ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/lectures/{id}/submissions [get]
func (c *GradeController) ListSubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lectureID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	submissions, err := c.Service.ListSubmissions(claims.UserID, lectureID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// @Summary Get one submission with its answers and manual grade
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Param id path int true "submission ID"
// @Success 200 {object} util.Response
// @Router /api/submissions/{id} [get]
func (c *GradeController) GetSubmission(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.Service.GetSubmission(claims, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

type gradeRequest struct {
	Score *float64 `json:"score" binding:"required"`
}

// @Summary Assign or replace the manual grade for a submission
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "submission ID"
// @Param body body gradeRequest true "score out of 100"
// @Success 200 {object} util.Response
// @Router /api/instructor/submissions/{id}/grade [put]
func (c *GradeController) AssignGrade(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req gradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	grade, err := c.Service.AssignGrade(claims.UserID, id, *req.Score)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, grade)
}

// @Summary List own submissions
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/submissions [get]
func (c *GradeController) ListOwnSubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	submissions, err := c.Service.ListStudentSubmissions(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// @Summary List own manual grades
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/grades [get]
func (c *GradeController) ListOwnGrades(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	grades, err := c.Service.ListStudentGrades(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, grades)
}
