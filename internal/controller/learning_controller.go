package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	Service *service.LearningService
}

func NewLearningController(svc *service.LearningService) *LearningController {
	return &LearningController{Service: svc}
}

// @Summary Enroll in a published course
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Success 201 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (c *LearningController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.Service.Enroll(claims.UserID, courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// @Summary List own enrollments
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/enrollments [get]
func (c *LearningController) ListEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	enrollments, err := c.Service.ListEnrollments(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// @Summary View a lecture, enforcing sequential access
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Param id path int true "lecture ID"
// @Success 200 {object} util.Response
// @Router /api/lectures/{id} [get]
func (c *LearningController) ViewLecture(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lectureID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	view, err := c.Service.ViewLecture(claims.UserID, lectureID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

type submitQuizRequest struct {
	// Answers maps question ID to the selected option index.
	Answers map[uint]int `json:"answers" binding:"required"`
}

// @Summary Submit quiz answers for automatic grading
// @Tags learning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "lecture ID"
// @Param body body submitQuizRequest true "answers keyed by question ID"
// @Success 200 {object} util.Response
// @Router /api/lectures/{id}/submit [post]
func (c *LearningController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lectureID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req submitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// The raw attempt is archived before grading so manual review sees every
	// attempt, including ones the automatic grader rejects later.
	if _, err := c.Service.CreateSubmission(claims.UserID, lectureID, req.Answers); err != nil {
		respondError(ctx, err)
		return
	}

	result, err := c.Service.SubmitQuiz(claims.UserID, lectureID, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}

	outcome := "failed"
	if result.Passed {
		outcome = "passed"
	}
	monitoring.QuizSubmissions.WithLabelValues(outcome).Inc()

	util.Success(ctx, result)
}

// @Summary Get progress in a course
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/progress [get]
func (c *LearningController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.Service.GetProgress(claims.UserID, courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
