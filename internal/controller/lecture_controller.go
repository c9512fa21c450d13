package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LectureController struct {
	Service *service.LectureService
}

func NewLectureController(svc *service.LectureService) *LectureController {
	return &LectureController{Service: svc}
}

// @Summary Append a lecture to a course
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "course ID"
// @Param body body service.LectureInput true "lecture info"
// @Success 201 {object} util.Response
// @Router /api/instructor/courses/{id}/lectures [post]
func (c *LectureController) CreateLecture(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var input service.LectureInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lecture, err := c.Service.CreateLecture(claims.UserID, courseID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, lecture)
}

// @Summary Update a lecture
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "lecture ID"
// @Param body body service.LectureInput true "lecture info"
// @Success 200 {object} util.Response
// @Router /api/instructor/lectures/{id} [put]
func (c *LectureController) UpdateLecture(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var input service.LectureInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lecture, err := c.Service.UpdateLecture(claims.UserID, id, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lecture)
}

// @Summary Delete a lecture
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "lecture ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/lectures/{id} [delete]
func (c *LectureController) DeleteLecture(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeleteLecture(claims.UserID, id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Add a question to a quiz lecture
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "lecture ID"
// @Param body body service.QuestionInput true "question info"
// @Success 201 {object} util.Response
// @Router /api/instructor/lectures/{id}/questions [post]
func (c *LectureController) AddQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lectureID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var input service.QuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.AddQuestion(claims.UserID, lectureID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// @Summary List quiz questions with answer keys
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "lecture ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/lectures/{id}/questions [get]
func (c *LectureController) ListQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lectureID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	questions, err := c.Service.ListQuestions(claims.UserID, lectureID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary Update a question
// @Tags instructor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "question ID"
// @Param body body service.QuestionInput true "question info"
// @Success 200 {object} util.Response
// @Router /api/instructor/questions/{id} [put]
func (c *LectureController) UpdateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var input service.QuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.UpdateQuestion(claims.UserID, id, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary Delete a question
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param id path int true "question ID"
// @Success 200 {object} util.Response
// @Router /api/instructor/questions/{id} [delete]
func (c *LectureController) DeleteQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.DeleteQuestion(claims.UserID, id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
