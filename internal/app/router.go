package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)

		// Catalog browsing is public; the detail view shows more when a
		// token is present.
		api.GET("/courses", c.course.ListPublished)
		api.GET("/courses/:id", middleware.TryAuthMiddleware(cfg), c.course.GetCourse)
	}

	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.GET("/me", c.auth.Me)

		authed.POST("/courses/:id/enroll", c.learning.Enroll)
		authed.GET("/courses/:id/progress", c.learning.GetProgress)
		authed.GET("/enrollments", c.learning.ListEnrollments)

		authed.GET("/lectures/:id", c.learning.ViewLecture)
		authed.POST("/lectures/:id/submit", c.learning.SubmitQuiz)

		authed.GET("/submissions", c.grade.ListOwnSubmissions)
		authed.GET("/submissions/:id", c.grade.GetSubmission)
		authed.GET("/grades", c.grade.ListOwnGrades)
	}

	instructor := router.Group("/api/instructor")
	instructor.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.GET("/courses", c.course.ListOwn)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.PATCH("/courses/:id/publish", c.course.PublishCourse)
		instructor.DELETE("/courses/:id", c.course.DeleteCourse)

		instructor.POST("/courses/:id/lectures", c.lecture.CreateLecture)
		instructor.PUT("/lectures/:id", c.lecture.UpdateLecture)
		instructor.DELETE("/lectures/:id", c.lecture.DeleteLecture)

		instructor.POST("/lectures/:id/questions", c.lecture.AddQuestion)
		instructor.GET("/lectures/:id/questions", c.lecture.ListQuestions)
		instructor.PUT("/questions/:id", c.lecture.UpdateQuestion)
		instructor.DELETE("/questions/:id", c.lecture.DeleteQuestion)

		instructor.GET("/lectures/:id/submissions", c.grade.ListSubmissions)
		instructor.PUT("/submissions/:id/grade", c.grade.AssignGrade)

		instructor.POST("/assets", c.content.UploadAsset)
	}
}
