package app

import (
	"exam_portal_backend/docs"
	"exam_portal_backend/internal/config"
	"exam_portal_backend/internal/middleware"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)
		authGroup.GET("/profile", c.auth.Profile)

		// 学生考试流程
		student := authGroup.Group("")
		student.Use(middleware.RoleMiddleware(model.Student, model.Teacher))
		{
			student.GET("/exams", c.exam.ListExams)
			student.GET("/exams/:id", c.exam.GetExam)
			student.GET("/exams/:id/questions", c.exam.GetStudentPaper)
			student.POST("/exams/:id/submit", c.attempt.SubmitExam)
			student.GET("/exams/:id/results/:attemptId", c.attempt.GetResult)
			student.GET("/attempts", c.attempt.ListAttempts)
			student.GET("/dashboard/student", c.analytics.StudentDashboard)
		}

		// 教师出题与管理
		teacher := authGroup.Group("")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("/exams", c.exam.CreateExam)
			teacher.PUT("/exams/:id", c.exam.UpdateExam)
			teacher.DELETE("/exams/:id", c.exam.DeleteExam)
			teacher.POST("/exams/:id/papers", c.exam.CreatePaper)
			teacher.GET("/exams/:id/papers", c.exam.ListPapers)
			teacher.POST("/exams/:id/papers/:paperId/activate", c.exam.ActivatePaper)
			teacher.GET("/dashboard/teacher", c.analytics.TeacherOverview)
		}
	}
}
