package app

import (
	"tutorhub_backend/docs"
	"tutorhub_backend/internal/config"
	"tutorhub_backend/internal/middleware"
	"tutorhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes: auth, catalog, tutor directory.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.POST("/auth/refresh", c.auth.Refresh)
		public.GET("/subjects", c.subject.ListSubjects)
		public.GET("/tutors", c.tutor.ListTutors)
		public.GET("/tutors/:id", c.tutor.GetTutor)
	}

	// Authenticated routes.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.user.GetProfile)
		authGroup.PUT("/me", c.user.UpdateProfile)
		authGroup.PATCH("/me", c.user.UpdateProfile)
		authGroup.POST("/me/avatar", c.user.UploadAvatar)

		// Tutor subject listings.
		authGroup.POST("/me/subjects", c.tutor.AddSubject)
		authGroup.DELETE("/me/subjects/:subjectId", c.tutor.RemoveSubject)

		// Lesson request workflow.
		authGroup.GET("/lesson-requests", c.lessonRequest.List)
		authGroup.POST("/lesson-requests/create", c.lessonRequest.Create)
		authGroup.GET("/lesson-requests/:id", c.lessonRequest.Get)
		authGroup.PATCH("/lesson-requests/:id", c.lessonRequest.UpdateStatus)
	}
}
