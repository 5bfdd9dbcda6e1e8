package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/taskhive-dev/taskhive/internal/config"
	"github.com/taskhive-dev/taskhive/internal/handlers"
	"github.com/taskhive-dev/taskhive/internal/middleware"
	"github.com/taskhive-dev/taskhive/internal/store"
)

// NewRouter wires the stores and handlers around the injected database
// handle.
func NewRouter(conn *gorm.DB, cfg config.Config) *gin.Engine {
	users := store.NewUserStore(conn)
	teams := store.NewTeamStore(conn)
	projects := store.NewProjectStore(conn)
	tasks := store.NewTaskStore(conn)

	authHandler := handlers.NewAuthHandler(users, cfg.Domain)
	profileHandler := handlers.NewProfileHandler(users)
	teamHandler := handlers.NewTeamHandler(teams, users)
	projectHandler := handlers.NewProjectHandler(projects, teams)
	taskHandler := handlers.NewTaskHandler(tasks)
	userHandler := handlers.NewUserHandler(users)
	wsHandler := handlers.NewWSHandler(cfg.AllowedOrigins())

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authRequired := middleware.AuthMiddleware(conn)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", authRequired, wsHandler.Handle)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		api.PATCH("/profile", authRequired, profileHandler.Update)

		projectRoutes := api.Group("/projects", authRequired)
		{
			projectRoutes.GET("", projectHandler.List)
			projectRoutes.POST("", projectHandler.Create)
			projectRoutes.DELETE("", projectHandler.Delete)
		}

		taskRoutes := api.Group("/tasks", authRequired)
		{
			taskRoutes.GET("", taskHandler.List)
			taskRoutes.POST("", taskHandler.Create)
			taskRoutes.PATCH("/:task_id", taskHandler.Update)
			taskRoutes.DELETE("/:task_id", taskHandler.Delete)
		}

		teamRoutes := api.Group("/teams", authRequired)
		{
			teamRoutes.GET("", teamHandler.List)
			teamRoutes.POST("", teamHandler.Create)
			teamRoutes.GET("/members", teamHandler.ListMembers)
			teamRoutes.POST("/members", teamHandler.AddMember)
			teamRoutes.DELETE("/members", teamHandler.RemoveMember)
		}

		userRoutes := api.Group("/users", authRequired)
		{
			userRoutes.GET("/available", userHandler.Available)
		}
	}

	return r
}
