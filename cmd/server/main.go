package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/octavertex/workhub/internal/config"
	"github.com/octavertex/workhub/internal/constants"
	"github.com/octavertex/workhub/internal/database"
	"github.com/octavertex/workhub/internal/handlers"
	"github.com/octavertex/workhub/internal/logger"
	"github.com/octavertex/workhub/internal/middleware"
	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
	"github.com/octavertex/workhub/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Initialize structured logging
	if err := logger.Init(cfg.GinMode); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, auditRepo)
	userService := services.NewUserService(userRepo, notificationRepo, auditRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, notificationRepo)
	leaveService := services.NewLeaveService(leaveRepo, userRepo, notificationRepo, auditRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, auditRepo)
	chatService := services.NewChatService(chatRepo, userRepo, notificationRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	auditService := services.NewAuditService(auditRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService, projectService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	chatHandler := handlers.NewChatHandler(chatService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,
		"tcp",
		redisAddr,
		"",
		"",
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(constants.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
			auth.PATCH("/preferences", requireAuth, authHandler.UpdatePreferences)
		}

		// User administration (protected, team lead and up)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.PATCH("/:id/role", middleware.RequireRole(models.RoleTeamLead), userHandler.ChangeRole)
			users.PATCH("/:id/status", middleware.RequireRole(models.RoleTeamLead), userHandler.ChangeStatus)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.GET("", taskHandler.ListProjects)
			projects.POST("", middleware.RequireRole(models.RoleProjectAdmin), taskHandler.CreateProject)
			projects.PATCH("/:id", middleware.RequireRole(models.RoleProjectAdmin), taskHandler.UpdateProject)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/transition", taskHandler.Transition)
			tasks.POST("/:id/reopen", taskHandler.Reopen)
			tasks.POST("/:id/assign", taskHandler.Assign)
			tasks.POST("/:id/unassign", taskHandler.Unassign)
		}

		// Leave routes (protected)
		leave := api.Group("/leave")
		leave.Use(requireAuth)
		{
			leave.GET("/types", leaveHandler.ListTypes)
			leave.GET("/balances", leaveHandler.Balances)
			leave.GET("/requests", leaveHandler.ListRequests)
			leave.POST("/requests", leaveHandler.Apply)
			leave.POST("/requests/:id/decide", middleware.RequireRole(models.RoleTeamLead), leaveHandler.Decide)
			leave.POST("/requests/:id/cancel", leaveHandler.Cancel)
			leave.GET("/pending", middleware.RequireRole(models.RoleTeamLead), leaveHandler.ListPending)
			leave.POST("/rollover", middleware.RequireRole(models.RoleHRAdmin), leaveHandler.Rollover)
		}

		// Attendance routes (protected)
		attendance := api.Group("/attendance")
		attendance.Use(requireAuth)
		{
			attendance.POST("/clock-in", attendanceHandler.ClockIn)
			attendance.POST("/clock-out", attendanceHandler.ClockOut)
			attendance.POST("/break/start", attendanceHandler.StartBreak)
			attendance.POST("/break/end", attendanceHandler.EndBreak)
			attendance.GET("/today", attendanceHandler.Today)
			attendance.GET("/records", attendanceHandler.ListMonth)
			attendance.GET("/summary", attendanceHandler.Summary)
			attendance.PATCH("/records/:id/notes", attendanceHandler.UpdateNotes)
			attendance.PATCH("/records/:id", middleware.RequireRole(models.RoleHRAdmin), attendanceHandler.Override)
		}

		// Chat routes (protected)
		channels := api.Group("/channels")
		channels.Use(requireAuth)
		{
			channels.GET("", chatHandler.ListChannels)
			channels.POST("", chatHandler.CreateChannel)
			channels.POST("/:id/members", chatHandler.AddMember)
			channels.GET("/:id/messages", chatHandler.ListMessages)
			channels.POST("/:id/messages", chatHandler.PostMessage)
		}

		// Audit trail (protected, HR admin and up)
		audit := api.Group("/audit")
		audit.Use(requireAuth)
		{
			audit.GET("", middleware.RequireRole(models.RoleHRAdmin), auditHandler.Trail)
		}

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(requireAuth)
		{
			notifications.GET("", notificationHandler.List)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
