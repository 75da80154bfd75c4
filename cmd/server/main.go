package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/taskflow-hq/taskflow-api/internal/config"
	"github.com/taskflow-hq/taskflow-api/internal/database"
	"github.com/taskflow-hq/taskflow-api/internal/directory"
	apierrors "github.com/taskflow-hq/taskflow-api/internal/errors"
	"github.com/taskflow-hq/taskflow-api/internal/handlers"
	"github.com/taskflow-hq/taskflow-api/internal/middleware"
	"github.com/taskflow-hq/taskflow-api/internal/notify"
	"github.com/taskflow-hq/taskflow-api/internal/repository"
	"github.com/taskflow-hq/taskflow-api/internal/scheduler"
	"github.com/taskflow-hq/taskflow-api/internal/services"
)

func main() {
	// Load .env if present, then configuration from the environment
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Notification channel
	topic := notify.NewTopic(cfg.NotifyTopic)
	dispatcher := notify.NewDispatcher(topic, cfg.AdminEmail, cfg.DirectoryGroup)

	// Repositories
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Directory lookups resolve assignee addresses from the Users store
	dir := directory.NewStoreDirectory(userRepo)

	// Reminder scheduler
	reminders := scheduler.NewService(dispatcher)
	reminders.Start()
	defer reminders.Stop()

	// Services
	taskService := services.NewTaskService(taskRepo, dir, dispatcher, reminders)
	userService := services.NewUserService(userRepo, dispatcher)

	// Handlers
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)

	// Initialize Gin router
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		apierrors.MethodNotAllowed(c)
	})

	r.Use(middleware.CORS(middleware.DefaultAllowMethods))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task management API is running",
		})
	})

	// Task routes
	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.ReplaceTaskDetails)
		tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
		tasks.DELETE("/:id", middleware.CORS(middleware.DeleteAllowMethods), taskHandler.DeleteTask)
	}

	// User routes
	users := r.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.GetUsers)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
