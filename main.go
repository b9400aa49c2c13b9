package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jg4611/mad2-by-amit/config"
	"github.com/jg4611/mad2-by-amit/internal/clock"
	"github.com/jg4611/mad2-by-amit/internal/handlers"
	"github.com/jg4611/mad2-by-amit/internal/middleware"
	"github.com/jg4611/mad2-by-amit/internal/repository"
	"github.com/jg4611/mad2-by-amit/internal/scheduler"
	"github.com/jg4611/mad2-by-amit/internal/service"
	"github.com/jg4611/mad2-by-amit/pkg/cache"
	"github.com/jg4611/mad2-by-amit/pkg/database"
	"github.com/jg4611/mad2-by-amit/pkg/email"
	"github.com/jg4611/mad2-by-amit/pkg/messaging"

	_ "github.com/jg4611/mad2-by-amit/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Quiz Master API
// @version 1.0

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg := config.Load()
	log.Println("Configuration loaded")

	pgClient, err := database.NewPostgresClient(&cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	log.Println("Connected to PostgreSQL")
	defer pgClient.Close()

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	if err := pgClient.InitSchema(initCtx); err != nil {
		log.Printf("Warning: Failed to initialize PostgreSQL schema: %v", err)
	} else {
		log.Println("PostgreSQL schema initialized")
	}
	cancelInit()

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")
	defer redisClient.Close()

	rabbitClient, err := messaging.NewRabbitMQClient(&cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	log.Println("Connected to RabbitMQ")
	defer rabbitClient.Close()

	smtpClient := email.NewSMTPClient(&cfg.SMTP)
	log.Println("SMTP client initialized")

	db := pgClient.GetDB()
	userRepo := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	scoreRepo := repository.NewScoreRepository(db)

	appClock := clock.System{}

	authService := service.NewAuthService(userRepo, redisClient, rabbitClient, cfg.JWT.Secret)
	userService := service.NewUserService(userRepo)
	quizService := service.NewQuizService(quizRepo, subjectRepo, questionRepo, rabbitClient, appClock)
	catalogService := service.NewCatalogService(subjectRepo, quizRepo)
	questionService := service.NewQuestionService(questionRepo, quizService)
	scoreService := service.NewScoreService(scoreRepo, questionRepo, quizService, appClock)
	reportService := service.NewReportService(userRepo, scoreService)
	notificationService := service.NewNotificationService(userRepo, smtpClient)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reminderScheduler := scheduler.New(rabbitClient, time.Duration(cfg.Scheduler.ReminderIntervalSec)*time.Second)
	reminderScheduler.Start(ctx)

	log.Println("Starting RabbitMQ consumers...")
	startConsumers(ctx, rabbitClient, notificationService)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "quizmaster",
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		if db.PingContext(c.Request.Context()) != nil || redisClient.Healthy(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(router, cfg, authService, handlerSet{
		auth:     handlers.NewAuthHandler(authService),
		users:    handlers.NewUserHandler(userService),
		catalog:  handlers.NewCatalogHandler(catalogService, quizService, appClock),
		quizzes:  handlers.NewQuizHandler(quizService, appClock),
		question: handlers.NewQuestionHandler(questionService),
		scores:   handlers.NewScoreHandler(scoreService),
		reports:  handlers.NewReportHandler(reportService, appClock),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("QuizMaster HTTP server starting on port %s...", cfg.Server.HTTPPort)
		log.Printf("Swagger doc available at http://localhost:%s/swagger/index.html", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("QuizMaster stopped")
}

type handlerSet struct {
	auth     *handlers.AuthHandler
	users    *handlers.UserHandler
	catalog  *handlers.CatalogHandler
	quizzes  *handlers.QuizHandler
	question *handlers.QuestionHandler
	scores   *handlers.ScoreHandler
	reports  *handlers.ReportHandler
}

func registerRoutes(router *gin.Engine, cfg *config.Config, authService *service.AuthService, h handlerSet) {
	blacklist := middleware.BlacklistFunc(func(c *gin.Context, jti string) bool {
		return authService.IsTokenBlacklisted(c.Request.Context(), jti)
	})

	api := router.Group("/api")

	api.POST("/auth/register", h.auth.Register)
	api.POST("/auth/login", h.auth.Login)

	authed := api.Group("")
	authed.Use(middleware.RequireRoles(cfg.JWT.Secret, blacklist))
	authed.POST("/auth/logout", h.auth.Logout)
	authed.GET("/subjects", h.catalog.GetSubjects)

	admin := api.Group("")
	admin.Use(middleware.RequireRoles(cfg.JWT.Secret, blacklist, repository.RoleAdmin))

	admin.POST("/subjects", h.catalog.CreateSubject)
	admin.PUT("/subjects/:id", h.catalog.UpdateSubject)
	admin.DELETE("/subjects/:id", h.catalog.DeleteSubject)

	admin.GET("/chapters", h.catalog.ListChapters)
	admin.POST("/chapters", h.catalog.CreateChapter)
	admin.PUT("/chapters/:id", h.catalog.UpdateChapter)
	admin.DELETE("/chapters/:id", h.catalog.DeleteChapter)

	admin.GET("/quizzes", h.quizzes.ListQuizzes)
	admin.POST("/quizzes", h.quizzes.CreateQuiz)
	admin.PUT("/quizzes/:id", h.quizzes.UpdateQuiz)
	admin.PATCH("/quizzes/:id/toggle", h.quizzes.ToggleQuiz)
	admin.DELETE("/quizzes/:id", h.quizzes.DeleteQuiz)

	admin.GET("/questions", h.question.ListQuestions)
	admin.POST("/questions", h.question.CreateQuestion)
	admin.PUT("/questions/:id", h.question.UpdateQuestion)
	admin.DELETE("/questions/:id", h.question.DeleteQuestion)

	admin.GET("/users", h.users.ListUsers)
	admin.POST("/users", h.users.CreateUser)
	admin.PUT("/users/:id", h.users.UpdateUser)
	admin.DELETE("/users/:id", h.users.DeleteUser)

	admin.GET("/reports/user-performance", h.reports.ExportUserPerformance)

	user := api.Group("")
	user.Use(middleware.RequireRoles(cfg.JWT.Secret, blacklist, repository.RoleUser))
	user.GET("/quizzes/available", h.quizzes.ListAvailable)
	user.GET("/quizzes/:id/attempt", h.quizzes.GetQuizForAttempt)
	user.POST("/scores", h.scores.SubmitQuiz)
	user.GET("/scores", h.scores.GetQuizHistory)
}

func startConsumers(ctx context.Context, rabbitClient *messaging.RabbitMQClient, notificationService *service.NotificationService) {
	go consumeQueue(ctx, rabbitClient, messaging.QueueDailyReminder, notificationService.HandleDailyReminder)
	go consumeQueue(ctx, rabbitClient, messaging.QueueQuizCreated, notificationService.HandleQuizCreated)
	go consumeQueue(ctx, rabbitClient, messaging.QueueUserRegistered, notificationService.HandleUserRegistered)

	log.Println("All RabbitMQ consumers started")
}

func consumeQueue(ctx context.Context, rabbitClient *messaging.RabbitMQClient, queueName string, handler func(context.Context, []byte) error) {
	msgs, err := rabbitClient.Consume(queueName)
	if err != nil {
		log.Printf("Failed to start consumer for queue %s: %v", queueName, err)
		return
	}

	log.Printf("Started consumer for queue: %s", queueName)

	for msg := range msgs {
		if err := handler(ctx, msg.Body); err != nil {
			log.Printf("Error handling message from %s: %v", queueName, err)
			msg.Nack(false, true)
		} else {
			msg.Ack(false)
		}
	}
}
