package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduskill/eduskill-api/internal/api/handler"
	"github.com/eduskill/eduskill-api/internal/api/middleware"
	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
	"github.com/eduskill/eduskill-api/internal/core/service"
	"github.com/eduskill/eduskill-api/internal/infrastructure/config"
	mongodb "github.com/eduskill/eduskill-api/internal/infrastructure/db/mongo"
	redisdb "github.com/eduskill/eduskill-api/internal/infrastructure/db/redis"
	"github.com/eduskill/eduskill-api/internal/infrastructure/genai"
	"github.com/eduskill/eduskill-api/internal/infrastructure/storage"
)

// NewRouter builds the Echo instance with every route registered and all
// dependencies wired.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
	}))
	e.Use(echoprometheus.NewMiddleware("eduskill"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	courseRepo := mongodb.NewCourseRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	certRepo := mongodb.NewCertificationRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, certRepo, log)
	courseService := service.NewCourseService(courseRepo, certRepo, userRepo, log)
	messageService := service.NewMessageService(messageRepo, userRepo, log)
	bookingService := service.NewBookingService(bookingRepo, userRepo, log)

	quota := redisdb.NewChatQuota(rdb, cfg.Chat.DailyQuota)
	var generator ports.ChatGenerator
	if cfg.Chat.GeminiAPIKey != "" {
		generator = genai.NewGeminiClient(cfg.Chat.GeminiAPIKey, cfg.Chat.Model)
	}
	chatService := service.NewChatService(quota, generator, log)

	store, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	courseHandler := handler.NewCourseHandler(courseService)
	messageHandler := handler.NewMessageHandler(messageService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	chatHandler := handler.NewChatHandler(chatService)
	uploadHandler := handler.NewUploadHandler(store)
	adminHandler := handler.NewAdminHandler(userService, userRepo, courseRepo, bookingRepo, certRepo)
	healthHandler := handler.NewHealthHandler(db, rdb)

	auth := middleware.Auth(cfg.JWTSecret)
	creatorOnly := middleware.RBAC(domain.RoleCreator, domain.RoleAdmin)
	clientOnly := middleware.RBAC(domain.RoleClient, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Probes, metrics, docs, static files ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", store.Dir())

	v1 := e.Group("/api/v1")

	// --- Auth ---
	v1.POST("/auth/signup", authHandler.Signup)
	v1.POST("/auth/login", authHandler.Login)
	v1.PATCH("/auth/update-me", userHandler.UpdateMe, auth)

	// --- Users & talent ---
	v1.GET("/users/talent", userHandler.ListTalent)
	v1.GET("/users/me", userHandler.Me, auth)
	v1.PATCH("/users/update-me", userHandler.UpdateMe, auth)
	v1.GET("/users/:id", userHandler.TalentProfile)
	v1.GET("/users", adminHandler.ListUsers, auth, adminOnly)

	// --- Courses & exams ---
	v1.GET("/courses", courseHandler.List)
	v1.GET("/courses/my-courses", courseHandler.MyCourses, auth, creatorOnly)
	v1.GET("/courses/:id", courseHandler.Get)
	v1.POST("/courses", courseHandler.Create, auth, creatorOnly)
	v1.PATCH("/courses/:id", courseHandler.Update, auth, creatorOnly)
	v1.DELETE("/courses/:id", courseHandler.Delete, auth, creatorOnly)
	v1.POST("/courses/:id/modules", courseHandler.AddModule, auth, creatorOnly)
	v1.POST("/courses/:id/exam", courseHandler.SetExam, auth, creatorOnly)
	v1.GET("/courses/:id/exam", courseHandler.GetExam, auth)
	v1.POST("/courses/:id/exam/submit", courseHandler.SubmitExam, auth)

	// --- Messaging ---
	v1.POST("/messages", messageHandler.Send, auth)
	v1.GET("/messages/conversations", messageHandler.Conversations, auth)
	v1.GET("/messages/:user_id", messageHandler.Thread, auth)

	// --- Bookings ---
	v1.POST("/bookings", bookingHandler.Create, auth, clientOnly)
	v1.GET("/bookings/my-bookings", bookingHandler.MyBookings, auth)
	v1.GET("/bookings/job-requests", bookingHandler.JobRequests, auth)
	v1.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus, auth)
	v1.POST("/bookings/:id/review", bookingHandler.SubmitReview, auth, clientOnly)

	// --- Assistant & uploads ---
	v1.POST("/chat", chatHandler.Ask, auth)
	v1.POST("/upload", uploadHandler.Upload, auth)

	// --- Admin ---
	v1.GET("/admin/users", adminHandler.ListUsers, auth, adminOnly)
	v1.GET("/admin/stats", adminHandler.Stats, auth, adminOnly)

	return e, nil
}
