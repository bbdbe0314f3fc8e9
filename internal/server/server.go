package server

import (
	"context"
	"net/http"

	"fitclub/internal/auth"
	"fitclub/internal/availability"
	"fitclub/internal/class"
	"fitclub/internal/config"
	"fitclub/internal/email"
	"fitclub/internal/registration"
	"fitclub/internal/room"
	"fitclub/internal/session"
	"fitclub/internal/trainer"
	"fitclub/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
	http   *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RequestLoggingMiddleware())

	userRepo := user.NewRepository(db)
	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret))

	availabilityRepo := availability.NewRepository(db)
	availabilityHandler := availability.NewHandler(availability.NewService(availabilityRepo))

	sessionRepo := session.NewRepository(db)
	sessionHandler := session.NewHandler(session.NewService(sessionRepo, userRepo, emailService))

	classRepo := class.NewRepository(db)
	classHandler := class.NewHandler(class.NewService(classRepo, userRepo, emailService))

	registrationRepo := registration.NewRepository(db)
	registrationHandler := registration.NewHandler(registration.NewService(registrationRepo, userRepo, emailService))

	roomHandler := room.NewHandler(room.NewRepository(db))

	trainerHandler := trainer.NewHandler(trainer.NewService(sessionRepo, classRepo))

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/rooms", roomHandler.ListRooms)

		protected.POST("/sessions", sessionHandler.BookSession)
		protected.POST("/sessions/:sessionID/cancel", sessionHandler.CancelSession)
		protected.GET("/sessions/upcoming", sessionHandler.ListUpcoming)

		protected.GET("/classes/upcoming", classHandler.ListUpcoming)
		protected.POST("/schedules/:scheduleID/register", registrationHandler.Register)
		protected.GET("/registrations", registrationHandler.ListMine)
		protected.DELETE("/registrations/:registrationID", registrationHandler.Cancel)
	}

	trainerGroup := router.Group("/trainer")
	trainerGroup.Use(authMiddleware, auth.RequireRole(user.RoleTrainer))
	{
		trainerGroup.POST("/availability", availabilityHandler.AddSlot)
		trainerGroup.GET("/availability", availabilityHandler.ListSlots)
		trainerGroup.DELETE("/availability/:slotID", availabilityHandler.DeleteSlot)
		trainerGroup.GET("/schedule", trainerHandler.Schedule)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(user.RoleAdmin))
	{
		admin.POST("/classes", classHandler.CreateClass)
		admin.GET("/classes", classHandler.ListClasses)
		admin.PATCH("/classes/:classID", classHandler.UpdateClass)

		admin.POST("/schedules", classHandler.CreateSchedule)
		admin.DELETE("/schedules/:scheduleID", classHandler.DeleteSchedule)
		admin.POST("/schedules/:scheduleID/cancel", classHandler.CancelSchedule)

		admin.POST("/rooms", roomHandler.CreateRoom)
		admin.GET("/rooms", roomHandler.ListRooms)
		admin.PATCH("/rooms/:roomID", roomHandler.UpdateRoom)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
