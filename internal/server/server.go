package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodbot/internal/handler"
	"moodbot/internal/middleware"
	"moodbot/internal/repository"
	"moodbot/internal/service"
)

type Server struct {
	router *gin.Engine
	logger *zap.Logger
}

func NewServer(
	checkinService *service.CheckinService,
	authService service.AuthService,
	checkinRepo repository.CheckinRepository,
	broadcaster handler.Broadcaster,
	logger *zap.Logger,
) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		logger: logger,
	}

	s.setupRoutes(checkinService, authService, checkinRepo, broadcaster)
	return s
}

func (s *Server) setupRoutes(
	checkinService *service.CheckinService,
	authService service.AuthService,
	checkinRepo repository.CheckinRepository,
	broadcaster handler.Broadcaster,
) {
	authHandler := handler.NewAuthHandler(authService, s.logger)
	statsHandler := handler.NewStatsHandler(checkinService, checkinRepo, s.logger)
	contentHandler := handler.NewContentHandler(checkinService, s.logger)
	broadcastHandler := handler.NewBroadcastHandler(broadcaster, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware(authService.JWTSecret(), s.logger))
	{
		authRequired.GET("/stats", statsHandler.GetDashboard)
		authRequired.POST("/content/reload", contentHandler.Reload)
		authRequired.POST("/broadcast", broadcastHandler.Broadcast)
	}
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
