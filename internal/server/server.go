package server

import (
	"context"
	"net/http"
	"time"

	"github.com/5afe/safe-notification-service/config"
	"github.com/5afe/safe-notification-service/internal/device"
	"github.com/5afe/safe-notification-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	engine *gin.Engine
	http   *http.Server
	uc     device.DeviceUsecase
	logger logger.Logger
	config config.Config
}

func NewServer(uc device.DeviceUsecase, logger logger.Logger, cfg config.Config) *Server {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		engine: gin.New(),
		uc:     uc,
		logger: logger,
		config: cfg,
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()

	s.http = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.health)

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/about/", s.about)
		v1.POST("/auth/", s.register)
		v1.POST("/pairing/", s.createPairing)
		v1.DELETE("/pairing/", s.deletePairing)
		v1.POST("/notifications/", s.notify)
		v1.POST("/simple-notifications/", s.trustedServer(), s.notifyTrusted)
	}

	v2 := s.engine.Group("/api/v2")
	{
		v2.POST("/auth/", s.registerBatch)
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
