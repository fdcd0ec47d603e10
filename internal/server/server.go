package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roboadvisor/investai/internal/config"
	"github.com/roboadvisor/investai/internal/handler"
)

// Server owns the gin engine and the http.Server lifecycle.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	srv    *http.Server
	log    *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger, advisor handler.QueryService, market handler.MarketDashboard, version string) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	health := &handler.HealthHandler{Version: version}
	health.Register(engine)

	query := &handler.QueryHandler{Advisor: advisor, Logger: log}
	query.Register(engine)

	if market != nil {
		dash := &handler.DashboardHandler{Market: market, Logger: log}
		dash.Register(engine)
	}

	return &Server{
		cfg:    cfg,
		engine: engine,
		srv: &http.Server{
			Addr:    cfg.ServerAddr,
			Handler: engine,
		},
		log: log,
	}
}

// Run serves until the context is cancelled, then drains in-flight
// requests for up to 10 seconds.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("http server starting", zap.String("addr", s.cfg.ServerAddr))
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutdown requested")
	case err := <-errCh:
		s.log.Error("server error", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
