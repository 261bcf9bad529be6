// Package web exposes the batch transcription pipeline over HTTP.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ecohspeech/internal/app/repository"
	"ecohspeech/internal/app/session"
	"ecohspeech/web/handlers"
)

// Config represents web server configuration.
type Config struct {
	Addr         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server wraps the gin engine and its HTTP listener.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer builds the router and wires every endpoint. The session store is
// shared between the batch runner and the read endpoints; history may be nil.
func NewServer(config Config, runner handlers.BatchRunner, store *session.Store, history repository.TranscriptionDAO, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"session":   store.ID(),
			"timestamp": time.Now().Unix(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers.NewAPIHandler(runner, store, history, logger)
	api := router.Group("/api")
	{
		api.POST("/transcriptions", h.CreateBatch)
		api.GET("/results", h.ListResults)
		api.DELETE("/results", h.ClearSession)
		api.GET("/stats", h.GetStats)
		api.GET("/languages", h.ListLanguages)
		api.GET("/export/zip", h.DownloadZip)
		api.GET("/history", h.ListHistory)
		api.GET("/debug/artifacts", h.ListDebugArtifacts)
		api.GET("/debug/artifacts/:name", h.DownloadDebugArtifact)
	}

	httpServer := &http.Server{
		Addr:         config.Addr,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Router exposes the handler tree, mostly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting web server", zap.String("addr", s.config.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
