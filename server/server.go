// Package server exposes an engine over HTTP: graph snapshots and DOT
// export for readers, selection for input handlers, a construction feed, and
// Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TFMV/ontograph/engine"
	"github.com/TFMV/ontograph/graph"
	"github.com/TFMV/ontograph/ingest"
	"github.com/TFMV/ontograph/render"
)

// Server serves one engine.
type Server struct {
	engine *engine.Engine
	logger *slog.Logger
	router *gin.Engine
}

// New builds the router for e.
func New(e *engine.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{engine: e, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())

	api := r.Group("/api")
	api.GET("/graph", s.handleGraph)
	api.GET("/graph.dot", s.handleDOT)
	api.GET("/nodes/:id", s.handleNode)
	api.GET("/selected", s.handleSelected)
	api.POST("/select/:id", s.handleSelect)
	api.DELETE("/select/:id", s.handleDeselect)
	api.DELETE("/select", s.handleClearSelect)
	api.POST("/events", s.handleEvents)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on port until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "port", port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) handleGraph(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleDOT(c *gin.Context) {
	out, err := (&render.DOTRenderer{}).Render(s.engine.Snapshot())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "text/vnd.graphviz; charset=utf-8", out)
}

func (s *Server) handleNode(c *gin.Context) {
	node, err := s.engine.Node(c.Param("id"))
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, node)
}

func (s *Server) handleSelected(c *gin.Context) {
	node, err := s.engine.Selected()
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, node)
}

func (s *Server) handleSelect(c *gin.Context) {
	if err := s.engine.Select(c.Param("id")); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeselect(c *gin.Context) {
	if err := s.engine.Deselect(c.Param("id")); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleClearSelect(c *gin.Context) {
	s.engine.ClearSelect()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleEvents(c *gin.Context) {
	var events []ingest.Event
	if err := c.ShouldBindJSON(&events); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	applied, err := s.engine.Apply(events...)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"applied": applied, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, graph.ErrNotFound), errors.Is(err, engine.ErrNoSingleSelection):
		return http.StatusNotFound
	case errors.Is(err, ingest.ErrUnknownOp):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
