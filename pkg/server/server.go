package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shamank/smartwallet-console/pkg/gateway"
	"github.com/shamank/smartwallet-console/pkg/model"
	"go.uber.org/zap"
)

// Options configure the HTTP boundary.
type Options struct {
	// Version is reported by the heartbeat.
	Version string
	// ChainID reports the configured chain for the heartbeat; nil reports "".
	ChainID func() string
	// Health, when set, drives the heartbeat status.
	Health *HealthService
}

// Server routes HTTP requests into a Gateway.
type Server struct {
	gw     *gateway.Gateway
	opts   Options
	engine *gin.Engine
}

// New builds the router.
func New(gw *gateway.Gateway, opts Options) *Server {
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{gw: gw, opts: opts, engine: gin.New()}
	s.engine.Use(RequestID(), Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.POST("/execute", s.execute)
	s.engine.POST("/tools", s.tools)
	s.engine.GET("/heartbeat", s.heartbeat)

	api := s.engine.Group("/api")
	{
		api.POST("/execute", s.execute)
	}
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves on addr until ctx is done, then drains in-flight
// requests for up to grace.
func (s *Server) ListenAndServe(ctx context.Context, addr string, grace time.Duration) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis, grace)
}

// Serve is ListenAndServe over an already bound listener, which it closes.
func (s *Server) Serve(ctx context.Context, lis net.Listener, grace time.Duration) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("http listening", zap.String("addr", lis.Addr().String()))
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	zap.L().Info("http shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) execute(c *gin.Context) {
	var req model.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Failed("Error: invalid request body: "+err.Error()))
		return
	}
	resp := s.gw.Execute(c.Request.Context(), req)
	c.JSON(resp.HTTPStatus(), resp.ActionResponse)
}

func (s *Server) tools(c *gin.Context) {
	var req model.ToolsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Failed("Error: invalid request body: "+err.Error()))
		return
	}
	tools, err := s.gw.Describe(c.Request.Context(), req.Key())
	if err != nil {
		kind := gateway.KindOf(err)
		c.JSON(kind.HTTPStatus(), model.Failed(err.Error()))
		return
	}
	c.JSON(http.StatusOK, model.Succeeded(tools))
}

func (s *Server) heartbeat(c *gin.Context) {
	hb := model.Heartbeat{Status: "SERVING", Version: s.opts.Version}
	if s.opts.ChainID != nil {
		hb.ChainID = s.opts.ChainID()
	}
	status := http.StatusOK
	if s.opts.Health != nil && !s.opts.Health.Serving() {
		hb.Status = "NOT_SERVING"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, hb)
}
