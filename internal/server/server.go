package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"EquitySentinel/internal/llm"
	"EquitySentinel/internal/model"
	"EquitySentinel/internal/recorder"

	"github.com/gin-gonic/gin"
)

// Service is the analysis surface the HTTP API exposes.
type Service interface {
	Analyze(ctx context.Context, symbol string) (*model.Analysis, error)
	MarketSummary(ctx context.Context) ([]model.TickerSnapshot, error)
	History(ctx context.Context, symbol string) ([]model.OHLCV, error)
	QuerySymbol(symbol string) string
	DisplaySymbol(symbol string) string
}

// Server is the JSON API over a Service.
type Server struct {
	Service  Service
	Chatter  llm.Chatter // optional
	Recorder recorder.Recorder
	Engine   *gin.Engine

	srv *http.Server
}

// New builds a Server and registers its routes.
func New(svc Service, chatter llm.Chatter, rec recorder.Recorder) *Server {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	s := &Server{Service: svc, Chatter: chatter, Recorder: rec, Engine: engine}
	s.RegisterRoutes(engine)
	return s
}

// RegisterRoutes mounts every API route on r.
func (s *Server) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/analyze/:symbol", s.handleAnalyzeParam)
	api.POST("/analyze", s.handleAnalyzeBody)
	api.GET("/market_summary", s.handleMarketSummary)
	api.GET("/history/:symbol", s.handleHistory)
	api.POST("/chat", s.handleChat)

	r.GET("/download_csv/:symbol", s.handleDownloadCSV)
}

// ListenAndServe serves on addr until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("[INFO] HTTP server listening on %s", addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
