package server

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"EquitySentinel/internal/calculator"
	"EquitySentinel/internal/collector"
	"EquitySentinel/internal/export"
	"EquitySentinel/internal/model"
	"EquitySentinel/internal/recorder"

	"github.com/gin-gonic/gin"
)

// errorRow is returned by the market summary when no ticker could be fetched.
var errorRow = []model.TickerSnapshot{{Symbol: "ERROR", Price: "-", Change: "-", Color: "red"}}

type analyzeRequest struct {
	Symbol string `json:"symbol" form:"symbol"`
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleAnalyzeParam(c *gin.Context) {
	s.analyze(c, c.Param("symbol"))
}

func (s *Server) handleAnalyzeBody(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s.analyze(c, req.Symbol)
}

func (s *Server) analyze(c *gin.Context, symbol string) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	a, err := s.Service.Analyze(c.Request.Context(), symbol)
	if err != nil {
		log.Printf("[ERROR] analyze %s: %v", symbol, err)
		c.JSON(statusFor(err), gin.H{"error": messageFor(err)})
		return
	}
	if err := s.Recorder.RecordAnalysis(recorder.NewAnalysisRecord(a, "api")); err != nil {
		log.Printf("[ERROR] record analysis %s: %v", a.Symbol, err)
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleMarketSummary(c *gin.Context) {
	rows, err := s.Service.MarketSummary(c.Request.Context())
	if err != nil || len(rows) == 0 {
		if err != nil {
			log.Printf("[ERROR] market summary: %v", err)
		}
		c.JSON(http.StatusOK, errorRow)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleHistory(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, 500)
	}
	recs, err := s.Recorder.RecentAnalyses(s.Service.QuerySymbol(c.Param("symbol")), limit)
	if err != nil {
		log.Printf("[ERROR] recent analyses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}
	if recs == nil {
		recs = []recorder.AnalysisRecord{}
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) handleDownloadCSV(c *gin.Context) {
	symbol := c.Param("symbol")
	bars, err := s.Service.History(c.Request.Context(), symbol)
	if err != nil {
		log.Printf("[ERROR] csv export %s: %v", symbol, err)
		c.String(http.StatusBadRequest, "Export failed.")
		return
	}
	var buf bytes.Buffer
	if err := export.WriteBarsCSV(&buf, bars); err != nil {
		log.Printf("[ERROR] csv export %s: %v", symbol, err)
		c.String(http.StatusInternalServerError, "Export failed.")
		return
	}
	name := export.FileName(s.Service.DisplaySymbol(symbol))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if s.Chatter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}
	reply, err := s.Chatter.Chat(c.Request.Context(), req.Message)
	if err != nil {
		log.Printf("[ERROR] chat: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant is not available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func statusFor(err error) int {
	var invalid *calculator.InvalidInputError
	switch {
	case errors.Is(err, collector.ErrNoData):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func messageFor(err error) string {
	var invalid *calculator.InvalidInputError
	switch {
	case errors.Is(err, collector.ErrNoData):
		return "no data for symbol"
	case errors.As(err, &invalid):
		return "unusable price data: " + invalid.Reason
	default:
		return "data could not be fetched"
	}
}
