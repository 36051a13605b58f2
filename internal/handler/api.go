// Package handler exposes the scoring pipeline over HTTP.
package handler

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xinayida/anti-turing-test/internal/middleware"
	"github.com/xinayida/anti-turing-test/internal/models"
	"github.com/xinayida/anti-turing-test/internal/repository"
	"github.com/xinayida/anti-turing-test/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	pipeline    *service.Pipeline
	sessions    *service.SessionService
	questions   *service.QuestionBank
	authEnabled bool
	logger      *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(pipeline *service.Pipeline, sessions *service.SessionService, questions *service.QuestionBank, authEnabled bool, logger *zap.Logger) *Handler {
	return &Handler{
		pipeline:    pipeline,
		sessions:    sessions,
		questions:   questions,
		authEnabled: authEnabled,
		logger:      logger,
	}
}

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.POST("/sessions", h.StartSession)
		api.GET("/questions/random", h.RandomQuestion)
		api.POST("/analyze", h.Analyze)
	}

	reports := api.Group("")
	if h.authEnabled {
		reports.Use(middleware.SessionAuth(h.sessions, h.logger))
	}
	{
		reports.GET("/reports", h.ListReports)
		reports.GET("/reports/stats", h.GetStats)
		reports.GET("/reports/:session_id", h.GetReport)
		reports.GET("/export/csv", h.ExportCSV)
		reports.GET("/export/json", h.ExportJSON)
	}

	r.GET("/health", h.HealthCheck)
}

// StartSession opens a new session: a fresh session id, a question to
// answer, and a signed token when auth is enabled.
func (h *Handler) StartSession(c *gin.Context) {
	sessionID := h.sessions.NewSessionID()

	resp := gin.H{
		"session_id": sessionID,
		"question":   h.questions.Random(),
	}

	if h.authEnabled {
		token, err := h.sessions.IssueToken(sessionID)
		if err != nil {
			h.logger.Error("Failed to issue session token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
			return
		}
		resp["token"] = token
	}

	c.JSON(http.StatusOK, resp)
}

// RandomQuestion returns one open-ended question.
func (h *Handler) RandomQuestion(c *gin.Context) {
	c.JSON(http.StatusOK, h.questions.Random())
}

// Analyze scores one answer and returns the full report.
func (h *Handler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.pipeline.Analyze(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to analyze answer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetReport returns the stored report for a session.
func (h *Handler) GetReport(c *gin.Context) {
	sessionID := c.Param("session_id")

	report, err := h.pipeline.GetReport(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		h.logger.Error("Failed to get report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListReports returns recent reports.
func (h *Handler) ListReports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	reports, err := h.pipeline.ListReports(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list reports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"total":   len(reports),
	})
}

// GetStats returns classification statistics.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.pipeline.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportCSV exports recent reports to CSV.
func (h *Handler) ExportCSV(c *gin.Context) {
	reports, err := h.pipeline.ListReports(c.Request.Context(), 0)
	if err != nil {
		h.logger.Error("Failed to export CSV", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=reports.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"session_id", "overall_score", "classification", "analyzed_at"})
	for _, report := range reports {
		writer.Write([]string{
			report.SessionID,
			fmt.Sprintf("%.4f", report.OverallScore),
			report.Classification,
			report.AnalyzedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// ExportJSON exports recent reports to JSON.
func (h *Handler) ExportJSON(c *gin.Context) {
	reports, err := h.pipeline.ListReports(c.Request.Context(), 0)
	if err != nil {
		h.logger.Error("Failed to export JSON", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", "attachment; filename=reports.json")

	encoder := json.NewEncoder(c.Writer)
	encoder.SetIndent("", "  ")
	encoder.Encode(reports)
}

// HealthCheck returns service health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "anti-turing-test",
		"version": "1.0.0",
	})
}
