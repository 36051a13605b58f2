package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xinayida/anti-turing-test/internal/judge"
	"github.com/xinayida/anti-turing-test/internal/llm"
	"github.com/xinayida/anti-turing-test/internal/models"
	"github.com/xinayida/anti-turing-test/internal/repository"
	"github.com/xinayida/anti-turing-test/internal/service"
)

type cannedClient struct{ reply string }

func (c *cannedClient) Complete(context.Context, []llm.Message, llm.Options) (string, error) {
	return c.reply, nil
}

func (c *cannedClient) Close() error { return nil }

func (c *cannedClient) ModelInfo() map[string]interface{} { return nil }

func newTestRouter(t *testing.T, authEnabled bool) (*gin.Engine, *service.SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	cache := repository.NewMemoryStore(time.Minute, logger)
	t.Cleanup(func() { _ = cache.Close() })

	runner := judge.NewRunner(judge.NewLLMJudge(&cannedClient{reply: "Score: 0.8\nFine."}, time.Second, logger), logger)
	pipeline := service.NewPipeline(runner, nil, cache, logger)

	sessions := service.NewSessionService("test-secret")
	questions, err := service.NewQuestionBank("", 1)
	require.NoError(t, err)

	router := gin.New()
	NewHandler(pipeline, sessions, questions, authEnabled, logger).RegisterRoutes(router)
	return router, sessions
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, false)

	w := doJSON(router, http.MethodPost, "/api/v1/analyze", models.AnalyzeRequest{
		Text:           "Last week I finally cleaned out the garage. Found a box of letters I forgot I had.",
		ResponseDelays: []int64{1800, 2100},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var report models.AnalysisReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.NotEmpty(t, report.SessionID)
	assert.Contains(t, []string{models.ClassHuman, models.ClassAI, models.ClassAmbiguous}, report.Classification)
	assert.NotZero(t, report.InnovationFeatures.TimePerception.Score)
}

func TestAnalyzeEndpoint_RejectsEmptyText(t *testing.T) {
	router, _ := newTestRouter(t, false)

	t.Run("missing field fails binding", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/analyze", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("whitespace only", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/v1/analyze", gin.H{"text": "   "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetReportEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, false)

	t.Run("unknown session", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/reports/nonexistent", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("round trip", func(t *testing.T) {
		analyze := doJSON(router, http.MethodPost, "/api/v1/analyze", gin.H{
			"text":       "An answer worth fetching again later.",
			"session_id": "round-trip",
		})
		require.Equal(t, http.StatusOK, analyze.Code)

		w := doJSON(router, http.MethodGet, "/api/v1/reports/round-trip", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var report models.AnalysisReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, "round-trip", report.SessionID)
	})
}

func TestStartSessionEndpoint(t *testing.T) {
	t.Run("auth disabled", func(t *testing.T) {
		router, _ := newTestRouter(t, false)

		w := doJSON(router, http.MethodPost, "/api/v1/sessions", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["session_id"])
		assert.NotNil(t, resp["question"])
		assert.Nil(t, resp["token"])
	})

	t.Run("auth enabled issues a token", func(t *testing.T) {
		router, sessions := newTestRouter(t, true)

		w := doJSON(router, http.MethodPost, "/api/v1/sessions", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		token, _ := resp["token"].(string)
		require.NotEmpty(t, token)

		claims, err := sessions.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, resp["session_id"], claims.SessionID)
	})
}

func TestRandomQuestionEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, false)

	w := doJSON(router, http.MethodGet, "/api/v1/questions/random", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var q service.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.NotEmpty(t, q.Text)
}

func TestReportsRequireAuthWhenEnabled(t *testing.T) {
	router, sessions := newTestRouter(t, true)

	t.Run("missing header", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/reports", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := sessions.IssueToken("s1")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestListAndStatsEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, false)

	for _, sid := range []string{"a", "b"} {
		w := doJSON(router, http.MethodPost, "/api/v1/analyze", gin.H{
			"text":       "Answer for listing " + sid + ".",
			"session_id": sid,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	t.Run("list", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/reports", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Reports []models.AnalysisReport `json:"reports"`
			Total   int                     `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("stats", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/reports/stats", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var stats repository.Stats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 2, stats.Total)
	})
}

func TestExportEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, false)

	w := doJSON(router, http.MethodPost, "/api/v1/analyze", gin.H{
		"text":       "An answer to export.",
		"session_id": "export-me",
	})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("csv", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/export/csv", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[1], "export-me")
	})

	t.Run("json", func(t *testing.T) {
		w := doJSON(router, http.MethodGet, "/api/v1/export/json", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var reports []models.AnalysisReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reports))
		require.Len(t, reports, 1)
		assert.Equal(t, "export-me", reports[0].SessionID)
	})
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, false)

	w := doJSON(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
