package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-scds/llm"
	"go-scds/pipeline"
	"go-scds/types"
	"go-scds/weather"
)

type stubHistory struct {
	series weather.DailySeries
	err    error
}

func (s stubHistory) FetchDailyHistory(context.Context, float64, float64) (weather.DailySeries, error) {
	return s.series, s.err
}

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, llm.Request) (string, error) {
	return "", errors.New("model unavailable")
}

func testRouter(pipe *pipeline.Pipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/scds/analyze", func(c *gin.Context) {
		Analyze(c, pipe)
	})
	r.GET("/api/scds/demo", Demo)
	return r
}

func offlinePipeline() *pipeline.Pipeline {
	return pipeline.New(stubHistory{series: demoSeries()}, llm.TemplateGenerator{})
}

func postAnalyze(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/scds/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func validBody() string {
	return `{
		"location": {"lat": -1.286, "lng": 36.817, "name": "Nairobi, Kenya"},
		"radius": 75,
		"priorities": {"economic": 50, "environmental": 30, "social": 20},
		"userPrompt": "Focus on drought resilience"
	}`
}

func TestAnalyzeRejectsMalformedBody(t *testing.T) {
	w := postAnalyze(testRouter(offlinePipeline()), "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeRejectsOutOfRangeFields(t *testing.T) {
	body := `{
		"location": {"lat": -1.286, "lng": 36.817, "name": "Nairobi, Kenya"},
		"radius": 5,
		"priorities": {"economic": 50, "environmental": 30, "social": 20}
	}`
	w := postAnalyze(testRouter(offlinePipeline()), body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "radius")
}

func TestAnalyzeStreamsStageFrames(t *testing.T) {
	w := postAnalyze(testRouter(offlinePipeline()), validBody())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	body := w.Body.String()
	assert.Contains(t, body, "Starting climate analysis...")
	for _, role := range []string{
		types.AgentMeteorologist,
		types.AgentAgronomist,
		types.AgentEconomist,
		types.AgentPlanner,
	} {
		assert.Contains(t, body, `"role":"`+role+`"`)
	}
	assert.Contains(t, body, "Analysis complete")
	assert.Contains(t, body, `"strategy"`)
	assert.Contains(t, body, `"impact"`)
	assert.Contains(t, body, `"run_id"`)
}

func TestAnalyzeReportsStageFailure(t *testing.T) {
	pipe := pipeline.New(stubHistory{series: demoSeries()}, failingGenerator{})
	w := postAnalyze(testRouter(pipe), validBody())

	body := w.Body.String()
	assert.Contains(t, body, "Error during analysis:")
	assert.Contains(t, body, types.AgentMeteorologist)
	assert.Contains(t, body, `"error":true`)
	assert.NotContains(t, body, "Analysis complete")
}
