package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ajharbinger/football-connector/internal/errors"
	"github.com/ajharbinger/football-connector/internal/logger"
	"github.com/ajharbinger/football-connector/internal/models"
	"github.com/ajharbinger/football-connector/internal/services"
	"github.com/ajharbinger/football-connector/internal/upstream"
	"github.com/ajharbinger/football-connector/pkg/config"
)

// Mock prediction service for testing
type mockPredictionService struct {
	prediction *models.Prediction
	list       *models.PredictionList
	err        error
	lastN      int
	lastID     int
}

func (m *mockPredictionService) TopPredictions(ctx context.Context, n int) (*models.PredictionList, error) {
	m.lastN = n
	if m.err != nil {
		return nil, m.err
	}
	return m.list, nil
}

func (m *mockPredictionService) AnalyzeFixture(ctx context.Context, fixtureID int) (*models.Prediction, error) {
	m.lastID = fixtureID
	if m.err != nil {
		return nil, m.err
	}
	return m.prediction, nil
}

// Mock fixture service for testing
type mockFixtureService struct {
	envelope *upstream.Envelope
	err      error
	lastDate string
	lastNext int
}

func (m *mockFixtureService) Today(ctx context.Context) (*upstream.Envelope, error) {
	return m.envelope, m.err
}

func (m *mockFixtureService) Live(ctx context.Context) (*upstream.Envelope, error) {
	return m.envelope, m.err
}

func (m *mockFixtureService) ByDate(ctx context.Context, date string) (*upstream.Envelope, error) {
	m.lastDate = date
	return m.envelope, m.err
}

func (m *mockFixtureService) ByLeague(ctx context.Context, leagueID string, next int) (*upstream.Envelope, error) {
	m.lastNext = next
	return m.envelope, m.err
}

func setupTestRouter(fixtures services.FixtureService, predictions services.PredictionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, &services.Services{Fixtures: fixtures, Predictions: predictions},
		upstream.NewHealthMonitor(), &config.Config{APIFootballKey: "k"})
	return router
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHome(t *testing.T) {
	router := setupTestRouter(&mockFixtureService{}, &mockPredictionService{})

	w := doGet(router, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "running", decodeBody(t, w)["status"])
}

func TestAnalyzeFixture_Success(t *testing.T) {
	mock := &mockPredictionService{prediction: &models.Prediction{
		FixtureID:     1035,
		Fixture:       "Manchester United vs Liverpool",
		Probabilities: models.Probabilities{HomeWin: 44.7, Draw: 17.65, AwayWin: 37.65},
	}}
	router := setupTestRouter(&mockFixtureService{}, mock)

	w := doGet(router, "/ufp/analyze/1035")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1035, mock.lastID)

	body := decodeBody(t, w)
	assert.Equal(t, "Manchester United vs Liverpool", body["fixture"])
	probabilities := body["probabilities"].(map[string]interface{})
	assert.Equal(t, 44.7, probabilities["home_win"])
}

func TestAnalyzeFixture_NotFoundIs200WithId(t *testing.T) {
	mock := &mockPredictionService{err: apperrors.NotFound("fixture 777 not found", nil)}
	router := setupTestRouter(&mockFixtureService{}, mock)

	w := doGet(router, "/ufp/analyze/777")
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "777", body["fixture_id"])
	assert.Contains(t, body["error"], "777")
}

func TestAnalyzeFixture_InvalidId(t *testing.T) {
	mock := &mockPredictionService{}
	router := setupTestRouter(&mockFixtureService{}, mock)

	for _, id := range []string{"abc", "0", "-4"} {
		w := doGet(router, "/ufp/analyze/"+id)
		assert.Equal(t, http.StatusBadRequest, w.Code, "id %s", id)
		assert.Equal(t, id, decodeBody(t, w)["fixture_id"])
	}
	assert.Equal(t, 0, mock.lastID, "service must not be called for invalid ids")
}

func TestAnalyzeFixture_UpstreamFailureRendersSentinel(t *testing.T) {
	failure := &upstream.Failure{Message: "unexpected status code 500", Source: "/fixtures?id=5"}
	mock := &mockPredictionService{err: apperrors.UpstreamError("failed to fetch fixture 5", failure)}
	router := setupTestRouter(&mockFixtureService{}, mock)

	w := doGet(router, "/ufp/analyze/5")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "unexpected status code 500", body["error"])
	assert.Equal(t, "/fixtures?id=5", body["source"])
}

func TestGetTopPredictions(t *testing.T) {
	mock := &mockPredictionService{list: &models.PredictionList{Date: "2025-10-12", Count: 0}}
	router := setupTestRouter(&mockFixtureService{}, mock)

	w := doGet(router, "/predict/top/5")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, mock.lastN)
	assert.Equal(t, "2025-10-12", decodeBody(t, w)["date"])

	w = doGet(router, "/predict/top/zero")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFixtureProxies_PassBodyThrough(t *testing.T) {
	raw := `{"get":"fixtures","errors":[],"results":0,"response":[]}`
	mock := &mockFixtureService{envelope: &upstream.Envelope{Raw: json.RawMessage(raw)}}
	router := setupTestRouter(mock, &mockPredictionService{})

	for _, path := range []string{"/fixtures/today", "/fixtures/live", "/fixtures/date/2025-10-12", "/fixtures/league/39"} {
		w := doGet(router, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, raw, w.Body.String(), path)
	}
	assert.Equal(t, "2025-10-12", mock.lastDate)
	assert.Equal(t, services.DefaultLeagueNext, mock.lastNext)
}

func TestFixturesByLeague_NextParameter(t *testing.T) {
	mock := &mockFixtureService{envelope: &upstream.Envelope{Raw: json.RawMessage(`{}`)}}
	router := setupTestRouter(mock, &mockPredictionService{})

	w := doGet(router, "/fixtures/league/39?next=5")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, mock.lastNext)

	for _, next := range []string{"0", "51", "many"} {
		w = doGet(router, "/fixtures/league/39?next="+next)
		assert.Equal(t, http.StatusBadRequest, w.Code, "next=%s", next)
	}
}

func TestFixtureProxies_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"gateway failure", apperrors.UpstreamError("x", &upstream.Failure{Message: "timeout", Source: "/fixtures?live=all"}), http.StatusBadGateway},
		{"invalid input", apperrors.InvalidInput("next must be between 1 and 50", nil), http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter(&mockFixtureService{err: tt.err}, &mockPredictionService{})
			w := doGet(router, "/fixtures/live")
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, decodeBody(t, w)["error"])
		})
	}
}

func TestFixtureProxies_PlainErrorIsNotLeaked(t *testing.T) {
	router := setupTestRouter(&mockFixtureService{err: errors.New("dial tcp 10.0.0.7:443: secret detail")}, &mockPredictionService{})

	w := doGet(router, "/fixtures/today")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decodeBody(t, w)["error"])
}

func TestListRoutes_ListsEveryRegisteredPath(t *testing.T) {
	router := setupTestRouter(&mockFixtureService{}, &mockPredictionService{})

	w := doGet(router, "/routes")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AvailableRoutes []string `json:"available_routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	listing := strings.Join(body.AvailableRoutes, "\n")
	for _, route := range router.Routes() {
		assert.Contains(t, listing, route.Method+" "+route.Path)
	}
	assert.Contains(t, listing, "GetToday: GET /fixtures/today")
	assert.Contains(t, listing, "ListRoutes: GET /routes")
}

func TestHealthEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	monitor := upstream.NewHealthMonitor()
	router := gin.New()
	SetupRoutes(router, &services.Services{Fixtures: &mockFixtureService{}, Predictions: &mockPredictionService{}},
		monitor, &config.Config{})

	w := doGet(router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["healthy"])
	assert.Equal(t, false, body["api_key_configured"])
	assert.Contains(t, body, "upstream_health")

	for i := 0; i < 5; i++ {
		monitor.RecordFailure("/fixtures", http.StatusInternalServerError, "unexpected status code 500")
	}
	w = doGet(router, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/health/upstream/reset", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, monitor.IsHealthy())
}

func TestFixturesByDate_EndToEndPassthrough(t *testing.T) {
	var gotDate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDate = r.URL.Query().Get("date")
		w.Write([]byte(`{"errors":[],"results":0,"response":[]}`))
	}))
	defer server.Close()

	cfg := &config.Config{
		BaseURL:                   server.URL,
		UpstreamTimeout:           time.Second,
		UpstreamRequestsPerSecond: 10,
		FixturesTimezone:          "UTC",
	}
	client := upstream.NewClient(cfg, logger.Nop())
	defer client.Close()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, services.NewServices(client, cfg, logger.Nop()), client.Health(), cfg)

	for _, date := range []string{"2025-10-12", "12.10.2025", "yesterday"} {
		w := doGet(router, "/fixtures/date/"+date)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, date, gotDate)
	}
}
