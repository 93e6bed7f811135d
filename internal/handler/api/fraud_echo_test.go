package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"FraudGuard/internal/domain/models"
	"FraudGuard/internal/repository"
	modelsvc "FraudGuard/internal/services/model"
	"FraudGuard/internal/usecase"
	xhttp "FraudGuard/pkg/http"
	xlogger "FraudGuard/pkg/logger"

	"github.com/labstack/echo/v4"
)

type fixedModel struct {
	label int
	prob  float64
	err   error
	calls int
}

func (m *fixedModel) Classify([]float64) (int, error) {
	m.calls++
	return m.label, m.err
}

func (m *fixedModel) ClassifyProbability([]float64) (float64, error) { return m.prob, m.err }

func (m *fixedModel) FeatureNames() []string { return nil }

func newTestServer(a *repository.Artifacts) *echo.Echo {
	e := echo.New()
	h := NewFraudEchoHandler(xlogger.Nop(), usecase.NewPredictor(a, nil, nil))
	h.RegisterRoutes(e)
	return e
}

func transactionBody(t *testing.T, mutate func(map[string]interface{})) string {
	t.Helper()
	body := make(map[string]interface{}, len(models.FeatureNames))
	for _, n := range models.FeatureNames {
		body[n] = 0.1
	}
	body["Time"] = 0
	body["Amount"] = 149.62
	if mutate != nil {
		mutate(body)
	}
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) xhttp.ErrorResponse {
	t.Helper()
	var out xhttp.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestPredictOK(t *testing.T) {
	e := newTestServer(repository.NewArtifacts(&fixedModel{label: 1, prob: 0.95}, nil, nil))
	rec := do(e, http.MethodPost, "/predict", transactionBody(t, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var res models.PredictionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := models.PredictionResult{Prediction: 1, IsFraud: true, FraudProbability: 0.95, RiskLevel: models.RiskHigh}
	if res != want {
		t.Fatalf("got %+v want %+v", res, want)
	}
}

func TestPredictValidationHappensBeforeInference(t *testing.T) {
	cases := map[string]func(map[string]interface{}){
		"missing field": func(b map[string]interface{}) { delete(b, "V17") },
		"null field":    func(b map[string]interface{}) { b["V3"] = nil },
		"not a number":  func(b map[string]interface{}) { b["V5"] = "abc" },
		"zero amount":   func(b map[string]interface{}) { b["Amount"] = 0 },
		"negative":      func(b map[string]interface{}) { b["Amount"] = -5 },
	}
	for name, mutate := range cases {
		m := &fixedModel{}
		e := newTestServer(repository.NewArtifacts(m, nil, nil))
		rec := do(e, http.MethodPost, "/predict", transactionBody(t, mutate))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", name, rec.Code, rec.Body.String())
		}
		if body := decodeError(t, rec); body.Detail == "" || body.Status != http.StatusBadRequest {
			t.Fatalf("%s: unexpected body %+v", name, body)
		}
		if m.calls != 0 {
			t.Fatalf("%s: model must not be called", name)
		}
	}
}

func TestPredictMalformedJSON(t *testing.T) {
	e := newTestServer(repository.NewArtifacts(&fixedModel{}, nil, nil))
	rec := do(e, http.MethodPost, "/predict", `{"Time":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPredictWithoutModel(t *testing.T) {
	e := newTestServer(repository.NewArtifacts(nil, nil, nil))
	rec := do(e, http.MethodPost, "/predict", transactionBody(t, nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if body := decodeError(t, rec); !strings.Contains(body.Detail, "model not loaded") {
		t.Fatalf("unexpected detail %q", body.Detail)
	}
}

func TestPredictInferenceFailure(t *testing.T) {
	m := &fixedModel{err: errors.New("model expects 29 features, got 30")}
	e := newTestServer(repository.NewArtifacts(m, nil, nil))
	rec := do(e, http.MethodPost, "/predict", transactionBody(t, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeError(t, rec); !strings.Contains(body.Detail, "expects 29 features") {
		t.Fatalf("underlying detail lost: %q", body.Detail)
	}
}

func TestPredictNonFiniteDecisionIsBadRequest(t *testing.T) {
	coef := make([]float64, len(models.FeatureNames))
	coef[1], coef[2] = 10, 10
	raw, _ := json.Marshal(map[string]interface{}{"coefficients": coef, "intercept": 0})
	m, err := modelsvc.ParseModel(raw)
	if err != nil {
		t.Fatalf("parse model: %v", err)
	}
	e := newTestServer(repository.NewArtifacts(m, nil, nil))
	rec := do(e, http.MethodPost, "/predict", transactionBody(t, func(b map[string]interface{}) {
		b["V1"] = 1e308
		b["V2"] = -1e308
	}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := decodeError(t, rec); !strings.Contains(body.Detail, "not a number") {
		t.Fatalf("unexpected detail: %q", body.Detail)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(repository.NewArtifacts(nil, nil, models.MetricsSnapshot{"roc_auc": 0.97}))
	rec := do(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health must always answer 200, got %d", rec.Code)
	}
	var h models.HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &h); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if h.Status != models.StatusUnhealthy || h.ModelLoaded || !h.MetricsLoaded {
		t.Fatalf("unexpected health %+v", h)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestServer(repository.NewArtifacts(nil, nil, models.MetricsSnapshot{"roc_auc": 0.97}))
	rec := do(e, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var res models.MetricsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Metrics["roc_auc"] != 0.97 {
		t.Fatalf("unexpected metrics %v", res.Metrics)
	}

	missing := newTestServer(repository.NewArtifacts(nil, nil, nil))
	rec = do(missing, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeError(t, rec); !strings.Contains(body.Detail, "json.dump") {
		t.Fatalf("missing regeneration hint: %q", body.Detail)
	}
}
