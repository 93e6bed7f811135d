package form

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"FraudGuard/internal/client"
	"FraudGuard/internal/domain/models"
	xlogger "FraudGuard/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubAPI struct {
	result   models.PredictionResult
	err      error
	got      *models.TransactionFeatures
	deadline bool
	health   models.HealthStatus
	metrics  models.MetricsResponse
	statErr  error
}

func (s *stubAPI) Predict(ctx context.Context, tx models.TransactionFeatures) (models.PredictionResult, error) {
	s.got = &tx
	_, s.deadline = ctx.Deadline()
	return s.result, s.err
}

func (s *stubAPI) Health(context.Context) (models.HealthStatus, error) { return s.health, s.statErr }

func (s *stubAPI) Metrics(context.Context) (models.MetricsResponse, error) {
	return s.metrics, s.statErr
}

func newForm(t *testing.T, api FraudAPI) *echo.Echo {
	t.Helper()
	h, err := NewFormEchoHandler(xlogger.Nop(), api, "http://127.0.0.1:8000", time.Second)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func submit(e *echo.Echo, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIndexRendersDefaults(t *testing.T) {
	e := newForm(t, &stubAPI{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`name="Amount" value="100"`, `name="Time" value="50000"`, `name="V1" value="-1.3"`, `name="V20" value="-0.1"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in form", want)
		}
	}
	if strings.Contains(body, `name="V6"`) || strings.Contains(body, `name="V28"`) {
		t.Fatalf("hidden components must not be rendered")
	}
}

func TestAnalyzeSendsFullRecord(t *testing.T) {
	api := &stubAPI{result: models.PredictionResult{Prediction: 0, FraudProbability: 0.0327, RiskLevel: models.RiskLow}}
	e := newForm(t, api)
	rec := submit(e, url.Values{"Amount": {"149,62"}, "V14": {"-2.5"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if api.got == nil {
		t.Fatalf("api not called")
	}
	vec, err := api.got.Vector(nil)
	if err != nil {
		t.Fatalf("incomplete record: %v", err)
	}
	if len(vec) != 30 || *api.got.Amount != 149.62 || *api.got.V14 != -2.5 || *api.got.V6 != -0.5 || *api.got.V28 != 0 || *api.got.Time != 50000 {
		t.Fatalf("unexpected record %v", api.got.Values())
	}
	if !api.deadline {
		t.Fatalf("call must carry a deadline")
	}
	if !strings.Contains(rec.Body.String(), "VALID TRANSACTION") || !strings.Contains(rec.Body.String(), "96.7%") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAnalyzeFraudOutcome(t *testing.T) {
	api := &stubAPI{result: models.PredictionResult{Prediction: 1, IsFraud: true, FraudProbability: 0.95, RiskLevel: models.RiskHigh}}
	body := submit(newForm(t, api), url.Values{}).Body.String()
	if !strings.Contains(body, "FRAUD DETECTED") || !strings.Contains(body, "95.0%") || !strings.Contains(body, "Contact the cardholder") {
		t.Fatalf("unexpected body %s", body)
	}
	if strings.Contains(body, "VALID TRANSACTION") {
		t.Fatalf("two outcomes rendered")
	}
}

func TestAnalyzeErrorOutcomes(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&client.APIError{Status: 503, Detail: "model not loaded"}, "API error: model not loaded"},
		{&client.ConnectionError{URL: "http://127.0.0.1:8000", Err: errors.New("connection refused")}, "To start the API"},
		{&client.DecodeError{Status: 200, Err: errors.New("invalid character")}, "Unexpected error"},
	}
	for _, tc := range cases {
		body := submit(newForm(t, &stubAPI{err: tc.err}), url.Values{}).Body.String()
		if !strings.Contains(body, tc.want) {
			t.Fatalf("expected %q in %s", tc.want, body)
		}
		if strings.Contains(body, "FRAUD DETECTED") || strings.Contains(body, "VALID TRANSACTION") {
			t.Fatalf("verdict rendered alongside an error")
		}
	}
}

func TestAnalyzeRejectsOutOfRange(t *testing.T) {
	api := &stubAPI{}
	rec := submit(newForm(t, api), url.Values{"Amount": {"0"}, "Time": {"12.5"}, "V3": {"abc"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Amount must be at least 0.01", "Time must be a whole number", "V3 must be a number"} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q", want)
		}
	}
	if api.got != nil {
		t.Fatalf("api must not be called with invalid input")
	}
}

func TestStatusPage(t *testing.T) {
	api := &stubAPI{
		health:  models.HealthStatus{Status: models.StatusHealthy, ModelLoaded: true, MetricsLoaded: true, Message: "API and all components operational"},
		metrics: models.MetricsResponse{Metrics: models.MetricsSnapshot{"roc_auc": 0.97, "report": map[string]interface{}{"recall": 0.61}}},
	}
	rec := httptest.NewRecorder()
	newForm(t, api).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	body := rec.Body.String()
	for _, want := range []string{"API and all components operational", "roc_auc", "0.97", "report.recall"} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in %s", want, body)
		}
	}
}

func TestStatusPageAPIDown(t *testing.T) {
	api := &stubAPI{statErr: &client.ConnectionError{URL: "http://x", Err: errors.New("refused")}}
	rec := httptest.NewRecorder()
	newForm(t, api).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Health check failed") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestParseValuesDefaults(t *testing.T) {
	tx, problems := ParseValues(func(string) string { return "" })
	if problems != nil {
		t.Fatalf("unexpected problems %v", problems)
	}
	if len(tx.Values()) != len(models.FeatureNames) {
		t.Fatalf("record incomplete: %v", tx.Values())
	}
	if *tx.Amount != 100 || *tx.V1 != -1.3 || *tx.V10 != -0.2 {
		t.Fatalf("unexpected defaults %v", tx.Values())
	}
}

func TestParseValuesUpperBounds(t *testing.T) {
	_, problems := ParseValues(func(name string) string {
		switch name {
		case "Amount":
			return "100000.01"
		case "Time":
			return "259201"
		}
		return ""
	})
	if problems["Amount"] == "" || problems["Time"] == "" {
		t.Fatalf("expected range problems, got %v", problems)
	}
}
