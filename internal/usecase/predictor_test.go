package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"FraudGuard/internal/domain/models"
	"FraudGuard/internal/repository"
)

// stubModel returns fixed answers and remembers the last row it was given.
type stubModel struct {
	mu      sync.Mutex
	label   int
	prob    float64
	err     error
	lastRow []float64
}

func (s *stubModel) Classify(x []float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRow = append([]float64(nil), x...)
	return s.label, s.err
}

func (s *stubModel) ClassifyProbability(x []float64) (float64, error) {
	return s.prob, s.err
}

func (s *stubModel) FeatureNames() []string { return nil }

type recorder struct {
	predictions []string
	errs        []string
}

func (r *recorder) RecordPrediction(level string, _ float64) { r.predictions = append(r.predictions, level) }
func (r *recorder) RecordError(kind string)                  { r.errs = append(r.errs, kind) }
func (r *recorder) RecordLatency(string, float64)            {}

func sampleTransaction() models.TransactionFeatures {
	v := make(map[string]float64, len(models.FeatureNames))
	for i, n := range models.FeatureNames {
		v[n] = float64(i) / 10
	}
	v["Amount"] = 149.62
	return models.NewTransaction(v)
}

func TestPredictLowRisk(t *testing.T) {
	rec := &recorder{}
	p := NewPredictor(repository.NewArtifacts(&stubModel{label: 0, prob: 0.0327}, nil, nil), rec, nil)

	res, err := p.Predict(context.Background(), sampleTransaction())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := models.PredictionResult{Prediction: 0, IsFraud: false, FraudProbability: 0.0327, RiskLevel: models.RiskLow}
	if res != want {
		t.Fatalf("got %+v want %+v", res, want)
	}
	if len(rec.predictions) != 1 || rec.predictions[0] != "low" {
		t.Fatalf("prediction not recorded: %v", rec.predictions)
	}
}

func TestPredictHighRisk(t *testing.T) {
	p := NewPredictor(repository.NewArtifacts(&stubModel{label: 1, prob: 0.95}, nil, nil), nil, nil)
	res, err := p.Predict(context.Background(), sampleTransaction())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Prediction != 1 || !res.IsFraud || res.RiskLevel != models.RiskHigh {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestPredictRiskBoundaryIsExclusive(t *testing.T) {
	p := NewPredictor(repository.NewArtifacts(&stubModel{label: 1, prob: 0.8}, nil, nil), nil, nil)
	res, err := p.Predict(context.Background(), sampleTransaction())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RiskLevel != models.RiskLow {
		t.Fatalf("p=0.8 must be low risk, got %s", res.RiskLevel)
	}
}

func TestPredictFollowsFeatureOrder(t *testing.T) {
	m := &stubModel{}
	order := []string{"Amount", "Time", "V1"}
	p := NewPredictor(repository.NewArtifacts(m, order, nil), nil, nil)
	if _, err := p.Predict(context.Background(), sampleTransaction()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(m.lastRow, []float64{149.62, 0, 0.1}) {
		t.Fatalf("row not in declared order: %v", m.lastRow)
	}
}

func TestPredictNaturalOrderByDefault(t *testing.T) {
	m := &stubModel{}
	p := NewPredictor(repository.NewArtifacts(m, nil, nil), nil, nil)
	if _, err := p.Predict(context.Background(), sampleTransaction()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.lastRow) != 30 || m.lastRow[0] != 0 || m.lastRow[29] != 149.62 {
		t.Fatalf("unexpected row %v", m.lastRow)
	}
}

func TestPredictIsIdempotent(t *testing.T) {
	p := NewPredictor(repository.NewArtifacts(&stubModel{label: 1, prob: 0.91}, nil, nil), nil, nil)
	tx := sampleTransaction()
	first, _ := p.Predict(context.Background(), tx)
	second, _ := p.Predict(context.Background(), tx)
	if first != second {
		t.Fatalf("results differ: %+v vs %+v", first, second)
	}
}

func TestPredictWithoutModel(t *testing.T) {
	rec := &recorder{}
	p := NewPredictor(repository.NewArtifacts(nil, nil, nil), rec, nil)
	if _, err := p.Predict(context.Background(), sampleTransaction()); !errors.Is(err, ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	if len(rec.errs) != 1 || rec.errs[0] != "model_unavailable" {
		t.Fatalf("error not recorded: %v", rec.errs)
	}
}

func TestPredictModelErrorCarriesDetail(t *testing.T) {
	m := &stubModel{err: errors.New("X has 29 features, but model is expecting 30")}
	p := NewPredictor(repository.NewArtifacts(m, nil, nil), nil, nil)
	_, err := p.Predict(context.Background(), sampleTransaction())
	var perr *PredictionError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PredictionError, got %v", err)
	}
	if !strings.Contains(err.Error(), "expecting 30") {
		t.Fatalf("detail lost: %v", err)
	}
}

func TestPredictUnsetFieldIsPredictionError(t *testing.T) {
	tx := sampleTransaction()
	tx.V3 = nil
	p := NewPredictor(repository.NewArtifacts(&stubModel{}, nil, nil), nil, nil)
	var perr *PredictionError
	if _, err := p.Predict(context.Background(), tx); !errors.As(err, &perr) {
		t.Fatalf("expected PredictionError, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	full := NewPredictor(repository.NewArtifacts(&stubModel{}, nil, models.MetricsSnapshot{"roc_auc": 0.97}), nil, nil)
	h := full.Health(context.Background())
	if h.Status != models.StatusHealthy || !h.ModelLoaded || !h.MetricsLoaded || h.Message != healthyMessage {
		t.Fatalf("unexpected health %+v", h)
	}

	partial := NewPredictor(repository.NewArtifacts(&stubModel{}, nil, nil), nil, nil)
	h = partial.Health(context.Background())
	if h.Status != models.StatusUnhealthy || !h.ModelLoaded || h.MetricsLoaded || h.Message != unhealthyMessage {
		t.Fatalf("unexpected health %+v", h)
	}
}

func TestHealthRecoversFromPanic(t *testing.T) {
	p := NewPredictor(nil, nil, nil)
	h := p.Health(context.Background())
	if h.Status != models.StatusError {
		t.Fatalf("expected error status, got %+v", h)
	}
}

func TestMetrics(t *testing.T) {
	snap := models.MetricsSnapshot{"roc_auc": 0.97, "classification_report": map[string]interface{}{"1": map[string]interface{}{"recall": 0.61}}}
	p := NewPredictor(repository.NewArtifacts(nil, nil, snap), nil, nil)
	res, err := p.Metrics(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(res.Metrics, snap) {
		t.Fatalf("metrics altered: %v", res.Metrics)
	}

	empty := NewPredictor(repository.NewArtifacts(nil, nil, nil), nil, nil)
	if _, err := empty.Metrics(context.Background()); !errors.Is(err, ErrMetricsUnavailable) {
		t.Fatalf("expected ErrMetricsUnavailable, got %v", err)
	}
}
