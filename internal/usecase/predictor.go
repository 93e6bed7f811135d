package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FraudGuard/internal/domain/models"
	domsvc "FraudGuard/internal/domain/service"
	"FraudGuard/internal/repository"
	xlogger "FraudGuard/pkg/logger"
)

var (
	// ErrModelUnavailable means the classifier was not loaded at startup.
	ErrModelUnavailable = errors.New("model not loaded; the service cannot make predictions")
	// ErrMetricsUnavailable means the evaluation report was not loaded at startup.
	ErrMetricsUnavailable = errors.New("metrics not available; regenerate metrics.json with json.dump from the training pipeline")
)

// PredictionError wraps a failure to vectorise or score a transaction.
type PredictionError struct {
	Err error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed: %v", e.Err)
}

func (e *PredictionError) Unwrap() error { return e.Err }

const (
	healthyMessage   = "API and all components operational"
	unhealthyMessage = "Some components are not loaded"
	metricsMessage   = "Model performance metrics"
)

// Predictor answers health, metrics and prediction requests from an
// artifact bundle. It holds no per-request state.
type Predictor struct {
	artifacts *repository.Artifacts
	metrics   domsvc.MetricsRecorder
	logger    *xlogger.Logger
}

func NewPredictor(artifacts *repository.Artifacts, rec domsvc.MetricsRecorder, l *xlogger.Logger) *Predictor {
	if rec == nil {
		rec = nopRecorder{}
	}
	if l == nil {
		l = xlogger.Nop()
	}
	return &Predictor{artifacts: artifacts, metrics: rec, logger: l}
}

// Health reports which artifacts are usable. It never fails.
func (p *Predictor) Health(ctx context.Context) (status models.HealthStatus) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("health check panicked", xlogger.Any("panic", r))
			status = models.HealthStatus{Status: models.StatusError, Message: fmt.Sprint(r)}
		}
	}()

	caps := p.artifacts.Capabilities()
	status = models.HealthStatus{
		Status:        models.StatusUnhealthy,
		ModelLoaded:   caps.ModelLoaded,
		MetricsLoaded: caps.MetricsLoaded,
		Message:       unhealthyMessage,
	}
	if caps.Healthy() {
		status.Status = models.StatusHealthy
		status.Message = healthyMessage
	}
	return status
}

// Metrics returns the evaluation report exactly as it was loaded.
func (p *Predictor) Metrics(ctx context.Context) (models.MetricsResponse, error) {
	snap := p.artifacts.Metrics()
	if snap == nil {
		return models.MetricsResponse{}, ErrMetricsUnavailable
	}
	return models.MetricsResponse{Metrics: snap, Message: metricsMessage}, nil
}

// Predict scores one transaction.
func (p *Predictor) Predict(ctx context.Context, tx models.TransactionFeatures) (models.PredictionResult, error) {
	start := time.Now()
	defer func() {
		p.metrics.RecordLatency("predict", time.Since(start).Seconds())
	}()

	model := p.artifacts.Model()
	if model == nil {
		p.metrics.RecordError("model_unavailable")
		return models.PredictionResult{}, ErrModelUnavailable
	}

	row, err := tx.Vector(p.artifacts.FeatureOrder())
	if err != nil {
		p.metrics.RecordError("vectorise")
		return models.PredictionResult{}, &PredictionError{Err: err}
	}

	label, err := model.Classify(row)
	if err != nil {
		p.metrics.RecordError("classify")
		return models.PredictionResult{}, &PredictionError{Err: err}
	}
	prob, err := model.ClassifyProbability(row)
	if err != nil {
		p.metrics.RecordError("classify")
		return models.PredictionResult{}, &PredictionError{Err: err}
	}

	risk := models.RiskFromProbability(prob)
	p.metrics.RecordPrediction(string(risk), prob)

	return models.PredictionResult{
		Prediction:       label,
		IsFraud:          label == 1,
		FraudProbability: prob,
		RiskLevel:        risk,
	}, nil
}

type nopRecorder struct{}

func (nopRecorder) RecordPrediction(string, float64) {}
func (nopRecorder) RecordError(string)               {}
func (nopRecorder) RecordLatency(string, float64)    {}
