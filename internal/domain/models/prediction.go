package models

// RiskLevel is the coarse label derived from the fraud probability.
type RiskLevel string

const (
	RiskHigh RiskLevel = "high"
	RiskLow  RiskLevel = "low"
)

// HighRiskThreshold is exclusive: exactly 0.8 is still low risk.
const HighRiskThreshold = 0.8

// RiskFromProbability maps a fraud probability to a risk level.
func RiskFromProbability(p float64) RiskLevel {
	if p > HighRiskThreshold {
		return RiskHigh
	}
	return RiskLow
}

// PredictionResult is the verdict for one transaction. It is never stored.
type PredictionResult struct {
	Prediction       int       `json:"prediction"`
	IsFraud          bool      `json:"is_fraud"`
	FraudProbability float64   `json:"fraud_probability"`
	RiskLevel        RiskLevel `json:"risk_level"`
}

// HealthStatus is the body of the health check.
type HealthStatus struct {
	Status        string `json:"status"`
	ModelLoaded   bool   `json:"model_loaded"`
	MetricsLoaded bool   `json:"metrics_loaded"`
	Message       string `json:"message"`
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusError     = "error"
)

// MetricsSnapshot is the evaluation report produced by the training pipeline,
// passed through verbatim.
type MetricsSnapshot map[string]interface{}

// MetricsResponse is the body of the metrics endpoint.
type MetricsResponse struct {
	Metrics MetricsSnapshot `json:"metrics"`
	Message string          `json:"message"`
}

// Capabilities records which startup artifacts are usable.
type Capabilities struct {
	ModelLoaded        bool `json:"model_loaded"`
	MetricsLoaded      bool `json:"metrics_loaded"`
	FeatureOrderLoaded bool `json:"feature_order_loaded"`
}

// Healthy is true when every capability the health check reports is present.
func (c Capabilities) Healthy() bool {
	return c.ModelLoaded && c.MetricsLoaded
}
