package service

// Classifier is a fitted binary model. Implementations must be safe for
// concurrent use and must not mutate state while scoring.
type Classifier interface {
	// Classify returns the predicted label, 0 or 1.
	Classify(features []float64) (int, error)
	// ClassifyProbability returns the probability of label 1.
	ClassifyProbability(features []float64) (float64, error)
}

// MetricsRecorder receives prediction telemetry.
type MetricsRecorder interface {
	RecordPrediction(riskLevel string, probability float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
