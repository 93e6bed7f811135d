package model

import (
	"encoding/json"
	"fmt"
	"os"

	domsvc "FraudGuard/internal/domain/service"
)

const TypeLogisticRegression = "logistic_regression"

// Artifact is a classifier read from disk that also knows the column names
// it was fitted on (possibly none).
type Artifact interface {
	domsvc.Classifier
	FeatureNames() []string
}

type header struct {
	Type string `json:"type"`
}

// LoadModel reads a JSON model export and returns the matching backend.
func LoadModel(path string) (Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return ParseModel(b)
}

// ParseModel decodes a JSON model export.
func ParseModel(b []byte) (Artifact, error) {
	var h header
	if err := json.Unmarshal(b, &h); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	switch h.Type {
	case TypeLogisticRegression, "":
		var lr LogisticRegression
		if err := json.Unmarshal(b, &lr); err != nil {
			return nil, fmt.Errorf("decode %s: %w", TypeLogisticRegression, err)
		}
		if err := lr.validate(); err != nil {
			return nil, err
		}
		return &lr, nil
	default:
		return nil, fmt.Errorf("unsupported model type %q", h.Type)
	}
}
