package models

import "fmt"

// FeatureNames is the natural column order of a transaction record.
var FeatureNames = []string{
	"Time",
	"V1", "V2", "V3", "V4", "V5", "V6", "V7", "V8", "V9", "V10",
	"V11", "V12", "V13", "V14", "V15", "V16", "V17", "V18", "V19", "V20",
	"V21", "V22", "V23", "V24", "V25", "V26", "V27", "V28",
	"Amount",
}

// TransactionFeatures is one card transaction as scored by the model.
// Pointers distinguish a missing field from an explicit zero.
type TransactionFeatures struct {
	Time *float64 `json:"Time" validate:"required"` // seconds since the first transaction of the dataset

	// anonymised principal components
	V1  *float64 `json:"V1" validate:"required"`
	V2  *float64 `json:"V2" validate:"required"`
	V3  *float64 `json:"V3" validate:"required"`
	V4  *float64 `json:"V4" validate:"required"`
	V5  *float64 `json:"V5" validate:"required"`
	V6  *float64 `json:"V6" validate:"required"`
	V7  *float64 `json:"V7" validate:"required"`
	V8  *float64 `json:"V8" validate:"required"`
	V9  *float64 `json:"V9" validate:"required"`
	V10 *float64 `json:"V10" validate:"required"`
	V11 *float64 `json:"V11" validate:"required"`
	V12 *float64 `json:"V12" validate:"required"`
	V13 *float64 `json:"V13" validate:"required"`
	V14 *float64 `json:"V14" validate:"required"`
	V15 *float64 `json:"V15" validate:"required"`
	V16 *float64 `json:"V16" validate:"required"`
	V17 *float64 `json:"V17" validate:"required"`
	V18 *float64 `json:"V18" validate:"required"`
	V19 *float64 `json:"V19" validate:"required"`
	V20 *float64 `json:"V20" validate:"required"`
	V21 *float64 `json:"V21" validate:"required"`
	V22 *float64 `json:"V22" validate:"required"`
	V23 *float64 `json:"V23" validate:"required"`
	V24 *float64 `json:"V24" validate:"required"`
	V25 *float64 `json:"V25" validate:"required"`
	V26 *float64 `json:"V26" validate:"required"`
	V27 *float64 `json:"V27" validate:"required"`
	V28 *float64 `json:"V28" validate:"required"`

	Amount *float64 `json:"Amount" validate:"required,gt=0"`
}

func (t *TransactionFeatures) fields() map[string]**float64 {
	return map[string]**float64{
		"Time": &t.Time,
		"V1":   &t.V1, "V2": &t.V2, "V3": &t.V3, "V4": &t.V4, "V5": &t.V5,
		"V6": &t.V6, "V7": &t.V7, "V8": &t.V8, "V9": &t.V9, "V10": &t.V10,
		"V11": &t.V11, "V12": &t.V12, "V13": &t.V13, "V14": &t.V14, "V15": &t.V15,
		"V16": &t.V16, "V17": &t.V17, "V18": &t.V18, "V19": &t.V19, "V20": &t.V20,
		"V21": &t.V21, "V22": &t.V22, "V23": &t.V23, "V24": &t.V24, "V25": &t.V25,
		"V26": &t.V26, "V27": &t.V27, "V28": &t.V28,
		"Amount": &t.Amount,
	}
}

// Values returns the set fields keyed by column name.
func (t *TransactionFeatures) Values() map[string]float64 {
	out := make(map[string]float64, len(FeatureNames))
	for k, p := range t.fields() {
		if *p != nil {
			out[k] = **p
		}
	}
	return out
}

// Vector lays the record out as a single model input row. An empty order means
// FeatureNames. Every name in order must be a known, set column.
func (t *TransactionFeatures) Vector(order []string) ([]float64, error) {
	if len(order) == 0 {
		order = FeatureNames
	}
	fields := t.fields()
	out := make([]float64, 0, len(order))
	for _, name := range order {
		p, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("feature %q expected by the model is not a transaction field", name)
		}
		if *p == nil {
			return nil, fmt.Errorf("feature %q is missing from the transaction", name)
		}
		out = append(out, **p)
	}
	return out, nil
}

// NewTransaction builds a record from a column map. Unknown keys are ignored
// and columns absent from values stay unset.
func NewTransaction(values map[string]float64) TransactionFeatures {
	var t TransactionFeatures
	fields := t.fields()
	for k, v := range values {
		if dst, ok := fields[k]; ok {
			v := v
			*dst = &v
		}
	}
	return t
}

// IsFeatureName reports whether name is a transaction column.
func IsFeatureName(name string) bool {
	for _, n := range FeatureNames {
		if n == name {
			return true
		}
	}
	return false
}
