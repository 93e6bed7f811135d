package form

import (
	"fmt"
	"math"

	"FraudGuard/internal/domain/models"
	"FraudGuard/pkg/util"
)

// Field is one input shown on the form.
type Field struct {
	Name    string
	Label   string
	Help    string
	Default float64
	Min     *float64
	Max     *float64
	Step    string
	Integer bool
}

func bound(v float64) *float64 { return &v }

// AmountFields are rendered in the "Amount and time" group.
var AmountFields = []Field{
	{Name: "Amount", Label: "Amount", Help: "Transaction value", Default: 100, Min: bound(0.01), Max: bound(100000), Step: "0.01"},
	{Name: "Time", Label: "Time", Help: "Seconds since the first transaction", Default: 50000, Min: bound(0), Max: bound(259200), Step: "1", Integer: true},
}

// ComponentFields are the principal components the user may edit.
var ComponentFields = []Field{
	component("V1", -1.3), component("V2", 0.5), component("V3", -0.8), component("V4", 1.2), component("V5", -0.3),
	component("V11", 0.8), component("V12", -0.4), component("V13", 0.2), component("V14", -0.3), component("V15", 0.1),
	component("V16", -0.1), component("V17", -0.2), component("V18", 0.0), component("V19", 0.1), component("V20", -0.1),
}

// HiddenDefaults fill the components the form does not expose.
var HiddenDefaults = map[string]float64{
	"V6": -0.5, "V7": 0.2, "V8": -0.1, "V9": 0.3, "V10": -0.2,
	"V21": 0, "V22": 0, "V23": 0, "V24": 0, "V25": 0, "V26": 0, "V27": 0, "V28": 0,
}

func component(name string, def float64) Field {
	return Field{Name: name, Label: name, Help: "Principal component " + name[1:], Default: def, Step: "0.0001"}
}

func allFields() []Field {
	out := make([]Field, 0, len(AmountFields)+len(ComponentFields))
	out = append(out, AmountFields...)
	return append(out, ComponentFields...)
}

// DefaultValues returns the initial form contents as strings.
func DefaultValues() map[string]string {
	out := make(map[string]string)
	for _, f := range allFields() {
		out[f.Name] = util.FormatFloat(f.Default)
	}
	return out
}

// ParseValues range-checks the submitted inputs and builds a complete record.
// Absent inputs take their default. Every problem is reported, keyed by field.
func ParseValues(get func(string) string) (models.TransactionFeatures, map[string]string) {
	values := make(map[string]float64, len(models.FeatureNames))
	for k, v := range HiddenDefaults {
		values[k] = v
	}

	problems := make(map[string]string)
	for _, f := range allFields() {
		raw := get(f.Name)
		if raw == "" {
			values[f.Name] = f.Default
			continue
		}
		v, err := util.ParseFloat(raw)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			problems[f.Name] = fmt.Sprintf("%s must be a number", f.Label)
			continue
		}
		if f.Integer && v != math.Trunc(v) {
			problems[f.Name] = fmt.Sprintf("%s must be a whole number", f.Label)
			continue
		}
		if f.Min != nil && v < *f.Min {
			problems[f.Name] = fmt.Sprintf("%s must be at least %s", f.Label, util.FormatFloat(*f.Min))
			continue
		}
		if f.Max != nil && v > *f.Max {
			problems[f.Name] = fmt.Sprintf("%s must be at most %s", f.Label, util.FormatFloat(*f.Max))
			continue
		}
		values[f.Name] = v
	}

	if len(problems) > 0 {
		return models.TransactionFeatures{}, problems
	}
	return models.NewTransaction(values), nil
}
