package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"FraudGuard/internal/domain/models"
	modelsvc "FraudGuard/internal/services/model"
	"FraudGuard/pkg/config"
	xlogger "FraudGuard/pkg/logger"
)

// ArtifactPaths locates the files produced by the training pipeline.
type ArtifactPaths struct {
	Model       string
	Metrics     string
	FeatureList string
}

// PathsFromConfig joins the configured file names onto the artifact directory.
func PathsFromConfig(cfg *config.Config) ArtifactPaths {
	dir := cfg.Artifacts.ModelDir
	join := func(name string) string {
		if name == "" || filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(dir, name)
	}
	return ArtifactPaths{
		Model:       join(cfg.Artifacts.ModelFile),
		Metrics:     join(cfg.Artifacts.MetricsFile),
		FeatureList: join(cfg.Artifacts.FeatureListFile),
	}
}

// FeatureOrderSource says where the active column order came from.
type FeatureOrderSource string

const (
	OrderFromFeatureList FeatureOrderSource = "feature_list"
	OrderFromModel       FeatureOrderSource = "model"
	OrderNatural         FeatureOrderSource = "natural"
)

// Artifacts is the read-only bundle loaded once at startup and shared by all
// requests. Missing pieces leave the matching accessor empty.
type Artifacts struct {
	model       modelsvc.Artifact
	order       []string
	orderSource FeatureOrderSource
	metrics     models.MetricsSnapshot
}

// NewArtifacts assembles a bundle directly. An empty order means the natural one.
func NewArtifacts(model modelsvc.Artifact, order []string, metrics models.MetricsSnapshot) *Artifacts {
	a := &Artifacts{model: model, metrics: metrics, orderSource: OrderFromFeatureList}
	if len(order) == 0 {
		order = models.FeatureNames
		a.orderSource = OrderNatural
	}
	a.order = append([]string(nil), order...)
	return a
}

// LoadArtifacts reads every artifact it can find. It never fails: each problem
// is logged and only disables the capability it belongs to.
func LoadArtifacts(paths ArtifactPaths, l *xlogger.Logger) *Artifacts {
	a := &Artifacts{}

	if m, err := modelsvc.LoadModel(paths.Model); err != nil {
		l.Error("model not loaded, predictions disabled", xlogger.String("path", paths.Model), xlogger.Error(err))
	} else {
		a.model = m
		l.Info("model loaded", xlogger.String("path", paths.Model))
	}

	if snap, err := loadMetrics(paths.Metrics); err != nil {
		l.Error("metrics not loaded", xlogger.String("path", paths.Metrics), xlogger.Error(err))
	} else {
		a.metrics = snap
		l.Info("metrics loaded", xlogger.String("path", paths.Metrics), xlogger.Int("keys", len(snap)))
	}

	a.resolveOrder(paths.FeatureList, l)
	a.checkWidth(l)
	return a
}

func (a *Artifacts) resolveOrder(path string, l *xlogger.Logger) {
	var embedded []string
	if a.model != nil {
		embedded = a.model.FeatureNames()
		if err := validateOrder(embedded); err != nil {
			l.Error("model feature names ignored", xlogger.Error(err))
			embedded = nil
		}
	}

	order, err := loadFeatureList(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.Warn("feature list not found, it is optional", xlogger.String("path", path))
	case err != nil:
		l.Error("feature list unusable", xlogger.String("path", path), xlogger.Error(err))
	default:
		a.order, a.orderSource = order, OrderFromFeatureList
		l.Info("feature order loaded", xlogger.String("path", path), xlogger.Int("features", len(order)))
		if len(embedded) > 0 && !sameOrder(order, embedded) {
			l.Error("feature list disagrees with the order the model was trained on",
				xlogger.Strings("feature_list", order), xlogger.Strings("model", embedded))
		}
		return
	}

	if len(embedded) > 0 {
		a.order, a.orderSource = append([]string(nil), embedded...), OrderFromModel
		l.Warn("using feature order embedded in the model")
		return
	}

	a.order, a.orderSource = models.FeatureNames, OrderNatural
	l.Warn("no feature order available, falling back to natural column order; predictions are wrong if the model was trained on a different order",
		xlogger.Strings("order", a.order))
}

type widthReporter interface {
	Width() int
}

func (a *Artifacts) checkWidth(l *xlogger.Logger) {
	w, ok := a.model.(widthReporter)
	if !ok || a.model == nil {
		return
	}
	if w.Width() != len(a.order) {
		l.Error("model width does not match the feature order, predictions will fail",
			xlogger.Int("model_features", w.Width()), xlogger.Int("order_features", len(a.order)))
	}
}

// Model returns the classifier, or nil when it failed to load.
func (a *Artifacts) Model() modelsvc.Artifact { return a.model }

// FeatureOrder returns the active column order. It is never empty.
func (a *Artifacts) FeatureOrder() []string { return a.order }

// FeatureOrderSource says which artifact supplied FeatureOrder.
func (a *Artifacts) FeatureOrderSource() FeatureOrderSource { return a.orderSource }

// Metrics returns the evaluation report, or nil when it failed to load.
func (a *Artifacts) Metrics() models.MetricsSnapshot { return a.metrics }

// Capabilities reports which artifacts were loaded.
func (a *Artifacts) Capabilities() models.Capabilities {
	return models.Capabilities{
		ModelLoaded:        a.model != nil,
		MetricsLoaded:      a.metrics != nil,
		FeatureOrderLoaded: a.orderSource == OrderFromFeatureList,
	}
}

func loadMetrics(path string) (models.MetricsSnapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("metrics file is not UTF-8; write it with json.dump, not joblib.dump")
	}
	var snap models.MetricsSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("decode metrics: %w", err)
	}
	if snap == nil {
		return nil, fmt.Errorf("metrics file holds no JSON object")
	}
	return snap, nil
}

func loadFeatureList(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var order []string
	if err := json.Unmarshal(b, &order); err != nil {
		return nil, fmt.Errorf("decode feature list: %w", err)
	}
	if err := validateOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

func validateOrder(order []string) error {
	if len(order) == 0 {
		return fmt.Errorf("feature order is empty")
	}
	seen := make(map[string]struct{}, len(order))
	for _, name := range order {
		if !models.IsFeatureName(name) {
			return fmt.Errorf("unknown feature %q", name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate feature %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
