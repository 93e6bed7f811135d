package form

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"FraudGuard/internal/client"
	"FraudGuard/internal/domain/models"
	xlogger "FraudGuard/pkg/logger"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// FraudAPI is the part of the inference client the form needs.
type FraudAPI interface {
	Predict(ctx context.Context, tx models.TransactionFeatures) (models.PredictionResult, error)
	Health(ctx context.Context) (models.HealthStatus, error)
	Metrics(ctx context.Context) (models.MetricsResponse, error)
}

// Outcome kinds rendered after an analysis. Exactly one is shown per submit.
const (
	OutcomeFraud      = "fraud"
	OutcomeValid      = "valid"
	OutcomeAPIError   = "api_error"
	OutcomeConnection = "connection_error"
	OutcomeUnexpected = "unexpected_error"
)

var fraudActions = []string{
	"Block the transaction immediately",
	"Contact the cardholder",
	"Flag the account for enhanced monitoring",
	"Keep the logs for investigation",
}

// Outcome is the result panel of the form page.
type Outcome struct {
	Kind       string
	Percent    string
	Actions    []string
	Message    string
	APIURL     string
	StartHints []string
}

type formPage struct {
	Amount   []Field
	Features []Field
	Values   map[string]string
	Problems map[string]string
	Outcome  *Outcome
}

type fieldView struct {
	Field   Field
	Value   string
	Problem string
}

type statusPage struct {
	APIURL        string
	Health        *models.HealthStatus
	HealthError   string
	Metrics       []metricRow
	MetricsError  string
	FeatureCount  int
	HiddenDefault int
}

type metricRow struct {
	Name  string
	Value string
}

// FormEchoHandler serves the transaction form.
type FormEchoHandler struct {
	logger  *xlogger.Logger
	api     FraudAPI
	apiURL  string
	timeout time.Duration
	tmpl    *template.Template
}

func NewFormEchoHandler(logger *xlogger.Logger, api FraudAPI, apiURL string, timeout time.Duration) (*FormEchoHandler, error) {
	tmpl, err := template.New("form").Funcs(template.FuncMap{
		"fieldCtx": func(f Field, values, problems map[string]string) fieldView {
			return fieldView{Field: f, Value: values[f.Name], Problem: problems[f.Name]}
		},
		"fmtnum": func(f *float64) string {
			if f == nil {
				return ""
			}
			return fmt.Sprint(*f)
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse form templates: %w", err)
	}
	if timeout <= 0 {
		timeout = client.DefaultTimeout
	}
	return &FormEchoHandler{logger: logger, api: api, apiURL: apiURL, timeout: timeout, tmpl: tmpl}, nil
}

func (h *FormEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.Renderer = h
	e.GET("/", h.Index)
	e.POST("/analyze", h.Analyze)
	e.GET("/status", h.Status)
}

// Render implements echo.Renderer.
func (h *FormEchoHandler) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return h.tmpl.ExecuteTemplate(w, name, data)
}

func (h *FormEchoHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "form.html", h.page(DefaultValues(), nil, nil))
}

func (h *FormEchoHandler) Analyze(c echo.Context) error {
	values := DefaultValues()
	for name := range values {
		if v := c.FormValue(name); v != "" {
			values[name] = v
		}
	}

	tx, problems := ParseValues(c.FormValue)
	if len(problems) > 0 {
		return c.Render(http.StatusUnprocessableEntity, "form.html", h.page(values, problems, nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.api.Predict(ctx, tx)
	outcome := h.outcome(res, err)
	if err != nil {
		h.logger.Warn("analysis failed", xlogger.String("outcome", outcome.Kind), xlogger.Error(err))
	}
	return c.Render(http.StatusOK, "form.html", h.page(values, nil, outcome))
}

func (h *FormEchoHandler) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page := statusPage{
		APIURL:        h.apiURL,
		FeatureCount:  len(models.FeatureNames),
		HiddenDefault: len(HiddenDefaults),
	}
	if hs, err := h.api.Health(ctx); err != nil {
		page.HealthError = describe(err)
	} else {
		page.Health = &hs
	}
	if m, err := h.api.Metrics(ctx); err != nil {
		page.MetricsError = describe(err)
	} else {
		page.Metrics = flattenMetrics(m.Metrics)
	}
	return c.Render(http.StatusOK, "status.html", page)
}

func (h *FormEchoHandler) page(values, problems map[string]string, outcome *Outcome) formPage {
	return formPage{
		Amount:   AmountFields,
		Features: ComponentFields,
		Values:   values,
		Problems: problems,
		Outcome:  outcome,
	}
}

func (h *FormEchoHandler) outcome(res models.PredictionResult, err error) *Outcome {
	var (
		apiErr  *client.APIError
		connErr *client.ConnectionError
	)
	switch {
	case err == nil && res.IsFraud:
		return &Outcome{Kind: OutcomeFraud, Percent: percent(res.FraudProbability), Actions: fraudActions}
	case err == nil:
		return &Outcome{Kind: OutcomeValid, Percent: percent(1 - res.FraudProbability)}
	case errors.As(err, &apiErr):
		return &Outcome{Kind: OutcomeAPIError, Message: apiErr.Detail}
	case errors.As(err, &connErr):
		return &Outcome{
			Kind:    OutcomeConnection,
			Message: "Cannot connect to the fraud detection API",
			APIURL:  h.apiURL,
			StartHints: []string{
				"go run ./cmd/app -config config/config.yaml",
				"fraudctl serve",
			},
		}
	default:
		return &Outcome{Kind: OutcomeUnexpected, Message: err.Error()}
	}
}

func describe(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return err.Error()
}

func percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}
