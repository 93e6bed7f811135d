package di

import (
	"fmt"

	"FraudGuard/internal/client"
	"FraudGuard/internal/handler/api"
	"FraudGuard/internal/handler/form"
	"FraudGuard/internal/repository"
	"FraudGuard/internal/usecase"
	"FraudGuard/pkg/config"
	xhttp "FraudGuard/pkg/http"
	pkgkafka "FraudGuard/pkg/kafka"
	applogger "FraudGuard/pkg/logger"
	"FraudGuard/pkg/metrics"
	"FraudGuard/pkg/server"
)

// ProvideLogger creates the application logger from the logging section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New(nil)
}

// ProvideArtifacts loads the model bundle once and publishes what was found.
func ProvideArtifacts(cfg *config.Config, l *applogger.Logger, rec *metrics.Recorder) *repository.Artifacts {
	a := repository.LoadArtifacts(repository.PathsFromConfig(cfg), l)
	caps := a.Capabilities()
	rec.RecordArtifact("model", caps.ModelLoaded)
	rec.RecordArtifact("metrics", caps.MetricsLoaded)
	rec.RecordArtifact("feature_list", caps.FeatureOrderLoaded)
	l.Info("artifacts ready",
		applogger.Bool("model_loaded", caps.ModelLoaded),
		applogger.Bool("metrics_loaded", caps.MetricsLoaded),
		applogger.String("feature_order", string(a.FeatureOrderSource())))
	return a
}

func ProvidePredictor(a *repository.Artifacts, rec *metrics.Recorder, l *applogger.Logger) *usecase.Predictor {
	return usecase.NewPredictor(a, rec, l)
}

func ProvideFraudHandler(l *applogger.Logger, p *usecase.Predictor) *api.FraudEchoHandler {
	return api.NewFraudEchoHandler(l, p)
}

// ProvideAPIServer builds the inference HTTP server.
func ProvideAPIServer(cfg *config.Config, l *applogger.Logger, h *api.FraudEchoHandler) *xhttp.Server {
	return xhttp.NewServer(h, serverOptions(cfg, l, cfg.Server.Port)...)
}

// ProvideKafkaProducer creates the log shipping producer, or nil when log
// shipping is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.LogShipping.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.LogShipping.Brokers),
		pkgkafka.WithCompression(cfg.LogShipping.Compression),
		pkgkafka.WithRequiredAcks(cfg.LogShipping.RequiredAcks),
		pkgkafka.WithTimeouts(cfg.LogShipping.BatchTimeout, cfg.LogShipping.WriteTimeout),
		pkgkafka.WithAsync(false),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

func ProvideFraudClient(cfg *config.Config) *client.Client {
	return client.New(cfg.Client.APIURL, client.WithTimeout(cfg.Client.Timeout))
}

func ProvideFormHandler(cfg *config.Config, l *applogger.Logger, c *client.Client) (*form.FormEchoHandler, error) {
	return form.NewFormEchoHandler(l, c, cfg.Client.APIURL, cfg.Client.Timeout)
}

// ProvideFormServer builds the form HTTP server on its own port.
func ProvideFormServer(cfg *config.Config, l *applogger.Logger, h *form.FormEchoHandler) *xhttp.Server {
	return xhttp.NewServer(h, serverOptions(cfg, l, cfg.Form.Port)...)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, srv *xhttp.Server, producer *pkgkafka.Producer) *server.App {
	return server.New(cfg, l, srv, producer)
}

func serverOptions(cfg *config.Config, l *applogger.Logger, port int) []xhttp.ServerOption {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
	}
}
