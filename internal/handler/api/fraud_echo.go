package api

import (
	"errors"

	models "FraudGuard/internal/domain/models"
	"FraudGuard/internal/usecase"
	xhttp "FraudGuard/pkg/http"
	xlogger "FraudGuard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// FraudEchoHandler serves the inference API.
type FraudEchoHandler struct {
	logger    *xlogger.Logger
	predictor *usecase.Predictor
}

func NewFraudEchoHandler(logger *xlogger.Logger, predictor *usecase.Predictor) *FraudEchoHandler {
	return &FraudEchoHandler{logger: logger, predictor: predictor}
}

func (h *FraudEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/metrics", h.Metrics)
	e.POST("/predict", h.Predict)
}

func (h *FraudEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.predictor.Health(c.Request().Context()))
}

func (h *FraudEchoHandler) Metrics(c echo.Context) error {
	res, err := h.predictor.Metrics(c.Request().Context())
	if err != nil {
		return xhttp.AppErrorResponse(c, mapError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *FraudEchoHandler) Predict(c echo.Context) error {
	req := &models.TransactionFeatures{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}

	res, err := h.predictor.Predict(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("predict usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapError(err))
	}

	h.logger.Debug("prediction served",
		xlogger.Int("prediction", res.Prediction),
		xlogger.Float64("fraud_probability", res.FraudProbability),
		xlogger.String("risk_level", string(res.RiskLevel)),
	)
	return xhttp.SuccessResponse(c, res)
}

func mapError(err error) *xhttp.AppError {
	var perr *usecase.PredictionError
	switch {
	case errors.Is(err, usecase.ErrModelUnavailable):
		return xhttp.ServiceUnavailableError(err.Error())
	case errors.Is(err, usecase.ErrMetricsUnavailable):
		return xhttp.NotFoundError(err.Error())
	case errors.As(err, &perr):
		return xhttp.BadRequestError(perr.Error())
	default:
		return xhttp.InternalError("unexpected error").WithError(err)
	}
}
