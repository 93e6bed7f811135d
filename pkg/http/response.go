package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// JSONResponse writes data as the whole response body.
func JSONResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, data)
}

// SuccessResponse writes a 200 response.
func SuccessResponse(c echo.Context, data interface{}) error {
	return JSONResponse(c, http.StatusOK, data)
}

// ErrorJSON writes the standard error envelope.
func ErrorJSON(c echo.Context, statusCode int, detail string, errs []ValidationError) error {
	return c.JSON(statusCode, ErrorResponse{
		Status:  statusCode,
		Message: http.StatusText(statusCode),
		Detail:  detail,
		Errors:  errs,
	})
}

// ValidationErrorResponse writes a 400 built from request validation errors.
func ValidationErrorResponse(c echo.Context, errs []ValidationError) error {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return ErrorJSON(c, http.StatusBadRequest, strings.Join(msgs, "; "), errs)
}

// InternalServerErrorResponse writes internal server error.
func InternalServerErrorResponse(c echo.Context) error {
	return ErrorJSON(c, http.StatusInternalServerError, "Something went wrong", nil)
}

// AppErrorResponse writes an *AppError with its own status; anything else is a 500.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return InternalServerErrorResponse(c)
	}
	return ErrorJSON(c, appErr.Status, appErr.Message, []ValidationError{{Code: appErr.Code, Message: appErr.Message}})
}
