package http

// ErrorResponse is the body of every non-2xx response.
// Detail carries the human-readable reason; clients surface it verbatim.
type ErrorResponse struct {
	Status  int               `json:"status" example:"400"`
	Message string            `json:"message" example:"Bad Request"`
	Detail  string            `json:"detail" example:"Amount must be greater than 0"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"Amount"`
	Message string                 `json:"message,omitempty" example:"Amount is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
