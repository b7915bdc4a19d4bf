package http

import (
	"github.com/sumitdas1984/financial-data-extraction-tool/internal/services/extraction"
	"github.com/sumitdas1984/financial-data-extraction-tool/internal/services/llm"
)

// ExtractRequest is the body of POST /api/v1/extract.
type ExtractRequest struct {
	Article  string `json:"article"`
	Provider string `json:"provider,omitempty"`
}

type TemplateResponse struct {
	Rows extraction.Table `json:"rows"`
}

type ProviderInfo struct {
	Name  llm.Provider `json:"name"`
	Model string       `json:"model"`
}

type ProvidersResponse struct {
	Default   llm.Provider   `json:"default"`
	Providers []ProviderInfo `json:"providers"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeProvider   = "PROVIDER_ERROR"
	ErrCodeTooLarge   = "REQUEST_TOO_LARGE"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// NewErrorResponse creates a new error response
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}
