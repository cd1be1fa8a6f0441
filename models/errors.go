package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeItemIDNotFound = "PRODUCT_ID_NOT_FOUND"
	ErrCodeFetchFailed    = "FETCH_FAILED"
	ErrCodeFetchTimeout   = "FETCH_TIMEOUT"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProductError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ProductError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ProductError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ProductError) Unwrap() error {
	return e.Err
}

// NewProductError creates a new ProductError.
func NewProductError(code, message string, err error) *ProductError {
	return &ProductError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *ProductError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
