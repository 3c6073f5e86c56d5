package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound       ErrorType = "NOT_FOUND"
	ErrorTypeAuthentication ErrorType = "AUTHENTICATION_ERROR"
	ErrorTypeForbidden      ErrorType = "FORBIDDEN"
	ErrorTypeResolution     ErrorType = "RESOLUTION_ERROR"
	ErrorTypeEntity         ErrorType = "ENTITY_ERROR"
	ErrorTypeConflict       ErrorType = "CONFLICT"
	ErrorTypeInternal       ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidProgress  ErrorCode = "INVALID_PROGRESS"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidRole      ErrorCode = "INVALID_ROLE"

	ErrCodeProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeMDANotFound     ErrorCode = "MDA_NOT_FOUND"
	ErrCodeProjectNotFound ErrorCode = "PROJECT_NOT_FOUND"
	ErrCodeReportNotFound  ErrorCode = "REPORT_NOT_FOUND"
	ErrCodeNoMDAAssigned   ErrorCode = "NO_MDA_ASSIGNED"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeAccountInactive    ErrorCode = "ACCOUNT_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeEmailTaken         ErrorCode = "EMAIL_TAKEN"

	ErrCodeUnauthorizedAccess ErrorCode = "UNAUTHORIZED_ACCESS"
	ErrCodeWriteRejected      ErrorCode = "WRITE_REJECTED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewAuthenticationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeAuthentication,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewResolutionError marks a failed profile or MDA lookup. Resolution
// failures are logged and leave the profile unset; they never abort the
// session itself.
func NewResolutionError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeResolution,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewEntityError marks a create/update rejected by the data store.
func NewEntityError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeEntity,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

var (
	ErrProfileNotFound = NewResolutionError("Profile not found", ErrCodeProfileNotFound)
	ErrMDANotFound     = NewResolutionError("MDA not found", ErrCodeMDANotFound)
	ErrProjectNotFound = NewNotFoundError("Project not found", ErrCodeProjectNotFound)
	ErrReportNotFound  = NewNotFoundError("Progress report not found", ErrCodeReportNotFound)

	ErrInvalidCredentials = NewAuthenticationError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrAccountInactive    = NewForbiddenError("Account is inactive", ErrCodeAccountInactive)
	ErrInvalidToken       = NewAuthenticationError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewAuthenticationError("Token has expired", ErrCodeTokenExpired)
	ErrEmailTaken         = NewConflictError("Email is already registered", ErrCodeEmailTaken)

	ErrUnauthorizedAccess = NewForbiddenError("Unauthorized access", ErrCodeUnauthorizedAccess)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
