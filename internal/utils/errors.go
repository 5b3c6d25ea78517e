package utils

import "fmt"

type AppError struct {
	Code    string
	Message string
	Origin  error // Original error that caused this error, if any
}

func (appErr *AppError) Error() string {
	if appErr.Origin != nil {
		return appErr.Message + ": " + appErr.Origin.Error()
	}
	return appErr.Message
}

// Standard error codes for the application
const (
	// Resource errors
	ErrNotFound     = "NOT_FOUND"
	ErrDuplicate    = "DUPLICATE"
	ErrInvalidInput = "INVALID_INPUT"

	// Authentication/Authorization errors
	ErrUnauthorized = "UNAUTHORIZED"
	ErrForbidden    = "FORBIDDEN" // User is authenticated but doesn't have permission
	ErrInvalidToken = "INVALID_TOKEN"

	// Farmer account errors
	ErrFarmerNotFound     = "FARMER_NOT_FOUND"
	ErrFarmerExists       = "FARMER_ALREADY_EXISTS"
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
	ErrInvalidMobile      = "INVALID_MOBILE_NUMBER"

	// Feed errors
	ErrPostNotFound    = "POST_NOT_FOUND"
	ErrCommentNotFound = "COMMENT_NOT_FOUND"
	ErrEmptyContent    = "EMPTY_CONTENT"

	// External service errors (weather, generative AI)
	ErrServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrNoDataForLocation  = "NO_DATA_FOR_LOCATION"

	// Actor communication errors
	ErrActorTimeout    = "ACTOR_TIMEOUT"
	ErrActorNotFound   = "ACTOR_NOT_FOUND"
	ErrMessageRejected = "MESSAGE_REJECTED"

	// Rate limiting
	ErrTooManyRequests = "TOO_MANY_REQUESTS"

	ErrDatabase = "database_error"
)

// Error creation helper functions
func NewAppError(code string, message string, originalErr error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Origin:  originalErr,
	}
}

// Specific error creators for common cases
func NewFarmerNotFoundError(farmerID string) *AppError {
	return &AppError{
		Code:    ErrFarmerNotFound,
		Message: "Farmer not found: " + farmerID,
	}
}

func NewUnauthorizedError(reason string) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "Unauthorized: " + reason,
	}
}

func NewPostNotFoundError(postID string) *AppError {
	return &AppError{
		Code:    ErrPostNotFound,
		Message: "Post not found: " + postID,
	}
}

func NewServiceUnavailableError(service string, originalErr error) *AppError {
	return &AppError{
		Code:    ErrServiceUnavailable,
		Message: fmt.Sprintf("%s service unavailable", service),
		Origin:  originalErr,
	}
}

func NewActorTimeoutError(actorName string) *AppError {
	return &AppError{
		Code:    ErrActorTimeout,
		Message: "Actor communication timeout: " + actorName,
	}
}

// Helper method to check if an error is of a specific type
func IsErrorCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// Helper method to check if an error is related to authentication
func IsAuthError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == ErrUnauthorized ||
			appErr.Code == ErrForbidden ||
			appErr.Code == ErrInvalidToken
	}
	return false
}

// AppErrorToHTTPStatus converts an AppError code to an HTTP status code.
func AppErrorToHTTPStatus(errorCode string) int {
	switch errorCode {
	case ErrNotFound, ErrFarmerNotFound, ErrPostNotFound, ErrCommentNotFound, ErrActorNotFound, ErrNoDataForLocation:
		return 404 // http.StatusNotFound
	case ErrInvalidInput, ErrInvalidCredentials, ErrInvalidMobile, ErrEmptyContent:
		return 400 // http.StatusBadRequest
	case ErrUnauthorized, ErrInvalidToken:
		return 401 // http.StatusUnauthorized
	case ErrForbidden:
		return 403 // http.StatusForbidden
	case ErrDuplicate, ErrFarmerExists:
		return 409 // http.StatusConflict
	case ErrTooManyRequests:
		return 429 // http.StatusTooManyRequests
	case ErrServiceUnavailable:
		return 503 // http.StatusServiceUnavailable
	case ErrDatabase, ErrActorTimeout, ErrMessageRejected:
		return 500 // http.StatusInternalServerError
	default:
		return 500 // http.StatusInternalServerError for unknown errors
	}
}
