// Package apierror defines the closed set of error kinds a client can
// observe, and the responder that turns any internal failure into a
// stable JSON envelope.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Kind is the closed set of client-visible error categories. Dispatch
// on Kind is always an exhaustive switch; adding a kind without
// extending every switch is a compile-time smell, not a silent 500.
type Kind int

const (
	KindValidation Kind = iota
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindRateLimit
	KindDatabase
	KindExternalService
	KindHTTP
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindRateLimit:
		return "rate_limit"
	case KindDatabase:
		return "database"
	case KindExternalService:
		return "external_service"
	case KindHTTP:
		return "http"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

type APIError struct {
	Kind    Kind
	Message string

	// Field and Details qualify validation errors.
	Field   string
	Details string

	// Resource names the missing resource for not-found errors.
	Resource string

	// Service names the upstream dependency for external service errors.
	Service string

	// RetryAfter is the remaining throttle window in seconds.
	RetryAfter int

	// RequiredRoles echoes the role set the caller was missing.
	RequiredRoles []string

	// StatusOverride carries the explicit status of a KindHTTP error.
	StatusOverride int

	// Stack holds the captured stack trace for internal faults.
	// Exposed to clients in development mode only.
	Stack string

	Err error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Code() string {
	switch e.Kind {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindAuthentication:
		return "AUTH_ERROR"
	case KindAuthorization:
		return "AUTH_INSUFFICIENT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindRateLimit:
		return "RATE_LIMIT"
	case KindDatabase:
		return "DATABASE_ERROR"
	case KindExternalService:
		return "SERVICE_UNAVAILABLE"
	case KindHTTP:
		return "HTTP_ERROR"
	case KindInternal:
		return "INTERNAL_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

func (e *APIError) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindDatabase, KindExternalService:
		return http.StatusServiceUnavailable
	case KindHTTP:
		return e.StatusOverride
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func Validation(field, details string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: "request validation failed",
		Field:   field,
		Details: details,
	}
}

func Authentication(message string) *APIError {
	if message == "" {
		message = "you must authenticate to access this resource"
	}
	return &APIError{Kind: KindAuthentication, Message: message}
}

func Authorization(requiredRoles ...string) *APIError {
	return &APIError{
		Kind:          KindAuthorization,
		Message:       "you do not have the required permissions",
		RequiredRoles: requiredRoles,
	}
}

func NotFound(resource string) *APIError {
	return &APIError{
		Kind:     KindNotFound,
		Message:  fmt.Sprintf("%s not found", resource),
		Resource: resource,
	}
}

func RateLimited(retryAfter int) *APIError {
	return &APIError{
		Kind:       KindRateLimit,
		Message:    "too many failed attempts, try again later",
		RetryAfter: retryAfter,
	}
}

func Database(err error) *APIError {
	return &APIError{Kind: KindDatabase, Message: "database operation failed", Err: err}
}

func ExternalService(service string, err error) *APIError {
	return &APIError{
		Kind:    KindExternalService,
		Message: fmt.Sprintf("%s is unavailable", service),
		Service: service,
		Err:     err,
	}
}

func Internal(err error) *APIError {
	return &APIError{Kind: KindInternal, Message: "Internal server error occurred", Err: err}
}

// StatusCoder is satisfied by errors that already carry an explicit
// HTTP status, e.g. util.ServiceError.
type StatusCoder interface {
	error
	StatusCode() int
}

// FromError classifies an arbitrary error. Matching order is fixed:
// an already-classified *APIError wins, then any error carrying an
// explicit status code, and everything else is an internal fault.
func FromError(err error) *APIError {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		return &APIError{
			Kind:           KindHTTP,
			Message:        sc.Error(),
			StatusOverride: sc.StatusCode(),
			Err:            err,
		}
	}

	return Internal(err)
}

// Envelope is the wire shape of every error response.
type Envelope struct {
	ErrorMessage  string   `json:"error"`
	Code          string   `json:"code"`
	Field         string   `json:"field,omitempty"`
	Details       string   `json:"details,omitempty"`
	Resource      string   `json:"resource,omitempty"`
	Service       string   `json:"service,omitempty"`
	RetryAfter    int      `json:"retry_after,omitempty"`
	RequiredRoles []string `json:"required_roles,omitempty"`
	RequestID     string   `json:"request_id,omitempty"`
	Stack         string   `json:"stack,omitempty"`

	statusCode int
}

func (e *Envelope) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.statusCode)
	return nil
}

const (
	redactedDatabaseMessage = "database temporarily unavailable"
	redactedServiceMessage  = "service temporarily unavailable"
	redactedInternalMessage = "Internal server error occurred"
)

// Envelope renders the error for a client. Outside development mode the
// messages of database, external-service and internal errors are
// replaced with fixed strings and stacks are dropped.
func (e *APIError) Envelope(development bool, requestID string) *Envelope {
	env := &Envelope{
		ErrorMessage:  e.Message,
		Code:          e.Code(),
		Field:         e.Field,
		Details:       e.Details,
		Resource:      e.Resource,
		Service:       e.Service,
		RetryAfter:    e.RetryAfter,
		RequiredRoles: e.RequiredRoles,
		RequestID:     requestID,
		statusCode:    e.Status(),
	}

	if development {
		if e.Err != nil {
			env.ErrorMessage = e.Error()
		}
		env.Stack = e.Stack
		return env
	}

	switch e.Kind {
	case KindDatabase:
		env.ErrorMessage = redactedDatabaseMessage
	case KindExternalService:
		env.ErrorMessage = redactedServiceMessage
	case KindInternal:
		env.ErrorMessage = redactedInternalMessage
	}

	return env
}
