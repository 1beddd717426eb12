package apierror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aionhq/gate/util"
)

func TestFromError_Classification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   Kind
		wantCode   string
		wantStatus int
	}{
		{
			name:       "already_classified_error_wins",
			err:        fmt.Errorf("wrapped: %w", Authentication("")),
			wantKind:   KindAuthentication,
			wantCode:   "AUTH_ERROR",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "explicit_status_carrier",
			err:        util.NewServiceError(http.StatusConflict, fmt.Errorf("already exists")),
			wantKind:   KindHTTP,
			wantCode:   "HTTP_ERROR",
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unclassified_error_is_internal",
			err:        fmt.Errorf("something broke"),
			wantKind:   KindInternal,
			wantCode:   "INTERNAL_ERROR",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "validation",
			err:        Validation("email", "please provide a valid email"),
			wantKind:   KindValidation,
			wantCode:   "VALIDATION_ERROR",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "authorization",
			err:        Authorization("admin"),
			wantKind:   KindAuthorization,
			wantCode:   "AUTH_INSUFFICIENT",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "not_found",
			err:        NotFound("api key"),
			wantKind:   KindNotFound,
			wantCode:   "NOT_FOUND",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "rate_limited",
			err:        RateLimited(3600),
			wantKind:   KindRateLimit,
			wantCode:   "RATE_LIMIT",
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "database",
			err:        Database(fmt.Errorf("connection refused")),
			wantKind:   KindDatabase,
			wantCode:   "DATABASE_ERROR",
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "external_service",
			err:        ExternalService("billing", fmt.Errorf("timeout")),
			wantKind:   KindExternalService,
			wantCode:   "SERVICE_UNAVAILABLE",
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ae := FromError(tc.err)
			require.Equal(t, tc.wantKind, ae.Kind)
			require.Equal(t, tc.wantCode, ae.Code())
			require.Equal(t, tc.wantStatus, ae.Status())
		})
	}
}

func TestFromError_ClassifiedErrorBeatsStatusCarrier(t *testing.T) {
	// An *APIError that also wraps a status carrier must classify by
	// its own kind, not the carried status.
	inner := util.NewServiceError(http.StatusConflict, fmt.Errorf("conflict"))
	ae := FromError(&APIError{Kind: KindDatabase, Message: "database operation failed", Err: inner})

	require.Equal(t, KindDatabase, ae.Kind)
	require.Equal(t, http.StatusServiceUnavailable, ae.Status())
}

func TestEnvelope_ProductionRedaction(t *testing.T) {
	tests := []struct {
		name        string
		err         *APIError
		wantMessage string
	}{
		{
			name:        "internal",
			err:         Internal(fmt.Errorf("nil pointer dereference in billing.Charge")),
			wantMessage: "Internal server error occurred",
		},
		{
			name:        "database",
			err:         Database(fmt.Errorf("pq: password authentication failed")),
			wantMessage: "database temporarily unavailable",
		},
		{
			name:        "external_service",
			err:         ExternalService("billing", fmt.Errorf("dial tcp: connection refused")),
			wantMessage: "service temporarily unavailable",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.err.Stack = "goroutine 1 [running]:"

			env := tc.err.Envelope(false, "req-1")
			require.Equal(t, tc.wantMessage, env.ErrorMessage)
			require.Empty(t, env.Stack)
			require.Equal(t, "req-1", env.RequestID)
		})
	}
}

func TestEnvelope_DevelopmentDisclosure(t *testing.T) {
	ae := Internal(fmt.Errorf("nil pointer dereference"))
	ae.Stack = "goroutine 1 [running]:"

	env := ae.Envelope(true, "req-1")
	require.Contains(t, env.ErrorMessage, "nil pointer dereference")
	require.Equal(t, "goroutine 1 [running]:", env.Stack)
}

func TestEnvelope_ClientErrorsAreNotRedacted(t *testing.T) {
	env := Validation("email", "please provide a valid email").Envelope(false, "req-1")
	require.Equal(t, "request validation failed", env.ErrorMessage)
	require.Equal(t, "email", env.Field)
	require.Equal(t, "please provide a valid email", env.Details)

	env = RateLimited(120).Envelope(false, "req-1")
	require.Equal(t, 120, env.RetryAfter)

	env = Authorization("admin", "pro").Envelope(false, "req-1")
	require.Equal(t, []string{"admin", "pro"}, env.RequiredRoles)
}
