package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"

	"github.com/aionhq/gate/apierror"
	"github.com/aionhq/gate/auth"
	"github.com/aionhq/gate/auth/realm_chain"
	rcache "github.com/aionhq/gate/cache/redis"
	"github.com/aionhq/gate/config"
	"github.com/aionhq/gate/internal/pkg/throttle"
	"github.com/aionhq/gate/pkg/log"
)

type stubRealm struct {
	name      string
	principal *auth.Principal
	err       error
	calls     int
}

func (s *stubRealm) GetName() string { return s.name }

func (s *stubRealm) Authenticate(_ context.Context, _ *auth.Credential) (*auth.Principal, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.principal, nil
}

type pipeline struct {
	m     *Middleware
	realm *stubRealm
}

func newPipeline(t *testing.T, realm *stubRealm, environment string) *pipeline {
	t.Helper()

	mr, err := miniredis.Run()
	require.Nil(t, err)
	t.Cleanup(mr.Close)

	c, err := rcache.NewRedisCache(fmt.Sprintf("redis://%s", mr.Addr()))
	require.Nil(t, err)

	logger := log.NewLogger(os.Stderr)

	th := throttle.NewThrottle(c, config.DefaultThrottleThreshold, time.Duration(config.DefaultThrottleWindowSeconds)*time.Second, logger)
	responder := apierror.NewResponder(logger, nil, th, nil, environment)

	chain, err := realm_chain.New(logger, realm)
	require.Nil(t, err)

	m := NewMiddleware(&CreateMiddleware{
		Chain:     chain,
		Throttle:  th,
		Responder: responder,
		Logger:    logger,
	})

	return &pipeline{m: m, realm: realm}
}

func (p *pipeline) handler(handler http.Handler, roles ...auth.Role) http.Handler {
	var h http.Handler = p.m.RequireAuth(roles...)(handler)
	h = p.m.Authenticate(h)
	h = p.m.Throttle(h)
	h = p.m.Recover(h)
	h = chimiddleware.RequestID(h)
	return h
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetCredentialFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		request func() *http.Request
		want    *auth.Credential
	}{
		{
			name: "bearer_header",
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
				r.Header.Set("Authorization", "Bearer token-value")
				return r
			},
			want: &auth.Credential{Type: auth.CredentialTypeBearer, Token: "token-value"},
		},
		{
			name: "lowercase_scheme_is_not_bearer",
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
				r.Header.Set("Authorization", "bearer token-value")
				return r
			},
			want: &auth.Credential{Type: auth.CredentialTypeNone},
		},
		{
			name: "malformed_header_yields_none",
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
				r.Header.Set("Authorization", "Bearer")
				return r
			},
			want: &auth.Credential{Type: auth.CredentialTypeNone},
		},
		{
			name: "api_key_header",
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
				r.Header.Set("X-API-Key", "AG.mask.secret")
				return r
			},
			want: &auth.Credential{Type: auth.CredentialTypeAPIKey, APIKey: "AG.mask.secret"},
		},
		{
			name: "api_key_query_param",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/v1/me?api_key=AG.mask.secret", nil)
			},
			want: &auth.Credential{Type: auth.CredentialTypeAPIKey, APIKey: "AG.mask.secret"},
		},
		{
			name: "bearer_header_takes_precedence_over_api_key",
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
				r.Header.Set("Authorization", "Bearer token-value")
				r.Header.Set("X-API-Key", "AG.mask.secret")
				return r
			},
			want: &auth.Credential{Type: auth.CredentialTypeBearer, Token: "token-value"},
		},
		{
			name: "no_credentials",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/v1/me", nil)
			},
			want: &auth.Credential{Type: auth.CredentialTypeNone},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, GetCredentialFromRequest(tc.request()))
		})
	}
}

func TestPipeline_AuthenticatedProUser(t *testing.T) {
	realm := &stubRealm{name: "token_realm", principal: &auth.Principal{
		UserID:   "user-1",
		PlanTier: auth.TierPro,
		Roles:    auth.RolesForTier(auth.TierPro),
	}}
	p := newPipeline(t, realm, config.ProductionEnvironment)

	var got *auth.AuthOutcome
	h := p.handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = auth.OutcomeFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, got.Authenticated())
	require.Equal(t, auth.MethodBearer, got.Method)
	require.Equal(t, []auth.Role{auth.RoleUser, auth.RolePro}, got.Principal.Roles)
}

func TestPipeline_UnverifiableCredentialIsAnonymous(t *testing.T) {
	realm := &stubRealm{name: "api_key_realm", err: auth.ErrCredentialNotFound}
	p := newPipeline(t, realm, config.ProductionEnvironment)

	h := p.handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), auth.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("X-API-Key", "AG.mask.revoked")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeEnvelope(t, rec)
	require.Equal(t, "AUTH_ERROR", body["code"])
}

func TestPipeline_ThrottleBlocksEleventhAttempt(t *testing.T) {
	realm := &stubRealm{name: "token_realm", err: fmt.Errorf("invalid token")}
	p := newPipeline(t, realm, config.ProductionEnvironment)

	h := p.handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), auth.RoleUser)

	for i := 1; i <= 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		req.RemoteAddr = "198.51.100.7:4040"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d", i)
	}
	require.Equal(t, 10, realm.calls)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	req.RemoteAddr = "198.51.100.7:4040"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "3600", rec.Header().Get("Retry-After"))
	require.Equal(t, 10, realm.calls, "verifiers must not run for a blocked client")

	body := decodeEnvelope(t, rec)
	require.Equal(t, "RATE_LIMIT", body["code"])
	require.Equal(t, float64(3600), body["retry_after"])
}

func TestPipeline_PanicIsRedactedInProduction(t *testing.T) {
	realm := &stubRealm{name: "token_realm", principal: &auth.Principal{UserID: "user-1", Roles: auth.RolesForTier(auth.TierFree)}}
	p := newPipeline(t, realm, config.ProductionEnvironment)

	h := p.handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("database credentials leaked in panic message")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeEnvelope(t, rec)
	require.Equal(t, "Internal server error occurred", body["error"])
	require.Equal(t, "INTERNAL_ERROR", body["code"])
	require.NotEmpty(t, body["request_id"])
	require.NotContains(t, body, "stack")
	require.NotContains(t, rec.Body.String(), "credentials")
}

func TestPipeline_ForbiddenEchoesRequiredRoles(t *testing.T) {
	realm := &stubRealm{name: "token_realm", principal: &auth.Principal{
		UserID:   "user-1",
		PlanTier: auth.TierFree,
		Roles:    auth.RolesForTier(auth.TierFree),
	}}
	p := newPipeline(t, realm, config.ProductionEnvironment)

	h := p.handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), auth.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeEnvelope(t, rec)
	require.Equal(t, "AUTH_INSUFFICIENT", body["code"])
	require.Equal(t, []interface{}{"admin"}, body["required_roles"])
}
