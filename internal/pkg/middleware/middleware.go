// Package middleware wires the request pipeline: request identity,
// instrumentation, throttling, authentication and the authorization gate.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aionhq/gate/apierror"
	"github.com/aionhq/gate/auth"
	"github.com/aionhq/gate/auth/realm_chain"
	"github.com/aionhq/gate/config"
	"github.com/aionhq/gate/internal/pkg/metrics"
	"github.com/aionhq/gate/internal/pkg/throttle"
	"github.com/aionhq/gate/pkg/log"
	"github.com/aionhq/gate/util"
)

type Middleware struct {
	chain     *realm_chain.RealmChain
	throttle  *throttle.Throttle
	responder *apierror.Responder
	logger    log.StdLogger
}

type CreateMiddleware struct {
	Chain     *realm_chain.RealmChain
	Throttle  *throttle.Throttle
	Responder *apierror.Responder
	Logger    log.StdLogger
}

func NewMiddleware(cs *CreateMiddleware) *Middleware {
	return &Middleware{
		chain:     cs.Chain,
		throttle:  cs.Throttle,
		responder: cs.Responder,
		logger:    cs.Logger,
	}
}

// GetCredentialFromRequest extracts a credential without verifying it.
// Precedence is fixed: Authorization bearer header, then X-API-Key
// header, then the api_key query parameter. A malformed Authorization
// header yields no credential rather than an error; verification
// decides what a missing credential means for the route.
func GetCredentialFromRequest(r *http.Request) *auth.Credential {
	val := r.Header.Get("Authorization")
	if !util.IsStringEmpty(val) {
		authInfo := strings.Split(val, " ")
		if len(authInfo) == 2 && authInfo[0] == "Bearer" && !util.IsStringEmpty(authInfo[1]) {
			return &auth.Credential{
				Type:  auth.CredentialTypeBearer,
				Token: authInfo[1],
			}
		}
	}

	if key := r.Header.Get("X-API-Key"); !util.IsStringEmpty(key) {
		return &auth.Credential{
			Type:   auth.CredentialTypeAPIKey,
			APIKey: key,
		}
	}

	if key := r.URL.Query().Get("api_key"); !util.IsStringEmpty(key) {
		return &auth.Credential{
			Type:   auth.CredentialTypeAPIKey,
			APIKey: key,
		}
	}

	return &auth.Credential{Type: auth.CredentialTypeNone}
}

// Throttle rejects requests from clients that exceeded the failed
// attempt threshold, before any credential verification happens.
func (m *Middleware) Throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		blocked, retryAfter := m.throttle.Check(r.Context(), util.ClientIP(r))
		if blocked {
			metrics.RecordThrottleBlock()
			m.responder.Respond(w, r, apierror.RateLimited(retryAfter))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Authenticate runs the extracted credential through the realm chain
// and attaches the outcome to the request context. It never rejects a
// request; RequireAuth decides whether the outcome is sufficient.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cred := GetCredentialFromRequest(r)
		outcome := m.chain.Authenticate(r.Context(), cred)

		metrics.RecordAuthOutcome(outcome.Method.String(), outcome.Authenticated())

		r = r.WithContext(auth.SetOutcomeInContext(r.Context(), outcome))
		next.ServeHTTP(w, r)
	})
}

// RequireAuth gates a route. An anonymous outcome is rejected with an
// authentication error; an authenticated principal missing every
// required role is rejected with an authorization error that echoes
// the required role set.
func (m *Middleware) RequireAuth(roles ...auth.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			outcome := auth.OutcomeFromContext(r.Context())
			if !outcome.Authenticated() {
				m.responder.Respond(w, r, apierror.Authentication(""))
				return
			}

			if len(roles) > 0 && !outcome.Principal.HasAnyRole(roles...) {
				m.responder.Respond(w, r, apierror.Authorization(auth.RoleNames(roles)...))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Recover converts a handler panic into a classified internal error
// response instead of tearing down the connection.
func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				ae := apierror.Internal(fmt.Errorf("panic: %v", rec))
				ae.Stack = string(debug.Stack())
				m.responder.Respond(w, r, ae)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) WriteRequestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) JsonResponse(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) SetupCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg, err := config.Get()
		if err != nil {
			m.logger.WithError(err).Error("failed to load configuration")
			next.ServeHTTP(w, r)
			return
		}

		origin := "*"
		if len(cfg.CORS.AllowedOrigins) > 0 {
			origin = strings.Join(cfg.CORS.AllowedOrigins, ", ")
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-API-Key")

		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) InstrumentRequests() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured := httpsnoop.CaptureMetrics(next, w, r)
			metrics.ObserveRequestDuration(r.Method, strconv.Itoa(captured.Code), captured.Duration.Seconds())
		})
	}
}
