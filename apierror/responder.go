package apierror

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/oklog/ulid/v2"
	"gopkg.in/guregu/null.v4"

	"github.com/aionhq/gate/auth"
	"github.com/aionhq/gate/config"
	"github.com/aionhq/gate/datastore"
	"github.com/aionhq/gate/internal/pkg/metrics"
	"github.com/aionhq/gate/pkg/log"
	"github.com/aionhq/gate/util"
)

// FailureRecorder receives a notification for every authentication
// failure response so repeated failures from one client can be throttled.
type FailureRecorder interface {
	RecordFailure(ctx context.Context, clientKey string)
}

// Responder is the single exit point for error responses. It classifies
// the error, persists an audit record, notifies the failure recorder
// for authentication failures, and writes the JSON envelope.
type Responder struct {
	logger       log.StdLogger
	errorLogRepo datastore.ErrorLogRepository
	recorder     FailureRecorder
	alerter      *Alerter
	environment  string
}

func NewResponder(logger log.StdLogger, errorLogRepo datastore.ErrorLogRepository, recorder FailureRecorder, alerter *Alerter, environment string) *Responder {
	return &Responder{
		logger:       logger,
		errorLogRepo: errorLogRepo,
		recorder:     recorder,
		alerter:      alerter,
		environment:  environment,
	}
}

func (rp *Responder) Respond(w http.ResponseWriter, r *http.Request, err error) {
	ae := FromError(err)
	requestID := middleware.GetReqID(r.Context())

	rp.logError(r, ae, requestID)
	rp.persist(r, ae, requestID)
	metrics.RecordErrorResponse(ae.Code())

	if rp.alerter != nil {
		rp.alerter.Notify(ae)
	}

	if rp.recorder != nil && ae.Kind == KindAuthentication {
		rp.recorder.RecordFailure(r.Context(), util.ClientIP(r))
	}

	if ae.Kind == KindRateLimit && ae.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(ae.RetryAfter))
	}

	development := rp.environment == config.DevelopmentEnvironment
	_ = render.Render(w, r, ae.Envelope(development, requestID))
}

func (rp *Responder) logError(r *http.Request, ae *APIError, requestID string) {
	entry := rp.logger.WithFields(log.Fields{
		"request_id": requestID,
		"code":       ae.Code(),
		"status":     ae.Status(),
		"method":     r.Method,
		"url":        r.URL.Path,
	})

	switch ae.Kind {
	case KindDatabase, KindExternalService, KindInternal:
		entry.WithError(ae).Error("request failed")
	default:
		entry.WithError(ae).Warn("request rejected")
	}
}

func (rp *Responder) persist(r *http.Request, ae *APIError, requestID string) {
	if rp.errorLogRepo == nil {
		return
	}

	var userID null.String
	if p := auth.PrincipalFromContext(r.Context()); p != nil {
		userID = null.StringFrom(p.UserID)
	}

	record := &datastore.ErrorLog{
		UID:         ulid.Make().String(),
		RequestID:   requestID,
		Code:        ae.Code(),
		Message:     ae.Error(),
		Stack:       ae.Stack,
		URL:         r.URL.Path,
		Method:      r.Method,
		UserID:      userID,
		ClientIP:    util.ClientIP(r),
		UserAgent:   r.UserAgent(),
		Environment: rp.environment,
		CreatedAt:   time.Now(),
	}

	if err := rp.errorLogRepo.CreateErrorLog(r.Context(), record); err != nil {
		rp.logger.WithError(err).Error("failed to persist error log")
	}
}
