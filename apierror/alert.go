package apierror

import (
	"strings"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
)

// alertInterval bounds how often a given kind can page. Repeated
// faults of the same kind inside the interval are suppressed.
const alertInterval = 5 * time.Minute

var criticalFragments = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"too many connections",
	"out of memory",
	"permission denied",
	"password authentication failed",
}

// Alerter forwards critical failures to Sentry, at most once per kind
// per interval.
type Alerter struct {
	mu       sync.Mutex
	lastSent map[Kind]time.Time
	now      func() time.Time
}

func NewAlerter() *Alerter {
	return &Alerter{
		lastSent: make(map[Kind]time.Time),
		now:      time.Now,
	}
}

func (a *Alerter) Notify(ae *APIError) {
	if !a.shouldAlert(ae) {
		return
	}

	a.mu.Lock()
	last, ok := a.lastSent[ae.Kind]
	now := a.now()
	if ok && now.Sub(last) < alertInterval {
		a.mu.Unlock()
		return
	}
	a.lastSent[ae.Kind] = now
	a.mu.Unlock()

	sentry.CaptureException(ae)
}

func (a *Alerter) shouldAlert(ae *APIError) bool {
	switch ae.Kind {
	case KindInternal, KindDatabase, KindExternalService:
	default:
		return false
	}

	if ae.Kind == KindInternal {
		return true
	}

	msg := strings.ToLower(ae.Error())
	for _, fragment := range criticalFragments {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}
