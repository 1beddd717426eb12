package apierror

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAlerter_ShouldAlert(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want bool
	}{
		{
			name: "internal_always_alerts",
			err:  Internal(fmt.Errorf("nil pointer dereference")),
			want: true,
		},
		{
			name: "database_connection_loss_alerts",
			err:  Database(fmt.Errorf("pq: connection refused")),
			want: true,
		},
		{
			name: "database_permission_denied_alerts",
			err:  Database(fmt.Errorf("pq: permission denied for schema gate")),
			want: true,
		},
		{
			name: "database_auth_failure_alerts",
			err:  Database(fmt.Errorf("pq: password authentication failed for user \"gate\"")),
			want: true,
		},
		{
			name: "routine_database_error_does_not_alert",
			err:  Database(fmt.Errorf("pq: duplicate key value violates unique constraint")),
			want: false,
		},
		{
			name: "external_service_outage_alerts",
			err:  ExternalService("cache", fmt.Errorf("dial tcp: no such host")),
			want: true,
		},
		{
			name: "client_errors_never_alert",
			err:  Authentication(""),
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAlerter()
			require.Equal(t, tc.want, a.shouldAlert(tc.err))
		})
	}
}

func TestAlerter_RateLimitsPerKind(t *testing.T) {
	now := time.Now()
	a := NewAlerter()
	a.now = func() time.Time { return now }

	ae := Internal(fmt.Errorf("boom"))

	a.Notify(ae)
	a.Notify(ae)
	require.Len(t, a.lastSent, 1)
	require.Equal(t, now, a.lastSent[KindInternal])

	// A different kind has its own budget.
	a.Notify(Database(fmt.Errorf("pq: connection refused")))
	require.Len(t, a.lastSent, 2)

	// After the interval the same kind may page again.
	later := now.Add(alertInterval + time.Second)
	a.now = func() time.Time { return later }

	a.Notify(ae)
	require.Equal(t, later, a.lastSent[KindInternal])
}
