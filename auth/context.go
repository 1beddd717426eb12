package auth

import "context"

type contextKey string

const outcomeCtx contextKey = "auth_outcome"

func SetOutcomeInContext(ctx context.Context, outcome *AuthOutcome) context.Context {
	return context.WithValue(ctx, outcomeCtx, outcome)
}

// OutcomeFromContext returns the request's auth outcome, or the
// anonymous outcome when authentication has not run.
func OutcomeFromContext(ctx context.Context) *AuthOutcome {
	outcome, ok := ctx.Value(outcomeCtx).(*AuthOutcome)
	if !ok || outcome == nil {
		return AnonymousOutcome()
	}

	return outcome
}

// PrincipalFromContext returns the authenticated principal, or nil for
// anonymous requests.
func PrincipalFromContext(ctx context.Context) *Principal {
	return OutcomeFromContext(ctx).Principal
}
