// Package realm_chain runs a credential through an ordered list of
// realms and reports the combined outcome.
package realm_chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/aionhq/gate/auth"
	"github.com/aionhq/gate/pkg/log"
)

var (
	ErrNilRealm = fmt.Errorf("registering a nil realm is not allowed")
)

// RealmChain is an explicit ordered list of realms. Realms are tried in
// registration order; the first realm that authenticates the credential
// wins, and a credential no realm accepts yields the anonymous outcome.
type RealmChain struct {
	order  []auth.Realm
	names  map[string]struct{}
	logger log.StdLogger
}

func New(logger log.StdLogger, realms ...auth.Realm) (*RealmChain, error) {
	rc := &RealmChain{
		names:  map[string]struct{}{},
		logger: logger,
	}

	for _, r := range realms {
		if err := rc.RegisterRealm(r); err != nil {
			return nil, err
		}
	}

	return rc, nil
}

func (rc *RealmChain) RegisterRealm(r auth.Realm) error {
	if r == nil {
		return ErrNilRealm
	}

	name := r.GetName()
	if _, ok := rc.names[name]; ok {
		return fmt.Errorf("a realm with the name '%s' has already been registered", name)
	}

	rc.names[name] = struct{}{}
	rc.order = append(rc.order, r)

	return nil
}

// Authenticate never returns an error. A request without credentials,
// or one whose credentials no realm accepts, is the anonymous outcome;
// route-level authorization decides whether anonymous is acceptable.
func (rc *RealmChain) Authenticate(ctx context.Context, cred *auth.Credential) *auth.AuthOutcome {
	if cred == nil || cred.Type == auth.CredentialTypeNone {
		return auth.AnonymousOutcome()
	}

	for _, realm := range rc.order {
		principal, err := realm.Authenticate(ctx, cred)
		if err != nil {
			// A verification miss is routine; anything else is a realm
			// failure that must not hide behind the anonymous outcome.
			if errors.Is(err, auth.ErrCredentialNotFound) {
				rc.logger.WithError(err).Debugf("realm %s could not authenticate credential", realm.GetName())
			} else {
				rc.logger.WithError(err).Errorf("realm %s failed", realm.GetName())
			}
			continue
		}

		return &auth.AuthOutcome{
			Principal: principal,
			Method:    methodForCredential(cred),
		}
	}

	return auth.AnonymousOutcome()
}

func methodForCredential(cred *auth.Credential) auth.AuthMethod {
	switch cred.Type {
	case auth.CredentialTypeBearer:
		return auth.MethodBearer
	case auth.CredentialTypeAPIKey:
		return auth.MethodAPIKey
	default:
		return auth.MethodNone
	}
}
