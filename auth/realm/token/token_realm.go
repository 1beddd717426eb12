package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aionhq/gate/auth"
	"github.com/aionhq/gate/datastore"
	"github.com/aionhq/gate/pkg/log"
)

// TokenRealm authenticates bearer credentials. A token whose signature
// and expiry check out still fails authentication when its subject no
// longer resolves to an active user.
type TokenRealm struct {
	userRepo datastore.UserRepository
	jwt      *Jwt
	logger   log.StdLogger
}

func NewTokenRealm(userRepo datastore.UserRepository, jwt *Jwt, logger log.StdLogger) *TokenRealm {
	return &TokenRealm{userRepo: userRepo, jwt: jwt, logger: logger}
}

func (t *TokenRealm) Authenticate(ctx context.Context, cred *auth.Credential) (*auth.Principal, error) {
	if cred.Type != auth.CredentialTypeBearer {
		return nil, fmt.Errorf("%s only authenticates credential type %s: %w", t.GetName(), auth.CredentialTypeBearer.String(), auth.ErrCredentialNotFound)
	}

	verified, err := t.jwt.ValidateAccessToken(cred.Token)
	if err != nil {
		return nil, err
	}

	user, err := t.userRepo.FindActiveUserByID(ctx, verified.UserID)
	if err != nil {
		if errors.Is(err, datastore.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		t.logger.WithError(err).Error("user lookup failed")
		return nil, err
	}

	if err := t.userRepo.UpdateLastLogin(ctx, user.UID, time.Now()); err != nil {
		t.logger.WithError(err).Warn("failed to update last login timestamp")
	}

	principal := &auth.Principal{
		UserID:      user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName(),
		PlanTier:    user.PlanTier,
		Roles:       auth.RolesForTier(user.PlanTier),
	}

	return principal, nil
}

func (t *TokenRealm) GetName() string {
	return auth.TokenRealmName
}
