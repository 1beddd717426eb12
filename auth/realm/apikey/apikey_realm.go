// Package apikey authenticates requests that carry a long-lived API key.
package apikey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aionhq/gate/auth"
	"github.com/aionhq/gate/datastore"
	"github.com/aionhq/gate/pkg/log"
	"github.com/aionhq/gate/util"
)

type APIKeyRealm struct {
	apiKeyRepo datastore.APIKeyRepository
	logger     log.StdLogger
}

func NewAPIKeyRealm(apiKeyRepo datastore.APIKeyRepository, logger log.StdLogger) *APIKeyRealm {
	return &APIKeyRealm{apiKeyRepo: apiKeyRepo, logger: logger}
}

// Authenticate verifies an API key by digest lookup. Every verification
// miss collapses into auth.ErrCredentialNotFound so a caller cannot
// distinguish an unknown key from a revoked or expired one.
func (a *APIKeyRealm) Authenticate(ctx context.Context, cred *auth.Credential) (*auth.Principal, error) {
	if cred.Type != auth.CredentialTypeAPIKey {
		return nil, fmt.Errorf("%s only authenticates credential type %s: %w", a.GetName(), auth.CredentialTypeAPIKey.String(), auth.ErrCredentialNotFound)
	}

	hash := util.DigestAPIKey(cred.APIKey)

	key, user, err := a.apiKeyRepo.FindActiveAPIKeyByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, datastore.ErrAPIKeyNotFound) || errors.Is(err, datastore.ErrUserNotFound) {
			return nil, auth.ErrCredentialNotFound
		}
		a.logger.WithError(err).Error("api key lookup failed")
		return nil, err
	}

	if key.ExpiresAt.Valid && time.Now().After(key.ExpiresAt.Time) {
		return nil, auth.ErrCredentialNotFound
	}

	permissions, err := key.ParsePermissions()
	if err != nil {
		a.logger.WithError(err).Warnf("malformed permissions on api key %s", key.UID)
	}

	if err := a.apiKeyRepo.UpdateAPIKeyLastUsed(ctx, key.UID, time.Now()); err != nil {
		a.logger.WithError(err).Warn("failed to update api key last used timestamp")
	}

	principal := &auth.Principal{
		UserID:            user.UID,
		Email:             user.Email,
		DisplayName:       user.DisplayName(),
		PlanTier:          user.PlanTier,
		Roles:             auth.RolesForTier(user.PlanTier),
		APIKeyID:          key.UID,
		APIKeyName:        key.Name,
		APIKeyPermissions: permissions,
	}

	return principal, nil
}

func (a *APIKeyRealm) GetName() string {
	return auth.APIKeyRealmName
}
