package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"gopkg.in/guregu/null.v4"

	"github.com/aionhq/gate/apierror"
	"github.com/aionhq/gate/api/models"
	"github.com/aionhq/gate/auth"
	"github.com/aionhq/gate/datastore"
	"github.com/aionhq/gate/pkg/log"
	"github.com/aionhq/gate/util"
)

type SecurityService struct {
	apiKeyRepo datastore.APIKeyRepository
	logger     log.StdLogger
}

func NewSecurityService(apiKeyRepo datastore.APIKeyRepository, logger log.StdLogger) *SecurityService {
	return &SecurityService{apiKeyRepo: apiKeyRepo, logger: logger}
}

// CreateAPIKey mints a key for the authenticated principal. The
// plaintext key is returned exactly once; only its digest is stored.
func (s *SecurityService) CreateAPIKey(ctx context.Context, principal *auth.Principal, data *models.CreateAPIKey) (*models.APIKeyResponse, error) {
	if err := util.Validate(data); err != nil {
		return nil, apierror.Validation("", err.Error())
	}

	maskID, key := util.GenerateAPIKey()

	permissions := data.Permissions
	if permissions == nil {
		permissions = []string{}
	}

	encoded, err := json.Marshal(permissions)
	if err != nil {
		return nil, apierror.Internal(err)
	}

	var expiresAt null.Time
	if data.ExpiresIn > 0 {
		expiresAt = null.TimeFrom(time.Now().Add(time.Duration(data.ExpiresIn) * time.Second))
	}

	apiKey := &datastore.APIKey{
		UID:         ulid.Make().String(),
		Name:        data.Name,
		MaskID:      maskID,
		UserID:      principal.UserID,
		Hash:        util.DigestAPIKey(key),
		Permissions: string(encoded),
		Active:      true,
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.apiKeyRepo.CreateAPIKey(ctx, apiKey); err != nil {
		return nil, apierror.Database(err)
	}

	return &models.APIKeyResponse{
		UID:         apiKey.UID,
		Name:        apiKey.Name,
		MaskID:      apiKey.MaskID,
		Key:         key,
		Permissions: permissions,
	}, nil
}

// RevokeAPIKey soft-deletes a key. A key owned by another user is
// reported as not found so key identifiers cannot be enumerated.
func (s *SecurityService) RevokeAPIKey(ctx context.Context, principal *auth.Principal, keyID string) error {
	key, err := s.apiKeyRepo.FindAPIKeyByID(ctx, keyID)
	if err != nil {
		if errors.Is(err, datastore.ErrAPIKeyNotFound) {
			return apierror.NotFound("api key")
		}
		return apierror.Database(err)
	}

	if key.UserID != principal.UserID {
		return apierror.NotFound("api key")
	}

	if err := s.apiKeyRepo.RevokeAPIKey(ctx, keyID); err != nil {
		return apierror.Database(err)
	}

	return nil
}
