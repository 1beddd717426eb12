package services

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/aionhq/gate/apierror"
	"github.com/aionhq/gate/api/models"
	"github.com/aionhq/gate/auth"
	"github.com/aionhq/gate/auth/realm/token"
	"github.com/aionhq/gate/cache"
	"github.com/aionhq/gate/datastore"
	"github.com/aionhq/gate/pkg/log"
	"github.com/aionhq/gate/util"
)

// refreshGracePeriod is how long past access token expiry a refresh is
// still accepted.
const refreshGracePeriod = 5 * time.Minute

// usedRefreshTokenCacheKey marks a refresh token as spent. The key lives
// in the cache until the token would have expired anyway.
func usedRefreshTokenCacheKey(encodedToken string) string {
	return "tokens:" + encodedToken
}

type UserService struct {
	userRepo datastore.UserRepository
	cache    cache.Cache
	jwt      *token.Jwt
	logger   log.StdLogger
}

func NewUserService(userRepo datastore.UserRepository, cache cache.Cache, jwt *token.Jwt, logger log.StdLogger) *UserService {
	return &UserService{userRepo: userRepo, cache: cache, jwt: jwt, logger: logger}
}

// LoginUser verifies an email and password pair. Unknown email, wrong
// password and deactivated account all produce the same error so the
// response does not leak which accounts exist.
func (u *UserService) LoginUser(ctx context.Context, data *models.LoginUser) (*datastore.User, *token.Token, error) {
	if err := util.Validate(data); err != nil {
		return nil, nil, apierror.Validation("", err.Error())
	}

	user, err := u.userRepo.FindUserByEmail(ctx, data.Email)
	if err != nil {
		if errors.Is(err, datastore.ErrUserNotFound) {
			return nil, nil, apierror.Authentication("invalid email or password")
		}
		return nil, nil, apierror.Database(err)
	}

	if !user.Active {
		return nil, nil, apierror.Authentication("invalid email or password")
	}

	p := datastore.Password{Plaintext: data.Password, Hash: []byte(user.Password)}
	match, err := p.Matches()
	if err != nil {
		return nil, nil, apierror.Internal(err)
	}

	if !match {
		return nil, nil, apierror.Authentication("invalid email or password")
	}

	tok, err := u.jwt.GenerateToken(user)
	if err != nil {
		return nil, nil, apierror.Internal(err)
	}

	if err := u.userRepo.UpdateLastLogin(ctx, user.UID, time.Now()); err != nil {
		u.logger.WithError(err).Warn("failed to update last login timestamp")
	}

	return user, &tok, nil
}

// RefreshToken exchanges a spent access token for a fresh token pair.
// The access token may be expired, but only within the grace window,
// and each refresh token can be exchanged once.
func (u *UserService) RefreshToken(ctx context.Context, data *models.RefreshToken) (*token.Token, error) {
	if err := util.Validate(data); err != nil {
		return nil, apierror.Validation("", err.Error())
	}

	access, err := u.jwt.ValidateAccessToken(data.AccessToken)
	if err != nil {
		if !errors.Is(err, token.ErrTokenExpired) || access == nil {
			return nil, apierror.Authentication("invalid token")
		}

		graceEnd := time.Unix(access.Expiry, 0).Add(refreshGracePeriod)
		if time.Now().After(graceEnd) {
			return nil, apierror.Authentication("invalid token")
		}
	}

	key := usedRefreshTokenCacheKey(u.jwt.EncodeToken(data.RefreshToken))

	var spent *string
	if err := u.cache.Get(ctx, key, &spent); err != nil {
		return nil, apierror.ExternalService("cache", err)
	}

	if spent != nil {
		return nil, apierror.Authentication("invalid token")
	}

	verified, err := u.jwt.ValidateRefreshToken(data.RefreshToken)
	if err != nil {
		return nil, apierror.Authentication("invalid token")
	}

	user, err := u.userRepo.FindActiveUserByID(ctx, verified.UserID)
	if err != nil {
		if errors.Is(err, datastore.ErrUserNotFound) {
			return nil, apierror.Authentication("invalid token")
		}
		return nil, apierror.Database(err)
	}

	tok, err := u.jwt.GenerateToken(user)
	if err != nil {
		return nil, apierror.Internal(err)
	}

	ttl := time.Until(time.Unix(verified.Expiry, 0))
	if err := u.cache.Set(ctx, key, &user.UID, ttl); err != nil {
		return nil, apierror.ExternalService("cache", err)
	}

	return &tok, nil
}

func (u *UserService) RegisterUser(ctx context.Context, data *models.RegisterUser) (*datastore.User, *token.Token, error) {
	if err := util.Validate(data); err != nil {
		return nil, nil, apierror.Validation("", err.Error())
	}

	p := datastore.Password{Plaintext: data.Password}
	if err := p.GenerateHash(); err != nil {
		return nil, nil, apierror.Internal(err)
	}

	user := &datastore.User{
		UID:       ulid.Make().String(),
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Password:  string(p.Hash),
		PlanTier:  auth.TierFree,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, datastore.ErrDuplicateEmail) {
			return nil, nil, apierror.Validation("email", "a user with this email already exists")
		}
		return nil, nil, apierror.Database(err)
	}

	tok, err := u.jwt.GenerateToken(user)
	if err != nil {
		return nil, nil, apierror.Internal(err)
	}

	return user, &tok, nil
}
