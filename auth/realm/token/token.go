package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aionhq/gate/auth"
	"github.com/aionhq/gate/config"
	"github.com/aionhq/gate/datastore"
	"github.com/aionhq/gate/util"
)

// Both sentinels wrap auth.ErrCredentialNotFound so the realm chain can
// tell a routine verification miss from an infrastructure failure.
var (
	ErrInvalidToken = fmt.Errorf("invalid token: %w", auth.ErrCredentialNotFound)
	ErrTokenExpired = fmt.Errorf("expired token: %w", auth.ErrCredentialNotFound)
)

type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type VerifiedToken struct {
	UserID string
	Expiry int64
}

const (
	JwtDefaultSecret        string = "gate-jwt"
	JwtDefaultRefreshSecret string = "gate-refresh-jwt"
	JwtDefaultExpiry        int    = 1800
	JwtDefaultRefreshExpiry int    = 86400
)

type Jwt struct {
	Secret        string
	Expiry        int
	RefreshSecret string
	RefreshExpiry int
}

func NewJwt(opts *config.JwtOptions) *Jwt {
	j := &Jwt{
		Secret:        opts.Secret,
		Expiry:        opts.Expiry,
		RefreshSecret: opts.RefreshSecret,
		RefreshExpiry: opts.RefreshExpiry,
	}

	if util.IsStringEmpty(j.Secret) {
		j.Secret = JwtDefaultSecret
	}

	if util.IsStringEmpty(j.RefreshSecret) {
		j.RefreshSecret = JwtDefaultRefreshSecret
	}

	if j.Expiry == 0 {
		j.Expiry = JwtDefaultExpiry
	}

	if j.RefreshExpiry == 0 {
		j.RefreshExpiry = JwtDefaultRefreshExpiry
	}

	return j
}

func (j *Jwt) GenerateToken(user *datastore.User) (Token, error) {
	token := Token{}

	accessToken, err := j.signToken(user.UID, j.Secret, j.Expiry)
	if err != nil {
		return token, err
	}

	refreshToken, err := j.signToken(user.UID, j.RefreshSecret, j.RefreshExpiry)
	if err != nil {
		return token, err
	}

	token.AccessToken = accessToken
	token.RefreshToken = refreshToken

	return token, nil
}

func (j *Jwt) ValidateAccessToken(accessToken string) (*VerifiedToken, error) {
	return j.validateToken(accessToken, j.Secret)
}

func (j *Jwt) ValidateRefreshToken(refreshToken string) (*VerifiedToken, error) {
	return j.validateToken(refreshToken, j.RefreshSecret)
}

func (j *Jwt) EncodeToken(token string) string {
	return base64.StdEncoding.EncodeToString([]byte(token))
}

func (j *Jwt) signToken(userID, secret string, expirySeconds int) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Second * time.Duration(expirySeconds)).Unix(),
	})

	return tok.SignedString([]byte(secret))
}

func (j *Jwt) validateToken(tokenString, secret string) (*VerifiedToken, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// The caller may still need the expiry, e.g. to apply the
			// refresh grace window against an expired access token.
			if payload, ok := claimsOf(token); ok {
				if expiry, ok := payload["exp"].(float64); ok {
					return &VerifiedToken{Expiry: int64(expiry)}, ErrTokenExpired
				}
			}
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	payload, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, ok := payload["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	expiry, ok := payload["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &VerifiedToken{UserID: userID, Expiry: int64(expiry)}, nil
}

func claimsOf(token *jwt.Token) (jwt.MapClaims, bool) {
	if token == nil {
		return nil, false
	}

	payload, ok := token.Claims.(jwt.MapClaims)
	return payload, ok
}
