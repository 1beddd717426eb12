package models

import (
	"github.com/aionhq/gate/auth"
	"github.com/aionhq/gate/auth/realm/token"
	"github.com/aionhq/gate/datastore"
)

type LoginUser struct {
	Email    string `json:"email" valid:"required~please provide your email,email~please provide a valid email"`
	Password string `json:"password" valid:"required~please provide your password"`
}

type RefreshToken struct {
	AccessToken  string `json:"access_token" valid:"required~please provide an access token"`
	RefreshToken string `json:"refresh_token" valid:"required~please provide a refresh token"`
}

type RegisterUser struct {
	FirstName string `json:"first_name" valid:"required~please provide a first name"`
	LastName  string `json:"last_name" valid:"required~please provide a last name"`
	Email     string `json:"email" valid:"required~please provide your email,email~please provide a valid email"`
	Password  string `json:"password" valid:"required~please provide a password"`
}

type CreateAPIKey struct {
	Name        string   `json:"name" valid:"required~please provide a key name"`
	Permissions []string `json:"permissions"`
	ExpiresIn   int      `json:"expires_in"`
}

type LoginUserResponse struct {
	UID       string      `json:"uid"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	PlanTier  string      `json:"plan_tier"`
	Token     token.Token `json:"token"`
}

func NewLoginUserResponse(user *datastore.User, t token.Token) *LoginUserResponse {
	return &LoginUserResponse{
		UID:       user.UID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		PlanTier:  user.PlanTier.String(),
		Token:     t,
	}
}

// APIKeyResponse carries the plaintext key exactly once, at creation
// time. Only the digest is stored; the key cannot be shown again.
type APIKeyResponse struct {
	UID         string   `json:"uid"`
	Name        string   `json:"name"`
	MaskID      string   `json:"mask_id"`
	Key         string   `json:"key,omitempty"`
	Permissions []string `json:"permissions"`
}

type CurrentUserResponse struct {
	UserID            string   `json:"user_id"`
	Email             string   `json:"email"`
	DisplayName       string   `json:"display_name"`
	PlanTier          string   `json:"plan_tier"`
	Roles             []string `json:"roles"`
	AuthMethod        string   `json:"auth_method"`
	APIKeyName        string   `json:"api_key_name,omitempty"`
	APIKeyPermissions []string `json:"api_key_permissions,omitempty"`
}

func NewCurrentUserResponse(outcome *auth.AuthOutcome) *CurrentUserResponse {
	p := outcome.Principal
	return &CurrentUserResponse{
		UserID:            p.UserID,
		Email:             p.Email,
		DisplayName:       p.DisplayName,
		PlanTier:          p.PlanTier.String(),
		Roles:             auth.RoleNames(p.Roles),
		AuthMethod:        outcome.Method.String(),
		APIKeyName:        p.APIKeyName,
		APIKeyPermissions: p.APIKeyPermissions,
	}
}
