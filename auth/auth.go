package auth

import "errors"

// ErrCredentialNotFound is the single failure value every verification
// miss collapses into. A revoked key, an unknown key and a key owned by
// a deactivated account are indistinguishable to the caller.
var ErrCredentialNotFound = errors.New("credential not found")

const (
	TokenRealmName  = "token_realm"
	APIKeyRealmName = "api_key_realm"
)

type CredentialType string

const (
	CredentialTypeBearer = CredentialType("BEARER")
	CredentialTypeAPIKey = CredentialType("API_KEY")
	CredentialTypeNone   = CredentialType("NONE")
)

func (c CredentialType) String() string {
	return string(c)
}

// Credential is extracted from an inbound request before any
// verification happens. It is never persisted.
type Credential struct {
	Type   CredentialType `json:"type"`
	Token  string         `json:"token,omitempty"`
	APIKey string         `json:"api_key,omitempty"`
}

type AuthMethod string

const (
	MethodBearer = AuthMethod("BEARER")
	MethodAPIKey = AuthMethod("API_KEY")
	MethodNone   = AuthMethod("NONE")
)

func (m AuthMethod) String() string {
	return string(m)
}

// Principal is the authenticated identity for a single request. It is
// re-derived on every request so revocation and deactivation take
// effect immediately; it must never be cached across requests.
type Principal struct {
	UserID            string   `json:"user_id"`
	Email             string   `json:"email"`
	DisplayName       string   `json:"display_name"`
	PlanTier          PlanTier `json:"plan_tier"`
	Roles             []Role   `json:"roles"`
	APIKeyID          string   `json:"api_key_id,omitempty"`
	APIKeyName        string   `json:"api_key_name,omitempty"`
	APIKeyPermissions []string `json:"api_key_permissions,omitempty"`
}

func (p *Principal) HasAnyRole(roles ...Role) bool {
	for _, required := range roles {
		for _, r := range p.Roles {
			if r == required {
				return true
			}
		}
	}
	return false
}

// AuthOutcome is the result of running a credential through the realm
// chain. A nil Principal is the valid anonymous outcome, not an error.
type AuthOutcome struct {
	Principal *Principal
	Method    AuthMethod
}

func (o *AuthOutcome) Authenticated() bool {
	return o != nil && o.Principal != nil
}

func AnonymousOutcome() *AuthOutcome {
	return &AuthOutcome{Method: MethodNone}
}
