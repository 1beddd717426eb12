package auth

import "context"

// Realm verifies one credential scheme. A realm that cannot vouch for
// the credential returns an error; the realm chain folds that into the
// anonymous outcome and moves on to the next realm.
type Realm interface {
	GetName() string
	Authenticate(ctx context.Context, cred *Credential) (*Principal, error)
}
