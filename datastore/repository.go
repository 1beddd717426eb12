package datastore

import (
	"context"
	"time"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)

	// FindActiveUserByID filters on active = true; a deactivated or
	// soft-deleted user is reported as ErrUserNotFound.
	FindActiveUserByID(ctx context.Context, id string) (*User, error)
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
}

type APIKeyRepository interface {
	CreateAPIKey(ctx context.Context, key *APIKey) error

	// FindActiveAPIKeyByHash joins an active key record to its active
	// owning user. Every miss condition collapses into
	// ErrAPIKeyNotFound.
	FindActiveAPIKeyByHash(ctx context.Context, hash string) (*APIKey, *User, error)
	FindAPIKeyByID(ctx context.Context, id string) (*APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id string, t time.Time) error
	RevokeAPIKey(ctx context.Context, id string) error
}

type ErrorLogRepository interface {
	CreateErrorLog(ctx context.Context, record *ErrorLog) error
	DeleteErrorLogsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
