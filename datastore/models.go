package datastore

import (
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/guregu/null.v4"

	"github.com/aionhq/gate/auth"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrAPIKeyNotFound = errors.New("api key not found")
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

type User struct {
	UID         string        `json:"uid" db:"id"`
	FirstName   string        `json:"first_name" db:"first_name"`
	LastName    string        `json:"last_name" db:"last_name"`
	Email       string        `json:"email" db:"email"`
	Password    string        `json:"-" db:"password"`
	PlanTier    auth.PlanTier `json:"plan_tier" db:"plan_tier"`
	Active      bool          `json:"active" db:"active"`
	LastLoginAt null.Time     `json:"last_login_at" db:"last_login_at"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
	DeletedAt   null.Time     `json:"-" db:"deleted_at"`
}

func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}

	if name == "" {
		return u.Email
	}

	return name
}

type APIKey struct {
	UID    string `json:"uid" db:"id"`
	Name   string `json:"name" db:"name"`
	MaskID string `json:"mask_id" db:"mask_id"`
	UserID string `json:"user_id" db:"user_id"`
	Hash   string `json:"-" db:"hash"`

	// Permissions holds a JSON-encoded string list. Malformed data
	// degrades to an empty permission set, it never invalidates the key.
	Permissions string `json:"-" db:"permissions"`

	Active     bool      `json:"active" db:"active"`
	ExpiresAt  null.Time `json:"expires_at" db:"expires_at"`
	LastUsedAt null.Time `json:"last_used_at" db:"last_used_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
	DeletedAt  null.Time `json:"-" db:"deleted_at"`
}

func (k *APIKey) ParsePermissions() ([]string, error) {
	if k.Permissions == "" {
		return []string{}, nil
	}

	var permissions []string
	if err := json.Unmarshal([]byte(k.Permissions), &permissions); err != nil {
		return []string{}, err
	}

	return permissions, nil
}

type Password struct {
	Plaintext string
	Hash      []byte
}

func (p *Password) GenerateHash() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Plaintext), 12)
	if err != nil {
		return err
	}

	p.Hash = hash
	return nil
}

func (p *Password) Matches() (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(p.Plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

// ErrorLog is a write-once record of a classified request failure.
// Rows are purged after the retention period; they are never updated.
type ErrorLog struct {
	UID         string      `json:"uid" db:"id"`
	RequestID   string      `json:"request_id" db:"request_id"`
	Code        string      `json:"code" db:"code"`
	Message     string      `json:"message" db:"message"`
	Stack       string      `json:"stack" db:"stack"`
	URL         string      `json:"url" db:"url"`
	Method      string      `json:"method" db:"method"`
	UserID      null.String `json:"user_id" db:"user_id"`
	ClientIP    string      `json:"client_ip" db:"client_ip"`
	UserAgent   string      `json:"user_agent" db:"user_agent"`
	Environment string      `json:"environment" db:"environment"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

// ErrorLogRetentionPeriod is how long error log rows are kept before
// the purge task removes them.
const ErrorLogRetentionPeriod = 7 * 24 * time.Hour
