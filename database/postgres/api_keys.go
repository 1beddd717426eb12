package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aionhq/gate/database"
	"github.com/aionhq/gate/datastore"
)

const (
	createAPIKey = `
	INSERT INTO gate.api_keys (id, name, mask_id, user_id, hash, permissions, active)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	fetchAPIKeyByID = `
	SELECT * FROM gate.api_keys
	WHERE id = $1 AND deleted_at IS NULL;
	`

	fetchActiveAPIKeyByHash = `
	SELECT
		k.id AS "key.id",
		k.name AS "key.name",
		k.mask_id AS "key.mask_id",
		k.user_id AS "key.user_id",
		k.hash AS "key.hash",
		k.permissions AS "key.permissions",
		k.active AS "key.active",
		k.expires_at AS "key.expires_at",
		k.last_used_at AS "key.last_used_at",
		k.created_at AS "key.created_at",
		k.updated_at AS "key.updated_at",
		k.deleted_at AS "key.deleted_at",
		u.id AS "user.id",
		u.first_name AS "user.first_name",
		u.last_name AS "user.last_name",
		u.email AS "user.email",
		u.password AS "user.password",
		u.plan_tier AS "user.plan_tier",
		u.active AS "user.active",
		u.last_login_at AS "user.last_login_at",
		u.created_at AS "user.created_at",
		u.updated_at AS "user.updated_at",
		u.deleted_at AS "user.deleted_at"
	FROM gate.api_keys k
	JOIN gate.users u ON u.id = k.user_id
	WHERE k.hash = $1
	  AND k.active = TRUE AND k.deleted_at IS NULL
	  AND u.active = TRUE AND u.deleted_at IS NULL;
	`

	updateAPIKeyLastUsed = `
	UPDATE gate.api_keys SET last_used_at = $2
	WHERE id = $1 AND deleted_at IS NULL;
	`

	revokeAPIKey = `
	UPDATE gate.api_keys SET active = FALSE, deleted_at = NOW()
	WHERE id = $1 AND deleted_at IS NULL;
	`
)

var ErrAPIKeyNotCreated = errors.New("api key could not be created")

type apiKeyRepo struct {
	db *sqlx.DB
}

func NewAPIKeyRepo(db database.Database) datastore.APIKeyRepository {
	return &apiKeyRepo{db: db.GetDB()}
}

func (a *apiKeyRepo) CreateAPIKey(ctx context.Context, key *datastore.APIKey) error {
	result, err := a.db.ExecContext(ctx,
		createAPIKey,
		key.UID,
		key.Name,
		key.MaskID,
		key.UserID,
		key.Hash,
		key.Permissions,
		key.Active,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected < 1 {
		return ErrAPIKeyNotCreated
	}

	return nil
}

type keyWithUser struct {
	Key  datastore.APIKey `db:"key"`
	User datastore.User   `db:"user"`
}

func (a *apiKeyRepo) FindActiveAPIKeyByHash(ctx context.Context, hash string) (*datastore.APIKey, *datastore.User, error) {
	row := &keyWithUser{}
	err := a.db.QueryRowxContext(ctx, fetchActiveAPIKeyByHash, hash).StructScan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, datastore.ErrAPIKeyNotFound
		}
		return nil, nil, err
	}

	return &row.Key, &row.User, nil
}

func (a *apiKeyRepo) FindAPIKeyByID(ctx context.Context, id string) (*datastore.APIKey, error) {
	key := &datastore.APIKey{}
	err := a.db.QueryRowxContext(ctx, fetchAPIKeyByID, id).StructScan(key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, datastore.ErrAPIKeyNotFound
		}
		return nil, err
	}

	return key, nil
}

func (a *apiKeyRepo) UpdateAPIKeyLastUsed(ctx context.Context, id string, t time.Time) error {
	_, err := a.db.ExecContext(ctx, updateAPIKeyLastUsed, id, t)
	return err
}

func (a *apiKeyRepo) RevokeAPIKey(ctx context.Context, id string) error {
	result, err := a.db.ExecContext(ctx, revokeAPIKey, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected < 1 {
		return datastore.ErrAPIKeyNotFound
	}

	return nil
}
