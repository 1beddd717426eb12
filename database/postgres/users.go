package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aionhq/gate/database"
	"github.com/aionhq/gate/datastore"
)

const (
	createUser = `
	INSERT INTO gate.users (id, first_name, last_name, email, password, plan_tier, active)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	fetchUserByEmail = `
	SELECT * FROM gate.users
	WHERE email = $1 AND deleted_at IS NULL;
	`

	fetchActiveUserByID = `
	SELECT * FROM gate.users
	WHERE id = $1 AND active = TRUE AND deleted_at IS NULL;
	`

	updateUserLastLogin = `
	UPDATE gate.users SET last_login_at = $2
	WHERE id = $1 AND deleted_at IS NULL;
	`
)

var ErrUserNotCreated = errors.New("user could not be created")

type userRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db database.Database) datastore.UserRepository {
	return &userRepo{db: db.GetDB()}
}

func (u *userRepo) CreateUser(ctx context.Context, user *datastore.User) error {
	result, err := u.db.ExecContext(ctx,
		createUser,
		user.UID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Password,
		user.PlanTier,
		user.Active,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") {
			return datastore.ErrDuplicateEmail
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected < 1 {
		return ErrUserNotCreated
	}

	return nil
}

func (u *userRepo) FindUserByEmail(ctx context.Context, email string) (*datastore.User, error) {
	user := &datastore.User{}
	err := u.db.QueryRowxContext(ctx, fetchUserByEmail, email).StructScan(user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, datastore.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (u *userRepo) FindActiveUserByID(ctx context.Context, id string) (*datastore.User, error) {
	user := &datastore.User{}
	err := u.db.QueryRowxContext(ctx, fetchActiveUserByID, id).StructScan(user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, datastore.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (u *userRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	_, err := u.db.ExecContext(ctx, updateUserLastLogin, id, t)
	return err
}
