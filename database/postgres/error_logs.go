package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aionhq/gate/database"
	"github.com/aionhq/gate/datastore"
)

const (
	createErrorLog = `
	INSERT INTO gate.error_logs (
		id, request_id, code, message, stack, url, method,
		user_id, client_ip, user_agent, environment
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	deleteErrorLogsBefore = `
	DELETE FROM gate.error_logs WHERE created_at < $1;
	`
)

type errorLogRepo struct {
	db *sqlx.DB
}

func NewErrorLogRepo(db database.Database) datastore.ErrorLogRepository {
	return &errorLogRepo{db: db.GetDB()}
}

func (e *errorLogRepo) CreateErrorLog(ctx context.Context, record *datastore.ErrorLog) error {
	_, err := e.db.ExecContext(ctx,
		createErrorLog,
		record.UID,
		record.RequestID,
		record.Code,
		record.Message,
		record.Stack,
		record.URL,
		record.Method,
		record.UserID,
		record.ClientIP,
		record.UserAgent,
		record.Environment,
	)
	return err
}

func (e *errorLogRepo) DeleteErrorLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := e.db.ExecContext(ctx, deleteErrorLogsBefore, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
