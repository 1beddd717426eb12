package migrator

import (
	"github.com/jmoiron/sqlx"
	migrate "github.com/rubenv/sql-migrate"

	"github.com/aionhq/gate/database"
)

type Migrator struct {
	dbx *sqlx.DB
	src migrate.MigrationSource
}

func New(d database.Database) *Migrator {
	migrations := &migrate.FileMigrationSource{
		Dir: "sql",
	}
	return &Migrator{dbx: d.GetDB(), src: migrations}
}

func (m *Migrator) Up() error {
	_, err := migrate.Exec(m.dbx.DB, "postgres", m.src, migrate.Up)
	return err
}

func (m *Migrator) Down() error {
	_, err := migrate.ExecMax(m.dbx.DB, "postgres", m.src, migrate.Down, 1)
	return err
}
