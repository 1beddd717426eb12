package main

import (
	"github.com/spf13/cobra"

	"github.com/aionhq/gate/config"
	"github.com/aionhq/gate/database/postgres"
	"github.com/aionhq/gate/internal/pkg/migrator"
	"github.com/aionhq/gate/pkg/log"
)

func addMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Gate database migrations",
	}

	cmd.AddCommand(addMigrateUpCommand())
	cmd.AddCommand(addMigrateDownCommand())

	return cmd
}

func addMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Get()
			if err != nil {
				return err
			}

			db, err := postgres.NewDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrator.New(db).Up(); err != nil {
				return err
			}

			log.Info("migration up complete")
			return nil
		},
	}
}

func addMigrateDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Get()
			if err != nil {
				return err
			}

			db, err := postgres.NewDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrator.New(db).Down(); err != nil {
				return err
			}

			log.Info("migration down complete")
			return nil
		},
	}
}
