package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/aionhq/gate/api"
	"github.com/aionhq/gate/apierror"
	"github.com/aionhq/gate/auth/realm/apikey"
	"github.com/aionhq/gate/auth/realm/token"
	"github.com/aionhq/gate/auth/realm_chain"
	"github.com/aionhq/gate/cache"
	"github.com/aionhq/gate/config"
	"github.com/aionhq/gate/database/postgres"
	"github.com/aionhq/gate/datastore"
	"github.com/aionhq/gate/internal/pkg/server"
	"github.com/aionhq/gate/internal/pkg/throttle"
	"github.com/aionhq/gate/pkg/log"
	"github.com/aionhq/gate/services"
	"github.com/aionhq/gate/util"
)

// purgeInterval is how often expired error log rows are removed.
const purgeInterval = 24 * time.Hour

func addServerCommand() *cobra.Command {
	var port uint32

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the gate HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Get()
			if err != nil {
				return err
			}

			logger := log.NewLogger(os.Stdout)
			if !util.IsStringEmpty(cfg.Logger.Level) {
				lvl, err := log.ParseLevel(cfg.Logger.Level)
				if err != nil {
					return err
				}
				logger.SetLevel(lvl)
			}

			if port != 0 {
				cfg.Server.Port = port
			}

			db, err := postgres.NewDB(cfg)
			if err != nil {
				return err
			}

			ca, err := cache.NewCache(cfg.Redis)
			if err != nil {
				return err
			}

			var alerter *apierror.Alerter
			if !util.IsStringEmpty(cfg.Sentry.Dsn) {
				err = sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.Dsn, Environment: cfg.Environment})
				if err != nil {
					return err
				}
				defer sentry.Flush(2 * time.Second)

				alerter = apierror.NewAlerter()
			}

			userRepo := postgres.NewUserRepo(db)
			apiKeyRepo := postgres.NewAPIKeyRepo(db)
			errorLogRepo := postgres.NewErrorLogRepo(db)

			jwt := token.NewJwt(&cfg.Auth.Jwt)

			chain, err := realm_chain.New(logger,
				token.NewTokenRealm(userRepo, jwt, logger),
				apikey.NewAPIKeyRealm(apiKeyRepo, logger),
			)
			if err != nil {
				return err
			}

			window := time.Duration(cfg.Throttle.WindowSeconds) * time.Second
			th := throttle.NewThrottle(ca, cfg.Throttle.Threshold, window, logger)

			responder := apierror.NewResponder(logger, errorLogRepo, th, alerter, cfg.Environment)

			handler := api.NewApplicationHandler(&api.APIOptions{
				Chain:           chain,
				Throttle:        th,
				Responder:       responder,
				UserService:     services.NewUserService(userRepo, ca, jwt, logger),
				SecurityService: services.NewSecurityService(apiKeyRepo, logger),
				Logger:          logger,
			})

			purgeCtx, stopPurge := context.WithCancel(context.Background())
			go purgeErrorLogs(purgeCtx, errorLogRepo, logger)

			srv := server.NewServer(cfg.Server.Port, stopPurge)
			srv.SetHandler(handler.BuildRoutes())

			logger.Infof("Gate server running on port %v", cfg.Server.Port)
			srv.Listen()

			return nil
		},
	}

	cmd.Flags().Uint32Var(&port, "port", 0, "Server port")

	return cmd
}

func purgeErrorLogs(ctx context.Context, repo datastore.ErrorLogRepository, logger log.StdLogger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-datastore.ErrorLogRetentionPeriod)
			deleted, err := repo.DeleteErrorLogsBefore(ctx, cutoff)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.WithError(err).Error("failed to purge error logs")
				continue
			}

			if deleted > 0 {
				logger.Infof("purged %d expired error logs", deleted)
			}
		}
	}
}
