// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/contentguard/accesscontrol"
	"github.com/l3montree-dev/contentguard/controllers"
	"github.com/l3montree-dev/contentguard/daemons"
	"github.com/l3montree-dev/contentguard/database"
	"github.com/l3montree-dev/contentguard/database/repositories"
	"github.com/l3montree-dev/contentguard/middlewares"
	"github.com/l3montree-dev/contentguard/monitoring"
	"github.com/l3montree-dev/contentguard/router"
	"github.com/l3montree-dev/contentguard/services"
	"github.com/l3montree-dev/contentguard/shared"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	_ "github.com/lib/pq"
)

var release string // Will be filled at build time

//	@title			contentguard API
//	@version		v1
//	@description	contentguard content moderation API

//	@license.name	AGPL-3

// @host		localhost:8080
// @BasePath	/api/v1
func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()

	if os.Getenv("ERROR_TRACKING_DSN") != "" {
		initSentry()

		// Catch panics
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	cfg, err := shared.LoadModerationConfig()
	if err != nil {
		slog.Error("could not load moderation config", "err", err)
		panic(err)
	}

	db, pool := database.NewConnection(database.GetPoolConfigFromEnv())

	if os.Getenv("DISABLE_AUTOMIGRATE") != "true" {
		slog.Info("running database migrations...")
		if err := database.RunMigrationsWithDB(db); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			panic(errors.New("Failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	shutdownTracing, err := monitoring.InitTracing(context.Background(), "contentguard")
	if err != nil {
		slog.Warn("could not initialize tracing", "err", err)
	}

	fx.New(
		fx.Supply(db),
		fx.Supply(pool),
		fx.Supply(cfg),
		fx.Provide(database.BrokerFactory),
		fx.Provide(middlewares.Server),
		repositories.Module,
		services.ServiceModule,
		accesscontrol.Module,
		daemons.Module,
		controllers.ControllerModule,
		router.RouterModule,

		// the router registers the routes as a side effect
		fx.Invoke(func(router.APIV1Router) {}),
		fx.Invoke(func(lc fx.Lifecycle, server *echo.Echo) {
			startServer(lc, server, cfg.HTTP.Port)
		}),
		fx.Invoke(func(lc fx.Lifecycle, pool *pgxpool.Pool) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					if err := shutdownTracing(ctx); err != nil {
						slog.Warn("could not flush traces", "err", err)
					}
					pool.Close()
					return nil
				},
			})
		}),
	).Run()
}

func startServer(lc fx.Lifecycle, server *echo.Echo, port int) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				addr := fmt.Sprintf(":%d", port)
				slog.Info("starting server", "addr", addr)
				if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					slog.Error("failed to start server", "err", err)
					os.Exit(1)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}

func initSentry() {
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "dev"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         os.Getenv("ERROR_TRACKING_DSN"),
		Environment: environment,
		Release:     release,

		// print what sentry is doing in dev
		Debug: environment == "dev",

		AttachStacktrace: true,
		SendDefaultPII:   false,
	})
	if err != nil {
		slog.Error("Failed to init logger", "err", err)
	}
}
